// Package scoring turns match results into rounded scores and bands.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/detector"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/matcher"
)

// Band buckets a coverage percentage.
type Band string

const (
	BandHigh   Band = "HIGH"
	BandMedium Band = "MEDIUM"
	BandLow    Band = "LOW"
)

const (
	HighThreshold   = 70.0
	MediumThreshold = 40.0
)

// Score is the presentation form of a verdict.
type Score struct {
	CoveragePercent float64 `json:"coverage_percent"`
	Band            Band    `json:"band"`
}

// DetectionSummary aggregates semantic detection results.
type DetectionSummary struct {
	Total           int     `json:"total"`
	Matched         int     `json:"matched"`
	Missing         int     `json:"missing"`
	CoveragePercent float64 `json:"coverage_percent"`
}

// Cohort summarises the scores of all candidates for one job.
type Cohort struct {
	Total   int     `json:"total"`
	Average float64 `json:"average"`
	High    int     `json:"high"`
	Medium  int     `json:"medium"`
	Low     int     `json:"low"`
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}

// BandFor classifies a coverage percentage.
func BandFor(percent float64) Band {
	switch {
	case percent >= HighThreshold:
		return BandHigh
	case percent >= MediumThreshold:
		return BandMedium
	default:
		return BandLow
	}
}

// Aggregate rounds the verdict coverage to one decimal and assigns its band.
func Aggregate(v matcher.Verdict) Score {
	percent := Round(v.CoveragePercent, 1)
	return Score{CoveragePercent: percent, Band: BandFor(percent)}
}

// EvaluateDetections counts present and absent skills of a detection run.
func EvaluateDetections(results map[string]detector.SkillMatchResult) DetectionSummary {
	s := DetectionSummary{Total: len(results)}
	for _, r := range results {
		if r.Present {
			s.Matched++
		}
	}
	s.Missing = s.Total - s.Matched
	if s.Total > 0 {
		s.CoveragePercent = Round(100*float64(s.Matched)/float64(s.Total), 2)
	}
	return s
}

// Summarize counts scores per band and averages their coverage.
func Summarize(scores []Score) Cohort {
	c := Cohort{Total: len(scores)}
	if len(scores) == 0 {
		return c
	}

	var sum float64
	for _, s := range scores {
		sum += s.CoveragePercent
		switch BandFor(s.CoveragePercent) {
		case BandHigh:
			c.High++
		case BandMedium:
			c.Medium++
		default:
			c.Low++
		}
	}
	c.Average = Round(sum/float64(len(scores)), 2)
	return c
}

// ParseBand accepts a band name in any case.
func ParseBand(s string) (Band, error) {
	switch Band(strings.ToUpper(strings.TrimSpace(s))) {
	case BandHigh:
		return BandHigh, nil
	case BandMedium:
		return BandMedium, nil
	case BandLow:
		return BandLow, nil
	default:
		return "", fmt.Errorf("unknown band %q, expected high, medium or low", s)
	}
}
