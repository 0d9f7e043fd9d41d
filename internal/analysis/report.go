package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/scoring"
)

// Cohort summarises a set of results for one job.
func Cohort(results []*Result) scoring.Cohort {
	scores := make([]scoring.Score, 0, len(results))
	for _, r := range results {
		scores = append(scores, r.Score())
	}
	return scoring.Summarize(scores)
}

// FilterByBand keeps the results in band, preserving order.
func FilterByBand(results []*Result, band scoring.Band) []*Result {
	out := make([]*Result, 0, len(results))
	for _, r := range results {
		if r.Band == band {
			out = append(out, r)
		}
	}
	return out
}

// ReportByBand groups results by band for console output.
func ReportByBand(results []*Result) map[scoring.Band][]map[string]string {
	report := make(map[scoring.Band][]map[string]string)
	for _, r := range results {
		name := r.CandidateName
		if name == "" {
			name = r.ResumeID
		}
		entry := map[string]string{
			"candidate": name,
			"coverage":  fmt.Sprintf("%.1f%%", r.CoveragePercent),
			"matched":   strings.Join(r.Matched, ", "),
			"missing":   strings.Join(r.Missing, ", "),
			"analysed":  r.CreatedAt.Format("2006-01-02 15:04"),
		}
		if ev := evidenceSummary(r.PerSkillEvidence); ev != "" {
			entry["evidence"] = ev
		}
		report[r.Band] = append(report[r.Band], entry)
	}
	return report
}

func evidenceSummary(evidence map[string][]string) string {
	if len(evidence) == 0 {
		return ""
	}
	names := make([]string, 0, len(evidence))
	for name := range evidence {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(evidence[name], " | ")))
	}
	return strings.Join(parts, "; ")
}
