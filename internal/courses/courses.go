// Package courses recommends learning material for missing skills.
package courses

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"
)

const (
	NoGapsPlan = "No skill gaps detected. Candidate is well aligned."
	PlanHeader = "PERSONALIZED SKILL IMPROVEMENT PLAN"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Course struct {
	Name string `yaml:"name" json:"name"`
	Link string `yaml:"link" json:"link"`
}

// Recommendation pairs a missing skill with a course.
type Recommendation struct {
	Skill  string `json:"skill"`
	Course string `json:"course"`
	Link   string `json:"link"`
}

// Catalog maps lower-case skill keys to courses.
type Catalog struct {
	keys    []string
	courses map[string]Course
}

// Default returns the built-in catalogue.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("built-in course catalog: %v", err))
	}
	return c
}

// Load reads a YAML catalogue from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read course catalog %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalogue. Keys are normalised to lower case.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]Course
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse course catalog: %w", err)
	}

	c := &Catalog{courses: make(map[string]Course, len(raw))}
	for key, course := range raw {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		if strings.TrimSpace(course.Name) == "" {
			return nil, fmt.Errorf("course for %q has no name", key)
		}
		c.courses[key] = course
	}
	if len(c.courses) == 0 {
		return nil, errors.New("course catalog is empty")
	}

	for key := range c.courses {
		c.keys = append(c.keys, key)
	}
	sort.Strings(c.keys)
	return c, nil
}

// Keys returns the sorted skill keys.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Recommend picks, for each missing skill, the first key in sorted order
// that contains the skill or is contained in it. Skills without a course
// are skipped.
func (c *Catalog) Recommend(missing []string) []Recommendation {
	out := make([]Recommendation, 0, len(missing))
	for _, skill := range missing {
		clean := strings.ToLower(strings.TrimSpace(skill))
		if clean == "" {
			continue
		}
		for _, key := range c.keys {
			if strings.Contains(clean, key) || strings.Contains(key, clean) {
				course := c.courses[key]
				out = append(out, Recommendation{Skill: skill, Course: course.Name, Link: course.Link})
				break
			}
		}
	}
	return out
}

// ImprovementPlan renders recommendations as a plain-text plan.
func ImprovementPlan(recs []Recommendation) string {
	if len(recs) == 0 {
		return NoGapsPlan
	}

	lines := []string{PlanHeader + "\n"}
	for _, r := range recs {
		lines = append(lines, fmt.Sprintf("- Improve **%s** by enrolling in %s (%s)", capitalize(r.Skill), r.Course, r.Link))
	}
	return strings.Join(lines, "\n")
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
