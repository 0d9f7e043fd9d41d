// Package skills parses and normalises skill requirements.
package skills

import (
	"sort"
	"strings"
)

// Requirement is a normalised required skill: lower-cased, trimmed and non-empty.
type Requirement = string

// synonyms lists extra keywords that evidence a canonical skill in free text.
var synonyms = map[string][]string{
	"go":                  {"golang"},
	"javascript":          {"ecmascript"},
	"kubernetes":          {"k8s"},
	"react":               {"reactjs", "react.js"},
	"vue":                 {"vuejs", "vue.js"},
	"node.js":             {"nodejs", "node"},
	"nodejs":              {"node.js", "node"},
	"postgresql":          {"postgres"},
	"postgres":            {"postgresql"},
	"machine learning":    {"deep learning"},
	"amazon web services": {"aws"},
	"aws":                 {"amazon web services"},
	"gcp":                 {"google cloud"},
	"ci/cd":               {"continuous integration", "continuous delivery"},
	"rest":                {"restful", "rest api"},
}

// Normalize lower-cases s, trims it and collapses inner whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeList normalises every entry, dropping empties. Order is kept and
// duplicates are preserved.
func NormalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if n := Normalize(item); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// ParseRequirements splits a comma-separated job skill string into
// normalised requirements. The first occurrence of a duplicate wins.
func ParseRequirements(raw string) []Requirement {
	return Dedupe(NormalizeList(strings.Split(raw, ",")))
}

// SplitDisplay splits a comma-separated skill string keeping the original
// spelling of each entry, trimmed, for presentation.
func SplitDisplay(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		key := Normalize(part)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, part)
	}
	return out
}

// Dedupe drops repeated entries keeping first occurrence order.
func Dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Set returns the sorted distinct normalised entries of items.
func Set(items []string) []string {
	out := Dedupe(NormalizeList(items))
	sort.Strings(out)
	return out
}

// Keywords returns the detection keywords of a requirement: the
// requirement itself followed by its known synonyms.
func Keywords(req Requirement) []string {
	req = Normalize(req)
	if req == "" {
		return nil
	}
	return Dedupe(append([]string{req}, synonyms[req]...))
}

// KeywordSets maps each requirement to its detection keywords.
func KeywordSets(reqs []Requirement) map[string][]string {
	sets := make(map[string][]string, len(reqs))
	for _, req := range reqs {
		req = Normalize(req)
		if req == "" {
			continue
		}
		sets[req] = Keywords(req)
	}
	return sets
}
