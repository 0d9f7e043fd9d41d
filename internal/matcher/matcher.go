// Package matcher is the deterministic string matcher that decides which
// required skills a candidate has.
package matcher

import (
	"sort"
	"strings"

	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/skills"
)

// LengthSlack bounds how much longer a candidate skill may be than the
// requirement it contains for the prefix rule to apply ("react" in "reactjs").
const LengthSlack = 4

// Rule identifies which matching rule accepted a pair.
type Rule string

const (
	RuleNone         Rule = ""
	RuleExact        Rule = "exact"
	RulePrefix       Rule = "prefix"
	RuleWordBoundary Rule = "word_boundary"
)

// Verdict is the outcome of matching a requirement set against candidate skills.
type Verdict struct {
	Matched         []string `json:"matched"`
	Missing         []string `json:"missing"`
	CoveragePercent float64  `json:"coverage_percent"`
}

// SkillStatus describes one requirement for display.
type SkillStatus struct {
	Skill     string `json:"skill"`
	Present   bool   `json:"present"`
	Rule      Rule   `json:"rule,omitempty"`
	Candidate string `json:"candidate,omitempty"`
}

// MatchSkill applies the rules in order to a normalised requirement and
// candidate and returns the first that accepts the pair.
func MatchSkill(required, candidate string) (Rule, bool) {
	if required == "" || candidate == "" {
		return RuleNone, false
	}
	if required == candidate {
		return RuleExact, true
	}
	if strings.Contains(candidate, required) && len(candidate) < len(required)+LengthSlack {
		return RulePrefix, true
	}
	if strings.Contains(" "+candidate+" ", " "+required+" ") {
		return RuleWordBoundary, true
	}
	return RuleNone, false
}

// find returns the rule and candidate of the first candidate accepting req.
func find(req string, candidates []string) (Rule, string, bool) {
	for _, c := range candidates {
		if rule, ok := MatchSkill(req, c); ok {
			return rule, c, true
		}
	}
	return RuleNone, "", false
}

// Match partitions required into matched and missing skills. Both inputs
// are lower-cased and trimmed, empty entries are ignored and required is
// treated as a set. Coverage is 0 when nothing is required.
func Match(required, candidates []string) Verdict {
	reqs := skills.Set(required)
	cands := skills.NormalizeList(candidates)

	v := Verdict{Matched: []string{}, Missing: []string{}}
	for _, r := range reqs {
		if _, _, ok := find(r, cands); ok {
			v.Matched = append(v.Matched, r)
		} else {
			v.Missing = append(v.Missing, r)
		}
	}

	if len(reqs) > 0 {
		v.CoveragePercent = 100 * float64(len(v.Matched)) / float64(len(reqs))
	}

	sort.Strings(v.Matched)
	sort.Strings(v.Missing)
	return v
}

// Breakdown reports every requirement in its original order and spelling,
// using the same rules as Match.
func Breakdown(requiredDisplay, candidates []string) []SkillStatus {
	cands := skills.NormalizeList(candidates)

	out := make([]SkillStatus, 0, len(requiredDisplay))
	seen := make(map[string]struct{}, len(requiredDisplay))
	for _, display := range requiredDisplay {
		key := skills.Normalize(display)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		rule, cand, ok := find(key, cands)
		out = append(out, SkillStatus{
			Skill:     strings.TrimSpace(display),
			Present:   ok,
			Rule:      rule,
			Candidate: cand,
		})
	}
	return out
}
