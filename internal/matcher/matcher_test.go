package matcher

import (
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchSkill(t *testing.T) {
	tests := []struct {
		required  string
		candidate string
		want      Rule
		ok        bool
	}{
		{required: "python", candidate: "python", want: RuleExact, ok: true},
		{required: "react", candidate: "reactjs", want: RulePrefix, ok: true},
		{required: "react", candidate: "react.js", want: RulePrefix, ok: true},
		{required: "go", candidate: "golang"},
		{required: "java", candidate: "core java", want: RuleWordBoundary, ok: true},
		{required: "machine learning", candidate: "applied machine learning research", want: RuleWordBoundary, ok: true},
		{required: "java", candidate: "javascript"},
		{required: "django", candidate: "djangorestframework"},
		{required: "sql", candidate: ""},
		{required: "", candidate: "sql"},
	}

	for _, tc := range tests {
		t.Run(tc.required+"/"+tc.candidate, func(t *testing.T) {
			rule, ok := MatchSkill(tc.required, tc.candidate)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, rule)
		})
	}
}

func TestMatchEndToEnd(t *testing.T) {
	v := Match([]string{"python", "django", "java"}, []string{"python", "djangorestframework", "javascript"})

	assert.Equal(t, []string{"python"}, v.Matched)
	assert.Equal(t, []string{"django", "java"}, v.Missing)
	assert.InDelta(t, 33.3, v.CoveragePercent, 0.05)
}

func TestMatchNormalisesInputs(t *testing.T) {
	v := Match([]string{" Python ", "PYTHON", "", "React"}, []string{"ReactJS ", "  ", "python"})

	assert.Equal(t, []string{"python", "react"}, v.Matched)
	assert.Empty(t, v.Missing)
	assert.Equal(t, 100.0, v.CoveragePercent)
}

func TestMatchEmptyRequired(t *testing.T) {
	v := Match(nil, []string{"go"})
	assert.Empty(t, v.Matched)
	assert.Empty(t, v.Missing)
	assert.Zero(t, v.CoveragePercent)

	v = Match([]string{"go"}, nil)
	assert.Equal(t, []string{"go"}, v.Missing)
	assert.Zero(t, v.CoveragePercent)
}

var vocabulary = []string{
	"go", "golang", "java", "javascript", "core java", "python", "python3", "react", "reactjs",
	"sql", "nosql", "postgresql", "c", "c++", "docker", "kubernetes", "aws", "rest api", "rest",
}

func randomSubset(r *rand.Rand) []string {
	var out []string
	for _, w := range vocabulary {
		if r.Intn(3) == 0 {
			out = append(out, w)
		}
	}
	return out
}

func TestMatchProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		required := randomSubset(r)
		candidates := randomSubset(r)

		v := Match(required, candidates)
		reqSet := map[string]bool{}
		for _, s := range required {
			reqSet[s] = true
		}

		matched := map[string]bool{}
		for _, s := range v.Matched {
			require.True(t, reqSet[s], "matched %q not in required", s)
			matched[s] = true
		}
		for _, s := range v.Missing {
			require.True(t, reqSet[s], "missing %q not in required", s)
			require.False(t, matched[s], "%q both matched and missing", s)
		}
		require.Equal(t, len(reqSet), len(v.Matched)+len(v.Missing))

		if len(reqSet) == 0 {
			require.Zero(t, v.CoveragePercent)
		} else {
			require.InDelta(t, 100*float64(len(v.Matched))/float64(len(reqSet)), v.CoveragePercent, 1e-9)
		}

		for _, c := range candidates {
			if reqSet[c] {
				require.True(t, matched[c], "exact member %q must match", c)
			}
		}

		require.Equal(t, v, Match(required, candidates), "match must be idempotent")
	}
}

func TestBreakdownAgreesWithMatch(t *testing.T) {
	display := []string{"Python", "Django", "Java", "python"}
	candidates := []string{"python", "djangorestframework", "javascript", "core java"}

	statuses := Breakdown(display, candidates)
	require.Len(t, statuses, 3)
	assert.Equal(t, SkillStatus{Skill: "Python", Present: true, Rule: RuleExact, Candidate: "python"}, statuses[0])
	assert.Equal(t, SkillStatus{Skill: "Django"}, statuses[1])
	assert.Equal(t, SkillStatus{Skill: "Java", Present: true, Rule: RuleWordBoundary, Candidate: "core java"}, statuses[2])

	v := Match(display, candidates)
	for _, s := range statuses {
		assert.Equal(t, s.Present, slices.Contains(v.Matched, strings.ToLower(s.Skill)), s.Skill)
	}
}
