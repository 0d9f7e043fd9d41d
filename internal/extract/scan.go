package extract

import (
	"regexp"
	"sort"

	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/skills"
)

// ScanSkills returns the vocabulary entries that occur in text as whole
// words, case-insensitively. The result is normalised, distinct and sorted.
func ScanSkills(text string, vocabulary []string) []string {
	found := make([]string, 0)
	for _, skill := range skills.Set(vocabulary) {
		pattern := `(?i)(?:^|[^\pL\pN+#])` + regexp.QuoteMeta(skill) + `(?:$|[^\pL\pN+#])`
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		if re.MatchString(text) {
			found = append(found, skill)
		}
	}
	sort.Strings(found)
	return found
}
