package utils

import "strings"

// TruncateForLog trims s and keeps at most limit runes of it, marking a cut
// with "...". A non-positive limit logs nothing.
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.TrimSpace(s)
	if cut := TruncateRunes(s, limit); cut != s {
		return cut + "..."
	}
	return s
}

// TruncateRunes cuts s to at most limit runes. A non-positive limit returns s.
func TruncateRunes(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
