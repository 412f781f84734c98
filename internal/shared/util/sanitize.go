package util

import (
	"strings"
	"unicode/utf8"
)

// TruncateForLog trims s and cuts it to at most limit bytes on a rune boundary,
// marking the cut with "...".
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 || len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
