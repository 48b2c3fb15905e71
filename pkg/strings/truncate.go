package strings

import (
	"strings"
)

// MinTruncateLen is the smallest width Truncate honours; it leaves room for
// one character plus "...".
const MinTruncateLen = 4

// Truncate collapses whitespace to single spaces and cuts s to at most maxLen
// runes, ending in "..." when something was removed.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

// JoinTruncated joins items with ", " and truncates the result to maxLen.
// Empty items are skipped.
func JoinTruncated(items []string, maxLen int) string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	return Truncate(strings.Join(kept, ", "), maxLen)
}
