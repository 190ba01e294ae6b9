package textutil

import (
	"regexp"
	"strings"
)

var browsePrefix = regexp.MustCompile(`(?i)^Browse[\s\p{Zs}]+`)

// StripBrowsePrefix removes a single leading "Browse " token from a category
// link label, in any case.
func StripBrowsePrefix(label string) string {
	return browsePrefix.ReplaceAllString(label, "")
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// RuneLen is the number of runes in s.
func RuneLen(s string) int {
	return len([]rune(s))
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases name and removes all whitespace, for loose
// comparisons between labels.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	return whitespaceRegex.ReplaceAllString(name, "")
}

// FileStem replaces every character outside of [A-Za-z0-9] with '_' and keeps
// at most n runes.
func FileStem(s string, n int) string {
	stem := strings.Map(func(r rune) rune {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			return r
		}
		return '_'
	}, s)
	return Truncate(stem, n)
}
