// Package kotlinutil renders values as Kotlin source literals for the update
// snippets pasted into the MOTM browser sources.
package kotlinutil

import (
	"strings"

	"motm-scrapers/lib/textutil"
)

const (
	Indent      = "            "
	bannerWidth = 60
)

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"\r\n", " ",
	"\n", " ",
	"\r", "",
)

// Escape makes s safe to place between double quotes in Kotlin source.
// Newlines are flattened to spaces.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Quote is the escaped string literal of s.
func Quote(s string) string {
	return `"` + Escape(s) + `"`
}

// Banner is the header placed above every block of updates for a Kotlin file.
func Banner(file string) []string {
	rule := strings.Repeat("=", bannerWidth)
	return []string{rule, "UPDATES FOR " + file, rule}
}

// TruncateEscaped shortens text that went through Escape to n runes, ending
// in "..." if anything was cut. A cut never leaves half of an escape sequence
// behind.
func TruncateEscaped(escaped string, n int) string {
	if textutil.RuneLen(escaped) <= n {
		return escaped
	}
	suffix := "..."
	if n <= 3 {
		suffix = ""
	} else {
		n -= 3
	}
	head := textutil.Truncate(escaped, n)
	trailing := len(head) - len(strings.TrimRight(head, `\`))
	if trailing%2 == 1 {
		head = head[:len(head)-1]
	}
	return head + suffix
}
