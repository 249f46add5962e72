package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CleanToValidUTF8 drops invalid byte sequences.
func CleanToValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}

// SafeText makes scraped text safe to analyze and store: valid UTF-8, no control
// characters except newlines and tabs, and no NUL bytes (PostgreSQL rejects them).
func SafeText(s string) string {
	s = CleanToValidUTF8(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// CollapseSpaces replaces every run of spaces and tabs with a single space and
// trims each line.
func CollapseSpaces(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
