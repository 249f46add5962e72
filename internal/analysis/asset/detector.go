package asset

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Match is a detected asset mention.
type Match struct {
	Descriptor Descriptor
	Offset     int
	Alias      string
}

// Detector finds the best asset mention in a text. It holds no mutable state.
type Detector struct {
	catalog *Catalog
}

func NewDetector(catalog *Catalog) *Detector {
	return &Detector{catalog: catalog}
}

// Detect returns the best asset mentioned in text, or false when nothing in the
// catalog matches.
func (d *Detector) Detect(text string) (Descriptor, bool) {
	m, ok := d.DetectMatch(text)
	if !ok {
		return Descriptor{}, false
	}
	return m.Descriptor, true
}

// DetectMatch scans the catalog in priority order. The winner has the lowest
// priority rank, then the earliest offset, then the longest matched alias.
func (d *Detector) DetectMatch(text string) (Match, bool) {
	if strings.TrimSpace(text) == "" {
		return Match{}, false
	}
	lower := strings.ToLower(text)

	var (
		best  Match
		found bool
	)
	for i, desc := range d.catalog.descriptors {
		if found && desc.PriorityRank > best.Descriptor.PriorityRank {
			break
		}
		offset, alias, ok := earliestMention(lower, d.catalog.patterns[i])
		if !ok {
			continue
		}
		if !found || offset < best.Offset || (offset == best.Offset && len(alias) > len(best.Alias)) {
			best = Match{Descriptor: desc, Offset: offset, Alias: alias}
			found = true
		}
	}
	if !found {
		return Match{}, false
	}
	best.Descriptor = best.Descriptor.clone()
	return best, true
}

// earliestMention finds the first whole-word occurrence of any pattern, preferring
// the longest pattern at equal offsets.
func earliestMention(lower string, patterns []string) (int, string, bool) {
	bestOffset, bestAlias := -1, ""
	for _, p := range patterns {
		off := indexWholeWord(lower, p)
		if off < 0 {
			continue
		}
		if bestOffset < 0 || off < bestOffset || (off == bestOffset && len(p) > len(bestAlias)) {
			bestOffset, bestAlias = off, p
		}
	}
	return bestOffset, bestAlias, bestOffset >= 0
}

func indexWholeWord(s, pattern string) int {
	for from := 0; from <= len(s)-len(pattern); {
		idx := strings.Index(s[from:], pattern)
		if idx < 0 {
			return -1
		}
		start := from + idx
		end := start + len(pattern)
		if boundaryBefore(s, start) && boundaryAfter(s, end) {
			return start
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		from = start + size
	}
	return -1
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
