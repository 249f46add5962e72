package lexicon

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Category classifies a lexicon term.
type Category string

const (
	CategoryPositive       Category = "positive"
	CategoryNegative       Category = "negative"
	CategoryIntensifier    Category = "intensifier"
	CategoryNegator        Category = "negator"
	CategoryQuestionMarker Category = "question_marker"
)

// ErrInvalidEntry is returned when a lexicon cannot be built from its entries.
var ErrInvalidEntry = errors.New("invalid lexicon entry")

// Entry is a single lexicon term. Weight is signed and only meaningful for the
// positive and negative categories.
type Entry struct {
	Term     string   `mapstructure:"term" json:"term"`
	Weight   float64  `mapstructure:"weight" json:"weight"`
	Category Category `mapstructure:"category" json:"category"`
}

// Polar reports whether the entry carries sentiment polarity.
func (e Entry) Polar() bool {
	return e.Category == CategoryPositive || e.Category == CategoryNegative
}

// Lexicon is an immutable store of financial sentiment terms. It is built once at
// startup and shared read-only by every analysis component.
type Lexicon struct {
	polar        map[string]Entry
	maxPhrase    int
	intensifiers map[string]struct{}
	negators     map[string]struct{}
	questions    map[string]struct{}
	entries      []Entry
}

// New validates entries and builds a Lexicon. Terms are normalized with Tokenize,
// so "All-Time High" and "all-time high" are the same key.
func New(entries []Entry) (*Lexicon, error) {
	l := &Lexicon{
		polar:        make(map[string]Entry),
		intensifiers: make(map[string]struct{}),
		negators:     make(map[string]struct{}),
		questions:    make(map[string]struct{}),
	}
	seen := make(map[string]Category, len(entries))

	for i, e := range entries {
		tokens := Tokenize(e.Term)
		if len(tokens) == 0 {
			return nil, fmt.Errorf("%w: entry %d has an empty term", ErrInvalidEntry, i)
		}
		key := strings.Join(tokens, " ")
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: term %q defined twice (%s, %s)", ErrInvalidEntry, key, prev, e.Category)
		}
		if e.Weight < -1 || e.Weight > 1 {
			return nil, fmt.Errorf("%w: term %q weight %.3f outside [-1, 1]", ErrInvalidEntry, key, e.Weight)
		}
		seen[key] = e.Category

		normalized := Entry{Term: key, Weight: e.Weight, Category: e.Category}
		switch e.Category {
		case CategoryPositive:
			if e.Weight <= 0 {
				return nil, fmt.Errorf("%w: positive term %q needs a weight > 0", ErrInvalidEntry, key)
			}
			l.addPolar(normalized, len(tokens))
		case CategoryNegative:
			if e.Weight >= 0 {
				return nil, fmt.Errorf("%w: negative term %q needs a weight < 0", ErrInvalidEntry, key)
			}
			l.addPolar(normalized, len(tokens))
		case CategoryIntensifier, CategoryNegator, CategoryQuestionMarker:
			if len(tokens) != 1 {
				return nil, fmt.Errorf("%w: %s term %q must be a single word", ErrInvalidEntry, e.Category, key)
			}
			l.marker(e.Category)[key] = struct{}{}
		default:
			return nil, fmt.Errorf("%w: term %q has unknown category %q", ErrInvalidEntry, key, e.Category)
		}
		l.entries = append(l.entries, normalized)
	}

	if len(l.polar) == 0 {
		return nil, fmt.Errorf("%w: lexicon has no positive or negative terms", ErrInvalidEntry)
	}

	sort.Slice(l.entries, func(i, j int) bool { return l.entries[i].Term < l.entries[j].Term })
	return l, nil
}

func (l *Lexicon) addPolar(e Entry, phraseLen int) {
	l.polar[e.Term] = e
	if phraseLen > l.maxPhrase {
		l.maxPhrase = phraseLen
	}
}

func (l *Lexicon) marker(c Category) map[string]struct{} {
	switch c {
	case CategoryIntensifier:
		return l.intensifiers
	case CategoryNegator:
		return l.negators
	default:
		return l.questions
	}
}

// Match returns the longest polar term starting at tokens[i] and the number of
// tokens it spans.
func (l *Lexicon) Match(tokens []string, i int) (Entry, int, bool) {
	longest := l.maxPhrase
	if rest := len(tokens) - i; rest < longest {
		longest = rest
	}
	for n := longest; n >= 1; n-- {
		key := tokens[i]
		if n > 1 {
			key = strings.Join(tokens[i:i+n], " ")
		}
		if e, ok := l.polar[key]; ok {
			return e, n, true
		}
	}
	return Entry{}, 0, false
}

func (l *Lexicon) IsIntensifier(token string) bool {
	_, ok := l.intensifiers[token]
	return ok
}

func (l *Lexicon) IsNegator(token string) bool {
	_, ok := l.negators[token]
	return ok
}

func (l *Lexicon) IsQuestionMarker(token string) bool {
	_, ok := l.questions[token]
	return ok
}

// Entries returns a copy of all entries sorted by term.
func (l *Lexicon) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len is the number of entries across all categories.
func (l *Lexicon) Len() int {
	return len(l.entries)
}
