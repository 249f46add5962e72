package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"lowercases words", "NIFTY Surges", []string{"nifty", "surges"}},
		{"keeps inner hyphen", "hit an all-time high", []string{"hit", "an", "all-time", "high"}},
		{"keeps contraction", "it doesn't look good", []string{"it", "doesn't", "look", "good"}},
		{"curly apostrophe", "don’t panic", []string{"don't", "panic"}},
		{"decimal number", "up 5.2% today", []string{"up", "5.2", "today"}},
		{"thousands separator", "Rs 2,000 crore", []string{"rs", "2,000", "crore"}},
		{"trailing hyphen dropped", "sell- off", []string{"sell", "off"}},
		{"empty", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestSplitSentences(t *testing.T) {
	text := "Nifty rose 1.2% today. Will it last? Analysts at Kotak Securities Ltd. remain upbeat!\nRs. 500 crore flowed in"
	got := SplitSentences(text)
	assert.Equal(t, []string{
		"Nifty rose 1.2% today.",
		"Will it last?",
		"Analysts at Kotak Securities Ltd. remain upbeat!",
		"Rs. 500 crore flowed in",
	}, got)
}

func TestSplitSentencesEmpty(t *testing.T) {
	assert.Empty(t, SplitSentences(""))
	assert.Empty(t, SplitSentences(" \n\t "))
}

func TestDefaultLexicon(t *testing.T) {
	lex, err := Default()
	require.NoError(t, err)
	assert.Greater(t, lex.Len(), 100)

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, lex, again)

	for _, e := range lex.Entries() {
		assert.GreaterOrEqual(t, e.Weight, -1.0, e.Term)
		assert.LessOrEqual(t, e.Weight, 1.0, e.Term)
	}
}

func TestMatchPrefersLongestPhrase(t *testing.T) {
	lex, err := Default()
	require.NoError(t, err)

	tokens := Tokenize("shares hit a record high")
	e, n, ok := lex.Match(tokens, 3)
	require.True(t, ok)
	assert.Equal(t, 2, n)
	assert.Equal(t, "record high", e.Term)
	assert.Equal(t, CategoryPositive, e.Category)

	tokens = Tokenize("quarterly earnings miss")
	e, n, ok = lex.Match(tokens, 1)
	require.True(t, ok)
	assert.Equal(t, 2, n)
	assert.Less(t, e.Weight, 0.0)

	_, _, ok = lex.Match(Tokenize("office in Bengaluru"), 0)
	assert.False(t, ok)
}

func TestMarkers(t *testing.T) {
	lex, err := Default()
	require.NoError(t, err)

	assert.True(t, lex.IsNegator("not"))
	assert.True(t, lex.IsNegator("doesn't"))
	assert.True(t, lex.IsIntensifier("sharply"))
	assert.True(t, lex.IsQuestionMarker("will"))
	assert.False(t, lex.IsNegator("surge"))

	assert.True(t, lex.IsQuestion("Markets may rally?", Tokenize("Markets may rally?")))
	assert.True(t, lex.IsQuestion("Will the rally hold", Tokenize("Will the rally hold")))
	assert.False(t, lex.IsQuestion("The rally will hold.", Tokenize("The rally will hold.")))

	for _, sentence := range []string{
		"When markets rally, bank stocks lead.",
		"Which is why the index surged.",
	} {
		assert.False(t, lex.IsQuestion(sentence, Tokenize(sentence)), sentence)
	}
}

func TestNewRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"empty term", []Entry{{Term: "  ", Weight: 0.5, Category: CategoryPositive}}},
		{"weight out of range", []Entry{{Term: "moon", Weight: 1.5, Category: CategoryPositive}}},
		{"positive with negative weight", []Entry{{Term: "gain", Weight: -0.2, Category: CategoryPositive}}},
		{"negative with positive weight", []Entry{{Term: "loss", Weight: 0.2, Category: CategoryNegative}}},
		{"duplicate across categories", []Entry{
			{Term: "gain", Weight: 0.5, Category: CategoryPositive},
			{Term: "Gain", Weight: 0, Category: CategoryIntensifier},
		}},
		{"multi-word negator", []Entry{
			{Term: "gain", Weight: 0.5, Category: CategoryPositive},
			{Term: "no longer", Category: CategoryNegator},
		}},
		{"unknown category", []Entry{{Term: "gain", Weight: 0.5, Category: "bullish"}}},
		{"no polar terms", []Entry{{Term: "not", Category: CategoryNegator}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries)
			assert.ErrorIs(t, err, ErrInvalidEntry)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	content := `entries:
  - term: moon
    weight: 0.9
    category: positive
  - term: rug pull
    weight: -0.95
    category: negative
  - term: not
    category: negator
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	lex, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, lex.Len())

	e, n, ok := lex.Match(Tokenize("a rug pull"), 1)
	require.True(t, ok)
	assert.Equal(t, 2, n)
	assert.Equal(t, -0.95, e.Weight)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries:\n  - term: moon\n    weight: 3\n    category: positive\n"), 0o600))
	_, err = LoadFile(path)
	assert.ErrorIs(t, err, ErrInvalidEntry)
}
