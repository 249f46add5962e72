package insight

import (
	"regexp"
	"sort"

	"golang-market-sentiment/internal/analysis/lexicon"
)

// numericFigure matches percentages and currency-like amounts: "4.5%", "12 percent",
// "₹2,300", "$1.2bn", "Rs 500", "INR 40", "3,000 crore", "1.5 lakh", "2 billion".
var numericFigure = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)*\s?(?:%|percent\b|per cent\b|crore\b|cr\b|lakh\b|billion\b|million\b|trillion\b|bn\b|mn\b))|((?:[₹$€£¥]|\brs\.?|\binr\b|\busd\b)\s?\d)`)

// Extractor picks the most salient sentences of a text.
type Extractor struct {
	lex *lexicon.Lexicon
	max int
}

func NewExtractor(lex *lexicon.Lexicon, max int) *Extractor {
	return &Extractor{lex: lex, max: max}
}

type scored struct {
	index int
	score int
	text  string
}

// Extract returns at most max sentences of text with a positive salience score,
// chosen by score (earlier sentences win ties) and emitted in document order.
func (e *Extractor) Extract(text string) []string {
	var candidates []scored
	for i, sentence := range lexicon.SplitSentences(text) {
		if s := e.Score(sentence); s > 0 {
			candidates = append(candidates, scored{index: i, score: s, text: sentence})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	if len(candidates) > e.max {
		candidates = candidates[:e.max]
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].index < candidates[j].index })

	insights := make([]string, 0, len(candidates))
	for _, c := range candidates {
		insights = append(insights, c.text)
	}
	return insights
}

// Score is the number of lexicon terms in sentence plus one when it states a
// numeric figure.
func (e *Extractor) Score(sentence string) int {
	tokens := lexicon.Tokenize(sentence)
	score := 0
	for i := 0; i < len(tokens); {
		if _, n, ok := e.lex.Match(tokens, i); ok {
			score++
			i += n
			continue
		}
		i++
	}
	if HasNumericFigure(sentence) {
		score++
	}
	return score
}

// HasNumericFigure reports whether s contains a percentage or currency-like figure.
func HasNumericFigure(s string) bool {
	return numericFigure.MatchString(s)
}
