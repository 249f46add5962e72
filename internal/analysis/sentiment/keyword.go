package sentiment

import (
	"context"

	"golang-market-sentiment/internal/analysis/lexicon"
)

// KeywordConfig holds the scoring constants of the keyword analyzer.
type KeywordConfig struct {
	// IntensifierMultiplier scales a hit immediately preceded by an intensifier.
	IntensifierMultiplier float64
	// NegationWindow is how many preceding tokens are searched for a negator.
	NegationWindow int
	// QuestionDiscount scales the contribution of interrogative sentences.
	QuestionDiscount float64
	// NormalizationTokens is the article length, in tokens, over which the raw
	// total is spread. The total is divided by max(1, tokens/NormalizationTokens).
	NormalizationTokens int
	DeadZone            float64
}

// DefaultKeywordConfig returns the default scoring constants.
func DefaultKeywordConfig() KeywordConfig {
	return KeywordConfig{
		IntensifierMultiplier: 1.5,
		NegationWindow:        3,
		QuestionDiscount:      0.5,
		NormalizationTokens:   200,
		DeadZone:              0.05,
	}
}

// Hit is one lexicon term found in the text.
type Hit struct {
	Term        string  `json:"term"`
	Weight      float64 `json:"weight"`
	Effective   float64 `json:"effective"`
	Intensified bool    `json:"intensified"`
	Negated     bool    `json:"negated"`
}

// SentenceScan is the keyword scan of a single sentence.
type SentenceScan struct {
	Text         string
	Tokens       int
	Question     bool
	Hits         []Hit
	Contribution float64
}

// Scan is the full keyword scan of a text. Positive and Negative count hits by
// their effective polarity, after negation.
type Scan struct {
	Sentences  []SentenceScan
	TokenCount int
	Total      float64
	Normalized float64
	Positive   int
	Negative   int
}

// HitCount is the number of lexicon hits regardless of polarity.
func (s Scan) HitCount() int {
	return s.Positive + s.Negative
}

// AllQuestions reports whether the text has sentences and every one of them is
// interrogative.
func (s Scan) AllQuestions() bool {
	if len(s.Sentences) == 0 {
		return false
	}
	for _, sc := range s.Sentences {
		if !sc.Question {
			return false
		}
	}
	return true
}

// KeywordAnalyzer scores text from lexicon hits. It keeps no state between calls
// and is safe for concurrent use.
type KeywordAnalyzer struct {
	lex *lexicon.Lexicon
	cfg KeywordConfig
}

func NewKeywordAnalyzer(lex *lexicon.Lexicon, cfg KeywordConfig) *KeywordAnalyzer {
	return &KeywordAnalyzer{lex: lex, cfg: cfg}
}

// Lexicon returns the lexicon the analyzer scores with.
func (a *KeywordAnalyzer) Lexicon() *lexicon.Lexicon {
	return a.lex
}

// Scan walks every sentence of text and records lexicon hits with intensifier,
// negation and question rules applied.
func (a *KeywordAnalyzer) Scan(text string) Scan {
	var scan Scan
	for _, sentence := range lexicon.SplitSentences(text) {
		tokens := lexicon.Tokenize(sentence)
		sc := SentenceScan{
			Text:     sentence,
			Tokens:   len(tokens),
			Question: a.lex.IsQuestion(sentence, tokens),
		}

		var sum float64
		for i := 0; i < len(tokens); {
			entry, n, ok := a.lex.Match(tokens, i)
			if !ok {
				i++
				continue
			}
			hit := Hit{Term: entry.Term, Weight: entry.Weight, Effective: entry.Weight}
			if i > 0 && a.lex.IsIntensifier(tokens[i-1]) {
				hit.Intensified = true
				hit.Effective *= a.cfg.IntensifierMultiplier
			}
			if a.negated(tokens, i) {
				hit.Negated = true
				hit.Effective = -hit.Effective
			}
			if hit.Effective > 0 {
				scan.Positive++
			} else {
				scan.Negative++
			}
			sum += hit.Effective
			sc.Hits = append(sc.Hits, hit)
			i += n
		}

		if sc.Question {
			sum *= a.cfg.QuestionDiscount
		}
		sc.Contribution = sum
		scan.Total += sum
		scan.TokenCount += len(tokens)
		scan.Sentences = append(scan.Sentences, sc)
	}

	scan.Normalized = Clamp(scan.Total/a.normalizer(scan.TokenCount), -1, 1)
	return scan
}

func (a *KeywordAnalyzer) negated(tokens []string, i int) bool {
	from := i - a.cfg.NegationWindow
	if from < 0 {
		from = 0
	}
	for j := from; j < i; j++ {
		if a.lex.IsNegator(tokens[j]) {
			return true
		}
	}
	return false
}

func (a *KeywordAnalyzer) normalizer(tokens int) float64 {
	if a.cfg.NormalizationTokens <= 0 {
		return 1
	}
	if d := float64(tokens) / float64(a.cfg.NormalizationTokens); d > 1 {
		return d
	}
	return 1
}

// ScoreText scores text without a context. It is a pure function of text.
func (a *KeywordAnalyzer) ScoreText(text string) Score {
	return FromNumeric(a.Scan(text).Normalized, a.cfg.DeadZone)
}

// Score implements Estimator. It never fails.
func (a *KeywordAnalyzer) Score(_ context.Context, text string) (Score, error) {
	return a.ScoreText(text), nil
}
