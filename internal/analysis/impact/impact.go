package impact

import (
	"golang-market-sentiment/internal/analysis/lexicon"
	"golang-market-sentiment/internal/analysis/sentiment"
)

// Level is the expected direction and magnitude of the market move.
type Level string

const (
	HighPositive     Level = "HIGH_POSITIVE"
	ModeratePositive Level = "MODERATE_POSITIVE"
	SlightlyPositive Level = "SLIGHTLY_POSITIVE"
	Neutral          Level = "NEUTRAL"
	SlightlyNegative Level = "SLIGHTLY_NEGATIVE"
	ModerateNegative Level = "MODERATE_NEGATIVE"
	HighNegative     Level = "HIGH_NEGATIVE"
)

// High reports whether l is one of the two strongest levels.
func (l Level) High() bool {
	return l == HighPositive || l == HighNegative
}

// Horizon is how soon the impact is expected to materialize.
type Horizon string

const (
	Immediate Horizon = "IMMEDIATE"
	ShortTerm Horizon = "SHORT_TERM"
	LongTerm  Horizon = "LONG_TERM"
)

// Thresholds bound the impact levels on the signed combined score. A score of
// at least High is HIGH_*, at least Moderate is MODERATE_*, at least Slight is
// SLIGHTLY_*; anything strictly inside (-Slight, Slight) is NEUTRAL.
type Thresholds struct {
	High     float64
	Moderate float64
	Slight   float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{High: 0.6, Moderate: 0.3, Slight: 0.05}
}

var (
	immediateKeywords = []string{
		"breaking", "today", "now", "right now", "immediately", "immediate", "intraday",
		"this morning", "tonight", "just in",
	}
	shortTermKeywords = []string{
		"this week", "next week", "this month", "this quarter", "near-term", "near term",
		"short-term", "short term", "coming days", "coming weeks",
	}
)

// MarketImpact is the classifier output.
type MarketImpact struct {
	ImpactLevel             Level   `json:"impact_level"`
	ImpactDescription       string  `json:"impact_description"`
	TimeHorizon             Horizon `json:"time_horizon"`
	PositiveIndicatorsCount int     `json:"positive_indicators_count"`
	NegativeIndicatorsCount int     `json:"negative_indicators_count"`
	SentimentScore          float64 `json:"sentiment_score"`
}

// Classifier maps a combined sentiment to an impact level and time horizon.
type Classifier struct {
	thresholds Thresholds
	immediate  [][]string
	shortTerm  [][]string
}

func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{
		thresholds: t,
		immediate:  tokenizePhrases(immediateKeywords),
		shortTerm:  tokenizePhrases(shortTermKeywords),
	}
}

// Classify builds the market impact of a combined sentiment. Indicator counts come
// from scan and ignore the dead zone.
func (c *Classifier) Classify(combined sentiment.Combined, scan sentiment.Scan, text string) MarketImpact {
	level := c.Level(combined.CombinedScore)
	horizon := c.Horizon(text)
	return MarketImpact{
		ImpactLevel:             level,
		ImpactDescription:       Describe(level, horizon),
		TimeHorizon:             horizon,
		PositiveIndicatorsCount: scan.Positive,
		NegativeIndicatorsCount: scan.Negative,
		SentimentScore:          sentiment.Clamp(combined.CombinedScore, -1, 1),
	}
}

// Level looks s up in the threshold table.
func (c *Classifier) Level(s float64) Level {
	t := c.thresholds
	switch {
	case s >= t.High:
		return HighPositive
	case s >= t.Moderate:
		return ModeratePositive
	case s >= t.Slight:
		return SlightlyPositive
	case s > -t.Slight:
		return Neutral
	case s > -t.Moderate:
		return SlightlyNegative
	case s > -t.High:
		return ModerateNegative
	default:
		return HighNegative
	}
}

// Horizon returns IMMEDIATE when text carries an immediacy keyword, SHORT_TERM for
// a near-term keyword and LONG_TERM otherwise.
func (c *Classifier) Horizon(text string) Horizon {
	tokens := lexicon.Tokenize(text)
	switch {
	case containsPhrase(tokens, c.immediate):
		return Immediate
	case containsPhrase(tokens, c.shortTerm):
		return ShortTerm
	default:
		return LongTerm
	}
}

func tokenizePhrases(phrases []string) [][]string {
	out := make([][]string, 0, len(phrases))
	for _, p := range phrases {
		out = append(out, lexicon.Tokenize(p))
	}
	return out
}

func containsPhrase(tokens []string, phrases [][]string) bool {
	for i := range tokens {
		for _, p := range phrases {
			if len(p) == 0 || i+len(p) > len(tokens) {
				continue
			}
			if hasPrefix(tokens[i:], p) {
				return true
			}
		}
	}
	return false
}

func hasPrefix(tokens, phrase []string) bool {
	for j, w := range phrase {
		if tokens[j] != w {
			return false
		}
	}
	return true
}
