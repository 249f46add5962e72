package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang-market-sentiment/internal/analysis/sentiment"
	"golang-market-sentiment/internal/analyzer/dto"
	"golang-market-sentiment/pkg/utils"
)

// maxPromptTextRunes keeps a single article within a sensible token budget.
const maxPromptTextRunes = 12000

const sentimentInstructions = `Respond with a single JSON object and nothing else:
{"label": "POSITIVE" | "NEGATIVE" | "NEUTRAL", "score": <confidence between 0 and 1>}
The label is the direction of the expected market impact for investors, not the tone of the writing.
Questions and speculation without facts are NEUTRAL. Negated statements ("did not fall") flip the direction.`

// BuildTextSentimentPrompt asks for the market sentiment of a piece of financial text.
func BuildTextSentimentPrompt(text string) string {
	return fmt.Sprintf(`You are a financial news analyst covering Indian and global markets.
Classify the market sentiment of the following text.

%s

Text:
"""
%s
"""`, sentimentInstructions, utils.Truncate(text, maxPromptTextRunes))
}

// BuildImageSentimentPrompt asks for the market sentiment conveyed by an image,
// typically a chart, a screenshot of a post or an article illustration.
func BuildImageSentimentPrompt() string {
	return fmt.Sprintf(`You are a financial analyst. Classify the market sentiment conveyed by the attached image.
Rising charts, green tickers and celebratory visuals are POSITIVE. Falling charts, red tickers and distress are NEGATIVE.
Generic illustrations without market signal are NEUTRAL.

%s`, sentimentInstructions)
}

// parseSentimentJSON decodes the model answer, tolerating a Markdown code fence
// and lower case labels.
func parseSentimentJSON(raw string) (sentiment.Score, error) {
	raw = strings.Trim(strings.TrimSpace(raw), "`json\n`")

	var result dto.SentimentResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return sentiment.Score{}, fmt.Errorf("failed to unmarshal sentiment %q: %w", utils.Truncate(raw, 200), err)
	}

	score := sentiment.Score{
		Label: sentiment.Label(strings.ToUpper(strings.TrimSpace(result.Label))),
		Score: result.Score,
	}
	if err := score.Validate(); err != nil {
		return sentiment.Score{}, fmt.Errorf("unusable sentiment: %w", err)
	}
	return score, nil
}
