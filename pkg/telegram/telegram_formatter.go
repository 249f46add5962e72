package telegram

import (
	"fmt"
	"strings"
	"time"

	"golang-market-sentiment/internal/analysis/engine"
	"golang-market-sentiment/internal/analysis/impact"
	"golang-market-sentiment/internal/analysis/sentiment"
	"golang-market-sentiment/pkg/utils"
)

const maxMessageLen = 4090

// FormatAnalysisAlert renders a single analysis as a Markdown alert.
func FormatAnalysisAlert(result *engine.AnalysisResult, sourceURL string) string {
	var b strings.Builder

	symbol := result.Symbol()
	if symbol == "" {
		symbol = "MARKET"
	}
	b.WriteString(fmt.Sprintf("%s *[%s] %s*\n", impactIcon(result.MarketImpact.ImpactLevel), Escape(symbol), Escape(string(result.MarketImpact.ImpactLevel))))
	b.WriteString(fmt.Sprintf("🏷 *Asset:* %s (%s)\n", Escape(result.AssetName), Escape(result.AssetType)))

	sa := result.SentimentAnalysis
	b.WriteString(fmt.Sprintf("%s *Sentiment:* %s (%.0f%%)\n", sentimentIcon(sa.CombinedSentiment.Label), sa.CombinedSentiment.Label, sa.CombinedSentiment.Score*100))
	b.WriteString(fmt.Sprintf("⏱ *Horizon:* %s\n", Escape(string(result.MarketImpact.TimeHorizon))))
	b.WriteString(fmt.Sprintf("🎯 *Confidence:* %.0f%%\n\n", result.ConfidenceScore*100))
	b.WriteString(fmt.Sprintf("💬 %s\n", Escape(result.MarketImpact.ImpactDescription)))

	if len(result.KeyInsights) > 0 {
		b.WriteString("\n🔑 *Key Insights:*\n")
		for _, insight := range result.KeyInsights {
			b.WriteString(fmt.Sprintf("  - %s\n", Escape(utils.Truncate(insight, 280))))
		}
	}
	if sourceURL != "" {
		b.WriteString(fmt.Sprintf("\n🔗 %s\n", Escape(sourceURL)))
	}
	b.WriteString(fmt.Sprintf("\n%s\n", PrettyDate(result.AnalysisTimestamp)))
	return utils.Truncate(b.String(), maxMessageLen)
}

// DigestEntry is one line of the periodic digest.
type DigestEntry struct {
	Symbol     string
	Label      sentiment.Label
	Impact     impact.Level
	Confidence float64
	Title      string
}

// FormatDigest renders digest entries into as many messages as needed to stay
// under Telegram's message size limit.
func FormatDigest(entries []DigestEntry) []string {
	if len(entries) == 0 {
		return []string{"No new market-moving articles in this run."}
	}

	var (
		messages []string
		current  strings.Builder
		part     = 1
	)
	startNewPart := func() {
		current.Reset()
		if part == 1 {
			current.WriteString("📰 *Market Sentiment Digest* 📰\n\n")
		} else {
			current.WriteString(fmt.Sprintf("---*Market Sentiment Digest Part %d*---\n\n", part))
		}
	}
	startNewPart()

	for _, e := range entries {
		symbol := e.Symbol
		if symbol == "" {
			symbol = "MARKET"
		}
		entry := fmt.Sprintf("%s *%s* %s · %s · %.0f%%\n%s\n\n",
			sentimentIcon(e.Label), Escape(symbol), e.Label, Escape(string(e.Impact)), e.Confidence*100, Escape(utils.Truncate(e.Title, 200)))

		if current.Len()+len(entry) > maxMessageLen {
			messages = append(messages, current.String())
			part++
			startNewPart()
		}
		current.WriteString(entry)
	}
	return append(messages, current.String())
}

// FormatErrorAlertMessage renders an operational error alert.
func FormatErrorAlertMessage(at time.Time, errType string, errMsg string, data string) string {
	return fmt.Sprintf("📛 [ERROR ALERT]\n%s\n🔧 %s\n⚠️ %s\n\n📄 Data: %s\n", PrettyDate(at), Escape(errType), Escape(errMsg), Escape(data))
}

// PrettyDate formats t in IST.
func PrettyDate(t time.Time) string {
	return t.In(utils.GetISTTimeLocation()).Format("02 Jan 2006 15:04 IST")
}

func sentimentIcon(l sentiment.Label) string {
	switch l {
	case sentiment.Positive:
		return "😊"
	case sentiment.Negative:
		return "😟"
	default:
		return "😐"
	}
}

func impactIcon(l impact.Level) string {
	switch l {
	case impact.HighPositive, impact.ModeratePositive:
		return "🟢"
	case impact.HighNegative, impact.ModerateNegative:
		return "🔴"
	default:
		return "🟡"
	}
}
