package service

import (
	"context"

	"golang-market-sentiment/internal/analysis/engine"
	"golang-market-sentiment/pkg/logger"
	"golang-market-sentiment/pkg/telegram"
	"golang-market-sentiment/pkg/utils"
)

// NewNotificationSink sends a Telegram alert for every high-impact analysis.
// Messages are sent in the background.
func NewNotificationSink(notifier telegram.Notifier, log *logger.Logger) engine.Sink {
	return &notificationSink{notifier: notifier, logger: log}
}

type notificationSink struct {
	notifier telegram.Notifier
	logger   *logger.Logger
}

func (s *notificationSink) Consume(ctx context.Context, result *engine.AnalysisResult) error {
	if !result.MarketImpact.ImpactLevel.High() {
		return nil
	}

	message := telegram.FormatAnalysisAlert(result, SourceFromContext(ctx).URL)
	analysisID := result.ID
	utils.GoSafe(func() {
		if err := s.notifier.SendMessage(message); err != nil {
			s.logger.Error("Failed to send analysis alert", logger.ErrorField(err), logger.StringField("analysis_id", analysisID))
		}
	})
	return nil
}
