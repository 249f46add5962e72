package engine

import (
	"context"
	"errors"

	"golang-market-sentiment/internal/analysis/sentiment"
)

// Sink receives every completed analysis. Analyze logs sink errors and never
// returns them.
type Sink interface {
	Consume(ctx context.Context, result *AnalysisResult) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, result *AnalysisResult) error

func (f SinkFunc) Consume(ctx context.Context, result *AnalysisResult) error {
	return f(ctx, result)
}

// MultiSink fans a result out to every sink and joins their errors.
type MultiSink []Sink

func (m MultiSink) Consume(ctx context.Context, result *AnalysisResult) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Consume(ctx, result); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ImageSentimentProvider supplies a precomputed sentiment for an image reference.
type ImageSentimentProvider interface {
	ImageSentiment(ctx context.Context, imageURL string) (sentiment.Score, error)
}
