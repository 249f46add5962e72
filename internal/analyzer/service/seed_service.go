package service

import (
	"context"
	"fmt"

	"golang-market-sentiment/internal/analyzer/repository"
	"golang-market-sentiment/internal/entity"
	"golang-market-sentiment/pkg/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type seedAsset struct {
	asset       entity.Asset
	analysis    entity.SentimentAnalysis
	predictions []entity.MarketPrediction
}

func demoData() []seedAsset {
	positive := "POSITIVE"
	neutral := "NEUTRAL"
	return []seedAsset{
		{
			asset: entity.Asset{Symbol: "BTC-USD", Name: "Bitcoin", AssetType: "crypto"},
			analysis: entity.SentimentAnalysis{
				SourceURL:         "https://twitter.com/example/status/123",
				ExtractedText:     "Bitcoin reaches new all-time high! Bullish momentum continues.",
				ImageSentiment:    &positive,
				TextSentiment:     "POSITIVE",
				CombinedSentiment: "POSITIVE",
				CombinedScore:     0.82,
				Confidence:        0.87,
				ConfidenceScore:   0.87,
				ImpactLevel:       "HIGH_POSITIVE",
				TimeHorizon:       "SHORT_TERM",
				Method:            "keyword",
			},
			predictions: []entity.MarketPrediction{
				{CurrentPrice: 45000, PredictedPrice: 46500, PriceChangePercent: 3.33, SentimentScore: 0.87, PredictionHorizon: 24, Confidence: 0.82},
			},
		},
		{
			asset: entity.Asset{Symbol: "TSLA", Name: "Tesla Inc", AssetType: "global_equity"},
			analysis: entity.SentimentAnalysis{
				SourceURL:         "https://reddit.com/r/stocks/example",
				ExtractedText:     "Tesla announces new factory expansion plans",
				ImageSentiment:    &positive,
				TextSentiment:     "POSITIVE",
				CombinedSentiment: "POSITIVE",
				CombinedScore:     0.45,
				Confidence:        0.75,
				ConfidenceScore:   0.75,
				ImpactLevel:       "MODERATE_POSITIVE",
				TimeHorizon:       "LONG_TERM",
				Method:            "keyword",
			},
			predictions: []entity.MarketPrediction{
				{CurrentPrice: 250, PredictedPrice: 258.5, PriceChangePercent: 3.4, SentimentScore: 0.75, PredictionHorizon: 12, Confidence: 0.78},
			},
		},
		{
			asset: entity.Asset{Symbol: "AAPL", Name: "Apple Inc", AssetType: "global_equity"},
			analysis: entity.SentimentAnalysis{
				SourceURL:         "https://twitter.com/example/status/456",
				ExtractedText:     "Apple faces supply chain challenges",
				ImageSentiment:    &neutral,
				TextSentiment:     "NEGATIVE",
				CombinedSentiment: "NEGATIVE",
				CombinedScore:     -0.4,
				Confidence:        0.65,
				ConfidenceScore:   0.65,
				ImpactLevel:       "MODERATE_NEGATIVE",
				TimeHorizon:       "LONG_TERM",
				Method:            "keyword",
			},
			predictions: []entity.MarketPrediction{
				{CurrentPrice: 175, PredictedPrice: 172, PriceChangePercent: -1.71, SentimentScore: -0.65, PredictionHorizon: 24, Confidence: 0.70},
			},
		},
	}
}

// SeedService inserts demo rows into an empty database.
type SeedService interface {
	Seed(ctx context.Context) (bool, error)
}

// NewSeedService creates a new seed service.
func NewSeedService(
	assetRepo repository.AssetRepository,
	analysisRepo repository.SentimentAnalysisRepository,
	predictionRepo repository.MarketPredictionRepository,
	log *logger.Logger,
) SeedService {
	return &seedService{
		assetRepo:      assetRepo,
		analysisRepo:   analysisRepo,
		predictionRepo: predictionRepo,
		logger:         log,
	}
}

type seedService struct {
	assetRepo      repository.AssetRepository
	analysisRepo   repository.SentimentAnalysisRepository
	predictionRepo repository.MarketPredictionRepository
	logger         *logger.Logger
}

// Seed reports whether demo data was inserted. A database that already holds
// assets is left untouched.
func (s *seedService) Seed(ctx context.Context) (bool, error) {
	n, err := s.assetRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count assets: %w", err)
	}
	if n > 0 {
		s.logger.Info("Database already holds assets, skipping seed", logger.Field("assets", n))
		return false, nil
	}

	for _, d := range demoData() {
		a := d.asset
		stored, err := s.assetRepo.GetOrCreate(ctx, &a)
		if err != nil {
			return false, fmt.Errorf("failed to seed asset %s: %w", d.asset.Symbol, err)
		}

		analysis := d.analysis
		analysis.AnalysisID = uuid.NewString()
		analysis.AssetID = stored.ID
		analysis.KeyInsights = pq.StringArray{analysis.ExtractedText}
		if err := s.analysisRepo.Create(ctx, &analysis); err != nil {
			return false, fmt.Errorf("failed to seed analysis for %s: %w", stored.Symbol, err)
		}

		for _, p := range d.predictions {
			p.AssetID = stored.ID
			if err := s.predictionRepo.Create(ctx, &p); err != nil {
				return false, fmt.Errorf("failed to seed prediction for %s: %w", stored.Symbol, err)
			}
		}
	}

	s.logger.Info("Seeded demo data", logger.IntField("assets", len(demoData())))
	return true, nil
}
