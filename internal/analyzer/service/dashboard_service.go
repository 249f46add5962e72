package service

import (
	"context"
	"fmt"

	"golang-market-sentiment/internal/analyzer/dto"
	"golang-market-sentiment/internal/analyzer/repository"
	"golang-market-sentiment/pkg/logger"
)

const recentAnalysesLimit = 5

// DashboardService defines the interface for the dashboard summary.
type DashboardService interface {
	Stats(ctx context.Context) (*dto.DashboardResponse, error)
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	assetRepo repository.AssetRepository,
	analysisRepo repository.SentimentAnalysisRepository,
	predictionRepo repository.MarketPredictionRepository,
	log *logger.Logger,
) DashboardService {
	return &dashboardService{
		assetRepo:      assetRepo,
		analysisRepo:   analysisRepo,
		predictionRepo: predictionRepo,
		logger:         log,
	}
}

type dashboardService struct {
	assetRepo      repository.AssetRepository
	analysisRepo   repository.SentimentAnalysisRepository
	predictionRepo repository.MarketPredictionRepository
	logger         *logger.Logger
}

// Stats returns table totals and the most recent analyses.
func (s *dashboardService) Stats(ctx context.Context) (*dto.DashboardResponse, error) {
	var (
		resp = &dto.DashboardResponse{RecentAnalyses: []dto.RecentAnalysis{}}
		err  error
	)
	if resp.Stats.TotalAssets, err = s.assetRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count assets: %w", err)
	}
	if resp.Stats.TotalAnalyses, err = s.analysisRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count analyses: %w", err)
	}
	if resp.Stats.TotalPredictions, err = s.predictionRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count predictions: %w", err)
	}

	recent, err := s.analysisRepo.FindRecent(ctx, recentAnalysesLimit)
	if err != nil {
		s.logger.Error("Failed to load recent analyses", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to load recent analyses: %w", err)
	}
	for _, a := range recent {
		symbol := ""
		if a.Asset != nil {
			symbol = a.Asset.Symbol
		}
		resp.RecentAnalyses = append(resp.RecentAnalyses, dto.RecentAnalysis{
			ID:          a.ID,
			AssetSymbol: symbol,
			Sentiment:   a.CombinedSentiment,
			ImpactLevel: a.ImpactLevel,
			Confidence:  a.ConfidenceScore,
			CreatedAt:   a.CreatedAt,
		})
	}
	return resp, nil
}
