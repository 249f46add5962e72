package service

import (
	"context"
	"fmt"
	"math"

	"golang-market-sentiment/internal/analyzer/dto"
	"golang-market-sentiment/internal/analyzer/repository"
	"golang-market-sentiment/internal/entity"
	"golang-market-sentiment/pkg/logger"
)

const (
	defaultHorizonHours = 24
	maxHorizonHours     = 24 * 30
	// volatilityFactor is the price move per day at full sentiment.
	volatilityFactor = 0.02
)

// Projection is a sentiment-driven price projection. It is a heuristic, not a
// forecast with measured accuracy.
type Projection struct {
	PredictedPrice     float64
	PriceChangePercent float64
	Confidence         float64
}

// ProjectPrice scales the daily volatility factor by sentiment and horizon.
// All outputs are rounded to two decimals.
func ProjectPrice(sentimentScore, currentPrice float64, horizonHours int) Projection {
	impact := sentimentScore * volatilityFactor * (float64(horizonHours) / 24.0)
	return Projection{
		PredictedPrice:     round2(currentPrice * (1 + impact)),
		PriceChangePercent: round2(impact * 100),
		Confidence:         round2(math.Min(0.95, 0.6+math.Abs(sentimentScore)*0.3)),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PredictionService defines the interface for price predictions.
type PredictionService interface {
	CreatePrediction(ctx context.Context, req *dto.PredictRequest) (*dto.PredictionResponse, error)
	ListByAsset(ctx context.Context, assetID uint) (*dto.AssetPredictionsResponse, error)
}

// NewPredictionService creates a new prediction service.
func NewPredictionService(assetRepo repository.AssetRepository, predictionRepo repository.MarketPredictionRepository, log *logger.Logger) PredictionService {
	return &predictionService{assetRepo: assetRepo, predictionRepo: predictionRepo, logger: log}
}

type predictionService struct {
	assetRepo      repository.AssetRepository
	predictionRepo repository.MarketPredictionRepository
	logger         *logger.Logger
}

// CreatePrediction projects and stores a price for a tracked asset.
func (s *predictionService) CreatePrediction(ctx context.Context, req *dto.PredictRequest) (*dto.PredictionResponse, error) {
	if req.AssetID == 0 || req.CurrentPrice <= 0 {
		return nil, fmt.Errorf("%w: asset_id and a positive current_price are required", ErrInvalidRequest)
	}
	if math.IsNaN(req.SentimentScore) || req.SentimentScore < -1 || req.SentimentScore > 1 {
		return nil, fmt.Errorf("%w: sentiment_score must be within [-1, 1]", ErrInvalidRequest)
	}
	horizon := req.HorizonHours
	if horizon == 0 {
		horizon = defaultHorizonHours
	}
	if horizon < 0 || horizon > maxHorizonHours {
		return nil, fmt.Errorf("%w: horizon_hours must be within 1 and %d", ErrInvalidRequest, maxHorizonHours)
	}

	asset, err := s.assetRepo.FindByID(ctx, req.AssetID)
	if err != nil {
		return nil, err
	}

	p := ProjectPrice(req.SentimentScore, req.CurrentPrice, horizon)
	prediction := &entity.MarketPrediction{
		AssetID:            req.AssetID,
		CurrentPrice:       req.CurrentPrice,
		PredictedPrice:     p.PredictedPrice,
		PriceChangePercent: p.PriceChangePercent,
		SentimentScore:     req.SentimentScore,
		PredictionHorizon:  horizon,
		Confidence:         p.Confidence,
	}
	if err := s.predictionRepo.Create(ctx, prediction); err != nil {
		s.logger.Error("Failed to store prediction", logger.ErrorField(err), logger.Field("asset_id", req.AssetID))
		return nil, fmt.Errorf("failed to store prediction: %w", err)
	}
	s.logger.Info("Prediction stored",
		logger.StringField("symbol", asset.Symbol),
		logger.Float64Field("predicted_price", prediction.PredictedPrice),
		logger.IntField("horizon_hours", horizon),
	)

	resp := toPredictionResponse(*prediction)
	return &resp, nil
}

// ListByAsset returns the stored predictions of an asset, newest first.
func (s *predictionService) ListByAsset(ctx context.Context, assetID uint) (*dto.AssetPredictionsResponse, error) {
	asset, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	predictions, err := s.predictionRepo.FindByAsset(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}

	resp := &dto.AssetPredictionsResponse{
		Asset:       dto.AssetRef{ID: asset.ID, Symbol: asset.Symbol, Name: asset.Name},
		Predictions: make([]dto.PredictionResponse, 0, len(predictions)),
	}
	for _, p := range predictions {
		resp.Predictions = append(resp.Predictions, toPredictionResponse(p))
	}
	return resp, nil
}

func toPredictionResponse(p entity.MarketPrediction) dto.PredictionResponse {
	return dto.PredictionResponse{
		ID:                 p.ID,
		CurrentPrice:       p.CurrentPrice,
		PredictedPrice:     p.PredictedPrice,
		PriceChangePercent: p.PriceChangePercent,
		SentimentScore:     p.SentimentScore,
		HorizonHours:       p.PredictionHorizon,
		Confidence:         p.Confidence,
		CreatedAt:          p.CreatedAt,
	}
}
