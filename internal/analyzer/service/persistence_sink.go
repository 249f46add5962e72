package service

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-market-sentiment/internal/analysis/engine"
	"golang-market-sentiment/internal/analyzer/repository"
	"golang-market-sentiment/internal/entity"
	"golang-market-sentiment/pkg/logger"
	"golang-market-sentiment/pkg/utils"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	maxStoredTextRunes = 5000
	generalMarketName  = "General Market"
	generalMarketType  = "market"
)

// NewPersistenceSink stores every analysis in PostgreSQL, creating its asset
// row on first sight.
func NewPersistenceSink(assetRepo repository.AssetRepository, analysisRepo repository.SentimentAnalysisRepository, log *logger.Logger) engine.Sink {
	return &persistenceSink{
		assetRepo:    assetRepo,
		analysisRepo: analysisRepo,
		logger:       log,
	}
}

type persistenceSink struct {
	assetRepo    repository.AssetRepository
	analysisRepo repository.SentimentAnalysisRepository
	logger       *logger.Logger
}

func (s *persistenceSink) Consume(ctx context.Context, result *engine.AnalysisResult) error {
	asset, err := s.assetRepo.GetOrCreate(ctx, assetRow(result))
	if err != nil {
		return fmt.Errorf("failed to resolve asset: %w", err)
	}

	row, err := analysisRow(result, asset.ID, SourceFromContext(ctx))
	if err != nil {
		return err
	}
	if err := s.analysisRepo.Create(ctx, row); err != nil {
		return fmt.Errorf("failed to store analysis %s: %w", result.ID, err)
	}

	s.logger.Debug("Analysis stored",
		logger.StringField("analysis_id", result.ID),
		logger.StringField("symbol", asset.Symbol),
	)
	return nil
}

func assetRow(result *engine.AnalysisResult) *entity.Asset {
	if result.DetectedAsset == nil {
		return &entity.Asset{
			Symbol:    entity.GeneralMarketSymbol,
			Name:      generalMarketName,
			AssetType: generalMarketType,
		}
	}
	return &entity.Asset{
		Symbol:    *result.DetectedAsset,
		Name:      result.AssetName,
		AssetType: result.AssetType,
	}
}

func analysisRow(result *engine.AnalysisResult, assetID uint, src Source) (*entity.SentimentAnalysis, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}

	sa := result.SentimentAnalysis
	row := &entity.SentimentAnalysis{
		AnalysisID:        result.ID,
		AssetID:           assetID,
		SourceURL:         src.URL,
		ArticleTitle:      src.Title,
		ExtractedText:     utils.Truncate(result.Text, maxStoredTextRunes),
		TextSentiment:     string(sa.TextSentiment.Label),
		CombinedSentiment: string(sa.CombinedSentiment.Label),
		CombinedScore:     sa.CombinedScore,
		Confidence:        sa.Confidence,
		ConfidenceScore:   result.ConfidenceScore,
		ImpactLevel:       string(result.MarketImpact.ImpactLevel),
		TimeHorizon:       string(result.MarketImpact.TimeHorizon),
		Method:            string(sa.Method),
		KeyInsights:       pq.StringArray(append([]string{}, result.KeyInsights...)),
		RawResult:         datatypes.JSON(raw),
		CreatedAt:         result.AnalysisTimestamp,
	}
	if sa.ImageSentiment != nil {
		label := string(sa.ImageSentiment.Label)
		row.ImageSentiment = &label
	}
	return row, nil
}
