package repository

import (
	"context"

	"golang-market-sentiment/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SentimentAnalysisRepository defines the interface for persisted analyses.
type SentimentAnalysisRepository interface {
	Create(ctx context.Context, analysis *entity.SentimentAnalysis) error
	FindByAsset(ctx context.Context, assetID uint, limit int) ([]entity.SentimentAnalysis, error)
	FindRecent(ctx context.Context, limit int) ([]entity.SentimentAnalysis, error)
	Count(ctx context.Context) (int64, error)
}

// NewSentimentAnalysisRepository creates a new GORM-based analysis repository.
func NewSentimentAnalysisRepository(db *gorm.DB) SentimentAnalysisRepository {
	return &sentimentAnalysisRepository{db: db}
}

type sentimentAnalysisRepository struct {
	db *gorm.DB
}

// Create stores an analysis. Replays of an already stored analysis id are ignored.
func (r *sentimentAnalysisRepository) Create(ctx context.Context, analysis *entity.SentimentAnalysis) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "analysis_id"}},
		DoNothing: true,
	}).Omit(clause.Associations).Create(analysis).Error
}

// FindByAsset returns the analyses of an asset, newest first. A non-positive
// limit returns all of them.
func (r *sentimentAnalysisRepository) FindByAsset(ctx context.Context, assetID uint, limit int) ([]entity.SentimentAnalysis, error) {
	var analyses []entity.SentimentAnalysis
	q := r.db.WithContext(ctx).Where("asset_id = ?", assetID).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&analyses).Error; err != nil {
		return nil, err
	}
	return analyses, nil
}

// FindRecent returns the newest analyses across all assets.
func (r *sentimentAnalysisRepository) FindRecent(ctx context.Context, limit int) ([]entity.SentimentAnalysis, error) {
	var analyses []entity.SentimentAnalysis
	err := r.db.WithContext(ctx).
		Preload("Asset").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&analyses).Error
	if err != nil {
		return nil, err
	}
	return analyses, nil
}

func (r *sentimentAnalysisRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.SentimentAnalysis{}).Count(&n).Error
	return n, err
}
