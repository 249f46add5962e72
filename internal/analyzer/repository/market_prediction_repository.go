package repository

import (
	"context"

	"golang-market-sentiment/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MarketPredictionRepository defines the interface for stored predictions.
type MarketPredictionRepository interface {
	Create(ctx context.Context, prediction *entity.MarketPrediction) error
	FindByAsset(ctx context.Context, assetID uint) ([]entity.MarketPrediction, error)
	Count(ctx context.Context) (int64, error)
}

// NewMarketPredictionRepository creates a new GORM-based prediction repository.
func NewMarketPredictionRepository(db *gorm.DB) MarketPredictionRepository {
	return &marketPredictionRepository{db: db}
}

type marketPredictionRepository struct {
	db *gorm.DB
}

func (r *marketPredictionRepository) Create(ctx context.Context, prediction *entity.MarketPrediction) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(prediction).Error
}

// FindByAsset returns the predictions of an asset, newest first.
func (r *marketPredictionRepository) FindByAsset(ctx context.Context, assetID uint) ([]entity.MarketPrediction, error) {
	var predictions []entity.MarketPrediction
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("created_at DESC, id DESC").
		Find(&predictions).Error
	if err != nil {
		return nil, err
	}
	return predictions, nil
}

func (r *marketPredictionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.MarketPrediction{}).Count(&n).Error
	return n, err
}
