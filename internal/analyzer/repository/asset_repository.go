package repository

import (
	"context"
	"fmt"

	"golang-market-sentiment/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssetRepository defines the interface for interacting with asset data.
type AssetRepository interface {
	GetOrCreate(ctx context.Context, asset *entity.Asset) (*entity.Asset, error)
	FindAll(ctx context.Context) ([]entity.Asset, error)
	FindByID(ctx context.Context, id uint) (*entity.Asset, error)
	Count(ctx context.Context) (int64, error)
}

// NewAssetRepository creates a new GORM-based asset repository.
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

type assetRepository struct {
	db *gorm.DB
}

// GetOrCreate inserts the asset unless its symbol is already known and returns
// the stored row.
func (r *assetRepository) GetOrCreate(ctx context.Context, asset *entity.Asset) (*entity.Asset, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoNothing: true,
	}).Create(asset).Error
	if err != nil {
		return nil, fmt.Errorf("failed to insert asset %s: %w", asset.Symbol, err)
	}

	var stored entity.Asset
	if err := r.db.WithContext(ctx).Where("symbol = ?", asset.Symbol).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to load asset %s: %w", asset.Symbol, translateError(err))
	}
	return &stored, nil
}

// FindAll returns every asset ordered by symbol.
func (r *assetRepository) FindAll(ctx context.Context) ([]entity.Asset, error) {
	var assets []entity.Asset
	if err := r.db.WithContext(ctx).Order("symbol ASC").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// FindByID retrieves an asset by its ID.
func (r *assetRepository) FindByID(ctx context.Context, id uint) (*entity.Asset, error) {
	var asset entity.Asset
	if err := r.db.WithContext(ctx).First(&asset, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &asset, nil
}

func (r *assetRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Asset{}).Count(&n).Error
	return n, err
}
