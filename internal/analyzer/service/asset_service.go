package service

import (
	"context"
	"fmt"

	"golang-market-sentiment/internal/analysis/asset"
	"golang-market-sentiment/internal/analyzer/dto"
	"golang-market-sentiment/internal/analyzer/repository"
	"golang-market-sentiment/pkg/logger"
)

// AssetService defines the interface for tracked and detectable assets.
type AssetService interface {
	ListAssets(ctx context.Context) (*dto.AssetListResponse, error)
	Catalog() *dto.CatalogResponse
}

// NewAssetService creates a new asset service.
func NewAssetService(assetRepo repository.AssetRepository, catalog *asset.Catalog, log *logger.Logger) AssetService {
	return &assetService{assetRepo: assetRepo, catalog: catalog, logger: log}
}

type assetService struct {
	assetRepo repository.AssetRepository
	catalog   *asset.Catalog
	logger    *logger.Logger
}

// ListAssets returns every asset that has been analyzed at least once.
func (s *assetService) ListAssets(ctx context.Context) (*dto.AssetListResponse, error) {
	assets, err := s.assetRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list assets", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	resp := &dto.AssetListResponse{Assets: make([]dto.AssetResponse, 0, len(assets))}
	for _, a := range assets {
		resp.Assets = append(resp.Assets, dto.AssetResponse{
			ID:        a.ID,
			Symbol:    a.Symbol,
			Name:      a.Name,
			AssetType: a.AssetType,
		})
	}
	return resp, nil
}

// Catalog returns the detectable assets in priority order.
func (s *assetService) Catalog() *dto.CatalogResponse {
	descriptors := s.catalog.Descriptors()
	resp := &dto.CatalogResponse{Assets: make([]dto.CatalogEntry, 0, len(descriptors))}
	for _, d := range descriptors {
		resp.Assets = append(resp.Assets, dto.CatalogEntry{
			Symbol:       d.Symbol,
			DisplayName:  d.DisplayName,
			AssetType:    string(d.Type),
			Aliases:      d.Aliases,
			PriorityRank: d.PriorityRank,
		})
	}
	return resp
}
