package http

import (
	"net/http"

	"golang-market-sentiment/internal/analyzer/service"
	"golang-market-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AssetHandler handles HTTP requests for assets.
type AssetHandler struct {
	assetService service.AssetService
	logger       *logger.Logger
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService service.AssetService, logger *logger.Logger) *AssetHandler {
	return &AssetHandler{assetService: assetService, logger: logger}
}

// RegisterRoutes registers the asset routes to the Echo group.
func (h *AssetHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetAllAssets)
}

// RegisterCatalogRoutes registers the catalog route.
func (h *AssetHandler) RegisterCatalogRoutes(g *echo.Group) {
	g.GET("/catalog", h.GetCatalog)
}

// GetAllAssets godoc
// @Summary Get all assets
// @Description Get every asset that has at least one stored analysis
// @Tags assets
// @Produce  json
// @Success 200 {object} dto.AssetListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /assets [get]
func (h *AssetHandler) GetAllAssets(c echo.Context) error {
	assets, err := h.assetService.ListAssets(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, "Failed to get assets", err)
	}
	return c.JSON(http.StatusOK, assets)
}

// GetCatalog godoc
// @Summary Get the asset catalog
// @Description Get the assets the engine can detect, in priority order
// @Tags assets
// @Produce  json
// @Success 200 {object} dto.CatalogResponse
// @Router /catalog [get]
func (h *AssetHandler) GetCatalog(c echo.Context) error {
	return c.JSON(http.StatusOK, h.assetService.Catalog())
}
