package http

import (
	"net/http"
	"strconv"

	"golang-market-sentiment/internal/analyzer/dto"
	"golang-market-sentiment/internal/analyzer/service"
	"golang-market-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler handles HTTP requests for sentiment analysis.
type AnalysisHandler struct {
	analysisService service.AnalysisService
	logger          *logger.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService, logger *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, logger: logger}
}

// RegisterRoutes registers the analysis routes to the Echo group.
func (h *AnalysisHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/analyze", h.Analyze)
	g.POST("/analyze-url", h.AnalyzeURL)
}

// RegisterAssetRoutes registers the asset-specific analysis routes.
func (h *AnalysisHandler) RegisterAssetRoutes(g *echo.Group) {
	g.GET("/:id/analyses", h.GetAnalysesByAsset)
}

// Analyze godoc
// @Summary Analyze text sentiment
// @Description Analyze text with an optional image sentiment and estimate its market impact
// @Tags analysis
// @Accept  json
// @Produce  json
// @Param   request  body    dto.AnalyzeRequest   true    "Text to analyze"
// @Success 200 {object} dto.AnalysisResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analyze [post]
func (h *AnalysisHandler) Analyze(c echo.Context) error {
	var req dto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.analysisService.AnalyzeText(requestContext(c), &req)
	if err != nil {
		return respondError(c, h.logger, "Failed to analyze text", err)
	}
	return c.JSON(http.StatusOK, resp)
}

// AnalyzeURL godoc
// @Summary Analyze an article
// @Description Fetch an article, then analyze its text and lead image
// @Tags analysis
// @Accept  json
// @Produce  json
// @Param   request  body    dto.AnalyzeURLRequest   true    "Article to analyze"
// @Success 200 {object} dto.URLAnalysisResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analyze-url [post]
func (h *AnalysisHandler) AnalyzeURL(c echo.Context) error {
	var req dto.AnalyzeURLRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.analysisService.AnalyzeURL(requestContext(c), &req)
	if err != nil {
		return respondError(c, h.logger, "Failed to analyze article", err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetAnalysesByAsset godoc
// @Summary Get analyses for an asset
// @Description Get the stored analyses of an asset, newest first
// @Tags assets
// @Produce  json
// @Param   id  path    int true    "Asset ID"
// @Success 200 {object} dto.AssetAnalysesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /assets/{id}/analyses [get]
func (h *AnalysisHandler) GetAnalysesByAsset(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid asset ID"})
	}

	resp, err := h.analysisService.ListAnalysesByAsset(c.Request().Context(), uint(id))
	if err != nil {
		return respondError(c, h.logger, "Failed to get analyses", err)
	}
	return c.JSON(http.StatusOK, resp)
}
