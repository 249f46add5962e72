package http

import (
	"net/http"
	"strconv"

	"golang-market-sentiment/internal/analyzer/dto"
	"golang-market-sentiment/internal/analyzer/service"
	"golang-market-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PredictionHandler handles HTTP requests for price predictions.
type PredictionHandler struct {
	predictionService service.PredictionService
	logger            *logger.Logger
}

// NewPredictionHandler creates a new PredictionHandler.
func NewPredictionHandler(predictionService service.PredictionService, logger *logger.Logger) *PredictionHandler {
	return &PredictionHandler{predictionService: predictionService, logger: logger}
}

// RegisterRoutes registers the prediction route to the Echo group.
func (h *PredictionHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/predict", h.CreatePrediction)
}

// RegisterAssetRoutes registers the asset-specific prediction routes.
func (h *PredictionHandler) RegisterAssetRoutes(g *echo.Group) {
	g.GET("/:id/predictions", h.GetPredictionsByAsset)
}

// CreatePrediction godoc
// @Summary Create a price prediction
// @Description Project the price of an asset from a sentiment score
// @Tags predictions
// @Accept  json
// @Produce  json
// @Param   request  body    dto.PredictRequest   true    "Prediction input"
// @Success 201 {object} dto.PredictionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /predict [post]
func (h *PredictionHandler) CreatePrediction(c echo.Context) error {
	var req dto.PredictRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.predictionService.CreatePrediction(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, h.logger, "Failed to create prediction", err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// GetPredictionsByAsset godoc
// @Summary Get predictions for an asset
// @Description Get the stored predictions of an asset, newest first
// @Tags assets
// @Produce  json
// @Param   id  path    int true    "Asset ID"
// @Success 200 {object} dto.AssetPredictionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /assets/{id}/predictions [get]
func (h *PredictionHandler) GetPredictionsByAsset(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid asset ID"})
	}

	resp, err := h.predictionService.ListByAsset(c.Request().Context(), uint(id))
	if err != nil {
		return respondError(c, h.logger, "Failed to get predictions", err)
	}
	return c.JSON(http.StatusOK, resp)
}
