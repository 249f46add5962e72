package http

import (
	"net/http"

	"golang-market-sentiment/internal/analyzer/service"
	"golang-market-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the dashboard summary.
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, logger: logger}
}

// RegisterRoutes registers the dashboard route to the Echo group.
func (h *DashboardHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/dashboard", h.GetDashboard)
}

// GetDashboard godoc
// @Summary Get dashboard statistics
// @Description Get table totals and the five most recent analyses
// @Tags dashboard
// @Produce  json
// @Success 200 {object} dto.DashboardResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	resp, err := h.dashboardService.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, "Failed to get dashboard", err)
	}
	return c.JSON(http.StatusOK, resp)
}
