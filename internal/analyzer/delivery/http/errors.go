package http

import (
	"context"
	"errors"
	"net/http"

	"golang-market-sentiment/internal/analyzer/repository"
	"golang-market-sentiment/internal/analyzer/service"
	"golang-market-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// respondError maps service errors to status codes. Internal errors are logged
// and answered with a generic message.
func respondError(c echo.Context, log *logger.Logger, msg string, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Asset not found"})
	default:
		log.Error(msg, logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
	}
}

// requestContext carries the X-Request-ID assigned by the middleware into
// service logs.
func requestContext(c echo.Context) context.Context {
	return logger.ContextWithRequestID(c.Request().Context(), c.Response().Header().Get(echo.HeaderXRequestID))
}
