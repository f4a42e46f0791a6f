package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/placehirex/placement-backend/internal/mlclient"
	"github.com/placehirex/placement-backend/internal/service"
)

// toHTTPError maps classified service errors onto their fixed status
// class. Anything unclassified becomes an opaque 500.
func toHTTPError(err error) error {
	var predErr *mlclient.PredictionError
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, service.ErrValidation.Error())
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, service.ErrConflict.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
	case errors.As(err, &predErr):
		return echo.NewHTTPError(predErr.Status, predErr.Message)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
