package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/placehirex/placement-backend/internal/logging"
	"github.com/placehirex/placement-backend/internal/service"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Register(ctx, req.Email, req.Password)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, authResponse{
		Token:     res.Token,
		TokenType: res.TokenType,
		ExpiresIn: res.ExpiresIn,
		Role:      res.Role,
		Email:     res.Email,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, authResponse{
		Token:     res.Token,
		TokenType: res.TokenType,
		ExpiresIn: res.ExpiresIn,
		Role:      res.Role,
		Email:     res.Email,
	})
}
