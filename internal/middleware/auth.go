package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/placehirex/placement-backend/internal/tokens"
)

const (
	contextSubject = "subject"
	contextRole    = "role"

	bearerPrefix = "Bearer "
)

// AccessGuard authenticates requests from a bearer token. Missing or
// invalid tokens are 401; a valid token with the wrong role is 403.
type AccessGuard struct {
	Codec *tokens.Codec
}

func NewAccessGuard(codec *tokens.Codec) *AccessGuard {
	return &AccessGuard{Codec: codec}
}

func (g *AccessGuard) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		claims, err := g.Codec.Decode(strings.TrimPrefix(header, bearerPrefix), time.Now().UTC())
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		role, err := tokens.ParseRole(claims.Role)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(contextSubject, claims.Subject)
		c.Set(contextRole, role)
		return next(c)
	}
}

func (g *AccessGuard) RequireRole(required tokens.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			current, ok := c.Get(contextRole).(tokens.Role)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			if current != required {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}

// Principal returns the authenticated subject and role set by
// RequireAuth for the current request.
func Principal(c echo.Context) (string, tokens.Role, bool) {
	subject, ok := c.Get(contextSubject).(string)
	if !ok || subject == "" {
		return "", "", false
	}
	role, ok := c.Get(contextRole).(tokens.Role)
	if !ok {
		return "", "", false
	}
	return subject, role, true
}
