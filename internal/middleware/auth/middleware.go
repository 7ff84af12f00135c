package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/grocerease/grocery-shop/internal/tokens"
)

type Middleware struct {
	JWTSecret []byte
}

func New(secret []byte) *Middleware {
	return &Middleware{JWTSecret: secret}
}

// RequireAuth resolves the caller from the access-token cookie and injects
// the user id into the echo context; services never read ambient identity.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(next, "")
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(next, "admin")
}

func (m *Middleware) require(next echo.HandlerFunc, role string) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie("accessToken")
		if err != nil || cookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(cookie.Value, m.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}
		if role != "" && claims.Role != role {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}

		userID, err := claims.UserID()
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid subject claim")
		}

		c.Set("user_id", userID)
		c.Set("role", claims.Role)
		return next(c)
	}
}
