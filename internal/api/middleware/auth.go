package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Phanuelx/Education-App/internal/core/domain"
)

// principalKey is the echo context key holding the verified domain.Principal.
const principalKey = "principal"

// TokenParser verifies a session token and returns the caller identity.
type TokenParser interface {
	ParseToken(token string) (domain.Principal, error)
}

// Auth requires a valid bearer session token and injects the principal into context.
func Auth(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			if err := authenticate(c, parser, authHeader); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// OptionalAuth behaves like Auth when an Authorization header is present and
// lets anonymous requests through otherwise.
func OptionalAuth(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
				if err := authenticate(c, parser, authHeader); err != nil {
					return err
				}
			}
			return next(c)
		}
	}
}

func authenticate(c echo.Context, parser TokenParser, authHeader string) error {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	p, err := parser.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	c.Set(principalKey, p)
	return nil
}

// PrincipalFrom returns the principal stored by Auth or OptionalAuth.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	if !ok || p.UserID == "" {
		return domain.Principal{}, false
	}
	return p, true
}

// WithPrincipal stores p in the context. Handler tests use it to skip token parsing.
func WithPrincipal(c echo.Context, p domain.Principal) {
	c.Set(principalKey, p)
}
