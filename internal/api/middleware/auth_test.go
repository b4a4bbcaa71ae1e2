package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Phanuelx/Education-App/internal/core/domain"
)

type stubParser map[string]domain.Principal

func (s stubParser) ParseToken(token string) (domain.Principal, error) {
	p, ok := s[token]
	if !ok {
		return domain.Principal{}, domain.ErrInvalidToken
	}
	return p, nil
}

var parser = stubParser{"good": {UserID: "u1", Role: domain.RoleAdmin}}

func run(t *testing.T, mw echo.MiddlewareFunc, header string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := mw(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	called := false
	rec := run(t, Auth(parser), "Bearer good", func(c echo.Context) error {
		called = true
		p, ok := PrincipalFrom(c)
		if !ok {
			t.Fatalf("principal not set")
		}
		if p.UserID != "u1" || p.Role != domain.RoleAdmin {
			t.Fatalf("unexpected principal: %+v", p)
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing header":        "",
		"invalid header format": "Token abc",
		"invalid token":         "Bearer not-a-token",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec := run(t, Auth(parser), header, func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	var seen bool
	rec := run(t, OptionalAuth(parser), "", func(c echo.Context) error {
		_, seen = PrincipalFrom(c)
		return c.NoContent(http.StatusOK)
	})
	if rec.Code != http.StatusOK || seen {
		t.Fatalf("anonymous request should pass without principal, got %d %v", rec.Code, seen)
	}

	rec = run(t, OptionalAuth(parser), "Bearer good", func(c echo.Context) error {
		_, seen = PrincipalFrom(c)
		return c.NoContent(http.StatusOK)
	})
	if rec.Code != http.StatusOK || !seen {
		t.Fatalf("expected principal for valid token, got %d %v", rec.Code, seen)
	}

	rec = run(t, OptionalAuth(parser), "Bearer bad", func(c echo.Context) error {
		return errors.New("should not reach next")
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a bad token, got %d", rec.Code)
	}
}
