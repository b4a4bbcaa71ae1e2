package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Phanuelx/Education-App/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// errors to status codes and renders {"error": "<message>"}. Unexpected
// errors are logged and answered with a generic message.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error()
	}

	// Authentication failures carry a generic message so the response does
	// not reveal which check failed.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInactiveAccount):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrInvalidOrExpired):
		return http.StatusUnauthorized, domain.ErrInvalidOrExpired.Error()
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, domain.ErrInvalidToken.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrDuplicateIdentity):
		return http.StatusConflict, domain.ErrDuplicateIdentity.Error()
	case errors.Is(err, domain.ErrDuplicateEnrollment):
		return http.StatusConflict, domain.ErrDuplicateEnrollment.Error()
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, notFoundMessage(err)
	case errors.Is(err, domain.ErrUnavailable):
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("backing service unavailable")
		return http.StatusServiceUnavailable, "service temporarily unavailable"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// notFoundMessage keeps the entity name ("course not found") and drops any
// operation prefix added by the service layer.
func notFoundMessage(err error) string {
	for _, target := range []error{
		domain.ErrUserNotFound,
		domain.ErrCourseNotFound,
		domain.ErrClassNotFound,
		domain.ErrEnrollmentNotFound,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return domain.ErrNotFound.Error()
}
