package handler

import (
	"errors"
	"testing"

	"github.com/Phanuelx/Education-App/internal/core/domain"
)

func TestValidator_ReportsJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&loginRequest{Email: "not-an-email", Password: "x"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	if ve.Field != "email" || ve.Reason != "must be a valid email" {
		t.Fatalf("unexpected error: %+v", ve)
	}
}

func TestValidator_JoinsMultipleFailures(t *testing.T) {
	err := NewValidator().Validate(&createCourseRequest{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if got := err.Error(); got != "title is required; category is required; level is required" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestValidator_Passes(t *testing.T) {
	if err := NewValidator().Validate(&loginRequest{Email: "a@b.co", Password: "x"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
