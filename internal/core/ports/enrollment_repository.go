package ports

import (
	"context"
	"time"

	"github.com/Phanuelx/Education-App/internal/core/domain"
)

// EnrollmentRepository defines persistence operations for the ledger.
type EnrollmentRepository interface {
	// Create fails with domain.ErrDuplicateEnrollment when the
	// (user, course) pair already has a record, whatever its status.
	Create(ctx context.Context, enrollment *domain.Enrollment) error
	FindByID(ctx context.Context, id string) (*domain.Enrollment, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]*domain.Enrollment, error)
	// UpdateStatus atomically sets status and updated_at and returns the new record.
	UpdateStatus(ctx context.Context, id string, status domain.EnrollmentStatus, at time.Time) (*domain.Enrollment, error)
	Delete(ctx context.Context, id string) error
}
