package ports

import (
	"context"

	"github.com/Phanuelx/Education-App/internal/core/domain"
)

// EnrollmentDetail pairs an enrollment with its resolved references. Course
// or Student is nil when the referenced record no longer exists.
type EnrollmentDetail struct {
	Enrollment *domain.Enrollment
	Course     *domain.Course
	Student    *domain.User
}

// EnrollmentService is the ledger use-case surface.
type EnrollmentService interface {
	Enroll(ctx context.Context, courseID, studentID string) (*domain.Enrollment, error)
	Get(ctx context.Context, id string) (*domain.Enrollment, error)
	ListByStudent(ctx context.Context, studentID string) ([]EnrollmentDetail, error)
	ListByCourse(ctx context.Context, courseID string) ([]EnrollmentDetail, error)
	SetStatus(ctx context.Context, id, status string) (*domain.Enrollment, error)
	Delete(ctx context.Context, id string) error
}
