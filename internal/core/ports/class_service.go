package ports

import (
	"context"
	"time"

	"github.com/Phanuelx/Education-App/internal/core/domain"
)

// CreateClassInput carries a new scheduled session.
type CreateClassInput struct {
	Title             string
	Description       string
	ScheduledDateTime time.Time
	DurationMinutes   int
	Status            string
	MeetingLink       string
}

// ClassPatch lists the session fields an update may change. Nil means keep.
type ClassPatch struct {
	Title             *string
	Description       *string
	ScheduledDateTime *time.Time
	DurationMinutes   *int
	Status            *string
	MeetingLink       *string
}

// ClassService is the scheduler use-case surface.
type ClassService interface {
	Create(ctx context.Context, courseID, instructorID string, in CreateClassInput) (*domain.Class, error)
	Get(ctx context.Context, id string) (*domain.Class, error)
	ListAll(ctx context.Context) ([]*domain.Class, error)
	Update(ctx context.Context, id string, patch ClassPatch) (*domain.Class, error)
	Delete(ctx context.Context, id string) error

	// Upcoming selects sessions of courseIDs starting within horizonDays.
	Upcoming(ctx context.Context, courseIDs []string, horizonDays int) ([]*domain.Class, error)
	StudentAgenda(ctx context.Context, studentID string, horizonDays int) ([]*domain.Class, error)
	InstructorAgenda(ctx context.Context, instructorID string, horizonDays int) ([]*domain.Class, error)
}
