package ports

import (
	"context"

	"github.com/Phanuelx/Education-App/internal/core/domain"
)

// ClassRepository defines persistence operations for scheduled sessions.
// Course and instructor references are stored as given.
type ClassRepository interface {
	Create(ctx context.Context, class *domain.Class) error
	FindByID(ctx context.Context, id string) (*domain.Class, error)
	// List returns every session; an empty instructorID means no filter.
	List(ctx context.Context, instructorID string) ([]*domain.Class, error)
	Update(ctx context.Context, class *domain.Class) error
	Delete(ctx context.Context, id string) error
}
