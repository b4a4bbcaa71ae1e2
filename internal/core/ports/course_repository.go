package ports

import (
	"context"

	"github.com/Phanuelx/Education-App/internal/core/domain"
)

// CourseListFilter carries query parameters for course listings.
type CourseListFilter struct {
	PublishedOnly bool
	Page          int // 1-based
	Limit         int
}

// CourseRepository defines persistence operations for the catalog.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	// FindByIDs returns the courses that still exist; missing ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Course, error)
	// List returns a page sorted by creation descending and the total count.
	List(ctx context.Context, filter CourseListFilter) ([]*domain.Course, int64, error)
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id string) error
}
