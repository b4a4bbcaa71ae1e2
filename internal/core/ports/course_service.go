package ports

import (
	"context"

	"github.com/Phanuelx/Education-App/internal/core/domain"
)

// CreateCourseInput carries a new catalog entry. Enumerations are parsed by
// the service so that invalid values surface as validation errors.
type CreateCourseInput struct {
	Title             string
	Description       string
	Category          string
	Level             string
	PublicationStatus string
	OwnerID           string
}

// CoursePatch lists the course fields an update may change. Nil means keep.
type CoursePatch struct {
	Title             *string
	Description       *string
	Category          *string
	Level             *string
	PublicationStatus *string
}

// CoursePage is one page of courses.
type CoursePage struct {
	Items []*domain.Course
	PageInfo
}

// CourseService is the catalog use-case surface. ListPublished is the only
// listing meant for student and anonymous callers.
type CourseService interface {
	Create(ctx context.Context, in CreateCourseInput) (*domain.Course, error)
	Get(ctx context.Context, id string) (*domain.Course, error)
	ListPublished(ctx context.Context, page, pageSize int) (*CoursePage, error)
	ListAll(ctx context.Context, page, pageSize int) (*CoursePage, error)
	Update(ctx context.Context, id string, patch CoursePatch) (*domain.Course, error)
	Delete(ctx context.Context, id string) error
}
