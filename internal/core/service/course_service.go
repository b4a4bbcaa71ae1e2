package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Phanuelx/Education-App/internal/core/domain"
	"github.com/Phanuelx/Education-App/internal/core/ports"
	"github.com/Phanuelx/Education-App/internal/metrics"
)

// CourseService implements the course catalog.
type CourseService struct {
	repo  ports.CourseRepository
	log   zerolog.Logger
	now   func() time.Time
	newID func() string
}

var _ ports.CourseService = (*CourseService)(nil)

func NewCourseService(repo ports.CourseRepository, log zerolog.Logger) *CourseService {
	return &CourseService{
		repo:  repo,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

func (s *CourseService) Create(ctx context.Context, in ports.CreateCourseInput) (*domain.Course, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.NewValidationError("title", "is required")
	}
	category, err := domain.ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}
	level, err := domain.ParseLevel(in.Level)
	if err != nil {
		return nil, err
	}
	publication, err := domain.ParsePublicationStatus(in.PublicationStatus)
	if err != nil {
		return nil, err
	}

	now := s.now()
	course := &domain.Course{
		ID:                s.newID(),
		Title:             title,
		Description:       strings.TrimSpace(in.Description),
		Category:          category,
		Level:             level,
		PublicationStatus: publication,
		OwnerID:           in.OwnerID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		s.log.Error().Err(err).Msg("failed to create course")
		return nil, fmt.Errorf("create course: %w", err)
	}

	metrics.CoursesCreatedTotal.WithLabelValues(string(category)).Inc()
	s.log.Info().Str("course_id", course.ID).Str("owner_id", course.OwnerID).Msg("course created")
	return course, nil
}

func (s *CourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	return s.repo.FindByID(ctx, id)
}

// ListPublished returns the public catalog, newest first.
func (s *CourseService) ListPublished(ctx context.Context, page, pageSize int) (*ports.CoursePage, error) {
	return s.list(ctx, true, page, pageSize)
}

// ListAll includes drafts and archived courses.
func (s *CourseService) ListAll(ctx context.Context, page, pageSize int) (*ports.CoursePage, error) {
	return s.list(ctx, false, page, pageSize)
}

func (s *CourseService) list(ctx context.Context, publishedOnly bool, page, pageSize int) (*ports.CoursePage, error) {
	page, pageSize = ports.NormalizePage(page, pageSize)
	items, total, err := s.repo.List(ctx, ports.CourseListFilter{
		PublishedOnly: publishedOnly,
		Page:          page,
		Limit:         pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	if items == nil {
		items = []*domain.Course{}
	}
	return &ports.CoursePage{Items: items, PageInfo: ports.NewPageInfo(total, page, pageSize)}, nil
}

func (s *CourseService) Update(ctx context.Context, id string, patch ports.CoursePatch) (*domain.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, domain.NewValidationError("title", "cannot be empty")
		}
		course.Title = title
	}
	if patch.Description != nil {
		course.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		if course.Category, err = domain.ParseCategory(*patch.Category); err != nil {
			return nil, err
		}
	}
	if patch.Level != nil {
		if course.Level, err = domain.ParseLevel(*patch.Level); err != nil {
			return nil, err
		}
	}
	if patch.PublicationStatus != nil {
		if strings.TrimSpace(*patch.PublicationStatus) == "" {
			return nil, domain.NewValidationError("publication_status", "cannot be empty")
		}
		if course.PublicationStatus, err = domain.ParsePublicationStatus(*patch.PublicationStatus); err != nil {
			return nil, err
		}
	}
	course.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, course); err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update course: %w", err)
	}
	return course, nil
}

// Delete removes the course only. Classes and enrollments that point at it
// stay behind and are skipped by readers.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("course_id", id).Msg("course deleted")
	return nil
}
