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

// ClassService implements the class scheduler and the agenda queries built
// on top of it.
type ClassService struct {
	classes     ports.ClassRepository
	courses     ports.CourseRepository
	enrollments ports.EnrollmentRepository
	log         zerolog.Logger
	now         func() time.Time
	newID       func() string
}

var _ ports.ClassService = (*ClassService)(nil)

func NewClassService(
	classes ports.ClassRepository,
	courses ports.CourseRepository,
	enrollments ports.EnrollmentRepository,
	log zerolog.Logger,
) *ClassService {
	return &ClassService{
		classes:     classes,
		courses:     courses,
		enrollments: enrollments,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

// Create stores a session for courseID led by instructorID. Neither
// reference is checked against its store here.
func (s *ClassService) Create(ctx context.Context, courseID, instructorID string, in ports.CreateClassInput) (*domain.Class, error) {
	if strings.TrimSpace(courseID) == "" {
		return nil, domain.NewValidationError("course_id", "is required")
	}
	if strings.TrimSpace(instructorID) == "" {
		return nil, domain.NewValidationError("instructor_id", "is required")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.NewValidationError("title", "is required")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, domain.NewValidationError("description", "is required")
	}
	if in.ScheduledDateTime.IsZero() {
		return nil, domain.NewValidationError("scheduled_date_time", "is required")
	}
	if in.DurationMinutes <= 0 {
		return nil, domain.NewValidationError("duration", "must be a positive number of minutes")
	}
	status := domain.ClassScheduled
	if strings.TrimSpace(in.Status) != "" {
		st, err := domain.ParseClassStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}

	now := s.now()
	class := &domain.Class{
		ID:                s.newID(),
		CourseID:          courseID,
		InstructorID:      instructorID,
		Title:             title,
		Description:       description,
		ScheduledDateTime: in.ScheduledDateTime.UTC(),
		DurationMinutes:   in.DurationMinutes,
		Status:            status,
		MeetingLink:       strings.TrimSpace(in.MeetingLink),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.classes.Create(ctx, class); err != nil {
		s.log.Error().Err(err).Msg("failed to create class")
		return nil, fmt.Errorf("create class: %w", err)
	}

	metrics.ClassesScheduledTotal.Inc()
	s.log.Info().
		Str("class_id", class.ID).
		Str("course_id", courseID).
		Time("scheduled_at", class.ScheduledDateTime).
		Msg("class scheduled")
	return class, nil
}

func (s *ClassService) Get(ctx context.Context, id string) (*domain.Class, error) {
	return s.classes.FindByID(ctx, id)
}

func (s *ClassService) ListAll(ctx context.Context) ([]*domain.Class, error) {
	classes, err := s.classes.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	if classes == nil {
		classes = []*domain.Class{}
	}
	return classes, nil
}

// Update merges the supplied fields. Every field stays editable whatever
// the current status.
func (s *ClassService) Update(ctx context.Context, id string, patch ports.ClassPatch) (*domain.Class, error) {
	class, err := s.classes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, domain.NewValidationError("title", "cannot be empty")
		}
		class.Title = title
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if description == "" {
			return nil, domain.NewValidationError("description", "cannot be empty")
		}
		class.Description = description
	}
	if patch.ScheduledDateTime != nil {
		if patch.ScheduledDateTime.IsZero() {
			return nil, domain.NewValidationError("scheduled_date_time", "cannot be empty")
		}
		class.ScheduledDateTime = patch.ScheduledDateTime.UTC()
	}
	if patch.DurationMinutes != nil {
		if *patch.DurationMinutes <= 0 {
			return nil, domain.NewValidationError("duration", "must be a positive number of minutes")
		}
		class.DurationMinutes = *patch.DurationMinutes
	}
	if patch.Status != nil {
		if class.Status, err = domain.ParseClassStatus(*patch.Status); err != nil {
			return nil, err
		}
	}
	if patch.MeetingLink != nil {
		class.MeetingLink = strings.TrimSpace(*patch.MeetingLink)
	}
	class.UpdatedAt = s.now()

	if err := s.classes.Update(ctx, class); err != nil {
		if errors.Is(err, domain.ErrClassNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update class: %w", err)
	}
	return class, nil
}

func (s *ClassService) Delete(ctx context.Context, id string) error {
	if err := s.classes.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("class_id", id).Msg("class deleted")
	return nil
}

// Upcoming returns the sessions of courseIDs starting within horizonDays,
// earliest first. Sessions of deleted courses are left out.
func (s *ClassService) Upcoming(ctx context.Context, courseIDs []string, horizonDays int) ([]*domain.Class, error) {
	if len(courseIDs) == 0 || horizonDays <= 0 {
		return []*domain.Class{}, nil
	}
	classes, err := s.classes.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return s.selectUpcoming(ctx, classes, courseIDs, horizonDays)
}

// StudentAgenda returns upcoming sessions of the courses the student is
// actively enrolled in.
func (s *ClassService) StudentAgenda(ctx context.Context, studentID string, horizonDays int) ([]*domain.Class, error) {
	enrollments, err := s.enrollments.ListByUser(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	courseIDs := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Status == domain.EnrollmentEnrolled {
			courseIDs = append(courseIDs, e.CourseID)
		}
	}
	return s.Upcoming(ctx, courseIDs, horizonDays)
}

// InstructorAgenda returns the instructor's own upcoming sessions.
func (s *ClassService) InstructorAgenda(ctx context.Context, instructorID string, horizonDays int) ([]*domain.Class, error) {
	if horizonDays <= 0 {
		return []*domain.Class{}, nil
	}
	taught, err := s.classes.List(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	courseIDs := make([]string, 0, len(taught))
	for _, c := range taught {
		courseIDs = append(courseIDs, c.CourseID)
	}
	return s.selectUpcoming(ctx, taught, courseIDs, horizonDays)
}

func (s *ClassService) selectUpcoming(ctx context.Context, classes []*domain.Class, courseIDs []string, horizonDays int) ([]*domain.Class, error) {
	wanted := domain.IDSet(courseIDs...)
	if len(wanted) == 0 {
		return []*domain.Class{}, nil
	}

	ids := make([]string, 0, len(wanted))
	for id := range wanted {
		ids = append(ids, id)
	}
	courses, err := s.courses.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve courses: %w", err)
	}
	known := make(map[string]struct{}, len(courses))
	for _, c := range courses {
		known[c.ID] = struct{}{}
	}
	return domain.SelectUpcoming(classes, wanted, known, s.now(), horizonDays), nil
}
