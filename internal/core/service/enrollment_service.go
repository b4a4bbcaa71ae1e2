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

// EnrollmentService implements the enrollment ledger.
type EnrollmentService struct {
	enrollments ports.EnrollmentRepository
	courses     ports.CourseRepository
	users       ports.UserRepository
	log         zerolog.Logger
	now         func() time.Time
	newID       func() string
}

var _ ports.EnrollmentService = (*EnrollmentService)(nil)

func NewEnrollmentService(
	enrollments ports.EnrollmentRepository,
	courses ports.CourseRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		courses:     courses,
		users:       users,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

// Enroll records studentID in courseID. The (student, course) pair is
// unique in the store whatever the status of an earlier record.
func (s *EnrollmentService) Enroll(ctx context.Context, courseID, studentID string) (*domain.Enrollment, error) {
	courseID = strings.TrimSpace(courseID)
	studentID = strings.TrimSpace(studentID)
	if courseID == "" {
		return nil, domain.NewValidationError("course_id", "is required")
	}
	if studentID == "" {
		return nil, domain.NewValidationError("student_id", "is required")
	}

	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, studentID); err != nil {
		return nil, err
	}
	if !course.IsPublished() {
		metrics.EnrollmentsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.NewValidationError("course_id", "course is not open for enrollment")
	}

	now := s.now()
	enrollment := &domain.Enrollment{
		ID:             s.newID(),
		CourseID:       courseID,
		UserID:         studentID,
		Status:         domain.EnrollmentEnrolled,
		EnrollmentDate: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		if errors.Is(err, domain.ErrDuplicateEnrollment) {
			metrics.EnrollmentsTotal.WithLabelValues("duplicate").Inc()
			return nil, err
		}
		metrics.EnrollmentsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("course_id", courseID).Str("student_id", studentID).Msg("failed to create enrollment")
		return nil, fmt.Errorf("enroll: %w", err)
	}

	metrics.EnrollmentsTotal.WithLabelValues("created").Inc()
	s.log.Info().
		Str("enrollment_id", enrollment.ID).
		Str("course_id", courseID).
		Str("student_id", studentID).
		Msg("student enrolled")
	return enrollment, nil
}

func (s *EnrollmentService) Get(ctx context.Context, id string) (*domain.Enrollment, error) {
	return s.enrollments.FindByID(ctx, id)
}

// ListByStudent returns the student's enrollments with their courses
// resolved. Course is nil for a deleted course.
func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID string) ([]ports.EnrollmentDetail, error) {
	enrollments, err := s.enrollments.ListByUser(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	if len(enrollments) == 0 {
		return []ports.EnrollmentDetail{}, nil
	}

	ids := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		ids = append(ids, e.CourseID)
	}
	courses, err := s.courses.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve courses: %w", err)
	}
	byID := make(map[string]*domain.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	out := make([]ports.EnrollmentDetail, 0, len(enrollments))
	for _, e := range enrollments {
		out = append(out, ports.EnrollmentDetail{Enrollment: e, Course: byID[e.CourseID]})
	}
	return out, nil
}

// ListByCourse returns the course's enrollments with sanitized students.
// Student is nil for a deleted user.
func (s *EnrollmentService) ListByCourse(ctx context.Context, courseID string) ([]ports.EnrollmentDetail, error) {
	enrollments, err := s.enrollments.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	if len(enrollments) == 0 {
		return []ports.EnrollmentDetail{}, nil
	}

	ids := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		ids = append(ids, e.UserID)
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve students: %w", err)
	}
	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u.Sanitized()
	}

	out := make([]ports.EnrollmentDetail, 0, len(enrollments))
	for _, e := range enrollments {
		out = append(out, ports.EnrollmentDetail{Enrollment: e, Student: byID[e.UserID]})
	}
	return out, nil
}

func (s *EnrollmentService) SetStatus(ctx context.Context, id, status string) (*domain.Enrollment, error) {
	st, err := domain.ParseEnrollmentStatus(status)
	if err != nil {
		return nil, err
	}
	enrollment, err := s.enrollments.UpdateStatus(ctx, id, st, s.now())
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("enrollment_id", id).Str("status", string(st)).Msg("enrollment status changed")
	return enrollment, nil
}

func (s *EnrollmentService) Delete(ctx context.Context, id string) error {
	if err := s.enrollments.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("enrollment_id", id).Msg("enrollment deleted")
	return nil
}
