package handler

import (
	"time"

	"github.com/Phanuelx/Education-App/internal/core/domain"
	"github.com/Phanuelx/Education-App/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

// registerRequest is the public sign-up payload. ADMIN accounts can only be
// created through /v1/users.
type registerRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"       validate:"omitempty,email"`
	Phone        string `json:"phone"       validate:"required,max=32"`
	Password     string `json:"password"    validate:"required"`
	Role         string `json:"role"`
	ProfileImage string `json:"profile_img" validate:"omitempty,url"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type passcodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyPasscodeRequest struct {
	UserID   string `json:"user_id"  validate:"required"`
	Passcode string `json:"passcode" validate:"required,numeric,max=4"`
}

type resetPasswordRequest struct {
	ResetToken string `json:"reset_token" validate:"required"`
	Email      string `json:"email"       validate:"required,email"`
	Password   string `json:"password"    validate:"required"`
}

type authResponse struct {
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
	User      *domain.User `json:"user,omitempty"`
}

type passcodeResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type resetGrantResponse struct {
	ResetToken string       `json:"reset_token"`
	ExpiresAt  time.Time    `json:"expires_at"`
	User       *domain.User `json:"user"`
}

// --- Users ---

type createUserRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"       validate:"omitempty,email"`
	Phone        string `json:"phone"       validate:"required,max=32"`
	Password     string `json:"password"    validate:"required"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	ProfileImage string `json:"profile_img" validate:"omitempty,url"`
}

type updateUserRequest struct {
	Username     *string `json:"username"`
	Email        *string `json:"email"       validate:"omitempty,email"`
	Phone        *string `json:"phone"       validate:"omitempty,max=32"`
	ProfileImage *string `json:"profile_img" validate:"omitempty,url"`
	Role         *string `json:"role"`
	Status       *string `json:"status"`
}

type userListResponse struct {
	Data       []*domain.User     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// --- Courses ---

type createCourseRequest struct {
	Title             string `json:"title"              validate:"required"`
	Description       string `json:"description"`
	Category          string `json:"category"           validate:"required"`
	Level             string `json:"level"              validate:"required"`
	PublicationStatus string `json:"publication_status"`
}

type updateCourseRequest struct {
	Title             *string `json:"title"`
	Description       *string `json:"description"`
	Category          *string `json:"category"`
	Level             *string `json:"level"`
	PublicationStatus *string `json:"publication_status"`
}

type courseListResponse struct {
	Data       []*domain.Course   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// --- Classes ---

type createClassRequest struct {
	CourseID          string    `json:"course_id"           validate:"required"`
	InstructorID      string    `json:"instructor_id"`
	Title             string    `json:"title"               validate:"required"`
	Description       string    `json:"description"         validate:"required"`
	ScheduledDateTime time.Time `json:"scheduled_date_time" validate:"required"`
	Duration          int       `json:"duration"            validate:"required,gt=0"`
	Status            string    `json:"status"`
	MeetingLink       string    `json:"meeting_link"        validate:"omitempty,url"`
}

type updateClassRequest struct {
	Title             *string    `json:"title"`
	Description       *string    `json:"description"`
	ScheduledDateTime *time.Time `json:"scheduled_date_time"`
	Duration          *int       `json:"duration"`
	Status            *string    `json:"status"`
	MeetingLink       *string    `json:"meeting_link" validate:"omitempty,url"`
}

type classListResponse struct {
	Data []*domain.Class `json:"data"`
}

type agendaResponse struct {
	Data        []*domain.Class `json:"data"`
	HorizonDays int             `json:"horizon_days"`
}

// --- Enrollments ---

type enrollRequest struct {
	CourseID  string `json:"course_id"  validate:"required"`
	StudentID string `json:"student_id"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// enrollmentDetailResponse carries the enrollment with its resolved
// references. Course or Student is null when the record was deleted.
type enrollmentDetailResponse struct {
	Enrollment *domain.Enrollment `json:"enrollment"`
	Course     *domain.Course     `json:"course"`
	Student    *domain.User       `json:"student,omitempty"`
}

type enrollmentListResponse struct {
	Data []enrollmentDetailResponse `json:"data"`
}

// --- Pagination ---

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

func toPagination(p ports.PageInfo) paginationResponse {
	return paginationResponse{
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.PageSize,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	}
}

func toEnrollmentDetails(details []ports.EnrollmentDetail) []enrollmentDetailResponse {
	out := make([]enrollmentDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, enrollmentDetailResponse{
			Enrollment: d.Enrollment,
			Course:     d.Course,
			Student:    d.Student,
		})
	}
	return out
}
