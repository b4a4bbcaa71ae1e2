package domain

import (
	"strings"
	"time"
)

type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "ENROLLED"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentCancelled EnrollmentStatus = "CANCELLED"
)

func ParseEnrollmentStatus(s string) (EnrollmentStatus, error) {
	switch st := EnrollmentStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case EnrollmentEnrolled, EnrollmentCompleted, EnrollmentCancelled:
		return st, nil
	}
	return "", NewValidationError("status", "must be one of: ENROLLED COMPLETED CANCELLED")
}

// Enrollment binds one student to one course. The (UserID, CourseID) pair
// is unique regardless of Status.
type Enrollment struct {
	ID             string           `json:"id" bson:"_id"`
	CourseID       string           `json:"course_id" bson:"course_id"`
	UserID         string           `json:"user_id" bson:"user_id"`
	Status         EnrollmentStatus `json:"status" bson:"status"`
	EnrollmentDate time.Time        `json:"enrollment_date" bson:"enrollment_date"`
	CreatedAt      time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at" bson:"updated_at"`
}
