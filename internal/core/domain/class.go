package domain

import (
	"strings"
	"time"
)

// ClassStatus represents the lifecycle state of a scheduled session.
type ClassStatus string

const (
	ClassScheduled ClassStatus = "SCHEDULED"
	ClassCancelled ClassStatus = "CANCELLED"
	ClassCompleted ClassStatus = "COMPLETED"
)

func ParseClassStatus(s string) (ClassStatus, error) {
	switch st := ClassStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case ClassScheduled, ClassCancelled, ClassCompleted:
		return st, nil
	}
	return "", NewValidationError("status", "must be one of: SCHEDULED CANCELLED COMPLETED")
}

// Class is a scheduled session of a course led by one instructor. Overlap
// between sessions of the same instructor is not checked.
type Class struct {
	ID                string      `json:"id" bson:"_id"`
	CourseID          string      `json:"course_id" bson:"course_id"`
	InstructorID      string      `json:"instructor_id" bson:"instructor_id"`
	Title             string      `json:"title" bson:"title"`
	Description       string      `json:"description" bson:"description"`
	ScheduledDateTime time.Time   `json:"scheduled_date_time" bson:"scheduled_date_time"`
	DurationMinutes   int         `json:"duration" bson:"duration"`
	Status            ClassStatus `json:"status" bson:"status"`
	MeetingLink       string      `json:"meeting_link,omitempty" bson:"meeting_link,omitempty"`
	CreatedAt         time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at" bson:"updated_at"`
}

// EndsAt returns the end of the session window.
func (c *Class) EndsAt() time.Time {
	return c.ScheduledDateTime.Add(time.Duration(c.DurationMinutes) * time.Minute)
}
