package domain

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryScience     Category = "SCIENCE"
	CategoryProgramming Category = "PROGRAMMING"
	CategoryMath        Category = "MATH"
	CategoryArt         Category = "ART"
	CategoryBusiness    Category = "BUSINESS"
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToUpper(strings.TrimSpace(s))); c {
	case CategoryScience, CategoryProgramming, CategoryMath, CategoryArt, CategoryBusiness:
		return c, nil
	}
	return "", NewValidationError("category", "must be one of: SCIENCE PROGRAMMING MATH ART BUSINESS")
}

type Level string

const (
	LevelBeginner     Level = "BEGINNER"
	LevelIntermediate Level = "INTERMEDIATE"
	LevelAdvanced     Level = "ADVANCED"
)

func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToUpper(strings.TrimSpace(s))); l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return l, nil
	}
	return "", NewValidationError("level", "must be one of: BEGINNER INTERMEDIATE ADVANCED")
}

// PublicationStatus is the catalog lifecycle of a course.
type PublicationStatus string

const (
	PublicationDraft     PublicationStatus = "DRAFT"
	PublicationPublished PublicationStatus = "PUBLISHED"
	PublicationArchived  PublicationStatus = "ARCHIVED"
)

// ParsePublicationStatus maps an empty value to DRAFT.
func ParsePublicationStatus(s string) (PublicationStatus, error) {
	if strings.TrimSpace(s) == "" {
		return PublicationDraft, nil
	}
	switch p := PublicationStatus(strings.ToUpper(strings.TrimSpace(s))); p {
	case PublicationDraft, PublicationPublished, PublicationArchived:
		return p, nil
	}
	return "", NewValidationError("publication_status", "must be one of: DRAFT PUBLISHED ARCHIVED")
}

// Course is a catalog entry.
type Course struct {
	ID                string            `json:"id" bson:"_id"`
	Title             string            `json:"title" bson:"title"`
	Description       string            `json:"description,omitempty" bson:"description,omitempty"`
	Category          Category          `json:"category" bson:"category"`
	Level             Level             `json:"level" bson:"level"`
	PublicationStatus PublicationStatus `json:"publication_status" bson:"publication_status"`
	OwnerID           string            `json:"owner_id,omitempty" bson:"owner_id,omitempty"`
	CreatedAt         time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" bson:"updated_at"`
}

// IsPublished reports whether the course is visible in public listings.
func (c *Course) IsPublished() bool { return c.PublicationStatus == PublicationPublished }
