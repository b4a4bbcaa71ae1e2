package domain

import (
	"strings"
	"time"
)

// Role is the closed set of actor kinds known to the platform.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// ParseRole accepts a role name in any letter case.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return r, nil
	}
	return "", NewValidationError("role", "must be one of: ADMIN TEACHER STUDENT")
}

// UserStatus controls whether an account may authenticate.
type UserStatus string

const (
	UserActive   UserStatus = "ACTIVE"
	UserInactive UserStatus = "INACTIVE"
)

func ParseUserStatus(s string) (UserStatus, error) {
	switch st := UserStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case UserActive, UserInactive:
		return st, nil
	}
	return "", NewValidationError("status", "must be one of: ACTIVE INACTIVE")
}

// User models an identity on the platform. PasswordHash never leaves the
// process in serialized form.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username,omitempty"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone"`
	ProfileImage string     `json:"profile_img,omitempty"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Sanitized returns a copy without credential material.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool { return u.Status == UserActive }

// Principal is the caller identity extracted from a verified session token.
type Principal struct {
	UserID string
	Role   Role
}
