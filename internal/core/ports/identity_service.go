package ports

import (
	"context"

	"github.com/Phanuelx/Education-App/internal/core/domain"
)

// RegisterInput carries a registration candidate. Role and Status may be
// empty to take their defaults.
type RegisterInput struct {
	Username     string
	Email        string
	Phone        string
	Password     string
	Role         string
	Status       string
	ProfileImage string
}

// UserPatch lists the user fields an update may change. Nil means keep.
type UserPatch struct {
	Username     *string
	Email        *string
	Phone        *string
	ProfileImage *string
	Role         *string
	Status       *string
}

// ListUsersInput carries the parameters of a user listing.
type ListUsersInput struct {
	Page      int
	PageSize  int
	SortField string
	SortOrder string // asc or desc
}

// UserPage is one page of sanitized users.
type UserPage struct {
	Items []*domain.User
	PageInfo
}

// IdentityService is the identity store use-case surface.
type IdentityService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	IssuePasscode(ctx context.Context, email string) (*domain.User, error)
	RedeemPasscode(ctx context.Context, userID, code string) (*domain.User, error)
	ResetCredential(ctx context.Context, email, newPassword string) error
	List(ctx context.Context, in ListUsersInput) (*UserPage, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
