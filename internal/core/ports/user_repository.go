package ports

import (
	"context"

	"github.com/Phanuelx/Education-App/internal/core/domain"
)

// UserListFilter carries paging and ordering for user listings.
type UserListFilter struct {
	SortField string // one of username, email, created_at
	Ascending bool
	Page      int // 1-based
	Limit     int
}

// UserRepository defines the persistence operations of the identity store.
// Phone and email uniqueness are enforced by the store itself.
type UserRepository interface {
	// Create fails with domain.ErrDuplicateIdentity when phone or email is taken.
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByPhoneOrEmail returns the first user holding either value.
	FindByPhoneOrEmail(ctx context.Context, phone, email string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	List(ctx context.Context, filter UserListFilter) ([]*domain.User, int64, error)
	// Update replaces the stored record; domain.ErrUserNotFound when absent.
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
