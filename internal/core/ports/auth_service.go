package ports

import (
	"context"
	"time"

	"github.com/Phanuelx/Education-App/internal/core/domain"
)

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// PasscodeGrant is returned when a recovery passcode is redeemed. ResetToken
// authorises exactly one credential reset for UserID until ExpiresAt.
type PasscodeGrant struct {
	User       *domain.User
	ResetToken string
	ExpiresAt  time.Time
}

// AuthService authenticates credentials and issues session tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	ParseToken(token string) (domain.Principal, error)
	VerifyPasscode(ctx context.Context, userID, code string) (*PasscodeGrant, error)
	ResetPassword(ctx context.Context, resetToken, email, newPassword string) error
}
