package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/Phanuelx/Education-App/internal/core/domain"
	"github.com/Phanuelx/Education-App/internal/core/ports"
	"github.com/Phanuelx/Education-App/internal/metrics"
)

const (
	tokenTypeAccess = "access"
	tokenTypeReset  = "reset"

	defaultTokenTTL = 24 * time.Hour
	resetTokenTTL   = 15 * time.Minute
)

// AuthService implements login and token handling on top of the identity store.
type AuthService struct {
	identity  ports.IdentityService
	jwtSecret string
	tokenTTL  time.Duration
	resetTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(identity ports.IdentityService, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		identity:  identity,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		resetTTL:  resetTokenTTL,
		log:       log,
		now:       time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	user, err := s.identity.Authenticate(ctx, email, password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues(loginResult(err)).Inc()
		return nil, err
	}

	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	token, err := s.sign(jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"typ":  tokenTypeAccess,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.Session{Token: token, ExpiresAt: expiresAt, User: user.Sanitized()}, nil
}

// ParseToken verifies an access token and returns the caller it names.
func (s *AuthService) ParseToken(token string) (domain.Principal, error) {
	claims, err := s.parse(token, tokenTypeAccess)
	if err != nil {
		return domain.Principal{}, err
	}

	sub, _ := claims["sub"].(string)
	roleName, _ := claims["role"].(string)
	role, err := domain.ParseRole(roleName)
	if sub == "" || err != nil {
		return domain.Principal{}, domain.ErrInvalidToken
	}
	return domain.Principal{UserID: sub, Role: role}, nil
}

// VerifyPasscode redeems a recovery passcode and returns a short-lived
// token that authorises one password reset.
func (s *AuthService) VerifyPasscode(ctx context.Context, userID, code string) (*ports.PasscodeGrant, error) {
	user, err := s.identity.RedeemPasscode(ctx, userID, code)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expiresAt := now.Add(s.resetTTL)
	token, err := s.sign(jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"typ":   tokenTypeReset,
		"ver":   user.UpdatedAt.UnixMilli(),
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	})
	if err != nil {
		return nil, err
	}
	return &ports.PasscodeGrant{User: user, ResetToken: token, ExpiresAt: expiresAt}, nil
}

// ResetPassword replaces the credential of the account named by resetToken.
// The token stops working once the account changes, so it is single-use.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, email, newPassword string) error {
	claims, err := s.parse(resetToken, tokenTypeReset)
	if err != nil {
		return err
	}

	sub, _ := claims["sub"].(string)
	tokenEmail, _ := claims["email"].(string)
	ver, _ := claims["ver"].(float64)
	if sub == "" || !strings.EqualFold(tokenEmail, strings.TrimSpace(email)) {
		return domain.ErrInvalidToken
	}

	user, err := s.identity.Get(ctx, sub)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidToken
		}
		return err
	}
	if int64(ver) != user.UpdatedAt.UnixMilli() || !strings.EqualFold(user.Email, tokenEmail) {
		return domain.ErrInvalidToken
	}

	return s.identity.ResetCredential(ctx, user.Email, newPassword)
}

func (s *AuthService) sign(claims jwt.MapClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) parse(token, typ string) (jwt.MapClaims, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	if got, _ := claims["typ"].(string); got != typ {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrInactiveAccount):
		return "inactive"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
