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

const defaultPasscodeTTL = 10 * time.Minute

var userSortFields = map[string]string{
	"":            "username",
	"username":    "username",
	"email":       "email",
	"created_at":  "created_at",
	"datecreated": "created_at",
}

// IdentityService implements registration, credential checks, passcode
// recovery and user administration.
type IdentityService struct {
	users       ports.UserRepository
	passcodes   ports.PasscodeStore
	notifier    ports.Notifier
	hasher      ports.PasswordHasher
	passcodeTTL time.Duration
	log         zerolog.Logger

	now     func() time.Time
	newID   func() string
	newCode func() (string, error)
}

var _ ports.IdentityService = (*IdentityService)(nil)

func NewIdentityService(
	users ports.UserRepository,
	passcodes ports.PasscodeStore,
	notifier ports.Notifier,
	hasher ports.PasswordHasher,
	passcodeTTL time.Duration,
	log zerolog.Logger,
) *IdentityService {
	if passcodeTTL <= 0 {
		passcodeTTL = defaultPasscodeTTL
	}
	return &IdentityService{
		users:       users,
		passcodes:   passcodes,
		notifier:    notifier,
		hasher:      hasher,
		passcodeTTL: passcodeTTL,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
		newCode:     generatePasscode,
	}
}

// Register stores a new identity and returns it without credential material.
func (s *IdentityService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	phone := strings.TrimSpace(in.Phone)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if phone == "" {
		return nil, domain.NewValidationError("phone", "is required")
	}
	if in.Password == "" {
		return nil, domain.NewValidationError("password", "is required")
	}

	role := domain.RoleStudent
	if strings.TrimSpace(in.Role) != "" {
		r, err := domain.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		role = r
	}
	status := domain.UserActive
	if strings.TrimSpace(in.Status) != "" {
		st, err := domain.ParseUserStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}

	// Fast path for a readable conflict; the unique indexes close the race.
	if _, err := s.users.FindByPhoneOrEmail(ctx, phone, email); err == nil {
		return nil, domain.ErrDuplicateIdentity
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now()
	user := &domain.User{
		ID:           s.newID(),
		Username:     strings.TrimSpace(in.Username),
		Email:        email,
		Phone:        phone,
		ProfileImage: in.ProfileImage,
		PasswordHash: hash,
		Role:         role,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			return nil, err
		}
		s.log.Error().Err(err).Msg("failed to create user")
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.UsersRegisteredTotal.WithLabelValues(string(role)).Inc()
	s.log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("user registered")
	return user.Sanitized(), nil
}

// Authenticate checks email and password. The checks run in a fixed order:
// unknown email, wrong password, inactive account.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if s.hasher.Compare(user.PasswordHash, password) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, domain.ErrInactiveAccount
	}
	return user, nil
}

// IssuePasscode creates a fresh recovery code for the account behind email
// and hands it to the notifier. The code itself is never returned.
func (s *IdentityService) IssuePasscode(ctx context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.NewValidationError("email", "is required")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	code, err := s.newCode()
	if err != nil {
		return nil, err
	}
	if err := s.passcodes.Save(ctx, user.ID, code, s.passcodeTTL); err != nil {
		return nil, fmt.Errorf("issue passcode: %w", err)
	}
	metrics.PasscodesTotal.WithLabelValues("issued", "success").Inc()

	text, html, err := renderPasscodeEmail(user.Username, code, s.passcodeTTL)
	if err != nil {
		return nil, err
	}
	if err := s.notifier.Notify(ctx, ports.Notification{
		Channel: ports.ChannelEmail,
		To:      user.Email,
		Subject: "Password Reset",
		Text:    text,
		HTML:    html,
	}); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("passcode notification not accepted")
	}

	s.log.Info().Str("user_id", user.ID).Msg("passcode issued")
	return user.Sanitized(), nil
}

// RedeemPasscode consumes the live passcode of userID when code matches it.
func (s *IdentityService) RedeemPasscode(ctx context.Context, userID, code string) (*domain.User, error) {
	userID = strings.TrimSpace(userID)
	code = normalizePasscode(code)
	if userID == "" || code == "" {
		return nil, domain.ErrInvalidOrExpired
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.PasscodesTotal.WithLabelValues("redeemed", "rejected").Inc()
			return nil, domain.ErrInvalidOrExpired
		}
		return nil, err
	}

	ok, err := s.passcodes.Consume(ctx, user.ID, code)
	if err != nil {
		return nil, fmt.Errorf("redeem passcode: %w", err)
	}
	if !ok {
		metrics.PasscodesTotal.WithLabelValues("redeemed", "rejected").Inc()
		return nil, domain.ErrInvalidOrExpired
	}

	metrics.PasscodesTotal.WithLabelValues("redeemed", "success").Inc()
	return user.Sanitized(), nil
}

// ResetCredential replaces the password of the account behind email.
func (s *IdentityService) ResetCredential(ctx context.Context, email, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if newPassword == "" {
		return domain.NewValidationError("password", "is required")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("reset credential: hash password: %w", err)
	}
	user.PasswordHash = hash
	user.UpdatedAt = s.now()
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("reset credential: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

func (s *IdentityService) List(ctx context.Context, in ports.ListUsersInput) (*ports.UserPage, error) {
	field, ok := userSortFields[strings.ToLower(in.SortField)]
	if !ok {
		return nil, domain.NewValidationError("sort_field", "must be one of: username email created_at")
	}
	page, size := ports.NormalizePage(in.Page, in.PageSize)

	users, total, err := s.users.List(ctx, ports.UserListFilter{
		SortField: field,
		Ascending: !strings.EqualFold(in.SortOrder, "desc"),
		Page:      page,
		Limit:     size,
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	items := make([]*domain.User, len(users))
	for i, u := range users {
		items[i] = u.Sanitized()
	}
	return &ports.UserPage{Items: items, PageInfo: ports.NewPageInfo(total, page, size)}, nil
}

func (s *IdentityService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// Update merges the supplied fields into the stored user.
func (s *IdentityService) Update(ctx context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil {
		user.Username = strings.TrimSpace(*patch.Username)
	}
	if patch.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*patch.Email))
	}
	if patch.Phone != nil {
		phone := strings.TrimSpace(*patch.Phone)
		if phone == "" {
			return nil, domain.NewValidationError("phone", "cannot be empty")
		}
		user.Phone = phone
	}
	if patch.ProfileImage != nil {
		user.ProfileImage = *patch.ProfileImage
	}
	if patch.Role != nil {
		role, err := domain.ParseRole(*patch.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}
	if patch.Status != nil {
		status, err := domain.ParseUserStatus(*patch.Status)
		if err != nil {
			return nil, err
		}
		user.Status = status
	}
	user.UpdatedAt = s.now()

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) || errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user.Sanitized(), nil
}

// Delete removes the user. Enrollments and classes that reference the id
// are left in place.
func (s *IdentityService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
