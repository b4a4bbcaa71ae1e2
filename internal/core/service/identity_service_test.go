package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Phanuelx/Education-App/internal/core/domain"
	"github.com/Phanuelx/Education-App/internal/core/ports"
)

type identityFixture struct {
	svc      *IdentityService
	users    *stubUserRepo
	store    *stubPasscodeStore
	notifier *stubNotifier
	clock    *fakeClock
}

func newIdentityFixture() *identityFixture {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	users := newStubUserRepo()
	store := newStubPasscodeStore(clock.Now)
	notifier := &stubNotifier{}

	svc := NewIdentityService(users, store, notifier, plainHasher{}, 10*time.Minute, zerolog.Nop())
	svc.now = clock.Now
	svc.newID = sequentialIDs("user-")
	svc.newCode = func() (string, error) { return "0042", nil }

	return &identityFixture{svc: svc, users: users, store: store, notifier: notifier, clock: clock}
}

func (f *identityFixture) register(t *testing.T, in ports.RegisterInput) *domain.User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("register %s: %v", in.Email, err)
	}
	return u
}

func TestIdentityService_Register_Defaults(t *testing.T) {
	f := newIdentityFixture()

	u := f.register(t, ports.RegisterInput{
		Username: "ana",
		Email:    "Ana@Example.com",
		Phone:    "+10000000001",
		Password: "s3cret",
	})

	if u.Role != domain.RoleStudent {
		t.Fatalf("expected default role STUDENT, got %s", u.Role)
	}
	if u.Status != domain.UserActive {
		t.Fatalf("expected default status ACTIVE, got %s", u.Status)
	}
	if u.PasswordHash != "" {
		t.Fatal("returned user must not carry the password hash")
	}
	if u.Email != "ana@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}

	stored := f.users.users[u.ID]
	if stored == nil || stored.PasswordHash != "hashed:s3cret" {
		t.Fatalf("expected hashed password in store, got %+v", stored)
	}
}

func TestIdentityService_Register_Validation(t *testing.T) {
	f := newIdentityFixture()
	ctx := context.Background()

	if _, err := f.svc.Register(ctx, ports.RegisterInput{Email: "a@x.io", Password: "p"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing phone, got %v", err)
	}
	if _, err := f.svc.Register(ctx, ports.RegisterInput{Phone: "1", Email: "a@x.io"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing password, got %v", err)
	}
	if _, err := f.svc.Register(ctx, ports.RegisterInput{Phone: "1", Password: "p", Role: "guest"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown role, got %v", err)
	}
	if len(f.users.users) != 0 {
		t.Fatalf("nothing should be stored, got %d users", len(f.users.users))
	}
}

func TestIdentityService_Register_Duplicate(t *testing.T) {
	f := newIdentityFixture()
	ctx := context.Background()
	f.register(t, ports.RegisterInput{Email: "bob@example.com", Phone: "111", Password: "p"})

	_, err := f.svc.Register(ctx, ports.RegisterInput{Email: "other@example.com", Phone: "111", Password: "p"})
	if !errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity for same phone, got %v", err)
	}
	_, err = f.svc.Register(ctx, ports.RegisterInput{Email: "BOB@example.com", Phone: "222", Password: "p"})
	if !errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity for same email, got %v", err)
	}
}

func TestIdentityService_Register_StoreConflict(t *testing.T) {
	f := newIdentityFixture()
	f.users.createErr = domain.ErrDuplicateIdentity

	_, err := f.svc.Register(context.Background(), ports.RegisterInput{Email: "c@example.com", Phone: "333", Password: "p"})
	if !errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity from the store, got %v", err)
	}
}

func TestIdentityService_Authenticate_CheckOrder(t *testing.T) {
	f := newIdentityFixture()
	ctx := context.Background()
	f.register(t, ports.RegisterInput{Email: "on@example.com", Phone: "1", Password: "good"})
	f.register(t, ports.RegisterInput{Email: "off@example.com", Phone: "2", Password: "good", Status: "INACTIVE"})

	cases := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"unknown email", "ghost@example.com", "good", domain.ErrUserNotFound},
		{"wrong password", "on@example.com", "bad", domain.ErrInvalidCredentials},
		{"inactive wrong password", "off@example.com", "bad", domain.ErrInvalidCredentials},
		{"inactive right password", "off@example.com", "good", domain.ErrInactiveAccount},
		{"empty password", "on@example.com", "", domain.ErrInvalidCredentials},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.svc.Authenticate(ctx, tc.email, tc.password); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	u, err := f.svc.Authenticate(ctx, " ON@example.com ", "good")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if u.Email != "on@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestIdentityService_Passcode_RoundTrip(t *testing.T) {
	f := newIdentityFixture()
	ctx := context.Background()
	u := f.register(t, ports.RegisterInput{Username: "dora", Email: "dora@example.com", Phone: "1", Password: "p"})

	if _, err := f.svc.IssuePasscode(ctx, "dora@example.com"); err != nil {
		t.Fatalf("issue passcode: %v", err)
	}

	msg, ok := f.notifier.last()
	if !ok {
		t.Fatal("expected a notification")
	}
	if msg.Channel != ports.ChannelEmail || msg.To != "dora@example.com" {
		t.Fatalf("unexpected notification target: %+v", msg)
	}
	if !strings.Contains(msg.HTML, "0042") || !strings.Contains(msg.Text, "0042") {
		t.Fatal("notification should carry the passcode")
	}
	if !strings.Contains(msg.HTML, "dora") {
		t.Fatal("notification should greet the user")
	}

	if _, err := f.svc.RedeemPasscode(ctx, u.ID, "0000"); !errors.Is(err, domain.ErrInvalidOrExpired) {
		t.Fatalf("expected ErrInvalidOrExpired for wrong code, got %v", err)
	}
	got, err := f.svc.RedeemPasscode(ctx, u.ID, "0042")
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("redeemed for wrong user: %s", got.ID)
	}
	if _, err := f.svc.RedeemPasscode(ctx, u.ID, "0042"); !errors.Is(err, domain.ErrInvalidOrExpired) {
		t.Fatalf("second redemption must fail, got %v", err)
	}
}

func TestIdentityService_Passcode_NumericForm(t *testing.T) {
	f := newIdentityFixture()
	ctx := context.Background()
	u := f.register(t, ports.RegisterInput{Email: "e@example.com", Phone: "1", Password: "p"})

	if _, err := f.svc.IssuePasscode(ctx, "e@example.com"); err != nil {
		t.Fatalf("issue passcode: %v", err)
	}
	if _, err := f.svc.RedeemPasscode(ctx, u.ID, "42"); err != nil {
		t.Fatalf("expected 42 to match 0042, got %v", err)
	}
}

func TestIdentityService_Passcode_Expired(t *testing.T) {
	f := newIdentityFixture()
	ctx := context.Background()
	u := f.register(t, ports.RegisterInput{Email: "f@example.com", Phone: "1", Password: "p"})

	if _, err := f.svc.IssuePasscode(ctx, "f@example.com"); err != nil {
		t.Fatalf("issue passcode: %v", err)
	}
	f.clock.Advance(11 * time.Minute)

	if _, err := f.svc.RedeemPasscode(ctx, u.ID, "0042"); !errors.Is(err, domain.ErrInvalidOrExpired) {
		t.Fatalf("expected ErrInvalidOrExpired after ttl, got %v", err)
	}
}

func TestIdentityService_Passcode_ReissueReplaces(t *testing.T) {
	f := newIdentityFixture()
	ctx := context.Background()
	u := f.register(t, ports.RegisterInput{Email: "g@example.com", Phone: "1", Password: "p"})

	_, _ = f.svc.IssuePasscode(ctx, "g@example.com")
	f.svc.newCode = func() (string, error) { return "9876", nil }
	_, _ = f.svc.IssuePasscode(ctx, "g@example.com")

	if _, err := f.svc.RedeemPasscode(ctx, u.ID, "0042"); !errors.Is(err, domain.ErrInvalidOrExpired) {
		t.Fatalf("old code must be replaced, got %v", err)
	}
}

func TestIdentityService_Passcode_UnknownTargets(t *testing.T) {
	f := newIdentityFixture()
	ctx := context.Background()

	if _, err := f.svc.IssuePasscode(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := f.svc.RedeemPasscode(ctx, "user-999", "0042"); !errors.Is(err, domain.ErrInvalidOrExpired) {
		t.Fatalf("expected ErrInvalidOrExpired for unknown user, got %v", err)
	}
	if _, err := f.svc.IssuePasscode(ctx, ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty email, got %v", err)
	}
}

func TestIdentityService_IssuePasscode_NotifierFailureTolerated(t *testing.T) {
	f := newIdentityFixture()
	f.notifier.err = errors.New("queue full")
	ctx := context.Background()
	u := f.register(t, ports.RegisterInput{Email: "h@example.com", Phone: "1", Password: "p"})

	if _, err := f.svc.IssuePasscode(ctx, "h@example.com"); err != nil {
		t.Fatalf("notifier failure must not fail issuance, got %v", err)
	}
	if _, err := f.svc.RedeemPasscode(ctx, u.ID, "0042"); err != nil {
		t.Fatalf("passcode should still be redeemable, got %v", err)
	}
}

func TestIdentityService_ResetCredential(t *testing.T) {
	f := newIdentityFixture()
	ctx := context.Background()
	f.register(t, ports.RegisterInput{Email: "i@example.com", Phone: "1", Password: "old"})

	if err := f.svc.ResetCredential(ctx, "i@example.com", "new"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := f.svc.Authenticate(ctx, "i@example.com", "old"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}
	if _, err := f.svc.Authenticate(ctx, "i@example.com", "new"); err != nil {
		t.Fatalf("new password should work, got %v", err)
	}
	if err := f.svc.ResetCredential(ctx, "i@example.com", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty password, got %v", err)
	}
}

func TestIdentityService_List_SortAndPage(t *testing.T) {
	f := newIdentityFixture()
	ctx := context.Background()
	for i, name := range []string{"carla", "alba", "bruno"} {
		f.register(t, ports.RegisterInput{Username: name, Email: name + "@example.com", Phone: name, Password: "p"})
		f.clock.Advance(time.Duration(i+1) * time.Minute)
	}

	page, err := f.svc.List(ctx, ports.ListUsersInput{PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 || page.TotalPages != 2 || !page.HasNext || page.HasPrev {
		t.Fatalf("unexpected page info: %+v", page.PageInfo)
	}
	if len(page.Items) != 2 || page.Items[0].Username != "alba" || page.Items[1].Username != "bruno" {
		t.Fatalf("expected alba, bruno; got %+v", page.Items)
	}
	for _, u := range page.Items {
		if u.PasswordHash != "" {
			t.Fatal("listed users must be sanitized")
		}
	}

	desc, err := f.svc.List(ctx, ports.ListUsersInput{SortField: "created_at", SortOrder: "desc"})
	if err != nil {
		t.Fatalf("list desc: %v", err)
	}
	if desc.Items[0].Username != "bruno" {
		t.Fatalf("expected newest first, got %s", desc.Items[0].Username)
	}

	if _, err := f.svc.List(ctx, ports.ListUsersInput{SortField: "password"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown sort field, got %v", err)
	}
}

func TestIdentityService_Update(t *testing.T) {
	f := newIdentityFixture()
	ctx := context.Background()
	u := f.register(t, ports.RegisterInput{Username: "old", Email: "j@example.com", Phone: "1", Password: "p"})
	f.clock.Advance(time.Hour)

	updated, err := f.svc.Update(ctx, u.ID, ports.UserPatch{Username: strPtr("new"), Role: strPtr("teacher")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Username != "new" || updated.Role != domain.RoleTeacher {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Phone != "1" || updated.Email != "j@example.com" {
		t.Fatalf("unpatched fields must be kept: %+v", updated)
	}
	if !updated.UpdatedAt.After(u.UpdatedAt) {
		t.Fatal("expected UpdatedAt to advance")
	}
	if f.users.users[u.ID].PasswordHash != "hashed:p" {
		t.Fatal("update must not drop the stored hash")
	}

	if _, err := f.svc.Update(ctx, u.ID, ports.UserPatch{Status: strPtr("banned")}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := f.svc.Update(ctx, "user-404", ports.UserPatch{}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestIdentityService_Delete(t *testing.T) {
	f := newIdentityFixture()
	ctx := context.Background()
	u := f.register(t, ports.RegisterInput{Email: "k@example.com", Phone: "1", Password: "p"})

	if err := f.svc.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.svc.Get(ctx, u.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
