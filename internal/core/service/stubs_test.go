package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Phanuelx/Education-App/internal/core/domain"
	"github.com/Phanuelx/Education-App/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// Create mirrors the unique indexes on phone and email.
func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.users {
		if existing.Phone == u.Phone || (u.Email != "" && existing.Email == u.Email) {
			return domain.ErrDuplicateIdentity
		}
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByPhoneOrEmail(_ context.Context, phone, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Phone == phone || (email != "" && u.Email == email) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context, f ports.UserListFilter) ([]*domain.User, int64, error) {
	all := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, cloneUser(u))
	}
	key := func(u *domain.User) string {
		switch f.SortField {
		case "email":
			return u.Email
		case "created_at":
			return u.CreatedAt.Format(time.RFC3339Nano)
		default:
			return u.Username
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if f.Ascending {
			return key(all[i]) < key(all[j])
		}
		return key(all[i]) > key(all[j])
	})

	total := int64(len(all))
	start := (f.Page - 1) * f.Limit
	if start >= len(all) {
		return []*domain.User{}, total, nil
	}
	end := start + f.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubCourseRepo struct {
	courses map[string]*domain.Course
}

func newStubCourseRepo() *stubCourseRepo {
	return &stubCourseRepo{courses: make(map[string]*domain.Course)}
}

func (r *stubCourseRepo) Create(_ context.Context, c *domain.Course) error {
	clone := *c
	r.courses[c.ID] = &clone
	return nil
}

func (r *stubCourseRepo) FindByID(_ context.Context, id string) (*domain.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCourseRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Course, error) {
	var out []*domain.Course
	for _, id := range ids {
		if c, ok := r.courses[id]; ok {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCourseRepo) List(_ context.Context, f ports.CourseListFilter) ([]*domain.Course, int64, error) {
	var matched []*domain.Course
	for _, c := range r.courses {
		if f.PublishedOnly && !c.IsPublished() {
			continue
		}
		clone := *c
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	start := (f.Page - 1) * f.Limit
	if start >= len(matched) {
		return []*domain.Course{}, total, nil
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubCourseRepo) Update(_ context.Context, c *domain.Course) error {
	if _, ok := r.courses[c.ID]; !ok {
		return domain.ErrCourseNotFound
	}
	clone := *c
	r.courses[c.ID] = &clone
	return nil
}

func (r *stubCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.courses[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

type stubClassRepo struct {
	classes map[string]*domain.Class
	listErr error
}

func newStubClassRepo() *stubClassRepo {
	return &stubClassRepo{classes: make(map[string]*domain.Class)}
}

func (r *stubClassRepo) Create(_ context.Context, c *domain.Class) error {
	clone := *c
	r.classes[c.ID] = &clone
	return nil
}

func (r *stubClassRepo) FindByID(_ context.Context, id string) (*domain.Class, error) {
	c, ok := r.classes[id]
	if !ok {
		return nil, domain.ErrClassNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubClassRepo) List(_ context.Context, instructorID string) ([]*domain.Class, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.Class
	for _, c := range r.classes {
		if instructorID != "" && c.InstructorID != instructorID {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubClassRepo) Update(_ context.Context, c *domain.Class) error {
	if _, ok := r.classes[c.ID]; !ok {
		return domain.ErrClassNotFound
	}
	clone := *c
	r.classes[c.ID] = &clone
	return nil
}

func (r *stubClassRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.classes[id]; !ok {
		return domain.ErrClassNotFound
	}
	delete(r.classes, id)
	return nil
}

type stubEnrollmentRepo struct {
	byID map[string]*domain.Enrollment
}

func newStubEnrollmentRepo() *stubEnrollmentRepo {
	return &stubEnrollmentRepo{byID: make(map[string]*domain.Enrollment)}
}

// Create mirrors the unique (user_id, course_id) index.
func (r *stubEnrollmentRepo) Create(_ context.Context, e *domain.Enrollment) error {
	for _, existing := range r.byID {
		if existing.UserID == e.UserID && existing.CourseID == e.CourseID {
			return domain.ErrDuplicateEnrollment
		}
	}
	clone := *e
	r.byID[e.ID] = &clone
	return nil
}

func (r *stubEnrollmentRepo) FindByID(_ context.Context, id string) (*domain.Enrollment, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEnrollmentNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEnrollmentRepo) list(match func(*domain.Enrollment) bool) []*domain.Enrollment {
	var out []*domain.Enrollment
	for _, e := range r.byID {
		if match(e) {
			clone := *e
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubEnrollmentRepo) ListByUser(_ context.Context, userID string) ([]*domain.Enrollment, error) {
	return r.list(func(e *domain.Enrollment) bool { return e.UserID == userID }), nil
}

func (r *stubEnrollmentRepo) ListByCourse(_ context.Context, courseID string) ([]*domain.Enrollment, error) {
	return r.list(func(e *domain.Enrollment) bool { return e.CourseID == courseID }), nil
}

func (r *stubEnrollmentRepo) UpdateStatus(_ context.Context, id string, status domain.EnrollmentStatus, at time.Time) (*domain.Enrollment, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEnrollmentNotFound
	}
	e.Status = status
	e.UpdatedAt = at
	clone := *e
	return &clone, nil
}

func (r *stubEnrollmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrEnrollmentNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Collaborators
// ---------------------------------------------------------------------------

type storedPasscode struct {
	code      string
	expiresAt time.Time
}

// stubPasscodeStore honours the TTL against an injectable clock.
type stubPasscodeStore struct {
	codes map[string]storedPasscode
	now   func() time.Time
}

func newStubPasscodeStore(now func() time.Time) *stubPasscodeStore {
	return &stubPasscodeStore{codes: make(map[string]storedPasscode), now: now}
}

func (s *stubPasscodeStore) Save(_ context.Context, userID, code string, ttl time.Duration) error {
	s.codes[userID] = storedPasscode{code: code, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *stubPasscodeStore) Consume(_ context.Context, userID, code string) (bool, error) {
	p, ok := s.codes[userID]
	if !ok || !s.now().Before(p.expiresAt) {
		delete(s.codes, userID)
		return false, nil
	}
	if p.code != code {
		return false, nil
	}
	delete(s.codes, userID)
	return true, nil
}

type stubNotifier struct {
	mu   sync.Mutex
	sent []ports.Notification
	err  error
}

func (n *stubNotifier) Notify(_ context.Context, msg ports.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

func (n *stubNotifier) last() (ports.Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return ports.Notification{}, false
	}
	return n.sent[len(n.sent)-1], true
}

// plainHasher keeps tests fast; bcrypt itself is covered in password_test.go.
type plainHasher struct{}

func (plainHasher) Hash(secret string) (string, error) { return "hashed:" + secret, nil }

func (plainHasher) Compare(hash, secret string) error {
	if hash != "hashed:"+secret {
		return errors.New("mismatch")
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%03d", prefix, n)
	}
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
