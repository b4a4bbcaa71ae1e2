package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Phanuelx/Education-App/internal/api/middleware"
	"github.com/Phanuelx/Education-App/internal/core/domain"
	"github.com/Phanuelx/Education-App/internal/core/ports"
)

var errUnexpectedCall = errors.New("unexpected call")

type stubAuthService struct {
	loginFn  func(ctx context.Context, email, password string) (*ports.Session, error)
	verifyFn func(ctx context.Context, userID, code string) (*ports.PasscodeGrant, error)
	resetFn  func(ctx context.Context, token, email, password string) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	if s.loginFn == nil {
		return nil, errUnexpectedCall
	}
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ParseToken(string) (domain.Principal, error) {
	return domain.Principal{}, errUnexpectedCall
}

func (s *stubAuthService) VerifyPasscode(ctx context.Context, userID, code string) (*ports.PasscodeGrant, error) {
	if s.verifyFn == nil {
		return nil, errUnexpectedCall
	}
	return s.verifyFn(ctx, userID, code)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, email, password string) error {
	if s.resetFn == nil {
		return errUnexpectedCall
	}
	return s.resetFn(ctx, token, email, password)
}

type stubIdentityService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	issueFn    func(ctx context.Context, email string) (*domain.User, error)
	listFn     func(ctx context.Context, in ports.ListUsersInput) (*ports.UserPage, error)
	getFn      func(ctx context.Context, id string) (*domain.User, error)
	updateFn   func(ctx context.Context, id string, patch ports.UserPatch) (*domain.User, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (s *stubIdentityService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if s.registerFn == nil {
		return nil, errUnexpectedCall
	}
	return s.registerFn(ctx, in)
}

func (s *stubIdentityService) Authenticate(context.Context, string, string) (*domain.User, error) {
	return nil, errUnexpectedCall
}

func (s *stubIdentityService) IssuePasscode(ctx context.Context, email string) (*domain.User, error) {
	if s.issueFn == nil {
		return nil, errUnexpectedCall
	}
	return s.issueFn(ctx, email)
}

func (s *stubIdentityService) RedeemPasscode(context.Context, string, string) (*domain.User, error) {
	return nil, errUnexpectedCall
}

func (s *stubIdentityService) ResetCredential(context.Context, string, string) error {
	return errUnexpectedCall
}

func (s *stubIdentityService) List(ctx context.Context, in ports.ListUsersInput) (*ports.UserPage, error) {
	if s.listFn == nil {
		return nil, errUnexpectedCall
	}
	return s.listFn(ctx, in)
}

func (s *stubIdentityService) Get(ctx context.Context, id string) (*domain.User, error) {
	if s.getFn == nil {
		return nil, errUnexpectedCall
	}
	return s.getFn(ctx, id)
}

func (s *stubIdentityService) Update(ctx context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	if s.updateFn == nil {
		return nil, errUnexpectedCall
	}
	return s.updateFn(ctx, id, patch)
}

func (s *stubIdentityService) Delete(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		return errUnexpectedCall
	}
	return s.deleteFn(ctx, id)
}

// stubCourseService keeps courses in a map; list calls record which listing ran.
type stubCourseService struct {
	courses  map[string]*domain.Course
	lastList string
	created  *ports.CreateCourseInput
	deleted  []string
}

func newStubCourseService(courses ...*domain.Course) *stubCourseService {
	s := &stubCourseService{courses: map[string]*domain.Course{}}
	for _, c := range courses {
		s.courses[c.ID] = c
	}
	return s
}

func (s *stubCourseService) Create(_ context.Context, in ports.CreateCourseInput) (*domain.Course, error) {
	s.created = &in
	c := &domain.Course{ID: "new-course", Title: in.Title, OwnerID: in.OwnerID, PublicationStatus: domain.PublicationDraft}
	s.courses[c.ID] = c
	return c, nil
}

func (s *stubCourseService) Get(_ context.Context, id string) (*domain.Course, error) {
	c, ok := s.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	return c, nil
}

func (s *stubCourseService) ListPublished(_ context.Context, page, pageSize int) (*ports.CoursePage, error) {
	s.lastList = "published"
	return &ports.CoursePage{PageInfo: ports.NewPageInfo(0, page, pageSize)}, nil
}

func (s *stubCourseService) ListAll(_ context.Context, page, pageSize int) (*ports.CoursePage, error) {
	s.lastList = "all"
	return &ports.CoursePage{PageInfo: ports.NewPageInfo(0, page, pageSize)}, nil
}

func (s *stubCourseService) Update(_ context.Context, id string, patch ports.CoursePatch) (*domain.Course, error) {
	c, ok := s.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	return c, nil
}

func (s *stubCourseService) Delete(_ context.Context, id string) error {
	if _, ok := s.courses[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(s.courses, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type stubClassService struct {
	classes        map[string]*domain.Class
	createdFor     [2]string
	studentAgenda  string
	teacherAgenda  string
	upcomingIDs    []string
	upcomingWindow int
}

func newStubClassService(classes ...*domain.Class) *stubClassService {
	s := &stubClassService{classes: map[string]*domain.Class{}}
	for _, c := range classes {
		s.classes[c.ID] = c
	}
	return s
}

func (s *stubClassService) Create(_ context.Context, courseID, instructorID string, in ports.CreateClassInput) (*domain.Class, error) {
	s.createdFor = [2]string{courseID, instructorID}
	c := &domain.Class{ID: "new-class", CourseID: courseID, InstructorID: instructorID, Title: in.Title, DurationMinutes: in.DurationMinutes}
	s.classes[c.ID] = c
	return c, nil
}

func (s *stubClassService) Get(_ context.Context, id string) (*domain.Class, error) {
	c, ok := s.classes[id]
	if !ok {
		return nil, domain.ErrClassNotFound
	}
	return c, nil
}

func (s *stubClassService) ListAll(context.Context) ([]*domain.Class, error) {
	out := make([]*domain.Class, 0, len(s.classes))
	for _, c := range s.classes {
		out = append(out, c)
	}
	return out, nil
}

func (s *stubClassService) Update(_ context.Context, id string, patch ports.ClassPatch) (*domain.Class, error) {
	c, ok := s.classes[id]
	if !ok {
		return nil, domain.ErrClassNotFound
	}
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	return c, nil
}

func (s *stubClassService) Delete(_ context.Context, id string) error {
	if _, ok := s.classes[id]; !ok {
		return domain.ErrClassNotFound
	}
	delete(s.classes, id)
	return nil
}

func (s *stubClassService) Upcoming(_ context.Context, courseIDs []string, horizonDays int) ([]*domain.Class, error) {
	s.upcomingIDs = courseIDs
	s.upcomingWindow = horizonDays
	return []*domain.Class{}, nil
}

func (s *stubClassService) StudentAgenda(_ context.Context, studentID string, horizonDays int) ([]*domain.Class, error) {
	s.studentAgenda = studentID
	s.upcomingWindow = horizonDays
	return []*domain.Class{}, nil
}

func (s *stubClassService) InstructorAgenda(_ context.Context, instructorID string, horizonDays int) ([]*domain.Class, error) {
	s.teacherAgenda = instructorID
	s.upcomingWindow = horizonDays
	return []*domain.Class{}, nil
}

type stubEnrollmentService struct {
	enrollments map[string]*domain.Enrollment
	enrolled    [2]string
	enrollErr   error
	deleted     []string
}

func newStubEnrollmentService(enrollments ...*domain.Enrollment) *stubEnrollmentService {
	s := &stubEnrollmentService{enrollments: map[string]*domain.Enrollment{}}
	for _, e := range enrollments {
		s.enrollments[e.ID] = e
	}
	return s
}

func (s *stubEnrollmentService) Enroll(_ context.Context, courseID, studentID string) (*domain.Enrollment, error) {
	if s.enrollErr != nil {
		return nil, s.enrollErr
	}
	s.enrolled = [2]string{courseID, studentID}
	return &domain.Enrollment{ID: "new-enrollment", CourseID: courseID, UserID: studentID, Status: domain.EnrollmentEnrolled}, nil
}

func (s *stubEnrollmentService) Get(_ context.Context, id string) (*domain.Enrollment, error) {
	e, ok := s.enrollments[id]
	if !ok {
		return nil, domain.ErrEnrollmentNotFound
	}
	return e, nil
}

func (s *stubEnrollmentService) ListByStudent(_ context.Context, studentID string) ([]ports.EnrollmentDetail, error) {
	out := []ports.EnrollmentDetail{}
	for _, e := range s.enrollments {
		if e.UserID == studentID {
			out = append(out, ports.EnrollmentDetail{Enrollment: e})
		}
	}
	return out, nil
}

func (s *stubEnrollmentService) ListByCourse(_ context.Context, courseID string) ([]ports.EnrollmentDetail, error) {
	out := []ports.EnrollmentDetail{}
	for _, e := range s.enrollments {
		if e.CourseID == courseID {
			out = append(out, ports.EnrollmentDetail{Enrollment: e})
		}
	}
	return out, nil
}

func (s *stubEnrollmentService) SetStatus(_ context.Context, id, status string) (*domain.Enrollment, error) {
	e, ok := s.enrollments[id]
	if !ok {
		return nil, domain.ErrEnrollmentNotFound
	}
	st, err := domain.ParseEnrollmentStatus(status)
	if err != nil {
		return nil, err
	}
	e.Status = st
	return e, nil
}

func (s *stubEnrollmentService) Delete(_ context.Context, id string) error {
	delete(s.enrollments, id)
	s.deleted = append(s.deleted, id)
	return nil
}

var (
	admin    = domain.Principal{UserID: "admin-1", Role: domain.RoleAdmin}
	teacher  = domain.Principal{UserID: "teacher-1", Role: domain.RoleTeacher}
	student  = domain.Principal{UserID: "student-1", Role: domain.RoleStudent}
	stranger = domain.Principal{UserID: "student-2", Role: domain.RoleStudent}
)

// newContext builds an echo context for a JSON request. A zero principal
// means an anonymous caller.
func newContext(method, target, body string, p domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p.UserID != "" {
		middleware.WithPrincipal(c, p)
	}
	return c, rec
}

func withParam(c echo.Context, name, value string) echo.Context {
	c.SetParamNames(name)
	c.SetParamValues(value)
	return c
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, err error, want int) {
	t.Helper()
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != want {
		t.Fatalf("expected %d, got %d (%s)", want, rec.Code, rec.Body.String())
	}
}

func expectHTTPError(t *testing.T, err error, want int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != want {
		t.Fatalf("expected HTTP %d error, got %v", want, err)
	}
}
