package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Phanuelx/Education-App/internal/api/middleware"
	"github.com/Phanuelx/Education-App/internal/core/domain"
)

// ctxPrincipal returns the caller injected by the Auth middleware. A missing
// principal means the route was registered without Auth; reject with 401.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}

// isStaff reports whether the caller may see unpublished catalog entries.
func isStaff(p domain.Principal) bool {
	switch p.Role {
	case domain.RoleAdmin, domain.RoleTeacher:
		return true
	case domain.RoleStudent:
		return false
	}
	return false
}

// authorizeSelf allows admins and the user acting on their own account.
func authorizeSelf(p domain.Principal, userID string) error {
	switch p.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleTeacher, domain.RoleStudent:
		if p.UserID == userID {
			return nil
		}
	}
	return fmt.Errorf("user %s: %w", userID, domain.ErrForbidden)
}

// authorizeStudent allows admins and the student the enrollment belongs to.
func authorizeStudent(p domain.Principal, studentID string) error {
	switch p.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleStudent:
		if p.UserID == studentID {
			return nil
		}
	case domain.RoleTeacher:
	}
	return fmt.Errorf("enrollments of %s: %w", studentID, domain.ErrForbidden)
}

// authorizeEnrollmentReader allows staff and the student the enrollment
// belongs to. Teachers read any enrollment, as they do through ListByCourse.
func authorizeEnrollmentReader(p domain.Principal, studentID string) error {
	switch p.Role {
	case domain.RoleAdmin, domain.RoleTeacher:
		return nil
	case domain.RoleStudent:
		if p.UserID == studentID {
			return nil
		}
	}
	return fmt.Errorf("enrollment of %s: %w", studentID, domain.ErrForbidden)
}

// authorizeCourseOwner allows admins and the teacher who created the course.
func authorizeCourseOwner(p domain.Principal, course *domain.Course) error {
	switch p.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleTeacher:
		if course.OwnerID != "" && course.OwnerID == p.UserID {
			return nil
		}
	case domain.RoleStudent:
	}
	return fmt.Errorf("course %s: %w", course.ID, domain.ErrForbidden)
}

// authorizeInstructor allows admins and the teacher leading the class.
func authorizeInstructor(p domain.Principal, class *domain.Class) error {
	switch p.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleTeacher:
		if class.InstructorID == p.UserID {
			return nil
		}
	case domain.RoleStudent:
	}
	return fmt.Errorf("class %s: %w", class.ID, domain.ErrForbidden)
}

// bindAndValidate decodes the request body into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

// pageQuery reads page and page_size from the query string.
func pageQuery(c echo.Context) (page, pageSize int, err error) {
	if err := echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("page_size", &pageSize).
		BindError(); err != nil {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "page and page_size must be integers")
	}
	return page, pageSize, nil
}
