package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Phanuelx/Education-App/internal/core/ports"
)

// EnrollmentHandler serves the enrollment ledger.
type EnrollmentHandler struct {
	enrollments ports.EnrollmentService
}

func NewEnrollmentHandler(enrollments ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// Enroll handles POST /v1/enrollments. Students enroll themselves; admins
// pass student_id.
//
// @Summary      Enroll a student in a course
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      enrollRequest  true  "Course and student"
// @Success      201   {object}  domain.Enrollment
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/enrollments [post]
func (h *EnrollmentHandler) Enroll(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req enrollRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	studentID := strings.TrimSpace(req.StudentID)
	if studentID == "" {
		studentID = p.UserID
	}
	if err := authorizeStudent(p, studentID); err != nil {
		return err
	}

	enrollment, err := h.enrollments.Enroll(c.Request().Context(), req.CourseID, studentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, enrollment)
}

// Get handles GET /v1/enrollments/:id.
//
// @Summary      Get an enrollment
// @Tags         enrollments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Enrollment id"
// @Success      200  {object}  domain.Enrollment
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/enrollments/{id} [get]
func (h *EnrollmentHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	enrollment, err := h.enrollments.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if err := authorizeEnrollmentReader(p, enrollment.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrollment)
}

// ListByStudent handles GET /v1/enrollments/student/:id.
//
// @Summary      Enrollments of a student
// @Tags         enrollments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Student id"
// @Success      200  {object}  enrollmentListResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/enrollments/student/{id} [get]
func (h *EnrollmentHandler) ListByStudent(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	studentID := c.Param("id")
	if err := authorizeStudent(p, studentID); err != nil {
		return err
	}

	details, err := h.enrollments.ListByStudent(c.Request().Context(), studentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrollmentListResponse{Data: toEnrollmentDetails(details)})
}

// ListByCourse handles GET /v1/enrollments/course/:id.
//
// @Summary      Enrollments of a course
// @Tags         enrollments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Course id"
// @Success      200  {object}  enrollmentListResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/enrollments/course/{id} [get]
func (h *EnrollmentHandler) ListByCourse(c echo.Context) error {
	details, err := h.enrollments.ListByCourse(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrollmentListResponse{Data: toEnrollmentDetails(details)})
}

// SetStatus handles PUT /v1/enrollments/:id/status.
//
// @Summary      Change an enrollment status
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Enrollment id"
// @Param        body  body      setStatusRequest  true  "ENROLLED, COMPLETED or CANCELLED"
// @Success      200   {object}  domain.Enrollment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/enrollments/{id}/status [put]
func (h *EnrollmentHandler) SetStatus(c echo.Context) error {
	var req setStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	enrollment, err := h.enrollments.SetStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrollment)
}

// Delete handles DELETE /v1/enrollments/:id.
//
// @Summary      Delete an enrollment
// @Tags         enrollments
// @Security     BearerAuth
// @Param        id   path  string  true  "Enrollment id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/enrollments/{id} [delete]
func (h *EnrollmentHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	id := c.Param("id")

	enrollment, err := h.enrollments.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeStudent(p, enrollment.UserID); err != nil {
		return err
	}
	if err := h.enrollments.Delete(ctx, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
