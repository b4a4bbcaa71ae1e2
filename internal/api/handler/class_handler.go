package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Phanuelx/Education-App/internal/core/domain"
	"github.com/Phanuelx/Education-App/internal/core/ports"
)

const maxHorizonDays = 365

// ClassHandler serves scheduled sessions and agendas.
type ClassHandler struct {
	classes     ports.ClassService
	courses     ports.CourseService
	horizonDays int
}

// NewClassHandler builds a ClassHandler; horizonDays is the agenda window
// used when the request does not name one.
func NewClassHandler(classes ports.ClassService, courses ports.CourseService, horizonDays int) *ClassHandler {
	return &ClassHandler{classes: classes, courses: courses, horizonDays: horizonDays}
}

// List handles GET /v1/classes.
//
// @Summary      List classes
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  classListResponse
// @Router       /v1/classes [get]
func (h *ClassHandler) List(c echo.Context) error {
	classes, err := h.classes.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, classListResponse{Data: classes})
}

// Get handles GET /v1/classes/:id.
//
// @Summary      Get a class
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Class id"
// @Success      200  {object}  domain.Class
// @Failure      404  {object}  errorResponse
// @Router       /v1/classes/{id} [get]
func (h *ClassHandler) Get(c echo.Context) error {
	class, err := h.classes.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, class)
}

// Create handles POST /v1/classes. Teachers always schedule themselves as
// instructor; admins must name one.
//
// @Summary      Schedule a class
// @Tags         classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClassRequest  true  "Class details"
// @Success      201   {object}  domain.Class
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/classes [post]
func (h *ClassHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req createClassRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	instructorID := strings.TrimSpace(req.InstructorID)
	switch p.Role {
	case domain.RoleTeacher:
		if instructorID != "" && instructorID != p.UserID {
			return domain.ErrForbidden
		}
		instructorID = p.UserID
	case domain.RoleAdmin:
		if instructorID == "" {
			return domain.NewValidationError("instructor_id", "is required")
		}
	case domain.RoleStudent:
		return domain.ErrForbidden
	}

	ctx := c.Request().Context()
	if _, err := h.courses.Get(ctx, req.CourseID); err != nil {
		return err
	}

	class, err := h.classes.Create(ctx, req.CourseID, instructorID, ports.CreateClassInput{
		Title:             req.Title,
		Description:       req.Description,
		ScheduledDateTime: req.ScheduledDateTime,
		DurationMinutes:   req.Duration,
		Status:            req.Status,
		MeetingLink:       req.MeetingLink,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, class)
}

// Update handles PUT /v1/classes/:id.
//
// @Summary      Update a class
// @Tags         classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Class id"
// @Param        body  body      updateClassRequest  true  "Fields to change"
// @Success      200   {object}  domain.Class
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/classes/{id} [put]
func (h *ClassHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if err := h.authorize(c, id); err != nil {
		return err
	}

	var req updateClassRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	class, err := h.classes.Update(c.Request().Context(), id, ports.ClassPatch{
		Title:             req.Title,
		Description:       req.Description,
		ScheduledDateTime: req.ScheduledDateTime,
		DurationMinutes:   req.Duration,
		Status:            req.Status,
		MeetingLink:       req.MeetingLink,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, class)
}

// Delete handles DELETE /v1/classes/:id.
//
// @Summary      Delete a class
// @Tags         classes
// @Security     BearerAuth
// @Param        id   path  string  true  "Class id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/classes/{id} [delete]
func (h *ClassHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.authorize(c, id); err != nil {
		return err
	}
	if err := h.classes.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Upcoming handles GET /v1/classes/upcoming?course_id=a&course_id=b.
//
// @Summary      Upcoming classes of selected courses
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        course_id  query     []string  true   "Course ids"  collectionFormat(multi)
// @Param        days       query     int       false  "Horizon in days"
// @Success      200        {object}  agendaResponse
// @Failure      400        {object}  errorResponse
// @Router       /v1/classes/upcoming [get]
func (h *ClassHandler) Upcoming(c echo.Context) error {
	days, err := h.horizon(c)
	if err != nil {
		return err
	}
	classes, err := h.classes.Upcoming(c.Request().Context(), c.QueryParams()["course_id"], days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agendaResponse{Data: classes, HorizonDays: days})
}

// Agenda handles GET /v1/me/agenda: the upcoming classes of a student's
// enrolled courses, or the classes a teacher leads.
//
// @Summary      My upcoming classes
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        days  query     int  false  "Horizon in days"
// @Success      200   {object}  agendaResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/me/agenda [get]
func (h *ClassHandler) Agenda(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	days, err := h.horizon(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	var classes []*domain.Class
	switch p.Role {
	case domain.RoleStudent:
		classes, err = h.classes.StudentAgenda(ctx, p.UserID, days)
	case domain.RoleTeacher:
		classes, err = h.classes.InstructorAgenda(ctx, p.UserID, days)
	default:
		// admins neither attend nor lead classes
		return domain.ErrForbidden
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agendaResponse{Data: classes, HorizonDays: days})
}

func (h *ClassHandler) horizon(c echo.Context) (int, error) {
	days := h.horizonDays
	if err := echo.QueryParamsBinder(c).Int("days", &days).BindError(); err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "days must be an integer")
	}
	if days < 1 || days > maxHorizonDays {
		return 0, domain.NewValidationError("days", "must be between 1 and 365")
	}
	return days, nil
}

func (h *ClassHandler) authorize(c echo.Context, classID string) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	class, err := h.classes.Get(c.Request().Context(), classID)
	if err != nil {
		return err
	}
	return authorizeInstructor(p, class)
}
