package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Phanuelx/Education-App/internal/api/middleware"
	"github.com/Phanuelx/Education-App/internal/core/domain"
	"github.com/Phanuelx/Education-App/internal/core/ports"
)

// CourseHandler serves the catalog.
type CourseHandler struct {
	courses ports.CourseService
}

func NewCourseHandler(courses ports.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List handles GET /v1/courses. Anonymous callers and students only see
// published courses; staff may pass all=true.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Param        page       query     int   false  "Page number (default 1)"
// @Param        page_size  query     int   false  "Items per page (default 10, max 100)"
// @Param        all        query     bool  false  "Include drafts and archived courses (staff only)"
// @Success      200        {object}  courseListResponse
// @Failure      400        {object}  errorResponse
// @Router       /v1/courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	page, pageSize, err := pageQuery(c)
	if err != nil {
		return err
	}
	var all bool
	if err := echo.QueryParamsBinder(c).Bool("all", &all).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "all must be a boolean")
	}

	list := h.courses.ListPublished
	if p, ok := middleware.PrincipalFrom(c); ok && all && isStaff(p) {
		list = h.courses.ListAll
	}

	result, err := list(c.Request().Context(), page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courseListResponse{Data: result.Items, Pagination: toPagination(result.PageInfo)})
}

// Get handles GET /v1/courses/:id. Unpublished courses are hidden from
// anyone but staff.
//
// @Summary      Get a course
// @Tags         courses
// @Produce      json
// @Param        id   path      string  true  "Course id"
// @Success      200  {object}  domain.Course
// @Failure      404  {object}  errorResponse
// @Router       /v1/courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.courses.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !course.IsPublished() {
		if p, ok := middleware.PrincipalFrom(c); !ok || !isStaff(p) {
			return domain.ErrCourseNotFound
		}
	}
	return c.JSON(http.StatusOK, course)
}

// Create handles POST /v1/courses. The caller becomes the owner.
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCourseRequest  true  "Course details"
// @Success      201   {object}  domain.Course
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req createCourseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	course, err := h.courses.Create(c.Request().Context(), ports.CreateCourseInput{
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		Level:             req.Level,
		PublicationStatus: req.PublicationStatus,
		OwnerID:           p.UserID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, course)
}

// Update handles PUT /v1/courses/:id.
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Course id"
// @Param        body  body      updateCourseRequest  true  "Fields to change"
// @Success      200   {object}  domain.Course
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	if err := h.authorize(c, id); err != nil {
		return err
	}

	var req updateCourseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	course, err := h.courses.Update(ctx, id, ports.CoursePatch{
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		Level:             req.Level,
		PublicationStatus: req.PublicationStatus,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

// Delete handles DELETE /v1/courses/:id. Classes and enrollments of the
// course are not removed.
//
// @Summary      Delete a course
// @Tags         courses
// @Security     BearerAuth
// @Param        id   path  string  true  "Course id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.authorize(c, id); err != nil {
		return err
	}
	if err := h.courses.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CourseHandler) authorize(c echo.Context, courseID string) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	course, err := h.courses.Get(c.Request().Context(), courseID)
	if err != nil {
		return err
	}
	return authorizeCourseOwner(p, course)
}
