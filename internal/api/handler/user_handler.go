package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Phanuelx/Education-App/internal/core/domain"
	"github.com/Phanuelx/Education-App/internal/core/ports"
)

// UserHandler serves account administration.
type UserHandler struct {
	identity ports.IdentityService
}

func NewUserHandler(identity ports.IdentityService) *UserHandler {
	return &UserHandler{identity: identity}
}

// List handles GET /v1/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        page_size   query     int     false  "Items per page (default 10, max 100)"
// @Param        sort_field  query     string  false  "username, email or created_at"
// @Param        sort_order  query     string  false  "asc or desc"
// @Success      200         {object}  userListResponse
// @Failure      400         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, pageSize, err := pageQuery(c)
	if err != nil {
		return err
	}

	result, err := h.identity.List(c.Request().Context(), ports.ListUsersInput{
		Page:      page,
		PageSize:  pageSize,
		SortField: c.QueryParam("sort_field"),
		SortOrder: c.QueryParam("sort_order"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userListResponse{Data: result.Items, Pagination: toPagination(result.PageInfo)})
}

// Create handles POST /v1/users. Unlike /auth/register any role may be assigned.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.identity.Register(c.Request().Context(), ports.RegisterInput{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		Password:     req.Password,
		Role:         req.Role,
		Status:       req.Status,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if err := authorizeSelf(p, id); err != nil {
		return err
	}

	user, err := h.identity.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /v1/users/:id. Only admins may change role or status.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if err := authorizeSelf(p, id); err != nil {
		return err
	}

	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if (req.Role != nil || req.Status != nil) && p.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	user, err := h.identity.Update(c.Request().Context(), id, ports.UserPatch{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		ProfileImage: req.ProfileImage,
		Role:         req.Role,
		Status:       req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /v1/users/:id. Enrollments and classes that point
// at the user are left in place.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id   path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.identity.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
