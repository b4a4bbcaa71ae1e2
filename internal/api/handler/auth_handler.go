package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Phanuelx/Education-App/internal/core/domain"
	"github.com/Phanuelx/Education-App/internal/core/ports"
)

type AuthHandler struct {
	auth     ports.AuthService
	identity ports.IdentityService
}

func NewAuthHandler(auth ports.AuthService, identity ports.IdentityService) *AuthHandler {
	return &AuthHandler{auth: auth, identity: identity}
}

// Register creates a new STUDENT or TEACHER account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	role, err := selfServiceRole(req.Role)
	if err != nil {
		return err
	}

	user, err := h.identity.Register(c.Request().Context(), ports.RegisterInput{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		Password:     req.Password,
		Role:         role,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// an unknown email is reported like a wrong password
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Token:     session.Token,
		ExpiresAt: &session.ExpiresAt,
		User:      session.User,
	})
}

// RequestPasscode emails a recovery passcode.
//
// @Summary      Request a recovery passcode
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      passcodeRequest  true  "Account email"
// @Success      200   {object}  passcodeResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/passcode [post]
func (h *AuthHandler) RequestPasscode(c echo.Context) error {
	var req passcodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.identity.IssuePasscode(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, passcodeResponse{Message: "passcode sent", UserID: user.ID})
}

// VerifyPasscode redeems a passcode for a short-lived reset token.
//
// @Summary      Verify a recovery passcode
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyPasscodeRequest  true  "User id and passcode"
// @Success      200   {object}  resetGrantResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/passcode/verify [post]
func (h *AuthHandler) VerifyPasscode(c echo.Context) error {
	var req verifyPasscodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	grant, err := h.auth.VerifyPasscode(c.Request().Context(), req.UserID, req.Passcode)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resetGrantResponse{
		ResetToken: grant.ResetToken,
		ExpiresAt:  grant.ExpiresAt,
		User:       grant.User,
	})
}

// ResetPassword sets a new password using a reset token.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Reset token, email and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/password/reset [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.auth.ResetPassword(c.Request().Context(), req.ResetToken, req.Email, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}

// selfServiceRole parses the role of a public sign-up. Admin accounts are
// only created through /v1/users.
func selfServiceRole(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	role, err := domain.ParseRole(raw)
	if err != nil {
		return "", err
	}
	switch role {
	case domain.RoleStudent, domain.RoleTeacher:
		return string(role), nil
	case domain.RoleAdmin:
	}
	return "", domain.NewValidationError("role", "must be one of: STUDENT TEACHER")
}
