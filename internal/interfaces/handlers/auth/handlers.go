package auth

import (
	authsvc "agricycle-backend/internal/application/auth"
	"agricycle-backend/internal/middleware"
	"agricycle-backend/internal/models"
	"agricycle-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	Service *authsvc.Service
}

// Register POST /api/auth/register — create an account, return token + profile.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req authsvc.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, authsvc.ErrMissingFields.Error(), fiber.StatusBadRequest)
	}

	user, err := h.Service.Register(c.Context(), req)
	if err != nil {
		return errorResponse(c, err, "Server error during registration")
	}

	token, err := h.Service.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("auth: token issue failed after registration")
		return response.Error(c, "Server error during registration", fiber.StatusInternalServerError)
	}

	return response.SuccessCreated(c, "Registration successful", fiber.Map{
		"token": token,
		"user":  publicUser(user),
	})
}

// Login POST /api/auth/login — authenticate, return token + profile.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req authsvc.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, authsvc.ErrEmailPasswordRequired.Error(), fiber.StatusBadRequest)
	}

	user, err := h.Service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return errorResponse(c, err, "Server error during login")
	}

	token, err := h.Service.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("auth: token issue failed after login")
		return response.Error(c, "Server error during login", fiber.StatusInternalServerError)
	}

	return response.Success(c, "Login successful", fiber.Map{
		"token": token,
		"user":  publicUser(user),
	})
}

// Me GET /api/auth/me — return the authenticated account's public fields.
func (h *Handlers) Me(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	user, err := h.Service.GetSelf(c.Context(), claims.UserID)
	if err != nil {
		return errorResponse(c, err, "Server error")
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": publicUser(user)})
}

// Logout POST /api/auth/logout — denylist the token until its natural expiry.
// Without Redis this is a client-side discard; still returns success.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if err := h.Service.Tokens.Revoke(c.Context(), claims); err != nil {
		log.Error().Err(err).Msg("auth: token revoke failed")
		return response.Error(c, "Server error during logout", fiber.StatusInternalServerError)
	}
	return response.Success(c, "Logged out", nil)
}

func publicUser(u *models.User) fiber.Map {
	return fiber.Map{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
		"phone": u.Phone,
	}
}

// errorResponse maps service sentinels to HTTP status; anything else is
// logged and collapsed to a generic 500.
func errorResponse(c *fiber.Ctx, err error, generic string) error {
	switch err {
	case authsvc.ErrMissingFields,
		authsvc.ErrAdminRegistration,
		authsvc.ErrInvalidRole,
		authsvc.ErrInvalidEmailFormat,
		authsvc.ErrPasswordTooShort,
		authsvc.ErrEmailTaken,
		authsvc.ErrEmailPasswordRequired:
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	case authsvc.ErrInvalidCredentials:
		return response.Error(c, err.Error(), fiber.StatusUnauthorized)
	case authsvc.ErrUserNotFound:
		return response.Error(c, err.Error(), fiber.StatusNotFound)
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("auth: unexpected error")
		return response.Error(c, generic, fiber.StatusInternalServerError)
	}
}
