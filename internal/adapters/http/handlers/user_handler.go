package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rentwise-portal/internal/core/services"
	"rentwise-portal/internal/pkg/response"
)

// UserHandler handles profile endpoints
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetProfile handles reading the signed-in user's profile
// @Summary Get profile
// @Description The user with their UAE Pass link status
// @Tags Profile
// @Produce json
// @Security CookieAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	token, _ := viewer(c)

	profile, err := h.users.Profile(c.UserContext(), token)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Profile retrieved successfully", profile)
}

// UpdateProfile handles a partial profile edit
// @Summary Update profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body services.UpdateProfileInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /profile [patch]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req services.UpdateProfileInput
	if err := bind(c, &req); err != nil {
		return err
	}
	token, _ := viewer(c)

	user, err := h.users.Update(c.UserContext(), token, req)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Profile updated successfully", fiber.Map{
		"user": user,
	})
}

// GetRoleStatus handles reading the onboarding state
// @Summary Role status
// @Tags Profile
// @Produce json
// @Security CookieAuth
// @Success 200 {object} response.Response
// @Router /profile/role-status [get]
func (h *UserHandler) GetRoleStatus(c *fiber.Ctx) error {
	token, _ := viewer(c)

	status, err := h.users.RoleStatus(c.UserContext(), token)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Role status retrieved successfully", status)
}
