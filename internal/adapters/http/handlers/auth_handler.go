package handlers

import (
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"rentwise-portal/internal/adapters/http/middleware"
	"rentwise-portal/internal/config"
	"rentwise-portal/internal/core/domain"
	"rentwise-portal/internal/core/services"
	"rentwise-portal/internal/pkg/logger"
	"rentwise-portal/internal/pkg/response"
)

// AuthHandler handles sign-in, session and logout endpoints
type AuthHandler struct {
	sessions   *services.SessionService
	onboarding *services.OnboardingService
	cookie     config.CookieConfig
	frontend   string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *services.SessionService, onboarding *services.OnboardingService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		sessions:   sessions,
		onboarding: onboarding,
		cookie:     cfg.Cookie,
		frontend:   cfg.FrontendURL,
	}
}

// RoleSelectionRequest is the role picked on the sign-up page
type RoleSelectionRequest struct {
	State string      `json:"state" validate:"required"`
	Role  domain.Role `json:"role" validate:"required"`
}

// SelectRole handles role selection before the identity provider redirect
// @Summary Remember the sign-up role
// @Description Stores the role chosen at sign-up until the callback for the same state arrives
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RoleSelectionRequest true "State and role"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/role-selection [post]
func (h *AuthHandler) SelectRole(c *fiber.Ctx) error {
	var req RoleSelectionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.onboarding.SelectRole(c.UserContext(), req.State, req.Role); err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Role selection saved", fiber.Map{
		"state": req.State,
		"role":  req.Role,
	})
}

// Callback handles the identity provider redirect
// @Summary Sign-in callback
// @Description Opens a portal session, assigns a role and redirects to the dashboard
// @Tags Auth
// @Param token query string true "Marketplace access token"
// @Param state query string false "Sign-up state"
// @Success 302
// @Router /auth/callback [get]
func (h *AuthHandler) Callback(c *fiber.Ctx) error {
	ctx := c.UserContext()
	token := c.Query("token", c.Query("access_token"))
	state := c.Query("state")

	session, cookie, err := h.sessions.Begin(ctx, token)
	if err != nil {
		logger.FromContext(ctx).Warn("sign-in failed", "error", err)
		return h.redirectLogout(c, services.ErrorMessage(err))
	}

	outcome := h.onboarding.CompleteSignIn(ctx, token, state)
	if outcome.Logout {
		if err := h.sessions.End(ctx, session); err != nil {
			logger.FromContext(ctx).Error("failed to end session", "session_id", session.ID, "error", err)
		}
		return h.redirectLogout(c, outcome.Reason)
	}

	if err := h.sessions.SetRole(ctx, session, outcome.Role); err != nil {
		logger.FromContext(ctx).Warn("failed to record session role", "session_id", session.ID, "error", err)
	}

	h.setSessionCookie(c, cookie, session.ExpiresAt)
	return c.Redirect(h.frontend+outcome.Redirect, fiber.StatusFound)
}

// Session handles the check-session-on-boot request
// @Summary Current session
// @Description Confirms the session with the marketplace and returns the user
// @Tags Auth
// @Produce json
// @Security CookieAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)

	user, err := h.sessions.Check(c.UserContext(), session)
	if err != nil {
		if errors.Is(err, services.ErrSessionExpired) {
			h.clearSessionCookie(c)
		}
		return fail(c, err)
	}

	data := fiber.Map{
		"user":       user,
		"expires_at": session.ExpiresAt,
	}
	if role, ok := services.SessionRole(session); ok {
		data["role"] = role
		data["dashboard"] = role.DashboardPath()
	}
	return response.Success(c, "Session is active", data)
}

// Logout ends the session
// @Summary Logout
// @Description Revokes the portal session and clears the cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if session := middleware.CurrentSession(c); session != nil {
		if err := h.sessions.End(c.UserContext(), session); err != nil {
			return fail(c, err)
		}
	}

	h.clearSessionCookie(c)
	return response.Success(c, "Logged out successfully", nil)
}

func (h *AuthHandler) redirectLogout(c *fiber.Ctx, reason string) error {
	h.clearSessionCookie(c)
	target := h.frontend + services.LogoutPath
	if reason != "" {
		target += "?reason=" + url.QueryEscape(reason)
	}
	return c.Redirect(target, fiber.StatusFound)
}

// setSessionCookie sets the portal session cookie
func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookie.Domain,
		Expires:  expires,
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cookie.SameSite,
	})
}

// clearSessionCookie expires the session cookie
func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Domain:   h.cookie.Domain,
		Expires:  time.Now().Add(-time.Hour),
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cookie.SameSite,
	})
}
