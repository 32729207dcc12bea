package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rentwise-portal/internal/adapters/http/middleware"
	"rentwise-portal/internal/core/domain"
	"rentwise-portal/internal/core/services"
	"rentwise-portal/internal/pkg/response"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboards *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboards *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// GetDashboard returns the dashboard of the role the session signed in with
// @Summary My dashboard
// @Tags Dashboard
// @Produce json
// @Security CookieAuth
// @Param search query string false "Search term"
// @Param status query string false "Status filter"
// @Param sort query string false "Sort field"
// @Param order query string false "asc or desc"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	role, ok := services.SessionRole(middleware.CurrentSession(c))
	if !ok {
		return response.Forbidden(c, "Finish setting up your account first")
	}
	return h.render(c, role)
}

// GetRoleDashboard returns one role's dashboard. Only admins may open another role's.
// @Summary Role dashboard
// @Tags Dashboard
// @Produce json
// @Security CookieAuth
// @Param role path string true "tenant, landlord, agent, manager, owner or admin"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /dashboard/{role} [get]
func (h *DashboardHandler) GetRoleDashboard(c *fiber.Ctx) error {
	role, err := domain.ParseRole(c.Params("role"))
	if err != nil {
		return response.NotFound(c, "Dashboard not found")
	}

	own, ok := services.SessionRole(middleware.CurrentSession(c))
	if !ok {
		return response.Forbidden(c, "Finish setting up your account first")
	}
	if own != role && own != domain.RoleAdmin {
		return response.Forbidden(c, "You don't have permission to access this dashboard")
	}
	return h.render(c, role)
}

func (h *DashboardHandler) render(c *fiber.Ctx, role domain.Role) error {
	token, userID := viewer(c)

	data, err := h.dashboards.ForRole(c.UserContext(), role, token, userID, listQuery(c))
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, role.Label()+" dashboard retrieved successfully", data)
}
