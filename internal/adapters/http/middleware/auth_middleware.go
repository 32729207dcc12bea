package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"rentwise-portal/internal/adapters/persistence/models"
	"rentwise-portal/internal/core/domain"
	"rentwise-portal/internal/core/services"
	"rentwise-portal/internal/pkg/response"
)

const sessionKey = "session"

// SessionResolver maps a cookie value to a live session
type SessionResolver interface {
	Resolve(ctx context.Context, cookie string) (*models.Session, error)
}

// sessionCookie reads the portal session from the cookie, or from an
// Authorization header for non-browser clients
func sessionCookie(c *fiber.Ctx, cookieName string) string {
	if v := c.Cookies(cookieName); v != "" {
		return v
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// AuthMiddleware requires a live portal session
func AuthMiddleware(sessions SessionResolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := sessionCookie(c, cookieName)
		if raw == "" {
			return response.Unauthorized(c, "Please sign in")
		}

		session, err := sessions.Resolve(c.UserContext(), raw)
		if err != nil {
			return response.Unauthorized(c, services.ErrorMessage(err))
		}

		c.Locals(sessionKey, session)
		return c.Next()
	}
}

// OptionalAuth attaches the session when one is present and valid
func OptionalAuth(sessions SessionResolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw := sessionCookie(c, cookieName); raw != "" {
			if session, err := sessions.Resolve(c.UserContext(), raw); err == nil {
				c.Locals(sessionKey, session)
			}
		}
		return c.Next()
	}
}

// RoleMiddleware allows only sessions signed in with one of the roles
func RoleMiddleware(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := services.SessionRole(CurrentSession(c))
		if !ok {
			return response.Forbidden(c, "Finish setting up your account first")
		}
		for _, r := range allowed {
			if role == r {
				return c.Next()
			}
		}
		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// LandlordOnly allows landlords and the roles that manage listings for them
func LandlordOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleLandlord, domain.RoleAgent, domain.RoleManager, domain.RoleOwner, domain.RoleAdmin)
}

// BrokerageStaff allows the roles that onboard brokerages and their members
func BrokerageStaff() fiber.Handler {
	return RoleMiddleware(domain.RoleOwner, domain.RoleManager, domain.RoleAdmin)
}

// CurrentSession returns the session set by AuthMiddleware or OptionalAuth, or nil
func CurrentSession(c *fiber.Ctx) *models.Session {
	s, _ := c.Locals(sessionKey).(*models.Session)
	return s
}
