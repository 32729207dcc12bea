package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"rentwise-portal/internal/adapters/http/middleware"
	"rentwise-portal/internal/core/domain"
	"rentwise-portal/internal/core/services"
	"rentwise-portal/internal/pkg/logger"
	"rentwise-portal/internal/pkg/response"
	"rentwise-portal/internal/pkg/validate"
)

// fail maps a service error to the response envelope
func fail(c *fiber.Ctx, err error) error {
	var fields validate.FieldErrors
	if errors.As(err, &fields) {
		return response.Invalid(c, services.ErrorMessage(err), fields)
	}

	message := services.ErrorMessage(err)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, message)
	case errors.Is(err, domain.ErrActionNotAllowed), errors.Is(err, domain.ErrConflict):
		return response.Conflict(c, message)
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, message)
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, message)
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, message)
	case errors.Is(err, domain.ErrUpstream):
		return response.BadGateway(c, message)
	}

	logger.FromContext(c.UserContext()).Error("request failed", "path", c.Path(), "error", err)
	return response.InternalServerError(c, "Something went wrong, please try again")
}

// bind parses the JSON body into v and validates it
func bind(c *fiber.Ctx, v interface{}) error {
	if err := c.BodyParser(v); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(v); err != nil {
		return fail(c, err)
	}
	return nil
}

// viewer returns the upstream token and user id of the signed-in user
func viewer(c *fiber.Ctx) (token, userID string) {
	s := middleware.CurrentSession(c)
	if s == nil {
		return "", ""
	}
	return s.UpstreamToken, s.UserID
}
