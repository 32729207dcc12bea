package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"rentwise-portal/internal/core/services"
	"rentwise-portal/internal/pkg/pagination"
)

// listQuery reads ?search=&status=&sort=&order=&page=&limit=
func listQuery(c *fiber.Ctx) services.ListQuery {
	return services.ListQuery{
		Search: strings.TrimSpace(c.Query("search")),
		Status: c.Query("status"),
		Sort:   c.Query("sort"),
		Desc:   strings.EqualFold(c.Query("order"), "desc"),
		Page:   pagination.GetParams(c),
	}
}
