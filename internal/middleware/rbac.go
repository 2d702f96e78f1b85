package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kiruthick103/studenthub-api/internal/utils"
)

// RequireRole rejects requests whose authenticated role is not one of the
// allowed values. It runs after JWTProtected, which stores the role as a
// lowercase string in Locals.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		if _, ok := allowed[role]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}
