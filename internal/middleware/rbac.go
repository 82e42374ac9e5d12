package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/codegrader/codegrader-api/internal/models"
	"github.com/codegrader/codegrader-api/internal/utils"
)

// RequireRole is the single authorization gate: it allows the request through
// only when the authenticated role is one of the listed roles. Role checks
// live in the route table, not scattered through handlers.
func RequireRole(roles ...models.Role) fiber.Handler {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		role, ok := CurrentRole(c)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}
		if _, ok := allowed[role]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}
