package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/codegrader/codegrader-api/internal/models"
	"github.com/codegrader/codegrader-api/internal/utils"
)

// Locals keys populated by JWTProtected.
const (
	LocalsUserID   = "user_id"
	LocalsUserRole = "user_role"
)

// JWTProtected returns a middleware that validates JWT bearer tokens and binds
// the authenticated user id and role to the request.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		userID, err := subjectFromClaims(claims)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token subject")
		}

		role := models.Role(normalizeRoleClaim(claims["role"]))
		if !role.Valid() {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token role")
		}

		c.Locals(LocalsUserID, userID)
		c.Locals(LocalsUserRole, role)

		return c.Next()
	}
}

// CurrentUserID returns the authenticated user id bound by JWTProtected.
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(LocalsUserID).(uint)
	return id, ok
}

// CurrentRole returns the authenticated role bound by JWTProtected.
func CurrentRole(c *fiber.Ctx) (models.Role, bool) {
	role, ok := c.Locals(LocalsUserRole).(models.Role)
	return role, ok
}

func subjectFromClaims(claims jwt.MapClaims) (uint, error) {
	switch v := claims["sub"].(type) {
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, err
		}
		return uint(parsed), nil
	case float64:
		if v < 0 {
			return 0, fmt.Errorf("invalid subject")
		}
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unsupported subject type")
	}
}

func normalizeRoleClaim(value interface{}) string {
	if str, ok := value.(string); ok {
		return strings.ToLower(strings.TrimSpace(str))
	}
	return ""
}
