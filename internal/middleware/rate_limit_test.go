package middleware

import (
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestRateLimitBlocksAfterMax(t *testing.T) {
	app := fiber.New()
	app.Get("/limited", RateLimit("test", 2, time.Minute), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/limited", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/limited", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimitKeysPerAuthenticatedUser(t *testing.T) {
	app := fiber.New()
	app.Get("/limited",
		func(c *fiber.Ctx) error {
			if id, err := strconv.ParseUint(c.Get("X-Test-User"), 10, 64); err == nil {
				c.Locals(LocalsUserID, uint(id))
			}
			return c.Next()
		},
		RateLimit("user", 1, time.Minute),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	call := func(user string) int {
		req := httptest.NewRequest("GET", "/limited", nil)
		req.Header.Set("X-Test-User", user)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	require.Equal(t, fiber.StatusOK, call("1"))
	require.Equal(t, fiber.StatusTooManyRequests, call("1"))
	require.Equal(t, fiber.StatusOK, call("2"), "one user's budget must not starve another")
}
