package rayid_test

import (
	"net/http/httptest"
	"testing"

	"dsikea/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRayIDAssigned(t *testing.T) {
	app := fiber.New()
	app.Use(rayid.New())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("ray_id").(string))
	})

	req := httptest.NewRequest("GET", "/", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(rayid.HeaderName))
}

func TestRayIDPropagated(t *testing.T) {
	app := fiber.New()
	app.Use(rayid.New())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(rayid.HeaderName, "upstream-id")
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, "upstream-id", resp.Header.Get(rayid.HeaderName))
}
