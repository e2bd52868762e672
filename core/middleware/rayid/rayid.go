// Package rayid generates a unique request identifier for tracing.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the request's ray_id.
const HeaderName = "X-Ray-Id"

// New returns a middleware that assigns every request a ray_id.
// An incoming X-Ray-Id header is honored so upstream proxies can
// propagate their own identifier.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)

		return c.Next()
	}
}
