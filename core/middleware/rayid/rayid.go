package rayid

import (
	"schema-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header is the response header carrying the request id.
const Header = "X-Ray-ID"

// LocalKey is the fiber.Ctx locals key logger.WithRayID reads.
const LocalKey = logger.RayIDKey

// New returns middleware that assigns every request a ray id. An incoming
// X-Ray-ID header is reused so callers can correlate their own logs.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}
