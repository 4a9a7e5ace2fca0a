package middlewares

import (
	"sync"

	"github.com/gofiber/fiber/v2"
)

// SerializeWrites runs mutating requests one at a time so that each
// load-modify-save cycle on the store completes before the next begins.
// Reads are not blocked; they see the last completed write.
func SerializeWrites() fiber.Handler {
	var mu sync.Mutex
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
			mu.Lock()
			defer mu.Unlock()
		}
		return c.Next()
	}
}
