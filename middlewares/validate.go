package middlewares

import "github.com/gofiber/fiber/v2"

// BindJSON parses the request body into dst. Field rules are applied by the
// services, which know the per-field message keys.
func BindJSON(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return nil
}
