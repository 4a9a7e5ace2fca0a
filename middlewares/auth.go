package middlewares

import (
	"context"

	"fakturierung-local/models"

	"github.com/gofiber/fiber/v2"
)

// SessionSource reports the current login state.
type SessionSource interface {
	Session(ctx context.Context) (models.Session, error)
}

// RequireSession rejects requests while nobody is logged in.
func RequireSession(sessions SessionSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := sessions.Session(c.UserContext())
		if err != nil {
			return err
		}
		if !s.IsAuthenticated {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "not logged in"})
		}
		return c.Next()
	}
}
