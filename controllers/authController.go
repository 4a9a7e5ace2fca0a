package controllers

import (
	"errors"

	"fakturierung-local/middlewares"
	"fakturierung-local/services"
	"fakturierung-local/validation"

	"github.com/gofiber/fiber/v2"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	var data credentials
	if err := middlewares.BindJSON(c, &data); err != nil {
		return err
	}

	user, err := ac.auth.Register(c.UserContext(), data.Email, data.Password)
	if errors.Is(err, services.ErrDuplicateEmail) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "email already exists",
			"errors":  validation.Errors{"email": validation.MsgEmailTaken},
		})
	}
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"email": user.Email})
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var data credentials
	if err := middlewares.BindJSON(c, &data); err != nil {
		return err
	}

	user, err := ac.auth.Login(c.UserContext(), data.Email, data.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": validation.MsgInvalidLogin,
		})
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"authenticated": true,
		"user":          fiber.Map{"email": user.Email},
	})
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.auth.Logout(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func (ac *AuthController) Session(c *fiber.Ctx) error {
	s, err := ac.auth.Session(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(s)
}
