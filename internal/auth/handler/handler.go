package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nortia/backoffice/internal/auth"
	"github.com/nortia/backoffice/internal/pkg/apperror"
	"github.com/nortia/backoffice/internal/pkg/validate"
	"go.uber.org/zap"
)

type AuthHandler struct {
	uc     auth.UseCase
	logger *zap.Logger
}

func NewAuthHandler(uc auth.UseCase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: log}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login - POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return err
	}

	token, user, err := h.uc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Me - GET /auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Me(c.Context(), auth.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(user)
}
