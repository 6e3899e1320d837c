package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dashboard-service/internal/api/dto"
	"github.com/spec-kit/dashboard-service/internal/service"
)

// AuthHandler exposes sign-up and sign-in endpoints.
type AuthHandler struct {
	credentials *service.CredentialService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(credentials *service.CredentialService) *AuthHandler {
	return &AuthHandler{credentials: credentials}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	cred, token, exp, err := h.credentials.Register(c.Context(), req.CharacterName, req.Password, req.ConfirmPassword)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"credential": dto.CredentialResponse{
				CharacterName: cred.CharacterName,
				Role:          string(cred.Role),
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.CharacterName == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "character name and password required")
	}

	cred, token, exp, err := h.credentials.SignIn(c.Context(), req.CharacterName, req.Password, req.Remember)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"credential": dto.CredentialResponse{
				CharacterName: cred.CharacterName,
				Role:          string(cred.Role),
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Prefill handles GET /auth/login/prefill, returning the opt-in saved
// sign-in info for form prefill, or an empty object when none is saved.
func (h *AuthHandler) Prefill(c *fiber.Ctx) error {
	info, err := h.credentials.SavedLogin(c.Context())
	if err != nil {
		return err
	}
	if info == nil {
		return c.JSON(fiber.Map{"data": fiber.Map{}})
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"character_name": info.CharacterName,
			"password":       info.Password,
		},
	})
}
