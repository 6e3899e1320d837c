package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dashboard-service/internal/api/dto"
	"github.com/spec-kit/dashboard-service/internal/auth"
	"github.com/spec-kit/dashboard-service/internal/service"
)

// SpotlightHandler exposes the employee-of-the-week selection.
type SpotlightHandler struct {
	spotlight   *service.SpotlightService
	credentials *service.CredentialService
}

// NewSpotlightHandler constructs handler.
func NewSpotlightHandler(spotlight *service.SpotlightService, credentials *service.CredentialService) *SpotlightHandler {
	return &SpotlightHandler{spotlight: spotlight, credentials: credentials}
}

// Get handles GET /spotlight, returning the current pick and the candidate
// pool of registered characters.
func (h *SpotlightHandler) Get(c *fiber.Ctx) error {
	name, err := h.spotlight.Get(c.Context())
	if err != nil {
		return err
	}
	candidates, err := h.credentials.ListRegistered(c.Context())
	if err != nil {
		return err
	}

	names := make([]string, 0, len(candidates))
	for _, cred := range candidates {
		names = append(names, cred.CharacterName)
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"employee_of_week": name,
			"candidates":       names,
		},
	})
}

// Set handles PUT /spotlight.
func (h *SpotlightHandler) Set(c *fiber.Ctx) error {
	var req dto.SetSpotlightRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.CharacterName == "" {
		return fiber.NewError(http.StatusBadRequest, "character name required")
	}

	if err := h.spotlight.Set(c.Context(), auth.CapabilitiesFromContext(c), req.CharacterName); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Clear handles DELETE /spotlight.
func (h *SpotlightHandler) Clear(c *fiber.Ctx) error {
	if err := h.spotlight.Clear(c.Context(), auth.CapabilitiesFromContext(c)); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
