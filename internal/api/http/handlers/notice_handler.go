package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dashboard-service/internal/auth"
	"github.com/spec-kit/dashboard-service/internal/service"
)

// NoticeHandler serves the signed-in character's transient warning notice.
type NoticeHandler struct {
	notifications *service.NotificationService
}

// NewNoticeHandler constructs handler.
func NewNoticeHandler(notifications *service.NotificationService) *NoticeHandler {
	return &NoticeHandler{notifications: notifications}
}

// Get handles GET /notices. Notices expire on their own; an empty message
// means there is nothing to show.
func (h *NoticeHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	message, err := h.notifications.Notice(c.Context(), principal.Credential.CharacterName)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": message}})
}
