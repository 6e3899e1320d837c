package handlers

import (
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dashboard-service/internal/api/dto"
	"github.com/spec-kit/dashboard-service/internal/auth"
	"github.com/spec-kit/dashboard-service/internal/domain"
	"github.com/spec-kit/dashboard-service/internal/service"
	"github.com/spec-kit/dashboard-service/pkg/dataurl"
)

// RosterHandler exposes the grouped roster projection and its mutations.
// Capability checks live in the services; a caller without the required
// capability gets the same empty success a no-op produces.
type RosterHandler struct {
	roster      *service.RosterService
	credentials *service.CredentialService
}

// NewRosterHandler constructs handler.
func NewRosterHandler(roster *service.RosterService, credentials *service.CredentialService) *RosterHandler {
	return &RosterHandler{roster: roster, credentials: credentials}
}

// Get handles GET /roster.
func (h *RosterHandler) Get(c *fiber.Ctx) error {
	groups, err := h.roster.Grouped(c.Context())
	if err != nil {
		return err
	}

	caps := auth.CapabilitiesFromContext(c)
	groupResponses := make([]dto.CategoryGroupResponse, 0, len(groups))
	for _, group := range groups {
		members := make([]dto.RosterEntryResponse, 0, len(group.Members))
		for _, entry := range group.Members {
			members = append(members, entryResponse(entry))
		}
		groupResponses = append(groupResponses, dto.CategoryGroupResponse{
			Category: string(group.Category),
			Members:  members,
		})
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"groups": groupResponses,
			"capabilities": dto.CapabilitiesResponse{
				IsAdmin:     caps.IsAdmin,
				CanWarn:     caps.CanWarn,
				CanPostNews: caps.CanPostNews,
			},
		},
	})
}

// AddMember handles POST /roster/:category/members.
func (h *RosterHandler) AddMember(c *fiber.Ctx) error {
	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.CharacterName == "" {
		return fiber.NewError(http.StatusBadRequest, "character name required")
	}

	category := domain.Category(c.Params("category"))
	entry, err := h.roster.AddEntry(c.Context(), auth.CapabilitiesFromContext(c), actorName(c), category, req.CharacterName)
	if err != nil {
		return err
	}
	if entry == nil {
		return c.SendStatus(http.StatusNoContent)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": entryResponse(*entry)})
}

// Activate handles POST /members/:name/activate.
func (h *RosterHandler) Activate(c *fiber.Ctx) error {
	var req dto.ActivateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	name, err := nameParam(c)
	if err != nil {
		return err
	}

	entry, err := h.roster.ActivateMember(c.Context(), auth.CapabilitiesFromContext(c), actorName(c), name, domain.CredentialRole(req.Role))
	if err != nil {
		return err
	}
	if entry == nil {
		return c.SendStatus(http.StatusNoContent)
	}
	return c.JSON(fiber.Map{"data": entryResponse(*entry)})
}

// UnderReview handles GET /members/underreview.
func (h *RosterHandler) UnderReview(c *fiber.Ctx) error {
	creds, err := h.credentials.ListUnderReview(c.Context())
	if err != nil {
		return err
	}
	members := make([]dto.CredentialResponse, 0, len(creds))
	for _, cred := range creds {
		members = append(members, dto.CredentialResponse{
			CharacterName: cred.CharacterName,
			Role:          string(cred.Role),
		})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"members": members}})
}

// EditField handles PATCH /roster/:id.
func (h *RosterHandler) EditField(c *fiber.Ctx) error {
	var req dto.EditFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	err := h.roster.EditField(c.Context(), auth.CapabilitiesFromContext(c), c.Params("id"), service.EditableField(req.Field), req.Value)
	if err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Delete handles DELETE /roster/:id.
func (h *RosterHandler) Delete(c *fiber.Ctx) error {
	if err := h.roster.DeleteEntry(c.Context(), auth.CapabilitiesFromContext(c), actorName(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ToggleStatus handles POST /roster/:id/status.
func (h *RosterHandler) ToggleStatus(c *fiber.Ctx) error {
	if err := h.roster.ToggleStatus(c.Context(), auth.CapabilitiesFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ToggleWarning handles POST /roster/:id/warnings/:level.
func (h *RosterHandler) ToggleWarning(c *fiber.Ctx) error {
	level, err := strconv.Atoi(c.Params("level"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid warning level")
	}

	if err := h.roster.ToggleWarning(c.Context(), auth.CapabilitiesFromContext(c), actorName(c), c.Params("id"), level); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// SetAvatar handles PUT /roster/:id/avatar with a multipart image file; the
// payload is stored as an inline data URL.
func (h *RosterHandler) SetAvatar(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "image file required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "unreadable image file")
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "unreadable image file")
	}
	avatar, err := dataurl.EncodeImage(payload)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.roster.SetAvatar(c.Context(), auth.CapabilitiesFromContext(c), c.Params("id"), avatar); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Reorder handles POST /roster/reorder.
func (h *RosterHandler) Reorder(c *fiber.Ctx) error {
	var req dto.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.roster.ReorderByDrag(c.Context(), auth.CapabilitiesFromContext(c), req.SourceID, req.TargetID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Move handles POST /roster/:id/move.
func (h *RosterHandler) Move(c *fiber.Ctx) error {
	var req dto.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	err := h.roster.MoveWithinCategory(c.Context(), auth.CapabilitiesFromContext(c), c.Params("id"), domain.Category(req.Category), service.MoveDirection(req.Direction))
	if err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func entryResponse(entry domain.RosterEntry) dto.RosterEntryResponse {
	return dto.RosterEntryResponse{
		ID:       entry.ID,
		Role:     entry.Role,
		FullName: entry.FullName,
		Avatar:   entry.Avatar,
		Status:   string(entry.Status),
		Date:     entry.Date,
		Task:     entry.Task,
		Category: string(entry.Category),
		Warnings: entry.Warnings,
	}
}

func actorName(c *fiber.Ctx) string {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return principal.Credential.CharacterName
	}
	return ""
}

func nameParam(c *fiber.Ctx) (string, error) {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || name == "" {
		return "", fiber.NewError(http.StatusBadRequest, "character name required")
	}
	return name, nil
}
