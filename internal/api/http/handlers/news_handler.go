package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dashboard-service/internal/api/dto"
	"github.com/spec-kit/dashboard-service/internal/auth"
	"github.com/spec-kit/dashboard-service/internal/domain"
	"github.com/spec-kit/dashboard-service/internal/service"
)

// NewsHandler exposes the news feed.
type NewsHandler struct {
	news *service.NewsService
}

// NewNewsHandler constructs handler.
func NewNewsHandler(news *service.NewsService) *NewsHandler {
	return &NewsHandler{news: news}
}

// List handles GET /news.
func (h *NewsHandler) List(c *fiber.Ctx) error {
	posts, err := h.news.List(c.Context())
	if err != nil {
		return err
	}
	responses := make([]dto.NewsPostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, postResponse(post))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"posts": responses}})
}

// Post handles POST /news.
func (h *NewsHandler) Post(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return c.SendStatus(http.StatusNoContent)
	}

	var req dto.PostNewsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	post, err := h.news.Post(c.Context(), principal.Capabilities, principal.Credential.CharacterName, req.Content, req.Image)
	if err != nil {
		return err
	}
	if post == nil {
		return c.SendStatus(http.StatusNoContent)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": postResponse(*post)})
}

// Delete handles DELETE /news/:id.
func (h *NewsHandler) Delete(c *fiber.Ctx) error {
	if err := h.news.Delete(c.Context(), auth.CapabilitiesFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func postResponse(post domain.NewsPost) dto.NewsPostResponse {
	return dto.NewsPostResponse{
		ID:         post.ID,
		AuthorName: post.AuthorName,
		Content:    post.Content,
		Image:      post.Image,
		Timestamp:  post.Timestamp,
	}
}
