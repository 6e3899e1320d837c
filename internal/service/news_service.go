package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/dashboard-service/internal/auth"
	"github.com/spec-kit/dashboard-service/internal/domain"
	"github.com/spec-kit/dashboard-service/internal/events"
	"github.com/spec-kit/dashboard-service/internal/repository"
	"github.com/spec-kit/dashboard-service/pkg/apperrors"
	"github.com/spec-kit/dashboard-service/pkg/dataurl"
)

// NewsService manages the dashboard news feed. Posting and deleting are
// gated on the posting capability and silently refused without it.
type NewsService struct {
	news       repository.NewsRepository
	dispatcher events.Dispatcher
}

// NewNewsService constructs the service.
func NewNewsService(news repository.NewsRepository, dispatcher events.Dispatcher) *NewsService {
	return &NewsService{news: news, dispatcher: dispatcher}
}

// Post publishes a news update, newest first. Image, when present, must be
// an inline image data URL. Returns nil without error when the caller lacks
// the posting capability.
func (s *NewsService) Post(ctx context.Context, caps auth.Capabilities, authorName, content, image string) (*domain.NewsPost, error) {
	if !caps.CanPostNews {
		return nil, nil
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("content required", nil)
	}
	if image != "" && !dataurl.IsImage(image) {
		return nil, apperrors.NewValidationError("image must be an inline image data URL", nil)
	}

	post := &domain.NewsPost{
		ID:         uuid.NewString(),
		AuthorName: authorName,
		Content:    content,
		Image:      image,
		Timestamp:  time.Now(),
	}
	if err := s.news.Create(ctx, post); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventNewsPosted,
			Actor:     events.Actor{CharacterName: authorName},
			Timestamp: time.Now(),
			Payload: events.NewsPostedPayload{
				PostID:     post.ID,
				AuthorName: authorName,
				HasImage:   image != "",
			},
		})
	}
	return post, nil
}

// Delete removes a post. Deleting an unknown id is not an error.
func (s *NewsService) Delete(ctx context.Context, caps auth.Capabilities, id string) error {
	if !caps.CanPostNews {
		return nil
	}
	if err := s.news.Delete(ctx, id); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.MapError(err)
	}
	return nil
}

// List returns all posts, newest first.
func (s *NewsService) List(ctx context.Context) ([]domain.NewsPost, error) {
	posts, err := s.news.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return posts, nil
}
