package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/dashboard-service/internal/auth"
	"github.com/spec-kit/dashboard-service/internal/repository"
	"github.com/spec-kit/dashboard-service/pkg/apperrors"
)

// SpotlightService manages the employee-of-the-week selection. Candidates
// are registered characters other than the bootstrap admin; selection and
// clearing are admin actions and silently refused otherwise.
type SpotlightService struct {
	spotlight          repository.SpotlightStore
	credentials        repository.CredentialRepository
	bootstrapAdminName string
}

// NewSpotlightService constructs the service.
func NewSpotlightService(spotlight repository.SpotlightStore, credentials repository.CredentialRepository, bootstrapAdminName string) *SpotlightService {
	return &SpotlightService{
		spotlight:          spotlight,
		credentials:        credentials,
		bootstrapAdminName: bootstrapAdminName,
	}
}

// Set picks the employee of the week.
func (s *SpotlightService) Set(ctx context.Context, caps auth.Capabilities, characterName string) error {
	if !caps.IsAdmin {
		return nil
	}
	if characterName == s.bootstrapAdminName {
		return apperrors.NewValidationError("bootstrap admin is not a spotlight candidate", nil)
	}
	if _, err := s.credentials.GetByName(ctx, characterName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("credential", map[string]any{"character_name": characterName})
		}
		return apperrors.MapError(err)
	}
	return apperrors.MapError(s.spotlight.Set(ctx, characterName))
}

// Clear removes the current selection.
func (s *SpotlightService) Clear(ctx context.Context, caps auth.Capabilities) error {
	if !caps.IsAdmin {
		return nil
	}
	return apperrors.MapError(s.spotlight.Clear(ctx))
}

// Get returns the selected character name, empty when nobody is picked.
func (s *SpotlightService) Get(ctx context.Context) (string, error) {
	name, err := s.spotlight.Get(ctx)
	if err != nil {
		return "", apperrors.MapError(err)
	}
	return name, nil
}
