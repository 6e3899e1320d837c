package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/dashboard-service/internal/auth"
	"github.com/spec-kit/dashboard-service/internal/config"
	"github.com/spec-kit/dashboard-service/internal/domain"
	"github.com/spec-kit/dashboard-service/internal/repository"
	"github.com/spec-kit/dashboard-service/pkg/apperrors"
)

// CredentialService coordinates sign-up, sign-in and role administration
// over the credential store. Authentication is an exact name/password match;
// the dashboard deliberately stores passwords in plain text.
type CredentialService struct {
	credentials repository.CredentialRepository
	loginInfo   repository.LoginInfoStore
	tokenMgr    *auth.TokenManager
	logger      *zap.Logger

	bootstrapName     string
	bootstrapPassword string
}

// CredentialDependencies encapsulates store requirements for the service.
type CredentialDependencies struct {
	CredentialRepo repository.CredentialRepository
	LoginInfoStore repository.LoginInfoStore
}

// NewCredentialService builds the service.
func NewCredentialService(cfg config.Config, deps CredentialDependencies, logger *zap.Logger) *CredentialService {
	return &CredentialService{
		credentials:       deps.CredentialRepo,
		loginInfo:         deps.LoginInfoStore,
		tokenMgr:          auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		logger:            logger,
		bootstrapName:     cfg.Auth.BootstrapAdminName,
		bootstrapPassword: cfg.Auth.BootstrapAdminPassword,
	}
}

// EnsureBootstrapAdmin seeds the distinguished admin credential when absent.
// It must run before any sign-in attempt is served.
func (s *CredentialService) EnsureBootstrapAdmin(ctx context.Context) error {
	_, err := s.credentials.GetByName(ctx, s.bootstrapName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	cred := &domain.Credential{
		CharacterName: s.bootstrapName,
		Password:      s.bootstrapPassword,
		Role:          domain.RoleAdmin,
	}
	if err := s.credentials.Create(ctx, cred); err != nil {
		return err
	}
	s.logger.Info("bootstrap admin created", zap.String("character_name", s.bootstrapName))
	return nil
}

// Register creates a new credential with the underreview role and signs the
// new character in.
func (s *CredentialService) Register(ctx context.Context, name, password, confirmPassword string) (*domain.Credential, string, time.Time, error) {
	if name == "" || password == "" || confirmPassword == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("please fill in all fields", nil)
	}
	if password != confirmPassword {
		return nil, "", time.Time{}, apperrors.NewValidationError("passwords do not match", nil)
	}

	if _, err := s.credentials.GetByName(ctx, name); err == nil {
		return nil, "", time.Time{}, apperrors.NewDuplicateName(name)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	cred := &domain.Credential{
		CharacterName: name,
		Password:      password,
		Role:          domain.RoleUnderReview,
	}
	if err := s.credentials.Create(ctx, cred); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(cred.CharacterName, cred.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return cred, token, exp, nil
}

// SignIn authenticates a character by exact name/password match. When
// remember is set the sign-in info is saved for form prefill, otherwise any
// previously saved info is cleared.
func (s *CredentialService) SignIn(ctx context.Context, name, password string, remember bool) (*domain.Credential, string, time.Time, error) {
	cred, err := s.credentials.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if cred.Password != password {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.GenerateToken(cred.CharacterName, cred.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	// Prefill persistence is best effort; a failed save never blocks sign-in.
	if remember {
		if err := s.loginInfo.Save(ctx, repository.SavedLoginInfo{CharacterName: name, Password: password}); err != nil {
			s.logger.Warn("failed to save login info", zap.Error(err))
		}
	} else if err := s.loginInfo.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear login info", zap.Error(err))
	}

	return cred, token, exp, nil
}

// SavedLogin returns the opt-in sign-in prefill, nil when none is saved.
func (s *CredentialService) SavedLogin(ctx context.Context) (*repository.SavedLoginInfo, error) {
	info, err := s.loginInfo.Get(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return info, nil
}

// SetRole updates an existing credential's role. The update is idempotent.
func (s *CredentialService) SetRole(ctx context.Context, name string, role domain.CredentialRole) error {
	if !role.Valid() {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}
	if err := s.credentials.UpdateRole(ctx, name, role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("credential", map[string]any{"character_name": name})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// ListByRole returns credentials holding the given role in store order.
func (s *CredentialService) ListByRole(ctx context.Context, role domain.CredentialRole) ([]domain.Credential, error) {
	creds, err := s.credentials.ListByRole(ctx, role)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return creds, nil
}

// ListUnderReview returns sign-ups awaiting activation.
func (s *CredentialService) ListUnderReview(ctx context.Context) ([]domain.Credential, error) {
	return s.ListByRole(ctx, domain.RoleUnderReview)
}

// ListRegistered returns every registered character except the bootstrap
// admin, the candidate pool for roster assignment and the weekly spotlight.
func (s *CredentialService) ListRegistered(ctx context.Context) ([]domain.Credential, error) {
	creds, err := s.credentials.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	result := creds[:0]
	for _, cred := range creds {
		if cred.CharacterName != s.bootstrapName {
			result = append(result, cred)
		}
	}
	return result, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *CredentialService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// BootstrapAdminName returns the distinguished admin identity name.
func (s *CredentialService) BootstrapAdminName() string {
	return s.bootstrapName
}
