package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/dashboard-service/internal/domain"
	"github.com/spec-kit/dashboard-service/internal/repository"
	"github.com/spec-kit/dashboard-service/pkg/apperrors"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller and its derived capability
// flags. Anonymous requests carry no principal.
type Principal struct {
	Credential   *domain.Credential
	Capabilities Capabilities
}

// Middleware validates bearer tokens and loads principals.
type Middleware struct {
	tokens             *TokenManager
	credentials        repository.CredentialRepository
	bootstrapAdminName string
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, credentials repository.CredentialRepository, bootstrapAdminName string) *Middleware {
	return &Middleware{tokens: tokens, credentials: credentials, bootstrapAdminName: bootstrapAdminName}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	principal, err := m.resolve(c)
	if err != nil {
		return err
	}
	if principal == nil {
		return apperrors.NewUnauthorized("missing authorization header")
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

// Optional loads a principal when a valid token is present and continues
// anonymously otherwise. Capability checks downstream treat the anonymous
// caller as holding no capabilities.
func (m *Middleware) Optional(c *fiber.Ctx) error {
	principal, err := m.resolve(c)
	if err == nil && principal != nil {
		c.Locals(principalKey, principal)
	}
	return c.Next()
}

func (m *Middleware) resolve(c *fiber.Ctx) (*Principal, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}

	cred, err := m.credentials.GetByName(c.Context(), claims.CharacterName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("unknown character")
		}
		return nil, apperrors.MapError(err)
	}

	return &Principal{
		Credential:   cred,
		Capabilities: CapabilitiesFor(cred, m.bootstrapAdminName),
	}, nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// CapabilitiesFromContext returns the caller's capability flags, empty for
// anonymous requests.
func CapabilitiesFromContext(c *fiber.Ctx) Capabilities {
	if principal, ok := PrincipalFromContext(c); ok {
		return principal.Capabilities
	}
	return Capabilities{}
}
