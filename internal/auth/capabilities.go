package auth

import "github.com/spec-kit/dashboard-service/internal/domain"

// Capabilities are the boolean gates derived from the current session's
// identity. Mutating roster operations consume them as an explicit
// precondition instead of re-deriving role checks inline.
type Capabilities struct {
	IsAdmin     bool
	CanWarn     bool
	CanPostNews bool
}

// CapabilitiesFor derives capability flags from a credential. The
// distinguished bootstrap admin is admin regardless of stored role.
// A nil credential (anonymous session) holds no capabilities.
func CapabilitiesFor(cred *domain.Credential, bootstrapAdminName string) Capabilities {
	if cred == nil {
		return Capabilities{}
	}
	isAdmin := cred.Role == domain.RoleAdmin || cred.CharacterName == bootstrapAdminName
	elevated := cred.Role == domain.RoleAdministration || isAdmin
	return Capabilities{
		IsAdmin:     isAdmin,
		CanWarn:     elevated,
		CanPostNews: elevated,
	}
}
