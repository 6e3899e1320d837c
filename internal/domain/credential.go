package domain

import "time"

// CredentialRole enumerates roles a registered character can hold.
type CredentialRole string

const (
	RoleAdmin          CredentialRole = "admin"
	RoleAdministration CredentialRole = "administration"
	RoleJournalism     CredentialRole = "journalism"
	RoleSecurity       CredentialRole = "security"
	RoleUnderReview    CredentialRole = "underreview"
)

// Valid reports whether the role is one of the known values.
func (r CredentialRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleAdministration, RoleJournalism, RoleSecurity, RoleUnderReview:
		return true
	}
	return false
}

// Credential is the durable identity record for a registered character.
// Passwords are stored and compared as plain text; the dashboard is not a
// security boundary.
type Credential struct {
	CharacterName string
	Password      string
	Role          CredentialRole
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
