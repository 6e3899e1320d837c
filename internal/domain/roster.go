package domain

import (
	"strings"
	"time"
)

// MemberStatus represents a roster member's presence state.
type MemberStatus string

const (
	StatusOnline  MemberStatus = "online"
	StatusOffline MemberStatus = "offline"
)

// Toggle returns the opposite presence state.
func (s MemberStatus) Toggle() MemberStatus {
	if s == StatusOnline {
		return StatusOffline
	}
	return StatusOnline
}

// Category is one of the fixed roster groupings.
type Category string

const (
	CategoryAdministration Category = "Administration"
	CategoryJournalism     Category = "Journalism"
	CategorySecurity       Category = "Security"
)

// Categories lists the fixed display order of roster groupings.
var Categories = []Category{CategoryAdministration, CategoryJournalism, CategorySecurity}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Role returns the credential role a member of this category carries.
func (c Category) Role() CredentialRole {
	return CredentialRole(strings.ToLower(string(c)))
}

// CategoryForRole maps an operational role back to its roster category.
// Roles without a category (admin, underreview) return false.
func CategoryForRole(role CredentialRole) (Category, bool) {
	switch role {
	case RoleAdministration:
		return CategoryAdministration, true
	case RoleJournalism:
		return CategoryJournalism, true
	case RoleSecurity:
		return CategorySecurity, true
	}
	return "", false
}

// Warning levels a member can carry; zero means no warning.
const (
	MinWarningLevel = 1
	MaxWarningLevel = 3
)

// DefaultTask is assigned to freshly added members.
const DefaultTask = "No task assigned"

// RosterEntry is a single team member's row on the dashboard. Position is
// the entry's slot in the flat backing sequence; the grouped view is derived
// from it on every read. FullName correlates with a Credential by name only,
// referential integrity is not enforced.
type RosterEntry struct {
	ID       string
	Role     string // display label, independent of the credential role
	FullName string
	Avatar   string // inline data URL, empty when unset
	Status   MemberStatus
	Date     string // ISO date (YYYY-MM-DD)
	Task     string
	Category Category
	Warnings int
	Position int
	CreatedAt time.Time
	UpdatedAt time.Time
}
