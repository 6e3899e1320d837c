package dto

import "time"

// RegisterRequest payload for sign-up.
type RegisterRequest struct {
	CharacterName   string `json:"character_name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest payload for sign-in. Remember opts in to form prefill.
type LoginRequest struct {
	CharacterName string `json:"character_name"`
	Password      string `json:"password"`
	Remember      bool   `json:"remember"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CredentialResponse is the public view of a registered character.
type CredentialResponse struct {
	CharacterName string `json:"character_name"`
	Role          string `json:"role"`
}

// CapabilitiesResponse mirrors the caller's derived capability flags.
type CapabilitiesResponse struct {
	IsAdmin     bool `json:"is_admin"`
	CanWarn     bool `json:"can_warn"`
	CanPostNews bool `json:"can_post_news"`
}
