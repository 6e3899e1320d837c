package events

import (
	"time"

	"github.com/spec-kit/dashboard-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMemberAdded     EventType = "member_added"
	EventMemberActivated EventType = "member_activated"
	EventMemberWarned    EventType = "member_warned"
	EventMemberRemoved   EventType = "member_removed"
	EventNewsPosted      EventType = "news_posted"
)

// Actor identifies the signed-in character that triggered an event.
type Actor struct {
	CharacterName string `json:"character_name"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MemberAddedPayload payload.
type MemberAddedPayload struct {
	EntryID       string          `json:"entry_id"`
	CharacterName string          `json:"character_name"`
	Category      domain.Category `json:"category"`
}

// MemberActivatedPayload payload.
type MemberActivatedPayload struct {
	CharacterName string                `json:"character_name"`
	NewRole       domain.CredentialRole `json:"new_role"`
	Category      domain.Category       `json:"category"`
}

// MemberWarnedPayload payload. Level carries the pressed warning slot;
// NewLevel is zero when the press removed an existing warning.
type MemberWarnedPayload struct {
	EntryID       string `json:"entry_id"`
	CharacterName string `json:"character_name"`
	Level         int    `json:"level"`
	NewLevel      int    `json:"new_level"`
}

// MemberRemovedPayload payload.
type MemberRemovedPayload struct {
	EntryID       string `json:"entry_id"`
	CharacterName string `json:"character_name"`
}

// NewsPostedPayload payload.
type NewsPostedPayload struct {
	PostID     string `json:"post_id"`
	AuthorName string `json:"author_name"`
	HasImage   bool   `json:"has_image"`
}
