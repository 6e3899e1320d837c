package dto

// AddMemberRequest assigns an already-chosen registered character to the
// category in the URL; selection UI is a presentation concern.
type AddMemberRequest struct {
	CharacterName string `json:"character_name"`
}

// ActivateMemberRequest promotes an underreview character.
type ActivateMemberRequest struct {
	Role string `json:"role"`
}

// EditFieldRequest replaces one inline-editable field.
type EditFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// ReorderRequest is a drag-and-drop drop event.
type ReorderRequest struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
}

// MoveRequest nudges an entry within its category.
type MoveRequest struct {
	Category  string `json:"category"`
	Direction string `json:"direction"`
}

// RosterEntryResponse is one member row.
type RosterEntryResponse struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar,omitempty"`
	Status   string `json:"status"`
	Date     string `json:"date"`
	Task     string `json:"task"`
	Category string `json:"category"`
	Warnings int    `json:"warnings"`
}

// CategoryGroupResponse is one category block in display order.
type CategoryGroupResponse struct {
	Category string                `json:"category"`
	Members  []RosterEntryResponse `json:"members"`
}
