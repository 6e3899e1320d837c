package dto

import "time"

// PostNewsRequest publishes a news update; Image is an optional inline
// image data URL.
type PostNewsRequest struct {
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
}

// NewsPostResponse is one feed entry.
type NewsPostResponse struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	Image      string    `json:"image,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// SetSpotlightRequest picks the employee of the week.
type SetSpotlightRequest struct {
	CharacterName string `json:"character_name"`
}
