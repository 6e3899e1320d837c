package domain

import "time"

// NewsPost is a single entry in the dashboard news feed. Image, when set,
// holds an inline data URL; posts are listed newest first.
type NewsPost struct {
	ID         string
	AuthorName string
	Content    string
	Image      string
	Timestamp  time.Time
}
