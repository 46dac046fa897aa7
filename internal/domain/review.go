package domain

import "time"

// Review is one user's rating and text feedback on exactly one title.
// At most one review may exist per (title, author) pair.
type Review struct {
	ID             string
	TitleID        string
	AuthorID       string
	AuthorUsername string
	Rating         int
	Description    string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
