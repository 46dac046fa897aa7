package domain

import "time"

// Title represents a reviewable catalog entry (a movie or show) together
// with its aggregate rating state.
type Title struct {
	ID           string
	Name         string
	Storyline    string
	Active       bool
	PlatformID   string
	PlatformName string
	AvgRating    float64
	RatingCount  int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
