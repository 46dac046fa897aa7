package domain

import "time"

// Platform represents a streaming service hosting zero or more titles.
type Platform struct {
	ID        string
	Name      string
	About     string
	Website   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
