package domain

import "time"

// User is a registered account that can author reviews. Admin users may
// additionally mutate the catalog.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Admin        bool
	CreatedAt    time.Time
}
