package domain

import "time"

// Account is a registered caller. Username is unique regardless of case.
type Account struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
