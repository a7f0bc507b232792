package domain

import "time"

// Account roles. Tokens carry the role claim verbatim; route policy
// compares against these constants.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User is an account in the admin backend. ID is the canonical identity;
// every token subject resolves to it.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
