package domain

import "time"

// User represents a registered account. Credential holds the bcrypt hash of
// the password and is never serialized.
type User struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Credential string    `json:"-"`
	Address    string    `json:"address,omitempty"`
	IsAdmin    bool      `json:"isAdmin"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
