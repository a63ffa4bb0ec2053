package models

import "time"

// User captures the application-facing fields of an account. It never carries
// the password hash, so it is always safe to serialize into a response.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// UserRecord is the persisted form of a user, including the bcrypt hash.
// It stays inside the storage and auth packages.
type UserRecord struct {
	User
	Password string `json:"password"`
}

// NewUser holds the fields required to create a user. PasswordHash must
// already be hashed.
type NewUser struct {
	Email        string
	Name         string
	PasswordHash string
}
