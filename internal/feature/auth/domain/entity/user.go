// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account.
type User struct {
	// ID is assigned by the storage backend.
	ID string

	// Name is the display name given at signup.
	Name string

	// Email is unique across all users and stored lower-cased.
	Email string

	// Password is the bcrypt hash, never plaintext.
	Password string

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
