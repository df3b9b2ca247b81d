package models

import "time"

// User is a registered account. Email is stored in normalized (lowercase,
// trimmed) form and is unique. PasswordHash is a bcrypt digest; the plain
// password never reaches a repository.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
