package models

import "time"

// LoginLog is an append-only record of a successful sign-in.
type LoginLog struct {
	ID        int64
	Email     string
	Method    string
	CreatedAt time.Time
}
