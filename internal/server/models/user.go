package models

import "time"

// User is an account record. PasswordHash is never rendered to clients.
type User struct {
	ID           int64
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
