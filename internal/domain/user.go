package domain

import (
	"context"
	"time"
)

// User represents a registered account
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Principal is the authenticated identity acting on a request.
// A nil *Principal stands for an anonymous caller.
type Principal struct {
	UserID   int64
	Username string
}

// RegistrationInput is the decoded registration payload
type RegistrationInput struct {
	Username  *string
	Password1 *string
	Password2 *string
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}
