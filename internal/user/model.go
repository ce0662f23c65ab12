package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("user not found")
	ErrEmailAlreadyUsed = errors.New("email already used")
	ErrNameRequired     = errors.New("name is required")
	ErrEmailRequired    = errors.New("email is required")
)

// User represents a registered user. A user can own items and book items
// owned by other users.
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}
