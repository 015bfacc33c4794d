package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the owner of contacts and categories. Identity management itself
// (passwords, external providers) lives outside this application; a User row
// only anchors ownership.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser creates a new User with a generated UUID
func NewUser(name, email string) *User {
	return &User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
}

// ValidationError describes a failed field-level validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
