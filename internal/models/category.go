package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a named group of contacts. Names are free text and may repeat
// across users or even within one user's list.
type Category struct {
	ID        string    `json:"id"`
	AppUserID string    `json:"app_user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Hydrated membership, not persisted on the category row
	Contacts []*Contact `json:"contacts,omitempty"`
}

// NewCategory creates a new Category with a generated UUID
func NewCategory(appUserID, name string) *Category {
	return &Category{
		ID:        uuid.New().String(),
		AppUserID: appUserID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

func (c *Category) Validate() error {
	if c.AppUserID == "" {
		return ErrCategoryOwnerRequired
	}
	if c.Name == "" {
		return ErrCategoryNameRequired
	}
	return nil
}

// Common errors
var (
	ErrCategoryOwnerRequired = &ValidationError{Field: "app_user_id", Message: "Category owner is required"}
	ErrCategoryNameRequired  = &ValidationError{Field: "name", Message: "Category name is required"}
)
