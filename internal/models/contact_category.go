package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactCategory links one contact to one category. Membership carries no
// payload of its own besides the pair of ids.
type ContactCategory struct {
	ID         string    `json:"id"`
	ContactID  string    `json:"contact_id"`
	CategoryID string    `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewContactCategory creates a new ContactCategory with a generated UUID
func NewContactCategory(contactID, categoryID string) *ContactCategory {
	return &ContactCategory{
		ID:         uuid.New().String(),
		ContactID:  contactID,
		CategoryID: categoryID,
		CreatedAt:  time.Now().UTC(),
	}
}
