package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Contact represents one person in a user's address book
type Contact struct {
	ID        string     `json:"id"`
	AppUserID string     `json:"app_user_id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Address1  string     `json:"address1,omitempty"`
	Address2  string     `json:"address2,omitempty"`
	City      string     `json:"city,omitempty"`
	State     string     `json:"state,omitempty"`
	ZipCode   string     `json:"zip_code,omitempty"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	ImageData []byte     `json:"-"`
	ImageType string     `json:"image_type,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	// Hydrated membership, not persisted on the contact row
	Categories []*Category `json:"categories,omitempty"`
}

// NewContact creates a new Contact with a generated UUID
func NewContact(appUserID, firstName, lastName, email, phone string) *Contact {
	return &Contact{
		ID:        uuid.New().String(),
		AppUserID: appUserID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}
}

// FullName returns the display name of the contact
func (c *Contact) FullName() string {
	return fmt.Sprintf("%s %s", c.FirstName, c.LastName)
}

func (c *Contact) Validate() error {
	if c.AppUserID == "" {
		return ErrContactOwnerRequired
	}
	if len(c.FirstName) < 2 || len(c.FirstName) > 50 {
		return ErrContactFirstNameLength
	}
	if len(c.LastName) < 2 || len(c.LastName) > 50 {
		return ErrContactLastNameLength
	}
	if c.Email == "" {
		return ErrContactEmailRequired
	}
	if c.Phone == "" {
		return ErrContactPhoneRequired
	}
	return nil
}

// Common errors
var (
	ErrContactOwnerRequired   = &ValidationError{Field: "app_user_id", Message: "Contact owner is required"}
	ErrContactFirstNameLength = &ValidationError{Field: "first_name", Message: "First name must be between 2 and 50 characters"}
	ErrContactLastNameLength  = &ValidationError{Field: "last_name", Message: "Last name must be between 2 and 50 characters"}
	ErrContactEmailRequired   = &ValidationError{Field: "email", Message: "Email address is required"}
	ErrContactPhoneRequired   = &ValidationError{Field: "phone", Message: "Phone number is required"}
)
