package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danvitmon/contactpro/internal/models"
	"github.com/danvitmon/contactpro/internal/repositories"
)

// ContactService provides owner-scoped contact queries and CRUD. Every read
// reachable from a user-facing flow takes the owner id first; there is no
// way to list or search another user's contacts through this surface.
type ContactService struct {
	contactRepo         *repositories.ContactRepository
	categoryRepo        *repositories.CategoryRepository
	contactCategoryRepo *repositories.ContactCategoryRepository
	addressBookService  *AddressBookService
}

func NewContactService(
	contactRepo *repositories.ContactRepository,
	categoryRepo *repositories.CategoryRepository,
	contactCategoryRepo *repositories.ContactCategoryRepository,
	addressBookService *AddressBookService,
) *ContactService {
	return &ContactService{
		contactRepo:         contactRepo,
		categoryRepo:        categoryRepo,
		contactCategoryRepo: contactCategoryRepo,
		addressBookService:  addressBookService,
	}
}

// CreateContact validates and persists a new contact, then attaches the
// selected categories.
func (s *ContactService) CreateContact(contact *models.Contact, categoryIDs []string) error {
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now().UTC()
	}

	if err := contact.Validate(); err != nil {
		return err
	}

	if err := s.contactRepo.Create(contact); err != nil {
		return fmt.Errorf("error creating contact: %w", err)
	}

	if len(categoryIDs) > 0 {
		if err := s.addressBookService.AddCategoriesToContact(contact.ID, categoryIDs); err != nil {
			return err
		}
	}

	return nil
}

// GetContact retrieves a contact by id, scoped to the owner, hydrated with
// its categories
func (s *ContactService) GetContact(appUserID, id string) (*models.Contact, error) {
	contact, err := s.contactRepo.GetForUser(appUserID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("error fetching contact: %w", err)
	}

	if err := s.hydrateCategories(contact); err != nil {
		return nil, err
	}

	return contact, nil
}

// UpdateContact updates an owner's contact and replaces its category
// selection. A nil selection leaves the memberships untouched.
func (s *ContactService) UpdateContact(appUserID, id string, contact *models.Contact, categoryIDs []string) error {
	// Reject id mismatches before touching anything
	if id != contact.ID {
		return ErrContactNotFound
	}

	existing, err := s.contactRepo.GetForUser(appUserID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrContactNotFound
		}
		return fmt.Errorf("error fetching contact: %w", err)
	}

	// Owner id is immutable after creation
	contact.AppUserID = existing.AppUserID
	contact.CreatedAt = existing.CreatedAt

	if err := contact.Validate(); err != nil {
		return err
	}

	if err := s.contactRepo.Update(contact); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrContactNotFound
		}
		return fmt.Errorf("error updating contact: %w", err)
	}

	if categoryIDs != nil {
		if err := s.addressBookService.ReplaceCategories(contact.ID, categoryIDs); err != nil {
			return err
		}
	}

	return nil
}

// DeleteContact deletes an owner's contact along with its memberships
func (s *ContactService) DeleteContact(appUserID, id string) error {
	err := s.contactRepo.Delete(appUserID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrContactNotFound
		}
		return fmt.Errorf("error deleting contact: %w", err)
	}
	return nil
}

// ListContacts retrieves all contacts for the owner, hydrated with their
// category memberships
func (s *ContactService) ListContacts(appUserID string) ([]*models.Contact, error) {
	contacts, err := s.contactRepo.ListByUser(appUserID)
	if err != nil {
		return nil, fmt.Errorf("error listing contacts: %w", err)
	}

	for _, contact := range contacts {
		if err := s.hydrateCategories(contact); err != nil {
			return nil, err
		}
	}

	return contacts, nil
}

// ListContactsByCategory retrieves the owner's contacts belonging to the
// given category. A category that does not exist for the owner yields an
// empty result, not an error.
func (s *ContactService) ListContactsByCategory(appUserID, categoryID string) ([]*models.Contact, error) {
	_, err := s.categoryRepo.GetForUser(appUserID, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching category: %w", err)
	}

	memberships, err := s.contactCategoryRepo.GetByCategoryID(categoryID)
	if err != nil {
		return nil, fmt.Errorf("error fetching memberships: %w", err)
	}

	ids := make([]string, 0, len(memberships))
	for _, membership := range memberships {
		ids = append(ids, membership.ContactID)
	}

	contacts, err := s.contactRepo.ListByIDs(appUserID, ids)
	if err != nil {
		return nil, fmt.Errorf("error listing contacts: %w", err)
	}

	for _, contact := range contacts {
		if err := s.hydrateCategories(contact); err != nil {
			return nil, err
		}
	}

	return contacts, nil
}

// SearchContacts retrieves the owner's contacts whose first name contains
// the search text, case-insensitive. An empty search returns the full list.
func (s *ContactService) SearchContacts(appUserID, term string) ([]*models.Contact, error) {
	contacts, err := s.contactRepo.SearchByFirstName(appUserID, term)
	if err != nil {
		return nil, fmt.Errorf("error searching contacts: %w", err)
	}

	for _, contact := range contacts {
		if err := s.hydrateCategories(contact); err != nil {
			return nil, err
		}
	}

	return contacts, nil
}

func (s *ContactService) hydrateCategories(contact *models.Contact) error {
	categories, err := s.addressBookService.GetCategoriesForContact(contact.ID)
	if err != nil {
		return err
	}
	contact.Categories = categories
	return nil
}
