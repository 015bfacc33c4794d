package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/danvitmon/contactpro/internal/models"
	"github.com/danvitmon/contactpro/internal/repositories"
	"github.com/danvitmon/contactpro/pkg/logger"
)

// AddressBookService maintains the many-to-many link between contacts and
// categories. It is owner-agnostic: callers must have fetched the contact
// through an owner-scoped read before invoking it.
type AddressBookService struct {
	contactRepo         *repositories.ContactRepository
	categoryRepo        *repositories.CategoryRepository
	contactCategoryRepo *repositories.ContactCategoryRepository
}

func NewAddressBookService(
	contactRepo *repositories.ContactRepository,
	categoryRepo *repositories.CategoryRepository,
	contactCategoryRepo *repositories.ContactCategoryRepository,
) *AddressBookService {
	return &AddressBookService{
		contactRepo:         contactRepo,
		categoryRepo:        categoryRepo,
		contactCategoryRepo: contactCategoryRepo,
	}
}

// AddCategoriesToContact attaches the given categories to a contact.
// A missing contact, a missing category id, a cross-owner pair, or an
// already-present pair is skipped silently; the rest of the batch proceeds.
func (s *AddressBookService) AddCategoriesToContact(contactID string, categoryIDs []string) error {
	contact, err := s.contactRepo.GetByID(contactID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Debugf("skipping category assignment, contact %s not found", contactID)
			return nil
		}
		return fmt.Errorf("error loading contact: %w", err)
	}

	for _, categoryID := range categoryIDs {
		category, err := s.categoryRepo.GetByID(categoryID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				logger.Debugf("skipping missing category %s for contact %s", categoryID, contactID)
				continue
			}
			return fmt.Errorf("error loading category: %w", err)
		}

		// Cross-owner links must never be persisted
		if category.AppUserID != contact.AppUserID {
			logger.Warnf("skipping cross-owner category %s for contact %s", categoryID, contactID)
			continue
		}

		exists, err := s.contactCategoryRepo.ExistsByContactAndCategoryID(contactID, categoryID)
		if err != nil {
			return fmt.Errorf("error checking existing membership: %w", err)
		}
		if exists {
			continue
		}

		if err := s.contactCategoryRepo.Create(models.NewContactCategory(contactID, categoryID)); err != nil {
			return fmt.Errorf("error creating membership: %w", err)
		}
	}

	return nil
}

// RemoveCategoriesFromContact clears all memberships for a contact. Unlike
// AddCategoriesToContact, a missing contact is an error here.
func (s *AddressBookService) RemoveCategoriesFromContact(contactID string) error {
	if _, err := s.contactRepo.GetByID(contactID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrContactNotFound
		}
		return fmt.Errorf("error loading contact: %w", err)
	}

	if err := s.contactCategoryRepo.DeleteByContactID(contactID); err != nil {
		return fmt.Errorf("error removing memberships: %w", err)
	}

	return nil
}

// ReplaceCategories swaps a contact's membership set for the given selection
// in one transaction. Ids that do not resolve to a category of the same
// owner are dropped from the selection, matching AddCategoriesToContact.
func (s *AddressBookService) ReplaceCategories(contactID string, categoryIDs []string) error {
	contact, err := s.contactRepo.GetByID(contactID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrContactNotFound
		}
		return fmt.Errorf("error loading contact: %w", err)
	}

	var memberships []*models.ContactCategory
	seen := make(map[string]bool)
	for _, categoryID := range categoryIDs {
		if seen[categoryID] {
			continue
		}
		seen[categoryID] = true

		category, err := s.categoryRepo.GetByID(categoryID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				logger.Debugf("skipping missing category %s for contact %s", categoryID, contactID)
				continue
			}
			return fmt.Errorf("error loading category: %w", err)
		}

		if category.AppUserID != contact.AppUserID {
			logger.Warnf("skipping cross-owner category %s for contact %s", categoryID, contactID)
			continue
		}

		memberships = append(memberships, models.NewContactCategory(contactID, categoryID))
	}

	if err := s.contactCategoryRepo.ReplaceByContactID(contactID, memberships); err != nil {
		return fmt.Errorf("error replacing memberships: %w", err)
	}

	return nil
}

// GetCategoriesForContact retrieves the categories a contact belongs to
func (s *AddressBookService) GetCategoriesForContact(contactID string) ([]*models.Category, error) {
	memberships, err := s.contactCategoryRepo.GetByContactID(contactID)
	if err != nil {
		return nil, fmt.Errorf("error fetching memberships: %w", err)
	}

	var categories []*models.Category
	for _, membership := range memberships {
		category, err := s.categoryRepo.GetByID(membership.CategoryID)
		if err != nil {
			// Skip categories that can't be found
			continue
		}
		categories = append(categories, category)
	}

	return categories, nil
}
