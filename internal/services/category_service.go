package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danvitmon/contactpro/internal/models"
	"github.com/danvitmon/contactpro/internal/repositories"
)

// CategoryService provides owner-scoped category queries and CRUD
type CategoryService struct {
	categoryRepo        *repositories.CategoryRepository
	contactCategoryRepo *repositories.ContactCategoryRepository
}

func NewCategoryService(
	categoryRepo *repositories.CategoryRepository,
	contactCategoryRepo *repositories.ContactCategoryRepository,
) *CategoryService {
	return &CategoryService{
		categoryRepo:        categoryRepo,
		contactCategoryRepo: contactCategoryRepo,
	}
}

// CreateCategory validates and persists a new category
func (s *CategoryService) CreateCategory(category *models.Category) error {
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}

	if err := category.Validate(); err != nil {
		return err
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return fmt.Errorf("error creating category: %w", err)
	}

	return nil
}

// GetCategory retrieves a category by id, scoped to the owner
func (s *CategoryService) GetCategory(appUserID, id string) (*models.Category, error) {
	category, err := s.categoryRepo.GetForUser(appUserID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error fetching category: %w", err)
	}
	return category, nil
}

// UpdateCategory renames an owner's category
func (s *CategoryService) UpdateCategory(appUserID, id string, category *models.Category) error {
	// Reject id mismatches before touching anything
	if id != category.ID {
		return ErrCategoryNotFound
	}

	existing, err := s.categoryRepo.GetForUser(appUserID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("error fetching category: %w", err)
	}

	// Owner id is immutable after creation
	category.AppUserID = existing.AppUserID

	if err := category.Validate(); err != nil {
		return err
	}

	if err := s.categoryRepo.Update(category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("error updating category: %w", err)
	}

	return nil
}

// DeleteCategory deletes an owner's category and clears its memberships so
// no dangling links remain
func (s *CategoryService) DeleteCategory(appUserID, id string) error {
	err := s.categoryRepo.Delete(appUserID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("error deleting category: %w", err)
	}

	// The schema cascades membership rows; this covers databases opened
	// without foreign keys enabled.
	if err := s.contactCategoryRepo.DeleteByCategoryID(id); err != nil {
		return fmt.Errorf("error removing memberships: %w", err)
	}

	return nil
}

// ListCategories retrieves all categories for the owner
func (s *CategoryService) ListCategories(appUserID string) ([]*models.Category, error) {
	categories, err := s.categoryRepo.ListByUser(appUserID)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	return categories, nil
}
