package repositories

import (
	"database/sql"
	"sync"

	"github.com/danvitmon/contactpro/internal/models"
)

type ContactCategoryRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewContactCategoryRepository(db *sql.DB) *ContactCategoryRepository {
	return &ContactCategoryRepository{db: db}
}

// Create creates a new membership row
func (r *ContactCategoryRepository) Create(membership *models.ContactCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO contact_categories (id, contact_id, category_id, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		membership.ID, membership.ContactID, membership.CategoryID, membership.CreatedAt,
	)

	return err
}

// GetByContactID retrieves all memberships for a contact
func (r *ContactCategoryRepository) GetByContactID(contactID string) ([]*models.ContactCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT id, contact_id, category_id, created_at
		FROM contact_categories WHERE contact_id = ?
		ORDER BY created_at ASC
	`

	return r.queryMemberships(query, contactID)
}

// GetByCategoryID retrieves all memberships for a category
func (r *ContactCategoryRepository) GetByCategoryID(categoryID string) ([]*models.ContactCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT id, contact_id, category_id, created_at
		FROM contact_categories WHERE category_id = ?
		ORDER BY created_at ASC
	`

	return r.queryMemberships(query, categoryID)
}

// ExistsByContactAndCategoryID checks if a membership exists
func (r *ContactCategoryRepository) ExistsByContactAndCategoryID(contactID, categoryID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT COUNT(*) FROM contact_categories WHERE contact_id = ? AND category_id = ?`
	var count int
	err := r.db.QueryRow(query, contactID, categoryID).Scan(&count)
	return count > 0, err
}

// DeleteByContactID deletes all memberships for a contact
func (r *ContactCategoryRepository) DeleteByContactID(contactID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`DELETE FROM contact_categories WHERE contact_id = ?`, contactID)
	return err
}

// DeleteByCategoryID deletes all memberships for a category
func (r *ContactCategoryRepository) DeleteByCategoryID(categoryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`DELETE FROM contact_categories WHERE category_id = ?`, categoryID)
	return err
}

// ReplaceByContactID swaps a contact's entire membership set in a single
// transaction so a failure cannot leave the contact with no categories.
func (r *ContactCategoryRepository) ReplaceByContactID(contactID string, memberships []*models.ContactCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM contact_categories WHERE contact_id = ?`, contactID); err != nil {
		tx.Rollback()
		return err
	}

	for _, membership := range memberships {
		_, err := tx.Exec(
			`INSERT INTO contact_categories (id, contact_id, category_id, created_at) VALUES (?, ?, ?, ?)`,
			membership.ID, membership.ContactID, membership.CategoryID, membership.CreatedAt,
		)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (r *ContactCategoryRepository) queryMemberships(query string, arg interface{}) ([]*models.ContactCategory, error) {
	rows, err := r.db.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []*models.ContactCategory
	for rows.Next() {
		membership := &models.ContactCategory{}
		err := rows.Scan(
			&membership.ID, &membership.ContactID, &membership.CategoryID, &membership.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, membership)
	}

	return memberships, rows.Err()
}
