package repositories

import (
	"database/sql"
	"sync"

	"github.com/danvitmon/contactpro/internal/models"
)

type CategoryRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO categories (id, app_user_id, name, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		category.ID, category.AppUserID, category.Name, category.CreatedAt,
	)

	return err
}

// GetByID retrieves a category by ID without owner scoping. Reserved for the
// association layer; user-facing reads go through GetForUser.
func (r *CategoryRepository) GetByID(id string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT id, app_user_id, name, created_at FROM categories WHERE id = ?`

	category := &models.Category{}
	err := r.db.QueryRow(query, id).Scan(
		&category.ID, &category.AppUserID, &category.Name, &category.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return category, nil
}

// GetForUser retrieves a category by ID, scoped to its owner
func (r *CategoryRepository) GetForUser(appUserID, id string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT id, app_user_id, name, created_at FROM categories WHERE app_user_id = ? AND id = ?`

	category := &models.Category{}
	err := r.db.QueryRow(query, appUserID, id).Scan(
		&category.ID, &category.AppUserID, &category.Name, &category.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return category, nil
}

// ListByUser retrieves all categories owned by a user
func (r *CategoryRepository) ListByUser(appUserID string) ([]*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT id, app_user_id, name, created_at FROM categories
		WHERE app_user_id = ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query, appUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		err := rows.Scan(
			&category.ID, &category.AppUserID, &category.Name, &category.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// Update updates a category name. The owner column is never touched.
func (r *CategoryRepository) Update(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.db.Exec(`UPDATE categories SET name = ? WHERE id = ?`, category.Name, category.ID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Delete deletes a category owned by the user. Membership rows cascade.
func (r *CategoryRepository) Delete(appUserID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.db.Exec(`DELETE FROM categories WHERE app_user_id = ? AND id = ?`, appUserID, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
