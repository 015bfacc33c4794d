package repositories

import (
	"database/sql"
	"strings"
	"sync"

	"github.com/danvitmon/contactpro/internal/models"
)

type ContactRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

const contactColumns = `id, app_user_id, first_name, last_name, birth_date, address1, address2,
		city, state, zip_code, email, phone, image_data, image_type, created_at`

// Create creates a new contact
func (r *ContactRepository) Create(contact *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		contact.ID, contact.AppUserID, contact.FirstName, contact.LastName,
		contact.BirthDate, contact.Address1, contact.Address2,
		contact.City, contact.State, contact.ZipCode,
		contact.Email, contact.Phone, contact.ImageData, contact.ImageType,
		contact.CreatedAt,
	)

	return err
}

// GetByID retrieves a contact by ID without owner scoping. Reserved for the
// association layer; user-facing reads go through GetForUser.
func (r *ContactRepository) GetByID(id string) (*models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = ?`
	return r.scanContact(r.db.QueryRow(query, id))
}

// GetForUser retrieves a contact by ID, scoped to its owner
func (r *ContactRepository) GetForUser(appUserID, id string) (*models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT ` + contactColumns + ` FROM contacts WHERE app_user_id = ? AND id = ?`
	return r.scanContact(r.db.QueryRow(query, appUserID, id))
}

// ListByUser retrieves all contacts owned by a user
func (r *ContactRepository) ListByUser(appUserID string) ([]*models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT ` + contactColumns + ` FROM contacts
		WHERE app_user_id = ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query, appUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanContacts(rows)
}

// SearchByFirstName retrieves the owner's contacts whose first name contains
// the given text, case-insensitive. An empty term returns all contacts.
func (r *ContactRepository) SearchByFirstName(appUserID, term string) ([]*models.Contact, error) {
	if term == "" {
		return r.ListByUser(appUserID)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT ` + contactColumns + ` FROM contacts
		WHERE app_user_id = ? AND LOWER(first_name) LIKE ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query, appUserID, "%"+strings.ToLower(term)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanContacts(rows)
}

// ListByIDs retrieves contacts matching the given ids, scoped to their owner
func (r *ContactRepository) ListByIDs(appUserID string, ids []string) ([]*models.Contact, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	query := `
		SELECT ` + contactColumns + ` FROM contacts
		WHERE app_user_id = ? AND id IN (` + placeholders + `)
		ORDER BY created_at ASC
	`

	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, appUserID)
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanContacts(rows)
}

// Update updates a contact. The owner column is never touched.
func (r *ContactRepository) Update(contact *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		UPDATE contacts SET
			first_name = ?, last_name = ?, birth_date = ?, address1 = ?, address2 = ?,
			city = ?, state = ?, zip_code = ?, email = ?, phone = ?,
			image_data = ?, image_type = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		contact.FirstName, contact.LastName, contact.BirthDate,
		contact.Address1, contact.Address2, contact.City, contact.State, contact.ZipCode,
		contact.Email, contact.Phone, contact.ImageData, contact.ImageType,
		contact.ID,
	)
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

// Delete deletes a contact owned by the user. Membership rows cascade.
func (r *ContactRepository) Delete(appUserID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.db.Exec(`DELETE FROM contacts WHERE app_user_id = ? AND id = ?`, appUserID, id)
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

func (r *ContactRepository) scanContact(row *sql.Row) (*models.Contact, error) {
	contact := &models.Contact{}
	var birthDate sql.NullTime

	err := row.Scan(
		&contact.ID, &contact.AppUserID, &contact.FirstName, &contact.LastName,
		&birthDate, &contact.Address1, &contact.Address2,
		&contact.City, &contact.State, &contact.ZipCode,
		&contact.Email, &contact.Phone, &contact.ImageData, &contact.ImageType,
		&contact.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if birthDate.Valid {
		contact.BirthDate = &birthDate.Time
	}

	return contact, nil
}

func (r *ContactRepository) scanContacts(rows *sql.Rows) ([]*models.Contact, error) {
	var contacts []*models.Contact
	for rows.Next() {
		contact := &models.Contact{}
		var birthDate sql.NullTime

		err := rows.Scan(
			&contact.ID, &contact.AppUserID, &contact.FirstName, &contact.LastName,
			&birthDate, &contact.Address1, &contact.Address2,
			&contact.City, &contact.State, &contact.ZipCode,
			&contact.Email, &contact.Phone, &contact.ImageData, &contact.ImageType,
			&contact.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if birthDate.Valid {
			contact.BirthDate = &birthDate.Time
		}

		contacts = append(contacts, contact)
	}

	return contacts, rows.Err()
}
