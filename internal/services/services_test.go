package services

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/danvitmon/contactpro/internal/models"
	"github.com/danvitmon/contactpro/internal/repositories"
)

const testSchema = `
CREATE TABLE users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE contacts (
    id TEXT PRIMARY KEY,
    app_user_id TEXT NOT NULL,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    birth_date DATETIME,
    address1 TEXT,
    address2 TEXT,
    city TEXT,
    state TEXT,
    zip_code TEXT,
    email TEXT NOT NULL,
    phone TEXT NOT NULL,
    image_data BLOB,
    image_type TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE categories (
    id TEXT PRIMARY KEY,
    app_user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE contact_categories (
    id TEXT PRIMARY KEY,
    contact_id TEXT NOT NULL,
    category_id TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE,
    FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE,
    UNIQUE (contact_id, category_id)
);
`

// testEnv wires the full service stack over a fresh in-memory database
type testEnv struct {
	contactRepo         *repositories.ContactRepository
	categoryRepo        *repositories.CategoryRepository
	contactCategoryRepo *repositories.ContactCategoryRepository

	addressBook *AddressBookService
	contacts    *ContactService
	categories  *CategoryService
	mailer      *fakeMailer
	email       *EmailService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=ON")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	env := &testEnv{
		contactRepo:         repositories.NewContactRepository(db),
		categoryRepo:        repositories.NewCategoryRepository(db),
		contactCategoryRepo: repositories.NewContactCategoryRepository(db),
		mailer:              &fakeMailer{},
	}
	env.addressBook = NewAddressBookService(env.contactRepo, env.categoryRepo, env.contactCategoryRepo)
	env.contacts = NewContactService(env.contactRepo, env.categoryRepo, env.contactCategoryRepo, env.addressBook)
	env.categories = NewCategoryService(env.categoryRepo, env.contactCategoryRepo)
	env.email = NewEmailService(env.categoryRepo, env.contactRepo, env.contactCategoryRepo, env.mailer)

	return env
}

func (e *testEnv) mustCreateContact(t *testing.T, appUserID, firstName, lastName, email string) *models.Contact {
	t.Helper()
	contact := models.NewContact(appUserID, firstName, lastName, email, "555-0100")
	require.NoError(t, e.contactRepo.Create(contact))
	return contact
}

func (e *testEnv) mustCreateCategory(t *testing.T, appUserID, name string) *models.Category {
	t.Helper()
	category := models.NewCategory(appUserID, name)
	require.NoError(t, e.categoryRepo.Create(category))
	return category
}

// fakeMailer records sends and fails on demand
type fakeMailer struct {
	sent     []sentMail
	failNext error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *fakeMailer) Send(to, subject, htmlBody string) error {
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}
