package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCategoriesToContact(t *testing.T) {
	t.Run("Attaches existing categories", func(t *testing.T) {
		env := newTestEnv(t)
		contact := env.mustCreateContact(t, "user-1", "John", "Smith", "john@example.com")
		family := env.mustCreateCategory(t, "user-1", "Family")
		friends := env.mustCreateCategory(t, "user-1", "Friends")

		err := env.addressBook.AddCategoriesToContact(contact.ID, []string{family.ID, friends.ID})
		assert.NoError(t, err)

		categories, err := env.addressBook.GetCategoriesForContact(contact.ID)
		assert.NoError(t, err)
		assert.Len(t, categories, 2)
	})

	t.Run("Missing ids are skipped, not errors", func(t *testing.T) {
		env := newTestEnv(t)
		contact := env.mustCreateContact(t, "user-1", "John", "Smith", "john@example.com")
		family := env.mustCreateCategory(t, "user-1", "Family")

		err := env.addressBook.AddCategoriesToContact(contact.ID, []string{"no-such-id", family.ID})
		assert.NoError(t, err)

		categories, err := env.addressBook.GetCategoriesForContact(contact.ID)
		assert.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, family.ID, categories[0].ID)
	})

	t.Run("Missing contact is a silent no-op", func(t *testing.T) {
		env := newTestEnv(t)
		family := env.mustCreateCategory(t, "user-1", "Family")

		err := env.addressBook.AddCategoriesToContact("no-such-contact", []string{family.ID})
		assert.NoError(t, err)
	})

	t.Run("Cross-owner pairs are never persisted", func(t *testing.T) {
		env := newTestEnv(t)
		contact := env.mustCreateContact(t, "user-1", "John", "Smith", "john@example.com")
		otherOwners := env.mustCreateCategory(t, "user-2", "Their Group")

		err := env.addressBook.AddCategoriesToContact(contact.ID, []string{otherOwners.ID})
		assert.NoError(t, err)

		categories, err := env.addressBook.GetCategoriesForContact(contact.ID)
		assert.NoError(t, err)
		assert.Empty(t, categories)
	})

	t.Run("Duplicate attach is idempotent", func(t *testing.T) {
		env := newTestEnv(t)
		contact := env.mustCreateContact(t, "user-1", "John", "Smith", "john@example.com")
		family := env.mustCreateCategory(t, "user-1", "Family")

		require.NoError(t, env.addressBook.AddCategoriesToContact(contact.ID, []string{family.ID}))
		require.NoError(t, env.addressBook.AddCategoriesToContact(contact.ID, []string{family.ID}))

		categories, err := env.addressBook.GetCategoriesForContact(contact.ID)
		assert.NoError(t, err)
		assert.Len(t, categories, 1)
	})
}

func TestRemoveCategoriesFromContact(t *testing.T) {
	t.Run("Clears all memberships", func(t *testing.T) {
		env := newTestEnv(t)
		contact := env.mustCreateContact(t, "user-1", "John", "Smith", "john@example.com")
		family := env.mustCreateCategory(t, "user-1", "Family")
		require.NoError(t, env.addressBook.AddCategoriesToContact(contact.ID, []string{family.ID}))

		assert.NoError(t, env.addressBook.RemoveCategoriesFromContact(contact.ID))

		contacts, err := env.contacts.ListContactsByCategory("user-1", family.ID)
		assert.NoError(t, err)
		assert.Empty(t, contacts)
	})

	t.Run("Missing contact is an error, unlike add", func(t *testing.T) {
		env := newTestEnv(t)
		err := env.addressBook.RemoveCategoriesFromContact("no-such-contact")
		assert.ErrorIs(t, err, ErrContactNotFound)
	})
}

func TestReplaceCategories(t *testing.T) {
	env := newTestEnv(t)
	contact := env.mustCreateContact(t, "user-1", "John", "Smith", "john@example.com")
	family := env.mustCreateCategory(t, "user-1", "Family")
	friends := env.mustCreateCategory(t, "user-1", "Friends")
	work := env.mustCreateCategory(t, "user-1", "Work")

	require.NoError(t, env.addressBook.AddCategoriesToContact(contact.ID, []string{family.ID, friends.ID}))

	// Replace the selection; a stale id in the new set is dropped silently
	err := env.addressBook.ReplaceCategories(contact.ID, []string{work.ID, "no-such-id"})
	assert.NoError(t, err)

	categories, err := env.addressBook.GetCategoriesForContact(contact.ID)
	assert.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, work.ID, categories[0].ID)

	t.Run("Missing contact is an error", func(t *testing.T) {
		assert.ErrorIs(t, env.addressBook.ReplaceCategories("no-such-contact", nil), ErrContactNotFound)
	})
}
