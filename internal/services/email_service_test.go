package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danvitmon/contactpro/internal/models"
)

func TestBuildEmailRequest(t *testing.T) {
	t.Run("Aggregates member addresses preserving blanks", func(t *testing.T) {
		env := newTestEnv(t)
		family := env.mustCreateCategory(t, "user-1", "Family")

		a := env.mustCreateContact(t, "user-1", "Alice", "Smith", "a@x.com")
		blank := env.mustCreateContact(t, "user-1", "Brett", "Smith", "placeholder@x.com")
		b := env.mustCreateContact(t, "user-1", "Carol", "Smith", "b@x.com")

		// Simulate a member whose address was emptied after creation
		require.NoError(t, blankOutEmail(env, blank.ID))

		require.NoError(t, env.addressBook.AddCategoriesToContact(a.ID, []string{family.ID}))
		require.NoError(t, env.addressBook.AddCategoriesToContact(blank.ID, []string{family.ID}))
		require.NoError(t, env.addressBook.AddCategoriesToContact(b.ID, []string{family.ID}))

		data, err := env.email.BuildEmailRequest("user-1", family.ID)
		assert.NoError(t, err)
		assert.Equal(t, "a@x.com;;b@x.com", data.EmailAddress)
		assert.Equal(t, "Family", data.GroupName)
		assert.Equal(t, family.ID, data.CategoryID)
		assert.Equal(t, "Group Message: Family", data.EmailSubject)
	})

	t.Run("Unknown category never reaches the transport", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.email.BuildEmailRequest("user-1", "no-such-id")
		assert.ErrorIs(t, err, ErrCategoryNotFound)
		assert.Empty(t, env.mailer.sent)
	})

	t.Run("Another owner's category is not found", func(t *testing.T) {
		env := newTestEnv(t)
		theirs := env.mustCreateCategory(t, "user-2", "Their Group")

		_, err := env.email.BuildEmailRequest("user-1", theirs.ID)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
		assert.Empty(t, env.mailer.sent)
	})

	t.Run("Empty category produces an empty recipient list", func(t *testing.T) {
		env := newTestEnv(t)
		family := env.mustCreateCategory(t, "user-1", "Family")

		data, err := env.email.BuildEmailRequest("user-1", family.ID)
		assert.NoError(t, err)
		assert.Equal(t, "", data.EmailAddress)
	})
}

func TestSendGroupEmail(t *testing.T) {
	t.Run("Delivers through the transport once", func(t *testing.T) {
		env := newTestEnv(t)

		data := &models.EmailData{
			CategoryID:   "cat-1",
			GroupName:    "Family",
			EmailAddress: "a@x.com;b@x.com",
			EmailSubject: "Group Message: Family",
			EmailBody:    "<p>Hello</p>",
		}

		assert.NoError(t, env.email.SendGroupEmail(data))
		require.Len(t, env.mailer.sent, 1)
		assert.Equal(t, "a@x.com;b@x.com", env.mailer.sent[0].to)
		assert.Equal(t, "Group Message: Family", env.mailer.sent[0].subject)
		assert.Equal(t, "<p>Hello</p>", env.mailer.sent[0].body)
	})

	t.Run("Transport failure preserves the draft", func(t *testing.T) {
		env := newTestEnv(t)
		env.mailer.failNext = errors.New("connection refused")

		data := &models.EmailData{
			CategoryID:   "cat-1",
			GroupName:    "Family",
			EmailAddress: "a@x.com",
			EmailSubject: "Group Message: Family",
			EmailBody:    "<p>Draft the user typed</p>",
		}

		err := env.email.SendGroupEmail(data)
		assert.ErrorIs(t, err, ErrSendFailed)

		// The caller can rebuild the compose form from the same value
		assert.Equal(t, "cat-1", data.CategoryID)
		assert.Equal(t, "Family", data.GroupName)
		assert.Equal(t, "<p>Draft the user typed</p>", data.EmailBody)
	})

	t.Run("Validation failures never reach the transport", func(t *testing.T) {
		env := newTestEnv(t)

		data := &models.EmailData{EmailSubject: "No recipients"}
		err := env.email.SendGroupEmail(data)
		assert.Equal(t, models.ErrEmailRecipientsRequired, err)
		assert.Empty(t, env.mailer.sent)
	})
}

// blankOutEmail clears a contact's address directly in the store
func blankOutEmail(env *testEnv, contactID string) error {
	contact, err := env.contactRepo.GetByID(contactID)
	if err != nil {
		return err
	}
	contact.Email = ""
	return env.contactRepo.Update(contact)
}
