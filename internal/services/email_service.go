package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/danvitmon/contactpro/internal/models"
	"github.com/danvitmon/contactpro/internal/repositories"
	"github.com/danvitmon/contactpro/pkg/logger"
)

// Mailer is the outbound transport contract: one call, one outcome, no
// per-recipient status. Recipients arrive joined with ";".
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// EmailService implements the group messaging workflow: aggregate a
// category's member addresses into a draft, then dispatch it once.
type EmailService struct {
	categoryRepo        *repositories.CategoryRepository
	contactRepo         *repositories.ContactRepository
	contactCategoryRepo *repositories.ContactCategoryRepository
	mailer              Mailer
}

func NewEmailService(
	categoryRepo *repositories.CategoryRepository,
	contactRepo *repositories.ContactRepository,
	contactCategoryRepo *repositories.ContactCategoryRepository,
	mailer Mailer,
) *EmailService {
	return &EmailService{
		categoryRepo:        categoryRepo,
		contactRepo:         contactRepo,
		contactCategoryRepo: contactCategoryRepo,
		mailer:              mailer,
	}
}

// BuildEmailRequest prepares a group email draft for an owner's category.
// Member emails are joined with ";" as-is; a member with no address still
// contributes an empty entry.
func (s *EmailService) BuildEmailRequest(appUserID, categoryID string) (*models.EmailData, error) {
	category, err := s.categoryRepo.GetForUser(appUserID, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error fetching category: %w", err)
	}

	memberships, err := s.contactCategoryRepo.GetByCategoryID(categoryID)
	if err != nil {
		return nil, fmt.Errorf("error fetching memberships: %w", err)
	}

	emails := make([]string, 0, len(memberships))
	for _, membership := range memberships {
		contact, err := s.contactRepo.GetByID(membership.ContactID)
		if err != nil {
			// Skip contacts that can't be found
			continue
		}
		emails = append(emails, contact.Email)
	}

	return &models.EmailData{
		CategoryID:   category.ID,
		GroupName:    category.Name,
		EmailAddress: strings.Join(emails, ";"),
		EmailSubject: fmt.Sprintf("Group Message: %s", category.Name),
	}, nil
}

// SendGroupEmail dispatches the draft through the mail transport. Any
// transport failure is reported as ErrSendFailed; the draft itself is left
// untouched so the caller can redisplay it.
func (s *EmailService) SendGroupEmail(data *models.EmailData) error {
	if err := data.Validate(); err != nil {
		return err
	}

	if err := s.mailer.Send(data.EmailAddress, data.EmailSubject, data.EmailBody); err != nil {
		logger.WithError(err).Errorf("group email to category %s failed", data.CategoryID)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	logger.Infof("group email sent to category %s", data.CategoryID)
	return nil
}
