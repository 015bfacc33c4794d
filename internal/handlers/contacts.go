package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/danvitmon/contactpro/internal/middleware"
	"github.com/danvitmon/contactpro/internal/models"
	"github.com/danvitmon/contactpro/internal/services"
)

type ContactHandler struct {
	contactService *services.ContactService
	exportService  *services.ExportService
}

func NewContactHandler(contactService *services.ContactService, exportService *services.ExportService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		exportService:  exportService,
	}
}

// ListContacts returns the owner's contacts, optionally filtered by
// category membership
func (h *ContactHandler) ListContacts(c *gin.Context) {
	session := middleware.GetSession(c)

	var (
		contacts []*models.Contact
		err      error
	)

	if categoryID := c.Query("category_id"); categoryID != "" {
		contacts, err = h.contactService.ListContactsByCategory(session.UserID, categoryID)
	} else {
		contacts, err = h.contactService.ListContacts(session.UserID)
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contacts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

// SearchContacts filters the owner's contacts by first name. An empty query
// returns the full list.
func (h *ContactHandler) SearchContacts(c *gin.Context) {
	session := middleware.GetSession(c)

	contacts, err := h.contactService.SearchContacts(session.UserID, c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search contacts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

// GetContact returns one of the owner's contacts with its memberships
func (h *ContactHandler) GetContact(c *gin.Context) {
	session := middleware.GetSession(c)

	contact, err := h.contactService.GetContact(session.UserID, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact does not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contact"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": contact})
}

// CreateContact creates a contact for the session owner and attaches the
// selected categories. Validation failures echo the submitted values back.
func (h *ContactHandler) CreateContact(c *gin.Context) {
	session := middleware.GetSession(c)

	contact := models.NewContact(
		session.UserID,
		strings.TrimSpace(c.PostForm("first_name")),
		strings.TrimSpace(c.PostForm("last_name")),
		strings.TrimSpace(c.PostForm("email")),
		strings.TrimSpace(c.PostForm("phone")),
	)
	h.bindOptionalFields(c, contact)

	selected := c.PostFormArray("categories")

	if err := h.contactService.CreateContact(contact, selected); err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    validationErr.Message,
				"field":    validationErr.Field,
				"contact":  contact,
				"selected": selected,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contact"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"contact": contact})
}

// UpdateContact updates one of the owner's contacts and replaces its
// category selection
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	session := middleware.GetSession(c)
	id := c.Param("id")

	contact := &models.Contact{
		ID:        c.PostForm("id"),
		FirstName: strings.TrimSpace(c.PostForm("first_name")),
		LastName:  strings.TrimSpace(c.PostForm("last_name")),
		Email:     strings.TrimSpace(c.PostForm("email")),
		Phone:     strings.TrimSpace(c.PostForm("phone")),
	}
	h.bindOptionalFields(c, contact)

	selected := c.PostFormArray("categories")

	if err := h.contactService.UpdateContact(session.UserID, id, contact, selected); err != nil {
		var validationErr *models.ValidationError
		switch {
		case errors.Is(err, services.ErrContactNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact does not exist"})
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    validationErr.Message,
				"field":    validationErr.Field,
				"contact":  contact,
				"selected": selected,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": contact})
}

// DeleteContact removes one of the owner's contacts
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	session := middleware.GetSession(c)

	if err := h.contactService.DeleteContact(session.UserID, c.Param("id")); err != nil {
		if errors.Is(err, services.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact does not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted"})
}

// ExportContacts streams the owner's address book as an xlsx workbook
func (h *ContactHandler) ExportContacts(c *gin.Context) {
	session := middleware.GetSession(c)

	data, err := h.exportService.ExportContacts(session.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export contacts"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="contacts.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *ContactHandler) bindOptionalFields(c *gin.Context, contact *models.Contact) {
	contact.Address1 = strings.TrimSpace(c.PostForm("address1"))
	contact.Address2 = strings.TrimSpace(c.PostForm("address2"))
	contact.City = strings.TrimSpace(c.PostForm("city"))
	contact.State = strings.TrimSpace(c.PostForm("state"))
	contact.ZipCode = strings.TrimSpace(c.PostForm("zip_code"))

	if birthDate := c.PostForm("birth_date"); birthDate != "" {
		if parsed, err := time.Parse("2006-01-02", birthDate); err == nil {
			parsed = parsed.UTC()
			contact.BirthDate = &parsed
		}
	}

	// Optional image upload, stored inline as bytes + content type
	if file, err := c.FormFile("image"); err == nil {
		opened, err := file.Open()
		if err != nil {
			return
		}
		defer opened.Close()

		data, err := io.ReadAll(opened)
		if err != nil {
			return
		}

		contact.ImageData = data
		contact.ImageType = file.Header.Get("Content-Type")
	}
}
