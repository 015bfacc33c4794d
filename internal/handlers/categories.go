package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/danvitmon/contactpro/internal/middleware"
	"github.com/danvitmon/contactpro/internal/models"
	"github.com/danvitmon/contactpro/internal/services"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
	emailService    *services.EmailService
}

func NewCategoryHandler(categoryService *services.CategoryService, emailService *services.EmailService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		emailService:    emailService,
	}
}

// ListCategories returns the owner's categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	session := middleware.GetSession(c)

	categories, err := h.categoryService.ListCategories(session.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory creates a category for the session owner
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	session := middleware.GetSession(c)

	category := models.NewCategory(session.UserID, strings.TrimSpace(c.PostForm("name")))

	if err := h.categoryService.CreateCategory(category); err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    validationErr.Message,
				"field":    validationErr.Field,
				"category": category,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// UpdateCategory renames one of the owner's categories
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	session := middleware.GetSession(c)
	id := c.Param("id")

	category := &models.Category{
		ID:   c.PostForm("id"),
		Name: strings.TrimSpace(c.PostForm("name")),
	}

	if err := h.categoryService.UpdateCategory(session.UserID, id, category); err != nil {
		var validationErr *models.ValidationError
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Category does not exist"})
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    validationErr.Message,
				"field":    validationErr.Field,
				"category": category,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory removes one of the owner's categories and its memberships
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	session := middleware.GetSession(c)

	if err := h.categoryService.DeleteCategory(session.UserID, c.Param("id")); err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category does not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// PrepareGroupEmail builds the compose draft for a category: recipients
// aggregated from its members and a default subject
func (h *CategoryHandler) PrepareGroupEmail(c *gin.Context) {
	session := middleware.GetSession(c)

	emailData, err := h.emailService.BuildEmailRequest(session.UserID, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category does not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"email_data": emailData})
}

// SendGroupEmail dispatches the composed message. A failed send echoes the
// draft back so the caller can redisplay the compose form without data loss.
func (h *CategoryHandler) SendGroupEmail(c *gin.Context) {
	emailData := &models.EmailData{
		CategoryID:   c.Param("id"),
		GroupName:    c.PostForm("group_name"),
		EmailAddress: c.PostForm("email_address"),
		EmailSubject: c.PostForm("email_subject"),
		EmailBody:    c.PostForm("email_body"),
	}

	if err := h.emailService.SendGroupEmail(emailData); err != nil {
		var validationErr *models.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      validationErr.Message,
				"field":      validationErr.Field,
				"email_data": emailData,
			})
		case errors.Is(err, services.ErrSendFailed):
			c.JSON(http.StatusBadGateway, gin.H{
				"message":    "Error: Email failed to send",
				"email_data": emailData,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":      "Failed to send email",
				"email_data": emailData,
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent"})
}
