package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/danvitmon/contactpro/internal/middleware"
	"github.com/danvitmon/contactpro/internal/services"
)

type AuthHandler struct {
	userService *services.UserService
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Login establishes a session for the given identity. Verifying that
// identity is the job of an upstream provider; this endpoint only binds it
// to a session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	name := strings.TrimSpace(c.PostForm("name"))

	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}
	if name == "" {
		name = email
	}

	user, err := h.userService.GetOrCreateUser(name, email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	if err := middleware.SetSession(c, user.ID, user.Name, user.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSession(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
