package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/danvitmon/contactpro/pkg/config"
)

type SessionData struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionMiddleware handles session management using cookies
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionData := getSessionFromCookie(c)
		c.Set("session", sessionData)
		c.Next()
	}
}

// getSessionFromCookie extracts and validates session data from cookie
func getSessionFromCookie(c *gin.Context) *SessionData {
	cookie, err := c.Cookie("contactpro_session")
	if err != nil {
		return nil
	}

	// Cookie value is signature.data
	parts := strings.Split(cookie, ".")
	if len(parts) != 2 {
		return nil
	}

	signature, data := parts[0], parts[1]

	if !verifySignature(data, signature) {
		return nil
	}

	decodedData, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		return nil
	}

	var sessionData SessionData
	if err := json.Unmarshal(decodedData, &sessionData); err != nil {
		return nil
	}

	if time.Now().After(sessionData.ExpiresAt) {
		return nil
	}

	return &sessionData
}

// SetSession creates a new session cookie
func SetSession(c *gin.Context, userID, name, email string) error {
	sessionData := SessionData{
		UserID:    userID,
		Name:      name,
		Email:     email,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	data, err := json.Marshal(sessionData)
	if err != nil {
		return err
	}

	encodedData := base64.URLEncoding.EncodeToString(data)
	signature := createSignature(encodedData)

	c.SetCookie("contactpro_session", signature+"."+encodedData, 86400, "/", "", false, true)

	return nil
}

// ClearSession removes the session cookie
func ClearSession(c *gin.Context) {
	c.SetCookie("contactpro_session", "", -1, "/", "", false, true)
}

func createSignature(data string) string {
	h := hmac.New(sha256.New, []byte(config.AppConfig.Session.Secret))
	h.Write([]byte(data))
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}

func verifySignature(data, signature string) bool {
	expectedSignature := createSignature(data)
	return hmac.Equal([]byte(signature), []byte(expectedSignature))
}

// GetSession retrieves session data from context
func GetSession(c *gin.Context) *SessionData {
	session, exists := c.Get("session")
	if !exists {
		return nil
	}

	if sessionData, ok := session.(*SessionData); ok {
		return sessionData
	}

	return nil
}
