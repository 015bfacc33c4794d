package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/danvitmon/contactpro/pkg/config"
)

func sessionCookie(t *testing.T, data SessionData) *http.Cookie {
	t.Helper()

	raw, err := json.Marshal(data)
	assert.NoError(t, err)

	encoded := base64.URLEncoding.EncodeToString(raw)
	return &http.Cookie{
		Name:  "contactpro_session",
		Value: createSignature(encoded) + "." + encoded,
	}
}

func newSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware())
	router.GET("/whoami", func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			c.JSON(http.StatusOK, gin.H{"user_id": ""})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": session.UserID})
	})
	return router
}

func TestSessionCookieRoundTrip(t *testing.T) {
	config.Load()
	router := newSessionRouter()

	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.AddCookie(sessionCookie(t, SessionData{
		UserID:    "user-1",
		Name:      "Test User",
		Email:     "test@example.com",
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"user-1"`)
}

func TestSessionCookieRejected(t *testing.T) {
	config.Load()
	router := newSessionRouter()

	t.Run("Expired session", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/whoami", nil)
		req.AddCookie(sessionCookie(t, SessionData{
			UserID:    "user-1",
			ExpiresAt: time.Now().Add(-1 * time.Minute),
		}))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Contains(t, w.Body.String(), `"user_id":""`)
	})

	t.Run("Tampered signature", func(t *testing.T) {
		cookie := sessionCookie(t, SessionData{
			UserID:    "user-1",
			ExpiresAt: time.Now().Add(1 * time.Hour),
		})
		cookie.Value = "bogus-signature." + cookie.Value[len(cookie.Value)-10:]

		req, _ := http.NewRequest("GET", "/whoami", nil)
		req.AddCookie(cookie)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Contains(t, w.Body.String(), `"user_id":""`)
	})

	t.Run("No cookie", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/whoami", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Contains(t, w.Body.String(), `"user_id":""`)
	})
}

func TestAuthRequired(t *testing.T) {
	config.Load()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware())

	protected := router.Group("/contacts")
	protected.Use(AuthRequired())
	protected.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	t.Run("Blocks anonymous requests", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/contacts/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Passes authenticated requests", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/contacts/", nil)
		req.AddCookie(sessionCookie(t, SessionData{
			UserID:    "user-1",
			ExpiresAt: time.Now().Add(1 * time.Hour),
		}))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
