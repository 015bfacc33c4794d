package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthRequired rejects requests without a valid session. Handlers behind it
// can rely on GetSession returning a non-nil owner identity.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)

		if session == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
