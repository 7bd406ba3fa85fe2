package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/linkmeet/linkmeet/internal/auth"
	"github.com/linkmeet/linkmeet/internal/domain"
)

// ClientTokenMiddleware gives every visitor a stable gateway identity
// cookie, authenticated or not. The websocket endpoint logs it next to
// the per-socket connection id.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = uuid.NewString()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

// Protect requires a valid bearer token and puts the user id on the
// context.
func Protect(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "UNAUTHORIZED"})
			return
		}
		userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "UNAUTHORIZED"})
			return
		}
		c.Set("user_id", string(userID))
		c.Next()
	}
}

func callerID(c *gin.Context) domain.UserID {
	return domain.UserID(c.GetString("user_id"))
}
