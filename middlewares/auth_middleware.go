package middlewares

import (
	"net/http"
	"strings"

	"github.com/fredneedsausername/FreDiet/services"
	"github.com/fredneedsausername/FreDiet/utils"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookieName = "session_id"
	ContextUserIDKey  = "userID"
)

// AuthMiddleware gates protected routes. Browsers authenticate with the
// session cookie; API clients may send a Bearer JWT instead. The resolved
// user ID is set in the request context.
func AuthMiddleware(auth *services.AuthService, jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
			userID, err := auth.Authenticate(c.Request.Context(), token)
			if err != nil {
				abortUnauthenticated(c)
				return
			}
			c.Set(ContextUserIDKey, userID)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			userID, err := utils.ParseJWT(strings.TrimPrefix(authHeader, "Bearer "), jwtSecret)
			if err != nil {
				abortUnauthenticated(c)
				return
			}
			c.Set(ContextUserIDKey, userID)
			c.Next()
			return
		}

		abortUnauthenticated(c)
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "unauthenticated",
		"message": "authentication required",
	})
}
