package middleware

import (
	"github.com/anitha-dev/gigconnect-api/config"
	"github.com/anitha-dev/gigconnect-api/services"
	"github.com/gin-gonic/gin"
)

// TouchPresence opportunistically records activity for the user named by a
// userId query parameter. Handlers that learn the user id from a request
// body touch presence themselves; either way the touch never blocks or
// fails the request.
func TouchPresence() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.Query("userId"); userID != "" {
			services.NewPresence(config.GetDB()).Touch(userID)
		}
		c.Next()
	}
}
