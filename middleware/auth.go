package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haneulab/thumbsmith-api/utils"
)

// AuthMiddleware rejects requests without a bearer credential and stashes the
// raw token in the request context. Verification against the identity service
// happens inside the handlers, after input validation, so a bad prompt is
// reported before a bad token is.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.ExtractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing auth token."})
			c.Abort()
			return
		}

		c.Set("access_token", token)
		c.Next()
	}
}
