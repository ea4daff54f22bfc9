package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haneulab/thumbsmith-api/infra"
)

// RecoveryMiddleware converts panics into the fixed 500 error body instead of
// gin's empty response.
func RecoveryMiddleware(logger *infra.LoggerClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorWithContextf(c.Request.Context(), nil, "[Recovery] Panic handling %s %s: %v", c.Request.Method, c.Request.URL.Path, r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":  "Unexpected server error.",
					"detail": fmt.Sprintf("%v", r),
				})
			}
		}()
		c.Next()
	}
}
