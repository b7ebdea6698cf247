// Middleware: panic recovery, 500 without leaking the stack to the client.
package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marketbytes-devops/alameinmovers/internal/response"
)

// RecoveryMiddleware intercepts panics, logs them and returns 500 without detail to the client.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[PANIC] path=%s err=%v", c.Request.URL.Path, err)
				response.AbortWithError(c, http.StatusInternalServerError, "internal server error")
			}
		}()
		c.Next()
	}
}
