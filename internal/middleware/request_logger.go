// Middleware: per-request API log — method, path, response code, duration.
package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs every request after handling: method, path, status, duration.
// Console example: [API] POST /api/v1/jobs -> 201 (12ms)
func RequestLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		if path == "" {
			path = "/"
		}
		c.Next()
		status := c.Writer.Status()
		log.Printf("[API] %s %s -> %d (%v)", method, path, status, time.Since(start).Round(time.Millisecond))
	}
}
