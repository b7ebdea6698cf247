// Middleware: X-Request-ID header (UUID); generated when the client omits it.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marketbytes-devops/alameinmovers/internal/response"
)

const HeaderXRequestID = "X-Request-ID"

// RequestIDMiddleware accepts a client-supplied X-Request-ID (must be a UUID) or
// generates one, stores it in context and echoes it in the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderXRequestID)
		if rid != "" {
			id, err := uuid.Parse(rid)
			if err != nil {
				response.AbortWithError(c, 400, "invalid X-Request-ID: must be UUID")
				return
			}
			rid = id.String()
		} else {
			rid = uuid.NewString()
		}
		c.Set(string(ContextKeyRequestID), rid)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), ContextKeyRequestID, rid))
		c.Header(HeaderXRequestID, rid)
		c.Next()
	}
}
