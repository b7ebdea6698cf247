// Middleware: required Authorization: Bearer <token> header and token validation.
package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/marketbytes-devops/alameinmovers/internal/response"
)

const (
	HeaderAuthorization = "Authorization"
	BearerPrefix        = "Bearer "
)

// TokenValidator validates a Bearer token (JWT) and returns the subject identity.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (userID, role string, err error)
}

// AuthMiddleware requires Authorization: Bearer <token> and validates it; 403/401 otherwise.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderAuthorization)
		if raw == "" {
			response.AbortWithError(c, 403, "missing Authorization header")
			return
		}
		if !strings.HasPrefix(raw, BearerPrefix) {
			response.AbortWithError(c, 403, "invalid Authorization; expected Bearer <token>")
			return
		}
		token := strings.TrimPrefix(raw, BearerPrefix)
		if token == "" {
			response.AbortWithError(c, 403, "missing Bearer token")
			return
		}
		userID, role, err := validator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			response.AbortWithError(c, 401, "invalid or expired token")
			return
		}
		c.Set(string(ContextKeyUserID), userID)
		c.Set(string(ContextKeyUserRole), role)
		ctx := context.WithValue(c.Request.Context(), ContextKeyUserID, userID)
		ctx = context.WithValue(ctx, ContextKeyUserRole, role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
