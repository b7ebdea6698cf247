// Middleware: X-Client-Token check — separate tokens for the public website and
// the admin dashboard so only trusted frontends reach the API.
package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/marketbytes-devops/alameinmovers/internal/response"
)

const (
	HeaderXClientToken = "X-Client-Token"
	HeaderXClientType  = "X-Client-Type"

	ClientTypeWebsite   = "website"
	ClientTypeDashboard = "dashboard"
)

// ClientTokenMiddleware checks X-Client-Token against the token for the declared
// X-Client-Type (website or dashboard); 403 otherwise.
func ClientTokenMiddleware(websiteToken, dashboardToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientType := c.GetHeader(HeaderXClientType)
		raw := c.GetHeader(HeaderXClientToken)
		if raw == "" {
			response.AbortWithError(c, 403, "missing X-Client-Token header")
			return
		}
		var expected string
		switch clientType {
		case ClientTypeWebsite:
			expected = websiteToken
		case ClientTypeDashboard:
			expected = dashboardToken
		default:
			response.AbortWithError(c, 403, "invalid or missing X-Client-Type")
			return
		}
		if subtle.ConstantTimeCompare([]byte(raw), []byte(expected)) != 1 {
			response.AbortWithError(c, 403, "invalid X-Client-Token")
			return
		}
		c.Set(string(ContextKeyClientType), clientType)
		c.Next()
	}
}
