// Context keys and getters for request_id, client type and authenticated user.
package middleware

import "context"

type contextKey string

const (
	ContextKeyRequestID  contextKey = "request_id"
	ContextKeyClientType contextKey = "client_type"
	ContextKeyUserID     contextKey = "user_id" // set by AuthMiddleware
	ContextKeyUserRole   contextKey = "user_role"
)

// UserIDFrom returns the authenticated user ID from context (after AuthMiddleware).
func UserIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyUserID).(string); ok {
		return v
	}
	return ""
}

// UserRoleFrom returns the authenticated user's role from context.
func UserRoleFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyUserRole).(string); ok {
		return v
	}
	return ""
}

// RequestIDFrom returns the X-Request-ID from context.
func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return v
	}
	return ""
}

// ClientTypeFrom returns the client type (website/dashboard) from context.
func ClientTypeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyClientType).(string); ok {
		return v
	}
	return ""
}
