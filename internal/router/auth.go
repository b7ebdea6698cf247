package router

import (
	"github.com/gin-gonic/gin"

	"github.com/marketbytes-devops/alameinmovers/internal/handlers"
)

// RegisterAuth mounts login, token lifecycle and the password-reset flow
// (forgot-password → verify-otp → reset-password) on the given group.
func RegisterAuth(g *gin.RouterGroup, deps Dependencies) {
	g.POST("/login", handlers.Login(deps.AuthService))
	g.POST("/logout", handlers.Logout(deps.AuthService))
	g.POST("/refresh", handlers.Refresh(deps.AuthService))
	g.POST("/forgot-password", handlers.RequestOTP(deps.AuthService))
	g.POST("/verify-otp", handlers.VerifyOTP(deps.AuthService))
	g.POST("/reset-password", handlers.ResetPassword(deps.AuthService))
}
