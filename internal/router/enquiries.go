package router

import (
	"github.com/gin-gonic/gin"

	"github.com/marketbytes-devops/alameinmovers/internal/handlers"
	"github.com/marketbytes-devops/alameinmovers/internal/middleware"
)

// RegisterEnquiries mounts the public contact-form intake and the
// JWT-protected dashboard management routes.
func RegisterEnquiries(v1 *gin.RouterGroup, deps Dependencies) {
	v1.POST("/enquiries", handlers.CreateEnquiry(deps.EnquiryStore, deps.Captcha, deps.Mailer))

	eq := v1.Group("/enquiries")
	eq.Use(middleware.AuthMiddleware(deps.AuthValidator))
	{
		eq.GET("", handlers.ListEnquiries(deps.EnquiryStore))
		eq.DELETE("/:id", handlers.DeleteEnquiry(deps.EnquiryStore))
		eq.DELETE("", handlers.DeleteAllEnquiries(deps.EnquiryStore))
	}
}
