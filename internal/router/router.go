// Router: Gin engine assembly with recovery, security headers, CORS, Swagger
// and the /api/v1 group carrying the full middleware chain.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/marketbytes-devops/alameinmovers/internal/auth"
	"github.com/marketbytes-devops/alameinmovers/internal/config"
	"github.com/marketbytes-devops/alameinmovers/internal/docs"
	"github.com/marketbytes-devops/alameinmovers/internal/handlers"
	"github.com/marketbytes-devops/alameinmovers/internal/mailer"
	"github.com/marketbytes-devops/alameinmovers/internal/middleware"
	"github.com/marketbytes-devops/alameinmovers/internal/recaptcha"
)

// Dependencies carries everything the routes need: the stores and service
// collaborators plus the token validator for dashboard routes.
type Dependencies struct {
	Cfg           *config.Config
	Redis         *redis.Client
	AuthValidator middleware.TokenValidator
	AuthService   *auth.Service
	JobStore      handlers.JobStore
	EnquiryStore  handlers.EnquiryStore
	Mailer        *mailer.Mailer
	Captcha       *recaptcha.Client
}

// New builds the Gin engine. Recovery and security headers apply globally,
// /swagger is served from embed without client headers, and /api/v1 carries
// the full chain: request logger, request ID, client token, rate limit.
func New(deps Dependencies) *gin.Engine {
	if deps.Cfg.App.Env == "local" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.SecurityHeadersMiddleware())

	origins := deps.Cfg.App.CORSOrigins
	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.HeaderXClientToken, middleware.HeaderXClientType, middleware.HeaderXRequestID},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	r.Use(cors.New(corsCfg))

	// Swagger straight from embed, no client headers required.
	r.StaticFS("/swagger", docs.SwaggerFS)

	v1 := r.Group("/api/v1")
	{
		v1.Use(middleware.RequestLoggerMiddleware())
		v1.Use(middleware.RequestIDMiddleware())
		v1.Use(middleware.ClientTokenMiddleware(deps.Cfg.Security.WebsiteClientToken, deps.Cfg.Security.DashboardClientToken))
		if deps.Redis != nil && deps.Cfg.Security.RateLimitRPS > 0 {
			v1.Use(middleware.RateLimitMiddleware(deps.Redis, deps.Cfg.Security.RateLimitRPS))
		}

		RegisterSystem(v1)
		RegisterAuth(v1.Group("/auth"), deps)
		RegisterJobs(v1, deps)
		RegisterEnquiries(v1, deps)
	}

	return r
}
