package router

import (
	"github.com/gin-gonic/gin"

	"github.com/marketbytes-devops/alameinmovers/internal/handlers"
	"github.com/marketbytes-devops/alameinmovers/internal/middleware"
)

// RegisterJobs mounts the dashboard job and status-update routes (JWT) and the
// public tracking lookup (client token only).
func RegisterJobs(v1 *gin.RouterGroup, deps Dependencies) {
	// Customers look up shipments with nothing but the code from their email.
	v1.GET("/track/:code", handlers.TrackShipment(deps.JobStore))

	jobs := v1.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware(deps.AuthValidator))
	{
		jobs.POST("", handlers.CreateJob(deps.JobStore, deps.Mailer))
		jobs.GET("", handlers.ListJobs(deps.JobStore))
		jobs.GET("/:id", handlers.GetJob(deps.JobStore))
		jobs.PATCH("/:id", handlers.UpdateJob(deps.JobStore))
		jobs.DELETE("/:id", handlers.DeleteJob(deps.JobStore))
	}

	status := v1.Group("/status-updates")
	status.Use(middleware.AuthMiddleware(deps.AuthValidator))
	{
		status.POST("", handlers.CreateStatusUpdate(deps.JobStore))
		status.GET("", handlers.ListStatusUpdates(deps.JobStore))
		status.DELETE("/:id", handlers.DeleteStatusUpdate(deps.JobStore))
	}
}
