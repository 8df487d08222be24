package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/launchpad/internal/app/controllers"
	"github.com/yigit/launchpad/internal/middleware"
)

// Controllers groups the handlers mounted under /api/v1
type Controllers struct {
	User         *controllers.UserController
	Startup      *controllers.StartupController
	Job          *controllers.JobController
	Endorsement  *controllers.EndorsementController
	Notification *controllers.NotificationController
	Post         *controllers.PostController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	authMiddleware *middleware.AuthMiddleware,
	capabilityMiddleware *middleware.CapabilityMiddleware,
) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	// Everything below requires a bearer token; the caller's user row is created on first use.
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	users := authenticated.Group("/users")
	{
		users.GET("/me", ctrl.User.GetMyProfile)
		users.PUT("/me", ctrl.User.UpdateMyProfile)
		users.PUT("/me/admin-fields", ctrl.User.UpdateAdminFields)
		users.PUT("/me/role", ctrl.User.ChangeRole)
		users.GET("/:id", ctrl.User.GetProfile)
		users.GET("/:id/endorsements", ctrl.Endorsement.ListReceived)
	}

	startups := authenticated.Group("/startups")
	{
		startups.POST("", ctrl.Startup.Submit)
		startups.GET("/me", ctrl.Startup.GetMine)
		startups.DELETE("/me", ctrl.Startup.Withdraw)
	}

	authenticated.POST("/endorsements", ctrl.Endorsement.Endorse)

	notifications := authenticated.Group("/notifications")
	{
		notifications.GET("", ctrl.Notification.ListMine)
		notifications.GET("/unread-count", ctrl.Notification.UnreadCount)
		notifications.PUT("/read-all", ctrl.Notification.MarkAllRead)
		notifications.PUT("/:id/read", ctrl.Notification.MarkRead)
	}

	posts := authenticated.Group("/posts")
	{
		posts.POST("", ctrl.Post.CreatePost)
		posts.POST("/:id/join", ctrl.Post.Join)
	}

	// Hiring and review routes need the caller's capability
	gated := authenticated.Group("")
	gated.Use(capabilityMiddleware.ResolveCapability())

	jobs := gated.Group("/jobs")
	{
		jobs.GET("", ctrl.Job.ListJobs)
		jobs.POST("", ctrl.Job.CreateJob)
		jobs.GET("/:id", ctrl.Job.GetJob)
		jobs.PUT("/:id", ctrl.Job.UpdateJob)
		jobs.DELETE("/:id", ctrl.Job.DeleteJob)
		jobs.POST("/:id/apply", ctrl.Job.Apply)
		jobs.GET("/:id/applications", ctrl.Job.ListApplications)
	}

	applications := gated.Group("/applications")
	{
		applications.GET("/me", ctrl.Job.ListMyApplications)
		applications.PUT("/:id/status", ctrl.Job.UpdateApplicationStatus)
	}

	admin := gated.Group("/admin")
	admin.Use(capabilityMiddleware.AdminOnly())
	{
		admin.GET("/startups", ctrl.Startup.ListForReview)
		admin.GET("/startups/:id", ctrl.Startup.Get)
		admin.POST("/startups/:id/approve", ctrl.Startup.Approve)
		admin.POST("/startups/:id/reject", ctrl.Startup.Reject)
	}
}
