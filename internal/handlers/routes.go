package handlers

import (
	"github.com/gin-gonic/gin"

	"org-site-backend/internal/auth"
)

// SetupRoutes registers all API routes. Everything under /api/admin requires
// a verified admin identity; the rest is public.
func (h *Handlers) SetupRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)

	api := router.Group("/api")
	{
		newsletter := api.Group("/newsletter")
		{
			newsletter.POST("/subscribe", h.Subscribe)
			newsletter.POST("/unsubscribe", h.Unsubscribe)
			newsletter.GET("/unsubscribe", h.UnsubscribeLink)
			newsletter.GET("/status", h.SubscriptionStatus)
			newsletter.POST("/requests", h.CreateTopicRequest)
		}

		api.GET("/blogs", h.ListBlogs)
		api.GET("/blogs/:slug", h.GetBlog)

		api.GET("/projects", h.ListProjects)
		api.GET("/projects/:slug", h.GetProject)

		api.GET("/activities", h.ListActivities)
		api.GET("/activities/:id", h.GetActivity)
	}

	admin := api.Group("/admin", auth.RequireAdmin())
	{
		admin.POST("/newsletters", h.CreateNewsletter)
		admin.GET("/newsletters", h.ListNewsletters)
		admin.GET("/newsletters/:id", h.GetNewsletter)
		admin.POST("/newsletters/:id/send", h.SendNewsletter)
		admin.POST("/newsletters/:id/schedule", h.ScheduleNewsletter)
		admin.DELETE("/newsletters/:id/schedule", h.UnscheduleNewsletter)

		admin.GET("/subscribers", h.ListSubscribers)

		admin.GET("/requests", h.ListTopicRequests)
		admin.PATCH("/requests/:id", h.ReviewTopicRequest)

		admin.POST("/blogs", h.CreateBlog)
		admin.PUT("/blogs/:id", h.UpdateBlog)
		admin.POST("/blogs/:id/publish", h.PublishBlog)
		admin.POST("/blogs/:id/archive", h.ArchiveBlog)
		admin.DELETE("/blogs/:id", h.DeleteBlog)

		admin.POST("/projects", h.CreateProject)
		admin.PUT("/projects/:id", h.UpdateProject)
		admin.POST("/projects/:id/publish", h.PublishProject)
		admin.POST("/projects/:id/archive", h.ArchiveProject)
		admin.DELETE("/projects/:id", h.DeleteProject)

		admin.POST("/activities", h.CreateActivity)
		admin.PUT("/activities/:id", h.UpdateActivity)
		admin.DELETE("/activities/:id", h.DeleteActivity)

		admin.POST("/dispatch/run", h.RunDispatch)
	}
}
