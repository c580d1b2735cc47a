// Package router sets up all HTTP routes for the API.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/exam-prep-api/internal/handlers"
	"github.com/Shimizu-Technology/exam-prep-api/internal/middleware"
)

// Setup creates and configures the Gin router with all routes.
func Setup(h *handlers.Handler, rateLimiter *middleware.RateLimiter, allowedOrigins []string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(allowedOrigins))

	r.GET("/health", h.HealthCheck)

	// API Documentation
	r.GET("/api/docs", h.ServeSwaggerUI)
	r.GET("/api/docs/openapi.yaml", h.ServeOpenAPISpec)

	// --- Public routes, limited per client IP ---
	public := r.Group("/api")
	public.Use(rateLimiter.RateLimit())
	{
		public.POST("/upload/pdf", h.UploadPDF)
		public.GET("/upload/preview/:filename", h.PreviewExtraction)
		public.GET("/upload/list-extracted-files", h.ListExtractedFiles)

		public.GET("/youtube/recommend/:topic", h.RecommendVideos)
		public.GET("/youtube/topics", h.ListTopics)
		public.GET("/youtube/search", h.SearchCatalog)
		public.GET("/youtube/videos", h.GetVideoDetails)
		public.GET("/youtube/channels/:id/score", h.GetChannelScore)

		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)
	}

	// --- JWT-protected routes, limited per user ---
	protected := r.Group("/api")
	protected.Use(middleware.JWTAuth(h.DB, h.JWTSecret))
	protected.Use(rateLimiter.RateLimit())
	{
		protected.GET("/auth/me", h.GetMe)
		protected.POST("/auth/refresh", h.RefreshToken)

		protected.POST("/study-plans", h.CreateStudyPlan)
		protected.GET("/study-plans", h.ListStudyPlans)
		protected.GET("/study-plans/:id", h.GetStudyPlan)
		protected.DELETE("/study-plans/:id", h.DeleteStudyPlan)
		protected.PUT("/study-plans/:id/topics", h.ReplaceTopics)
		protected.POST("/study-plans/:id/topics/:topicId/complete", h.CompleteTopic)
		protected.GET("/study-plans/:id/dashboard", h.GetDashboard)

		protected.POST("/placement/profiles", h.CreatePlacementProfile)
		protected.GET("/placement/profiles", h.ListPlacementProfiles)
		protected.GET("/placement/profiles/:id", h.GetPlacementProfile)
		protected.PATCH("/placement/profiles/:id/status", h.UpdatePlacementStatus)
		protected.PUT("/placement/profiles/:id/plan", h.SavePlacementPlan)
		protected.GET("/placement/profiles/:id/plan", h.GetPlacementPlan)
	}

	return r
}
