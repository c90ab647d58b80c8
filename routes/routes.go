package routes

import (
	"peer-review-api/controllers"
	"peer-review-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)
			public.POST("/forgot-password", controllers.ForgotPassword)
			public.POST("/reset-password", controllers.ResetPassword)

			// Authenticated by net id + current password inside the handler;
			// must stay reachable for students refused a token at first login
			public.PUT("/change-password", controllers.ChangePassword)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Peer Review API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth management
			protected.POST("/logout", controllers.Logout)
			protected.GET("/profile", controllers.GetProfile)

			// Peer review workflow
			review := protected.Group("/review")
			{
				review.GET("/form", controllers.GetReviewForm)
				review.POST("", controllers.SubmitReview)
				review.GET("/scores", controllers.GetScores)
			}
		}
	}
}
