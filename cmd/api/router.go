package api

import (
	"net/http"

	"fundraise-backend/internal/auth/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	authRequired := delivery.AuthMiddleware(h.authUsecase)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.authHandler.Login)
			auth.POST("/register", h.authHandler.Register)
			auth.POST("/refresh", h.authHandler.RefreshToken)
			auth.GET("/me", authRequired, h.authHandler.Me)
			auth.POST("/logout", h.authHandler.Logout)
		}

		protected := api.Group("")
		protected.Use(authRequired)

		// Chatbot (POST only; other methods get a 405 body)
		h.chatbotHandler.Register(protected)

		investors := protected.Group("/investors")
		{
			investors.GET("", h.investorHandler.ListInvestors)
			investors.POST("", h.investorHandler.CreateInvestor)
			investors.GET("/:id", h.investorHandler.GetInvestor)
			investors.PUT("/:id", h.investorHandler.UpdateInvestor)
			investors.DELETE("/:id", h.investorHandler.DeleteInvestor)
		}

		artifacts := protected.Group("/artifacts")
		{
			artifacts.GET("", h.artifactHandler.ListArtifacts)
			artifacts.POST("", h.artifactHandler.CreateArtifact)
			artifacts.GET("/:id", h.artifactHandler.GetArtifact)
			artifacts.PUT("/:id", h.artifactHandler.UpdateArtifact)
			artifacts.DELETE("/:id", h.artifactHandler.DeleteArtifact)
		}

		drafts := protected.Group("/drafts")
		{
			drafts.GET("", h.draftHandler.ListDrafts)
			drafts.POST("", h.draftHandler.CreateDraft)
			drafts.GET("/:id", h.draftHandler.GetDraft)
			drafts.PUT("/:id", h.draftHandler.UpdateDraft)
			drafts.DELETE("/:id", h.draftHandler.DeleteDraft)
			drafts.POST("/:id/send", h.mailHandler.SendDraft)
		}

		responses := protected.Group("/responses")
		{
			responses.GET("", h.responseHandler.ListResponses)
			responses.POST("", h.responseHandler.CreateResponse)
			responses.PUT("/:id", h.responseHandler.UpdateResponse)
			responses.DELETE("/:id", h.responseHandler.DeleteResponse)
		}

		protected.GET("/communications", h.dashboardHandler.ListCommunications)
		protected.GET("/dashboard", h.dashboardHandler.GetDashboard)
		protected.GET("/search/suggestions", h.dashboardHandler.GetSearchSuggestions)
		protected.POST("/emails/send", h.mailHandler.SendEmail)

		// Settings routes - runtime AI configuration
		settings := protected.Group("/settings")
		{
			settings.GET("/ollama", h.settingsHandler.GetOllamaSettings)
			settings.PUT("/ollama", h.settingsHandler.UpdateOllamaSettings)
			settings.POST("/ollama/test", h.settingsHandler.CheckOllamaConnection)
		}
	}
}
