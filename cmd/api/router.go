package api

import (
	"net/http"

	"thoughtfolio-backend/internal/auth/delivery"
	authUsecase "thoughtfolio-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase, h Handlers) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := delivery.AuthMiddleware(authUsecase)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/google", h.Auth.GoogleSignIn)
			auth.POST("/refresh", h.Auth.RefreshToken)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/me", requireAuth, h.Auth.Me)
		}

		// Push device tokens
		fcm := api.Group("/fcm", requireAuth)
		{
			fcm.POST("/register", h.Auth.RegisterDevice)
			fcm.DELETE("/:token", h.Auth.UnregisterDevice)
		}

		gems := api.Group("/gems", requireAuth)
		{
			gems.GET("", h.Gem.ListGems)
			gems.POST("", h.Gem.CreateGem)
			gems.GET("/daily", h.Gem.DailyThought)
			gems.GET("/:id", h.Gem.GetGem)
			gems.PUT("/:id", h.Gem.UpdateGem)
			gems.DELETE("/:id", h.Gem.ReleaseGem)
			gems.POST("/:id/checkin", h.Gem.CheckIn)
			gems.POST("/:id/retire", h.Gem.Retire)
			gems.POST("/:id/restore", h.Gem.Restore)
			gems.POST("/:id/graduate", h.Gem.Graduate)
		}

		contexts := api.Group("/contexts", requireAuth)
		{
			contexts.GET("", h.Context.ListContexts)
			contexts.POST("", h.Context.CreateContext)
			contexts.GET("/:id", h.Context.GetContext)
			contexts.PUT("/:id", h.Context.UpdateContext)
			contexts.DELETE("/:id", h.Context.DeleteContext)
		}

		sources := api.Group("/sources", requireAuth)
		{
			sources.GET("", h.Source.ListSources)
			sources.POST("", h.Source.CreateSource)
			sources.GET("/:id", h.Source.GetSource)
			sources.PUT("/:id", h.Source.UpdateSource)
			sources.DELETE("/:id", h.Source.DeleteSource)
		}

		notes := api.Group("/notes", requireAuth)
		{
			notes.GET("", h.Note.ListNotes)
			notes.POST("", h.Note.CreateNote)
			notes.GET("/:id", h.Note.GetNote)
			notes.PUT("/:id", h.Note.UpdateNote)
			notes.DELETE("/:id", h.Note.DeleteNote)
		}

		moments := api.Group("/moments", requireAuth)
		{
			moments.GET("", h.Moment.ListMoments)
			moments.POST("", h.Moment.CreateMoment)
			moments.POST("/match", h.Moment.MatchThoughts)
			moments.POST("/analyze-title", h.Moment.AnalyzeTitle)
			moments.GET("/:id", h.Moment.GetMoment)
			moments.PUT("/:id/context", h.Moment.UpdateContext)
			moments.PUT("/:id/status", h.Moment.UpdateStatus)
			moments.POST("/:id/feedback", h.Moment.RecordFeedback)
		}

		capture := api.Group("/capture", requireAuth)
		{
			capture.POST("/analyze", h.Capture.Analyze)
			capture.GET("/usage", h.Capture.Usage)
		}

		discover := api.Group("/discover", requireAuth)
		{
			discover.POST("", h.Discovery.Discover)
			discover.GET("", h.Discovery.List)
			discover.POST("/:id/save", h.Discovery.Save)
			discover.POST("/:id/skip", h.Discovery.Skip)
		}

		search := api.Group("/search", requireAuth)
		{
			search.GET("", h.Search.Search)
			search.POST("/semantic", h.Search.Semantic)
			search.GET("/suggestions", h.Search.Suggestions)
		}

		calendar := api.Group("/calendar", requireAuth)
		{
			calendar.GET("/status", h.Calendar.Status)
			calendar.GET("/connect", h.Calendar.Connect)
			calendar.POST("/callback", h.Calendar.Callback)
			calendar.PUT("/settings", h.Calendar.UpdateSettings)
			calendar.POST("/sync", h.Calendar.Sync)
			calendar.GET("/events", h.Calendar.ListEvents)
			calendar.DELETE("", h.Calendar.Disconnect)
		}

		// Runtime AI provider configuration
		if h.Settings != nil {
			settings := api.Group("/settings", requireAuth)
			{
				settings.GET("/ollama", h.Settings.GetOllamaSettings)
				settings.PUT("/ollama", h.Settings.UpdateOllamaSettings)
				settings.POST("/ollama/test", h.Settings.TestOllamaConnection)
			}
		}
	}
}
