package routes

import (
	"net/http"
	"time"

	"coachhub/handlers"
	"coachhub/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers the router needs.
type HandlerBundle struct {
	Availability *handlers.AvailabilityHandler
	Sessions     *handlers.SessionHandler
	Feedback     *handlers.FeedbackHandler
}

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterCoachRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm CoachHub"})
	})
}

// RegisterCoachRoutes registers availability and blocked-range endpoints.
func RegisterCoachRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/coaches")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.PUT("/:id/availability", hb.Availability.SetWeeklyAvailabilityHandler)
		api.GET("/:id/availability", hb.Availability.GetCoachAvailabilityHandler)
		api.POST("/:id/blocked", hb.Availability.AddBlockedRangeHandler)
		api.GET("/:id/blocked", hb.Availability.ListBlockedRangesHandler)
		api.DELETE("/:id/blocked/:blockId", hb.Availability.RemoveBlockedRangeHandler)
	}
}

// RegisterSessionRoutes registers booking, lifecycle, and feedback endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/sessions")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Sessions.BookSessionHandler)
		api.GET("", hb.Sessions.ListSessionsHandler)
		api.GET("/:id", hb.Sessions.GetSessionHandler)
		api.PATCH("/:id", hb.Sessions.UpdateSessionHandler)
		api.POST("/:id/feedback", hb.Feedback.SubmitFeedbackHandler)
		api.GET("/:id/feedback", hb.Feedback.GetFeedbackHandler)
	}
}
