package routes

import (
	"time"

	"slotline/handlers"
	"slotline/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterTimelineRoutes registers candidate slot and layout endpoints.
func RegisterTimelineRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/timelines")
	{
		api.POST("", hb.CreateTimelineHandler)

		day := api.Group("/:id/days/:date")
		day.GET("/candidates", hb.ListCandidatesHandler)
		day.POST("/candidates", hb.AddCandidateHandler)
		day.PUT("/candidates/:time", hb.UpdateCandidateHandler)
		day.DELETE("/candidates/:time", hb.RemoveCandidateHandler)
		day.POST("/copy-previous", hb.CopyPreviousDayHandler)
		day.GET("/next-start", hb.NextStartTimeHandler)
		day.GET("/layout", hb.LayoutHandler)
		day.GET("/layout.svg", hb.LayoutSVGHandler)
	}

	r.POST("/api/layout", hb.StatelessLayoutHandler)
}

// RegisterAvailabilityRoutes registers participant busy slot endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.GET("/:date", hb.GetAvailabilityHandler)
		api.PUT("/:date", hb.ReplaceAvailabilityHandler)
	}
}

// RegisterPreferenceRoutes registers timezone preference endpoints.
func RegisterPreferenceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/preferences/:userID")
	{
		api.GET("/timezone", hb.GetTimezoneHandler)
		api.PUT("/timezone", hb.SaveTimezoneHandler)
		api.DELETE("/timezone", hb.RevertTimezoneHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterTimelineRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterPreferenceRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
