package routes

import (
	"net/http"
	"time"

	"calbot/handlers"
	"calbot/middleware"
	"calbot/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the conversational booking endpoints.
// Starting a session is open; everything scoped to a session id requires
// the bearer token issued at start.
func RegisterChatRoutes(r *gin.Engine, ch *handlers.ChatHandler) {
	api := r.Group("/api/chat")
	{
		api.POST("/session", ch.StartSession)

		protected := api.Group("")
		protected.Use(middleware.SessionAuthMiddleware())
		protected.POST("/session/:sessionID/turn", ch.PostTurn)
		protected.GET("/session/:sessionID", ch.GetSession)
		protected.DELETE("/session/:sessionID", ch.EndSession)
	}
}

// RegisterBookingRoutes registers the booking-history endpoints. These are
// only mounted when a history repository is configured.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHistoryHandler) {
	api := r.Group("/api/bookings")
	{
		api.GET("", bh.ListBookings)
		api.GET("/session/:sessionID", middleware.SessionAuthMiddleware(), bh.GetSessionBookings)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, ch *handlers.ChatHandler, bh *handlers.BookingHistoryHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterChatRoutes(r, ch)
	if bh != nil {
		RegisterBookingRoutes(r, bh)
	}
	RegisterHealthRoute(r)
}
