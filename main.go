// File: calbot/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calbot/config"
	"calbot/database"
	bookingRepo "calbot/database/repository/booking"
	"calbot/handlers"
	"calbot/middleware"
	"calbot/routes"
	"calbot/services/calendar"
	"calbot/services/conversation"
	"calbot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Calendar gateway. A missing client configuration is fatal before any
	// conversation starts.
	gateway, err := calendar.NewGoogleGateway(
		config.AppConfig.GoogleCredentialsFile,
		config.AppConfig.GoogleTokenFile,
		config.AppConfig.CalendarID,
		config.CalendarTimeout(),
		logger,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: calendar gateway configuration error: %v", err)
	}
	ensureAuthorized(gateway)

	// Session store.
	var store conversation.SessionStore
	switch config.AppConfig.SessionStore {
	case "memory":
		memStore := conversation.NewMemorySessionStore(config.SessionTTL())
		startSessionSweeper(memStore, logger)
		store = memStore
	default:
		utils.InitSessionCache()
		store = conversation.NewRedisSessionStore(utils.GetSessionCacheClient(), config.SessionTTL())
	}

	// Booking history is kept only when Mongo is configured.
	var bookings bookingRepo.Repository
	var bookingHistoryHandler *handlers.BookingHistoryHandler
	if config.AppConfig.DatabaseURL != "" {
		database.InitDB()
		bookings = bookingRepo.NewMongoBookingRepo()
		bookingHistoryHandler = handlers.NewBookingHistoryHandler(bookings, logger)
	}

	utils.StartHealthMonitor(utils.SessionCacheClient, database.MongoClient)

	conversationService := &conversation.DefaultService{
		Store:    store,
		Gateway:  gateway,
		Bookings: bookings,
		TimeZone: config.AppConfig.CalendarTimeZone,
		Logger:   logger,
	}
	chatHandler := handlers.NewChatHandler(conversationService, logger)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, chatHandler, bookingHistoryHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// ensureAuthorized runs the interactive authorization flow at startup when
// no cached credential is usable.
func ensureAuthorized(gateway *calendar.GoogleGateway) {
	logger := utils.GetLogger()
	ctx := context.Background()

	err := gateway.Authenticate(ctx)
	if err == nil {
		return
	}
	var authErr *calendar.AuthError
	if !errors.As(err, &authErr) {
		logger.Sugar().Fatalf("main: calendar authentication failed: %v", err)
	}

	fmt.Printf("Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", gateway.AuthCodeURL())

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		logger.Sugar().Fatalf("main: unable to read authorization code: %v", err)
	}
	if err := gateway.Exchange(ctx, authCode); err != nil {
		logger.Sugar().Fatalf("main: unable to exchange authorization code: %v", err)
	}
	if err := gateway.Authenticate(ctx); err != nil {
		logger.Sugar().Fatalf("main: calendar authentication failed after authorization: %v", err)
	}
	logger.Info("calendar authorization completed")
}

// startSessionSweeper reclaims expired in-memory sessions. Redis handles
// expiry on its own via key TTLs.
func startSessionSweeper(store *conversation.MemorySessionStore, logger *zap.Logger) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if removed := store.Sweep(); removed > 0 {
				logger.Debug("swept expired chat sessions", zap.Int("removed", removed))
			}
		}
	}()
}
