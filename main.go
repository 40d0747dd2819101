// File: adhhak/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adhhak/config"
	"adhhak/handlers"
	"adhhak/middleware"
	"adhhak/routes"
	"adhhak/services/booking"
	"adhhak/services/calendar"
	"adhhak/services/notification"
	"adhhak/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	clinic, err := booking.ClinicFromConfig(cfg)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid clinic configuration: %v", err)
	}

	store := calendar.NewFileTokenStore(cfg.TokenFile)
	oauthConf := calendar.NewOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)
	manager := calendar.NewCredentialManager(oauthConf, store, calendar.Overrides{
		AccessToken:  cfg.GoogleAccessToken,
		RefreshToken: cfg.GoogleRefreshToken,
		ExpiresIn:    cfg.GoogleAccessTokenExpiresIn,
	}, time.Duration(cfg.GoogleTokenLifetime)*time.Second, logger)

	// Startup probe: missing credentials are reported but do not stop
	// the server; the first booking retries initialization.
	if err := manager.Warmup(); err != nil {
		logger.Warn("Google Calendar credentials not ready", zap.Error(err))
	} else {
		logger.Info("Google Calendar API connected", zap.String("calendar", cfg.GoogleCalendarID))
	}

	calendarSvc, err := calendar.NewDefaultCalendarService(context.Background(), manager, cfg.GoogleCalendarID, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar client: %v", err)
	}

	notifier := notification.NewSMTPNotificationService(cfg, logger)

	bookingService := &booking.DefaultBookingService{
		Auth:     manager,
		Calendar: calendarSvc,
		Notifier: notifier,
		Clinic:   clinic,
	}
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, bookingHandler)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "3001"
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
