package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventscatalogue/config"
	"eventscatalogue/internal/adapters/email"
	"eventscatalogue/internal/adapters/media"
	httpdelivery "eventscatalogue/internal/delivery/http"
	"eventscatalogue/internal/delivery/http/controllers"
	"eventscatalogue/internal/delivery/http/middleware"
	"eventscatalogue/internal/repository/postgres"
	"eventscatalogue/internal/services"
)

const serviceTimeout = 10 * time.Second

// @title           Events Catalogue API
// @version         1.0
// @description     Events catalogue and booking backend: events with agenda, tags, and media, plus attendee bookings.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	ctx := context.Background()

	gateway := postgres.NewGateway(cfg.DBUrl)
	db, err := gateway.Connect(ctx)
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer gateway.Close()

	if err := postgres.RunMigrations(ctx, db); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	eventRepo := postgres.NewEventRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	mediaStore := media.NewLocalStore(cfg.UploadDir, "/images")

	eventService := services.NewEventService(eventRepo, serviceTimeout)
	bookingService := services.NewBookingService(eventRepo, bookingRepo, emailService, logger, cfg.PublicBaseURL, serviceTimeout)

	dev := !cfg.IsProduction()
	eventController := controllers.NewEventController(logger, eventService, mediaStore, dev)
	bookingController := controllers.NewBookingController(logger, bookingService, dev)

	mux := httpdelivery.NewRouter(eventController, bookingController, cfg.UploadDir)

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.RequestID(handler)
	if len(cfg.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.AllowedOrigins, handler)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "err", err)
	}
}
