// Archie - tutoring app relay server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/savvy-app/archie-server/internal/api"
	"github.com/savvy-app/archie-server/internal/config"
	"github.com/savvy-app/archie-server/internal/gemini"
	"github.com/savvy-app/archie-server/internal/middleware"
	"github.com/savvy-app/archie-server/internal/tutor"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server",
		"port", cfg.Port,
		"chat_model", cfg.ChatModel,
		"history_window", cfg.HistoryWindow,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One model client for the process lifetime, read-only after this.
	client, err := gemini.New(ctx, cfg.GoogleAPIKey)
	if err != nil {
		slog.Error("Failed to initialize model client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			slog.Error("Failed to close model client", "error", closeErr)
		}
	}()
	slog.Info("Model client initialized")

	transcript, err := tutor.NewTranscriptLogger(cfg.Transcript, logger)
	if err != nil {
		slog.Error("Failed to initialize transcript logger", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := transcript.Close(); closeErr != nil {
			slog.Error("Failed to close transcript logger", "error", closeErr)
		}
	}()

	svc := tutor.NewService(client, client, cfg)
	tutorHandler := tutor.NewHandler(svc, cfg, transcript)
	statusHandler := api.NewStatusHandler("archie-tutor")

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS())

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerWindow, cfg.RateLimit.Window)
		defer limiter.Close()
		r.Use(middleware.RateLimit(limiter))
		slog.Info("Rate limiting enabled", "requests_per_window", cfg.RateLimit.RequestsPerWindow, "window", cfg.RateLimit.Window)
	}

	// Routes.
	r.Get("/", statusHandler.Status)
	tutorHandler.RegisterRoutes(r)

	// Create server. Actions can legitimately run for minutes (uploads
	// plus a slow model call), so the write timeout tracks the action
	// deadline rather than a generic short value.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: cfg.ActionTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
