package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aitoolkit-web/internal/backend"
	"aitoolkit-web/internal/config"
	"aitoolkit-web/internal/http"
	"aitoolkit-web/internal/service"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Backend gateway (external service layer)
	backendClient := backend.NewClient(cfg.BackendURL(), cfg.Model, cfg.RequestTimeout)
	slog.Info("Backend client initialized", "url", cfg.BackendURL(), "model", cfg.Model)

	chatService := service.NewChatService(backendClient, cfg.HistoryWindow)

	deps := &http.Deps{
		ChatService:    chatService,
		Backend:        backendClient,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
		// Completion requests can legitimately take as long as the backend
		// timeout allows; give the write side the same budget plus slack.
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("API server failed: %v", err)
		}
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}
}
