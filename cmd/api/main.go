// ABOUTME: Main entry point for the feed reader API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedreader/api"
	"feedreader/api/handlers"
	"feedreader/infrastructure/logger/structured"
	"feedreader/internal/app"
	"feedreader/pkg/config"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := structured.New(structured.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	logger.Info("Starting feed reader API", map[string]interface{}{
		"port":         cfg.Server.Port,
		"cache_type":   cfg.Cache.Type,
		"load_timeout": cfg.Reader.LoadTimeout.String(),
	})

	reader, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to assemble reader", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer reader.Close()

	page, err := reader.NewPage()
	if err != nil {
		logger.Error("Failed to create page", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		reader.Warm(ctx)
	}()

	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:    logger,
		RateLimit: cfg.Server.RateLimit,
	})

	handlers.NewReaderHandler(page, reader.RunChecks, cfg.Reader.LoadTimeout).RegisterRoutes(humaAPI)

	errorLog := logger.Writer()
	defer errorLog.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // POST /checks waits on every feed load
		IdleTimeout:  60 * time.Second,
		ErrorLog:     log.New(errorLog, "", 0),
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}
	page.Wait()

	logger.Info("Server stopped", nil)
}
