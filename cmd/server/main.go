package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"talenthub-api/internal/api/routes"
	"talenthub-api/internal/config"
	"talenthub-api/internal/email"
	"talenthub-api/internal/extract"
	"talenthub-api/internal/identity"
	"talenthub-api/internal/logging"
	"talenthub-api/internal/otp"
	"talenthub-api/internal/scheduler"
	"talenthub-api/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	logManager := logging.NewManager()
	if err := logManager.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger := logManager.GetLogger()
	logging.SetGlobalLogger(logger)

	logger.Info("Starting TalentHub API", map[string]interface{}{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	})

	// Connect to PostgreSQL
	ctx := context.Background()
	store, err := storage.New(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Connect to redis for OTP storage
	otpStore := otp.NewStore(cfg)
	if err := otpStore.Ping(ctx); err != nil {
		logger.Warn("Redis unreachable at startup, OTP endpoints will fail until it recovers", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Email client and dispatcher
	mailer := email.NewClient(cfg)
	dispatcher := email.NewDispatcher(cfg, mailer)
	dispatcher.Start()

	// External collaborators
	authClient := identity.NewClient(cfg)
	extractor := extract.NewExtractor(cfg)

	// Background jobs
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(cfg, store, dispatcher)
		if err := sched.Start(); err != nil {
			logger.Fatal("Failed to start scheduler", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, cfg, store, otpStore, mailer, dispatcher, authClient, extractor)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if sched != nil {
			logger.Info("Stopping scheduler...", nil)
			if err := sched.Stop(shutdownCtx); err != nil {
				logger.Error("Error stopping scheduler", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		// Stop the HTTP server first so no in-flight handler can
		// enqueue into a dispatcher that is draining.
		logger.Info("Stopping HTTP server...", nil)
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{
				"error": err.Error(),
			})
		}

		logger.Info("Stopping email dispatcher...", nil)
		if err := dispatcher.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error stopping email dispatcher", map[string]interface{}{
				"error": err.Error(),
			})
		}

		store.Close()
		if err := otpStore.Close(); err != nil {
			logger.Error("Error closing redis connection", map[string]interface{}{
				"error": err.Error(),
			})
		}

		logger.Info("Server shutdown complete", nil)
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Info("Server stopped", map[string]interface{}{"reason": err.Error()})
	}
}
