// Package main is the entry point for the stocktrack API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"stocktrack/internal/domain/auth"
	"stocktrack/internal/domain/inventory"
	v1 "stocktrack/internal/infrastructure/http/v1"
	"stocktrack/internal/infrastructure/http/v1/middleware"
	"stocktrack/internal/infrastructure/storage/jsonfile"
	"stocktrack/pkg/logger"
)

func main() {
	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting stocktrack server")

	// --- Inventory aggregate ---
	store := jsonfile.New()
	inv := inventory.New(store)

	snapshotPath := getEnv("SNAPSHOT_PATH", inventory.DefaultSnapshotPath)

	if getEnvBool("SNAPSHOT_AUTOLOAD", true) {
		if err := inv.Load(ctx, snapshotPath); err != nil {
			// A missing snapshot is a normal first boot; anything else is fatal
			// because it means the file exists but cannot be trusted.
			if !errors.Is(err, fs.ErrNotExist) {
				log.Fatalw("failed to load snapshot", "path", snapshotPath, "error", err)
			}
			log.Infow("no snapshot found, starting empty", "path", snapshotPath)
		} else {
			log.Infow("snapshot loaded", "path", snapshotPath, "items", inv.Len())
		}
	}

	// --- Auth (optional) ---
	var tokenValidator middleware.TokenValidator
	if secret := getEnv("AUTH_SECRET", ""); secret != "" {
		tokenValidator = auth.NewJWTService(auth.DefaultConfig(secret))
		log.Info("bearer token auth enabled")
	} else {
		log.Warn("AUTH_SECRET not set, API is unauthenticated")
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Inventory:         inv,
		Logger:            log,
		TokenValidator:    tokenValidator,
		SnapshotPath:      snapshotPath,
		LowStockThreshold: getEnvInt("LOW_STOCK_THRESHOLD", inventory.DefaultLowStockThreshold),
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	if getEnvBool("SNAPSHOT_AUTOSAVE", true) {
		if err := inv.Save(ctx, snapshotPath); err != nil {
			log.Errorw("failed to save snapshot on shutdown", "path", snapshotPath, "error", err)
		} else {
			log.Infow("snapshot saved", "path", snapshotPath, "items", inv.Len())
		}
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.ParseBool(value); err == nil {
			return result
		}
	}
	return defaultValue
}
