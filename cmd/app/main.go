package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/zeeddd0107/GymPlify-sub000/docs"
	"github.com/zeeddd0107/GymPlify-sub000/internal/config"
	"github.com/zeeddd0107/GymPlify-sub000/internal/db"
	"github.com/zeeddd0107/GymPlify-sub000/internal/logger"
	"github.com/zeeddd0107/GymPlify-sub000/internal/notify"
	"github.com/zeeddd0107/GymPlify-sub000/internal/request"
	"github.com/zeeddd0107/GymPlify-sub000/internal/server"
	"github.com/zeeddd0107/GymPlify-sub000/internal/subscription"
	"github.com/zeeddd0107/GymPlify-sub000/internal/user"
)

// @title GymPlify API
// @version 1.0
// @description API for gym session booking, subscriptions, attendance and inventory.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	logger.Init()
	logger.Info("Starting GymPlify application")
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if errs := server.ValidateStruct(cfg); len(errs) > 0 {
		logger.Fatalf("Invalid config: %s", errs[0].Message)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	notifyService := notify.New(cfg.RedisAddr, notify.NewRepository(database))
	defer notifyService.Close()
	logger.Info("Notification service initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notifyService.Start(ctx)

	requestRepo := request.NewRepository(database)
	requestService := request.NewService(requestRepo, subscription.NewRepository(database), notifyService)

	watcher := request.NewWatcher(requestRepo, user.NewRepository(database), notifyService, 30*time.Second)
	watcher.Start(ctx)
	defer watcher.Stop()
	logger.Info("Subscription request watcher started")

	srv := server.New(database, cfg, notifyService, requestService)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	watcher.Stop()
	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
