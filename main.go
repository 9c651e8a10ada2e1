package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"catalogue/internal/app"
	"catalogue/internal/config"

	"github.com/spf13/viper"
)

func main() {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := application.Listen(); err != nil {
			logger.Error("Server failed to start", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	logger.Info("Shutting down server...")
	if err := application.Shutdown(); err != nil {
		logger.Error("Error during shutdown", "error", err)
	}
	logger.Info("Server gracefully stopped")
}
