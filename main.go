// main.go
package main

import (
	"context"
	"log"

	"business-onboarding/cmd"
	"business-onboarding/internal/wire"
	"business-onboarding/pkg/database"
	"business-onboarding/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx := context.Background()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	// Connect to redis; bounded retries, then give up
	rdb, err := database.InitRedis(ctx, config.Redis, logger)
	if err != nil {
		db.Close()
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}

	// Wire all dependencies
	app := wire.Wiring(db, rdb, config, logger)

	// Start server; blocks until shutdown
	if err := cmd.APIServer(app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}

	if err := rdb.Close(); err != nil {
		logger.Warn("Failed to close redis", zap.Error(err))
	}
	db.Close()
	logger.Info("Shutdown complete")
}
