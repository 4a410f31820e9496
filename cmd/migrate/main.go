package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/quatton/portfolio/pkg/db"
	"github.com/quatton/portfolio/pkg/plog"
)

func main() {
	logger := plog.NewFromEnv()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found")
	} else {
		logger.Info("loaded .env file")
	}

	ctx := context.Background()

	var cfg db.Config
	if err := envconfig.Process("DB", &cfg); err != nil {
		logger.Fatalf("failed to process env vars: %v", err)
	}

	database, err := db.New(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}
	defer database.Close()

	logger.Info("running migrations")
	if err := db.Migrate(ctx, database, logger); err != nil {
		logger.Error("failed to migrate", "error", err)
		_ = database.Close()
		logger.Fatal("aborting")
	}
	logger.Info("migrations completed")
}
