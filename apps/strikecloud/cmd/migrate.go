package cmd

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/quatton/portfolio/pkg/db"
	"github.com/quatton/portfolio/pkg/papi/utils"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Run:   runMigrations,
}

var migrateRollback bool

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().BoolVar(&migrateRollback, "rollback", false, "Roll back the last migration group instead")
}

// loadDBConfig reads only the DB_* variables, so migrations run without the
// API's secrets.
func loadDBConfig() (db.Config, error) {
	if utils.IsDev() {
		if err := godotenv.Load(); err != nil {
			logger.Debug("no .env file found")
		} else {
			logger.Info("loaded .env file")
		}
	}

	var cfg db.Config
	if err := envconfig.Process("DB", &cfg); err != nil {
		return db.Config{}, fmt.Errorf("failed to process env vars: %w", err)
	}
	return cfg, nil
}

func runMigrations(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	cfg, err := loadDBConfig()
	if err != nil {
		logger.Fatalf("%v", err)
	}

	database, err := db.New(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}
	defer database.Close()

	if migrateRollback {
		err = db.Rollback(ctx, database, logger)
	} else {
		err = db.Migrate(ctx, database, logger)
	}
	if err != nil {
		logger.Error("migration failed", "error", err)
		_ = database.Close()
		logger.Fatal("aborting")
	}
}
