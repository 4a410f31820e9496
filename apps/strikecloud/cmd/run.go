package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quatton/portfolio/pkg/papi"
	"github.com/quatton/portfolio/pkg/papi/config"
	"github.com/quatton/portfolio/pkg/papi/routes"
	"github.com/quatton/portfolio/pkg/papi/services"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the API server",
	Long:  `Validates the environment, connects to the store and cache, and serves the Strike API until interrupted.`,
	Run:   run,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func run(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.ValidateEnv(logger)
	if err != nil {
		logger.Fatalf("%v", err)
	}

	cfg.Print(func(format string, args ...interface{}) {
		fmt.Fprintf(os.Stdout, format, args...)
	})

	svcs, err := services.NewServices(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to initialize services: %v", err)
	}
	defer svcs.Close()

	api := papi.NewApi()
	routes.RegisterAPI(api.Api, svcs)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           api.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("server starting", "addr", srv.Addr)
	logger.Info("openapi docs", "url", cfg.BaseURL+"/docs")
	logger.Info("openapi spec", "url", cfg.BaseURL+"/openapi.json")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		_ = svcs.Close()
		os.Exit(1)
	}
	logger.Info("server stopped")
}
