package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpadapter "todoapi/internal/adapter/http"
	. "todoapi/pkg/config"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "todoapi",
	Short:        "Todo and todo status REST API",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootstrap()
		if err != nil {
			return err
		}

		defer logger.Sync()

		if err := httpadapter.Migrate(cmd.Context(), config); err != nil {
			logger.Logger.Error("Migration failed", zap.Error(err))
			return err
		}

		logger.Logger.Info("Migrations applied", zap.String("driver", config.DBDriver))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	config, logger, err := bootstrap()
	if err != nil {
		return err
	}

	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := httpadapter.StartServerWithConfig(ctx, config, logger); err != nil {
		logger.Logger.Error("Server stopped with error", zap.Error(err))
		return err
	}

	logger.Logger.Info("Shutting down gracefully...")

	return nil
}

func bootstrap() (*AppConfig, *AppLogger, error) {
	config, err := Load()
	if err != nil {
		log.Println("Failed to load configuration:", err)
		return nil, nil, err
	}

	logger, err := NewAppLogger(config.ServiceName, config.LogLevel)
	if err != nil {
		log.Println("Failed to initialize logger:", err)
		return nil, nil, err
	}

	return config, logger, nil
}
