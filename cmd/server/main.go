package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Humanoid-1/Web-backend/internal/app"
	"github.com/Humanoid-1/Web-backend/internal/config"
	"github.com/Humanoid-1/Web-backend/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "web-backend",
		Short:         "Laptop, accessory and part catalog API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded before the environment")

	rootCmd.AddCommand(serveCmd(), migrateCmd(), seedCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the service logger.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}

	log := logger.New(app.ServiceName, logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(log)
	return cfg, log, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			log.Info("starting web backend",
				slog.String("environment", cfg.Environment),
				slog.String("version", app.Version),
				slog.Int("http_port", cfg.HTTPPort),
				slog.Bool("kafka", cfg.KafkaEnabled),
				slog.String("payment_provider", cfg.PaymentProvider),
			)

			ctx, cancel := signalContext()
			defer cancel()

			application, err := app.NewApp(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("initialize application: %w", err)
			}
			if err := application.Run(ctx); err != nil {
				return err
			}
			log.Info("web backend stopped")
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()
			return app.Migrate(ctx, cfg, log)
		},
	}
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load catalog fixtures from a YAML file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("file")
			if path == "" {
				path = cfg.SeedFile
			}

			ctx, cancel := signalContext()
			defer cancel()

			sum, err := app.Seed(ctx, cfg, path, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d brands, %d laptops, %d accessories, %d parts\n",
				sum.Brands, sum.Laptops, sum.Accessories, sum.Parts)
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", "", "fixtures file (defaults to SEED_FILE)")
	return cmd
}
