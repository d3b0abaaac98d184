package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wordofday/internal/app"
	"wordofday/internal/config"
	"wordofday/internal/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := newServeCommand()

	root := &cobra.Command{
		Use:          "wordofday",
		Short:        "Emails a word of the day to every subscriber",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	root.AddCommand(
		serve,
		newSendNowCommand(),
		newMigrateCommand(),
	)

	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the daily scheduler and the admin bot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App, _ *zap.Logger) error {
				return a.Serve(ctx)
			})
		},
	}
}

func newSendNowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "send-now",
		Short: "Run the daily word job once and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App, _ *zap.Logger) error {
				a.SendNow(ctx)
				return nil
			})
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signalContext(cmd)
			defer stop()

			if err := app.Migrate(ctx, cfg, logger, database.DefaultOptions()); err != nil {
				logger.Error("Failed to run migrations", zap.Error(err))
				return err
			}
			return nil
		},
	}
}

// withApp loads configuration, builds the App and runs fn until it returns or
// the process receives SIGINT or SIGTERM
func withApp(cmd *cobra.Command, fn func(context.Context, *app.App, *zap.Logger) error) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signalContext(cmd)
	defer stop()

	a, err := app.New(ctx, cfg, logger, database.DefaultOptions())
	if err != nil {
		logger.Error("Failed to start", zap.Error(err))
		return err
	}
	defer a.Close()

	return fn(ctx, a, logger)
}

func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, nil, err
	}

	logger, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return nil, nil, err
	}

	logger.Info("Configuration loaded",
		zap.String("schedule", cfg.Schedule.CronSpec()),
		zap.String("timezone", cfg.Schedule.Timezone),
		zap.Bool("primary_instance", cfg.IsPrimaryInstance),
		zap.Bool("smtp_configured", cfg.SMTP.Complete()),
		zap.Bool("bot_enabled", cfg.Bot.Enabled()),
	)

	return cfg, logger, nil
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
