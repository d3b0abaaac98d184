// Package app wires configuration, storage, the daily job and the HTTP server
// into a runnable service.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"wordofday/internal/bot"
	"wordofday/internal/config"
	"wordofday/internal/database"
	"wordofday/internal/handler"
	"wordofday/internal/job"
	"wordofday/internal/mail"
	"wordofday/internal/metrics"
	"wordofday/internal/middleware"
	"wordofday/internal/repository"
	"wordofday/internal/repository/postgres"
	"wordofday/internal/repository/sqlite"
	"wordofday/internal/scheduler"
	"wordofday/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// App holds the wired service
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	db        *sql.DB
	userRepo  repository.UserRepository
	wordRepo  repository.WordRepository
	registry  *prometheus.Registry
	metrics   *metrics.Collector
	scheduler *scheduler.Scheduler

	userService  *service.UserService
	wordService  *service.WordService
	statsService *service.StatsService

	// botAPIURL overrides the Telegram Bot API endpoint; empty uses the default
	botAPIURL string
}

// New connects to the database, applies migrations and builds every component
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts database.Options) (*App, error) {
	driver, dsn, err := cfg.DatabaseDriver()
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(ctx, driver, dsn, opts, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connection established", zap.String("driver", driver))

	if err := database.Migrate(db, driver, logger); err != nil {
		db.Close()
		return nil, err
	}

	userRepo, wordRepo, err := NewRepositories(driver, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	sender := mail.NewSender(cfg.SMTP, logger.Named("mail"), collector)
	daily := job.NewDailyWordJob(wordRepo, userRepo, sender, logger.Named("job"), collector)

	sched, err := scheduler.New(cfg.Schedule, daily, logger.Named("scheduler"))
	if err != nil {
		db.Close()
		return nil, err
	}

	return &App{
		cfg:          cfg,
		logger:       logger,
		db:           db,
		userRepo:     userRepo,
		wordRepo:     wordRepo,
		registry:     registry,
		metrics:      collector,
		scheduler:    sched,
		userService:  service.NewUserService(userRepo, logger),
		wordService:  service.NewWordService(wordRepo, logger),
		statsService: service.NewStatsService(userRepo, wordRepo, logger),
	}, nil
}

// NewRepositories returns the store implementation for driver
func NewRepositories(driver string, db *sql.DB) (repository.UserRepository, repository.WordRepository, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.NewUserRepo(db), postgres.NewWordRepo(db), nil
	case config.DriverSQLite:
		return sqlite.NewUserRepo(db), sqlite.NewWordRepo(db), nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %q", driver)
	}
}

// Migrate applies the schema and exits without starting anything
func Migrate(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts database.Options) error {
	driver, dsn, err := cfg.DatabaseDriver()
	if err != nil {
		return err
	}

	db, err := database.Connect(ctx, driver, dsn, opts, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	return database.Migrate(db, driver, logger)
}

// Close releases the database
func (a *App) Close() error {
	return a.db.Close()
}

// Router builds the HTTP handler. A nil limiter disables registration throttling.
func (a *App) Router(limiter *middleware.RateLimiter) http.Handler {
	return handler.NewRouter(&handler.RouterDeps{
		UserService:         a.userService,
		WordService:         a.wordService,
		DB:                  a.db,
		Logger:              a.logger.Named("http"),
		Metrics:             a.metrics,
		Gatherer:            a.registry,
		CORSAllowedOrigins:  a.cfg.Server.CORSAllowedOrigins,
		RegistrationLimiter: limiter,
	})
}

// SendNow runs the daily job once through the scheduler's error boundary
func (a *App) SendNow(ctx context.Context) {
	a.scheduler.RunNow(ctx)
}

// Serve runs the HTTP server, the scheduler (on the primary instance) and the
// admin bot (when configured) until ctx is cancelled or the server fails.
func (a *App) Serve(ctx context.Context) error {
	limiter := middleware.NewRateLimiter(
		middleware.PerMinute(a.cfg.Server.RegistrationsPerMinute),
		a.logger.Named("ratelimit"),
	)
	defer limiter.Stop()

	server := &http.Server{
		Addr:         a.cfg.Server.Addr(),
		Handler:      a.Router(limiter),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var adminBot *tele.Bot
	if a.cfg.Bot.Enabled() {
		b, err := a.startBot()
		if err != nil {
			return err
		}
		adminBot = b
	}

	if err := a.scheduler.Start(a.cfg.IsPrimaryInstance); err != nil {
		if adminBot != nil {
			adminBot.Stop()
		}
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		a.logger.Info("Shutdown signal received")
	case serveErr = <-errCh:
		a.logger.Error("HTTP server failed", zap.Error(serveErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := a.scheduler.Stop(shutdownCtx); err != nil {
		a.logger.Error("Scheduler shutdown failed", zap.Error(err))
	}
	if adminBot != nil {
		adminBot.Stop()
	}

	a.logger.Info("Service stopped gracefully")
	return serveErr
}

func (a *App) startBot() (*tele.Bot, error) {
	b, err := tele.NewBot(tele.Settings{
		URL:    a.botAPIURL,
		Token:  a.cfg.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	h := bot.NewHandler(
		b,
		service.NewAuthService(a.cfg.Bot.Password),
		a.wordService,
		a.statsService,
		a.logger.Named("bot"),
	)
	h.RegisterHandlers()

	go func() {
		a.logger.Info("Admin bot started")
		b.Start()
	}()

	return b, nil
}
