// Package database opens the configured SQL backend and applies the schema.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"wordofday/internal/config"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Options controls connection retries
type Options struct {
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultOptions waits up to a minute for the database to come up
func DefaultOptions() Options {
	return Options{MaxRetries: 30, RetryDelay: 2 * time.Second}
}

// Connect opens the database for driver and verifies it with a ping, retrying
// while the server is not reachable yet.
func Connect(ctx context.Context, driver, dsn string, opts Options, logger *zap.Logger) (*sql.DB, error) {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}

	var err error
	for i := 0; i < opts.MaxRetries; i++ {
		var db *sql.DB
		db, err = open(ctx, driver, dsn)
		if err == nil {
			return db, nil
		}

		logger.Warn("Failed to connect to database",
			zap.String("driver", driver),
			zap.Int("attempt", i+1),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.RetryDelay):
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", opts.MaxRetries, err)
}

// sqlitePragmas are applied by the driver to every new connection
var sqlitePragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"foreign_keys(1)",
}

// SQLiteDSN appends the connection pragmas to a SQLite path or file: URI
func SQLiteDSN(dsn string) string {
	params := make([]string, 0, len(sqlitePragmas))
	for _, pragma := range sqlitePragmas {
		params = append(params, "_pragma="+pragma)
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

func open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if driver == config.DriverSQLite {
		dsn = SQLiteDSN(dsn)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	switch driver {
	case config.DriverPostgres:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	case config.DriverSQLite:
		// SQLite allows one writer; a single connection also keeps :memory: databases alive
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	default:
		db.Close()
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
