// shared.go
package pgtable

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/quantpool/pgtable/internal/pkg/config"
	"github.com/quantpool/pgtable/table"
)

// Process-wide shared pool. All access goes through sharedMu so concurrent
// first-use callers trigger at most one initialization.
var (
	sharedMu sync.Mutex
	sharedDB *DB
)

// Init creates the process-wide shared pool bound to dsn. When dsn is
// empty, the connection string comes from the environment configuration
// (DATABASE_URL, or an AWS Secrets Manager lookup when configured).
// Re-invocation closes the previous shared pool before replacing it.
func Init(ctx context.Context, dsn string) error {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	return initShared(ctx, dsn)
}

func initShared(ctx context.Context, dsn string) error {
	logger := slog.Default()

	cfg, err := config.Load(logger)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if dsn == "" {
		dsn, err = cfg.ResolveDSN(ctx, logger)
		if err != nil {
			return err
		}
	}

	db, err := New(ctx, &Config{
		DSN:                dsn,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, logger)
	if err != nil {
		return err
	}

	if sharedDB != nil {
		sharedDB.Close()
	}
	sharedDB = db

	return nil
}

// Shared returns the process-wide pool, initializing it from the fallback
// configuration on first use.
func Shared(ctx context.Context) (*DB, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedDB == nil {
		if err := initShared(ctx, ""); err != nil {
			return nil, err
		}
	}

	return sharedDB, nil
}

// FetchAsTable runs the query against the shared pool, initializing the
// pool on first use. See DB.FetchAsTable for result semantics.
func FetchAsTable(ctx context.Context, query string, args ...any) (*table.Table, error) {
	db, err := Shared(ctx)
	if err != nil {
		return nil, err
	}
	return db.FetchAsTable(ctx, query, args...)
}

// FetchRow runs a single-row query against the shared pool, initializing
// the pool on first use.
func FetchRow(ctx context.Context, query string, args ...any) (map[string]any, error) {
	db, err := Shared(ctx)
	if err != nil {
		return nil, err
	}
	return db.FetchRow(ctx, query, args...)
}

// Close tears down the shared pool. Subsequent shared calls reinitialize.
func Close() {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedDB != nil {
		sharedDB.Close()
		sharedDB = nil
	}
}
