package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	Pool *pgxpool.Pool
}

// Connect establishes the pool, retrying a bounded number of times with a
// fixed delay before surfacing a fatal error. Per-request storage errors are
// never retried here.
func Connect(ctx context.Context, databaseURL string, maxConns int32, minConns int32, retries int, delay time.Duration) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	cfg.MaxConns = maxConns
	cfg.MinConns = minConns
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			slog.Warn("database connect failed, retrying", "attempt", attempt, "max", retries, "error", lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			lastErr = fmt.Errorf("create connection pool: %w", err)
			continue
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			lastErr = fmt.Errorf("ping database: %w", err)
			continue
		}

		slog.Info("database connected", "max_conns", maxConns, "min_conns", minConns)
		return &DB{Pool: pool}, nil
	}

	return nil, fmt.Errorf("database unreachable after %d attempts: %w", retries+1, lastErr)
}

func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

func (db *DB) Health(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}
