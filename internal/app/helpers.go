package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-dispatch/internal/config"
	"marketplace-dispatch/internal/logx"
	"marketplace-dispatch/internal/repository"
)

var newPool = repository.NewPool

const (
	dbAttemptTimeout = 3 * time.Second
	dbMaxDelay       = 5 * time.Second
)

// connectPostgres keeps dialing until Postgres answers, the attempts run out
// or ctx ends. The pause grows linearly up to dbMaxDelay.
func connectPostgres(ctx context.Context, logger logx.Logger, db config.DB) (*pgxpool.Pool, error) {
	attempts := max(db.ConnectAttempts, 1)
	dsn := db.DSN()
	log := logger.With(logx.String("host", db.Host), logx.String("database", db.Name))

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		pool, err := dialOnce(ctx, dsn)
		if err == nil {
			log.Info("db connected", logx.Int("attempt", attempt))
			return pool, nil
		}
		lastErr = err
		log.Warn("db connect failed",
			logx.Int("attempt", attempt),
			logx.Int("attempts", attempts),
			logx.Err(err),
		)
		if attempt == attempts {
			break
		}
		if err := pause(ctx, min(db.ConnectDelay*time.Duration(attempt), dbMaxDelay)); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("db connect failed after %d attempts: %w", attempts, lastErr)
}

func dialOnce(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, dbAttemptTimeout)
	defer cancel()
	return newPool(ctx, dsn)
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
