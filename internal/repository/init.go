package repository

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joseph-ayodele/bizledger/internal/common"
)

// Stores holds the opened backends. Durable is nil when no DSN is configured.
type Stores struct {
	Local   *SQLStore
	Durable *SQLStore
	Pool    *pgxpool.Pool

	cleanup []func()
}

// Close releases every backend.
func (s *Stores) Close() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
}

// InitStores opens and migrates the local buffer at localPath and, when
// cfg.Database.DSN is set, the durable Postgres store.
func InitStores(ctx context.Context, cfg *common.Config, localPath string, logger *slog.Logger) (*Stores, error) {
	stores := &Stores{}

	localDrv, err := OpenLocal(localPath, logger)
	if err != nil {
		return nil, err
	}
	stores.cleanup = append(stores.cleanup, func() { Close(localDrv, nil, logger) })
	if err := Migrate(ctx, localDrv, logger); err != nil {
		stores.Close()
		return nil, err
	}
	stores.Local = NewSQLStore(localDrv, false, logger)

	if !cfg.HasDurableStore() {
		logger.Info("no DB_URL configured, using local store only")
		return stores, nil
	}
	drv, pool, err := Open(ctx, Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		stores.Close()
		return nil, err
	}
	stores.cleanup = append(stores.cleanup, func() { Close(drv, pool, logger) })
	if err := HealthCheck(ctx, pool, cfg.Database.DialTimeout, logger); err != nil {
		stores.Close()
		return nil, err
	}
	if err := Migrate(ctx, drv, logger); err != nil {
		stores.Close()
		return nil, err
	}
	stores.Durable = NewSQLStore(drv, true, logger)
	stores.Pool = pool
	return stores, nil
}
