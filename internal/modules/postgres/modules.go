package postgres

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"signal_bot/internal/history"
	"signal_bot/internal/modules/config"
	"signal_bot/pkg/db"
	"signal_bot/pkg/logger"
)

func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			func(ctx context.Context, cfg *config.Config) (*db.PgTxManager, error) {
				if cfg.DB == "" {
					// без DSN работаем без базы, история живёт в памяти
					return nil, nil
				}
				pool, err := db.NewPool(ctx, db.PoolConfig{DSN: cfg.DB})
				if err != nil {
					return nil, fmt.Errorf("failed to create pool: %w", err)
				}
				if err := pool.Ping(ctx); err != nil {
					return nil, err
				}
				return db.NewPgTxManager(pool), nil
			},
			func(ctx context.Context, txm *db.PgTxManager) (history.Store, error) {
				if txm == nil {
					logger.Info("история сигналов: in-memory (DATABASE_DSN не задан)")
					return history.NewMemory(), nil
				}
				pg := history.NewPg(txm)
				if err := pg.EnsureSchema(ctx); err != nil {
					return nil, err
				}
				return pg, nil
			},
		),
	)
}
