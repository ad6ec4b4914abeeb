package telegram

import (
	"context"

	"go.uber.org/fx"

	"signal_bot/internal/modules/telegram_bot/service"
	"signal_bot/internal/runner"
	"signal_bot/internal/users"
)

func Module() fx.Option {
	return fx.Module("telegram",
		// 1. Реестр пользователей и каталог пар
		fx.Provide(
			users.NewStore,
			service.LoadCatalog,
		),

		// 2. Адаптер: *users.Store -> runner.SelectionStore
		fx.Provide(
			func(s *users.Store) runner.SelectionStore {
				return s
			},
		),

		// 3. Сервис Telegram как *service.Telegram
		fx.Provide(
			service.NewTelegram,
		),

		// Запуск long-polling через Lifecycle
		fx.Invoke(
			func(lc fx.Lifecycle, t *service.Telegram, ctx context.Context) {
				lc.Append(fx.Hook{
					OnStart: func(_ context.Context) error {
						go t.Start(ctx)
						return nil
					},
					OnStop: func(_ context.Context) error {
						t.Stop()
						return nil
					},
				})
			},
		),
	)
}
