package sniffer

import (
	"context"

	"go.uber.org/fx"

	"signal_bot/internal/candles"
	"signal_bot/internal/modules/sniffer/service"
)

func Module() fx.Option {
	return fx.Module("sniffer",
		fx.Provide(
			service.NewPrices,
			service.NewClient,
			// карта цен как источник последних котировок для остальных модулей
			func(p *service.Prices) candles.PriceSource {
				return p
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, c *service.Client, ctx context.Context) {
			runCtx, cancel := context.WithCancel(ctx)
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go c.Run(runCtx)
					return nil
				},
				OnStop: func(_ context.Context) error {
					cancel()
					return nil
				},
			})
		}),
	)
}
