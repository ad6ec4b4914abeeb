package runner

import (
	"go.uber.org/fx"

	"signal_bot/internal/candles"
	"signal_bot/internal/chart"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/strategy"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			strategy.NewBank,
			func(cfg *config.Config) Config {
				return Config{
					Interval:      cfg.Signals.Interval,
					CandleWindow:  cfg.Signals.CandleWindow,
					MinConfidence: cfg.Signals.MinConfidence,
				}
			},
			// свечи пока мок поверх живых котировок
			func(prices candles.PriceSource) candles.Source {
				return candles.NewMock(prices)
			},
			func(cfg *config.Config) Capturer {
				return chart.New(cfg.Chart.URL, cfg.Chart.Dir)
			},
			NewManager,
		),
	)
}
