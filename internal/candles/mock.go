package candles

import (
	"context"
	"time"

	"signal_bot/internal/models"
)

const defaultBase = 1.1000

// PriceSource — последняя известная цена инструмента (снифер живых котировок).
type PriceSource interface {
	Latest(asset string) (float64, bool)
}

// Mock — синтетические 30-секундные свечи с плавным ростом от базовой цены.
// База берётся из живого стрима, если цена по инструменту уже известна.
// Заменить на реальные свечи с биржи, когда появится исторический фид.
type Mock struct {
	prices   PriceSource
	interval time.Duration
}

func NewMock(prices PriceSource) *Mock {
	return &Mock{prices: prices, interval: 30 * time.Second}
}

func (m *Mock) Recent(_ context.Context, pair string, limit int) ([]models.Candle, error) {
	if limit <= 0 {
		return nil, ErrDataUnavailable
	}

	base := defaultBase
	if m.prices != nil {
		if px, ok := m.prices.Latest(pair); ok && px > 0 {
			base = px
		}
	}

	now := time.Now().UTC()
	out := make([]models.Candle, 0, limit)
	for i := 0; i < limit; i++ {
		step := 0.001 * float64(i)
		out = append(out, models.Candle{
			Time:  now.Add(-time.Duration(limit-1-i) * m.interval),
			Open:  base + step,
			High:  base + 0.002 + step,
			Low:   base - 0.001 + step,
			Close: base + 0.0015 + step,
		})
	}
	return out, nil
}
