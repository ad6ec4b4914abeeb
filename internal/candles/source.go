package candles

import (
	"context"

	"github.com/pkg/errors"

	"signal_bot/internal/models"
)

// ErrDataUnavailable — источник не смог отдать свечи за инструмент.
var ErrDataUnavailable = errors.New("candles: data unavailable")

// Source отдаёт последние limit свечей по инструменту,
// упорядоченные по времени, самая свежая — последняя.
type Source interface {
	Recent(ctx context.Context, pair string, limit int) ([]models.Candle, error)
}
