package strategy

import "signal_bot/internal/models"

// EMACross — пересечение быстрой и медленной средних
// (здесь простые средние за 5 и 20 закрытий, без экспоненциального сглаживания).
type EMACross struct{}

func NewEMACross() *EMACross { return &EMACross{} }

func (s *EMACross) Name() string    { return "ema-cross" }
func (s *EMACross) MinCandles() int { return 20 }

func (s *EMACross) Evaluate(cs []models.Candle) (models.Vote, bool) {
	if len(cs) < s.MinCandles() {
		return models.Vote{}, false
	}
	px := closes(cs)
	fast := mean(last(px, 5))
	slow := mean(last(px, 20))

	if fast > slow {
		return models.Vote{Direction: models.DirectionBuy, Confidence: 0.95, Reason: s.Name()}, true
	}
	if fast < slow {
		return models.Vote{Direction: models.DirectionSell, Confidence: 0.95, Reason: s.Name()}, true
	}
	return models.Vote{}, false
}
