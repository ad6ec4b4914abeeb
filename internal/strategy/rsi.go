package strategy

import "signal_bot/internal/models"

// RSIFilter — классический 14-периодный RSI по закрытиям.
// RSI > 70 — перекупленность (SELL), RSI < 30 — перепроданность (BUY).
type RSIFilter struct{}

func NewRSIFilter() *RSIFilter { return &RSIFilter{} }

func (s *RSIFilter) Name() string    { return "rsi-filter" }
func (s *RSIFilter) MinCandles() int { return 14 }

func (s *RSIFilter) Evaluate(cs []models.Candle) (models.Vote, bool) {
	if len(cs) < s.MinCandles() {
		return models.Vote{}, false
	}
	window := last(closes(cs), s.MinCandles())

	var gain, loss float64
	for i := 1; i < len(window); i++ {
		change := window[i] - window[i-1]
		if change > 0 {
			gain += change
		} else {
			loss -= change
		}
	}
	n := float64(len(window) - 1)
	avgGain := gain / n
	avgLoss := loss / n
	// пол по убыткам, чтобы не делить на ноль
	if avgLoss < 0.01 {
		avgLoss = 0.01
	}

	rs := avgGain / avgLoss
	rsi := 100 - 100/(1+rs)

	if rsi > 70 {
		return models.Vote{Direction: models.DirectionSell, Confidence: 0.91, Reason: s.Name()}, true
	}
	if rsi < 30 {
		return models.Vote{Direction: models.DirectionBuy, Confidence: 0.91, Reason: s.Name()}, true
	}
	return models.Vote{}, false
}
