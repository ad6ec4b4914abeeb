package strategy

import "signal_bot/internal/models"

// RedLine — продолжение импульса: две последние свечи в одну сторону.
type RedLine struct{}

func NewRedLine() *RedLine { return &RedLine{} }

func (s *RedLine) Name() string    { return "red-line" }
func (s *RedLine) MinCandles() int { return 3 }

func (s *RedLine) Evaluate(cs []models.Candle) (models.Vote, bool) {
	if len(cs) < s.MinCandles() {
		return models.Vote{}, false
	}
	prev, cur := cs[len(cs)-2], cs[len(cs)-1]

	if cur.Bullish() && prev.Bullish() {
		return models.Vote{Direction: models.DirectionBuy, Confidence: 0.96, Reason: s.Name()}, true
	}
	if cur.Bearish() && prev.Bearish() {
		return models.Vote{Direction: models.DirectionSell, Confidence: 0.96, Reason: s.Name()}, true
	}
	return models.Vote{}, false
}
