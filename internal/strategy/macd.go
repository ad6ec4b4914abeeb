package strategy

import "signal_bot/internal/models"

// MACD (упрощённый): линия MACD = mean(12) - mean(26) по закрытиям.
// Сигнальная линия пока без отдельного сглаживания и равна самой линии MACD,
// поэтому ветки кроссовера не срабатывают. Сохранено как есть; настоящая
// EMA-сигнальная линия — осознанно отложенное изменение поведения.
type MACD struct{}

func NewMACD() *MACD { return &MACD{} }

func (s *MACD) Name() string    { return "macd" }
func (s *MACD) MinCandles() int { return 26 }

func (s *MACD) Evaluate(cs []models.Candle) (models.Vote, bool) {
	if len(cs) < s.MinCandles() {
		return models.Vote{}, false
	}
	px := closes(cs)
	macd := mean(last(px, 12)) - mean(last(px, 26))
	signal := macd

	if macd > signal {
		return models.Vote{Direction: models.DirectionBuy, Confidence: 0.94, Reason: s.Name()}, true
	}
	if macd < signal {
		return models.Vote{Direction: models.DirectionSell, Confidence: 0.94, Reason: s.Name()}, true
	}
	return models.Vote{}, false
}
