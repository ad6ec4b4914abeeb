package strategy

import "signal_bot/internal/models"

// DoubleBollinger — возврат от границ канала mean ± 2σ по закрытиям окна.
// Закрытие у верхней границы — перекупленность (SELL), у нижней — BUY.
type DoubleBollinger struct{}

func NewDoubleBollinger() *DoubleBollinger { return &DoubleBollinger{} }

func (s *DoubleBollinger) Name() string    { return "double-bollinger" }
func (s *DoubleBollinger) MinCandles() int { return 5 }

func (s *DoubleBollinger) Evaluate(cs []models.Candle) (models.Vote, bool) {
	if len(cs) < s.MinCandles() {
		return models.Vote{}, false
	}
	window := last(closes(cs), s.MinCandles())
	m := mean(window)
	sd := stddev(window)
	upper := m + 2*sd
	lower := m - 2*sd

	px := window[len(window)-1]
	if px >= upper {
		return models.Vote{Direction: models.DirectionSell, Confidence: 0.93, Reason: s.Name()}, true
	}
	if px <= lower {
		return models.Vote{Direction: models.DirectionBuy, Confidence: 0.93, Reason: s.Name()}, true
	}
	return models.Vote{}, false
}
