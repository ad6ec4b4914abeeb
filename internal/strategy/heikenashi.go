package strategy

import "signal_bot/internal/models"

// HeikenAshi — монотонность сглаженных закрытий Heiken-Ashi за три свечи.
type HeikenAshi struct{}

func NewHeikenAshi() *HeikenAshi { return &HeikenAshi{} }

func (s *HeikenAshi) Name() string    { return "heiken-ashi" }
func (s *HeikenAshi) MinCandles() int { return 3 }

func (s *HeikenAshi) Evaluate(cs []models.Candle) (models.Vote, bool) {
	if len(cs) < s.MinCandles() {
		return models.Vote{}, false
	}
	tail := cs[len(cs)-3:]
	a, b, c := tail[0].HeikenClose(), tail[1].HeikenClose(), tail[2].HeikenClose()

	if a < b && b < c {
		return models.Vote{Direction: models.DirectionBuy, Confidence: 0.92, Reason: s.Name()}, true
	}
	if a > b && b > c {
		return models.Vote{Direction: models.DirectionSell, Confidence: 0.92, Reason: s.Name()}, true
	}
	return models.Vote{}, false
}
