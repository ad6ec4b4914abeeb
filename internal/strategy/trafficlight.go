package strategy

import "signal_bot/internal/models"

// TrafficLight — три последние свечи подряд в одну сторону.
type TrafficLight struct{}

func NewTrafficLight() *TrafficLight { return &TrafficLight{} }

func (s *TrafficLight) Name() string    { return "traffic-light" }
func (s *TrafficLight) MinCandles() int { return 3 }

func (s *TrafficLight) Evaluate(cs []models.Candle) (models.Vote, bool) {
	if len(cs) < s.MinCandles() {
		return models.Vote{}, false
	}
	tail := cs[len(cs)-3:]

	allBull, allBear := true, true
	for _, c := range tail {
		allBull = allBull && c.Bullish()
		allBear = allBear && c.Bearish()
	}

	if allBull {
		return models.Vote{Direction: models.DirectionBuy, Confidence: 0.94, Reason: s.Name()}, true
	}
	if allBear {
		return models.Vote{Direction: models.DirectionSell, Confidence: 0.94, Reason: s.Name()}, true
	}
	return models.Vote{}, false
}
