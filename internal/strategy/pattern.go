package strategy

import "signal_bot/internal/models"

// CandleAnalysis — простой свечной предиктор: продолжение двух свечей подряд.
// Упрощённая альтернатива банку стратегий; канонический путь — Bank.Analyze.
func CandleAnalysis(cs []models.Candle) models.Decision {
	if len(cs) < 4 {
		return models.Decision{}
	}
	prev, cur := cs[len(cs)-2], cs[len(cs)-1]

	if cur.Bullish() && prev.Bullish() {
		return models.Decision{Direction: models.DirectionBuy, Confidence: 0.92, Reason: "candle-pattern"}
	}
	if cur.Bearish() && prev.Bearish() {
		return models.Decision{Direction: models.DirectionSell, Confidence: 0.91, Reason: "candle-pattern"}
	}
	return models.Decision{}
}
