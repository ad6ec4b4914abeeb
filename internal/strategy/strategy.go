package strategy

import (
	"math"

	"signal_bot/internal/models"
)

// MinConfidence — порог уверенности, ниже которого решение не отдаётся наружу.
const MinConfidence = 0.90

// Strategy — независимый предиктор по последовательности свечей.
// Если свечей меньше MinCandles, стратегия не голосует.
type Strategy interface {
	Name() string
	MinCandles() int
	Evaluate(candles []models.Candle) (models.Vote, bool)
}

// Bank — фиксированный набор стратегий. Порядок регистрации стабильный:
// он же разрешает ничью по уверенности внутри выигравшей стороны.
type Bank struct {
	strategies []Strategy
}

// NewBank — канонический банк из семи стратегий.
func NewBank() *Bank {
	return NewBankWith(
		NewRedLine(),
		NewDoubleBollinger(),
		NewTrafficLight(),
		NewRSIFilter(),
		NewEMACross(),
		NewMACD(),
		NewHeikenAshi(),
	)
}

// NewBankWith — банк из произвольного набора (для тестов и экспериментов).
func NewBankWith(ss ...Strategy) *Bank {
	return &Bank{strategies: ss}
}

// Analyze прогоняет все стратегии по одной последовательности свечей
// и сводит голоса в одно решение:
//  1. большинство выигрывает, при равенстве — BUY;
//  2. внутри выигравшей стороны берём голос с максимальной уверенностью,
//     при равной уверенности — первый по порядку регистрации;
//  3. если уверенность ниже порога, решения нет.
func (b *Bank) Analyze(candles []models.Candle) models.Decision {
	var buy, sell []models.Vote
	for _, s := range b.strategies {
		if len(candles) < s.MinCandles() {
			continue
		}
		v, ok := s.Evaluate(candles)
		if !ok {
			continue
		}
		switch v.Direction {
		case models.DirectionBuy:
			buy = append(buy, v)
		case models.DirectionSell:
			sell = append(sell, v)
		}
	}

	if len(buy) == 0 && len(sell) == 0 {
		return models.Decision{}
	}

	winner := buy
	if len(sell) > len(buy) {
		winner = sell
	}

	best := winner[0]
	for _, v := range winner[1:] {
		if v.Confidence > best.Confidence {
			best = v
		}
	}

	if best.Confidence < MinConfidence {
		return models.Decision{}
	}

	return models.Decision{
		Direction:  best.Direction,
		Confidence: best.Confidence,
		Reason:     best.Reason,
	}
}

// вспомогательные

func closes(cs []models.Candle) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.Close
	}
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	acc := 0.0
	for _, x := range xs {
		d := x - m
		acc += d * d
	}
	return math.Sqrt(acc / float64(len(xs)))
}

func last(xs []float64, n int) []float64 {
	if len(xs) <= n {
		return xs
	}
	return xs[len(xs)-n:]
}
