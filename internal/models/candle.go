package models

import "time"

// Candle — свеча OHLC за фиксированный интервал.
// Последовательности свечей всегда упорядочены по времени, самая свежая — последняя.
type Candle struct {
	Time  time.Time `json:"time"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// Bullish — свеча закрылась выше открытия.
func (c Candle) Bullish() bool { return c.Close > c.Open }

// Bearish — свеча закрылась ниже открытия.
func (c Candle) Bearish() bool { return c.Close < c.Open }

// HeikenClose — сглаженное закрытие Heiken-Ashi: среднее OHLC.
func (c Candle) HeikenClose() float64 {
	return (c.Open + c.High + c.Low + c.Close) / 4
}
