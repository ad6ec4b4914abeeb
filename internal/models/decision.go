package models

import "time"

// Direction как в раннере: "BUY"/"SELL" или пустая строка, если сигнала нет.
type Direction string

const (
	DirectionNone Direction = ""
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
)

// Vote — мнение одной стратегии: направление + уверенность [0,1].
type Vote struct {
	Direction  Direction
	Confidence float64
	Reason     string
}

// Decision — агрегированный результат одного тика анализа.
// Инвариант: Direction == DirectionNone тогда и только тогда, когда Confidence == 0.
type Decision struct {
	Direction  Direction `json:"direction"`
	Confidence float64   `json:"confidence"`
	Reason     string    `json:"reason,omitempty"`
	Pair       string    `json:"pair"`
	Time       time.Time `json:"time"`
}

// None — пустое решение: голосов нет либо уверенность ниже порога.
func (d Decision) None() bool { return d.Direction == DirectionNone }
