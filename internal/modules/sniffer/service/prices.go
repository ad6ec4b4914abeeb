package service

import "sync"

// Prices — последняя известная цена по инструменту из живого стрима.
// Писатель один (читающий цикл снифера), читателей много.
type Prices struct {
	mu   sync.RWMutex
	data map[string]float64
}

func NewPrices() *Prices {
	return &Prices{data: make(map[string]float64)}
}

func (p *Prices) set(asset string, price float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[asset] = price
}

// Latest — цена инструмента; вторым значением — была ли она вообще получена.
// Свежесть не гарантируется: это просто последнее, что видел стрим.
func (p *Prices) Latest(asset string) (float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	px, ok := p.data[asset]
	return px, ok
}
