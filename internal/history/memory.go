package history

import (
	"context"
	"sync"
	"time"

	"signal_bot/internal/models"
)

const memoryKeep = 50

// Memory — история в памяти; используется, когда postgres не сконфигурирован.
type Memory struct {
	mu   sync.RWMutex
	data map[int64][]Entry
}

func NewMemory() *Memory {
	return &Memory{data: make(map[int64][]Entry)}
}

func (m *Memory) Append(_ context.Context, userID int64, dec models.Decision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := append(m.data[userID], Entry{
		UserID:    userID,
		Decision:  dec,
		CreatedAt: time.Now().UTC(),
	})
	if len(entries) > memoryKeep {
		entries = entries[len(entries)-memoryKeep:]
	}
	m.data[userID] = entries
	return nil
}

// Recent — последние limit записей, свежие первыми.
func (m *Memory) Recent(_ context.Context, userID int64, limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := m.data[userID]
	if limit <= 0 || limit > len(entries) {
		limit = len(entries)
	}
	out := make([]Entry, 0, limit)
	for i := len(entries) - 1; i >= len(entries)-limit; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}
