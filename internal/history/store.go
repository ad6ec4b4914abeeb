package history

import (
	"context"
	"time"

	"signal_bot/internal/models"
)

// Entry — одно сохранённое решение из цикла сигналов.
type Entry struct {
	UserID    int64
	Decision  models.Decision
	CreatedAt time.Time
}

// Store — история сигналов пользователя; пишет планировщик, читает меню «История».
type Store interface {
	Append(ctx context.Context, userID int64, dec models.Decision) error
	Recent(ctx context.Context, userID int64, limit int) ([]Entry, error)
}
