package models

// UserState хранит состояние пользователя бота: выбранную пару и шаг диалога.
type UserState struct {
	UserID int64  `json:"user_id"` // Telegram chat/user ID
	Name   string `json:"name"`
	Pair   string `json:"pair"` // выбранный инструмент, "" если не выбран
	Step   string `json:"step"` // шаг диалога (ожидание ID для блокировки и т.п.)
}
