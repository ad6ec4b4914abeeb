package service

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"signal_bot/pkg/logger"
)

const (
	btnPairs   = "💱 Пары"
	btnSignal  = "📊 Запросить сигнал"
	btnStop    = "⏹ Стоп"
	btnHistory = "📜 История"
	btnPrice   = "💰 Цена"
	btnAdmin   = "👑 Админ-панель"
	btnBack    = "🔙 Назад"

	btnForex  = "Forex"
	btnCrypto = "Crypto"
)

func (t *Telegram) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	msg := update.Message
	chatID := msg.Chat.ID

	if t.users.IsBlocked(chatID) {
		if _, err := t.Send(ctx, chatID, "⛔ Вы заблокированы администратором."); err != nil {
			logger.Error("send to blocked user %d: %v", chatID, err)
		}
		return
	}

	name := ""
	if msg.From != nil {
		name = msg.From.UserName
	}
	t.users.Touch(chatID, name)

	// двухшаговые админские диалоги (ввод ID)
	if t.isAdmin(chatID) && t.handleAdminStep(ctx, chatID, msg.Text) {
		return
	}

	switch msg.Text {
	case "/start":
		t.sendMainMenu(ctx, chatID,
			"👋 Привет! Я бот торговых сигналов.\nВыбери пару и запроси сигнал.")

	case btnPairs:
		t.sendCategoryMenu(ctx, chatID)

	case btnForex:
		t.sendPairMenu(ctx, chatID, t.pairs.Forex)

	case btnCrypto:
		t.sendPairMenu(ctx, chatID, t.pairs.Crypto)

	case btnBack:
		t.sendMainMenu(ctx, chatID, "Главное меню:")

	case btnSignal:
		t.startSignals(ctx, chatID)

	case btnStop:
		if t.manager.StopForUser(chatID) {
			t.reply(ctx, chatID, "⏹ Цикл сигналов остановлен.")
		} else {
			t.reply(ctx, chatID, "ℹ️ Активного цикла сигналов нет.")
		}

	case btnHistory:
		t.sendHistory(ctx, chatID)

	case btnPrice:
		t.sendPrice(ctx, chatID)

	case btnAdmin:
		if t.isAdmin(chatID) {
			t.sendAdminMenu(ctx, chatID)
		} else {
			t.reply(ctx, chatID, "⛔ Доступно только администратору.")
		}

	case btnAdminUsers:
		if t.isAdmin(chatID) {
			t.sendUserList(ctx, chatID)
		}

	case btnAdminBlock:
		if t.isAdmin(chatID) {
			t.users.SetStep(chatID, stepAdminBlock)
			t.reply(ctx, chatID, "Введи ID пользователя для блокировки:")
		}

	case btnAdminUnblock:
		if t.isAdmin(chatID) {
			t.users.SetStep(chatID, stepAdminUnblock)
			t.reply(ctx, chatID, "Введи ID пользователя для разблокировки:")
		}

	default:
		if t.pairs.Contains(msg.Text) {
			t.users.SetPair(chatID, msg.Text)
			t.reply(ctx, chatID, "✅ Пара выбрана: "+msg.Text)
			return
		}
		t.reply(ctx, chatID, "🤔 Не понимаю. Используй кнопки меню.")
	}
}

func (t *Telegram) startSignals(ctx context.Context, chatID int64) {
	pair, ok := t.users.Selected(chatID)
	if !ok {
		t.reply(ctx, chatID, "⚠️ Сначала выбери пару: 💱 Пары")
		return
	}
	t.reply(ctx, chatID, "📊 Анализирую рынок, подождите...")
	// циклы живут от корневого контекста приложения, не от контекста апдейта
	t.manager.StartForUser(t.rootCtx, chatID, pair, t)
}

func (t *Telegram) sendHistory(ctx context.Context, chatID int64) {
	entries, err := t.history.Recent(ctx, chatID, 10)
	if err != nil {
		logger.Error("history for %d: %v", chatID, err)
		t.reply(ctx, chatID, "❌ Не удалось получить историю.")
		return
	}
	t.reply(ctx, chatID, formatHistory(entries))
}

func (t *Telegram) sendPrice(ctx context.Context, chatID int64) {
	pair, ok := t.users.Selected(chatID)
	if !ok {
		t.reply(ctx, chatID, "⚠️ Сначала выбери пару: 💱 Пары")
		return
	}
	price, ok := t.prices.Latest(pair)
	if !ok {
		t.reply(ctx, chatID, "⏳ Цена по "+pair+" ещё не пришла от биржи.")
		return
	}
	if _, err := t.SendF(ctx, chatID, "💰 %s: %.5f", pair, price); err != nil {
		logger.Error("send price to %d: %v", chatID, err)
	}
}

func (t *Telegram) reply(ctx context.Context, chatID int64, text string) {
	if _, err := t.Send(ctx, chatID, text); err != nil {
		logger.Error("send to %d: %v", chatID, err)
	}
}

func (t *Telegram) sendMainMenu(ctx context.Context, chatID int64, text string) {
	rows := [][]tgbotapi.KeyboardButton{
		{
			tgbotapi.NewKeyboardButton(btnPairs),
			tgbotapi.NewKeyboardButton(btnSignal),
		},
		{
			tgbotapi.NewKeyboardButton(btnStop),
			tgbotapi.NewKeyboardButton(btnHistory),
			tgbotapi.NewKeyboardButton(btnPrice),
		},
	}
	if t.isAdmin(chatID) {
		rows = append(rows, []tgbotapi.KeyboardButton{
			tgbotapi.NewKeyboardButton(btnAdmin),
		})
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(rows...)
	if _, err := t.SendMessage(ctx, msg); err != nil {
		logger.Error("send menu to %d: %v", chatID, err)
	}
}

func (t *Telegram) sendCategoryMenu(ctx context.Context, chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Выбери категорию:")
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnForex),
			tgbotapi.NewKeyboardButton(btnCrypto),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBack),
		),
	)
	if _, err := t.SendMessage(ctx, msg); err != nil {
		logger.Error("send categories to %d: %v", chatID, err)
	}
}

func (t *Telegram) sendPairMenu(ctx context.Context, chatID int64, pairs []string) {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(pairs)/2+2)
	row := make([]tgbotapi.KeyboardButton, 0, 2)
	for _, p := range pairs {
		row = append(row, tgbotapi.NewKeyboardButton(p))
		if len(row) == 2 {
			rows = append(rows, row)
			row = make([]tgbotapi.KeyboardButton, 0, 2)
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(btnBack)})

	msg := tgbotapi.NewMessage(chatID, "Выбери пару:")
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(rows...)
	if _, err := t.SendMessage(ctx, msg); err != nil {
		logger.Error("send pairs to %d: %v", chatID, err)
	}
}
