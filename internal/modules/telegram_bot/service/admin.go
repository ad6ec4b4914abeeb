package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"signal_bot/pkg/logger"
)

const (
	btnAdminUsers   = "👥 Пользователи"
	btnAdminBlock   = "🚫 Заблокировать"
	btnAdminUnblock = "♻️ Разблокировать"

	stepAdminBlock   = "admin_block"
	stepAdminUnblock = "admin_unblock"
)

func (t *Telegram) isAdmin(chatID int64) bool {
	return t.cfg.Telegram.AdminID != 0 && chatID == t.cfg.Telegram.AdminID
}

// handleAdminStep — второй шаг диалогов блокировки: ждём числовой ID.
// Возвращает true, если сообщение было обработано как ввод диалога.
func (t *Telegram) handleAdminStep(ctx context.Context, chatID int64, text string) bool {
	step := t.users.Step(chatID)
	if step != stepAdminBlock && step != stepAdminUnblock {
		return false
	}
	if text == btnBack {
		t.users.SetStep(chatID, "")
		t.sendAdminMenu(ctx, chatID)
		return true
	}

	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		t.reply(ctx, chatID, "⚠️ Нужен числовой ID пользователя.")
		return true
	}
	t.users.SetStep(chatID, "")

	switch step {
	case stepAdminBlock:
		if id == t.cfg.Telegram.AdminID {
			t.reply(ctx, chatID, "⚠️ Себя заблокировать нельзя.")
			return true
		}
		t.manager.StopForUser(id)
		t.users.Block(id)
		logger.Info("👑 admin blocked user %d", id)
		t.reply(ctx, chatID, fmt.Sprintf("🚫 Пользователь %d заблокирован.", id))
	case stepAdminUnblock:
		t.users.Unblock(id)
		logger.Info("👑 admin unblocked user %d", id)
		t.reply(ctx, chatID, fmt.Sprintf("♻️ Пользователь %d разблокирован.", id))
	}
	return true
}

func (t *Telegram) sendAdminMenu(ctx context.Context, chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "👑 Админ-панель:")
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAdminUsers),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAdminBlock),
			tgbotapi.NewKeyboardButton(btnAdminUnblock),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBack),
		),
	)
	if _, err := t.SendMessage(ctx, msg); err != nil {
		logger.Error("send admin menu to %d: %v", chatID, err)
	}
}

func (t *Telegram) sendUserList(ctx context.Context, chatID int64) {
	ids := t.users.All()
	if len(ids) == 0 {
		t.reply(ctx, chatID, "👥 Пользователей пока нет.")
		return
	}
	var b strings.Builder
	b.WriteString("👥 Пользователи:\n")
	for _, id := range ids {
		fmt.Fprintf(&b, "- %d", id)
		if t.manager.Running(id) {
			b.WriteString(" ▶️")
		}
		b.WriteString("\n")
	}
	t.reply(ctx, chatID, b.String())
}
