package service

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"signal_bot/internal/candles"
	"signal_bot/internal/history"
	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/runner"
	"signal_bot/internal/users"
	"signal_bot/pkg/logger"
)

// Telegram — фронтенд бота: меню, выбор пары, запуск циклов сигналов.
type Telegram struct {
	bot     *tgbotapi.BotAPI
	cfg     *config.Config
	users   *users.Store
	manager *runner.Manager
	history history.Store
	prices  candles.PriceSource
	pairs   Catalog

	// живёт от старта приложения; из него растут контексты циклов сигналов
	rootCtx context.Context
}

func NewTelegram(
	cfg *config.Config,
	store *users.Store,
	manager *runner.Manager,
	hist history.Store,
	prices candles.PriceSource,
	pairs Catalog,
) (*Telegram, error) {
	b, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}

	return &Telegram{
		bot:     b,
		cfg:     cfg,
		users:   store,
		manager: manager,
		history: hist,
		prices:  prices,
		pairs:   pairs,
	}, nil
}

func (t *Telegram) Send(ctx context.Context, chatID int64, msg string) (tgbotapi.Message, error) {
	return t.bot.Send(tgbotapi.NewMessage(chatID, msg))
}

func (t *Telegram) SendF(ctx context.Context, chatID int64, format string, args ...any) (tgbotapi.Message, error) {
	return t.Send(ctx, chatID, fmt.Sprintf(format, args...))
}

func (t *Telegram) SendMessage(_ context.Context, message tgbotapi.MessageConfig) (tgbotapi.Message, error) {
	return t.bot.Send(message)
}

// Notify — runner.Notifier: обычный текст.
func (t *Telegram) Notify(ctx context.Context, userID int64, text string) error {
	_, err := t.Send(ctx, userID, text)
	return err
}

// NotifySignal — runner.Notifier: карточка найденного сигнала.
func (t *Telegram) NotifySignal(ctx context.Context, userID int64, dec models.Decision) error {
	msg := tgbotapi.NewMessage(userID, formatDecision(dec))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := t.bot.Send(msg); err != nil {
		return err
	}
	_, err := t.Send(ctx, userID, "✅ Сигнал найден!")
	return err
}

// NotifyChart — runner.Notifier: снимок графика файлом.
func (t *Telegram) NotifyChart(_ context.Context, userID int64, caption, path string) error {
	photo := tgbotapi.NewPhoto(userID, tgbotapi.FilePath(path))
	photo.Caption = caption
	_, err := t.bot.Send(photo)
	return err
}

// Start — long-polling обновлений до отмены контекста.
func (t *Telegram) Start(ctx context.Context) {
	t.rootCtx = ctx

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)

	logger.Info("🤖 telegram bot started: @%s", t.bot.Self.UserName)
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			t.handleUpdate(ctx, update)
		}
	}
}

func (t *Telegram) Stop() {
	t.bot.StopReceivingUpdates()
}
