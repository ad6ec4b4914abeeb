package service

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"signal_bot/internal/modules/config"
	health "signal_bot/internal/modules/health/service"
	"signal_bot/pkg/logger"
)

// socket.io поверх websocket: "2" — пинг, "3" — понг,
// "42[...]" — событие вида [имя, payload].
var (
	framePing  = []byte("2")
	framePong  = []byte("3")
	frameEvent = []byte("42")
)

type tickEvent struct {
	Asset string  `json:"asset"`
	Price float64 `json:"price"`
}

// Client слушает стрим котировок и держит карту последних цен.
// Любой обрыв соединения — переподключение через фиксированную паузу,
// наружу ошибки не отдаются и планировщик сигналов не блокируется.
type Client struct {
	url    string
	delay  time.Duration
	dialer *websocket.Dialer
	prices *Prices
	state  *health.State
}

func NewClient(cfg *config.Config, prices *Prices, state *health.State) *Client {
	return &Client{
		url:    cfg.Sniffer.URL,
		delay:  cfg.Sniffer.ReconnectDelay,
		dialer: &websocket.Dialer{},
		prices: prices,
		state:  state,
	}
}

func (c *Client) Run(ctx context.Context) {
	for {
		if err := c.listen(ctx); err != nil && ctx.Err() == nil {
			logger.Error("📡 sniffer: %v", err)
		}
		c.state.SetWSConnected(false)

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.delay):
		}
		logger.Info("🔄 sniffer: переподключение к %s", c.url)
	}
}

func (c *Client) listen(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return errors.Wrap(err, "dial")
	}
	defer func() { _ = conn.Close() }()

	// рвём блокирующий ReadMessage при отмене
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	c.state.SetWSConnected(true)
	logger.Info("✅ sniffer connected: %s", c.url)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return errors.Wrap(err, "read")
		}
		pong, tick := decodeFrame(msg)
		if pong != nil {
			_ = conn.WriteMessage(websocket.TextMessage, pong)
		}
		if tick != nil {
			c.prices.set(tick.Asset, tick.Price)
			c.state.TouchTick(time.Now())
		}
	}
}

// decodeFrame разбирает текстовый кадр: на пинг отвечаем понгом,
// из события "tick" достаём пару и цену. Всё остальное игнорируется.
func decodeFrame(msg []byte) (pong []byte, tick *tickEvent) {
	if bytes.Equal(msg, framePing) {
		return framePong, nil
	}
	if !bytes.HasPrefix(msg, frameEvent) {
		return nil, nil
	}

	var envelope []json.RawMessage
	if err := sonic.Unmarshal(msg[len(frameEvent):], &envelope); err != nil || len(envelope) < 2 {
		return nil, nil
	}

	var event string
	if err := sonic.Unmarshal(envelope[0], &event); err != nil || event != "tick" {
		return nil, nil
	}

	var t tickEvent
	if err := sonic.Unmarshal(envelope[1], &t); err != nil || t.Asset == "" || t.Price == 0 {
		return nil, nil
	}
	return nil, &t
}
