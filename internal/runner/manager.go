package runner

import (
	"context"
	"sync"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"signal_bot/internal/candles"
	"signal_bot/internal/history"
	"signal_bot/internal/models"
	"signal_bot/internal/strategy"
	"signal_bot/pkg/logger"
)

// Notifier — доставка сообщений пользователю. Ошибки доставки цикл не валят.
type Notifier interface {
	Notify(ctx context.Context, userID int64, text string) error
	NotifySignal(ctx context.Context, userID int64, dec models.Decision) error
	NotifyChart(ctx context.Context, userID int64, caption, path string) error
}

// SelectionStore — текущая выбранная пара пользователя; пишет телеграм-хендлер.
type SelectionStore interface {
	Selected(userID int64) (string, bool)
}

// Capturer — снимок графика инструмента; неудача не фатальна.
type Capturer interface {
	Capture(ctx context.Context, pair string) (string, error)
}

// Config — параметры цикла сигналов.
type Config struct {
	Interval      time.Duration // пауза между тиками
	CandleWindow  int           // сколько свечей анализируем за тик
	MinConfidence float64       // порог уведомления о сигнале
}

// Manager владеет циклами сигналов всех пользователей.
type Manager struct {
	cfg       Config
	bank      *strategy.Bank
	src       candles.Source
	chart     Capturer
	selection SelectionStore
	history   history.Store

	mu    sync.Mutex
	loops map[int64]*Loop
}

func NewManager(
	cfg Config,
	bank *strategy.Bank,
	src candles.Source,
	chart Capturer,
	selection SelectionStore,
	hist history.Store,
) *Manager {
	return &Manager{
		cfg:       cfg,
		bank:      bank,
		src:       src,
		chart:     chart,
		selection: selection,
		history:   hist,
		loops:     make(map[int64]*Loop),
	}
}

// StartForUser запускает цикл сигналов пользователя по паре.
// Если цикл уже работает — сначала отменяем его и ждём завершения,
// только потом регистрируем новый: два цикла одного пользователя
// не пересекаются даже на мгновение.
func (m *Manager) StartForUser(ctx context.Context, userID int64, pair string, n Notifier) {
	m.mu.Lock()
	// пока мы ждали prev.done без мьютекса, слот мог занять
	// конкурентный StartForUser — перепроверяем до победного
	for {
		prev, ok := m.loops[userID]
		if !ok {
			break
		}
		delete(m.loops, userID)
		m.mu.Unlock()
		prev.cancel()
		<-prev.done
		m.mu.Lock()
	}

	loopCtx, cancel := context.WithCancel(ctx)
	l := &Loop{
		userID: userID,
		pair:   pair,
		cancel: cancel,
		done:   make(chan struct{}),
		state:  StateRunning,
	}
	m.loops[userID] = l
	m.mu.Unlock()

	go func() {
		defer close(l.done)
		defer cancel()

		m.run(loopCtx, l, n)

		m.mu.Lock()
		if m.loops[userID] == l {
			delete(m.loops, userID)
		}
		m.mu.Unlock()
	}()
}

// StopForUser гасит цикл пользователя и ждёт его завершения.
func (m *Manager) StopForUser(userID int64) bool {
	m.mu.Lock()
	l, ok := m.loops[userID]
	if !ok {
		m.mu.Unlock()
		return false
	}
	delete(m.loops, userID)
	m.mu.Unlock()

	l.cancel()
	<-l.done
	return true
}

// Running — есть ли активный цикл у пользователя.
func (m *Manager) Running(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.loops[userID]
	return ok
}

// Active — сколько циклов работает сейчас.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.loops)
}

func (m *Manager) run(ctx context.Context, l *Loop, n Notifier) {
	logger.Info("▶️ signal loop started: user=%d pair=%s", l.userID, l.pair)

	for {
		if err := m.tick(ctx, l, n); err != nil {
			if ctx.Err() != nil {
				// отмена — не ошибка, просто штатное завершение
				l.state = StateCancelled
				logger.Info("⏹ signal loop cancelled: user=%d pair=%s", l.userID, l.pair)
				return
			}
			l.state = StateErrored
			logger.Error("❌ signal loop error: user=%d pair=%s: %v", l.userID, l.pair, err)
			_ = n.Notify(ctx, l.userID, "❌ Цикл сигналов остановлен из-за ошибки. Запросите сигнал ещё раз.")
			return
		}

		select {
		case <-ctx.Done():
			l.state = StateCancelled
			logger.Info("⏹ signal loop cancelled: user=%d pair=%s", l.userID, l.pair)
			return
		case <-time.After(m.cfg.Interval):
		}

		// пользователь мог переключить пару, пока мы спали
		cur, ok := m.selection.Selected(l.userID)
		if !ok || cur != l.pair {
			l.state = StateEndedBySelection
			logger.Info("⏹ signal loop ended, pair changed: user=%d %s -> %s", l.userID, l.pair, cur)
			return
		}
	}
}

// tick — один проход: свечи -> банк стратегий -> уведомления -> график.
// Ошибка получения свечей фатальна для цикла (ретраев нет);
// неудачный снимок графика и ошибки доставки только логируются.
func (m *Manager) tick(ctx context.Context, l *Loop, n Notifier) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "signal_tick")
	defer span.Finish()
	span.SetTag("user_id", l.userID)
	span.SetTag("pair", l.pair)

	cs, err := m.src.Recent(ctx, l.pair, m.cfg.CandleWindow)
	if err != nil {
		return errors.Wrap(err, "get candles")
	}

	dec := m.bank.Analyze(cs)
	dec.Pair = l.pair
	dec.Time = time.Now().UTC()
	span.SetTag("direction", string(dec.Direction))

	if dec.Confidence >= m.cfg.MinConfidence {
		if err := n.NotifySignal(ctx, l.userID, dec); err != nil {
			logger.Error("signal delivery failed: user=%d: %v", l.userID, err)
		}
		if err := m.history.Append(ctx, l.userID, dec); err != nil {
			logger.Error("history append failed: user=%d: %v", l.userID, err)
		}
	} else {
		if err := n.Notify(ctx, l.userID, "⚠️ Анализирую рынок, сильного сигнала пока нет..."); err != nil {
			logger.Error("notify failed: user=%d: %v", l.userID, err)
		}
	}

	path, err := m.chart.Capture(ctx, l.pair)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Error("📸 chart capture failed: pair=%s: %v", l.pair, err)
		return nil
	}
	if err := n.NotifyChart(ctx, l.userID, "📊 Обновление графика:", path); err != nil {
		logger.Error("chart delivery failed: user=%d: %v", l.userID, err)
	}
	return nil
}
