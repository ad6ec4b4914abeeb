package runner

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"signal_bot/internal/candles"
	"signal_bot/internal/history"
	"signal_bot/internal/models"
	"signal_bot/internal/strategy"
	"signal_bot/internal/users"
)

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeNotifier) record(ev string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

func (f *fakeNotifier) Notify(_ context.Context, _ int64, text string) error {
	f.record("notify:" + text)
	return nil
}

func (f *fakeNotifier) NotifySignal(_ context.Context, _ int64, dec models.Decision) error {
	f.record("signal:" + string(dec.Direction))
	return nil
}

func (f *fakeNotifier) NotifyChart(_ context.Context, _ int64, _, path string) error {
	f.record("chart:" + path)
	return nil
}

func (f *fakeNotifier) count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, ev := range f.events {
		if strings.HasPrefix(ev, prefix) {
			n++
		}
	}
	return n
}

// три бычьи свечи — red-line стабильно даёт BUY 0.96
type fakeSource struct {
	err error
}

func (f *fakeSource) Recent(_ context.Context, _ string, limit int) ([]models.Candle, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Candle, 0, limit)
	for i := 0; i < limit; i++ {
		base := 1.10 + 0.01*float64(i)
		out = append(out, models.Candle{
			Time: time.Now().UTC(), Open: base, High: base + 0.02, Low: base - 0.005, Close: base + 0.01,
		})
	}
	return out, nil
}

// общий упорядоченный журнал событий нескольких нотификаторов
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(ev string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

func (l *eventLog) count(prefix string) int {
	n := 0
	for _, ev := range l.snapshot() {
		if strings.HasPrefix(ev, prefix) {
			n++
		}
	}
	return n
}

// нотификатор с меткой цикла, пишущий в общий журнал
type taggedNotifier struct {
	tag string
	log *eventLog
}

func (n *taggedNotifier) Notify(_ context.Context, _ int64, _ string) error {
	n.log.add(n.tag + ":notify")
	return nil
}

func (n *taggedNotifier) NotifySignal(_ context.Context, _ int64, _ models.Decision) error {
	n.log.add(n.tag + ":signal")
	return nil
}

func (n *taggedNotifier) NotifyChart(_ context.Context, _ int64, _, _ string) error {
	n.log.add(n.tag + ":chart")
	return nil
}

// капчер, который висит до закрытия stall либо до отмены контекста
type stallingCapturer struct {
	log   *eventLog
	stall chan struct{}
}

func (c *stallingCapturer) Capture(ctx context.Context, pair string) (string, error) {
	select {
	case <-ctx.Done():
		c.log.add("capture-aborted")
		return "", ctx.Err()
	case <-c.stall:
		return "/tmp/" + pair + ".png", nil
	}
}

type fakeCapturer struct {
	fail bool
}

func (f *fakeCapturer) Capture(_ context.Context, pair string) (string, error) {
	if f.fail {
		return "", candles.ErrDataUnavailable
	}
	return "/tmp/" + pair + ".png", nil
}

func newTestManager(interval time.Duration, src candles.Source, capt Capturer, sel SelectionStore) *Manager {
	return NewManager(
		Config{Interval: interval, CandleWindow: 4, MinConfidence: 0.90},
		strategy.NewBank(),
		src,
		capt,
		sel,
		history.NewMemory(),
	)
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timeout: %s", msg)
}

func TestStartReplacesExistingLoop(t *testing.T) {
	store := users.NewStore()
	store.Touch(1, "")
	store.SetPair(1, "EURUSD_otc")

	log := &eventLog{}
	old := &taggedNotifier{tag: "old", log: log}
	repl := &taggedNotifier{tag: "new", log: log}

	// старый цикл зависает в снятии графика, пока его не отменят
	capt := &stallingCapturer{log: log, stall: make(chan struct{})}
	m := newTestManager(time.Hour, &fakeSource{}, capt, store)

	m.StartForUser(context.Background(), 1, "EURUSD_otc", old)
	waitFor(t, func() bool { return log.count("old:signal") == 1 }, "first loop first tick")

	// повторный запуск обязан дождаться завершения старого цикла
	// до первого тика нового
	m.StartForUser(context.Background(), 1, "EURUSD_otc", repl)
	waitFor(t, func() bool { return log.count("new:signal") >= 1 }, "second loop first tick")

	events := log.snapshot()
	aborted := -1
	for i, ev := range events {
		if ev == "capture-aborted" {
			aborted = i
			break
		}
	}
	if aborted == -1 {
		t.Fatalf("old loop was never cancelled: %v", events)
	}
	for i, ev := range events {
		if strings.HasPrefix(ev, "new:") && i < aborted {
			t.Fatalf("replacement ticked before old loop finished: %v", events)
		}
		if strings.HasPrefix(ev, "old:") && i > aborted {
			t.Fatalf("old loop ticked after cancellation: %v", events)
		}
	}

	if got := m.Active(); got != 1 {
		t.Fatalf("expected exactly one active loop, got %d", got)
	}

	if !m.StopForUser(1) {
		t.Fatalf("StopForUser must stop the active loop")
	}
	if m.Active() != 0 {
		t.Fatalf("expected no active loops after stop")
	}
	if m.StopForUser(1) {
		t.Fatalf("second stop must report no loop")
	}
}

func TestConcurrentStartsKeepSingleLoop(t *testing.T) {
	store := users.NewStore()
	store.Touch(1, "")
	store.SetPair(1, "EURUSD_otc")

	log := &eventLog{}
	capt := &stallingCapturer{log: log, stall: make(chan struct{})}
	m := newTestManager(5*time.Millisecond, &fakeSource{}, capt, store)

	// исходный цикл застревает в снятии графика
	m.StartForUser(context.Background(), 1, "EURUSD_otc", &taggedNotifier{tag: "seed", log: log})
	waitFor(t, func() bool { return log.count("seed:signal") == 1 }, "seed loop first tick")

	// два конкурентных перезапуска одного пользователя
	var wg sync.WaitGroup
	for _, n := range []*taggedNotifier{{tag: "a", log: log}, {tag: "b", log: log}} {
		wg.Add(1)
		go func(n *taggedNotifier) {
			defer wg.Done()
			m.StartForUser(context.Background(), 1, "EURUSD_otc", n)
		}(n)
	}
	wg.Wait()
	close(capt.stall)

	if got := m.Active(); got != 1 {
		t.Fatalf("expected exactly one active loop after concurrent starts, got %d", got)
	}
	if !m.StopForUser(1) {
		t.Fatalf("StopForUser must stop the surviving loop")
	}

	// осиротевших циклов нет: после остановки тики прекращаются
	before := log.count("a:signal") + log.count("b:signal")
	time.Sleep(50 * time.Millisecond)
	if after := log.count("a:signal") + log.count("b:signal"); after != before {
		t.Fatalf("orphaned loop kept ticking after stop: %d -> %d", before, after)
	}
}

func TestSelectionChangeEndsLoop(t *testing.T) {
	store := users.NewStore()
	store.Touch(1, "")
	store.SetPair(1, "EURUSD_otc")

	n := &fakeNotifier{}
	m := newTestManager(20*time.Millisecond, &fakeSource{}, &fakeCapturer{}, store)

	m.StartForUser(context.Background(), 1, "EURUSD_otc", n)
	waitFor(t, func() bool { return n.count("signal:") >= 1 }, "first tick")

	store.SetPair(1, "BTCUSD_otc")
	waitFor(t, func() bool { return m.Active() == 0 }, "loop must end after pair change")

	// новых тиков быть не должно
	before := n.count("signal:")
	time.Sleep(100 * time.Millisecond)
	if after := n.count("signal:"); after != before {
		t.Fatalf("loop ticked after selection change: %d -> %d", before, after)
	}
}

func TestDataUnavailableEndsLoop(t *testing.T) {
	store := users.NewStore()
	store.Touch(1, "")
	store.SetPair(1, "EURUSD_otc")

	n := &fakeNotifier{}
	m := newTestManager(20*time.Millisecond, &fakeSource{err: candles.ErrDataUnavailable}, &fakeCapturer{}, store)

	m.StartForUser(context.Background(), 1, "EURUSD_otc", n)
	waitFor(t, func() bool { return m.Active() == 0 }, "loop must end on candle fetch failure")

	if got := n.count("notify:❌"); got != 1 {
		t.Fatalf("expected one error notice, got %d (%v)", got, n.events)
	}
	if n.count("signal:") != 0 || n.count("chart:") != 0 {
		t.Fatalf("failed tick must not deliver analysis or chart: %v", n.events)
	}
}

func TestCaptureFailureDoesNotAbortLoop(t *testing.T) {
	store := users.NewStore()
	store.Touch(1, "")
	store.SetPair(1, "EURUSD_otc")

	n := &fakeNotifier{}
	m := newTestManager(20*time.Millisecond, &fakeSource{}, &fakeCapturer{fail: true}, store)

	m.StartForUser(context.Background(), 1, "EURUSD_otc", n)
	waitFor(t, func() bool { return n.count("signal:") >= 2 }, "loop must keep ticking without charts")

	if n.count("chart:") != 0 {
		t.Fatalf("no chart must be delivered when capture fails: %v", n.events)
	}
	m.StopForUser(1)
}

func TestTickRecordsHistory(t *testing.T) {
	store := users.NewStore()
	store.Touch(1, "")
	store.SetPair(1, "EURUSD_otc")

	hist := history.NewMemory()
	m := NewManager(
		Config{Interval: time.Hour, CandleWindow: 4, MinConfidence: 0.90},
		strategy.NewBank(),
		&fakeSource{},
		&fakeCapturer{},
		store,
		hist,
	)
	n := &fakeNotifier{}

	m.StartForUser(context.Background(), 1, "EURUSD_otc", n)
	waitFor(t, func() bool { return n.count("signal:") == 1 }, "first tick")
	m.StopForUser(1)

	entries, err := hist.Recent(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one history entry, got %d", len(entries))
	}
	dec := entries[0].Decision
	if dec.Direction != models.DirectionBuy || dec.Confidence != 0.96 || dec.Pair != "EURUSD_otc" {
		t.Fatalf("unexpected stored decision %+v", dec)
	}
}
