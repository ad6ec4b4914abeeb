package runner

import "context"

// LoopState — терминальное состояние цикла сигналов.
type LoopState string

const (
	StateRunning          LoopState = "running"
	StateCancelled        LoopState = "cancelled"
	StateEndedBySelection LoopState = "ended_by_selection_change"
	StateErrored          LoopState = "errored"
)

// Loop — один активный цикл сигналов пользователя. На пользователя
// в любой момент существует не больше одного цикла: новый запуск
// сначала гасит предыдущий и дожидается его завершения.
type Loop struct {
	userID int64
	pair   string

	cancel context.CancelFunc
	done   chan struct{}
	state  LoopState
}

func (l *Loop) Pair() string { return l.pair }

// State читать только после закрытия done.
func (l *Loop) State() LoopState { return l.state }
