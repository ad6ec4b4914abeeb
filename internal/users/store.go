package users

import (
	"sort"
	"sync"

	"signal_bot/internal/models"
)

// Store — состояние пользователей бота: зарегистрированные, заблокированные,
// выбранная пара и шаг диалога. Явно инжектится вместо процессных синглтонов;
// писатель один (телеграм-хендлер), читателей много (циклы сигналов).
type Store struct {
	mu      sync.RWMutex
	data    map[int64]*models.UserState
	blocked map[int64]struct{}
}

func NewStore() *Store {
	return &Store{
		data:    make(map[int64]*models.UserState),
		blocked: make(map[int64]struct{}),
	}
}

// Touch регистрирует пользователя, если его ещё нет, и возвращает запись.
func (s *Store) Touch(userID int64, name string) *models.UserState {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.data[userID]
	if !ok {
		u = &models.UserState{UserID: userID, Name: name}
		s.data[userID] = u
	}
	if name != "" {
		u.Name = name
	}
	return u
}

func (s *Store) SetPair(userID int64, pair string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.data[userID]
	if !ok {
		u = &models.UserState{UserID: userID}
		s.data[userID] = u
	}
	u.Pair = pair
}

// Selected — текущая пара пользователя; вторым значением — выбрана ли вообще.
func (s *Store) Selected(userID int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.data[userID]
	if !ok || u.Pair == "" {
		return "", false
	}
	return u.Pair, true
}

func (s *Store) SetStep(userID int64, step string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.data[userID]; ok {
		u.Step = step
	}
}

func (s *Store) Step(userID int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.data[userID]; ok {
		return u.Step
	}
	return ""
}

func (s *Store) Block(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocked[userID] = struct{}{}
	delete(s.data, userID)
}

func (s *Store) Unblock(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blocked, userID)
}

func (s *Store) IsBlocked(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blocked[userID]
	return ok
}

// All — отсортированный список зарегистрированных пользователей.
func (s *Store) All() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int64, 0, len(s.data))
	for id := range s.data {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
