package state

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/skischool_office/internal/scheduler"
)

// Store хранит сессии выбора слотов и сериализует доступ к каждой из них
type Store interface {
	// Update выполняет fn над сессией (создаёт пустую при отсутствии) и сохраняет результат
	Update(ctx context.Context, sessionID string, fn func(sel *scheduler.Selection) error) error
	// View выполняет fn над копией сессии без сохранения
	View(ctx context.Context, sessionID string, fn func(sel *scheduler.Selection)) error
	// Delete удаляет сессию
	Delete(ctx context.Context, sessionID string) error
}

type sessionData struct {
	selection *scheduler.Selection
	touchedAt time.Time
}

// Manager хранит сессии в памяти процесса
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*sessionData // sessionID -> сессия
	now      func() time.Time
}

// NewManager создаёт новый менеджер сессий
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*sessionData),
		now:      time.Now,
	}
}

// Update изменяет сессию под блокировкой.
// Если fn вернула ошибку, сессия откатывается к состоянию до вызова.
func (sm *Manager) Update(_ context.Context, sessionID string, fn func(sel *scheduler.Selection) error) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	data, exists := sm.sessions[sessionID]
	if !exists {
		data = &sessionData{selection: scheduler.NewSelection()}
		sm.sessions[sessionID] = data
	}
	data.touchedAt = sm.now()

	before := data.selection.Snapshot()
	if err := fn(data.selection); err != nil {
		data.selection = scheduler.Restore(before)
		return err
	}
	return nil
}

// View читает сессию; для неизвестной сессии fn получает пустую
func (sm *Manager) View(_ context.Context, sessionID string, fn func(sel *scheduler.Selection)) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if data, exists := sm.sessions[sessionID]; exists {
		// Копия, чтобы fn не изменил состояние в обход Update
		fn(scheduler.Restore(data.selection.Snapshot()))
		return nil
	}

	fn(scheduler.NewSelection())
	return nil
}

// Delete удаляет сессию
func (sm *Manager) Delete(_ context.Context, sessionID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.sessions, sessionID)
	return nil
}

// SweepIdle удаляет сессии, не использовавшиеся дольше maxIdle
func (sm *Manager) SweepIdle(maxIdle time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	cutoff := sm.now().Add(-maxIdle)
	removed := 0
	for id, data := range sm.sessions {
		if data.touchedAt.Before(cutoff) {
			delete(sm.sessions, id)
			removed++
		}
	}
	return removed
}

// Len количество активных сессий
func (sm *Manager) Len() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return len(sm.sessions)
}
