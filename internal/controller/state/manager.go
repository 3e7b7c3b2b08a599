package state

import (
	"sync"
	"time"

	"github.com/Freeeeeet/barber_bot/internal/service"
)

// Manager управляет сессиями бронирования по чатам
type Manager struct {
	mu      sync.Mutex
	entries map[int64]*entry // chatID -> entry
	factory SessionFactory
	now     func() time.Time
}

// NewManager создаёт новый менеджер сессий
func NewManager(factory SessionFactory, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{
		entries: make(map[int64]*entry),
		factory: factory,
		now:     now,
	}
}

// With выполняет fn над сессией чата, создавая её при необходимости.
// Вызовы для одного чата выполняются строго по очереди.
func (sm *Manager) With(chatID int64, fn func(sess *service.Session) error) error {
	e := sm.acquire(chatID)
	defer e.mu.Unlock()

	return fn(e.session)
}

// acquire возвращает заблокированную запись чата
func (sm *Manager) acquire(chatID int64) *entry {
	for {
		sm.mu.Lock()
		e, exists := sm.entries[chatID]
		if !exists {
			e = &entry{session: sm.factory()}
			sm.entries[chatID] = e
		}
		e.lastSeen = sm.now()
		sm.mu.Unlock()

		e.mu.Lock()

		// Запись могли удалить (Reset/Sweep), пока мы ждали блокировку
		sm.mu.Lock()
		current := sm.entries[chatID]
		sm.mu.Unlock()
		if current == e {
			return e
		}
		e.mu.Unlock()
	}
}

// Has сообщает, есть ли у чата сессия
func (sm *Manager) Has(chatID int64) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	_, exists := sm.entries[chatID]
	return exists
}

// Reset удаляет сессию чата; следующий апдейт начнёт с чистой
func (sm *Manager) Reset(chatID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.entries, chatID)
}

// Sweep удаляет сессии, не использовавшиеся дольше idle. Возвращает число удалённых.
func (sm *Manager) Sweep(idle time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	cutoff := sm.now().Add(-idle)
	removed := 0
	for chatID, e := range sm.entries {
		if e.lastSeen.Before(cutoff) {
			delete(sm.entries, chatID)
			removed++
		}
	}
	return removed
}

// Len возвращает число активных сессий
func (sm *Manager) Len() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return len(sm.entries)
}
