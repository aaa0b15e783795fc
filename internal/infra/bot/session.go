package bot

import (
	"sync"

	"github.com/vadjik31/procto-bo/internal/usecase"
)

// FormState is where a chat currently is in the intake dialogue.
type FormState int

const (
	StateEmail FormState = iota
	StateAge
	StateGender
	StateCountry
	StateLanguage
	StateEnglishLevel
	StateExperience
)

type Session struct {
	State   FormState
	Profile usecase.LeadProfile
}

// SessionStore keeps in-flight dialogues keyed by chat id. Behind an
// interface so a durable store can replace the map without touching the
// form logic.
type SessionStore interface {
	Get(chatID int64) (*Session, bool)
	Put(chatID int64, s *Session)
	Delete(chatID int64)
}

type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[int64]*Session)}
}

func (m *MemorySessionStore) Get(chatID int64) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[chatID]
	return s, ok
}

func (m *MemorySessionStore) Put(chatID int64, s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[chatID] = s
}

func (m *MemorySessionStore) Delete(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
}
