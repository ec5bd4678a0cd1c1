package session

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/TakatsuMeow/voxuno/game/engine"
	"github.com/TakatsuMeow/voxuno/game/service"
)

// Not-found and already-exists are the service-level sentinels so that
// callers at any layer can use errors.Is against a single identity.
var (
	ErrSessionNotFound      = service.ErrNoSuchSession
	ErrSessionAlreadyExists = service.ErrAlreadyInProgress
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

// Manager handles game session lifecycle
type Manager struct {
	sessions    map[string]*service.Session
	persistence SessionPersistence
	mu          sync.RWMutex
}

// NewManager creates a new session manager without persistence
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
	}
}

// NewManagerWithPersistence creates a new session manager with persistence
func NewManagerWithPersistence(persistence SessionPersistence) *Manager {
	return &Manager{
		sessions:    make(map[string]*service.Session),
		persistence: persistence,
	}
}

// Create creates a new session for the given chat ID. The ID comes from
// the transport layer; the store never generates one.
func (m *Manager) Create(id string, rules *engine.Rules) (*service.Session, error) {
	if id == "" {
		return nil, ErrInvalidSessionID
	}

	eng, err := engine.NewEngine(rules)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	session := &service.Session{
		ID:        id,
		Engine:    eng,
		Rules:     rules,
		CreatedAt: time.Now().UTC(),
	}

	m.mu.Lock()
	if _, exists := m.sessions[id]; exists {
		m.mu.Unlock()
		return nil, ErrSessionAlreadyExists
	}
	m.sessions[id] = session
	m.mu.Unlock()

	// Auto-save so an empty lobby survives a restart too. The write happens
	// under the session's own lock; the map lock is never held across I/O.
	if m.persistence != nil {
		session.Lock()
		err := m.persistence.Save(session)
		session.Unlock()
		if err != nil {
			log.Printf("[SESSION] Warning: failed to persist new session %s: %v", id, err)
		}
	}

	return session, nil
}

// Get retrieves a session by ID
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	session, exists := m.sessions[id]
	m.mu.RUnlock()

	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// List returns all live sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

// Delete removes a session from memory and storage.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	_, inMemory := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	onDisk := false
	if m.persistence != nil && m.persistence.Exists(id) {
		onDisk = true
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted session: %w", err)
		}
	}

	if !inMemory && !onDisk {
		return ErrSessionNotFound
	}
	return nil
}

// Save writes one session to persistence. Callers already serializing
// that session's commands may call this while holding its lock; the
// store itself takes only the map lock, and only for the lookup.
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	session, exists := m.sessions[id]
	m.mu.RUnlock()

	if !exists {
		return ErrSessionNotFound
	}
	return m.persistence.Save(session)
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// LoadPersistedSessions loads all persisted sessions into memory.
// Unreadable files are skipped with a warning rather than aborting
// recovery of the rest.
func (m *Manager) LoadPersistedSessions() error {
	if m.persistence == nil {
		return nil
	}

	sessionIDs, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted sessions: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loaded := 0
	for _, id := range sessionIDs {
		if _, exists := m.sessions[id]; exists {
			continue
		}

		session, err := m.persistence.Load(id)
		if err != nil {
			log.Printf("[SESSION] Warning: skipping persisted session %s: %v", id, err)
			continue
		}

		m.sessions[id] = session
		loaded++
	}

	if loaded > 0 {
		log.Printf("[SESSION] Recovered %d persisted sessions from storage", loaded)
	}
	return nil
}

// CleanupExpiredSessions removes sessions idle past each session's own
// TTL, from memory and from disk. Returns the number removed. Running
// it twice back to back removes nothing the second time.
func (m *Manager) CleanupExpiredSessions() int {
	now := time.Now()

	var expired []string
	for _, session := range m.List() {
		session.Lock()
		idle := now.Sub(session.LastActive())
		ttl := session.Rules.IdleTTL()
		session.Unlock()

		if idle > ttl {
			expired = append(expired, session.ID)
		}
	}

	removed := 0
	for _, id := range expired {
		if err := m.Delete(id); err != nil {
			log.Printf("[SESSION] Warning: failed to expire session %s: %v", id, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Printf("[SESSION] Expired %d idle sessions", removed)
	}
	return removed
}

// SaveAllSessions saves all in-memory sessions to persistence. Used at
// shutdown; a no-op when the store is empty.
func (m *Manager) SaveAllSessions() error {
	if m.persistence == nil || m.Count() == 0 {
		return nil
	}

	errorCount := 0
	for _, session := range m.List() {
		session.Lock()
		err := m.persistence.Save(session)
		session.Unlock()
		if err != nil {
			log.Printf("[SESSION] Warning: failed to save session %s: %v", session.ID, err)
			errorCount++
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("failed to save %d sessions", errorCount)
	}
	return nil
}
