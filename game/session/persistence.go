package session

import (
	"time"

	"github.com/TakatsuMeow/voxuno/game/engine"
	"github.com/TakatsuMeow/voxuno/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData is the JSON structure for persisted sessions.
// Rules are stored by preset name and re-resolved on load, so preset
// tweaks apply to recovered sessions without a migration.
type PersistedSessionData struct {
	ID        string            `json:"id"`
	RulesName string            `json:"rules_name"`
	CreatedAt time.Time         `json:"created_at"`
	GameState *engine.GameState `json:"game_state"`
}
