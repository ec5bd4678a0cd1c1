package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/TakatsuMeow/voxuno/game/engine"
)

// Service-level errors. Engine-level errors (wrong turn, illegal play, …)
// pass through from the engine package untranslated.
var (
	ErrNoSuchSession     = errors.New("no active game in this session")
	ErrAlreadyInProgress = errors.New("a game already exists in this session")
	ErrEmptySessionNoOp  = errors.New("no active game to reset")
)

// GameService defines all game-related operations
type GameService interface {
	// Session lifecycle
	Start(ctx context.Context, sessionID string) (*SessionInfo, error)
	Reset(ctx context.Context, sessionID string) error
	ListSessions(ctx context.Context) ([]*SessionInfo, error)

	// Game operations
	Join(ctx context.Context, sessionID, player string) (*JoinResult, error)
	Begin(ctx context.Context, sessionID string) (*engine.BeginResult, error)
	Play(ctx context.Context, sessionID, player string, card engine.Card, declared engine.Color) (*engine.PlayResult, error)
	Draw(ctx context.Context, sessionID, player string) (*engine.DrawResult, error)

	// Reads
	Status(ctx context.Context, sessionID string) (*StatusInfo, error)
	Hand(ctx context.Context, sessionID, player string) ([]engine.Card, error)
	TopWinners(ctx context.Context, sessionID string, n int) ([]WinnerEntry, error)

	// Rules presets
	ListRules(ctx context.Context) ([]*RulesInfo, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, rules *engine.Rules) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	Save(id string) error
	Count() int
}

// RulesManager handles rules preset loading
type RulesManager interface {
	LoadRules(name string) (*engine.Rules, error)
	ListRules() ([]*RulesInfo, error)
	GetDefault() *engine.Rules
}

// StatsLedger records wins per session, independent of live game state.
type StatsLedger interface {
	RecordWin(sessionID, player string) error
	TopN(sessionID string, n int) []WinnerEntry
}

// Session represents one chat's game: the aggregate root of engine state,
// the rules in force, and bookkeeping metadata. All mutations of one
// session go through its mutex.
type Session struct {
	ID        string
	Engine    *engine.GameEngine
	Rules     *engine.Rules
	CreatedAt time.Time

	mu sync.Mutex
}

// Lock serializes command handling for this session only.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session for the next command.
func (s *Session) Unlock() { s.mu.Unlock() }

// LastActive returns the session's last mutation time.
func (s *Session) LastActive() time.Time {
	return s.Engine.LastActive()
}
