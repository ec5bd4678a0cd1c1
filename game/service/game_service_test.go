package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TakatsuMeow/voxuno/game/engine"
	"github.com/TakatsuMeow/voxuno/game/service"
	"github.com/TakatsuMeow/voxuno/game/stats"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	saves    map[string]int
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
		saves:    make(map[string]int),
	}
}

func (m *MockSessionManager) Create(id string, rules *engine.Rules) (*service.Session, error) {
	if _, exists := m.sessions[id]; exists {
		return nil, service.ErrAlreadyInProgress
	}

	eng, err := engine.NewEngine(rules)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:        id,
		Engine:    eng,
		Rules:     rules,
		CreatedAt: time.Now(),
	}
	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, service.ErrNoSuchSession
	}
	return session, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return service.ErrNoSuchSession
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) Save(id string) error {
	m.saves[id]++
	return nil
}

func (m *MockSessionManager) Count() int { return len(m.sessions) }

// MockRulesManager implements service.RulesManager for testing
type MockRulesManager struct {
	rules *engine.Rules
}

func (m *MockRulesManager) LoadRules(name string) (*engine.Rules, error) {
	if name == m.rules.Name {
		return m.rules, nil
	}
	return nil, errors.New("rules preset not found")
}

func (m *MockRulesManager) ListRules() ([]*service.RulesInfo, error) {
	return []*service.RulesInfo{{RulesID: m.rules.Name, Name: m.rules.Name}}, nil
}

func (m *MockRulesManager) GetDefault() *engine.Rules { return m.rules }

func newTestService(t *testing.T) (service.GameService, *MockSessionManager, *stats.Ledger) {
	t.Helper()
	sessions := NewMockSessionManager()
	ledger, err := stats.NewLedger("")
	if err != nil {
		t.Fatalf("Failed to create ledger: %v", err)
	}
	svc := service.NewGameService(sessions, &MockRulesManager{rules: engine.DefaultRules()}, ledger)
	return svc, sessions, ledger
}

// setEndgame rewires a started two-player game so that alice holds one
// playable card and it is her turn.
func setEndgame(t *testing.T, sessions *MockSessionManager, id string) {
	t.Helper()
	sess, err := sessions.Get(id)
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}

	state := engine.NewGameState()
	state.Players = []string{"alice", "bob"}
	state.Hands = map[string][]engine.Card{
		"alice": {{Color: engine.Red, Rank: "5"}},
		"bob":   {{Color: engine.Blue, Rank: "9"}, {Color: engine.Green, Rank: "2"}},
	}
	state.Deck = []engine.Card{{Color: engine.Yellow, Rank: "1"}}
	state.Pile = []engine.Card{{Color: engine.Red, Rank: "3"}}
	state.CurrentColor = engine.Red
	state.Started = true
	state.Current = 0

	if err := sess.Engine.SetState(state); err != nil {
		t.Fatalf("Failed to set state: %v", err)
	}
}

func TestGameService_StartAndJoin(t *testing.T) {
	svc, sessions, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.Start(ctx, "chat-1")
	if err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}
	if info.ID != "chat-1" || info.Started {
		t.Errorf("Expected pending session chat-1, got %+v", info)
	}

	t.Run("starting twice fails", func(t *testing.T) {
		_, err := svc.Start(ctx, "chat-1")
		if !errors.Is(err, service.ErrAlreadyInProgress) {
			t.Errorf("Expected ErrAlreadyInProgress, got %v", err)
		}
	})

	t.Run("join registers and persists", func(t *testing.T) {
		result, err := svc.Join(ctx, "chat-1", "alice")
		if err != nil {
			t.Fatalf("Failed to join: %v", err)
		}
		if result.Players != 1 {
			t.Errorf("Expected 1 player, got %d", result.Players)
		}
		if sessions.saves["chat-1"] == 0 {
			t.Error("Expected join to persist the session")
		}
	})

	t.Run("joining twice fails", func(t *testing.T) {
		_, err := svc.Join(ctx, "chat-1", "alice")
		if !errors.Is(err, engine.ErrAlreadyJoined) {
			t.Errorf("Expected ErrAlreadyJoined, got %v", err)
		}
	})

	t.Run("join without session fails", func(t *testing.T) {
		_, err := svc.Join(ctx, "chat-missing", "bob")
		if !errors.Is(err, service.ErrNoSuchSession) {
			t.Errorf("Expected ErrNoSuchSession, got %v", err)
		}
	})
}

func TestGameService_BeginAndStatus(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "chat-2"); err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}

	t.Run("begin needs enough players", func(t *testing.T) {
		if _, err := svc.Join(ctx, "chat-2", "alice"); err != nil {
			t.Fatalf("Failed to join: %v", err)
		}
		_, err := svc.Begin(ctx, "chat-2")
		if !errors.Is(err, engine.ErrNotEnoughPlayers) {
			t.Errorf("Expected ErrNotEnoughPlayers, got %v", err)
		}
	})

	if _, err := svc.Join(ctx, "chat-2", "bob"); err != nil {
		t.Fatalf("Failed to join: %v", err)
	}
	begin, err := svc.Begin(ctx, "chat-2")
	if err != nil {
		t.Fatalf("Failed to begin: %v", err)
	}
	if begin.First != "alice" {
		t.Errorf("Expected alice to act first, got %s", begin.First)
	}

	t.Run("status reflects the running game", func(t *testing.T) {
		status, err := svc.Status(ctx, "chat-2")
		if err != nil {
			t.Fatalf("Failed to get status: %v", err)
		}
		if !status.Started || status.Players != 2 {
			t.Errorf("Expected started 2-player game, got %+v", status)
		}
		if status.CurrentPlayer != "alice" {
			t.Errorf("Expected current player alice, got %s", status.CurrentPlayer)
		}
		if status.TopCard == nil {
			t.Error("Expected a top card")
		}
	})

	t.Run("hand returns only the caller's cards", func(t *testing.T) {
		hand, err := svc.Hand(ctx, "chat-2", "alice")
		if err != nil {
			t.Fatalf("Failed to get hand: %v", err)
		}
		if len(hand) != engine.DefaultRules().HandSize {
			t.Errorf("Expected a full opening hand, got %d cards", len(hand))
		}
	})
}

func TestGameService_PlayVictory(t *testing.T) {
	svc, sessions, ledger := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "chat-3"); err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}
	setEndgame(t, sessions, "chat-3")

	result, err := svc.Play(ctx, "chat-3", "alice", engine.Card{Color: engine.Red, Rank: "5"}, "")
	if err != nil {
		t.Fatalf("Failed to play: %v", err)
	}
	if !result.Victory {
		t.Fatal("Expected a winning play")
	}
	if result.Next != "" {
		t.Errorf("Expected no next player after victory, got %s", result.Next)
	}

	t.Run("win is recorded before the session disappears", func(t *testing.T) {
		top, err := svc.TopWinners(ctx, "chat-3", 10)
		if err != nil {
			t.Fatalf("Failed to get winners: %v", err)
		}
		if len(top) != 1 || top[0].Player != "alice" || top[0].Wins != 1 {
			t.Errorf("Expected alice with 1 win, got %+v", top)
		}
	})

	t.Run("finished session is gone", func(t *testing.T) {
		_, err := svc.Status(ctx, "chat-3")
		if !errors.Is(err, service.ErrNoSuchSession) {
			t.Errorf("Expected ErrNoSuchSession, got %v", err)
		}
	})

	_ = ledger
}

func TestGameService_PlayErrorsPassThrough(t *testing.T) {
	svc, sessions, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "chat-4"); err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}
	setEndgame(t, sessions, "chat-4")

	t.Run("wrong turn", func(t *testing.T) {
		_, err := svc.Play(ctx, "chat-4", "bob", engine.Card{Color: engine.Blue, Rank: "9"}, "")
		if !errors.Is(err, engine.ErrNotYourTurn) {
			t.Errorf("Expected ErrNotYourTurn, got %v", err)
		}
	})

	t.Run("card not held", func(t *testing.T) {
		_, err := svc.Play(ctx, "chat-4", "alice", engine.Card{Color: engine.Green, Rank: "7"}, "")
		if !errors.Is(err, engine.ErrCardNotHeld) {
			t.Errorf("Expected ErrCardNotHeld, got %v", err)
		}
	})
}

func TestGameService_Draw(t *testing.T) {
	svc, sessions, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "chat-5"); err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}
	setEndgame(t, sessions, "chat-5")

	result, err := svc.Draw(ctx, "chat-5", "alice")
	if err != nil {
		t.Fatalf("Failed to draw: %v", err)
	}
	if result.Next != "bob" {
		t.Errorf("Expected turn to pass to bob, got %s", result.Next)
	}
	hand, err := svc.Hand(ctx, "chat-5", "alice")
	if err != nil {
		t.Fatalf("Failed to get hand: %v", err)
	}
	if len(hand) != 2 {
		t.Errorf("Expected alice to hold 2 cards after drawing, got %d", len(hand))
	}
}

func TestGameService_Reset(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "chat-6"); err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}

	if err := svc.Reset(ctx, "chat-6"); err != nil {
		t.Fatalf("Failed to reset: %v", err)
	}

	t.Run("resetting nothing is reported", func(t *testing.T) {
		err := svc.Reset(ctx, "chat-6")
		if !errors.Is(err, service.ErrEmptySessionNoOp) {
			t.Errorf("Expected ErrEmptySessionNoOp, got %v", err)
		}
	})

	t.Run("a fresh game can start after reset", func(t *testing.T) {
		if _, err := svc.Start(ctx, "chat-6"); err != nil {
			t.Errorf("Expected restart after reset to succeed: %v", err)
		}
	})
}

func TestGameService_Lists(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, id := range []string{"chat-a", "chat-b"} {
		if _, err := svc.Start(ctx, id); err != nil {
			t.Fatalf("Failed to start %s: %v", id, err)
		}
	}

	infos, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("Failed to list sessions: %v", err)
	}
	if len(infos) != 2 {
		t.Errorf("Expected 2 sessions, got %d", len(infos))
	}

	rules, err := svc.ListRules(ctx)
	if err != nil {
		t.Fatalf("Failed to list rules: %v", err)
	}
	if len(rules) != 1 {
		t.Errorf("Expected 1 rules preset, got %d", len(rules))
	}
}
