package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/TakatsuMeow/voxuno/game/engine"
	"github.com/TakatsuMeow/voxuno/game/session"
)

func healthyState() *engine.GameState {
	state := engine.NewGameState()
	state.Players = []string{"alice", "bob"}
	state.Started = true
	state.Current = 0
	state.CurrentColor = engine.Red
	state.LastActive = time.Now().UTC()

	deck := engine.NewDeck()
	state.Hands = map[string][]engine.Card{
		"alice": deck[:7],
		"bob":   deck[7:14],
	}
	state.Pile = deck[14:15]
	state.Deck = deck[15:]
	return state
}

func TestCheckInvariants_Healthy(t *testing.T) {
	if warnings := checkInvariants(healthyState()); warnings != 0 {
		t.Errorf("Expected no warnings for a healthy state, got %d", warnings)
	}
}

func TestCheckInvariants_Violations(t *testing.T) {
	tests := []struct {
		name  string
		corrupt func(*engine.GameState)
	}{
		{"card conservation", func(s *engine.GameState) { s.Deck = s.Deck[1:] }},
		{"turn index out of range", func(s *engine.GameState) { s.Current = 5 }},
		{"empty pile while started", func(s *engine.GameState) { s.Pile = nil }},
		{"wild current color", func(s *engine.GameState) { s.CurrentColor = engine.Wild }},
		{"bad direction", func(s *engine.GameState) { s.Direction = 0 }},
		{"missing hand entry", func(s *engine.GameState) { delete(s.Hands, "bob") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := healthyState()
			tt.corrupt(state)
			if warnings := checkInvariants(state); warnings == 0 {
				t.Error("Expected at least one warning")
			}
		})
	}
}

func TestAnalyzeSession(t *testing.T) {
	dir := t.TempDir()

	persisted := session.PersistedSessionData{
		ID:        "chat-1",
		RulesName: "classic",
		CreatedAt: time.Now().UTC(),
		GameState: healthyState(),
	}
	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal session: %v", err)
	}
	path := filepath.Join(dir, "chat-1.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write session file: %v", err)
	}

	if warnings := analyzeSession(path); warnings != 0 {
		t.Errorf("Expected no warnings for a healthy session file, got %d", warnings)
	}

	t.Run("corrupt file warns", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		os.WriteFile(bad, []byte("{"), 0644)
		if warnings := analyzeSession(bad); warnings == 0 {
			t.Error("Expected a warning for a corrupt file")
		}
	})

	t.Run("missing game state warns", func(t *testing.T) {
		empty := filepath.Join(dir, "empty.json")
		os.WriteFile(empty, []byte(`{"id":"x"}`), 0644)
		if warnings := analyzeSession(empty); warnings == 0 {
			t.Error("Expected a warning for a session without state")
		}
	})
}
