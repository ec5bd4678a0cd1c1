package service

import (
	"time"

	"github.com/TakatsuMeow/voxuno/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID         string    `json:"id"`
	RulesName  string    `json:"rules_name"`
	Players    int       `json:"players"`
	Started    bool      `json:"started"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

// JoinResult reports a successful join.
type JoinResult struct {
	SessionID string `json:"session_id"`
	Player    string `json:"player"`
	Players   int    `json:"players"`
}

// StatusInfo is the read-only session summary: player count, started flag,
// whose turn it is, the color to match, and the top card.
type StatusInfo struct {
	SessionID     string       `json:"session_id"`
	Players       int          `json:"players"`
	Started       bool         `json:"started"`
	CurrentPlayer string       `json:"current_player,omitempty"`
	CurrentColor  engine.Color `json:"current_color,omitempty"`
	TopCard       *engine.Card `json:"top_card,omitempty"`
	LastActive    time.Time    `json:"last_active"`
}

// WinnerEntry is one row of a session's win ranking.
type WinnerEntry struct {
	Player string `json:"player"`
	Wins   int    `json:"wins"`
}

// RulesInfo provides information about a rules preset
type RulesInfo struct {
	Filename    string `json:"filename,omitempty"`
	RulesID     string `json:"rules_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	HandSize    int    `json:"hand_size"`
	MinPlayers  int    `json:"min_players"`
}
