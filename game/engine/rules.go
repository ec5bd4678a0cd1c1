package engine

import (
	"fmt"
	"time"
)

// Rules represents a tunable rules preset loaded from JSON.
type Rules struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	HandSize        int    `json:"hand_size"`
	MinPlayers      int    `json:"min_players"`
	DrawTwoPenalty  int    `json:"draw_two_penalty"`
	WildFourPenalty int    `json:"wild_four_penalty"`
	IdleTTLHours    int    `json:"idle_ttl_hours"`
}

// DefaultRules returns the classic ruleset: 7-card hands, 2 player minimum,
// +2/+4 penalties, 24-hour idle expiry.
func DefaultRules() *Rules {
	return &Rules{
		Name:            "classic",
		Description:     "Classic UNO rules",
		HandSize:        7,
		MinPlayers:      2,
		DrawTwoPenalty:  2,
		WildFourPenalty: 4,
		IdleTTLHours:    24,
	}
}

// IdleTTL returns the idle expiry window as a duration.
func (r *Rules) IdleTTL() time.Duration {
	return time.Duration(r.IdleTTLHours) * time.Hour
}

// ValidateRules checks that a rules preset is playable.
func ValidateRules(r *Rules) error {
	if r == nil {
		return fmt.Errorf("rules cannot be nil")
	}
	if r.Name == "" {
		return fmt.Errorf("rules name is required")
	}
	if r.HandSize < 1 {
		return fmt.Errorf("hand size must be at least 1, got %d", r.HandSize)
	}
	if r.MinPlayers < 2 {
		return fmt.Errorf("min players must be at least 2, got %d", r.MinPlayers)
	}
	if r.DrawTwoPenalty < 0 || r.WildFourPenalty < 0 {
		return fmt.Errorf("draw penalties cannot be negative")
	}
	if r.IdleTTLHours < 1 {
		return fmt.Errorf("idle TTL must be at least 1 hour, got %d", r.IdleTTLHours)
	}
	// A full table of max-size hands must be dealable from one deck with a
	// card left over to flip.
	if r.HandSize*r.MinPlayers >= DeckSize {
		return fmt.Errorf("hand size %d cannot be dealt from a %d-card deck", r.HandSize, DeckSize)
	}
	return nil
}
