package engine

import (
	"math/rand/v2"
	"time"
)

// GameState represents one session's complete game state. The JSON field
// names match the persisted session file layout.
type GameState struct {
	Players      []string          `json:"players"`
	Hands        map[string][]Card `json:"hands"`
	Deck         []Card            `json:"deck"`
	Pile         []Card            `json:"pile"`
	Current      int               `json:"current"`
	Direction    int               `json:"direction"`
	CurrentColor Color             `json:"current_color"`
	Started      bool              `json:"started"`
	LastActive   time.Time         `json:"last_active"`
}

// NewGameState returns an empty, unstarted game awaiting players.
func NewGameState() *GameState {
	return &GameState{
		Players:    []string{},
		Hands:      make(map[string][]Card),
		Deck:       []Card{},
		Pile:       []Card{},
		Direction:  1,
		LastActive: time.Now().UTC(),
	}
}

// CurrentPlayer returns the player whose turn it is, or "" before the game
// has started.
func (s *GameState) CurrentPlayer() string {
	if !s.Started || s.Current < 0 || s.Current >= len(s.Players) {
		return ""
	}
	return s.Players[s.Current]
}

// TopCard returns the top of the discard pile, or nil when the pile is empty.
func (s *GameState) TopCard() *Card {
	if len(s.Pile) == 0 {
		return nil
	}
	return &s.Pile[len(s.Pile)-1]
}

// TotalCards counts every card across deck, pile, and all hands. Card
// conservation means this is always DeckSize once a game has started.
func (s *GameState) TotalCards() int {
	total := len(s.Deck) + len(s.Pile)
	for _, hand := range s.Hands {
		total += len(hand)
	}
	return total
}

// advanceTurn moves the turn one step in the current direction, wrapping
// around the player list. The double modulo keeps the index non-negative
// when the direction is -1.
func (s *GameState) advanceTurn() {
	n := len(s.Players)
	s.Current = ((s.Current+s.Direction)%n + n) % n
}

// drawCard pops one card from the deck, reshuffling the pile into the deck
// first if needed. Returns false when no card is available anywhere.
func (s *GameState) drawCard() (Card, bool) {
	if len(s.Deck) == 0 && !s.reshuffle() {
		return Card{}, false
	}
	card := s.Deck[len(s.Deck)-1]
	s.Deck = s.Deck[:len(s.Deck)-1]
	return card, true
}

// reshuffle moves every pile card except the top back into the deck and
// shuffles. The retained top card keeps the current color and rank
// well-defined. Returns false when there is nothing to reshuffle.
func (s *GameState) reshuffle() bool {
	if len(s.Pile) < 2 {
		return false
	}
	top := s.Pile[len(s.Pile)-1]
	s.Deck = append(s.Deck, s.Pile[:len(s.Pile)-1]...)
	s.Pile = []Card{top}
	rand.Shuffle(len(s.Deck), func(i, j int) {
		s.Deck[i], s.Deck[j] = s.Deck[j], s.Deck[i]
	})
	return true
}

// holdsCard reports whether the player's hand contains the card.
func (s *GameState) holdsCard(player string, card Card) bool {
	for _, held := range s.Hands[player] {
		if held == card {
			return true
		}
	}
	return false
}

// removeFromHand removes one copy of the card from the player's hand.
func (s *GameState) removeFromHand(player string, card Card) bool {
	hand := s.Hands[player]
	for i, held := range hand {
		if held == card {
			s.Hands[player] = append(hand[:i], hand[i+1:]...)
			return true
		}
	}
	return false
}
