package engine

import (
	"fmt"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	GetRules() *Rules
	Started() bool
	LastActive() time.Time
	Touch()

	// Lobby and turn operations
	Join(player string) error
	Begin() (*BeginResult, error)
	Play(player string, card Card, declared Color) (*PlayResult, error)
	Draw(player string) (*DrawResult, error)

	// Reads
	Hand(player string) ([]Card, error)
	Status() *Status
}

// BeginResult describes the opening deal.
type BeginResult struct {
	TopCard Card   `json:"top_card"`
	Color   Color  `json:"color"`
	First   string `json:"first"`
}

// PlayResult describes a resolved play, including any penalty draw and
// whether the acting player won.
type PlayResult struct {
	Card       Card   `json:"card"`
	Color      Color  `json:"color"`
	Victim     string `json:"victim,omitempty"`
	VictimDrew int    `json:"victim_drew,omitempty"`
	Victory    bool   `json:"victory"`
	Next       string `json:"next,omitempty"`
}

// DrawResult describes a draw-and-pass turn.
type DrawResult struct {
	Card       Card   `json:"card"`
	Reshuffled bool   `json:"reshuffled"`
	Next       string `json:"next"`
}

// Status is the read-only game summary.
type Status struct {
	Players       int    `json:"players"`
	Started       bool   `json:"started"`
	CurrentPlayer string `json:"current_player,omitempty"`
	CurrentColor  Color  `json:"current_color,omitempty"`
	TopCard       *Card  `json:"top_card,omitempty"`
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state *GameState
	rules *Rules
}

// NewEngine creates a new game engine with the provided rules preset.
func NewEngine(rules *Rules) (*GameEngine, error) {
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}
	return &GameEngine{
		rules: rules,
		state: NewGameState(),
	}, nil
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState sets the game state (used for persistence loading)
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.Direction != 1 && state.Direction != -1 {
		return fmt.Errorf("direction must be 1 or -1, got %d", state.Direction)
	}
	if state.Started && (state.Current < 0 || state.Current >= len(state.Players)) {
		return fmt.Errorf("current index %d out of range for %d players", state.Current, len(state.Players))
	}
	if state.Hands == nil {
		state.Hands = make(map[string][]Card)
	}
	e.state = state
	return nil
}

// GetRules returns the rules preset the engine was created with.
func (e *GameEngine) GetRules() *Rules {
	return e.rules
}

// Started reports whether the deal has happened.
func (e *GameEngine) Started() bool {
	return e.state.Started
}

// LastActive returns the last mutation timestamp, used by the expiry sweeper.
func (e *GameEngine) LastActive() time.Time {
	return e.state.LastActive
}

// Touch refreshes the last-active timestamp.
func (e *GameEngine) Touch() {
	e.state.LastActive = time.Now().UTC()
}

// Join appends a player to the turn order. Join order is turn order.
func (e *GameEngine) Join(player string) error {
	if e.state.Started {
		return ErrAlreadyStarted
	}
	for _, p := range e.state.Players {
		if p == player {
			return ErrAlreadyJoined
		}
	}
	e.state.Players = append(e.state.Players, player)
	e.Touch()
	return nil
}

// Begin builds and shuffles the deck, deals each player their hand in join
// order, and flips the first pile card. A flipped wild seeds the current
// color with a random real color.
func (e *GameEngine) Begin() (*BeginResult, error) {
	if e.state.Started {
		return nil, ErrAlreadyStarted
	}
	if len(e.state.Players) < e.rules.MinPlayers {
		return nil, ErrNotEnoughPlayers
	}
	// Every hand plus the flipped card must come out of a single deck.
	if len(e.state.Players)*e.rules.HandSize+1 > DeckSize {
		return nil, ErrTooManyPlayers
	}

	e.state.Deck = NewDeck()
	for _, player := range e.state.Players {
		hand := make([]Card, 0, e.rules.HandSize)
		for i := 0; i < e.rules.HandSize; i++ {
			card, _ := e.state.drawCard()
			hand = append(hand, card)
		}
		e.state.Hands[player] = hand
	}

	top, _ := e.state.drawCard()
	e.state.Pile = append(e.state.Pile, top)
	if top.Color == Wild {
		e.state.CurrentColor = RandomColor()
	} else {
		e.state.CurrentColor = top.Color
	}
	e.state.Started = true
	e.state.Current = 0
	e.Touch()

	return &BeginResult{
		TopCard: top,
		Color:   e.state.CurrentColor,
		First:   e.state.CurrentPlayer(),
	}, nil
}

// Play validates and resolves one card play. All preconditions are checked
// before any mutation; an error means the state is untouched.
func (e *GameEngine) Play(player string, card Card, declared Color) (*PlayResult, error) {
	if !e.state.Started {
		return nil, ErrNotStarted
	}
	if e.state.CurrentPlayer() != player {
		return nil, ErrNotYourTurn
	}
	if !e.state.holdsCard(player, card) {
		return nil, ErrCardNotHeld
	}
	if card.Color == Wild {
		if _, ok := ParseColor(string(declared)); !ok {
			return nil, ErrColorRequired
		}
	}
	top := e.state.TopCard()
	if !Playable(card, e.state.CurrentColor, top.Rank) {
		return nil, ErrIllegalPlay
	}

	e.state.removeFromHand(player, card)
	e.state.Pile = append(e.state.Pile, card)
	if card.Color == Wild {
		e.state.CurrentColor = declared
	} else {
		e.state.CurrentColor = card.Color
	}
	e.Touch()

	result := &PlayResult{Card: card, Color: e.state.CurrentColor}
	e.resolveEffect(card, result)

	if len(e.state.Hands[player]) == 0 {
		result.Victory = true
		result.Next = ""
		return result, nil
	}
	result.Next = e.state.CurrentPlayer()
	return result, nil
}

// resolveEffect applies the special-card effect table and leaves Current at
// the next player to act.
func (e *GameEngine) resolveEffect(card Card, result *PlayResult) {
	switch card.Rank {
	case Skip:
		e.state.advanceTurn()
		e.state.advanceTurn()
	case Reverse:
		e.state.Direction *= -1
		// Heads-up a reverse degenerates to a skip: the acting player
		// goes again.
		if len(e.state.Players) == 2 {
			e.state.advanceTurn()
		}
		e.state.advanceTurn()
	case DrawTwo:
		e.penalizeNext(e.rules.DrawTwoPenalty, result)
	case WildFour:
		e.penalizeNext(e.rules.WildFourPenalty, result)
	default:
		e.state.advanceTurn()
	}
}

// penalizeNext advances to the victim, deals them n cards, then advances
// once more so the victim's turn is skipped.
func (e *GameEngine) penalizeNext(n int, result *PlayResult) {
	e.state.advanceTurn()
	victim := e.state.CurrentPlayer()
	drew := 0
	for i := 0; i < n; i++ {
		card, ok := e.state.drawCard()
		if !ok {
			break
		}
		e.state.Hands[victim] = append(e.state.Hands[victim], card)
		drew++
	}
	result.Victim = victim
	result.VictimDrew = drew
	e.state.advanceTurn()
}

// Draw pops one card from the deck into the player's hand and ends the
// turn. An empty deck is replenished by reshuffling the pile under its top
// card first.
func (e *GameEngine) Draw(player string) (*DrawResult, error) {
	if !e.state.Started {
		return nil, ErrNotStarted
	}
	if e.state.CurrentPlayer() != player {
		return nil, ErrNotYourTurn
	}
	if len(e.state.Deck) == 0 && len(e.state.Pile) < 2 {
		return nil, ErrDeckExhausted
	}

	reshuffled := len(e.state.Deck) == 0
	card, _ := e.state.drawCard()
	e.state.Hands[player] = append(e.state.Hands[player], card)
	e.state.advanceTurn()
	e.Touch()

	return &DrawResult{
		Card:       card,
		Reshuffled: reshuffled,
		Next:       e.state.CurrentPlayer(),
	}, nil
}

// Hand returns a copy of the player's hand. Callers must only reveal it to
// that player.
func (e *GameEngine) Hand(player string) ([]Card, error) {
	if !e.state.Started {
		return nil, ErrNotStarted
	}
	hand := e.state.Hands[player]
	out := make([]Card, len(hand))
	copy(out, hand)
	return out, nil
}

// Status returns the read-only game summary.
func (e *GameEngine) Status() *Status {
	status := &Status{
		Players: len(e.state.Players),
		Started: e.state.Started,
	}
	if e.state.Started {
		status.CurrentPlayer = e.state.CurrentPlayer()
		status.CurrentColor = e.state.CurrentColor
		status.TopCard = e.state.TopCard()
	}
	return status
}
