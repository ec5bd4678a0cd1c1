package engine

import "errors"

// Engine operation errors. Every operation validates all preconditions
// before mutating state, so any of these errors leaves the game unchanged.
var (
	ErrNotStarted       = errors.New("game has not started")
	ErrAlreadyStarted   = errors.New("game already started")
	ErrAlreadyJoined    = errors.New("player already joined")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrTooManyPlayers   = errors.New("too many players to deal from one deck")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrCardNotHeld      = errors.New("card not in hand")
	ErrIllegalPlay      = errors.New("card does not match color or rank")
	ErrColorRequired    = errors.New("wild card requires a declared color")
	ErrDeckExhausted    = errors.New("no cards left to draw")
)
