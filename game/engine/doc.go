// Package engine provides the core game logic for the UNO game engine.
//
// The engine package implements the game mechanics including:
//   - The 108-card deck, shuffling, and play legality
//   - Turn rotation with direction reversal and skips
//   - Special-card effects (skip, reverse, draw2, wild, wild4)
//   - Win detection and empty-deck reshuffling
//   - Game state management and persistence
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState represents one session's complete
// game state, while Rules defines the tunable game parameters loaded from
// JSON preset files.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultRules())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine.Join("alice")
//	gameEngine.Join("bob")
//	begin, err := gameEngine.Begin()
//
//	// Play a card
//	result, err := gameEngine.Play("alice", engine.Card{Color: engine.Red, Rank: "7"}, "")
//
// Game Rules:
//
// Each player is dealt a hand from the shuffled deck. On their turn a player
// either plays a card matching the current color or the top card's rank (wild
// cards always match), or draws one card and forfeits the turn. Special cards
// skip opponents, reverse the turn direction, or force the next player to
// draw penalty cards. The first player to empty their hand wins.
package engine
