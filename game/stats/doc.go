// Package stats keeps the per-chat win ledger.
//
// The ledger is independent of live game state: sessions are deleted the
// moment a game is won, but the win counts recorded here survive, and
// survive restarts via a single JSON file.
//
// Ranking is by win count descending; players with equal counts keep the
// order in which they first won.
package stats
