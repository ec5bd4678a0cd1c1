// Package session provides session storage for the UNO game service.
//
// The session package implements:
//   - Thread-safe session storage keyed by chat ID
//   - Per-session JSON file persistence
//   - Crash recovery (persisted sessions reload on startup)
//   - Idle-session expiry sweeps
//
// Core Types:
//
// Manager is the main session store that handles all session operations.
// SessionPersistence is the storage interface; FilePersistence is the
// file-backed implementation that writes one JSON file per session.
//
// Session Identifiers:
//
// Session IDs are chat identifiers supplied by the transport layer. The
// store never invents IDs: one chat maps to at most one live game.
//
// Concurrency:
//
// The store's map lock covers lookups and membership changes only. It is
// never held across file I/O or game logic; serialization of gameplay for
// one session is the session's own concern.
//
// Cleanup:
//
// Sessions whose game state has been idle past the configured TTL are
// removed from memory and disk by CleanupExpiredSessions, which the
// process runs periodically. The sweep is idempotent: a second pass over
// the same store removes nothing.
package session
