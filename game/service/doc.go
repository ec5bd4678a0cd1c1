// Package service provides the business logic layer for the UNO game engine.
//
// The service package implements:
//   - The command surface: start, join, begin, play, draw, hand, status,
//     top winners, reset
//   - Session lifecycle orchestration (win detection deletes the session
//     after the stats ledger records the winner)
//   - Write-after-mutate persistence with a single retry
//   - Per-session command serialization
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game
// operations. SessionManager handles session creation, retrieval, and
// lifecycle. RulesManager loads rules presets. StatsLedger records and
// ranks wins.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/MCP) and the
// game engine, providing session isolation and business logic
// orchestration. Each session maintains its own game engine instance with
// independent state.
//
// Concurrency:
//
// Commands for one session are serialized by that session's own mutex, so a
// slow command for one chat never stalls another chat's game. The session
// store's map lock is held only for lookups, never across engine work or
// persistence I/O.
package service
