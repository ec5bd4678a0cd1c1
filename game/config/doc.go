// Package config provides rules preset management for the UNO game engine.
//
// The config package implements:
//   - Loading rules presets from JSON files in a configs directory
//   - Preset caching with safe concurrent access
//   - A built-in default ("classic") when no preset files exist
//   - Preset validation before use
//
// A rules preset tunes the non-structural parameters of a game: hand size,
// minimum player count, draw penalties, and the idle expiry window. The deck
// composition itself is fixed.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rules, err := manager.LoadRules("classic")
//	if err != nil {
//		rules = manager.GetDefault()
//	}
package config
