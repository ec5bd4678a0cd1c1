// Command analyze prints quick, human-readable heuristics about persisted
// session files and the stats ledger. It summarizes each session (phase,
// players, turn, remaining cards) and flags invariant violations: card
// conservation drift, out-of-range turn indexes, bad directions, and
// started games missing a top card.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/TakatsuMeow/voxuno/game/engine"
	"github.com/TakatsuMeow/voxuno/game/session"
)

func main() {
	sessionsDir := "./sessions"
	statsFile := "./stats.json"
	if len(os.Args) > 1 {
		sessionsDir = os.Args[1]
	}
	if len(os.Args) > 2 {
		statsFile = os.Args[2]
	}

	files, err := filepath.Glob(filepath.Join(sessionsDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding session files: %v\n", err)
		os.Exit(1)
	}
	sort.Strings(files)

	warnings := 0
	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		warnings += analyzeSession(file)
	}
	if len(files) == 0 {
		fmt.Printf("No session files found in %s\n", sessionsDir)
	}

	analyzeStats(statsFile)

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if warnings > 0 {
		fmt.Printf("⚠️  %d warnings across %d sessions\n", warnings, len(files))
		os.Exit(1)
	}
	fmt.Printf("✅ %d sessions look healthy\n", len(files))
}

// analyzeSession prints a summary of one persisted session and returns the
// number of invariant warnings found.
func analyzeSession(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return 1
	}

	var persisted session.PersistedSessionData
	if err := json.Unmarshal(data, &persisted); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return 1
	}
	state := persisted.GameState
	if state == nil {
		fmt.Println("⚠️  WARNING: session file has no game state")
		return 1
	}

	fmt.Printf("Session: %s (rules: %s)\n", persisted.ID, persisted.RulesName)
	if state.Started {
		fmt.Printf("Phase: in progress, %d players, %s to act\n",
			len(state.Players), state.CurrentPlayer())
	} else {
		fmt.Printf("Phase: lobby, %d players joined\n", len(state.Players))
	}
	fmt.Printf("Deck: %d, Pile: %d\n", len(state.Deck), len(state.Pile))
	for _, player := range state.Players {
		fmt.Printf("  %s holds %d cards\n", player, len(state.Hands[player]))
	}
	fmt.Printf("Last active: %s (%s ago)\n",
		state.LastActive.Format(time.RFC3339), time.Since(state.LastActive).Round(time.Minute))

	return checkInvariants(state)
}

// checkInvariants flags state that the engine should never have produced.
func checkInvariants(state *engine.GameState) int {
	warnings := 0
	warn := func(format string, args ...interface{}) {
		fmt.Printf("⚠️  WARNING: "+format+"\n", args...)
		warnings++
	}

	if state.Started {
		if total := state.TotalCards(); total != engine.DeckSize {
			warn("card conservation broken: %d cards in circulation, expected %d", total, engine.DeckSize)
		}
		if state.Current < 0 || state.Current >= len(state.Players) {
			warn("turn index %d out of range for %d players", state.Current, len(state.Players))
		}
		if state.TopCard() == nil {
			warn("started game has an empty pile")
		}
		if _, ok := engine.ParseColor(string(state.CurrentColor)); !ok {
			warn("current color %q is not a real color", state.CurrentColor)
		}
		for _, player := range state.Players {
			if _, ok := state.Hands[player]; !ok {
				warn("player %s has no hand entry", player)
			}
		}
	} else {
		if len(state.Deck) != 0 || len(state.Pile) != 0 {
			warn("lobby-phase session already holds cards")
		}
	}

	if state.Direction != 1 && state.Direction != -1 {
		warn("direction is %d, expected 1 or -1", state.Direction)
	}

	if warnings == 0 {
		fmt.Println("✅ Invariants hold")
	}
	return warnings
}

// analyzeStats summarizes the win ledger file.
func analyzeStats(path string) {
	fmt.Printf("\n=== Stats ledger %s ===\n", filepath.Base(path))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No stats file yet")
			return
		}
		fmt.Printf("Error reading stats: %v\n", err)
		return
	}

	var wins map[string][]struct {
		Player string `json:"player"`
		Wins   int    `json:"wins"`
	}
	if err := json.Unmarshal(data, &wins); err != nil {
		fmt.Printf("Error parsing stats: %v\n", err)
		return
	}

	sessions := make([]string, 0, len(wins))
	for id := range wins {
		sessions = append(sessions, id)
	}
	sort.Strings(sessions)

	for _, id := range sessions {
		total := 0
		for _, entry := range wins[id] {
			total += entry.Wins
		}
		fmt.Printf("%s: %d players, %d games finished\n", id, len(wins[id]), total)
	}
	if len(sessions) == 0 {
		fmt.Println("Ledger is empty")
	}
}
