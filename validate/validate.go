// Command validate provides a small CLI that validates rules preset JSON
// files in a configs directory. It checks:
//   - JSON structure and required fields
//   - Hand size, player minimum, and penalty bounds
//   - Idle TTL sanity
//   - That a full opening deal fits inside one 108-card deck
//
// Usage: validate [configs-dir] (default ./configs)
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/TakatsuMeow/voxuno/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validatePreset loads and validates a single rules preset JSON file.
func validatePreset(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var rules engine.Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if rules.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: name")
	}

	if rules.HandSize < 1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("hand_size must be at least 1, got %d", rules.HandSize))
	}

	if rules.MinPlayers < 2 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("min_players must be at least 2, got %d", rules.MinPlayers))
	}

	if rules.DrawTwoPenalty < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("draw_two_penalty cannot be negative, got %d", rules.DrawTwoPenalty))
	}

	if rules.WildFourPenalty < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("wild_four_penalty cannot be negative, got %d", rules.WildFourPenalty))
	}

	if rules.IdleTTLHours < 1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("idle_ttl_hours must be at least 1, got %d", rules.IdleTTLHours))
	}

	// The opening deal plus the flipped card must fit in one deck.
	if rules.HandSize >= 1 && rules.MinPlayers >= 2 && rules.HandSize*rules.MinPlayers >= engine.DeckSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(
			"Opening deal needs %d cards; a deck has %d and one must be flipped",
			rules.HandSize*rules.MinPlayers, engine.DeckSize))
	}

	// Cross-check against the engine's own validator so the CLI and the
	// server can never disagree about what loads.
	if err := engine.ValidateRules(&rules); result.Valid && err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Engine rejected preset: %v", err))
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", rules.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Hand size: %d", rules.HandSize))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Min players: %d", rules.MinPlayers))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Penalties: +%d / +%d", rules.DrawTwoPenalty, rules.WildFourPenalty))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Idle expiry: %s", rules.IdleTTL()))
	}

	return result
}

// main scans the configs directory for *.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are
// invalid.
func main() {
	configDir := "./configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding preset files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No preset files found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validatePreset(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All presets are valid!")
	} else {
		fmt.Println("❌ Some presets have errors")
		os.Exit(1)
	}
}
