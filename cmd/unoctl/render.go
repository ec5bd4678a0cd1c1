package main

import (
	"strings"

	"github.com/pterm/pterm"

	"github.com/TakatsuMeow/voxuno/game/engine"
)

// renderCard colors a card's text form to match its face color. Wild cards
// render magenta since they have no color until declared.
func renderCard(card engine.Card) string {
	return colorStyle(card.Color).Sprint(card.String())
}

// renderColor colors a color name with itself.
func renderColor(color engine.Color) string {
	return colorStyle(color).Sprint(string(color))
}

func colorStyle(color engine.Color) pterm.Color {
	switch color {
	case engine.Red:
		return pterm.FgLightRed
	case engine.Green:
		return pterm.FgLightGreen
	case engine.Blue:
		return pterm.FgLightBlue
	case engine.Yellow:
		return pterm.FgLightYellow
	}
	return pterm.FgLightMagenta
}

func joinCards(rendered []string) string {
	return strings.Join(rendered, "  ")
}
