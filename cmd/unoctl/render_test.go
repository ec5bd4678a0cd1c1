package main

import (
	"strings"
	"testing"

	"github.com/TakatsuMeow/voxuno/game/engine"
)

func TestRenderCard(t *testing.T) {
	tests := []struct {
		card engine.Card
		want string
	}{
		{engine.Card{Color: engine.Red, Rank: "7"}, "red 7"},
		{engine.Card{Color: engine.Green, Rank: engine.DrawTwo}, "green +2"},
		{engine.Card{Color: engine.Wild, Rank: engine.WildFour}, "wild4"},
	}
	for _, tt := range tests {
		if got := renderCard(tt.card); !strings.Contains(got, tt.want) {
			t.Errorf("Expected rendered card to contain %q, got %q", tt.want, got)
		}
	}
}

func TestRenderColor(t *testing.T) {
	for _, color := range engine.RealColors {
		if got := renderColor(color); !strings.Contains(got, string(color)) {
			t.Errorf("Expected rendered color to contain %q, got %q", color, got)
		}
	}
}

func TestJoinCards(t *testing.T) {
	got := joinCards([]string{"a", "b", "c"})
	if got != "a  b  c" {
		t.Errorf("Unexpected join result %q", got)
	}
}
