package engine

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
)

// Color represents a card color. Wild cards carry the sentinel Wild color.
type Color string

const (
	Red    Color = "red"
	Green  Color = "green"
	Blue   Color = "blue"
	Yellow Color = "yellow"
	Wild   Color = "wild"
)

// Rank represents a card face: a numeral "0".."9" or a special kind.
type Rank string

const (
	Skip     Rank = "skip"
	Reverse  Rank = "reverse"
	DrawTwo  Rank = "draw2"
	WildCard Rank = "wild"
	WildFour Rank = "wild4"

	// DeckSize is the number of cards in a full deck: per color one "0",
	// two of each 1-9, and two of each skip/reverse/draw2, plus four wild
	// and four wild4.
	DeckSize = 108
)

// RealColors lists the four matchable colors, excluding Wild.
var RealColors = []Color{Red, Green, Blue, Yellow}

// Card is an immutable (color, rank) pair. Cards are not unique instances;
// the deck contains duplicates by design.
type Card struct {
	Color Color
	Rank  Rank
}

// String renders a card the way players type it: "red 7", "green +2",
// "wild4". Wild cards have no color prefix.
func (c Card) String() string {
	if c.Color == Wild {
		return string(c.Rank)
	}
	if c.Rank == DrawTwo {
		return fmt.Sprintf("%s +2", c.Color)
	}
	return fmt.Sprintf("%s %s", c.Color, c.Rank)
}

// IsNumeral reports whether the card is a plain numbered card.
func (c Card) IsNumeral() bool {
	return len(c.Rank) == 1 && c.Rank[0] >= '0' && c.Rank[0] <= '9'
}

// MarshalJSON serializes a card as a two-element ["color","rank"] array,
// the layout the persisted session files use.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{string(c.Color), string(c.Rank)})
}

// UnmarshalJSON parses the two-element array form.
func (c *Card) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("card must be a [color, rank] pair: %w", err)
	}
	c.Color = Color(pair[0])
	c.Rank = Rank(pair[1])
	return nil
}

// ParseColor maps user input to one of the four real colors.
func ParseColor(s string) (Color, bool) {
	switch Color(s) {
	case Red, Green, Blue, Yellow:
		return Color(s), true
	}
	return "", false
}

// ParseRank maps user input to a rank. "+2" is accepted as an alias for
// draw2 since that is how the card is usually typed.
func ParseRank(s string) (Rank, bool) {
	if s == "+2" {
		return DrawTwo, true
	}
	r := Rank(s)
	switch r {
	case Skip, Reverse, DrawTwo, WildCard, WildFour:
		return r, true
	}
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		return r, true
	}
	return "", false
}

// ParseCard parses the player-typed card form produced by Card.String:
// "red 7", "green +2", "wild", "wild4".
func ParseCard(s string) (Card, bool) {
	fields := strings.Fields(strings.ToLower(s))
	switch len(fields) {
	case 1:
		if fields[0] == string(WildCard) || fields[0] == string(WildFour) {
			return Card{Color: Wild, Rank: Rank(fields[0])}, true
		}
	case 2:
		color, ok := ParseColor(fields[0])
		if !ok {
			return Card{}, false
		}
		rank, ok := ParseRank(fields[1])
		if !ok || rank == WildCard || rank == WildFour {
			return Card{}, false
		}
		return Card{Color: color, Rank: rank}, true
	}
	return Card{}, false
}

// NewDeck builds the full 108-card deck in shuffled order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)

	for _, color := range RealColors {
		deck = append(deck, Card{color, "0"})
		for n := '1'; n <= '9'; n++ {
			card := Card{color, Rank(n)}
			deck = append(deck, card, card)
		}
		for _, special := range []Rank{Skip, Reverse, DrawTwo} {
			card := Card{color, special}
			deck = append(deck, card, card)
		}
	}

	for i := 0; i < 4; i++ {
		deck = append(deck, Card{Wild, WildCard}, Card{Wild, WildFour})
	}

	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// Playable reports whether a candidate card may be played against the
// current color and the top card's rank. Wild cards always match. The rule
// is the same regardless of whether the top card was a declared-color wild.
func Playable(c Card, topColor Color, topRank Rank) bool {
	return c.Color == Wild || c.Color == topColor || c.Rank == topRank
}

// RandomColor picks one of the four real colors uniformly. Used to seed the
// current color when the first flipped card is a wild.
func RandomColor() Color {
	return RealColors[rand.IntN(len(RealColors))]
}
