package engine

import (
	"cmp"
	"fmt"
)

// Color is one of the eight car colors. ColorNone marks the wildcard card
// and routes that accept any color.
type Color int

const (
	ColorNone Color = iota
	ColorBlack
	ColorViolet
	ColorBlue
	ColorGreen
	ColorYellow
	ColorOrange
	ColorRed
	ColorWhite
)

var colorNames = map[Color]string{
	ColorNone:   "None",
	ColorBlack:  "Black",
	ColorViolet: "Violet",
	ColorBlue:   "Blue",
	ColorGreen:  "Green",
	ColorYellow: "Yellow",
	ColorOrange: "Orange",
	ColorRed:    "Red",
	ColorWhite:  "White",
}

func (c Color) String() string {
	if s, ok := colorNames[c]; ok {
		return s
	}
	return "Unknown"
}

// AllColors returns the 8 car colors in declaration order.
func AllColors() []Color {
	return []Color{
		ColorBlack, ColorViolet, ColorBlue, ColorGreen,
		ColorYellow, ColorOrange, ColorRed, ColorWhite,
	}
}

// Card is a train card: one car per color plus the locomotive wildcard.
// Cards are ordered by declaration order.
type Card int

const (
	CardBlack Card = iota
	CardViolet
	CardBlue
	CardGreen
	CardYellow
	CardOrange
	CardRed
	CardWhite
	Locomotive
)

const CardKindCount = int(Locomotive) + 1

var cardNames = map[Card]string{
	CardBlack:  "Black",
	CardViolet: "Violet",
	CardBlue:   "Blue",
	CardGreen:  "Green",
	CardYellow: "Yellow",
	CardOrange: "Orange",
	CardRed:    "Red",
	CardWhite:  "White",
	Locomotive: "Locomotive",
}

func (c Card) String() string {
	if s, ok := cardNames[c]; ok {
		return s
	}
	return "Unknown"
}

// Color returns the card's color, ColorNone for the locomotive.
func (c Card) Color() Color {
	if c < CardBlack || c >= Locomotive {
		return ColorNone
	}
	return Color(c + 1)
}

func (c Card) Compare(o Card) int { return cmp.Compare(c, o) }

func (c Card) MarshalText() ([]byte, error) {
	if _, ok := cardNames[c]; !ok {
		return nil, fmt.Errorf("unknown card %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(text []byte) error {
	for k, name := range cardNames {
		if name == string(text) {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("unknown card %q", text)
}

// CardOf returns the car card of the given color; ColorNone maps to the
// locomotive.
func CardOf(color Color) Card {
	if color <= ColorNone || color > ColorWhite {
		return Locomotive
	}
	return Card(color - 1)
}

// AllCardKinds returns every card kind, locomotive last.
func AllCardKinds() []Card {
	return append(Cars(), Locomotive)
}

// Cars returns the 8 colored card kinds.
func Cars() []Card {
	return []Card{
		CardBlack, CardViolet, CardBlue, CardGreen,
		CardYellow, CardOrange, CardRed, CardWhite,
	}
}
