package engine

import (
	"fmt"

	"tchu/internal/bag"
)

// Level tells whether a route runs above ground or through a tunnel.
type Level int

const (
	Overground Level = iota
	Underground
)

var levelNames = map[Level]string{
	Overground:  "Overground",
	Underground: "Underground",
}

func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return "Unknown"
}

// Route is an immutable edge between two stations. A route with color
// ColorNone can be claimed with cards of any single color.
type Route struct {
	id       string
	station1 *Station
	station2 *Station
	length   int
	level    Level
	color    Color
}

func NewRoute(id string, s1, s2 *Station, length int, level Level, color Color) (*Route, error) {
	if s1 == nil || s2 == nil {
		return nil, fmt.Errorf("%w: route %s: missing station", ErrInvalidArgument, id)
	}
	if s1.ID == s2.ID {
		return nil, fmt.Errorf("%w: route %s links %s to itself", ErrInvalidArgument, id, s1)
	}
	if length < MinRouteLength || length > MaxRouteLength {
		return nil, fmt.Errorf("%w: route %s: length %d outside [%d,%d]",
			ErrInvalidArgument, id, length, MinRouteLength, MaxRouteLength)
	}
	return &Route{id: id, station1: s1, station2: s2, length: length, level: level, color: color}, nil
}

func (r *Route) ID() string           { return r.id }
func (r *Route) Station1() *Station   { return r.station1 }
func (r *Route) Station2() *Station   { return r.station2 }
func (r *Route) Length() int          { return r.length }
func (r *Route) Level() Level         { return r.level }
func (r *Route) Color() Color         { return r.color }
func (r *Route) Stations() []*Station { return []*Station{r.station1, r.station2} }

func (r *Route) String() string {
	return fmt.Sprintf("%s - %s", r.station1, r.station2)
}

// touches reports whether s is one of the route's ends.
func (r *Route) touches(s *Station) bool {
	return r.station1.ID == s.ID || r.station2.ID == s.ID
}

// StationOpposite returns the end of the route that is not s.
func (r *Route) StationOpposite(s *Station) (*Station, error) {
	switch s.ID {
	case r.station1.ID:
		return r.station2, nil
	case r.station2.ID:
		return r.station1, nil
	}
	return nil, fmt.Errorf("%w: %s is not an end of route %s", ErrInvalidArgument, s, r.id)
}

// candidateCards returns the car cards usable on this route.
func (r *Route) candidateCards() []Card {
	if r.color == ColorNone {
		return Cars()
	}
	return []Card{CardOf(r.color)}
}

// PossibleClaimCards lists every card set that can be played to claim the
// route, by ascending locomotive count then by card order. Overground
// routes never take locomotives.
func (r *Route) PossibleClaimCards() []bag.Bag[Card] {
	cars := r.candidateCards()
	if r.level == Overground {
		out := make([]bag.Bag[Card], 0, len(cars))
		for _, c := range cars {
			out = append(out, bag.Repeat(r.length, c))
		}
		return out
	}

	out := make([]bag.Bag[Card], 0, r.length*len(cars)+1)
	for locos := 0; locos < r.length; locos++ {
		for _, c := range cars {
			out = append(out, bag.Repeat(r.length-locos, c).Union(bag.Repeat(locos, Locomotive)))
		}
	}
	return append(out, bag.Repeat(r.length, Locomotive))
}

// AdditionalClaimCardsCount returns how many more cards a player who
// attempted this tunnel with claimCards must add, given the three cards
// drawn from the deck.
func (r *Route) AdditionalClaimCardsCount(claimCards, drawnCards bag.Bag[Card]) (int, error) {
	if r.level != Underground {
		return 0, fmt.Errorf("%w: route %s is not a tunnel", ErrInvalidArgument, r.id)
	}
	if drawnCards.Size() != AdditionalTunnelCards {
		return 0, fmt.Errorf("%w: %d drawn cards, want %d",
			ErrInvalidArgument, drawnCards.Size(), AdditionalTunnelCards)
	}

	n := drawnCards.CountOf(Locomotive)
	if color := claimColor(claimCards); color != ColorNone {
		n += drawnCards.CountOf(CardOf(color))
	}
	return n, nil
}

// ClaimPoints returns the construction points earned by claiming the route.
func (r *Route) ClaimPoints() int {
	return routeClaimPoints[r.length]
}

// claimColor returns the single car color used in cards, ColorNone when
// only locomotives were played.
func claimColor(cards bag.Bag[Card]) Color {
	color := ColorNone
	for _, c := range cards.Distinct() {
		if c != Locomotive {
			color = c.Color()
		}
	}
	return color
}
