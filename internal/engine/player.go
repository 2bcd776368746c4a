package engine

import (
	"fmt"
	"slices"

	"tchu/internal/bag"
)

// PlayerID identifies one of the two seats.
type PlayerID int

const (
	NoPlayer PlayerID = -1
	Player1  PlayerID = 0
	Player2  PlayerID = 1
)

const PlayerCount = 2

var playerNames = map[PlayerID]string{
	NoPlayer: "none",
	Player1:  "player1",
	Player2:  "player2",
}

func (p PlayerID) String() string {
	if s, ok := playerNames[p]; ok {
		return s
	}
	return "unknown"
}

// Next returns the other player.
func (p PlayerID) Next() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

func (p PlayerID) Valid() bool { return p == Player1 || p == Player2 }

// AllPlayers returns both seats in order.
func AllPlayers() []PlayerID {
	return []PlayerID{Player1, Player2}
}

// PublicPlayerState is what the opponent may know about a player. Car count
// and claim points are derived from the claimed routes.
type PublicPlayerState struct {
	ticketCount int
	cardCount   int
	routes      []*Route
	carCount    int
	claimPoints int
}

func NewPublicPlayerState(ticketCount, cardCount int, routes []*Route) (PublicPlayerState, error) {
	if ticketCount < 0 || cardCount < 0 {
		return PublicPlayerState{}, fmt.Errorf("%w: %d tickets, %d cards", ErrInvalidArgument, ticketCount, cardCount)
	}
	return newPublicPlayerState(ticketCount, cardCount, slices.Clone(routes)), nil
}

func newPublicPlayerState(ticketCount, cardCount int, routes []*Route) PublicPlayerState {
	s := PublicPlayerState{
		ticketCount: ticketCount,
		cardCount:   cardCount,
		routes:      routes,
		carCount:    InitialCarCount,
	}
	for _, r := range routes {
		s.carCount -= r.length
		s.claimPoints += r.ClaimPoints()
	}
	return s
}

func (s PublicPlayerState) TicketCount() int { return s.ticketCount }
func (s PublicPlayerState) CardCount() int   { return s.cardCount }
func (s PublicPlayerState) Routes() []*Route { return slices.Clone(s.routes) }
func (s PublicPlayerState) CarCount() int    { return s.carCount }
func (s PublicPlayerState) ClaimPoints() int { return s.claimPoints }

// PlayerState is the full state of a player, hand included.
type PlayerState struct {
	PublicPlayerState
	tickets bag.Bag[*Ticket]
	cards   bag.Bag[Card]
}

func NewPlayerState(tickets bag.Bag[*Ticket], cards bag.Bag[Card], routes []*Route) *PlayerState {
	return newPlayerState(tickets, cards, slices.Clone(routes))
}

func newPlayerState(tickets bag.Bag[*Ticket], cards bag.Bag[Card], routes []*Route) *PlayerState {
	return &PlayerState{
		PublicPlayerState: newPublicPlayerState(tickets.Size(), cards.Size(), routes),
		tickets:           tickets,
		cards:             cards,
	}
}

// InitialPlayerState returns a player holding the dealt cards and nothing
// else.
func InitialPlayerState(cards bag.Bag[Card]) (*PlayerState, error) {
	if cards.Size() != InitialCardsCount {
		return nil, fmt.Errorf("%w: dealt %d cards, want %d", ErrInvalidArgument, cards.Size(), InitialCardsCount)
	}
	return newPlayerState(bag.Bag[*Ticket]{}, cards, nil), nil
}

func (s *PlayerState) Public() PublicPlayerState { return s.PublicPlayerState }
func (s *PlayerState) Tickets() bag.Bag[*Ticket] { return s.tickets }
func (s *PlayerState) Cards() bag.Bag[Card]      { return s.cards }

func (s *PlayerState) WithAddedTickets(tickets bag.Bag[*Ticket]) *PlayerState {
	return newPlayerState(s.tickets.Union(tickets), s.cards, s.routes)
}

func (s *PlayerState) WithAddedCard(card Card) *PlayerState {
	return s.WithAddedCards(bag.Of(card))
}

func (s *PlayerState) WithAddedCards(cards bag.Bag[Card]) *PlayerState {
	return newPlayerState(s.tickets, s.cards.Union(cards), s.routes)
}

// CanClaimRoute reports whether the player has enough cars and cards.
func (s *PlayerState) CanClaimRoute(route *Route) bool {
	options, err := s.PossibleClaimCards(route)
	return err == nil && len(options) > 0
}

// PossibleClaimCards filters the route's claim sets down to those the hand
// can pay for.
func (s *PlayerState) PossibleClaimCards(route *Route) ([]bag.Bag[Card], error) {
	if s.carCount < route.length {
		return nil, fmt.Errorf("%w: %d cars left for route %s of length %d",
			ErrInvalidArgument, s.carCount, route.id, route.length)
	}
	var out []bag.Bag[Card]
	for _, option := range route.PossibleClaimCards() {
		if s.cards.Contains(option) {
			out = append(out, option)
		}
	}
	return out, nil
}

// PossibleAdditionalCards lists the card sets the player can add to win a
// tunnel attempt made with initialCards, fewest locomotives first.
func (s *PlayerState) PossibleAdditionalCards(additionalCount int, initialCards, drawnCards bag.Bag[Card]) ([]bag.Bag[Card], error) {
	switch {
	case additionalCount < 1 || additionalCount > AdditionalTunnelCards:
		return nil, fmt.Errorf("%w: %d additional cards", ErrInvalidArgument, additionalCount)
	case initialCards.IsEmpty() || len(initialCards.Distinct()) > 2:
		return nil, fmt.Errorf("%w: initial cards %v", ErrInvalidArgument, initialCards)
	case drawnCards.Size() != AdditionalTunnelCards:
		return nil, fmt.Errorf("%w: %d drawn cards, want %d", ErrInvalidArgument, drawnCards.Size(), AdditionalTunnelCards)
	}

	color := claimColor(initialCards)
	var usable bag.Builder[Card]
	for c, n := range s.cards.Difference(initialCards).All() {
		if c == Locomotive || (color != ColorNone && c.Color() == color) {
			usable.AddN(n, c)
		}
	}
	if usable.Size() < additionalCount {
		return nil, nil
	}

	options := usable.Build().SubsetsOfSize(additionalCount)
	slices.SortStableFunc(options, func(a, b bag.Bag[Card]) int {
		return a.CountOf(Locomotive) - b.CountOf(Locomotive)
	})
	return options, nil
}

// WithClaimedRoute records the route and removes the cards paid for it. The
// payment must come out of the hand.
func (s *PlayerState) WithClaimedRoute(route *Route, cards bag.Bag[Card]) (*PlayerState, error) {
	if !s.cards.Contains(cards) {
		return nil, fmt.Errorf("%w: paying %v from hand %v", ErrInvalidArgument, cards, s.cards)
	}
	routes := append(slices.Clip(s.routes), route)
	return newPlayerState(s.tickets, s.cards.Difference(cards), routes), nil
}

// TicketPoints scores every held ticket against the player's network.
func (s *PlayerState) TicketPoints() int {
	maxID := 0
	for _, r := range s.routes {
		maxID = max(maxID, r.station1.ID, r.station2.ID)
	}
	builder, _ := NewPartitionBuilder(maxID + 1)
	for _, r := range s.routes {
		builder.Connect(r.station1, r.station2)
	}
	partition := builder.Build()

	points := 0
	for t, n := range s.tickets.All() {
		points += n * t.Points(partition)
	}
	return points
}

// FinalPoints is claim points plus ticket points.
func (s *PlayerState) FinalPoints() int {
	return s.claimPoints + s.TicketPoints()
}
