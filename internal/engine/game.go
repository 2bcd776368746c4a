package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"tchu/internal/bag"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// PublicGameState is the part of a game every player and spectator may see.
type PublicGameState struct {
	ticketsCount    int
	cardState       PublicCardState
	currentPlayerID PlayerID
	players         [PlayerCount]PublicPlayerState
	lastPlayer      PlayerID
}

// NewPublicGameState validates and assembles a public game state. lastPlayer
// is NoPlayer until the last round has been triggered.
func NewPublicGameState(ticketsCount int, cardState PublicCardState, currentPlayerID PlayerID,
	players map[PlayerID]PublicPlayerState, lastPlayer PlayerID) (PublicGameState, error) {
	if ticketsCount < 0 {
		return PublicGameState{}, fmt.Errorf("%w: %d tickets", ErrInvalidArgument, ticketsCount)
	}
	if len(players) != PlayerCount {
		return PublicGameState{}, fmt.Errorf("%w: %d players, want %d", ErrInvalidArgument, len(players), PlayerCount)
	}
	if !currentPlayerID.Valid() || (lastPlayer != NoPlayer && !lastPlayer.Valid()) {
		return PublicGameState{}, fmt.Errorf("%w: current %s, last %s", ErrInvalidArgument, currentPlayerID, lastPlayer)
	}
	s := PublicGameState{
		ticketsCount:    ticketsCount,
		cardState:       cardState,
		currentPlayerID: currentPlayerID,
		lastPlayer:      lastPlayer,
	}
	for _, id := range AllPlayers() {
		ps, ok := players[id]
		if !ok {
			return PublicGameState{}, fmt.Errorf("%w: missing %s", ErrInvalidArgument, id)
		}
		s.players[id] = ps
	}
	return s, nil
}

func (s PublicGameState) TicketsCount() int          { return s.ticketsCount }
func (s PublicGameState) CanDrawTickets() bool       { return s.ticketsCount > 0 }
func (s PublicGameState) CardState() PublicCardState { return s.cardState }
func (s PublicGameState) CurrentPlayerID() PlayerID  { return s.currentPlayerID }
func (s PublicGameState) LastPlayer() PlayerID       { return s.lastPlayer }

// CanDrawCards reports whether the draw and discard piles together still
// hold enough cards to refill the face-up row.
func (s PublicGameState) CanDrawCards() bool {
	return s.cardState.DeckSize()+s.cardState.DiscardsSize() >= FaceUpCardsCount
}

// PlayerState returns the public state of seat id, or the zero value when id
// is not a seat (NoPlayer included).
func (s PublicGameState) PlayerState(id PlayerID) PublicPlayerState {
	if !id.Valid() {
		return PublicPlayerState{}
	}
	return s.players[id]
}

func (s PublicGameState) CurrentPlayerState() PublicPlayerState {
	return s.players[s.currentPlayerID]
}

// ClaimedRoutes returns the routes of both players, first player first.
func (s PublicGameState) ClaimedRoutes() []*Route {
	var routes []*Route
	for _, ps := range s.players {
		routes = append(routes, ps.routes...)
	}
	return routes
}

// GameState is a complete snapshot of a game. Every transition returns a new
// snapshot and leaves the receiver untouched.
type GameState struct {
	PublicGameState
	tickets      *Deck[*Ticket]
	cards        *CardState
	playerStates [PlayerCount]*PlayerState
}

func newGameState(tickets *Deck[*Ticket], cards *CardState, current PlayerID,
	players [PlayerCount]*PlayerState, lastPlayer PlayerID) *GameState {
	g := &GameState{
		PublicGameState: PublicGameState{
			ticketsCount:    tickets.Size(),
			cardState:       cards.Public(),
			currentPlayerID: current,
			lastPlayer:      lastPlayer,
		},
		tickets:      tickets,
		cards:        cards,
		playerStates: players,
	}
	for i, ps := range players {
		g.players[i] = ps.Public()
	}
	return g
}

// Initial shuffles the cards, picks the first player, deals the opening
// hands and shuffles the tickets, all with rng.
func Initial(tickets bag.Bag[*Ticket], rng *rand.Rand) (*GameState, error) {
	deck := NewDeck(FullCardSet(), rng)
	first := PlayerID(rng.IntN(PlayerCount))

	var players [PlayerCount]*PlayerState
	for _, id := range AllPlayers() {
		hand, err := deck.TopCards(InitialCardsCount)
		if err != nil {
			return nil, err
		}
		if deck, err = deck.WithoutTopCards(InitialCardsCount); err != nil {
			return nil, err
		}
		if players[id], err = InitialPlayerState(hand); err != nil {
			return nil, err
		}
	}

	cards, err := NewCardState(deck)
	if err != nil {
		return nil, err
	}
	return newGameState(NewDeck(tickets, rng), cards, first, players, NoPlayer), nil
}

// Public returns the public part of the snapshot.
func (g *GameState) Public() PublicGameState { return g.PublicGameState }

// PlayerState returns the state of seat id, nil when id is not a seat.
func (g *GameState) PlayerState(id PlayerID) *PlayerState {
	if !id.Valid() {
		return nil
	}
	return g.playerStates[id]
}

func (g *GameState) CurrentPlayerState() *PlayerState {
	return g.playerStates[g.currentPlayerID]
}

// TopTickets returns the top n tickets of the ticket deck.
func (g *GameState) TopTickets(n int) (bag.Bag[*Ticket], error) {
	return g.tickets.TopCards(n)
}

func (g *GameState) WithoutTopTickets(n int) (*GameState, error) {
	rest, err := g.tickets.WithoutTopCards(n)
	if err != nil {
		return nil, err
	}
	return g.with(rest, g.cards, g.playerStates), nil
}

// TopCard returns the top card of the draw pile.
func (g *GameState) TopCard() (Card, error) {
	return g.cards.TopDeckCard()
}

func (g *GameState) WithoutTopCard() (*GameState, error) {
	cards, err := g.cards.WithoutTopDeckCard()
	if err != nil {
		return nil, err
	}
	return g.with(g.tickets, cards, g.playerStates), nil
}

func (g *GameState) WithMoreDiscardedCards(discarded bag.Bag[Card]) *GameState {
	return g.with(g.tickets, g.cards.WithMoreDiscardedCards(discarded), g.playerStates)
}

// WithCardsDeckRecreatedIfNeeded reshuffles the discards into the draw pile
// when, and only when, the draw pile is empty.
func (g *GameState) WithCardsDeckRecreatedIfNeeded(rng *rand.Rand) *GameState {
	if !g.cards.IsDeckEmpty() {
		return g
	}
	cards, err := g.cards.WithDeckRecreatedFromDiscards(rng)
	if err != nil {
		return g
	}
	return g.with(g.tickets, cards, g.playerStates)
}

// WithInitiallyChosenTickets gives the opening tickets to a player who holds
// none yet.
func (g *GameState) WithInitiallyChosenTickets(id PlayerID, chosen bag.Bag[*Ticket]) (*GameState, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: player %s", ErrInvalidArgument, id)
	}
	if n := g.playerStates[id].TicketCount(); n > 0 {
		return nil, fmt.Errorf("%w: %s already holds %d tickets", ErrInvalidArgument, id, n)
	}
	players := g.playerStates
	players[id] = players[id].WithAddedTickets(chosen)
	return g.with(g.tickets, g.cards, players), nil
}

// WithChosenAdditionalTickets gives the current player the chosen tickets
// and removes every drawn ticket from the deck.
func (g *GameState) WithChosenAdditionalTickets(drawn, chosen bag.Bag[*Ticket]) (*GameState, error) {
	if !drawn.Contains(chosen) {
		return nil, fmt.Errorf("%w: chosen tickets %v not among drawn %v", ErrInvalidArgument, chosen, drawn)
	}
	rest, err := g.tickets.WithoutTopCards(drawn.Size())
	if err != nil {
		return nil, err
	}
	players := g.playerStates
	players[g.currentPlayerID] = players[g.currentPlayerID].WithAddedTickets(chosen)
	return g.with(rest, g.cards, players), nil
}

// WithDrawnFaceUpCard moves the face-up card at slot into the current
// player's hand and refills the slot from the draw pile.
func (g *GameState) WithDrawnFaceUpCard(slot int) (*GameState, error) {
	if !g.CanDrawCards() {
		return nil, fmt.Errorf("%w: not enough cards left to draw", ErrInvalidArgument)
	}
	card, err := g.cards.FaceUpCard(slot)
	if err != nil {
		return nil, err
	}
	cards, err := g.cards.WithDrawnFaceUpCard(slot)
	if err != nil {
		return nil, err
	}
	players := g.playerStates
	players[g.currentPlayerID] = players[g.currentPlayerID].WithAddedCard(card)
	return g.with(g.tickets, cards, players), nil
}

// WithBlindlyDrawnCard moves the top of the draw pile into the current
// player's hand.
func (g *GameState) WithBlindlyDrawnCard() (*GameState, error) {
	if !g.CanDrawCards() {
		return nil, fmt.Errorf("%w: not enough cards left to draw", ErrInvalidArgument)
	}
	card, err := g.cards.TopDeckCard()
	if err != nil {
		return nil, err
	}
	cards, err := g.cards.WithoutTopDeckCard()
	if err != nil {
		return nil, err
	}
	players := g.playerStates
	players[g.currentPlayerID] = players[g.currentPlayerID].WithAddedCard(card)
	return g.with(g.tickets, cards, players), nil
}

// WithClaimedRoute gives route to the current player and discards the cards
// used. Whether the cards suit the route is the caller's to check with
// CanClaimRoute; cards the player does not hold are rejected.
func (g *GameState) WithClaimedRoute(route *Route, cards bag.Bag[Card]) (*GameState, error) {
	ps, err := g.CurrentPlayerState().WithClaimedRoute(route, cards)
	if err != nil {
		return nil, err
	}
	players := g.playerStates
	players[g.currentPlayerID] = ps
	return g.with(g.tickets, g.cards.WithMoreDiscardedCards(cards), players), nil
}

// LastTurnBegins reports, at the end of a turn, whether the current player
// has just triggered the last round.
func (g *GameState) LastTurnBegins() bool {
	return g.lastPlayer == NoPlayer && g.CurrentPlayerState().CarCount() <= LastTurnCarCount
}

// ForNextTurn hands the turn to the other player, recording the current one
// as the last player if the last round starts now.
func (g *GameState) ForNextTurn() *GameState {
	last := g.lastPlayer
	if g.LastTurnBegins() {
		last = g.currentPlayerID
	}
	return newGameState(g.tickets, g.cards, g.currentPlayerID.Next(), g.playerStates, last)
}

func (g *GameState) with(tickets *Deck[*Ticket], cards *CardState, players [PlayerCount]*PlayerState) *GameState {
	return newGameState(tickets, cards, g.currentPlayerID, players, g.lastPlayer)
}
