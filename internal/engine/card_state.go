package engine

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"tchu/internal/bag"
)

// PublicCardState is what every player sees of the cards: the face-up row
// and the sizes of the draw and discard piles.
type PublicCardState struct {
	faceUpCards  []Card
	deckSize     int
	discardsSize int
}

func NewPublicCardState(faceUpCards []Card, deckSize, discardsSize int) (PublicCardState, error) {
	if len(faceUpCards) != FaceUpCardsCount || deckSize < 0 || discardsSize < 0 {
		return PublicCardState{}, fmt.Errorf("%w: card state with %d face-up cards, deck %d, discards %d",
			ErrInvalidArgument, len(faceUpCards), deckSize, discardsSize)
	}
	return PublicCardState{
		faceUpCards:  slices.Clone(faceUpCards),
		deckSize:     deckSize,
		discardsSize: discardsSize,
	}, nil
}

func (s PublicCardState) FaceUpCards() []Card { return slices.Clone(s.faceUpCards) }
func (s PublicCardState) DeckSize() int       { return s.deckSize }
func (s PublicCardState) IsDeckEmpty() bool   { return s.deckSize == 0 }
func (s PublicCardState) DiscardsSize() int   { return s.discardsSize }

// TotalSize counts face-up, deck and discarded cards.
func (s PublicCardState) TotalSize() int {
	return len(s.faceUpCards) + s.deckSize + s.discardsSize
}

func (s PublicCardState) FaceUpCard(slot int) (Card, error) {
	if err := checkSlot(slot); err != nil {
		return 0, err
	}
	return s.faceUpCards[slot], nil
}

func checkSlot(slot int) error {
	if slot < 0 || slot >= FaceUpCardsCount {
		return fmt.Errorf("%w: face-up slot %d outside [0,%d)", ErrIndexOutOfRange, slot, FaceUpCardsCount)
	}
	return nil
}

// CardState adds the hidden draw pile and the discard pile to the public
// card state.
type CardState struct {
	PublicCardState
	deck     *Deck[Card]
	discards bag.Bag[Card]
}

func newCardState(faceUp []Card, deck *Deck[Card], discards bag.Bag[Card]) *CardState {
	return &CardState{
		PublicCardState: PublicCardState{
			faceUpCards:  faceUp,
			deckSize:     deck.Size(),
			discardsSize: discards.Size(),
		},
		deck:     deck,
		discards: discards,
	}
}

// NewCardState lays the top five cards of deck face up; the rest becomes the
// draw pile.
func NewCardState(deck *Deck[Card]) (*CardState, error) {
	if deck.Size() < FaceUpCardsCount {
		return nil, fmt.Errorf("%w: deck of %d cannot fill %d face-up slots",
			ErrInvalidArgument, deck.Size(), FaceUpCardsCount)
	}
	faceUp := slices.Clone(deck.cards[:FaceUpCardsCount])
	rest, err := deck.WithoutTopCards(FaceUpCardsCount)
	if err != nil {
		return nil, err
	}
	return newCardState(faceUp, rest, bag.Bag[Card]{}), nil
}

// Public returns the public part of the state.
func (s *CardState) Public() PublicCardState { return s.PublicCardState }

// WithDrawnFaceUpCard replaces the face-up card at slot with the top of the
// draw pile.
func (s *CardState) WithDrawnFaceUpCard(slot int) (*CardState, error) {
	if err := checkSlot(slot); err != nil {
		return nil, err
	}
	top, err := s.TopDeckCard()
	if err != nil {
		return nil, err
	}
	rest, err := s.deck.WithoutTopCard()
	if err != nil {
		return nil, err
	}
	faceUp := slices.Clone(s.faceUpCards)
	faceUp[slot] = top
	return newCardState(faceUp, rest, s.discards), nil
}

func (s *CardState) TopDeckCard() (Card, error) {
	return s.deck.TopCard()
}

func (s *CardState) WithoutTopDeckCard() (*CardState, error) {
	rest, err := s.deck.WithoutTopCard()
	if err != nil {
		return nil, err
	}
	return newCardState(s.faceUpCards, rest, s.discards), nil
}

// WithDeckRecreatedFromDiscards shuffles the discards into a new draw pile.
// The draw pile must be empty.
func (s *CardState) WithDeckRecreatedFromDiscards(rng *rand.Rand) (*CardState, error) {
	if !s.IsDeckEmpty() {
		return nil, fmt.Errorf("%w: draw pile still holds %d cards", ErrInvalidArgument, s.deckSize)
	}
	return newCardState(s.faceUpCards, NewDeck(s.discards, rng), bag.Bag[Card]{}), nil
}

func (s *CardState) WithMoreDiscardedCards(cards bag.Bag[Card]) *CardState {
	return newCardState(s.faceUpCards, s.deck, s.discards.Union(cards))
}
