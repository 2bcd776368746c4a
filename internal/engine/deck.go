package engine

import (
	"fmt"
	"math/rand/v2"

	"tchu/internal/bag"
)

// Deck is an immutable ordered pile. Index 0 is the top.
type Deck[T bag.Item[T]] struct {
	cards []T
}

// NewDeck creates a deck holding cards, shuffled with rng.
func NewDeck[T bag.Item[T]](cards bag.Bag[T], rng *rand.Rand) *Deck[T] {
	d := &Deck[T]{cards: cards.Slice()}
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	return d
}

// Size returns the number of cards remaining.
func (d *Deck[T]) Size() int {
	return len(d.cards)
}

func (d *Deck[T]) IsEmpty() bool {
	return len(d.cards) == 0
}

func (d *Deck[T]) TopCard() (T, error) {
	if d.IsEmpty() {
		var zero T
		return zero, fmt.Errorf("%w: deck is empty", ErrInvalidArgument)
	}
	return d.cards[0], nil
}

func (d *Deck[T]) WithoutTopCard() (*Deck[T], error) {
	return d.WithoutTopCards(1)
}

// TopCards returns the top n cards without removing them.
func (d *Deck[T]) TopCards(n int) (bag.Bag[T], error) {
	if err := d.checkCount(n); err != nil {
		return bag.Bag[T]{}, err
	}
	return bag.Of(d.cards[:n]...), nil
}

// WithoutTopCards returns the deck minus its top n cards.
func (d *Deck[T]) WithoutTopCards(n int) (*Deck[T], error) {
	if err := d.checkCount(n); err != nil {
		return nil, err
	}
	return &Deck[T]{cards: d.cards[n:]}, nil
}

func (d *Deck[T]) checkCount(n int) error {
	if n < 0 || n > len(d.cards) {
		return fmt.Errorf("%w: %d cards requested from a deck of %d", ErrInvalidArgument, n, len(d.cards))
	}
	return nil
}
