package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tchu/internal/bag"
	"tchu/internal/engine"
)

func newCardState(t *testing.T, seed uint64) *engine.CardState {
	t.Helper()
	cs, err := engine.NewCardState(engine.NewDeck(engine.FullCardSet(), seeded(seed)))
	require.NoError(t, err)
	return cs
}

func TestNewCardState(t *testing.T) {
	deck := engine.NewDeck(engine.FullCardSet(), seeded(5))
	cs, err := engine.NewCardState(deck)
	require.NoError(t, err)

	top, err := deck.TopCards(engine.FaceUpCardsCount)
	require.NoError(t, err)
	assert.True(t, bag.Of(cs.FaceUpCards()...).Equal(top))
	assert.Equal(t, deck.Size()-engine.FaceUpCardsCount, cs.DeckSize())
	assert.Equal(t, 0, cs.DiscardsSize())
	assert.Equal(t, deck.Size(), cs.TotalSize())

	_, err = engine.NewCardState(engine.NewDeck(bag.Repeat(4, engine.CardRed), seeded(1)))
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
}

func TestCardStateTotalSizeMatchesDeck(t *testing.T) {
	for _, n := range []int{5, 6, 12, 40} {
		deck := engine.NewDeck(bag.Repeat(n, engine.CardYellow), seeded(uint64(n)))
		cs, err := engine.NewCardState(deck)
		require.NoError(t, err)
		assert.Equal(t, n, cs.TotalSize(), "deck of %d", n)
	}
}

func TestCardStateWithoutTopDeckCard(t *testing.T) {
	cs := newCardState(t, 9)
	next, err := cs.WithoutTopDeckCard()
	require.NoError(t, err)
	assert.Equal(t, cs.DeckSize()-1, next.DeckSize())
	assert.Equal(t, cs.FaceUpCards(), next.FaceUpCards())
}

func TestCardStateWithDrawnFaceUpCard(t *testing.T) {
	cs := newCardState(t, 2)
	top, err := cs.TopDeckCard()
	require.NoError(t, err)

	next, err := cs.WithDrawnFaceUpCard(3)
	require.NoError(t, err)
	assert.Equal(t, cs.DeckSize()-1, next.DeckSize())
	for slot := range engine.FaceUpCardsCount {
		want, _ := cs.FaceUpCard(slot)
		if slot == 3 {
			want = top
		}
		got, err := next.FaceUpCard(slot)
		require.NoError(t, err)
		assert.Equal(t, want, got, "slot %d", slot)
	}

	for _, slot := range []int{-1, engine.FaceUpCardsCount} {
		_, err := cs.WithDrawnFaceUpCard(slot)
		assert.ErrorIs(t, err, engine.ErrIndexOutOfRange, "slot %d", slot)
		_, err = cs.FaceUpCard(slot)
		assert.ErrorIs(t, err, engine.ErrIndexOutOfRange, "slot %d", slot)
	}
}

func TestCardStateEmptyDeck(t *testing.T) {
	cs, err := engine.NewCardState(engine.NewDeck(bag.Repeat(5, engine.CardWhite), seeded(1)))
	require.NoError(t, err)
	require.True(t, cs.IsDeckEmpty())

	_, err = cs.TopDeckCard()
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
	_, err = cs.WithoutTopDeckCard()
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
	_, err = cs.WithDrawnFaceUpCard(0)
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
}

func TestCardStateRecreateDeck(t *testing.T) {
	cs := newCardState(t, 4)
	_, err := cs.WithDeckRecreatedFromDiscards(seeded(1))
	assert.ErrorIs(t, err, engine.ErrInvalidArgument, "draw pile not empty")

	// Empty the draw pile into the discards.
	var discarded bag.Builder[engine.Card]
	for !cs.IsDeckEmpty() {
		c, err := cs.TopDeckCard()
		require.NoError(t, err)
		discarded.Add(c)
		cs, err = cs.WithoutTopDeckCard()
		require.NoError(t, err)
	}
	discards := discarded.Build()
	cs = cs.WithMoreDiscardedCards(discards)
	require.Equal(t, discards.Size(), cs.DiscardsSize())

	next, err := cs.WithDeckRecreatedFromDiscards(seeded(8))
	require.NoError(t, err)
	assert.Equal(t, discards.Size(), next.DeckSize())
	assert.Equal(t, 0, next.DiscardsSize())
	assert.Equal(t, cs.FaceUpCards(), next.FaceUpCards())

	var redrawn bag.Builder[engine.Card]
	for !next.IsDeckEmpty() {
		c, _ := next.TopDeckCard()
		redrawn.Add(c)
		next, _ = next.WithoutTopDeckCard()
	}
	assert.True(t, redrawn.Build().Equal(discards), "reshuffle lost or added cards")
}

func TestNewPublicCardState(t *testing.T) {
	faceUp := []engine.Card{engine.CardRed, engine.CardRed, engine.Locomotive, engine.CardBlue, engine.CardBlack}
	pcs, err := engine.NewPublicCardState(faceUp, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, 18, pcs.TotalSize())
	assert.False(t, pcs.IsDeckEmpty())

	faceUp[0] = engine.CardGreen
	c, _ := pcs.FaceUpCard(0)
	assert.Equal(t, engine.CardRed, c, "face-up cards must be copied")

	_, err = engine.NewPublicCardState(faceUp[:4], 10, 3)
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
	_, err = engine.NewPublicCardState(faceUp, -1, 0)
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
}
