package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tchu/internal/bag"
	"tchu/internal/engine"
)

func newTestGame(t *testing.T, seed uint64) *engine.GameState {
	t.Helper()
	g, err := engine.Initial(engine.SwissMap().Tickets(), seeded(seed))
	require.NoError(t, err)
	return g
}

func TestInitial(t *testing.T) {
	g := newTestGame(t, 42)
	tickets := engine.SwissMap().Tickets()

	assert.Equal(t, tickets.Size(), g.TicketsCount())
	assert.Equal(t, engine.NoPlayer, g.LastPlayer())
	assert.True(t, g.CurrentPlayerID().Valid())

	total := g.CardState().TotalSize()
	for _, id := range engine.AllPlayers() {
		p := g.PlayerState(id)
		assert.Equal(t, engine.InitialCardsCount, p.CardCount(), "%s", id)
		assert.Equal(t, 0, p.TicketCount(), "%s", id)
		assert.Equal(t, engine.InitialCarCount, p.CarCount(), "%s", id)
		total += p.CardCount()
	}
	assert.Equal(t, engine.TotalCardsCount, total)
	assert.Equal(t, engine.PhaseTicketChoice, g.Phase())
}

func TestInitialIsReproducible(t *testing.T) {
	g1, g2 := newTestGame(t, 99), newTestGame(t, 99)
	assert.Equal(t, g1.CurrentPlayerID(), g2.CurrentPlayerID())
	assert.Equal(t, g1.CardState().FaceUpCards(), g2.CardState().FaceUpCards())
	for _, id := range engine.AllPlayers() {
		assert.True(t, g1.PlayerState(id).Cards().Equal(g2.PlayerState(id).Cards()))
	}
	t1, _ := g1.TopTickets(5)
	t2, _ := g2.TopTickets(5)
	assert.True(t, t1.Equal(t2))
}

func TestWithDrawnFaceUpCard(t *testing.T) {
	g := newTestGame(t, 1)
	before := g.CardState()
	picked, err := before.FaceUpCard(2)
	require.NoError(t, err)

	next, err := g.WithDrawnFaceUpCard(2)
	require.NoError(t, err)

	hand := next.CurrentPlayerState().Cards()
	assert.Equal(t, g.CurrentPlayerState().Cards().CountOf(picked)+1, hand.CountOf(picked))
	assert.Equal(t, before.DeckSize()-1, next.CardState().DeckSize())
	for slot := range engine.FaceUpCardsCount {
		if slot == 2 {
			continue
		}
		want, _ := before.FaceUpCard(slot)
		got, _ := next.CardState().FaceUpCard(slot)
		assert.Equal(t, want, got, "slot %d", slot)
	}
	assert.Equal(t, g.CurrentPlayerID(), next.CurrentPlayerID())

	_, err = g.WithDrawnFaceUpCard(5)
	assert.ErrorIs(t, err, engine.ErrIndexOutOfRange)
}

func TestWithBlindlyDrawnCard(t *testing.T) {
	g := newTestGame(t, 3)
	top, err := g.TopCard()
	require.NoError(t, err)

	next, err := g.WithBlindlyDrawnCard()
	require.NoError(t, err)
	assert.Equal(t, g.CardState().DeckSize()-1, next.CardState().DeckSize())
	assert.Equal(t, g.CurrentPlayerState().CardCount()+1, next.CurrentPlayerState().CardCount())
	assert.Equal(t, g.CurrentPlayerState().Cards().CountOf(top)+1, next.CurrentPlayerState().Cards().CountOf(top))
	other := g.CurrentPlayerID().Next()
	assert.Same(t, g.PlayerState(other), next.PlayerState(other))
}

func TestCannotDrawFromExhaustedPiles(t *testing.T) {
	g := newTestGame(t, 5)
	var err error
	for g.CardState().DeckSize()+g.CardState().DiscardsSize() >= engine.FaceUpCardsCount {
		g, err = g.WithBlindlyDrawnCard()
		require.NoError(t, err)
	}
	assert.False(t, g.CanDrawCards())

	_, err = g.WithBlindlyDrawnCard()
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
	_, err = g.WithDrawnFaceUpCard(0)
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
}

func TestWithCardsDeckRecreatedIfNeeded(t *testing.T) {
	g := newTestGame(t, 6)
	assert.Same(t, g, g.WithCardsDeckRecreatedIfNeeded(seeded(1)), "deck not empty")

	var drawn bag.Builder[engine.Card]
	for !g.CardState().IsDeckEmpty() {
		c, err := g.TopCard()
		require.NoError(t, err)
		drawn.Add(c)
		g, err = g.WithoutTopCard()
		require.NoError(t, err)
	}
	g = g.WithMoreDiscardedCards(drawn.Build())
	require.Equal(t, drawn.Size(), g.CardState().DiscardsSize())

	next := g.WithCardsDeckRecreatedIfNeeded(seeded(2))
	assert.Equal(t, drawn.Size(), next.CardState().DeckSize())
	assert.Equal(t, 0, next.CardState().DiscardsSize())
}

func TestTickets(t *testing.T) {
	g := newTestGame(t, 8)
	first := g.CurrentPlayerID()

	offered, err := g.TopTickets(engine.InitialTicketsCount)
	require.NoError(t, err)
	g, err = g.WithoutTopTickets(engine.InitialTicketsCount)
	require.NoError(t, err)
	kept := bag.Of(offered.Slice()[:3]...)
	g, err = g.WithInitiallyChosenTickets(first, kept)
	require.NoError(t, err)
	assert.Equal(t, 3, g.PlayerState(first).TicketCount())

	_, err = g.WithInitiallyChosenTickets(first, kept)
	assert.ErrorIs(t, err, engine.ErrInvalidArgument, "tickets already chosen")

	before := g.TicketsCount()
	drawn, err := g.TopTickets(engine.InGameTicketsCount)
	require.NoError(t, err)
	chosen := bag.Of(drawn.Get(0))
	next, err := g.WithChosenAdditionalTickets(drawn, chosen)
	require.NoError(t, err)
	assert.Equal(t, before-engine.InGameTicketsCount, next.TicketsCount())
	assert.Equal(t, 4, next.PlayerState(first).TicketCount())

	_, err = g.WithChosenAdditionalTickets(bag.Of(drawn.Get(0)), bag.Of(drawn.Get(1)))
	assert.ErrorIs(t, err, engine.ErrInvalidArgument, "chosen outside drawn")

	_, err = g.WithoutTopTickets(g.TicketsCount() + 1)
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
}

func TestWithClaimedRoute(t *testing.T) {
	g := newTestGame(t, 10)
	m := engine.SwissMap()
	route, ok := m.Route("BER_NEU_1")
	require.True(t, ok)

	hand := g.CurrentPlayerState().Cards()
	paid := bag.Of(hand.Get(0), hand.Get(1))
	next, err := g.WithClaimedRoute(route, paid)
	require.NoError(t, err)
	assert.Equal(t, []*engine.Route{route}, next.CurrentPlayerState().Routes())
	assert.Equal(t, engine.InitialCarCount-2, next.CurrentPlayerState().CarCount())
	assert.True(t, next.CurrentPlayerState().Cards().Equal(hand.Difference(paid)))
	assert.Equal(t, g.CardState().DiscardsSize()+2, next.CardState().DiscardsSize())
	assert.Equal(t, []*engine.Route{route}, next.ClaimedRoutes())
}

func TestWithClaimedRouteKeepsCardsConserved(t *testing.T) {
	g := newTestGame(t, 10)
	route, ok := engine.SwissMap().Route("BER_NEU_1")
	require.True(t, ok)

	hand := g.CurrentPlayerState().Cards()
	paid := bag.Repeat(hand.Size()+1, hand.Get(0))
	_, err := g.WithClaimedRoute(route, paid)
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)

	_, err = g.CurrentPlayerState().WithClaimedRoute(route, paid)
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
	assert.Empty(t, g.ClaimedRoutes())
}

func TestPlayerStateOfNoPlayer(t *testing.T) {
	g := newTestGame(t, 10)
	require.Equal(t, engine.NoPlayer, g.LastPlayer())

	assert.Nil(t, g.PlayerState(g.LastPlayer()))
	assert.Equal(t, engine.PublicPlayerState{}, g.Public().PlayerState(g.LastPlayer()))
	assert.Equal(t, engine.PublicPlayerState{}, g.Public().PlayerState(engine.PlayerID(5)))
	assert.NotNil(t, g.PlayerState(engine.Player2))
}

func TestLastTurn(t *testing.T) {
	g := newTestGame(t, 12)
	m := engine.SwissMap()
	current := g.CurrentPlayerID()

	assert.False(t, g.LastTurnBegins())
	next := g.ForNextTurn()
	assert.Equal(t, current.Next(), next.CurrentPlayerID())
	assert.Equal(t, engine.NoPlayer, next.LastPlayer())

	// Claim 38 cars worth of routes for the current player.
	for _, id := range []string{"BRI_LOC_1", "GEN_YVE_1", "BRU_COI_1", "COI_WAS_1", "BEL_WAS_1", "BEL_WAS_2", "BER_LUC_1", "BER_LUC_2"} {
		r, ok := m.Route(id)
		require.True(t, ok, id)
		var err error
		g, err = g.WithClaimedRoute(r, bag.Bag[engine.Card]{})
		require.NoError(t, err, id)
	}
	require.Equal(t, 2, g.CurrentPlayerState().CarCount())
	assert.True(t, g.LastTurnBegins())

	next = g.ForNextTurn()
	assert.Equal(t, current, next.LastPlayer())
	assert.Equal(t, current.Next(), next.CurrentPlayerID())
	assert.False(t, next.LastTurnBegins())
	assert.Equal(t, current, next.ForNextTurn().LastPlayer())
}

func TestNewPublicGameState(t *testing.T) {
	g := newTestGame(t, 13)
	players := map[engine.PlayerID]engine.PublicPlayerState{
		engine.Player1: g.PlayerState(engine.Player1).Public(),
		engine.Player2: g.PlayerState(engine.Player2).Public(),
	}
	pub, err := engine.NewPublicGameState(g.TicketsCount(), g.CardState(), engine.Player2, players, engine.NoPlayer)
	require.NoError(t, err)
	assert.Equal(t, engine.Player2, pub.CurrentPlayerID())
	assert.True(t, pub.CanDrawTickets())
	assert.True(t, pub.CanDrawCards())

	_, err = engine.NewPublicGameState(-1, g.CardState(), engine.Player1, players, engine.NoPlayer)
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
	delete(players, engine.Player2)
	_, err = engine.NewPublicGameState(0, g.CardState(), engine.Player1, players, engine.NoPlayer)
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
}

func TestPhase(t *testing.T) {
	g := newTestGame(t, 14)
	require.Equal(t, engine.PhaseTicketChoice, g.Phase())

	for _, id := range engine.AllPlayers() {
		offered, err := g.TopTickets(engine.InitialTicketsCount)
		require.NoError(t, err)
		g, err = g.WithoutTopTickets(engine.InitialTicketsCount)
		require.NoError(t, err)
		g, err = g.WithInitiallyChosenTickets(id, offered)
		require.NoError(t, err)
	}
	assert.Equal(t, engine.PhasePlaying, g.Phase())

	g = claimAll(t, g, "BRI_LOC_1", "GEN_YVE_1", "BRU_COI_1", "COI_WAS_1", "BEL_WAS_1", "BEL_WAS_2", "BER_LUC_1", "BER_LUC_2")
	g = g.ForNextTurn()
	assert.Equal(t, engine.PhaseLastRound, g.Phase())
	assert.Equal(t, "LastRound", g.Phase().String())
}
