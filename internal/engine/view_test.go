package engine_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tchu/internal/engine"
)

func TestPublicViewHidesHands(t *testing.T) {
	g := newTestGame(t, 31)
	pv := g.PublicView()

	assert.Equal(t, "TicketChoice", pv.Phase)
	assert.Equal(t, g.CurrentPlayerID(), pv.CurrentPlayer)
	assert.Len(t, pv.FaceUpCards, engine.FaceUpCardsCount)
	require.Len(t, pv.Players, engine.PlayerCount)
	for _, p := range pv.Players {
		assert.Equal(t, engine.InitialCardsCount, p.CardCount)
	}

	raw, err := json.Marshal(pv)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "cards")
	assert.NotContains(t, fields, "tickets")
}

func TestViewFor(t *testing.T) {
	g := newTestGame(t, 32)
	me := g.CurrentPlayerID()

	v := g.ViewFor(me)
	assert.Equal(t, me, v.Me)
	assert.True(t, v.IsMyTurn)
	assert.True(t, v.CanDrawCards)
	assert.Equal(t, g.PlayerState(me).Cards().Slice(), v.Cards)

	other := g.ViewFor(me.Next())
	assert.False(t, other.IsMyTurn)
	assert.False(t, other.CanDrawCards)
	assert.Equal(t, g.PlayerState(me.Next()).Cards().Slice(), other.Cards)

	spectator := g.ViewFor(engine.NoPlayer)
	assert.Empty(t, spectator.Cards)
	assert.Equal(t, g.PublicView(), spectator.PublicViewData)
}
