package protocol_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tchu/internal/protocol"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	env := protocol.MustEnvelope(protocol.MsgReady, protocol.ReadyMsg{Ready: true})
	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"ready","payload":{"ready":true}}`, string(raw))

	var got protocol.Envelope
	require.NoError(t, json.Unmarshal(raw, &got))
	var msg protocol.ReadyMsg
	require.NoError(t, got.Decode(&msg))
	assert.True(t, msg.Ready)
}

func TestEnvelopeDecodeEmpty(t *testing.T) {
	msg := protocol.ReadyMsg{Ready: true}
	require.NoError(t, protocol.Envelope{Type: protocol.MsgStartGame}.Decode(&msg))
	assert.True(t, msg.Ready)

	bad := protocol.Envelope{Type: protocol.MsgReady, Payload: json.RawMessage(`"x"`)}
	assert.Error(t, bad.Decode(&msg))
}

func TestNewEnvelopeError(t *testing.T) {
	_, err := protocol.NewEnvelope(protocol.MsgError, make(chan int))
	assert.Error(t, err)
	assert.Panics(t, func() { protocol.MustEnvelope(protocol.MsgError, make(chan int)) })
}
