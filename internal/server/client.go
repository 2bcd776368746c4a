package server

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tchu/internal/engine"
	"tchu/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// ClientType tells a spectator screen from a seated player.
type ClientType int

const (
	ClientTV ClientType = iota
	ClientPlayer
)

func (t ClientType) String() string {
	if t == ClientTV {
		return "tv"
	}
	return "player"
}

// Client is one websocket attached to a hub. A TV has no PlayerID and sits
// at engine.NoPlayer.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	logger   zerolog.Logger
	PlayerID string
	Seat     engine.PlayerID
	Type     ClientType
}

func NewClient(hub *Hub, conn *websocket.Conn, playerID string, seat engine.PlayerID, clientType ClientType) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		logger: log.With().
			Str("game", hub.gameID).
			Stringer("client", clientType).
			Str("player", playerID).
			Logger(),
		PlayerID: playerID,
		Seat:     seat,
		Type:     clientType,
	}
}

// serve attaches the client to its hub and pumps the connection until either
// side goes away. It returns false without touching the connection when the
// hub has already stopped.
func (c *Client) serve() bool {
	if !c.hub.attach(c) {
		return false
	}
	go c.writeLoop()
	go c.readLoop()
	return true
}

// readLoop turns inbound frames into hub messages. A frame that is not an
// envelope reaches the hub as an empty one, which answers it with an error.
func (c *Client) readLoop() {
	defer func() {
		c.hub.detach(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn().Err(err).Msg("ws read error")
			}
			return
		}
		var env protocol.Envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			c.logger.Debug().Err(err).Msg("ws parse error")
			env = protocol.Envelope{}
		}
		if !c.hub.deliver(IncomingMessage{Client: c, Envelope: env}) {
			return
		}
	}
}

// writeLoop owns every write on the connection. The hub closes send to end it.
func (c *Client) writeLoop() {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		c.conn.Close()
	}()

	for {
		var (
			kind int
			data []byte
		)
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			kind, data = websocket.TextMessage, msg
		case <-ping.C:
			kind = websocket.PingMessage
		}
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(kind, data); err != nil {
			c.logger.Debug().Err(err).Msg("ws write error")
			return
		}
	}
}

// SendEnvelope queues a message for this client, dropping it when the client
// is too slow to keep up. Only the hub may call it while holding the client.
func (c *Client) SendEnvelope(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		c.logger.Error().Err(err).Str("type", env.Type).Msg("marshal envelope")
		return
	}
	c.push(data)
}

func (c *Client) push(data []byte) {
	select {
	case c.send <- data:
	default:
		c.logger.Warn().Msg("send buffer full, dropping message")
	}
}

// IncomingMessage pairs a message with its source client.
type IncomingMessage struct {
	Client   *Client
	Envelope protocol.Envelope
}
