package server

import (
	"encoding/json"
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog/log"

	"tchu/internal/engine"
	"tchu/internal/lobby"
	"tchu/internal/protocol"
)

// Hub manages WebSocket connections and game state for one game room. It
// publishes snapshots but never applies moves: whoever sequences turns pushes
// each new snapshot through Publish.
type Hub struct {
	mu         sync.Mutex
	gameID     string
	lobby      *lobby.Lobby
	config     engine.GameConfig
	game       *engine.GameState
	rng        *rand.Rand
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	publish    chan *engine.GameState
	started    chan struct{}
	quit       chan struct{}
	stopOnce   sync.Once
}

func NewHub(gameID string, lob *lobby.Lobby, cfg engine.GameConfig) *Hub {
	return &Hub{
		gameID:     gameID,
		lobby:      lob,
		config:     cfg,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		publish:    make(chan *engine.GameState, 16),
		started:    make(chan struct{}),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			client.logger.Debug().Msg("client registered")
			h.sendLobbyUpdate()
			h.sendStateToClient(client)

		case client := <-h.unregister:
			h.drop(client)

		case msg := <-h.incoming:
			h.mu.Lock()
			_, ok := h.clients[msg.Client]
			h.mu.Unlock()
			if ok {
				h.handleMessage(msg)
			}

		case g := <-h.publish:
			h.mu.Lock()
			h.game = g
			h.mu.Unlock()
			h.broadcastState()

		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Info().Str("game", h.gameID).Msg("hub stopped")
			return
		}
	}
}

// drop forgets a client. A seated player leaving before the deal gives up the
// seat, and the hub stops once nobody is left watching.
func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.send)
	}
	left := len(h.clients)
	h.mu.Unlock()
	if !ok {
		return
	}

	client.logger.Debug().Int("left", left).Msg("client unregistered")
	if client.Type == ClientPlayer && !h.lobby.Started() {
		h.lobby.Leave(client.PlayerID)
		h.sendLobbyUpdate()
	}
	if left == 0 {
		h.Stop()
	}
}

// attach hands a new client to Run. It reports false once the hub has stopped.
func (h *Hub) attach(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) detach(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.quit:
	}
}

// deliver queues an inbound message. It reports false once the hub has
// stopped.
func (h *Hub) deliver(msg IncomingMessage) bool {
	select {
	case h.incoming <- msg:
		return true
	case <-h.quit:
		return false
	}
}

// Stop ends Run and closes every client. It is safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// Done is closed once the hub has been stopped.
func (h *Hub) Done() <-chan struct{} {
	return h.quit
}

// Started is closed once the game has been dealt.
func (h *Hub) Started() <-chan struct{} {
	return h.started
}

// Game returns the current snapshot and the generator that dealt it. The
// generator is not safe for concurrent use and belongs to whoever drives the
// game.
func (h *Hub) Game() (*engine.GameState, *rand.Rand) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.game, h.rng
}

// Publish hands a new snapshot to the hub, which sends every client its
// view of it.
func (h *Hub) Publish(g *engine.GameState) {
	select {
	case h.publish <- g:
	case <-h.quit:
	}
}

// Finish scores the current snapshot, announces the result and stops the
// hub. A game that was never dealt is stopped without a result.
func (h *Hub) Finish() {
	defer h.Stop()

	h.mu.Lock()
	g := h.game
	h.mu.Unlock()
	if g == nil {
		return
	}

	names := make(map[engine.PlayerID]string)
	for _, p := range h.lobby.GetPlayers() {
		names[p.Seat] = p.Name
	}
	scores := g.CalculateScores()
	over := protocol.GameOver{}
	for _, e := range scores {
		over.Scores = append(over.Scores, protocol.ScoreLine{
			Seat:         int(e.PlayerID),
			Name:         names[e.PlayerID],
			ClaimPoints:  e.ClaimPoints,
			TicketPoints: e.TicketPoints,
			LongestTrail: e.LongestTrail,
			LongestBonus: e.LongestBonus,
			Total:        e.Total,
		})
	}
	for _, id := range engine.Winners(scores) {
		over.Winners = append(over.Winners, int(id))
	}
	log.Info().Str("game", h.gameID).Ints("winners", over.Winners).Msg("game over")
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgGameOver, over))
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	switch msg.Envelope.Type {
	case protocol.MsgReady:
		h.handleReady(msg)
	case protocol.MsgStartGame:
		h.handleStartGame(msg)
	case "":
		h.sendError(msg.Client, "malformed message")
	default:
		h.sendError(msg.Client, "unknown message type "+msg.Envelope.Type)
	}
}

func (h *Hub) handleReady(msg IncomingMessage) {
	if msg.Client.Type != ClientPlayer {
		h.sendError(msg.Client, "only seated players can be ready")
		return
	}
	var ready protocol.ReadyMsg
	if err := msg.Envelope.Decode(&ready); err != nil {
		h.sendError(msg.Client, "invalid ready message")
		return
	}
	if err := h.lobby.SetReady(msg.Client.PlayerID, ready.Ready); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.sendLobbyUpdate()
}

func (h *Hub) handleStartGame(msg IncomingMessage) {
	if err := h.lobby.Start(); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	g, rng, err := h.config.NewGame()
	if err != nil {
		log.Error().Err(err).Str("game", h.gameID).Msg("deal game")
		h.sendError(msg.Client, "could not deal the game")
		return
	}
	h.mu.Lock()
	h.game, h.rng = g, rng
	h.mu.Unlock()
	close(h.started)

	log.Info().Str("game", h.gameID).Stringer("first", g.CurrentPlayerID()).Msg("game started")
	h.sendLobbyUpdate()
	h.broadcastState()
}

func (h *Hub) broadcastState() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		h.sendStateLocked(client)
	}
}

func (h *Hub) sendStateToClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sendStateLocked(client)
}

func (h *Hub) sendStateLocked(client *Client) {
	if h.game == nil {
		return
	}
	if client.Type == ClientTV {
		pv := h.game.PublicView()
		env := protocol.MustEnvelope(protocol.MsgGameState, pv)
		client.SendEnvelope(env)
	} else {
		view := h.game.ViewFor(client.Seat)
		env := protocol.MustEnvelope(protocol.MsgPlayerState, view)
		client.SendEnvelope(env)
	}
}

func (h *Hub) sendLobbyUpdate() {
	players := h.lobby.GetPlayers()
	lps := make([]protocol.LobbyPlayer, len(players))
	for i, p := range players {
		lps[i] = protocol.LobbyPlayer{ID: p.ID, Name: p.Name, Seat: int(p.Seat), Ready: p.Ready}
	}
	env := protocol.MustEnvelope(protocol.MsgLobbyUpdate, protocol.LobbyUpdate{
		GameID:  h.gameID,
		Players: lps,
		Started: h.lobby.Started(),
	})
	h.broadcastAll(env)
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(env)
	if err != nil {
		log.Error().Err(err).Str("type", env.Type).Msg("broadcast marshal error")
		return
	}
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			client.logger.Warn().Msg("client buffer full")
		}
	}
}

func (h *Hub) sendError(client *Client, message string) {
	env := protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message})
	client.SendEnvelope(env)
}
