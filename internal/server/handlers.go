package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"tchu/internal/config"
	"tchu/internal/engine"
	"tchu/internal/lobby"
	qr "tchu/internal/qrcode"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	LobbyMgr *lobby.Manager
	Tokens   *Tokens
	Config   config.Config
	GameCfg  engine.GameConfig

	mu   sync.Mutex
	hubs map[string]*Hub
}

func NewHandlers(cfg config.Config) *Handlers {
	gameCfg := engine.DefaultConfig()
	gameCfg.Seed = cfg.GameSeed
	return &Handlers{
		LobbyMgr: lobby.NewManager(),
		Tokens:   NewTokens(cfg.TokenSecret),
		Config:   cfg,
		GameCfg:  gameCfg,
		hubs:     make(map[string]*Hub),
	}
}

// Hub returns the hub of a game.
func (h *Handlers) Hub(gameID string) (*Hub, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	hub, ok := h.hubs[gameID]
	return hub, ok
}

type createGameResp struct {
	GameID  string `json:"game_id"`
	JoinURL string `json:"join_url"`
}

// HandleCreateGame creates a new game lobby and its hub.
func (h *Handlers) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	gameID := h.LobbyMgr.Create()
	hub := NewHub(gameID, h.LobbyMgr.Get(gameID), h.GameCfg)
	h.mu.Lock()
	h.hubs[gameID] = hub
	h.mu.Unlock()
	go hub.Run()
	go h.reap(hub)

	log.Info().Str("game", gameID).Msg("game created")
	writeJSON(w, http.StatusCreated, createGameResp{
		GameID:  gameID,
		JoinURL: qr.JoinURL(h.Config.BaseURL(), gameID),
	})
}

// reap forgets a game once its hub has stopped, whether it finished or
// everybody left.
func (h *Handlers) reap(hub *Hub) {
	<-hub.Done()
	h.mu.Lock()
	delete(h.hubs, hub.gameID)
	h.mu.Unlock()
	h.LobbyMgr.Remove(hub.gameID)
	log.Info().Str("game", hub.gameID).Msg("game removed")
}

// HandleQR generates a QR code PNG for joining the game.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if _, ok := h.Hub(gameID); !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	png, err := qr.JoinPNG(h.Config.BaseURL(), gameID)
	if err != nil {
		log.Error().Err(err).Str("game", gameID).Msg("qr generation")
		writeError(w, http.StatusInternalServerError, "QR generation failed")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

type joinSeatReq struct {
	Name string `json:"name"`
}

type joinSeatResp struct {
	PlayerID string `json:"player_id"`
	Seat     int    `json:"seat"`
	Token    string `json:"token"`
}

// HandleJoinSeat seats a new player and returns the token that unlocks the
// seat's private view.
func (h *Handlers) HandleJoinSeat(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	hub, ok := h.Hub(gameID)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	if stopped(hub) {
		writeError(w, http.StatusGone, "game is over")
		return
	}
	var req joinSeatReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	info, err := hub.lobby.Join(GeneratePlayerID(), strings.TrimSpace(req.Name))
	switch {
	case errors.Is(err, lobby.ErrFull), errors.Is(err, lobby.ErrStarted):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	token, err := h.Tokens.Issue(gameID, info.ID, info.Seat)
	if err != nil {
		log.Error().Err(err).Msg("sign seat token")
		writeError(w, http.StatusInternalServerError, "token signing failed")
		return
	}

	log.Info().Str("game", gameID).Str("player", info.ID).Stringer("seat", info.Seat).Msg("player seated")
	hub.sendLobbyUpdate()
	writeJSON(w, http.StatusCreated, joinSeatResp{PlayerID: info.ID, Seat: int(info.Seat), Token: token})
}

// HandleWS handles WebSocket connections. A valid seat token makes the
// connection a player client; without one it is a TV.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	tokenStr := r.URL.Query().Get("token")

	if gameID == "" {
		writeError(w, http.StatusBadRequest, "missing game parameter")
		return
	}
	hub, ok := h.Hub(gameID)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	if stopped(hub) {
		writeError(w, http.StatusGone, "game is over")
		return
	}

	ct, playerID, seat := ClientTV, "", engine.NoPlayer
	if tokenStr != "" {
		claims, err := h.Tokens.Parse(tokenStr)
		if err != nil || claims.Game != gameID {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if _, ok := hub.lobby.Player(claims.Subject); !ok {
			writeError(w, http.StatusUnauthorized, "seat no longer held")
			return
		}
		ct, playerID, seat = ClientPlayer, claims.Subject, claims.Seat
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade error")
		return
	}

	client := NewClient(hub, conn, playerID, seat, ct)
	if !client.serve() {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "game is over"), time.Now().Add(writeWait))
		conn.Close()
	}
}

func stopped(hub *Hub) bool {
	select {
	case <-hub.Done():
		return true
	default:
		return false
	}
}

func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "games": h.LobbyMgr.Len()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write json")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
