package protocol

// Message types: Server → Client
const (
	MsgLobbyUpdate = "lobby_update"
	MsgGameState   = "game_state"   // public view, sent to the TV
	MsgPlayerState = "player_state" // private view of one seat
	MsgGameOver    = "game_over"
	MsgError       = "error"
)

// Message types: Client → Server
const (
	MsgReady     = "ready"
	MsgStartGame = "start_game"
)

// LobbyUpdate is sent to all clients when lobby state changes.
type LobbyUpdate struct {
	GameID  string        `json:"game_id"`
	Players []LobbyPlayer `json:"players"`
	Started bool          `json:"started"`
}

type LobbyPlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Seat  int    `json:"seat"`
	Ready bool   `json:"ready"`
}

// ReadyMsg is sent by a player to toggle ready state.
type ReadyMsg struct {
	Ready bool `json:"ready"`
}

// GameOver carries the final scores.
type GameOver struct {
	Scores  []ScoreLine `json:"scores"`
	Winners []int       `json:"winners"`
}

type ScoreLine struct {
	Seat         int    `json:"seat"`
	Name         string `json:"name"`
	ClaimPoints  int    `json:"claim_points"`
	TicketPoints int    `json:"ticket_points"`
	LongestTrail string `json:"longest_trail"`
	LongestBonus int    `json:"longest_bonus"`
	Total        int    `json:"total"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
}
