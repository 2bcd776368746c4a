package lobby

import (
	"errors"
	"fmt"
	"sync"

	"tchu/internal/engine"
)

var (
	ErrStarted       = errors.New("game already started")
	ErrFull          = errors.New("lobby is full")
	ErrUnknownPlayer = errors.New("player not in lobby")
	ErrNotReady      = errors.New("players not ready")
)

// PlayerInfo holds lobby-level player information.
type PlayerInfo struct {
	ID    string
	Name  string
	Seat  engine.PlayerID
	Ready bool
}

// Lobby seats the two players of a game until it starts.
type Lobby struct {
	mu      sync.Mutex
	ID      string
	seats   [engine.PlayerCount]*PlayerInfo
	started bool
}

// NewLobby creates a new lobby.
func NewLobby(id string) *Lobby {
	return &Lobby{ID: id}
}

// Join seats a player in the first free seat. Joining again with the same id
// keeps the seat and updates the name.
func (l *Lobby) Join(id, name string) (PlayerInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if p := l.find(id); p != nil {
		p.Name = name // allow reconnect with new name
		return *p, nil
	}
	if l.started {
		return PlayerInfo{}, ErrStarted
	}
	for i, p := range l.seats {
		if p == nil {
			l.seats[i] = &PlayerInfo{ID: id, Name: name, Seat: engine.PlayerID(i)}
			return *l.seats[i], nil
		}
	}
	return PlayerInfo{}, ErrFull
}

// Leave frees the player's seat. Seats are kept once the game has started.
func (l *Lobby) Leave(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		return
	}
	for i, p := range l.seats {
		if p != nil && p.ID == id {
			l.seats[i] = nil
			return
		}
	}
}

// SetReady sets a player's ready state.
func (l *Lobby) SetReady(id string, ready bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.find(id)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	p.Ready = ready
	return nil
}

// CanStart returns true if both seats are taken and ready.
func (l *Lobby) CanStart() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.canStart()
}

func (l *Lobby) canStart() bool {
	for _, p := range l.seats {
		if p == nil || !p.Ready {
			return false
		}
	}
	return true
}

// Start marks the lobby as started.
func (l *Lobby) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		return ErrStarted
	}
	if !l.canStart() {
		return ErrNotReady
	}
	l.started = true
	return nil
}

func (l *Lobby) Started() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.started
}

// Player returns the player with the given id.
func (l *Lobby) Player(id string) (PlayerInfo, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if p := l.find(id); p != nil {
		return *p, true
	}
	return PlayerInfo{}, false
}

// GetPlayers returns a copy of the seated players in seat order.
func (l *Lobby) GetPlayers() []PlayerInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []PlayerInfo
	for _, p := range l.seats {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

func (l *Lobby) find(id string) *PlayerInfo {
	for _, p := range l.seats {
		if p != nil && p.ID == id {
			return p
		}
	}
	return nil
}
