package engine

// GamePhase is the stage of a game as read from a snapshot.
type GamePhase int

const (
	PhaseTicketChoice GamePhase = iota // a player still has to keep opening tickets
	PhasePlaying
	PhaseLastRound // a player is down to LastTurnCarCount cars or fewer
)

var phaseNames = map[GamePhase]string{
	PhaseTicketChoice: "TicketChoice",
	PhasePlaying:      "Playing",
	PhaseLastRound:    "LastRound",
}

func (p GamePhase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}

// Phase derives the stage of the game from the public state.
func (s PublicGameState) Phase() GamePhase {
	for _, p := range s.players {
		if p.ticketCount == 0 {
			return PhaseTicketChoice
		}
	}
	if s.lastPlayer != NoPlayer {
		return PhaseLastRound
	}
	return PhasePlaying
}
