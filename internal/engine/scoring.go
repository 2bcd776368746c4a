package engine

// ScoreEntry holds scoring breakdown for one player.
type ScoreEntry struct {
	PlayerID     PlayerID `json:"player_id"`
	ClaimPoints  int      `json:"claim_points"`
	TicketPoints int      `json:"ticket_points"`
	LongestTrail string   `json:"longest_trail"`
	TrailLength  int      `json:"trail_length"`
	LongestBonus int      `json:"longest_bonus"`
	Total        int      `json:"total"`
}

// CalculateScores computes final scores for both players. Every player whose
// longest trail ties for the maximum gets the bonus.
func (g *GameState) CalculateScores() []ScoreEntry {
	entries := make([]ScoreEntry, PlayerCount)

	best := 0
	for i, id := range AllPlayers() {
		p := g.playerStates[id]
		trail := LongestTrail(p.routes)
		entries[i] = ScoreEntry{
			PlayerID:     id,
			ClaimPoints:  p.ClaimPoints(),
			TicketPoints: p.TicketPoints(),
			LongestTrail: trail.String(),
			TrailLength:  trail.Length(),
		}
		best = max(best, trail.Length())
	}

	for i := range entries {
		e := &entries[i]
		if best > 0 && e.TrailLength == best {
			e.LongestBonus = LongestTrailBonusPoints
		}
		e.Total = e.ClaimPoints + e.TicketPoints + e.LongestBonus
	}
	return entries
}

// Winners returns the players with the highest total; both on a draw.
func Winners(scores []ScoreEntry) []PlayerID {
	var winners []PlayerID
	top := 0
	for _, e := range scores {
		switch {
		case len(winners) == 0 || e.Total > top:
			top = e.Total
			winners = []PlayerID{e.PlayerID}
		case e.Total == top:
			winners = append(winners, e.PlayerID)
		}
	}
	return winners
}
