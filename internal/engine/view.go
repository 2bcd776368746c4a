package engine

// RouteView is a claimed route as shown on the board.
type RouteView struct {
	ID       string `json:"id"`
	Station1 string `json:"station1"`
	Station2 string `json:"station2"`
	Length   int    `json:"length"`
	Level    string `json:"level"`
	Color    string `json:"color"`
}

// PublicPlayerView is what anyone can see of a player.
type PublicPlayerView struct {
	ID          PlayerID    `json:"id"`
	TicketCount int         `json:"ticket_count"`
	CardCount   int         `json:"card_count"`
	CarCount    int         `json:"car_count"`
	ClaimPoints int         `json:"claim_points"`
	Routes      []RouteView `json:"routes"`
}

// PublicViewData is the game state visible on the TV.
type PublicViewData struct {
	Phase         string             `json:"phase"`
	CurrentPlayer PlayerID           `json:"current_player"`
	LastPlayer    PlayerID           `json:"last_player"`
	TicketsCount  int                `json:"tickets_count"`
	FaceUpCards   []Card             `json:"face_up_cards"`
	DeckSize      int                `json:"deck_size"`
	DiscardsSize  int                `json:"discards_size"`
	Players       []PublicPlayerView `json:"players"`
}

// PlayerViewData is the game state visible to one seat: the public view plus
// its own hand and tickets.
type PlayerViewData struct {
	PublicViewData
	Me             PlayerID `json:"me"`
	IsMyTurn       bool     `json:"is_my_turn"`
	Cards          []Card   `json:"cards"`
	Tickets        []string `json:"tickets"`
	TicketPoints   int      `json:"ticket_points"`
	CanDrawCards   bool     `json:"can_draw_cards"`
	CanDrawTickets bool     `json:"can_draw_tickets"`
}

func routeViews(routes []*Route) []RouteView {
	out := make([]RouteView, 0, len(routes))
	for _, r := range routes {
		out = append(out, RouteView{
			ID:       r.id,
			Station1: r.station1.Name,
			Station2: r.station2.Name,
			Length:   r.length,
			Level:    r.level.String(),
			Color:    r.color.String(),
		})
	}
	return out
}

// PublicView builds the spectator view. It never carries card or ticket
// identities held by a player.
func (s PublicGameState) PublicView() PublicViewData {
	pv := PublicViewData{
		Phase:         s.Phase().String(),
		CurrentPlayer: s.currentPlayerID,
		LastPlayer:    s.lastPlayer,
		TicketsCount:  s.ticketsCount,
		FaceUpCards:   s.cardState.FaceUpCards(),
		DeckSize:      s.cardState.DeckSize(),
		DiscardsSize:  s.cardState.DiscardsSize(),
	}
	for _, id := range AllPlayers() {
		p := s.players[id]
		pv.Players = append(pv.Players, PublicPlayerView{
			ID:          id,
			TicketCount: p.ticketCount,
			CardCount:   p.cardCount,
			CarCount:    p.carCount,
			ClaimPoints: p.claimPoints,
			Routes:      routeViews(p.routes),
		})
	}
	return pv
}

// ViewFor builds the view of seat id. An unknown id gets the public view only.
func (g *GameState) ViewFor(id PlayerID) PlayerViewData {
	pv := PlayerViewData{
		PublicViewData: g.PublicView(),
		Me:             id,
	}
	if !id.Valid() {
		return pv
	}

	p := g.playerStates[id]
	pv.IsMyTurn = g.currentPlayerID == id
	pv.Cards = p.cards.Slice()
	for _, t := range p.tickets.Slice() {
		pv.Tickets = append(pv.Tickets, t.Text())
	}
	pv.TicketPoints = p.TicketPoints()
	if pv.IsMyTurn {
		pv.CanDrawCards = g.CanDrawCards()
		pv.CanDrawTickets = g.CanDrawTickets()
	}
	return pv
}
