package engine

import "tchu/internal/bag"

// Rule constants of the base game.
const (
	CarCardsCount        = 12 // per color
	LocomotiveCardsCount = 14
	TotalCardsCount      = CarCardsCount*8 + LocomotiveCardsCount

	FaceUpCardsCount  = 5
	InitialCardsCount = 4
	InitialCarCount   = 40

	InitialTicketsCount     = 5
	InGameTicketsCount      = 3
	DiscardableTicketsCount = 2

	AdditionalTunnelCards = 3

	MinRouteLength = 1
	MaxRouteLength = 6

	// A player with this many cars or fewer at the end of a turn triggers the
	// last round.
	LastTurnCarCount = 2

	LongestTrailBonusPoints = 10
)

// routeClaimPoints is indexed by route length.
var routeClaimPoints = [MaxRouteLength + 1]int{0, 1, 2, 4, 7, 10, 15}

// FullCardSet returns every card of the game.
func FullCardSet() bag.Bag[Card] {
	var b bag.Builder[Card]
	for _, c := range Cars() {
		b.AddN(CarCardsCount, c)
	}
	b.AddN(LocomotiveCardsCount, Locomotive)
	return b.Build()
}
