package engine

import (
	"fmt"
	"slices"
	"strings"
)

// Trip is a scoring link between two stations. It does not need to be a
// playable route.
type Trip struct {
	from   *Station
	to     *Station
	points int
}

func NewTrip(from, to *Station, points int) (Trip, error) {
	if from == nil || to == nil {
		return Trip{}, fmt.Errorf("%w: trip needs two stations", ErrInvalidArgument)
	}
	if points <= 0 {
		return Trip{}, fmt.Errorf("%w: trip %s - %s worth %d points", ErrInvalidArgument, from, to, points)
	}
	return Trip{from: from, to: to, points: points}, nil
}

// AllTrips returns one trip for every (from, to) pair, each worth points.
func AllTrips(from, to []*Station, points int) ([]Trip, error) {
	if len(from) == 0 || len(to) == 0 {
		return nil, fmt.Errorf("%w: empty station list", ErrInvalidArgument)
	}
	trips := make([]Trip, 0, len(from)*len(to))
	for _, f := range from {
		for _, t := range to {
			trip, err := NewTrip(f, t, points)
			if err != nil {
				return nil, err
			}
			trips = append(trips, trip)
		}
	}
	return trips, nil
}

func (t Trip) From() *Station { return t.from }
func (t Trip) To() *Station   { return t.to }
func (t Trip) Points() int    { return t.points }

// PointsFor returns the trip's points if its stations are connected, their
// negation otherwise.
func (t Trip) PointsFor(c StationConnectivity) int {
	if c.Connected(t.from, t.to) {
		return t.points
	}
	return -t.points
}

// Ticket is a scoring contract made of one or more trips sharing the same
// departure name. Tickets order by their text.
type Ticket struct {
	trips []Trip
	text  string
}

func NewTicket(trips []Trip) (*Ticket, error) {
	if len(trips) == 0 {
		return nil, fmt.Errorf("%w: ticket without trips", ErrInvalidArgument)
	}
	from := trips[0].from.Name
	for _, t := range trips[1:] {
		if t.from.Name != from {
			return nil, fmt.Errorf("%w: ticket trips leave from %s and %s",
				ErrInvalidArgument, from, t.from.Name)
		}
	}
	return &Ticket{trips: slices.Clone(trips), text: ticketText(trips)}, nil
}

// NewSingleTicket builds a ticket holding a single trip.
func NewSingleTicket(from, to *Station, points int) (*Ticket, error) {
	trip, err := NewTrip(from, to, points)
	if err != nil {
		return nil, err
	}
	return NewTicket([]Trip{trip})
}

func ticketText(trips []Trip) string {
	from := trips[0].from.Name
	if len(trips) == 1 {
		return fmt.Sprintf("%s - %s (%d)", from, trips[0].to.Name, trips[0].points)
	}
	dests := make([]string, 0, len(trips))
	for _, t := range trips {
		dests = append(dests, fmt.Sprintf("%s (%d)", t.to.Name, t.points))
	}
	slices.Sort(dests)
	dests = slices.Compact(dests)
	return fmt.Sprintf("%s - {%s}", from, strings.Join(dests, ", "))
}

func (t *Ticket) Text() string   { return t.text }
func (t *Ticket) String() string { return t.text }
func (t *Ticket) Trips() []Trip  { return slices.Clone(t.trips) }

// Points returns the best score among the ticket's trips.
func (t *Ticket) Points(c StationConnectivity) int {
	best := t.trips[0].PointsFor(c)
	for _, trip := range t.trips[1:] {
		best = max(best, trip.PointsFor(c))
	}
	return best
}

func (t *Ticket) Compare(o *Ticket) int {
	return strings.Compare(t.text, o.text)
}
