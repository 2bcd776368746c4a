package engine

import "fmt"

// Station is a node of the network. Identity is by ID.
type Station struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func NewStation(id int, name string) (*Station, error) {
	if id < 0 {
		return nil, fmt.Errorf("%w: negative station id %d", ErrInvalidArgument, id)
	}
	return &Station{ID: id, Name: name}, nil
}

func (s *Station) String() string {
	return s.Name
}

// StationConnectivity answers whether two stations are linked by a
// player's network.
type StationConnectivity interface {
	Connected(s1, s2 *Station) bool
}
