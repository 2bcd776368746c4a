package engine

import "math/rand/v2"

// GameConfig holds configuration for creating a new game.
type GameConfig struct {
	Map  *Map   // stations, routes and tickets
	Seed uint64 // 0 picks a random seed
}

func DefaultConfig() GameConfig {
	return GameConfig{
		Map: SwissMap(),
	}
}

// NewRand returns the generator that drives every shuffle of one game.
func (c GameConfig) NewRand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewGame deals a new game on the configured map. The returned generator
// must be reused for later reshuffles so that a seeded game is replayable.
func (c GameConfig) NewGame() (*GameState, *rand.Rand, error) {
	rng := c.NewRand()
	g, err := Initial(c.Map.Tickets(), rng)
	if err != nil {
		return nil, nil, err
	}
	return g, rng, nil
}
