package engine_test

import (
	"math/rand/v2"
	"testing"

	"tchu/internal/engine"
)

func newStation(t *testing.T, id int, name string) *engine.Station {
	t.Helper()
	s, err := engine.NewStation(id, name)
	if err != nil {
		t.Fatalf("NewStation(%d, %q): %v", id, name, err)
	}
	return s
}

func newRoute(t *testing.T, id string, s1, s2 *engine.Station, length int, level engine.Level, color engine.Color) *engine.Route {
	t.Helper()
	r, err := engine.NewRoute(id, s1, s2, length, level, color)
	if err != nil {
		t.Fatalf("NewRoute(%s): %v", id, err)
	}
	return r
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// line returns n stations named A, B, C... with ids 0..n-1.
func line(t *testing.T, n int) []*engine.Station {
	t.Helper()
	out := make([]*engine.Station, n)
	for i := range out {
		out[i] = newStation(t, i, string(rune('A'+i)))
	}
	return out
}
