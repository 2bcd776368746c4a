package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tchu/internal/engine"
)

func TestLongestTrailEmpty(t *testing.T) {
	trail := engine.LongestTrail(nil)
	assert.Equal(t, 0, trail.Length())
	assert.Nil(t, trail.Station1())
	assert.Nil(t, trail.Station2())
	assert.Empty(t, trail.Routes())
}

func TestLongestTrailSingleRoute(t *testing.T) {
	st := line(t, 2)
	r := newRoute(t, "AB", st[0], st[1], 4, engine.Overground, engine.ColorRed)
	trail := engine.LongestTrail([]*engine.Route{r})
	assert.Equal(t, 4, trail.Length())
	assert.Equal(t, []*engine.Route{r}, trail.Routes())
	assert.Equal(t, "A - B (4)", trail.String())
}

func TestLongestTrailBranches(t *testing.T) {
	//      D
	//      |3
	// A-2-B-1-C
	//      |5
	//      E
	st := line(t, 5)
	routes := []*engine.Route{
		newRoute(t, "AB", st[0], st[1], 2, engine.Overground, engine.ColorRed),
		newRoute(t, "BC", st[1], st[2], 1, engine.Overground, engine.ColorRed),
		newRoute(t, "BD", st[1], st[3], 3, engine.Overground, engine.ColorRed),
		newRoute(t, "BE", st[1], st[4], 5, engine.Overground, engine.ColorRed),
	}
	trail := engine.LongestTrail(routes)
	assert.Equal(t, 8, trail.Length())
	ends := []string{trail.Station1().Name, trail.Station2().Name}
	assert.ElementsMatch(t, []string{"D", "E"}, ends)
}

func TestLongestTrailCycle(t *testing.T) {
	// A triangle with a tail: the trail may revisit a station but not a route.
	st := line(t, 4)
	routes := []*engine.Route{
		newRoute(t, "AB", st[0], st[1], 1, engine.Overground, engine.ColorRed),
		newRoute(t, "BC", st[1], st[2], 1, engine.Overground, engine.ColorRed),
		newRoute(t, "CA", st[2], st[0], 1, engine.Overground, engine.ColorRed),
		newRoute(t, "CD", st[2], st[3], 2, engine.Overground, engine.ColorRed),
	}
	assert.Equal(t, 5, engine.LongestTrail(routes).Length())
}

func TestLongestTrailMonotonic(t *testing.T) {
	m := engine.SwissMap()
	routes := m.Routes()[:12]
	best := 0
	for i := 1; i <= len(routes); i++ {
		got := engine.LongestTrail(routes[:i]).Length()
		assert.GreaterOrEqual(t, got, best, "after %d routes", i)
		best = got
	}
}

func TestLongestTrailIgnoresInputOrder(t *testing.T) {
	st := line(t, 3)
	ab := newRoute(t, "AB", st[0], st[1], 2, engine.Overground, engine.ColorRed)
	bc := newRoute(t, "BC", st[1], st[2], 2, engine.Overground, engine.ColorRed)
	ac := newRoute(t, "AC", st[0], st[2], 4, engine.Overground, engine.ColorRed)

	first := engine.LongestTrail([]*engine.Route{ab, bc, ac})
	second := engine.LongestTrail([]*engine.Route{ac, bc, ab})
	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, 8, first.Length())
}
