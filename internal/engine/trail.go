package engine

import (
	"fmt"
	"slices"
	"strings"
)

// Trail is a walk through a network that uses each route at most once.
type Trail struct {
	station1 *Station
	station2 *Station
	routes   []*Route
	length   int
}

// LongestTrail returns the longest trail that can be built from routes, or
// an empty trail when routes is empty. Routes are explored in ascending id
// order and the first trail reaching the maximum length wins, so the result
// does not depend on the order of the input.
//
// The search enumerates every trail and is exponential in the worst case.
// It is meant for the few dozen routes a single player owns.
func LongestTrail(routes []*Route) Trail {
	sorted := slices.Clone(routes)
	slices.SortStableFunc(sorted, func(a, b *Route) int { return strings.Compare(a.id, b.id) })

	candidates := make([]Trail, 0, 2*len(sorted))
	for _, r := range sorted {
		candidates = append(candidates,
			Trail{station1: r.station1, station2: r.station2, routes: []*Route{r}, length: r.length},
			Trail{station1: r.station2, station2: r.station1, routes: []*Route{r}, length: r.length},
		)
	}

	var longest Trail
	for len(candidates) > 0 {
		var next []Trail
		for _, t := range candidates {
			if t.length > longest.length {
				longest = t
			}
			for _, r := range sorted {
				if t.uses(r) || !r.touches(t.station2) {
					continue
				}
				end, _ := r.StationOpposite(t.station2)
				next = append(next, Trail{
					station1: t.station1,
					station2: end,
					routes:   append(slices.Clip(t.routes), r),
					length:   t.length + r.length,
				})
			}
		}
		candidates = next
	}
	return longest
}

func (t Trail) uses(r *Route) bool {
	for _, u := range t.routes {
		if u.id == r.id {
			return true
		}
	}
	return false
}

// Length is the sum of the trail's route lengths.
func (t Trail) Length() int { return t.length }

// Station1 is the start of the trail, nil for the empty trail.
func (t Trail) Station1() *Station {
	if t.length == 0 {
		return nil
	}
	return t.station1
}

// Station2 is the end of the trail, nil for the empty trail.
func (t Trail) Station2() *Station {
	if t.length == 0 {
		return nil
	}
	return t.station2
}

// Routes returns the trail's routes in walking order.
func (t Trail) Routes() []*Route { return slices.Clone(t.routes) }

func (t Trail) String() string {
	if t.length == 0 {
		return "empty trail"
	}
	var sb strings.Builder
	sb.WriteString(t.station1.Name)
	at := t.station1
	for _, r := range t.routes {
		at, _ = r.StationOpposite(at)
		sb.WriteString(" - ")
		sb.WriteString(at.Name)
	}
	fmt.Fprintf(&sb, " (%d)", t.length)
	return sb.String()
}
