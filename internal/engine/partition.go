package engine

import (
	"fmt"
	"slices"
)

// StationPartition groups stations into connected components. It is built
// once by a PartitionBuilder and never changes afterwards.
type StationPartition struct {
	partition []int // station id -> representative id
}

// Connected reports whether both stations are in the same component.
// Stations outside the partition are connected only to themselves.
func (p *StationPartition) Connected(s1, s2 *Station) bool {
	if s1.ID < len(p.partition) && s2.ID < len(p.partition) {
		return p.partition[s1.ID] == p.partition[s2.ID]
	}
	return s1.ID == s2.ID
}

// PartitionBuilder is a union-find over station ids in [0, stationCount).
type PartitionBuilder struct {
	parent []int
}

func NewPartitionBuilder(stationCount int) (*PartitionBuilder, error) {
	if stationCount < 0 {
		return nil, fmt.Errorf("%w: negative station count %d", ErrInvalidArgument, stationCount)
	}
	parent := make([]int, stationCount)
	for i := range parent {
		parent[i] = i
	}
	return &PartitionBuilder{parent: parent}, nil
}

// Connect joins the components of s1 and s2. Both ids must be below the
// builder's station count.
func (b *PartitionBuilder) Connect(s1, s2 *Station) *PartitionBuilder {
	if b.representative(s1.ID) == b.representative(s2.ID) {
		return b
	}
	switch {
	case b.parent[s2.ID] == s2.ID:
		b.parent[s2.ID] = s1.ID
	case b.parent[s1.ID] == s1.ID:
		b.parent[s1.ID] = s2.ID
	default:
		b.parent[b.representative(s2.ID)] = s1.ID
	}
	return b
}

// Build flattens every station onto its representative and returns the
// frozen partition.
func (b *PartitionBuilder) Build() *StationPartition {
	for i := range b.parent {
		b.parent[i] = b.representative(i)
	}
	return &StationPartition{partition: slices.Clone(b.parent)}
}

func (b *PartitionBuilder) representative(id int) int {
	for b.parent[id] != id {
		id = b.parent[id]
	}
	return id
}
