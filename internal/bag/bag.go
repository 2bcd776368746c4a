// Package bag provides Bag, an immutable multiset whose elements are kept in
// ascending order so iteration is deterministic.
package bag

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Item is implemented by anything a Bag can hold. Two items comparing to 0
// are the same element of the bag.
type Item[T any] interface {
	Compare(T) int
}

type entry[T any] struct {
	item  T
	count int
}

// Bag is an immutable multiset. The zero value is an empty bag.
type Bag[T Item[T]] struct {
	entries []entry[T] // sorted by item, counts always > 0
	size    int
}

// Of returns a bag holding the given items.
func Of[T Item[T]](items ...T) Bag[T] {
	if len(items) == 0 {
		return Bag[T]{}
	}
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int { return a.Compare(b) })

	var entries []entry[T]
	for _, it := range sorted {
		if n := len(entries); n > 0 && entries[n-1].item.Compare(it) == 0 {
			entries[n-1].count++
			continue
		}
		entries = append(entries, entry[T]{item: it, count: 1})
	}
	return Bag[T]{entries: entries, size: len(sorted)}
}

// Repeat returns a bag holding n copies of item. n <= 0 yields an empty bag.
func Repeat[T Item[T]](n int, item T) Bag[T] {
	if n <= 0 {
		return Bag[T]{}
	}
	return Bag[T]{entries: []entry[T]{{item: item, count: n}}, size: n}
}

func (b Bag[T]) Size() int     { return b.size }
func (b Bag[T]) IsEmpty() bool { return b.size == 0 }

func (b Bag[T]) find(item T) (int, bool) {
	return slices.BinarySearchFunc(b.entries, item, func(e entry[T], t T) int {
		return e.item.Compare(t)
	})
}

// CountOf returns the multiplicity of item.
func (b Bag[T]) CountOf(item T) int {
	if i, ok := b.find(item); ok {
		return b.entries[i].count
	}
	return 0
}

// Contains reports whether other is a sub-multiset of b.
func (b Bag[T]) Contains(other Bag[T]) bool {
	if other.size > b.size {
		return false
	}
	for _, e := range other.entries {
		if b.CountOf(e.item) < e.count {
			return false
		}
	}
	return true
}

// Union returns the multiset sum of b and other.
func (b Bag[T]) Union(other Bag[T]) Bag[T] {
	switch {
	case other.IsEmpty():
		return b
	case b.IsEmpty():
		return other
	}
	return merge(b, other, func(x, y int) int { return x + y })
}

// Difference removes the elements of other from b. Multiplicities never go
// below zero, so removing something b does not hold is a no-op for that
// element.
func (b Bag[T]) Difference(other Bag[T]) Bag[T] {
	if other.IsEmpty() || b.IsEmpty() {
		return b
	}
	return merge(b, other, func(x, y int) int { return max(x-y, 0) })
}

func merge[T Item[T]](a, b Bag[T], combine func(x, y int) int) Bag[T] {
	out := make([]entry[T], 0, len(a.entries)+len(b.entries))
	size := 0
	push := func(item T, n int) {
		if n > 0 {
			out = append(out, entry[T]{item: item, count: n})
			size += n
		}
	}

	i, j := 0, 0
	for i < len(a.entries) || j < len(b.entries) {
		switch {
		case j == len(b.entries):
			push(a.entries[i].item, combine(a.entries[i].count, 0))
			i++
		case i == len(a.entries):
			push(b.entries[j].item, combine(0, b.entries[j].count))
			j++
		default:
			c := a.entries[i].item.Compare(b.entries[j].item)
			switch {
			case c < 0:
				push(a.entries[i].item, combine(a.entries[i].count, 0))
				i++
			case c > 0:
				push(b.entries[j].item, combine(0, b.entries[j].count))
				j++
			default:
				push(a.entries[i].item, combine(a.entries[i].count, b.entries[j].count))
				i++
				j++
			}
		}
	}
	return Bag[T]{entries: out, size: size}
}

// Get returns the i-th element of the expanded, sorted bag.
func (b Bag[T]) Get(i int) T {
	if i < 0 || i >= b.size {
		panic(fmt.Sprintf("bag: index %d out of range [0,%d)", i, b.size))
	}
	for _, e := range b.entries {
		if i < e.count {
			return e.item
		}
		i -= e.count
	}
	panic("unreachable")
}

// Slice expands the bag into a sorted slice, one element per copy.
func (b Bag[T]) Slice() []T {
	out := make([]T, 0, b.size)
	for _, e := range b.entries {
		for range e.count {
			out = append(out, e.item)
		}
	}
	return out
}

// Distinct returns each element once, in ascending order.
func (b Bag[T]) Distinct() []T {
	out := make([]T, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.item
	}
	return out
}

// All yields every distinct element with its multiplicity.
func (b Bag[T]) All() iter.Seq2[T, int] {
	return func(yield func(T, int) bool) {
		for _, e := range b.entries {
			if !yield(e.item, e.count) {
				return
			}
		}
	}
}

// Equal reports whether both bags hold the same elements with the same
// multiplicities.
func (b Bag[T]) Equal(other Bag[T]) bool {
	if b.size != other.size || len(b.entries) != len(other.entries) {
		return false
	}
	for i, e := range b.entries {
		o := other.entries[i]
		if e.count != o.count || e.item.Compare(o.item) != 0 {
			return false
		}
	}
	return true
}

// SubsetsOfSize returns every distinct sub-multiset of b holding exactly n
// elements. Subsets taking more copies of smaller elements come first.
func (b Bag[T]) SubsetsOfSize(n int) []Bag[T] {
	if n < 0 || n > b.size {
		return nil
	}
	var out []Bag[T]
	picked := make([]entry[T], 0, len(b.entries))

	var walk func(i, remaining, left int)
	walk = func(i, remaining, left int) {
		if remaining == 0 {
			out = append(out, Bag[T]{entries: slices.Clone(picked), size: n})
			return
		}
		if i == len(b.entries) || left < remaining {
			return
		}
		e := b.entries[i]
		for c := min(e.count, remaining); c >= 0; c-- {
			if c > 0 {
				picked = append(picked, entry[T]{item: e.item, count: c})
			}
			walk(i+1, remaining-c, left-e.count)
			if c > 0 {
				picked = picked[:len(picked)-1]
			}
		}
	}
	walk(0, n, b.size)
	return out
}

// String renders the bag as {2×A, B}.
func (b Bag[T]) String() string {
	parts := make([]string, len(b.entries))
	for i, e := range b.entries {
		if e.count == 1 {
			parts[i] = fmt.Sprint(e.item)
		} else {
			parts[i] = fmt.Sprintf("%d×%v", e.count, e.item)
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Builder accumulates items before freezing them into a Bag.
type Builder[T Item[T]] struct {
	items []T
}

func (bl *Builder[T]) Add(item T) *Builder[T] {
	bl.items = append(bl.items, item)
	return bl
}

func (bl *Builder[T]) AddN(n int, item T) *Builder[T] {
	for range n {
		bl.items = append(bl.items, item)
	}
	return bl
}

func (bl *Builder[T]) AddAll(b Bag[T]) *Builder[T] {
	bl.items = append(bl.items, b.Slice()...)
	return bl
}

func (bl *Builder[T]) Size() int { return len(bl.items) }

func (bl *Builder[T]) Build() Bag[T] {
	return Of(bl.items...)
}
