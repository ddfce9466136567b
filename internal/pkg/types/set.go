package types

import (
	"iter"
	"maps"
	"slices"
)

// Set is a mutable hash set over comparable elements, backed by a
// map[T]struct{}.
type Set[T comparable] map[T]struct{}

// NewSet builds a Set seeded with the given elements.
func NewSet[T comparable](data ...T) Set[T] {
	set := make(Set[T], len(data))
	set.Add(data...)
	return set
}

// Add inserts the given elements, ignoring duplicates.
func (s Set[T]) Add(values ...T) {
	for _, v := range values {
		s[v] = struct{}{}
	}
}

// Contains reports whether the element is present.
func (s Set[T]) Contains(value T) bool {
	_, ok := s[value]
	return ok
}

// Delete removes the given elements; absent elements are ignored.
func (s Set[T]) Delete(values ...T) {
	for _, v := range values {
		delete(s, v)
	}
}

// ToIter yields every element in unspecified order.
func (s Set[T]) ToIter() iter.Seq[T] {
	return maps.Keys(s)
}

// ToSlice collects every element into a slice in unspecified order.
func (s Set[T]) ToSlice() []T {
	return slices.Collect(s.ToIter())
}
