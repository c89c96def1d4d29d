package common

import (
	"cmp"
	"maps"
	"slices"
)

// Set holds distinct values of a query dimension.
type Set[T comparable] map[T]struct{}

func NewSet[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add reports whether value was not yet in the set.
func (s Set[T]) Add(value T) bool {
	if _, found := s[value]; found {
		return false
	}
	s[value] = struct{}{}
	return true
}

func (s Set[T]) Contains(value T) bool {
	_, found := s[value]
	return found
}

func (s Set[T]) Size() int {
	return len(s)
}

// Sorted returns the values of s in ascending order.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	return slices.Sorted(maps.Keys(s))
}
