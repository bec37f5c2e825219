// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package set

import "golang.org/x/exp/maps"

// Set is a set of elements.
type Set[T comparable] map[T]struct{}

// Of returns a Set initialized with [elts]
func Of[T comparable](elts ...T) Set[T] {
	s := make(Set[T], len(elts))
	s.Add(elts...)
	return s
}

// NewSet returns a new set with initial capacity [size].
func NewSet[T comparable](size int) Set[T] {
	return make(Set[T], size)
}

// Add all the elements to this set.
// If the element is already in the set, nothing happens.
func (s Set[T]) Add(elts ...T) {
	for _, elt := range elts {
		s[elt] = struct{}{}
	}
}

// Contains returns true iff the set contains this element.
func (s Set[T]) Contains(elt T) bool {
	_, contains := s[elt]
	return contains
}

// Remove all the given elements from this set.
// If an element isn't in the set, it's ignored.
func (s Set[T]) Remove(elts ...T) {
	for _, elt := range elts {
		delete(s, elt)
	}
}

// Len returns the number of elements in this set.
func (s Set[_]) Len() int {
	return len(s)
}

// List converts this set into a list. The order is unspecified.
func (s Set[T]) List() []T {
	return maps.Keys(s)
}

// Peek returns a random element. If the set is empty, returns false
func (s Set[T]) Peek() (T, bool) {
	for elt := range s {
		return elt, true
	}
	return *new(T), false
}
