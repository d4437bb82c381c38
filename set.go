// Copyright 2026 The OpenHash Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package openhash

import (
	"fmt"
	"iter"
	"strings"
)

// Set is an unordered set of keys sharing the Map engine; the value array
// collapses to zero bytes. The zero value for a Set is not usable; construct
// with NewSet.
//
// A Set is NOT goroutine-safe.
type Set[K comparable] struct {
	m *Map[K, struct{}]
}

// NewSet constructs a Set sized to hold expectedSize keys without rehashing.
// It accepts the same sizing and strategy options as New.
func NewSet[K comparable](expectedSize int, options ...SetOption[K]) *Set[K] {
	return &Set[K]{m: New[K, struct{}](expectedSize, options...)}
}

// Add inserts key, reporting whether it was absent.
func (s *Set[K]) Add(key K) bool {
	pos, found := s.m.find(key)
	if found {
		return false
	}
	s.m.insert(pos, key, struct{}{})
	return true
}

// Remove deletes key, reporting whether it was present.
func (s *Set[K]) Remove(key K) bool {
	pos, found := s.m.find(key)
	if !found {
		return false
	}
	s.m.removeAt(pos)
	return true
}

// Contains reports whether key is present.
func (s *Set[K]) Contains(key K) bool {
	return s.m.ContainsKey(key)
}

// Len returns the number of keys in the set.
func (s *Set[K]) Len() int {
	return s.m.Len()
}

// Empty reports whether the set has no keys.
func (s *Set[K]) Empty() bool {
	return s.m.Empty()
}

// Clear removes all keys, retaining capacity.
func (s *Set[K]) Clear() {
	s.m.Clear()
}

// Trim shrinks the table to fit targetSize keys; see Map.Trim.
func (s *Set[K]) Trim(targetSize int) bool {
	return s.m.Trim(targetSize)
}

// Clone returns a copy of the set sharing no storage with the original.
func (s *Set[K]) Clone() *Set[K] {
	return &Set[K]{m: s.m.Clone()}
}

// All returns an iterator over the keys, usable with range. The set must not
// be mutated during the walk; use Iter for iteration with removal.
func (s *Set[K]) All() iter.Seq[K] {
	return s.m.Keys()
}

// String returns a human-readable rendering of the set in iteration order.
func (s *Set[K]) String() string {
	var buf strings.Builder
	buf.WriteByte('{')
	first := true
	for k := range s.All() {
		if !first {
			buf.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&buf, "%v", k)
	}
	buf.WriteByte('}')
	return buf.String()
}

// Iter returns an iterator over the set supporting removal during the walk,
// with the same exactly-once guarantee as the Map iterator.
func (s *Set[K]) Iter() *SetIter[K] {
	return &SetIter[K]{it: s.m.Iter()}
}

// SetIter walks a Set's keys; see Iterator for the removal protocol.
type SetIter[K comparable] struct {
	it *Iterator[K, struct{}]
}

// Next advances to the next key, reporting whether one exists.
func (si *SetIter[K]) Next() bool {
	return si.it.Next()
}

// Key returns the current key. It panics if the iterator has no current key.
func (si *SetIter[K]) Key() K {
	return si.it.Key()
}

// Remove deletes the key most recently returned by Next. It panics if Next
// has not been called or if Remove has already been called for this key.
func (si *SetIter[K]) Remove() {
	si.it.Remove()
}
