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
	"math"
)

// noCurrent marks an iterator position with no removable entry.
const noCurrent = -1

// wrappedEntry marks that the last returned entry came from the wrapped list.
const wrappedEntry = math.MinInt

// Iterator walks a Map's entries, visiting each live entry exactly once, and
// supports removing the current entry mid-iteration. The table is scanned
// from the highest slot down to slot zero.
//
// Removal through the iterator uses the same backward-shift chain repair as
// Map.Remove, with one twist: a shift can carry a not-yet-visited entry
// across the end of the array into slots the scan has already passed. Such
// entries are recorded on an overflow list (wrapped) and handed out after the
// main scan finishes, so interleaved removals never cause an entry to be
// skipped or seen twice.
//
// Mutating the map other than through the iterator's own Remove invalidates
// the iterator.
type Iterator[K comparable, V any] struct {
	m *Map[K, V]
	// pos is the next slot to scan, moving downward. Once it goes negative,
	// -pos-1 indexes wrapped instead.
	pos int
	// last is the slot of the most recently returned entry: noCurrent when
	// there is nothing to remove, wrappedEntry when the entry came from the
	// overflow list.
	last int
	// cur is the slot the accessors read; noCurrent when invalid.
	cur int
	// c counts entries still to be returned, independent of the map's size.
	c int
	// wrapped holds keys that a backward shift moved into already-scanned
	// territory. Consulted lazily, after the main scan.
	wrapped []K
}

// Iter returns an iterator over the map. See Iterator for the guarantees it
// makes when entries are removed during the walk.
func (m *Map[K, V]) Iter() *Iterator[K, V] {
	return &Iterator[K, V]{
		m:    m,
		pos:  len(m.slots),
		last: noCurrent,
		cur:  noCurrent,
		c:    m.size,
	}
}

// Next advances to the next entry, reporting whether one exists. It must be
// called before the first use of Key, Value or Remove.
func (it *Iterator[K, V]) Next() bool {
	if it.c == 0 {
		it.cur = noCurrent
		it.last = noCurrent
		return false
	}
	it.c--
	m := it.m
	for {
		it.pos--
		if it.pos < 0 {
			// Main scan done; hand out deferred entries. They were physically
			// moved by a shift, so locate them by a fresh probe.
			it.last = wrappedEntry
			k := it.wrapped[-it.pos-1]
			p := m.home(k)
			for !(m.slots[p].full && m.keyEqual(m.slots[p].key, k)) {
				p = (p + 1) & m.mask
			}
			it.cur = p
			return true
		}
		if m.slots[it.pos].full {
			it.cur = it.pos
			it.last = it.pos
			return true
		}
	}
}

// Key returns the current entry's key. It panics if the iterator has no
// current entry.
func (it *Iterator[K, V]) Key() K {
	if it.cur == noCurrent {
		panic("openhash: Iterator has no current entry")
	}
	return it.m.slots[it.cur].key
}

// Value returns the current entry's value. It panics if the iterator has no
// current entry.
func (it *Iterator[K, V]) Value() V {
	if it.cur == noCurrent {
		panic("openhash: Iterator has no current entry")
	}
	return it.m.slots[it.cur].value
}

// SetValue replaces the current entry's value in place and returns the
// previous value. It panics if the iterator has no current entry.
func (it *Iterator[K, V]) SetValue(v V) V {
	if it.cur == noCurrent {
		panic("openhash: Iterator has no current entry")
	}
	prev := it.m.slots[it.cur].value
	it.m.slots[it.cur].value = v
	return prev
}

// Remove deletes the entry most recently returned by Next. It panics if Next
// has not been called or if Remove has already been called for this entry.
func (it *Iterator[K, V]) Remove() {
	if it.last == noCurrent {
		panic("openhash: Iterator.Remove without a preceding Next")
	}
	if it.pos >= 0 {
		it.shiftKeys(it.last)
		it.m.size--
	} else {
		// Entries on the overflow list are located by probing anyway, so
		// deleting through the map (including its shrink policy) is safe.
		it.m.Remove(it.wrapped[-it.pos-1])
	}
	it.last = noCurrent
	it.cur = noCurrent
}

// shiftKeys is Map.shiftKeys plus wrap tracking: a key moved from a slot
// below the deletion point to one above it has crossed the end of the array,
// into territory the downward scan already covered, and is queued on the
// overflow list so the iteration still visits it.
func (it *Iterator[K, V]) shiftKeys(pos int) {
	m := it.m
	slots, mask := m.slots, m.mask
	for {
		last := pos
		pos = (last + 1) & mask
		for {
			if !slots[pos].full {
				slots[last] = slot[K, V]{}
				return
			}
			h := m.home(slots[pos].key)
			if last <= pos {
				if last >= h || h > pos {
					break
				}
			} else {
				if last >= h && h > pos {
					break
				}
			}
			pos = (pos + 1) & mask
		}
		if pos < last {
			it.wrapped = append(it.wrapped, slots[pos].key)
		}
		slots[last] = slots[pos]
	}
}

// Entry returns a heap-allocated handle for the current entry that stays
// usable after the iterator advances. The handle is bound to a table slot: a
// rehash or a removal that relocates the entry makes it stale, and stale
// accesses panic. It panics if the iterator has no current entry.
func (it *Iterator[K, V]) Entry() *Entry[K, V] {
	if it.cur == noCurrent {
		panic("openhash: Iterator has no current entry")
	}
	return &Entry[K, V]{m: it.m, pos: it.cur, key: it.m.slots[it.cur].key}
}

// Entry is a view of one map entry, writing through to the table slot it
// references. Handles do not survive rehashes; see Iterator.Entry.
type Entry[K comparable, V any] struct {
	m   *Map[K, V]
	pos int
	key K
}

// Key returns the entry's key.
func (e *Entry[K, V]) Key() K {
	return e.key
}

// Value returns the entry's current value. It panics if the handle is stale.
func (e *Entry[K, V]) Value() V {
	e.check()
	return e.m.slots[e.pos].value
}

// SetValue replaces the entry's value, writing through to the map, and
// returns the previous value. It panics if the handle is stale.
func (e *Entry[K, V]) SetValue(v V) V {
	e.check()
	prev := e.m.slots[e.pos].value
	e.m.slots[e.pos].value = v
	return prev
}

func (e *Entry[K, V]) check() {
	if e.pos >= len(e.m.slots) || !e.m.slots[e.pos].full || !e.m.keyEqual(e.m.slots[e.pos].key, e.key) {
		panic(fmt.Sprintf("openhash: stale Entry for key %v", e.key))
	}
}

// All returns an iterator over all entries, usable with range. The map must
// not be mutated during the walk; use Iter for iteration with removal.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := len(m.slots) - 1; i >= 0; i-- {
			if m.slots[i].full && !yield(m.slots[i].key, m.slots[i].value) {
				return
			}
		}
	}
}

// Keys returns an iterator over the keys, a live projection of the map.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := len(m.slots) - 1; i >= 0; i-- {
			if m.slots[i].full && !yield(m.slots[i].key) {
				return
			}
		}
	}
}

// Values returns an iterator over the values, a live projection of the map.
// Values repeated across entries are yielded once per entry.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for i := len(m.slots) - 1; i >= 0; i-- {
			if m.slots[i].full && !yield(m.slots[i].value) {
				return
			}
		}
	}
}
