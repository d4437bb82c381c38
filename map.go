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

// Package openhash provides hash maps and sets backed by a single flat array
// of slots, using open addressing with linear probing. If you're not familiar
// with open-addressing see https://en.wikipedia.org/wiki/Open_addressing.
//
// # Design
//
// The table is a power-of-two sized array of slots, each slot holding a key,
// a value, and an occupancy tag. A key's home position is computed by passing
// its hash through a 64-bit finalizer (mix64) and masking with n-1; collisions
// are resolved by walking consecutive slots (pos+1)&mask. The table grows
// before it can fill completely, so every probe walk is guaranteed to reach
// either the key or an empty slot.
//
// Deletion does not use tombstones. Removing an entry instead repairs the
// probe chain by shifting displaced entries backward into the hole
// (shiftKeys), preserving the invariant that every key is reachable from its
// home position through a contiguous run of occupied slots. Compared to
// tombstone schemes this keeps lookups fast under churn and never requires a
// compaction pass, at the cost of a subtler deletion routine.
//
// Tables shrink as well as grow: after a removal the table halves once its
// occupancy falls below a quarter of the growth threshold, but never below
// the capacity it was constructed with. The quarter-threshold hysteresis and
// the construction-time floor prevent resize storms from workloads that add
// and remove entries around a single boundary.
//
// Hashing defaults to the runtime's maphash for the key type; both the hash
// function and key equality can be replaced per map (see WithHash and
// WithStrategy), which permits semantics like case-insensitive string keys.
//
// A Map is NOT goroutine-safe; see Synchronize for an opt-in locked wrapper.
package openhash

import (
	"fmt"
	"hash/maphash"
	"slices"
	"strings"
)

// slot is one table cell. The explicit occupancy tag (rather than reserving a
// key bit pattern to mean "empty") keeps zero-valued keys on the ordinary
// probe path.
type slot[K comparable, V any] struct {
	key   K
	value V
	full  bool
}

// Map is an unordered map from keys to values with Put, Get, Remove and
// iteration operations. The zero value for a Map is not usable; construct
// with New.
//
// A Map is NOT goroutine-safe.
type Map[K comparable, V any] struct {
	// slots has power-of-two length; mask is len(slots)-1.
	slots []slot[K, V]
	mask  int
	// size is the number of occupied slots.
	size int
	// minN is the table length at construction time. Deletions never shrink
	// the table below it.
	minN int
	// growAt is the occupancy at which the next insert triggers a rehash.
	// Always <= len(slots)-1.
	growAt     int
	loadFactor float64
	// defVal is returned by Get, Put, and Remove for absent keys.
	defVal V
	// hash maps a key to a 64-bit hash code. mix64 is applied on top before
	// masking.
	hash func(K) uint64
	// equal overrides key equality; nil means ==.
	equal func(K, K) bool
}

// New constructs a Map sized to hold expectedSize entries without rehashing.
// New panics if expectedSize is negative or if a configured load factor lies
// outside (0, 1].
func New[K comparable, V any](expectedSize int, options ...Option[K, V]) *Map[K, V] {
	if expectedSize < 0 {
		panic(fmt.Sprintf("openhash: negative expected size %d", expectedSize))
	}
	m := &Map[K, V]{loadFactor: defaultLoadFactor}
	for _, op := range options {
		op.apply(m)
	}
	if m.loadFactor <= 0 || m.loadFactor > 1 {
		panic(fmt.Sprintf("openhash: load factor %v outside (0,1]", m.loadFactor))
	}
	if m.hash == nil {
		seed := maphash.MakeSeed()
		m.hash = func(key K) uint64 {
			return maphash.Comparable(seed, key)
		}
	}
	n := arraySize(expectedSize, m.loadFactor)
	m.slots = make([]slot[K, V], n)
	m.mask = n - 1
	m.minN = n
	m.growAt = maxFill(n, m.loadFactor)
	return m
}

// home returns the ideal table position for key.
func (m *Map[K, V]) home(key K) int {
	return int(mix64(m.hash(key)) & uint64(m.mask))
}

func (m *Map[K, V]) keyEqual(a, b K) bool {
	if m.equal == nil {
		return a == b
	}
	return m.equal(a, b)
}

// find walks the probe chain for key. It returns the key's slot and true if
// present, or the empty slot that terminated the walk and false otherwise.
// The growth threshold guarantees an empty slot exists, so the walk always
// terminates.
func (m *Map[K, V]) find(key K) (pos int, found bool) {
	for pos = m.home(key); ; pos = (pos + 1) & m.mask {
		s := &m.slots[pos]
		if !s.full {
			return pos, false
		}
		if m.keyEqual(s.key, key) {
			return pos, true
		}
	}
}

// insert writes a new entry into the empty slot found by a preceding find and
// grows the table if the occupancy threshold has been reached.
func (m *Map[K, V]) insert(pos int, key K, value V) {
	m.slots[pos] = slot[K, V]{key: key, value: value, full: true}
	m.size++
	if m.size >= m.growAt {
		m.rehash(arraySize(m.size+1, m.loadFactor))
	}
	m.checkInvariants()
}

// Put inserts an entry, overwriting an existing value if an entry with the
// same key already exists. It returns the previous value, or the map's
// default value (see SetDefaultValue) if the key was absent.
func (m *Map[K, V]) Put(key K, value V) V {
	pos, found := m.find(key)
	if found {
		prev := m.slots[pos].value
		m.slots[pos].value = value
		return prev
	}
	m.insert(pos, key, value)
	return m.defVal
}

// Get returns the value for key, or the map's default value if the key is
// absent. If the default value is a plausible real value, distinguish the two
// cases with GetOk or ContainsKey.
func (m *Map[K, V]) Get(key K) V {
	if pos, found := m.find(key); found {
		return m.slots[pos].value
	}
	return m.defVal
}

// GetOk returns the value for key and whether it was present.
func (m *Map[K, V]) GetOk(key K) (value V, ok bool) {
	if pos, found := m.find(key); found {
		return m.slots[pos].value, true
	}
	return value, false
}

// ContainsKey reports whether key is present.
func (m *Map[K, V]) ContainsKey(key K) bool {
	_, found := m.find(key)
	return found
}

// Remove deletes the entry for key and returns its value, or the map's
// default value if the key was absent.
func (m *Map[K, V]) Remove(key K) V {
	pos, found := m.find(key)
	if !found {
		return m.defVal
	}
	value := m.slots[pos].value
	m.removeAt(pos)
	return value
}

// removeAt deletes the entry at pos, repairs the probe chain, and shrinks the
// table if occupancy has dropped far enough below the growth threshold.
func (m *Map[K, V]) removeAt(pos int) {
	m.size--
	m.shiftKeys(pos)
	if n := len(m.slots); n > m.minN && m.size < m.growAt/4 && n > defaultCapacity {
		m.rehash(n / 2)
	}
	m.checkInvariants()
}

// shiftKeys deletes the entry at pos without leaving a tombstone. It walks
// forward from the hole; each entry whose home position does not lie on the
// cyclic interval (last, pos] can be moved back into the hole without
// becoming unreachable, opening a new hole at its old position. The walk ends
// at the first empty slot.
func (m *Map[K, V]) shiftKeys(pos int) {
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
		slots[last] = slots[pos]
	}
}

// rehash reinserts every live entry into a fresh table of length newN,
// scanning the old table from high index to low, then swaps the new table in.
// Any Entry handles issued before a rehash become stale.
func (m *Map[K, V]) rehash(newN int) {
	newSlots := make([]slot[K, V], newN)
	newMask := newN - 1
	for i := len(m.slots) - 1; i >= 0; i-- {
		s := &m.slots[i]
		if !s.full {
			continue
		}
		pos := int(mix64(m.hash(s.key)) & uint64(newMask))
		for newSlots[pos].full {
			pos = (pos + 1) & newMask
		}
		newSlots[pos] = *s
	}
	m.slots = newSlots
	m.mask = newMask
	m.growAt = maxFill(newN, m.loadFactor)
}

// Trim shrinks the table to the smallest capacity able to hold targetSize
// entries (or the current size, whichever is larger) at the configured load
// factor. It never grows the table. Trim reports whether the table was
// actually resized.
func (m *Map[K, V]) Trim(targetSize int) bool {
	if targetSize < m.size {
		targetSize = m.size
	}
	n := arraySize(targetSize, m.loadFactor)
	if n >= len(m.slots) {
		return false
	}
	m.rehash(n)
	m.checkInvariants()
	return true
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int {
	return m.size
}

// Empty reports whether the map has no entries.
func (m *Map[K, V]) Empty() bool {
	return m.size == 0
}

// Clear removes all entries. The table capacity is retained; use Trim to
// release memory.
func (m *Map[K, V]) Clear() {
	if m.size == 0 {
		return
	}
	m.size = 0
	clear(m.slots)
}

// Clone returns a copy of the map sharing no storage with the original. The
// clone keeps the original's hash strategy, load factor and default value.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := *m
	c.slots = slices.Clone(m.slots)
	return &c
}

// SetDefaultValue configures the value returned by Get, Put and Remove for
// absent keys. The default default is the zero value of V.
func (m *Map[K, V]) SetDefaultValue(v V) {
	m.defVal = v
}

// DefaultValue returns the configured absent-key value.
func (m *Map[K, V]) DefaultValue() V {
	return m.defVal
}

// GetOrDefault returns the value for key, or def if the key is absent. The
// map's own default value is not consulted.
func (m *Map[K, V]) GetOrDefault(key K, def V) V {
	if pos, found := m.find(key); found {
		return m.slots[pos].value
	}
	return def
}

// PutIfAbsent inserts value only if key is absent. It returns the value
// already present, or the map's default value if the insert happened.
func (m *Map[K, V]) PutIfAbsent(key K, value V) V {
	pos, found := m.find(key)
	if found {
		return m.slots[pos].value
	}
	m.insert(pos, key, value)
	return m.defVal
}

// ComputeIfAbsent returns the value for key, computing and inserting it via f
// if absent. f is not called when the key is present.
func (m *Map[K, V]) ComputeIfAbsent(key K, f func(K) V) V {
	pos, found := m.find(key)
	if found {
		return m.slots[pos].value
	}
	value := f(key)
	m.insert(pos, key, value)
	return value
}

// Merge inserts value if key is absent, otherwise replaces the current value
// with f(current, value). It returns the value now associated with key.
func (m *Map[K, V]) Merge(key K, value V, f func(old, new V) V) V {
	pos, found := m.find(key)
	if found {
		merged := f(m.slots[pos].value, value)
		m.slots[pos].value = merged
		return merged
	}
	m.insert(pos, key, value)
	return value
}

// capacity returns the current table length. Exposed for tests.
func (m *Map[K, V]) capacity() int {
	return len(m.slots)
}

// String returns a human-readable rendering of the map in iteration order.
func (m *Map[K, V]) String() string {
	var buf strings.Builder
	buf.WriteByte('{')
	first := true
	for i := len(m.slots) - 1; i >= 0; i-- {
		if !m.slots[i].full {
			continue
		}
		if !first {
			buf.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&buf, "%v=>%v", m.slots[i].key, m.slots[i].value)
	}
	buf.WriteByte('}')
	return buf.String()
}

// ContainsValue reports whether any entry of m holds value v. Linear in the
// table size. This is a package function rather than a method because it
// needs V to be comparable while Map itself does not.
func ContainsValue[K comparable, V comparable](m *Map[K, V], v V) bool {
	for i := range m.slots {
		if m.slots[i].full && m.slots[i].value == v {
			return true
		}
	}
	return false
}

// Equal reports whether a and b hold the same entries. Values are compared
// with ==; keys are located in b using b's hash strategy.
func Equal[K comparable, V comparable](a, b *Map[K, V]) bool {
	if a.size != b.size {
		return false
	}
	for i := range a.slots {
		if !a.slots[i].full {
			continue
		}
		bv, ok := b.GetOk(a.slots[i].key)
		if !ok || bv != a.slots[i].value {
			return false
		}
	}
	return true
}

// checkInvariants verifies internal consistency when built with the
// invariants tag: the occupancy count matches size, every key is reachable
// from its home position, and the growth threshold matches the table length.
func (m *Map[K, V]) checkInvariants() {
	if !invariants {
		return
	}
	n := len(m.slots)
	if n&(n-1) != 0 {
		panic(fmt.Sprintf("invariant failed: table length %d is not a power of two", n))
	}
	if m.growAt != maxFill(n, m.loadFactor) {
		panic(fmt.Sprintf("invariant failed: growAt=%d, want %d\n%s",
			m.growAt, maxFill(n, m.loadFactor), m.debugString()))
	}
	count := 0
	for i := range m.slots {
		if !m.slots[i].full {
			continue
		}
		count++
		if pos, found := m.find(m.slots[i].key); !found || pos != i {
			panic(fmt.Sprintf("invariant failed: slot %d key %v unreachable (found=%v pos=%d)\n%s",
				i, m.slots[i].key, found, pos, m.debugString()))
		}
	}
	if count != m.size {
		panic(fmt.Sprintf("invariant failed: %d occupied slots, but size is %d\n%s",
			count, m.size, m.debugString()))
	}
}

func (m *Map[K, V]) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d size=%d grow-at=%d min-n=%d\n",
		len(m.slots), m.size, m.growAt, m.minN)
	for i := range m.slots {
		if m.slots[i].full {
			fmt.Fprintf(&buf, "  %4d: %v=>%v [home=%d]\n",
				i, m.slots[i].key, m.slots[i].value, m.home(m.slots[i].key))
		} else {
			fmt.Fprintf(&buf, "  %4d: empty\n", i)
		}
	}
	return buf.String()
}
