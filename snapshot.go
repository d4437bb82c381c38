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
	"encoding/gob"
	"fmt"
	"io"
)

// The persisted form is a gob stream: a header carrying the load factor and
// entry count, then the entries in iteration order. It is a same-version
// snapshot format, not a stable interchange format. Hash strategies are not
// serialized; a map written with a custom strategy must be read back with the
// same strategy supplied as an option.

type snapshotHeader struct {
	LoadFactor float64
	Size       int
}

// Snapshot writes the map's entries to w in iteration order, preceded by the
// map's metadata. K and V must be gob-encodable.
func (m *Map[K, V]) Snapshot(w io.Writer) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(snapshotHeader{LoadFactor: m.loadFactor, Size: m.size}); err != nil {
		return fmt.Errorf("openhash: encode snapshot header: %w", err)
	}
	for i := len(m.slots) - 1; i >= 0; i-- {
		if !m.slots[i].full {
			continue
		}
		if err := enc.Encode(m.slots[i].key); err != nil {
			return fmt.Errorf("openhash: encode key: %w", err)
		}
		if err := enc.Encode(m.slots[i].value); err != nil {
			return fmt.Errorf("openhash: encode value: %w", err)
		}
	}
	return nil
}

// ReadSnapshot rebuilds a map written by Snapshot. The snapshot's load factor
// is applied first, so a WithLoadFactor option in opts overrides it; custom
// strategies and default values must be re-supplied through opts.
func ReadSnapshot[K comparable, V any](r io.Reader, opts ...Option[K, V]) (*Map[K, V], error) {
	dec := gob.NewDecoder(r)
	var h snapshotHeader
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("openhash: decode snapshot header: %w", err)
	}
	if h.Size < 0 || h.LoadFactor <= 0 || h.LoadFactor > 1 {
		return nil, fmt.Errorf("openhash: corrupt snapshot header (size=%d loadFactor=%v)", h.Size, h.LoadFactor)
	}
	options := append([]Option[K, V]{WithLoadFactor[K, V](h.LoadFactor)}, opts...)
	m := New[K, V](h.Size, options...)
	for i := 0; i < h.Size; i++ {
		var key K
		var value V
		if err := dec.Decode(&key); err != nil {
			return nil, fmt.Errorf("openhash: decode key %d: %w", i, err)
		}
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("openhash: decode value %d: %w", i, err)
		}
		m.Put(key, value)
	}
	return m, nil
}

// Snapshot writes the set's keys to w in iteration order, preceded by the
// set's metadata. K must be gob-encodable.
func (s *Set[K]) Snapshot(w io.Writer) error {
	enc := gob.NewEncoder(w)
	m := s.m
	if err := enc.Encode(snapshotHeader{LoadFactor: m.loadFactor, Size: m.size}); err != nil {
		return fmt.Errorf("openhash: encode snapshot header: %w", err)
	}
	for i := len(m.slots) - 1; i >= 0; i-- {
		if !m.slots[i].full {
			continue
		}
		if err := enc.Encode(m.slots[i].key); err != nil {
			return fmt.Errorf("openhash: encode key: %w", err)
		}
	}
	return nil
}

// ReadSetSnapshot rebuilds a set written by Set.Snapshot; the option rules
// match ReadSnapshot.
func ReadSetSnapshot[K comparable](r io.Reader, opts ...SetOption[K]) (*Set[K], error) {
	dec := gob.NewDecoder(r)
	var h snapshotHeader
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("openhash: decode snapshot header: %w", err)
	}
	if h.Size < 0 || h.LoadFactor <= 0 || h.LoadFactor > 1 {
		return nil, fmt.Errorf("openhash: corrupt snapshot header (size=%d loadFactor=%v)", h.Size, h.LoadFactor)
	}
	options := append([]SetOption[K]{WithLoadFactor[K, struct{}](h.LoadFactor)}, opts...)
	s := NewSet[K](h.Size, options...)
	for i := 0; i < h.Size; i++ {
		var key K
		if err := dec.Decode(&key); err != nil {
			return nil, fmt.Errorf("openhash: decode key %d: %w", i, err)
		}
		s.Add(key)
	}
	return s, nil
}
