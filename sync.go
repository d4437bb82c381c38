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
	"io"
	"sync"
)

// SyncMap wraps a Map with a single mutex guarding every method, trading
// concurrency for safety. The engine itself stays lock-free; this decorator
// is the opt-in path for shared use. The wrapped Map must not be used
// directly while the decorator is in use.
type SyncMap[K comparable, V any] struct {
	mu sync.Mutex
	m  *Map[K, V]
}

// Synchronize wraps m in a SyncMap.
func Synchronize[K comparable, V any](m *Map[K, V]) *SyncMap[K, V] {
	return &SyncMap[K, V]{m: m}
}

func (s *SyncMap[K, V]) Put(key K, value V) V {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Put(key, value)
}

func (s *SyncMap[K, V]) Get(key K) V {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Get(key)
}

func (s *SyncMap[K, V]) GetOk(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.GetOk(key)
}

func (s *SyncMap[K, V]) GetOrDefault(key K, def V) V {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.GetOrDefault(key, def)
}

func (s *SyncMap[K, V]) Remove(key K) V {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Remove(key)
}

func (s *SyncMap[K, V]) ContainsKey(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.ContainsKey(key)
}

func (s *SyncMap[K, V]) PutIfAbsent(key K, value V) V {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.PutIfAbsent(key, value)
}

func (s *SyncMap[K, V]) ComputeIfAbsent(key K, f func(K) V) V {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.ComputeIfAbsent(key, f)
}

func (s *SyncMap[K, V]) Merge(key K, value V, f func(old, new V) V) V {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Merge(key, value, f)
}

func (s *SyncMap[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Len()
}

func (s *SyncMap[K, V]) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Empty()
}

func (s *SyncMap[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m.Clear()
}

func (s *SyncMap[K, V]) Trim(targetSize int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Trim(targetSize)
}

func (s *SyncMap[K, V]) SetDefaultValue(v V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m.SetDefaultValue(v)
}

func (s *SyncMap[K, V]) DefaultValue() V {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.DefaultValue()
}

// Range calls f for every entry while holding the lock. f must not call back
// into the SyncMap.
func (s *SyncMap[K, V]) Range(f func(key K, value V) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range s.m.All() {
		if !f(k, v) {
			return
		}
	}
}

// Snapshot writes the map's persisted form while holding the lock.
func (s *SyncMap[K, V]) Snapshot(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Snapshot(w)
}

// SyncSet wraps a Set with a single mutex guarding every method; the Set
// analogue of SyncMap.
type SyncSet[K comparable] struct {
	mu sync.Mutex
	s  *Set[K]
}

// SynchronizeSet wraps s in a SyncSet.
func SynchronizeSet[K comparable](s *Set[K]) *SyncSet[K] {
	return &SyncSet[K]{s: s}
}

func (s *SyncSet[K]) Add(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.s.Add(key)
}

func (s *SyncSet[K]) Remove(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.s.Remove(key)
}

func (s *SyncSet[K]) Contains(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.s.Contains(key)
}

func (s *SyncSet[K]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.s.Len()
}

func (s *SyncSet[K]) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.s.Empty()
}

func (s *SyncSet[K]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s.Clear()
}

// Range calls f for every key while holding the lock. f must not call back
// into the SyncSet.
func (s *SyncSet[K]) Range(f func(key K) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.s.All() {
		if !f(k) {
			return
		}
	}
}
