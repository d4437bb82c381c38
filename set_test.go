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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetBasic(t *testing.T) {
	s := NewSet[string](0)
	require.True(t, s.Empty())

	require.True(t, s.Add("a"))
	require.False(t, s.Add("a"))
	require.True(t, s.Add("b"))
	require.Equal(t, 2, s.Len())
	require.True(t, s.Contains("a"))
	require.False(t, s.Contains("c"))

	require.True(t, s.Remove("a"))
	require.False(t, s.Remove("a"))
	require.Equal(t, 1, s.Len())
	require.False(t, s.Contains("a"))
}

func TestSetRandom(t *testing.T) {
	s := NewSet[int](0)
	e := make(map[int]bool)
	rng := rand.New(rand.NewSource(7))
	const universe = 64
	for i := 0; i < 10000; i++ {
		k := rng.Intn(universe)
		if rng.Float64() < 0.5 {
			require.Equal(t, !e[k], s.Add(k))
			e[k] = true
		} else {
			require.Equal(t, e[k], s.Remove(k))
			delete(e, k)
		}
		require.Equal(t, len(e), s.Len())
	}
	for k := 0; k < universe; k++ {
		require.Equal(t, e[k], s.Contains(k))
	}
}

func TestSetAll(t *testing.T) {
	s := NewSet[int](0)
	for i := 0; i < 100; i++ {
		s.Add(i)
	}
	seen := make(map[int]bool)
	for k := range s.All() {
		require.False(t, seen[k])
		seen[k] = true
	}
	require.Len(t, seen, 100)
}

func TestSetIterRemove(t *testing.T) {
	s := NewSet[int](0)
	const count = 100
	for i := 0; i < count; i++ {
		s.Add(i)
	}

	seen := make(map[int]int)
	it := s.Iter()
	for it.Next() {
		seen[it.Key()]++
		if it.Key()%2 == 1 {
			it.Remove()
		}
	}
	require.Len(t, seen, count)
	for k, n := range seen {
		require.Equal(t, 1, n, "key %d visited %d times", k, n)
	}
	require.Equal(t, count/2, s.Len())
	for i := 0; i < count; i++ {
		require.Equal(t, i%2 == 0, s.Contains(i))
	}
}

func TestSetCustomStrategy(t *testing.T) {
	mod10 := func(k int) uint64 { return uint64(k % 10) }
	eq10 := func(a, b int) bool { return a%10 == b%10 }
	s := NewSet[int](0, WithStrategy[int, struct{}](mod10, eq10))

	require.True(t, s.Add(5))
	require.False(t, s.Add(15))
	require.Equal(t, 1, s.Len())
	require.True(t, s.Contains(25))
	require.True(t, s.Remove(35))
	require.True(t, s.Empty())
}

func TestSetOptions(t *testing.T) {
	// SetOption is an alias, so map options parameterized on struct{} apply.
	s := NewSet[int](4, WithLoadFactor[int, struct{}](0.5))
	require.Equal(t, 8, s.m.capacity())
	for i := 0; i < 8; i++ {
		s.Add(i)
	}
	require.Equal(t, 32, s.m.capacity())
}

func TestSetCloneClearTrim(t *testing.T) {
	s := NewSet[int](1000)
	for i := 0; i < 10; i++ {
		s.Add(i)
	}

	c := s.Clone()
	s.Clear()
	require.True(t, s.Empty())
	require.Equal(t, 10, c.Len())

	require.True(t, c.Trim(10))
	require.Equal(t, 16, c.m.capacity())
	for i := 0; i < 10; i++ {
		require.True(t, c.Contains(i))
	}
	require.False(t, c.Trim(10))
}
