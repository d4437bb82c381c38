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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextPowerOfTwo(t *testing.T) {
	cases := []struct {
		in, out uint64
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{1000, 1024},
		{1024, 1024},
		{1025, 2048},
		{1 << 40, 1 << 40},
		{1<<40 + 1, 1 << 41},
	}
	for _, c := range cases {
		require.Equal(t, c.out, nextPowerOfTwo(c.in), "nextPowerOfTwo(%d)", c.in)
	}
}

func TestArraySize(t *testing.T) {
	cases := []struct {
		expected int
		f        float64
		out      int
	}{
		{0, 0.75, 2},
		{1, 0.75, 2},
		{2, 0.75, 4},
		{4, 0.75, 8},
		{16, 0.75, 32},
		{100, 0.75, 256},
		{1000, 0.75, 2048},
		{8, 0.5, 16},
		{8, 1.0, 8},
		{3, 1.0, 4},
	}
	for _, c := range cases {
		require.Equal(t, c.out, arraySize(c.expected, c.f), "arraySize(%d, %v)", c.expected, c.f)
	}
}

func TestMaxFill(t *testing.T) {
	// The fill bound always leaves at least one empty slot, and never drops
	// below one occupied slot.
	require.Equal(t, 1, maxFill(2, 0.75))
	require.Equal(t, 3, maxFill(4, 0.75))
	require.Equal(t, 6, maxFill(8, 0.75))
	require.Equal(t, 12, maxFill(16, 0.75))
	require.Equal(t, 1, maxFill(2, 0.01))
	require.Equal(t, 7, maxFill(8, 1.0))
	require.Equal(t, 15, maxFill(16, 1.0))
}

func TestMix64(t *testing.T) {
	// The finalizer is a bijection; small inputs must scatter.
	seen := make(map[uint64]bool)
	for i := uint64(0); i < 1000; i++ {
		h := mix64(i)
		require.False(t, seen[h])
		seen[h] = true
	}
	require.NotEqual(t, uint64(1), mix64(1))
	require.NotEqual(t, mix64(1), mix64(2))
	// Consecutive inputs should disagree in the low bits the mask keeps.
	same := 0
	for i := uint64(0); i < 256; i++ {
		if mix64(i)&15 == mix64(i+1)&15 {
			same++
		}
	}
	require.Less(t, same, 64)
}
