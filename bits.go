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
	"math"
	"math/bits"
)

const (
	// minCapacity is the smallest table we ever allocate.
	minCapacity = 2
	// defaultCapacity is the floor below which deletions never shrink the
	// table, independent of the construction-time capacity.
	defaultCapacity = 16
	// defaultLoadFactor balances memory against probe-chain length.
	defaultLoadFactor = 0.75
)

// nextPowerOfTwo returns the least power of two >= v. Returns 1 for v == 0.
func nextPowerOfTwo(v uint64) uint64 {
	if v == 0 {
		return 1
	}
	return 1 << bits.Len64(v-1)
}

// arraySize returns the table length needed to hold expected entries at load
// factor f without rehashing: the least power of two >= ceil(expected/f),
// clamped to minCapacity.
func arraySize(expected int, f float64) int {
	n := nextPowerOfTwo(uint64(math.Ceil(float64(expected) / f)))
	if n < minCapacity {
		n = minCapacity
	}
	return int(n)
}

// maxFill returns the occupancy at which a table of length n must grow. The
// n-1 clamp keeps at least one slot empty at all times, which is what makes
// every probe loop terminate.
func maxFill(n int, f float64) int {
	m := int(math.Floor(float64(n) * f))
	if m > n-1 {
		m = n - 1
	}
	if m < 1 {
		m = 1
	}
	return m
}

// mix64 is the 64-bit murmur3 finalizer. It is applied to every hash before
// masking so that low-entropy hash functions (sequential integers, constant
// strategies) do not degenerate into one long probe chain.
func mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}
