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
	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// Ready-made hash functions for WithHash and WithStrategy. The default
// strategy (maphash on a per-map seed) is a good choice for almost every map;
// these exist for callers that want deterministic placement across map
// instances or cheaper hashing for integer keys.

// IntHash hashes an integer key by value. Combined with the table's bit
// finalizer this gives well-spread placement at the cost of a single
// conversion, and identical placement across maps and process runs.
func IntHash[K constraints.Integer](key K) uint64 {
	return uint64(key)
}

// StringHash hashes a string key with xxhash. Deterministic across process
// runs, unlike the seeded default strategy.
func StringHash(key string) uint64 {
	return xxhash.Sum64String(key)
}
