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

// Option provides an interface to do work on a Map while it is being created.
type Option[K comparable, V any] interface {
	apply(m *Map[K, V])
}

// SetOption is the option type accepted by NewSet.
type SetOption[K comparable] = Option[K, struct{}]

type loadFactorOption[K comparable, V any] struct {
	f float64
}

func (op loadFactorOption[K, V]) apply(m *Map[K, V]) {
	m.loadFactor = op.f
}

// WithLoadFactor is an option to specify the load factor of a Map[K,V]. The
// factor must lie in (0, 1]; New panics otherwise.
func WithLoadFactor[K comparable, V any](f float64) Option[K, V] {
	return loadFactorOption[K, V]{f}
}

type hashOption[K comparable, V any] struct {
	hash func(K) uint64
}

func (op hashOption[K, V]) apply(m *Map[K, V]) {
	m.hash = op.hash
}

// WithHash is an option to specify the hash function to use for a Map[K,V].
// Key equality stays ==. The table applies its own bit finalizer on top, so
// the function does not need to be well mixed.
func WithHash[K comparable, V any](hash func(K) uint64) Option[K, V] {
	return hashOption[K, V]{hash}
}

type strategyOption[K comparable, V any] struct {
	hash  func(K) uint64
	equal func(K, K) bool
}

func (op strategyOption[K, V]) apply(m *Map[K, V]) {
	m.hash = op.hash
	m.equal = op.equal
}

// WithStrategy is an option replacing both the hash function and key equality
// of a Map[K,V], for semantics like case-insensitive keys. hash must be
// consistent with equal: equal keys must hash identically.
func WithStrategy[K comparable, V any](hash func(K) uint64, equal func(a, b K) bool) Option[K, V] {
	return strategyOption[K, V]{hash, equal}
}

type defaultValueOption[K comparable, V any] struct {
	v V
}

func (op defaultValueOption[K, V]) apply(m *Map[K, V]) {
	m.defVal = op.v
}

// WithDefaultValue is an option to specify the value returned by Get, Put and
// Remove for absent keys, in place of the zero value of V.
func WithDefaultValue[K comparable, V any](v V) Option[K, V] {
	return defaultValueOption[K, V]{v}
}
