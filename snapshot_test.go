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
	"bytes"
	"encoding/gob"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapSnapshotRoundTrip(t *testing.T) {
	m := New[int64, string](0, WithLoadFactor[int64, string](0.5))
	for i := int64(0); i < 100; i++ {
		m.Put(i, strconv.FormatInt(i, 10))
	}

	var buf bytes.Buffer
	require.NoError(t, m.Snapshot(&buf))

	r, err := ReadSnapshot[int64, string](&buf)
	require.NoError(t, err)
	require.Equal(t, 100, r.Len())
	require.True(t, Equal(m, r))
	// The load factor travels with the snapshot.
	require.Equal(t, 0.5, r.loadFactor)
}

func TestMapSnapshotOptionOverride(t *testing.T) {
	m := New[int, int](0)
	m.Put(1, 10)

	var buf bytes.Buffer
	require.NoError(t, m.Snapshot(&buf))

	r, err := ReadSnapshot[int, int](&buf, WithLoadFactor[int, int](0.25), WithDefaultValue[int, int](-1))
	require.NoError(t, err)
	require.Equal(t, 0.25, r.loadFactor)
	require.Equal(t, 10, r.Get(1))
	require.Equal(t, -1, r.Get(2))
}

func TestMapSnapshotCustomStrategy(t *testing.T) {
	mod10 := func(k int) uint64 { return uint64(k % 10) }
	eq10 := func(a, b int) bool { return a%10 == b%10 }
	m := New[int, string](0, WithStrategy[int, string](mod10, eq10))
	m.Put(5, "five")
	m.Put(12, "twelve")

	var buf bytes.Buffer
	require.NoError(t, m.Snapshot(&buf))

	// Strategies are not serialized; the reader must supply the same one.
	r, err := ReadSnapshot[int, string](&buf, WithStrategy[int, string](mod10, eq10))
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())
	require.Equal(t, "five", r.Get(25))
	require.Equal(t, "twelve", r.Get(32))
}

func TestSetSnapshotRoundTrip(t *testing.T) {
	s := NewSet[string](0)
	for i := 0; i < 50; i++ {
		s.Add(strconv.Itoa(i))
	}

	var buf bytes.Buffer
	require.NoError(t, s.Snapshot(&buf))

	r, err := ReadSetSnapshot[string](&buf)
	require.NoError(t, err)
	require.Equal(t, 50, r.Len())
	for i := 0; i < 50; i++ {
		require.True(t, r.Contains(strconv.Itoa(i)))
	}
}

func TestSyncMapSnapshot(t *testing.T) {
	m := Synchronize(New[int, int](0))
	m.Put(1, 10)

	var buf bytes.Buffer
	require.NoError(t, m.Snapshot(&buf))

	r, err := ReadSnapshot[int, int](&buf)
	require.NoError(t, err)
	require.Equal(t, 10, r.Get(1))
}

func TestReadSnapshotErrors(t *testing.T) {
	// Empty stream.
	_, err := ReadSnapshot[int, int](bytes.NewReader(nil))
	require.Error(t, err)
	_, err = ReadSetSnapshot[int](bytes.NewReader(nil))
	require.Error(t, err)

	// A header that passed transport intact but carries nonsense.
	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(snapshotHeader{LoadFactor: 42, Size: 1}))
	_, err = ReadSnapshot[int, int](&buf)
	require.Error(t, err)

	buf.Reset()
	require.NoError(t, gob.NewEncoder(&buf).Encode(snapshotHeader{LoadFactor: 0.75, Size: -1}))
	_, err = ReadSnapshot[int, int](&buf)
	require.Error(t, err)

	// Truncated entry stream.
	m := New[int, int](0)
	for i := 0; i < 100; i++ {
		m.Put(i, i)
	}
	buf.Reset()
	require.NoError(t, m.Snapshot(&buf))
	_, err = ReadSnapshot[int, int](bytes.NewReader(buf.Bytes()[:buf.Len()-10]))
	require.Error(t, err)
}
