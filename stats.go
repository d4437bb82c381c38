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

// Stats describes the health of a table: how full it is and how far entries
// sit from their home positions. Probe lengths count slots inspected, so a
// key in its home position has probe length 1.
type Stats struct {
	Len      int
	Capacity int
	Load     float64
	MaxProbe int
	AvgProbe float64
}

// Stats computes table statistics in a single pass. Linear in the table size.
func (m *Map[K, V]) Stats() Stats {
	st := Stats{Len: m.size, Capacity: len(m.slots)}
	if st.Capacity > 0 {
		st.Load = float64(st.Len) / float64(st.Capacity)
	}
	total := 0
	for i := range m.slots {
		if !m.slots[i].full {
			continue
		}
		d := (i-m.home(m.slots[i].key))&m.mask + 1
		if d > st.MaxProbe {
			st.MaxProbe = d
		}
		total += d
	}
	if st.Len > 0 {
		st.AvgProbe = float64(total) / float64(st.Len)
	}
	return st
}

// Stats computes table statistics for the set; see Map.Stats.
func (s *Set[K]) Stats() Stats {
	return s.m.Stats()
}
