// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package trie

// IntervalMap records, for each value at a non-leaf trie layer, the
// half-open range of the next-deeper layer's column that belongs to
// it. offsets is strictly increasing with offsets[0] == 0 and
// offsets[len(offsets)-1] equal to the length of the child layer.
type IntervalMap struct {
	offsets []int
}

// NewIntervalMap wraps a strictly increasing offsets slice. The
// caller must ensure offsets[0] == 0 and the invariants documented on
// IntervalMap hold; NewIntervalMap does not re-validate them on the
// hot path. Validate performs that check explicitly; nothing in the
// builder or ingestion code calls it.
func NewIntervalMap(offsets []int) *IntervalMap {
	return &IntervalMap{offsets: offsets}
}

// NumParents returns the number of distinct parent values this map
// covers.
func (m *IntervalMap) NumParents() int { return len(m.offsets) - 1 }

// Offsets returns the raw offset array backing the map, for callers
// that need the whole structure rather than a ChildRange lookup. The
// returned slice must not be mutated.
func (m *IntervalMap) Offsets() []int { return m.offsets }

// ChildRange returns the half-open child range [lo, hi) belonging to
// the parent-layer value at index idx.
func (m *IntervalMap) ChildRange(idx int) (lo, hi int) {
	return m.offsets[idx], m.offsets[idx+1]
}

// Validate checks the invariants from spec.md section 3: offsets[0]
// == 0, the final offset equals childLen, and the sequence is
// strictly increasing (no dangling or zero-width ranges).
func (m *IntervalMap) Validate(childLen int) bool {
	if len(m.offsets) == 0 || m.offsets[0] != 0 {
		return false
	}
	if m.offsets[len(m.offsets)-1] != childLen {
		return false
	}
	for i := 1; i < len(m.offsets); i++ {
		if m.offsets[i] <= m.offsets[i-1] {
			return false
		}
	}
	return true
}
