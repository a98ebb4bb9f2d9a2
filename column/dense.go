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

package column

import "sort"

// Dense is a contiguous-array column storage. Random access is O(1).
type Dense[T Ordered] struct {
	data []T
}

// NewDense wraps data as a Dense storage. data is not copied; the
// caller must not mutate it afterward.
func NewDense[T Ordered](data []T) *Dense[T] {
	return &Dense[T]{data: data}
}

func (d *Dense[T]) Len() int { return len(d.data) }

func (d *Dense[T]) Get(i int) T { return d.data[i] }

func (d *Dense[T]) Iter() RangedScan[T] {
	return &denseScan[T]{storage: d, pos: -1, lo: 0, hi: len(d.data)}
}

type denseScan[T Ordered] struct {
	storage *Dense[T]
	pos     int // index of current value; lo-1 before start
	lo, hi  int // narrowed range [lo, hi)
}

func (s *denseScan[T]) Next() (T, bool) {
	if s.pos < s.lo-1 {
		s.pos = s.lo - 1
	}
	s.pos++
	if s.pos >= s.hi {
		s.pos = s.hi
		var zero T
		return zero, false
	}
	return s.storage.data[s.pos], true
}

// Seek performs a galloping (exponential) probe from the current
// position until it overshoots target, then a bounded binary search
// within the overshoot window. This makes the cost of a seek
// proportional to the logarithm of the distance skipped, not to the
// length of the column — the property leapfrog join relies on.
func (s *denseScan[T]) Seek(target T) (T, bool) {
	start := s.pos
	if start < s.lo-1 {
		start = s.lo - 1
	}
	data := s.storage.data

	// already past target from a prior position
	if start >= s.lo && start < s.hi && data[start] >= target {
		return s.storage.data[start], true
	}

	lo := start + 1
	if lo < s.lo {
		lo = s.lo
	}
	hi := lo + 1
	for hi < s.hi && data[hi] < target {
		gap := hi - lo
		lo = hi
		hi += gap * 2
	}
	if hi > s.hi {
		hi = s.hi
	}

	idx := lo + sort.Search(hi-lo, func(i int) bool {
		return data[lo+i] >= target
	})
	if idx >= s.hi {
		s.pos = s.hi
		var zero T
		return zero, false
	}
	s.pos = idx
	return data[idx], true
}

func (s *denseScan[T]) Current() (T, bool) {
	if s.pos < s.lo || s.pos >= s.hi {
		var zero T
		return zero, false
	}
	return s.storage.data[s.pos], true
}

func (s *denseScan[T]) Reset() {
	s.pos = s.lo - 1
}

func (s *denseScan[T]) Pos() (int, bool) {
	if s.pos < s.lo || s.pos >= s.hi {
		return 0, false
	}
	return s.pos, true
}

func (s *denseScan[T]) Narrow(lo, hi int) {
	s.lo, s.hi = lo, hi
	s.pos = lo - 1
}
