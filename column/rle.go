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

import "golang.org/x/exp/slices"

// run is one arithmetic progression: start, start+incr, start+2*incr, ...
// of the given length.
type run[T Ordered] struct {
	start  T
	incr   T
	length int
}

// RLE is a run-length-encoded column storage: a sequence of
// arithmetic-progression runs. Random access is O(log R) by binary
// search over cumulative run lengths, where R is the number of runs.
// Typically built from sorted input where long monotone stretches
// compress well; the decoded sequence always equals the input used to
// build it.
type RLE[T Ordered] struct {
	runs []run[T]
	cum  []int // cum[i] = total length of runs[:i]; cum[len(runs)] = total length
}

// NewRLEFromSorted builds an RLE storage from a sorted slice of
// values, greedily grouping maximal constant-stride runs. A step down
// (as between a trie inner layer's child ranges) ends the current run,
// so no run ever has a decreasing stride.
func NewRLEFromSorted[T Ordered](data []T) *RLE[T] {
	r := &RLE[T]{cum: []int{0}}
	n := len(data)
	i := 0
	for i < n {
		start := data[i]
		if i+1 >= n || data[i+1] < data[i] {
			r.appendRun(run[T]{start: start, incr: 0, length: 1})
			i++
			continue
		}
		incr := data[i+1] - data[i]
		j := i + 1
		for j+1 < n && data[j+1] >= data[j] && data[j+1]-data[j] == incr {
			j++
		}
		r.appendRun(run[T]{start: start, incr: incr, length: j - i + 1})
		i = j + 1
	}
	return r
}

func (r *RLE[T]) appendRun(x run[T]) {
	r.runs = append(r.runs, x)
	r.cum = append(r.cum, r.cum[len(r.cum)-1]+x.length)
}

// Runs reports the number of runs backing the storage (test/inspection
// hook; not part of the column-scan protocol).
func (r *RLE[T]) Runs() int { return len(r.runs) }

func (r *RLE[T]) Len() int { return r.cum[len(r.cum)-1] }

func (r *RLE[T]) Get(i int) T {
	ri := r.runIndex(i)
	base := r.cum[ri]
	return r.runs[ri].start + r.runs[ri].incr*T(i-base)
}

// runIndex returns the index of the run containing global index i.
func (r *RLE[T]) runIndex(i int) int {
	// last ri such that cum[ri] <= i
	ri, found := slices.BinarySearch(r.cum, i)
	if found {
		// an exact match on a cum boundary belongs to the run that
		// starts there, unless it's the final (empty) sentinel
		if ri == len(r.cum)-1 {
			ri--
		}
		return ri
	}
	return ri - 1
}

func (r *RLE[T]) Iter() RangedScan[T] {
	return &rleScan[T]{storage: r, idx: -1, lo: 0, hi: r.Len()}
}

type rleScan[T Ordered] struct {
	storage *RLE[T]
	idx     int // global index of current value; lo-1 before start
	runIdx  int // run containing idx, kept in sync with idx
	lo, hi  int
}

func (s *rleScan[T]) Next() (T, bool) {
	if s.idx < s.lo-1 {
		s.idx = s.lo - 1
		s.runIdx = s.storage.runIndex(max(s.idx+1, 0))
	}
	s.idx++
	if s.idx >= s.hi {
		s.idx = s.hi
		var zero T
		return zero, false
	}
	for s.runIdx+1 < len(s.storage.runs) && s.idx >= s.storage.cum[s.runIdx+1] {
		s.runIdx++
	}
	return s.storage.runs[s.runIdx].value(s.idx, s.storage.cum[s.runIdx]), true
}

func (x run[T]) value(globalIdx, base int) T {
	return x.start + x.incr*T(globalIdx-base)
}

// Seek locates the containing run with a binary search over cumulative
// run lengths, then solves for the first in-run index k with
// start+k*incr >= target in O(1) using the run's arithmetic structure.
// NewRLEFromSorted never forms a run with a decreasing stride, so incr
// is always >= 0.
func (s *rleScan[T]) Seek(target T) (T, bool) {
	if cur, ok := s.Current(); ok && cur >= target {
		return cur, true
	}
	next := s.idx + 1
	if next < s.lo {
		next = s.lo
	}
	if next >= s.hi {
		s.idx = s.hi
		s.runIdx = len(s.storage.runs)
		var zero T
		return zero, false
	}

	ri := s.storage.runIndex(next)
	for ri < len(s.storage.runs) {
		rr := s.storage.runs[ri]
		base := s.storage.cum[ri]
		kmin := next - base
		if kmin < 0 {
			kmin = 0
		}

		var k int
		if rr.incr == 0 {
			if rr.start >= target {
				k = kmin
			} else {
				k = rr.length
			}
		} else {
			if target <= rr.start {
				k = 0
			} else {
				diff := target - rr.start
				k = int(diff / rr.incr)
				for rr.start+rr.incr*T(k) < target {
					k++
				}
			}
			if k < kmin {
				k = kmin
			}
		}

		if k < rr.length {
			idx := base + k
			if idx >= s.hi {
				break
			}
			s.idx = idx
			s.runIdx = ri
			return rr.value(idx, base), true
		}
		ri++
		next = base + rr.length
	}
	s.idx = s.hi
	s.runIdx = len(s.storage.runs)
	var zero T
	return zero, false
}

func (s *rleScan[T]) Current() (T, bool) {
	if s.idx < s.lo || s.idx >= s.hi {
		var zero T
		return zero, false
	}
	return s.storage.runs[s.runIdx].value(s.idx, s.storage.cum[s.runIdx]), true
}

func (s *rleScan[T]) Reset() {
	s.idx = s.lo - 1
	s.runIdx = s.storage.runIndex(max(s.lo, 0))
}

func (s *rleScan[T]) Pos() (int, bool) {
	if s.idx < s.lo || s.idx >= s.hi {
		return 0, false
	}
	return s.idx, true
}

func (s *rleScan[T]) Narrow(lo, hi int) {
	s.lo, s.hi = lo, hi
	s.idx = lo - 1
	if lo < s.storage.Len() {
		s.runIdx = s.storage.runIndex(lo)
	} else if len(s.storage.runs) > 0 {
		s.runIdx = len(s.storage.runs) - 1
	}
}
