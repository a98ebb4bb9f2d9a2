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

package scan

import "github.com/dltrie/dltrie/column"

// JoinScan is the ordered (leapfrog) merge-join of a non-empty list of
// sub-scans over the same scalar type: it drains their set
// intersection in ascending order by round-robin seeking the scan
// that is furthest behind up to the current maximum.
//
// Correctness rests on each sub-scan being strictly ascending; the
// matching loop terminates because activeMax is monotonically
// non-decreasing and bounded above by the least of the sub-scans'
// maxima.
type JoinScan[T column.Ordered] struct {
	scans     []column.Scan[T]
	active    int
	activeMax T
	hasMax    bool
	current   T
	hasCur    bool
}

// NewJoinScan constructs a JoinScan over scans. scans must be
// non-empty.
func NewJoinScan[T column.Ordered](scans []column.Scan[T]) *JoinScan[T] {
	return &JoinScan[T]{scans: scans}
}

func (j *JoinScan[T]) Next() (T, bool) {
	v, ok := j.scans[j.active].Next()
	if !ok {
		j.hasMax, j.hasCur = false, false
		var zero T
		return zero, false
	}
	j.activeMax, j.hasMax = v, true
	if len(j.scans) == 1 {
		j.current, j.hasCur = v, true
		return v, true
	}
	return j.matchLoop()
}

func (j *JoinScan[T]) Seek(target T) (T, bool) {
	v, ok := j.scans[j.active].Seek(target)
	if !ok {
		j.hasMax, j.hasCur = false, false
		var zero T
		return zero, false
	}
	j.activeMax, j.hasMax = v, true
	if len(j.scans) == 1 {
		j.current, j.hasCur = v, true
		return v, true
	}
	return j.matchLoop()
}

// matchLoop rotates the active scan round-robin, seeking each to
// activeMax in turn. Reaching a full round of agreement (every
// sub-scan last returned activeMax) means activeMax is in every
// sub-scan's sequence, so it is emitted. Any disagreement updates
// activeMax to the new, larger value and restarts the count.
func (j *JoinScan[T]) matchLoop() (T, bool) {
	matched := 1
	for {
		j.active = (j.active + 1) % len(j.scans)
		v, ok := j.scans[j.active].Seek(j.activeMax)
		if ok && v == j.activeMax {
			matched++
			if matched == len(j.scans) {
				j.current, j.hasCur = j.activeMax, true
				return j.activeMax, true
			}
			continue
		}
		if !ok {
			j.hasMax, j.hasCur = false, false
			var zero T
			return zero, false
		}
		j.activeMax = v
		matched = 1
	}
}

func (j *JoinScan[T]) Current() (T, bool) {
	if !j.hasCur {
		var zero T
		return zero, false
	}
	return j.current, true
}

func (j *JoinScan[T]) Reset() {
	j.active = 0
	j.hasMax, j.hasCur = false, false
	for _, s := range j.scans {
		s.Reset()
	}
}
