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

// EqualScan yields at most one value: the reference scan's current
// value, iff the value scan can seek to exactly that value. It is
// used to restrict a sub-scan to the single value a sibling trie-scan
// layer has already settled on.
type EqualScan[T column.Ordered] struct {
	reference column.Scan[T]
	value     column.Scan[T]
	current   T
	hasCur    bool
}

// NewEqualScan constructs an EqualScan. reference should already be
// positioned (e.g. by a prior Next/Seek) when the scan is used.
func NewEqualScan[T column.Ordered](reference, value column.Scan[T]) *EqualScan[T] {
	return &EqualScan[T]{reference: reference, value: value}
}

// Next is idempotent after the first call in a given positioning of
// reference: a second call always returns (zero, false), since the
// reference's current value can only be produced once.
func (e *EqualScan[T]) Next() (T, bool) {
	if e.hasCur {
		e.hasCur = false
		var zero T
		return zero, false
	}
	ref, ok := e.reference.Current()
	if !ok {
		var zero T
		return zero, false
	}
	v, ok := e.value.Seek(ref)
	if ok && v == ref {
		e.current, e.hasCur = v, true
		return v, true
	}
	var zero T
	return zero, false
}

// Seek returns None if target exceeds the reference's current value
// (no value can satisfy equality beyond it); otherwise it behaves like
// Next.
func (e *EqualScan[T]) Seek(target T) (T, bool) {
	ref, ok := e.reference.Current()
	if !ok {
		var zero T
		return zero, false
	}
	if target > ref {
		e.hasCur = false
		var zero T
		return zero, false
	}
	return e.Next()
}

func (e *EqualScan[T]) Current() (T, bool) {
	if !e.hasCur {
		var zero T
		return zero, false
	}
	return e.current, true
}

func (e *EqualScan[T]) Reset() {
	e.hasCur = false
}
