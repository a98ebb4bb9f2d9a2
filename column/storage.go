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

// Package column implements the physical column storage and column
// scan layers of the engine: immutable sorted-or-unsorted sequences of
// scalars (dense vectors and run-length-encoded runs) and the
// forward-only, seek-capable cursors ("scans") over them.
package column

import "golang.org/x/exp/constraints"

// Ordered is the constraint satisfied by every concrete scalar kind
// a Storage or Scan can hold: unsigned integers (including dictionary
// handles), and floats. No constructor or builder checks for NaN; a
// NaN value is stored as given.
type Ordered interface {
	constraints.Integer | constraints.Float
}

// Storage is an immutable ordered (for trie leaves: strictly
// ascending, duplicate-free) sequence of scalars supporting random
// access and fresh scan creation.
type Storage[T Ordered] interface {
	// Len returns the number of elements in the storage.
	Len() int
	// Get returns the element at index i. i must satisfy 0 <= i < Len().
	Get(i int) T
	// Iter returns a fresh scan positioned before index 0.
	Iter() RangedScan[T]
}

// Scan is a stateful forward-only cursor over a single column.
//
// Next and Seek never return an error: exhaustion is communicated by
// the boolean result being false, matching the "scans never fail"
// error-handling policy of the engine (misuse of a builder or an
// unsupported operator method is the only thing that aborts a plan).
type Scan[T Ordered] interface {
	// Next advances to, and returns, the next value in ascending
	// order. The second result is false once the scan is exhausted.
	Next() (T, bool)
	// Seek advances to the first value >= target and returns it.
	// Repeated calls to Seek must be made with non-decreasing targets;
	// seeking backward is unspecified. The second result is false if
	// no such value exists.
	Seek(target T) (T, bool)
	// Current returns the value produced by the most recent
	// successful Next/Seek, or (zero, false) before the first call or
	// after exhaustion.
	Current() (T, bool)
	// Reset returns the scan to its initial, pre-start state.
	Reset()
}

// RangedScan is a Scan that is backed directly by a Storage and
// therefore additionally supports positional introspection and
// sub-range narrowing. Operator scans (package scan) implement
// only Scan; calling Pos or Narrow on one is a programming error.
type RangedScan[T Ordered] interface {
	Scan[T]
	// Pos returns the index within the backing storage of the current
	// value, or false if the scan has no current value.
	Pos() (int, bool)
	// Narrow restricts the scan to the half-open sub-range [lo, hi)
	// of the backing storage and resets it to the pre-start state
	// within that range.
	Narrow(lo, hi int)
}
