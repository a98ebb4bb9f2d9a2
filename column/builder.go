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

// MinRunLength is the minimum average run length (over the buffered
// batch) for AdaptiveBuilder to flush to an RLE storage instead of a
// dense one. The source this engine was distilled from leaves this
// heuristic unstated; 8 is the documented reasonable default.
const MinRunLength = 8

// AdaptiveBuilder accumulates appended values and,
// on Finalize, chooses between a dense and an RLE storage depending on
// whether the buffered batch displays long arithmetic progressions on
// average.
type AdaptiveBuilder[T Ordered] struct {
	buf []T
}

// Append adds a value to the end of the buffer. The builder neither
// sorts nor checks order: values keep their append order, which for a
// trie's inner layers ascends only within each parent's child range.
func (b *AdaptiveBuilder[T]) Append(v T) {
	b.buf = append(b.buf, v)
}

// Forget discards the most recently appended value. It is a
// programming error to call Forget on an empty builder.
func (b *AdaptiveBuilder[T]) Forget() {
	b.buf = b.buf[:len(b.buf)-1]
}

// Len returns the number of values currently buffered.
func (b *AdaptiveBuilder[T]) Len() int { return len(b.buf) }

// Finalize consumes the buffer and returns the resulting storage.
func (b *AdaptiveBuilder[T]) Finalize() Storage[T] {
	rle := NewRLEFromSorted(b.buf)
	if len(b.buf) > 0 && rle.Runs() > 0 {
		avgRun := float64(len(b.buf)) / float64(rle.Runs())
		if avgRun >= MinRunLength {
			return rle
		}
	}
	return NewDense(b.buf)
}
