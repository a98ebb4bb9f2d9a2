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

import "github.com/dltrie/dltrie/column"

// Builder accumulates rows, appended in ascending lexicographic
// order, into a Trie. Consecutive rows sharing a prefix reuse the
// shared layers' existing values instead of duplicating them, which
// is what gives the trie representation its compression: a prefix
// common to many rows is stored once.
//
// Forget undoes the single most recently appended row; it exists so
// an ingestion collaborator that discovers a row is malformed partway
// through building it (see ingest/csv and ingest/rdf) can roll back
// without leaving the trie in a partially-appended state. Only one
// level of undo is supported, matching how ingestion uses it: a row
// is always fully validated (or forgotten) before the next one is
// appended.
type Builder[T column.Ordered] struct {
	arity    int
	builders []*column.AdaptiveBuilder[T]
	offsets  [][]int // len arity-1; offsets[l] grows by one entry per new value appended to layer l

	last    []T
	hasLast bool
	lastD   int // split point of the most recent Append, for Forget

	undoLast    []T
	undoHasLast bool
}

// NewBuilder returns a Builder for rows of the given arity.
func NewBuilder[T column.Ordered](arity int) *Builder[T] {
	if arity < 1 {
		panic("trie: arity must be at least 1")
	}
	b := &Builder[T]{
		arity:    arity,
		builders: make([]*column.AdaptiveBuilder[T], arity),
		offsets:  make([][]int, arity-1),
	}
	for i := range b.builders {
		b.builders[i] = &column.AdaptiveBuilder[T]{}
	}
	return b
}

// Append adds row, a tuple of length equal to the builder's arity.
// Rows must arrive in ascending lexicographic order with no exact
// duplicates; Append does not itself verify this.
func (b *Builder[T]) Append(row []T) {
	if len(row) != b.arity {
		panic("trie: row length does not match builder arity")
	}

	b.undoHasLast = b.hasLast
	if b.hasLast {
		b.undoLast = append(b.undoLast[:0], b.last...)
	} else {
		b.undoLast = b.undoLast[:0]
	}

	d := 0
	if b.hasLast {
		for d < b.arity && row[d] == b.last[d] {
			d++
		}
	}

	for l := d; l < b.arity; l++ {
		b.builders[l].Append(row[l])
		if l < b.arity-1 {
			b.offsets[l] = append(b.offsets[l], b.builders[l+1].Len())
		}
	}

	if b.last == nil {
		b.last = make([]T, b.arity)
	}
	copy(b.last, row)
	b.hasLast = true
	b.lastD = d
}

// Forget rolls back the row most recently passed to Append. It is a
// programming error to call Forget twice in a row, or before any
// Append.
func (b *Builder[T]) Forget() {
	for l := b.arity - 1; l >= b.lastD; l-- {
		b.builders[l].Forget()
		if l < b.arity-1 {
			b.offsets[l] = b.offsets[l][:len(b.offsets[l])-1]
		}
	}
	b.hasLast = b.undoHasLast
	if b.hasLast {
		copy(b.last, b.undoLast)
	}
}

// Finalize consumes the builder and returns the assembled Trie.
func (b *Builder[T]) Finalize() *Trie[T] {
	maps := make([]*IntervalMap, b.arity-1)
	for l := 0; l < b.arity-1; l++ {
		off := make([]int, 0, len(b.offsets[l])+1)
		off = append(off, b.offsets[l]...)
		off = append(off, b.builders[l+1].Len())
		maps[l] = NewIntervalMap(off)
	}

	layers := make([]column.Storage[T], b.arity)
	for i, bb := range b.builders {
		layers[i] = bb.Finalize()
	}
	return New(layers, maps)
}
