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

// Package trie implements the column-oriented trie representation of
// a relation: k column storages (one per attribute, "layer") plus k-1
// interval maps threading a parent layer's value to the half-open
// range of its children in the next layer. A row of the relation is a
// root-to-leaf path.
package trie

import "github.com/dltrie/dltrie/column"

// Trie is an immutable materialized relation of arity Arity(): each
// layer is a column.Storage over the same scalar type, and each
// non-leaf layer has an associated IntervalMap threading it to the
// next layer.
type Trie[T column.Ordered] struct {
	layers []column.Storage[T]
	maps   []*IntervalMap // len(maps) == len(layers)-1
}

// New assembles a Trie from its layers and interval maps. len(maps)
// must equal len(layers)-1; callers that built layers and maps via
// Builder get this for free.
func New[T column.Ordered](layers []column.Storage[T], maps []*IntervalMap) *Trie[T] {
	if len(layers) == 0 {
		panic("trie: at least one layer is required")
	}
	if len(maps) != len(layers)-1 {
		panic("trie: len(maps) must equal len(layers)-1")
	}
	return &Trie[T]{layers: layers, maps: maps}
}

// Arity returns the number of columns (layers) in the trie.
func (t *Trie[T]) Arity() int { return len(t.layers) }

// Layer returns the column storage backing layer i.
func (t *Trie[T]) Layer(i int) column.Storage[T] { return t.layers[i] }

// ChildRange returns the half-open index range in layer+1 that
// belongs to the value at index parentIdx of layer. layer must be a
// non-leaf layer (0 <= layer < Arity()-1).
func (t *Trie[T]) ChildRange(layer, parentIdx int) (lo, hi int) {
	return t.maps[layer].ChildRange(parentIdx)
}

// NumRows returns the number of root-to-leaf paths, i.e. the length
// of the leaf layer.
func (t *Trie[T]) NumRows() int {
	if len(t.layers) == 0 {
		return 0
	}
	return t.layers[len(t.layers)-1].Len()
}
