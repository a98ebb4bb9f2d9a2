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

// PruneTrieScan wraps an inner TrieScan and hides values at non-leaf
// layers that have no leaf completion. A materialized Trie never has
// such values (every interval map range is non-empty by
// construction), so pruning only ever does real work over a virtual
// scan such as a JoinTrieScan, where an intersection can hold at a
// shallow layer yet vanish before reaching a leaf.
//
// Validation works by descending, via the inner scan's own Down/Up,
// all the way to a leaf and rewinding; it does not cache the
// descended position for reuse by the caller's own subsequent
// Down(), trading the peephole-optimized single-descent scheme of
// the source this was distilled from for a simpler, still-correct
// double descent.
type PruneTrieScan[T column.Ordered] struct {
	inner TrieScan[T]
	cur   []*pruneColumnScan[T]
}

var _ TrieScan[uint64] = (*PruneTrieScan[uint64])(nil)

// NewPruneScan wraps inner.
func NewPruneScan[T column.Ordered](inner TrieScan[T]) *PruneTrieScan[T] {
	p := &PruneTrieScan[T]{inner: inner, cur: make([]*pruneColumnScan[T], inner.Arity())}
	p.cur[0] = &pruneColumnScan[T]{owner: p, layer: 0}
	return p
}

func (p *PruneTrieScan[T]) Arity() int { return p.inner.Arity() }

func (p *PruneTrieScan[T]) ActiveLayer() int { return p.inner.ActiveLayer() }

func (p *PruneTrieScan[T]) CurrentScan() column.Scan[T] { return p.cur[p.inner.ActiveLayer()] }

func (p *PruneTrieScan[T]) Down() {
	p.inner.Down()
	layer := p.inner.ActiveLayer()
	p.cur[layer] = &pruneColumnScan[T]{owner: p, layer: layer}
}

func (p *PruneTrieScan[T]) Up() {
	if p.inner.ActiveLayer() == 0 {
		return
	}
	p.cur[p.inner.ActiveLayer()] = nil
	p.inner.Up()
}

// hasCompletion reports whether the value currently sitting at layer
// l of the inner scan has at least one leaf descendant. It descends
// to find out, then rewinds back to layer l, leaving the inner
// scan's active layer and the value at l untouched.
func (p *PruneTrieScan[T]) hasCompletion(layer int) bool {
	if layer == p.inner.Arity()-1 {
		return true
	}
	p.inner.Down()
	found := false
	for {
		_, ok := p.inner.CurrentScan().Next()
		if !ok {
			break
		}
		if p.hasCompletion(layer + 1) {
			found = true
			break
		}
	}
	p.inner.Up()
	return found
}

// pruneColumnScan is the column.Scan exposed by PruneTrieScan for one
// layer: Next/Seek delegate to the inner scan's current-layer scan
// but skip any value without a leaf completion.
type pruneColumnScan[T column.Ordered] struct {
	owner *PruneTrieScan[T]
	layer int
}

func (s *pruneColumnScan[T]) Next() (T, bool) {
	inner := s.owner.inner.CurrentScan()
	for {
		v, ok := inner.Next()
		if !ok {
			var zero T
			return zero, false
		}
		if s.owner.hasCompletion(s.layer) {
			return v, true
		}
	}
}

func (s *pruneColumnScan[T]) Seek(target T) (T, bool) {
	inner := s.owner.inner.CurrentScan()
	v, ok := inner.Seek(target)
	for ok {
		if s.owner.hasCompletion(s.layer) {
			return v, true
		}
		v, ok = inner.Next()
	}
	var zero T
	return zero, false
}

func (s *pruneColumnScan[T]) Current() (T, bool) {
	return s.owner.inner.CurrentScan().Current()
}

func (s *pruneColumnScan[T]) Reset() {
	s.owner.inner.CurrentScan().Reset()
}
