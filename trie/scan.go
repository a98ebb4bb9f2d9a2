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

// TrieScan is a depth-first cursor over a (possibly virtual, e.g.
// joined or pruned) trie. A fresh TrieScan starts with its active
// layer at 0, with that layer's column scan positioned before its
// first value.
//
// The drain protocol (see Materialize) is: call Next/Seek on
// CurrentScan(); on success, either Down() (if not at the leaf layer)
// or record the leaf value and call CurrentScan().Next() again (to
// look for a sibling leaf); on failure, Up() and retry the
// shallower layer's CurrentScan(), terminating when Up() is called at
// layer 0 (ActiveLayer() == 0 and nothing shallower exists to return
// to).
type TrieScan[T column.Ordered] interface {
	// Arity returns the number of layers.
	Arity() int
	// ActiveLayer returns the layer index the scan is currently
	// positioned at.
	ActiveLayer() int
	// CurrentScan returns the column scan for the active layer.
	CurrentScan() column.Scan[T]
	// Down descends one layer, narrowing the new active layer's scan
	// to the child range of the current (now former-active) layer's
	// current value. Down must only be called when ActiveLayer() <
	// Arity()-1 and the former-active layer has a current value.
	Down()
	// Up leaves the current layer and resets its scan, returning to
	// the parent layer. Up is a no-op when ActiveLayer() == 0.
	Up()
}

// MaterializedTrieScan is the TrieScan over a stored Trie.
type MaterializedTrieScan[T column.Ordered] struct {
	trie   *Trie[T]
	scans  []column.RangedScan[T]
	active int
}

var _ TrieScan[uint64] = (*MaterializedTrieScan[uint64])(nil)

// NewScan returns a fresh depth-first scan over t, positioned at
// layer 0 with that layer's scan covering the full column.
func NewScan[T column.Ordered](t *Trie[T]) *MaterializedTrieScan[T] {
	scans := make([]column.RangedScan[T], t.Arity())
	scans[0] = t.layers[0].Iter()
	return &MaterializedTrieScan[T]{trie: t, scans: scans, active: 0}
}

func (s *MaterializedTrieScan[T]) Arity() int { return s.trie.Arity() }

func (s *MaterializedTrieScan[T]) ActiveLayer() int { return s.active }

func (s *MaterializedTrieScan[T]) CurrentScan() column.Scan[T] { return s.scans[s.active] }

func (s *MaterializedTrieScan[T]) Down() {
	parentPos, ok := s.scans[s.active].Pos()
	if !ok {
		panic("trie: Down called with no current value at the active layer")
	}
	parentLayer := s.active
	s.active++
	lo, hi := s.trie.ChildRange(parentLayer, parentPos)
	child := s.trie.layers[s.active].Iter()
	child.Narrow(lo, hi)
	s.scans[s.active] = child
}

func (s *MaterializedTrieScan[T]) Up() {
	if s.active == 0 {
		return
	}
	s.scans[s.active].Reset()
	s.scans[s.active] = nil
	s.active--
}
