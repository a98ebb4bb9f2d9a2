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

import (
	"github.com/dltrie/dltrie/column"
	"github.com/dltrie/dltrie/scan"
)

// JoinTrieScan is the trie-level leapfrog join of sub-scans that all
// share the same attribute (variable) order: at every layer, its
// current scan is the column-level JoinScan of the sub-scans'
// current scans at that layer. Descending and ascending drives every
// sub-scan in lockstep.
type JoinTrieScan[T column.Ordered] struct {
	subs   []TrieScan[T]
	layers []*scan.JoinScan[T]
	active int
}

var _ TrieScan[uint64] = (*JoinTrieScan[uint64])(nil)

// NewJoinScan builds a JoinTrieScan over subs. subs must be
// non-empty and share an arity and attribute order.
func NewJoinScan[T column.Ordered](subs []TrieScan[T]) *JoinTrieScan[T] {
	if len(subs) == 0 {
		panic("trie: NewJoinScan requires at least one sub-scan")
	}
	j := &JoinTrieScan[T]{
		subs:   subs,
		layers: make([]*scan.JoinScan[T], subs[0].Arity()),
	}
	j.layers[0] = scan.NewJoinScan(j.subScansAtActiveLayer())
	return j
}

func (j *JoinTrieScan[T]) subScansAtActiveLayer() []column.Scan[T] {
	out := make([]column.Scan[T], len(j.subs))
	for i, s := range j.subs {
		out[i] = s.CurrentScan()
	}
	return out
}

func (j *JoinTrieScan[T]) Arity() int { return len(j.layers) }

func (j *JoinTrieScan[T]) ActiveLayer() int { return j.active }

func (j *JoinTrieScan[T]) CurrentScan() column.Scan[T] { return j.layers[j.active] }

func (j *JoinTrieScan[T]) Down() {
	for _, s := range j.subs {
		s.Down()
	}
	j.active++
	j.layers[j.active] = scan.NewJoinScan(j.subScansAtActiveLayer())
}

func (j *JoinTrieScan[T]) Up() {
	if j.active == 0 {
		return
	}
	j.layers[j.active] = nil
	for _, s := range j.subs {
		s.Up()
	}
	j.active--
}
