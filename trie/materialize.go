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

// Rows drains ts depth-first and returns every row it produces, in
// lexicographic order. It is the reference drain used by Materialize
// and directly useful in tests and for small relations.
func Rows[T column.Ordered](ts TrieScan[T]) [][]T {
	arity := ts.Arity()
	row := make([]T, arity)
	var out [][]T

	for {
		active := ts.ActiveLayer()
		v, ok := ts.CurrentScan().Next()
		if !ok {
			if active == 0 {
				return out
			}
			ts.Up()
			continue
		}
		row[active] = v
		if active == arity-1 {
			out = append(out, append([]T(nil), row...))
			continue
		}
		ts.Down()
	}
}

// Materialize drains ts depth-first and builds a new, storage-backed
// Trie from the rows it produces. Use it to realize the result of a
// JoinTrieScan or PruneTrieScan, or to compact a trie built
// incrementally.
func Materialize[T column.Ordered](ts TrieScan[T]) *Trie[T] {
	arity := ts.Arity()
	b := NewBuilder[T](arity)
	row := make([]T, arity)

	for {
		active := ts.ActiveLayer()
		v, ok := ts.CurrentScan().Next()
		if !ok {
			if active == 0 {
				return b.Finalize()
			}
			ts.Up()
			continue
		}
		row[active] = v
		if active == arity-1 {
			b.Append(row)
			continue
		}
		ts.Down()
	}
}
