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

import "testing"

func rowsEqual[T comparable](a, b [][]T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

// Property 5: rows come out of a materialized trie in lexicographic
// order, and the trie's column storages share every common prefix.
func TestBuilderLexOrderAndSharing(t *testing.T) {
	rows := [][]uint64{
		{1, 1, 1},
		{1, 1, 2},
		{1, 2, 1},
		{2, 1, 1},
	}
	b := NewBuilder[uint64](3)
	for _, r := range rows {
		b.Append(r)
	}
	tr := b.Finalize()

	if tr.Layer(0).Len() != 2 {
		t.Fatalf("layer 0 length = %d, want 2 (shared prefix 1,2)", tr.Layer(0).Len())
	}
	if tr.Layer(1).Len() != 3 {
		t.Fatalf("layer 1 length = %d, want 3", tr.Layer(1).Len())
	}
	if tr.Layer(2).Len() != 4 {
		t.Fatalf("layer 2 length = %d, want 4", tr.Layer(2).Len())
	}

	got := Rows[uint64](NewScan(tr))
	if !rowsEqual(got, rows) {
		t.Fatalf("got %v want %v", got, rows)
	}
}

func TestBuilderForget(t *testing.T) {
	b := NewBuilder[uint64](2)
	b.Append([]uint64{1, 1})
	b.Append([]uint64{1, 2})
	b.Append([]uint64{2, 9}) // pretend this row turns out malformed
	b.Forget()

	tr := b.Finalize()
	got := Rows[uint64](NewScan(tr))
	want := [][]uint64{{1, 1}, {1, 2}}
	if !rowsEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestBuilderForgetFirstRow(t *testing.T) {
	b := NewBuilder[uint64](2)
	b.Append([]uint64{1, 1}) // turns out malformed, forgotten immediately
	b.Forget()
	b.Append([]uint64{3, 4})

	tr := b.Finalize()
	got := Rows[uint64](NewScan(tr))
	want := [][]uint64{{3, 4}}
	if !rowsEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestBuilderSingleLayer(t *testing.T) {
	b := NewBuilder[uint64](1)
	for _, v := range []uint64{1, 2, 3} {
		b.Append([]uint64{v})
	}
	tr := b.Finalize()
	if tr.Arity() != 1 {
		t.Fatalf("arity = %d, want 1", tr.Arity())
	}
	got := Rows[uint64](NewScan(tr))
	want := [][]uint64{{1}, {2}, {3}}
	if !rowsEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
