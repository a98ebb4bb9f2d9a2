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

import (
	"testing"

	"github.com/dltrie/dltrie/column"
)

func scans(cols ...[]uint64) []column.Scan[uint64] {
	out := make([]column.Scan[uint64], len(cols))
	for i, c := range cols {
		out[i] = column.NewDense(c).Iter()
	}
	return out
}

// S1: merge-join intersection.
func TestJoinScanIntersection(t *testing.T) {
	a := []uint64{1, 3, 5, 7, 9}
	b := []uint64{1, 5, 6, 7, 9, 10}
	c := []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9}

	j := NewJoinScan(scans(a, b, c))
	var got []uint64
	for {
		v, ok := j.Next()
		if !ok {
			break
		}
		got = append(got, v)
		cur, curOK := j.Current()
		if !curOK || cur != v {
			t.Fatalf("current() mismatch after next(): got (%v,%v) want (%v,true)", cur, curOK, v)
		}
	}
	want := []uint64{1, 5, 7, 9}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestJoinScanSeek(t *testing.T) {
	a := []uint64{1, 3, 5, 7, 9}
	b := []uint64{1, 5, 6, 7, 9, 10}
	c := []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9}

	j := NewJoinScan(scans(a, b, c))
	v, ok := j.Seek(8)
	if !ok || v != 9 {
		t.Fatalf("seek(8) = (%v,%v), want (9,true)", v, ok)
	}
	if cur, ok := j.Current(); !ok || cur != 9 {
		t.Fatalf("current() = (%v,%v), want (9,true)", cur, ok)
	}
	v, ok = j.Seek(10)
	if ok {
		t.Fatalf("seek(10) = (%v,true), want (_,false)", v)
	}
	if _, ok := j.Current(); ok {
		t.Fatalf("current() after exhausting seek should be (_, false)")
	}
}

func TestJoinScanSingleSub(t *testing.T) {
	a := []uint64{2, 4, 6}
	j := NewJoinScan(scans(a))
	var got []uint64
	for {
		v, ok := j.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	want := []uint64{2, 4, 6}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}
