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

import "testing"

func drain[T Ordered](s Scan[T]) []T {
	var out []T
	for {
		v, ok := s.Next()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

func sliceEqual[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// S1-adjacent: round-trip property for dense storage.
func TestDenseRoundTrip(t *testing.T) {
	in := []uint64{1, 3, 5, 7, 9, 100, 1000}
	d := NewDense(append([]uint64{}, in...))
	got := drain[uint64](d.Iter())
	if !sliceEqual(got, in) {
		t.Fatalf("round trip mismatch: got %v want %v", got, in)
	}
}

func TestDenseSeekContract(t *testing.T) {
	in := []uint64{1, 3, 5, 7, 9}
	for _, target := range []uint64{0, 1, 2, 5, 9, 10} {
		d := NewDense(append([]uint64{}, in...))
		s := d.Iter()
		v, ok := s.Seek(target)
		var want uint64
		wantOK := false
		for _, x := range in {
			if x >= target {
				want, wantOK = x, true
				break
			}
		}
		if ok != wantOK || (ok && v != want) {
			t.Fatalf("seek(%d): got (%v,%v) want (%v,%v)", target, v, ok, want, wantOK)
		}
		cur, curOK := s.Current()
		if cur != v || curOK != ok {
			t.Fatalf("seek(%d): current() = (%v,%v), want (%v,%v)", target, cur, curOK, v, ok)
		}
	}
}

func TestDenseSeekMonotone(t *testing.T) {
	in := make([]uint64, 0, 1_000_000+1_000_000)
	for i := uint64(0); i < 1_000_000; i++ {
		in = append(in, i)
	}
	for i := uint64(2_000_000); i < 3_000_000; i++ {
		in = append(in, i)
	}
	d := NewDense(in)
	s := d.Iter()

	targets := []uint64{0, 500_000, 999_999, 2_500_000, 2_999_999}
	var last uint64
	for i, target := range targets {
		v, ok := s.Seek(target)
		if !ok {
			t.Fatalf("seek(%d) unexpectedly exhausted", target)
		}
		if i > 0 && v < last {
			t.Fatalf("seek moved backward: %d -> %d", last, v)
		}
		last = v
	}
	// S3: seek(2_500_000) must land exactly on 2_500_000
	d2 := NewDense(append([]uint64{}, in...))
	s2 := d2.Iter()
	v, ok := s2.Seek(2_500_000)
	if !ok || v != 2_500_000 {
		t.Fatalf("seek(2_500_000) = (%v, %v), want (2500000, true)", v, ok)
	}
}

func TestDenseNarrow(t *testing.T) {
	in := []uint64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	d := NewDense(in)
	s := d.Iter()
	s.Narrow(3, 6)
	got := drain[uint64](s)
	want := []uint64{3, 4, 5}
	if !sliceEqual(got, want) {
		t.Fatalf("narrow(3,6): got %v want %v", got, want)
	}
}

func TestDenseReset(t *testing.T) {
	d := NewDense([]uint64{1, 2, 3})
	s := d.Iter()
	s.Next()
	s.Next()
	s.Reset()
	if _, ok := s.Current(); ok {
		t.Fatalf("current() after reset should be (_, false)")
	}
	got := drain[uint64](s)
	want := []uint64{1, 2, 3}
	if !sliceEqual(got, want) {
		t.Fatalf("after reset: got %v want %v", got, want)
	}
}
