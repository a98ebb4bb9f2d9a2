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

// S4: three runs of stride 1.
func buildS4() []uint64 {
	var in []uint64
	for i := uint64(1); i < 100_000; i++ {
		in = append(in, i)
	}
	for i := uint64(200_000); i < 400_000; i++ {
		in = append(in, i)
	}
	for i := uint64(600_000); i < 800_000; i++ {
		in = append(in, i)
	}
	return in
}

func TestRLERoundTrip(t *testing.T) {
	in := buildS4()
	r := NewRLEFromSorted(in)
	if r.Runs() != 3 {
		t.Fatalf("expected 3 runs, got %d", r.Runs())
	}
	got := drain[uint64](r.Iter())
	if !sliceEqual(got, in) {
		t.Fatalf("round trip mismatch (len got=%d want=%d)", len(got), len(in))
	}
}

func TestRLESeek(t *testing.T) {
	in := buildS4()
	r := NewRLEFromSorted(in)
	s := r.Iter()
	v, ok := s.Seek(650_000)
	if !ok || v != 650_000 {
		t.Fatalf("seek(650000) = (%v,%v), want (650000,true)", v, ok)
	}
}

func TestRLEGet(t *testing.T) {
	in := buildS4()
	r := NewRLEFromSorted(in)
	for _, i := range []int{0, 1, len(in) / 2, len(in) - 1} {
		if got := r.Get(i); got != in[i] {
			t.Fatalf("Get(%d) = %d, want %d", i, got, in[i])
		}
	}
}

func TestRLESingleValueRuns(t *testing.T) {
	in := []uint64{5, 9, 9, 20}
	r := NewRLEFromSorted(in)
	got := drain[uint64](r.Iter())
	if !sliceEqual(got, in) {
		t.Fatalf("round trip mismatch: got %v want %v", got, in)
	}
}

func TestRLESeekContract(t *testing.T) {
	in := []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	for _, target := range []uint64{0, 1, 5, 10, 11} {
		r := NewRLEFromSorted(append([]uint64{}, in...))
		s := r.Iter()
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
			t.Fatalf("seek(%d): current mismatch", target)
		}
	}
}

func TestRLENarrow(t *testing.T) {
	in := []uint64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	r := NewRLEFromSorted(in)
	s := r.Iter()
	s.Narrow(3, 6)
	got := drain[uint64](s)
	want := []uint64{3, 4, 5}
	if !sliceEqual(got, want) {
		t.Fatalf("narrow(3,6): got %v want %v", got, want)
	}
}
