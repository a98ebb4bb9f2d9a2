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

func TestAdaptiveBuilderChoosesRLE(t *testing.T) {
	var b AdaptiveBuilder[uint64]
	for i := uint64(0); i < 1000; i++ {
		b.Append(i)
	}
	s := b.Finalize()
	if _, ok := s.(*RLE[uint64]); !ok {
		t.Fatalf("expected long run to flush to RLE, got %T", s)
	}
}

func TestAdaptiveBuilderChoosesDense(t *testing.T) {
	var b AdaptiveBuilder[uint64]
	vals := []uint64{1, 2, 4, 5, 9, 20, 21, 40, 41, 90}
	for _, v := range vals {
		b.Append(v)
	}
	s := b.Finalize()
	if _, ok := s.(*Dense[uint64]); !ok {
		t.Fatalf("expected scattered deltas to flush to dense, got %T", s)
	}
}

func TestAdaptiveBuilderForget(t *testing.T) {
	var b AdaptiveBuilder[uint64]
	b.Append(1)
	b.Append(2)
	b.Append(99) // bad value, roll back
	b.Forget()
	b.Append(3)
	s := b.Finalize()
	got := drain[uint64](s.Iter())
	want := []uint64{1, 2, 3}
	if !sliceEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
