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

// S2: equality scan.
func TestEqualScan(t *testing.T) {
	ref := column.NewDense([]uint64{0, 4, 7}).Iter()
	val := column.NewDense([]uint64{1, 4, 8}).Iter()
	ref.Seek(4)

	eq := NewEqualScan[uint64](ref, val)
	if _, ok := eq.Current(); ok {
		t.Fatalf("current() before next() should be (_, false)")
	}
	v, ok := eq.Next()
	if !ok || v != 4 {
		t.Fatalf("next() = (%v,%v), want (4,true)", v, ok)
	}
	if _, ok := eq.Next(); ok {
		t.Fatalf("second next() should be (_, false)")
	}
}

func TestEqualScanNoMatch(t *testing.T) {
	ref := column.NewDense([]uint64{0, 4, 7}).Iter()
	val := column.NewDense([]uint64{1, 4, 8}).Iter()
	ref.Seek(7)

	eq := NewEqualScan[uint64](ref, val)
	if _, ok := eq.Next(); ok {
		t.Fatalf("next() should be (_, false): 8 != 7")
	}
	if _, ok := eq.Current(); ok {
		t.Fatalf("current() should be (_, false)")
	}
}

func TestEqualScanSeekBeyondReference(t *testing.T) {
	ref := column.NewDense([]uint64{0, 4, 7}).Iter()
	val := column.NewDense([]uint64{1, 4, 8}).Iter()
	ref.Seek(4)

	eq := NewEqualScan[uint64](ref, val)
	if _, ok := eq.Seek(5); ok {
		t.Fatalf("seek(5) with reference=4 should be (_, false)")
	}
}
