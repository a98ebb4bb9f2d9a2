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

// Package fixpoint content-fingerprints a materialized trie so the
// table manager (internal/table, Manager.Changed) can tell "this
// round produced no new rows" apart from "this round produced the
// same row count by coincidence" without diffing tuples directly.
package fixpoint

import (
	"bytes"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/dltrie/dltrie/column"
	"github.com/dltrie/dltrie/trie"
)

// Fingerprint hashes every layer's decoded values and every interval
// map's child-range boundaries, in order, into a single content
// digest. trie.Builder's prefix-sharing construction is deterministic
// given a sorted row stream, so two tries built from the same set of
// rows always produce identical layers and interval maps and
// therefore the same fingerprint; any changed, added, or removed row
// changes it.
func Fingerprint[T column.Ordered](t *trie.Trie[T]) [32]byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "arity:%d;", t.Arity())
	for l := 0; l < t.Arity(); l++ {
		layer := t.Layer(l)
		fmt.Fprintf(&buf, "layer%d:%d:", l, layer.Len())
		for i := 0; i < layer.Len(); i++ {
			fmt.Fprintf(&buf, "%v,", layer.Get(i))
		}
		buf.WriteByte(';')
		if l < t.Arity()-1 {
			fmt.Fprintf(&buf, "map%d:", l)
			for i := 0; i < layer.Len(); i++ {
				_, hi := t.ChildRange(l, i)
				fmt.Fprintf(&buf, "%d,", hi)
			}
			buf.WriteByte(';')
		}
	}
	return blake2b.Sum256(buf.Bytes())
}

// Unchanged reports whether two fingerprints are equal; it exists
// only to make call sites read as an assertion about trie content
// rather than a raw byte comparison.
func Unchanged(a, b [32]byte) bool { return a == b }
