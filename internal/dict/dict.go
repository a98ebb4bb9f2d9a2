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

// Package dict backs the dictionary-encoded string scalar kind: every
// distinct string a column of that kind ever holds is interned once
// and referenced everywhere else by a Handle, so column and trie code
// never has to compare or hash strings themselves, only uint64s.
package dict

import "github.com/dchest/siphash"

// siphash keys; fixed rather than random so that Handles (and
// therefore trie content) are reproducible across runs of the same
// input, which the fixpoint fingerprinting in internal/fixpoint
// depends on.
const k0, k1 = 0x646c74726965, 0x64696374

// Handle identifies an interned string. It satisfies column.Ordered
// and is otherwise opaque; its only legitimate use is as a trie
// column value and a Table lookup key.
type Handle uint64

// Table is a bidirectional string <-> Handle interner. It is not
// safe for concurrent use; callers needing concurrent ingestion
// shard by source and merge afterward, per the engine's
// single-writer-per-table concurrency model.
type Table struct {
	byHandle []string
	byHash   map[uint64]Handle
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{byHash: make(map[uint64]Handle)}
}

// Intern returns the Handle for s, assigning a new one on first
// occurrence. Equal strings always receive the same Handle within a
// Table's lifetime, even across a siphash collision: a 64-bit
// siphash bucket (the low half of the 128-bit hash) is verified
// against the stored string, and on collision the next key is probed
// as key*31 plus the high half.
func (t *Table) Intern(s string) Handle {
	lo, hi := siphash.Hash128(k0, k1, []byte(s))
	key := lo
	for {
		h, ok := t.byHash[key]
		if !ok {
			break
		}
		if t.byHandle[h] == s {
			return h
		}
		key = key*31 + hi // probe
	}
	h := Handle(len(t.byHandle))
	t.byHandle = append(t.byHandle, s)
	t.byHash[key] = h
	return h
}

// Lookup returns the string behind h. It panics if h was never
// returned by Intern on this Table.
func (t *Table) Lookup(h Handle) string {
	return t.byHandle[h]
}

// Len returns the number of distinct interned strings.
func (t *Table) Len() int { return len(t.byHandle) }
