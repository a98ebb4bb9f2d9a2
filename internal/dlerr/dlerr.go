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

// Package dlerr holds the sentinel errors shared across the engine,
// wrapped with context via fmt.Errorf("...: %w", err) at each call
// site rather than carrying their own struct fields.
package dlerr

import "errors"

// ErrBuilderMisuse is returned by internal/config when a manifest is
// invalid (missing fields, unknown format). The column and trie
// builders do not use it: they neither check append order nor detect
// a second Finalize, and Forget on an empty builder fails with a
// runtime panic.
var ErrBuilderMisuse = errors.New("builder misuse")

// ErrIngestRow wraps a single malformed input row rejected by
// ingest/csv or ingest/rdf; the row is skipped, not fatal to the rest
// of the source.
var ErrIngestRow = errors.New("malformed input row")

// ErrUnsupportedOp is returned by internal/plan when a rule falls
// outside the rule class the planner handles: an empty body, a body
// atom that does not bind every variable of the rule, an anonymous
// term, a variable outside the rule's join order or out of place in
// it, or no positive body atom.
var ErrUnsupportedOp = errors.New("operation unsupported by this scan")

// ErrUnknownTable is returned when a lookup by relation name (the
// table manager's Arity and Fingerprint, cmd/dltrie's dump) finds no
// registered relation by that name.
var ErrUnknownTable = errors.New("unknown table")

// ErrArityMismatch is returned by internal/plan when an atom's term
// count differs from its relation's arity, or a row's length differs
// from the column permutation applied to it. trie.Builder does not
// use it: a row of the wrong length there causes a panic.
var ErrArityMismatch = errors.New("arity mismatch")
