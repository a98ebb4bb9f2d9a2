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

// Package plan lowers a parsed rule into a tree of trie-scan operator
// constructors and runs it against a table manager's current
// relations, producing the materialized rows the rule's head derives
// this round.
//
// Every positive body atom must mention every variable the rule uses
// (the "co-arity" restriction: Build rejects a rule where one atom
// omits a variable another atom binds, wrapping dlerr.ErrUnsupportedOp).
// This keeps every positive sub-trie-scan fed to a single
// trie.JoinTrieScan at the same arity, which is what trie/join.go's
// lockstep Down/Up construction requires; full per-layer variable-
// subset activation (the general leapfrog-triejoin construction
// original_source/nemo-physical's planner implements) is out of scope
// for this layer, documented in DESIGN.md. A negated literal has no
// such restriction, since it is checked by point lookup rather than
// joined.
package plan

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/dltrie/dltrie/internal/dlerr"
	"github.com/dltrie/dltrie/internal/log"
	"github.com/dltrie/dltrie/internal/table"
	"github.com/dltrie/dltrie/lang/rule"
	"github.com/dltrie/dltrie/trie"
)

// posAtom is one positive body literal lowered against the rule's
// global variable order.
type posAtom struct {
	relation string
	// perm[j] is the index, within this atom's own term list, of the
	// variable at global position j. Reordering a materialized
	// relation by perm yields a trie whose column order matches every
	// other positive atom's, so they can share one JoinTrieScan.
	perm []int
}

// negAtom is one negated body literal, checked by point lookup rather
// than joined.
type negAtom struct {
	relation string
	// globalIdx[i] is the global-order position supplying the value
	// for this atom's i'th own term, used to build the lookup key
	// from a candidate result row.
	globalIdx []int
}

// Plan is a lowered rule, ready to Run repeatedly (once per round of
// semi-naive evaluation) against a table manager whose relation
// contents may change between calls.
type Plan struct {
	rule rule.Rule
	// order is the rule's variables in first-seen, body-first order —
	// the shared column order every positive atom's trie is reordered
	// into before joining.
	order    []string
	pos      []posAtom
	neg      []negAtom
	headProj []int // headProj[i] is order's index supplying the i'th head term
}

// Build lowers r into a Plan. It returns an error wrapping
// dlerr.ErrUnsupportedOp if r falls outside the supported rule class
// (see the package doc comment), or dlerr.ErrArityMismatch if an
// atom's declared arity does not match its term count (a parser
// invariant that should never actually fire, checked here defensively
// since Plan is the layer that trusts rule shapes structurally).
func Build(r rule.Rule) (*Plan, error) {
	if len(r.Body) == 0 {
		return nil, fmt.Errorf("%w: rule %s has an empty body", dlerr.ErrUnsupportedOp, r.Head.Relation)
	}
	order := bodyVariableOrder(r)
	pos := make([]posAtom, 0, len(r.Body))
	neg := make([]negAtom, 0)
	for _, lit := range r.Body {
		if lit.Atom.Arity() != len(lit.Atom.Terms) {
			return nil, fmt.Errorf("%w: atom %s", dlerr.ErrArityMismatch, lit.Atom.Relation)
		}
		if lit.Negated {
			idx, err := projectIndices(lit.Atom, order)
			if err != nil {
				return nil, err
			}
			neg = append(neg, negAtom{relation: lit.Atom.Relation, globalIdx: idx})
			continue
		}
		if lit.Atom.Arity() != len(order) {
			return nil, fmt.Errorf("%w: atom %s (arity %d) does not mention every variable of rule %s (%d variables)",
				dlerr.ErrUnsupportedOp, lit.Atom.Relation, lit.Atom.Arity(), r.Head.Relation, len(order))
		}
		perm, err := joinPermutation(lit.Atom, order)
		if err != nil {
			return nil, err
		}
		pos = append(pos, posAtom{relation: lit.Atom.Relation, perm: perm})
	}
	if len(pos) == 0 {
		return nil, fmt.Errorf("%w: rule %s has no positive body atom to join over", dlerr.ErrUnsupportedOp, r.Head.Relation)
	}
	headProj, err := projectIndices(r.Head, order)
	if err != nil {
		return nil, err
	}
	return &Plan{rule: r, order: order, pos: pos, neg: neg, headProj: headProj}, nil
}

// bodyVariableOrder returns every named variable across the rule's
// body, in first-seen left-to-right order, followed by any head
// variable not already mentioned in the body (an existential written
// only in the head is nonsensical for a safe rule, but Build's
// projectIndices call on the head will reject that case with a clear
// error rather than silently dropping it).
func bodyVariableOrder(r rule.Rule) []string {
	seen := make(map[string]bool)
	var out []string
	for _, lit := range r.Body {
		for _, t := range lit.Atom.Terms {
			if t.Anonymous() || seen[t.Name] {
				continue
			}
			seen[t.Name] = true
			out = append(out, t.Name)
		}
	}
	for _, t := range r.Head.Terms {
		if t.Anonymous() || seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		out = append(out, t.Name)
	}
	return out
}

// projectIndices maps each of a's own terms to its position in order.
// An anonymous term, or one naming a variable order does not contain,
// is rejected: anonymous terms are only meaningful where a value is
// never read back (which a head term or a positive join column always
// is), and an unresolvable variable means a falls outside the rule's
// join order entirely.
func projectIndices(a rule.Atom, order []string) ([]int, error) {
	pos := make(map[string]int, len(order))
	for i, v := range order {
		pos[v] = i
	}
	idx := make([]int, len(a.Terms))
	for i, t := range a.Terms {
		if t.Anonymous() {
			return nil, fmt.Errorf("%w: %s has an anonymous term at position %d", dlerr.ErrUnsupportedOp, a.Relation, i)
		}
		gi, ok := pos[t.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s references variable %q outside the rule's join order", dlerr.ErrUnsupportedOp, a.Relation, t.Name)
		}
		idx[i] = gi
	}
	return idx, nil
}

// joinPermutation returns perm such that, for every global position j,
// perm[j] is the index of a's own term bound to order[j]. Since a's
// arity already equals len(order) by the time this is called, perm is
// a full permutation of 0..len(order)-1.
func joinPermutation(a rule.Atom, order []string) ([]int, error) {
	ownPos, err := projectIndices(a, order)
	if err != nil {
		return nil, err
	}
	perm := make([]int, len(order))
	filled := make([]bool, len(order))
	for ownIdx, globalIdx := range ownPos {
		if filled[globalIdx] {
			return nil, fmt.Errorf("%w: %s binds variable %q to more than one of its own columns",
				dlerr.ErrUnsupportedOp, a.Relation, order[globalIdx])
		}
		perm[globalIdx] = ownIdx
		filled[globalIdx] = true
	}
	return perm, nil
}

// Run materializes the rule's head relation for this round: it
// reorders every positive atom's current relation into the rule's
// shared variable order, leapfrog-joins them, discards rows a negated
// atom rules out, projects the survivors onto the head's terms, and
// rebuilds a fresh, deduplicated, sorted trie from the result.
//
// A positive atom with no materialized relation yet (an IDB relation
// on its first round) contributes no rows, so the rule simply
// produces nothing this round rather than erroring.
func (p *Plan) Run(ctx context.Context, tables *table.Manager) (*trie.Trie[uint64], error) {
	runID := uuid.New().String()
	log.PlanRun(p.rule.Head.Relation, runID)

	scans := make([]trie.TrieScan[uint64], 0, len(p.pos))
	for _, ap := range p.pos {
		t, ok := tables.Get(ap.relation)
		if !ok {
			return trie.NewBuilder[uint64](len(p.headProj)).Finalize(), nil
		}
		reordered, err := reorderColumns(t, ap.perm)
		if err != nil {
			return nil, err
		}
		if reordered.NumRows() == 0 {
			return trie.NewBuilder[uint64](len(p.headProj)).Finalize(), nil
		}
		scans = append(scans, trie.NewScan(reordered))
	}

	var joined trie.TrieScan[uint64]
	if len(scans) == 1 {
		joined = scans[0]
	} else {
		joined = trie.NewJoinScan(scans)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows := trie.Rows(trie.NewPruneScan(joined))

	headRows := make([][]uint64, 0, len(rows))
rowLoop:
	for _, row := range rows {
		for _, np := range p.neg {
			if np.holds(tables, row) {
				continue rowLoop
			}
		}
		hr := make([]uint64, len(p.headProj))
		for i, gi := range p.headProj {
			hr[i] = row[gi]
		}
		headRows = append(headRows, hr)
	}

	headRows = sortAndDedupe(headRows)
	b := trie.NewBuilder[uint64](len(p.headProj))
	for _, r := range headRows {
		b.Append(r)
	}
	result := b.Finalize()
	log.RuleFired(p.rule.Head.Relation, result.NumRows())
	return result, nil
}

// holds reports whether n's relation, as currently materialized in
// tables, contains a tuple matching row's values at n's bound
// columns — i.e., whether the negated atom succeeds for this
// candidate row, which rules the row out.
func (n negAtom) holds(tables *table.Manager, row []uint64) bool {
	t, ok := tables.Get(n.relation)
	if !ok {
		return false
	}
	key := make([]uint64, len(n.globalIdx))
	for i, gi := range n.globalIdx {
		key[i] = row[gi]
	}
	return member(t, key)
}

// member reports whether key is a row of t, found by descending t's
// layers with a point Seek at each, the trie analogue of a hash
// lookup.
func member(t *trie.Trie[uint64], key []uint64) bool {
	if len(key) != t.Arity() {
		return false
	}
	s := trie.NewScan(t)
	for i, v := range key {
		val, ok := s.CurrentScan().Seek(v)
		if !ok || val != v {
			return false
		}
		if i < len(key)-1 {
			s.Down()
		}
	}
	return true
}

// reorderColumns materializes a fresh trie whose column j holds t's
// column perm[j] of every row, re-sorted into ascending lexicographic
// order. A trie's layer order is baked into its interval maps, so
// permuting it in place isn't possible without rebuilding those maps
// anyway — this does that rebuild via the same Builder every other
// ingestion path uses.
func reorderColumns(t *trie.Trie[uint64], perm []int) (*trie.Trie[uint64], error) {
	identity := true
	for i, p := range perm {
		if i != p {
			identity = false
			break
		}
	}
	if identity {
		return t, nil
	}
	rows := trie.Rows(trie.NewScan(t))
	out := make([][]uint64, len(rows))
	for i, row := range rows {
		if len(row) != len(perm) {
			return nil, fmt.Errorf("%w: row arity %d does not match permutation length %d", dlerr.ErrArityMismatch, len(row), len(perm))
		}
		nr := make([]uint64, len(perm))
		for j, p := range perm {
			nr[j] = row[p]
		}
		out[i] = nr
	}
	out = sortAndDedupe(out)
	b := trie.NewBuilder[uint64](len(perm))
	for _, r := range out {
		b.Append(r)
	}
	return b.Finalize(), nil
}

func sortAndDedupe(rows [][]uint64) [][]uint64 {
	sort.Slice(rows, func(i, j int) bool { return lexLess(rows[i], rows[j]) })
	out := rows[:0]
	for i, r := range rows {
		if i > 0 && rowEqual(r, out[len(out)-1]) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func lexLess(a, b []uint64) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func rowEqual(a, b []uint64) bool {
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
