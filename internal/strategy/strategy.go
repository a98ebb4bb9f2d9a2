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

// Package strategy picks the next rule to evaluate under semi-naive
// evaluation. It orders rules by an estimated input cardinality —
// smallest first — on the theory that a rule over small relations
// both finishes quickly and is more likely to have already reached a
// fixpoint, letting the round loop skip it on later passes.
package strategy

import (
	"github.com/dltrie/dltrie/heap"
	"github.com/dltrie/dltrie/internal/table"
	"github.com/dltrie/dltrie/lang/rule"
)

// Candidate pairs a rule with its estimated evaluation cost as of the
// most recent EstimateCost call.
type Candidate struct {
	Rule rule.Rule
	Cost int
}

func less(a, b Candidate) bool { return a.Cost < b.Cost }

// EstimateCost approximates the work of evaluating r once, as the sum
// of the row counts of every positive body relation currently
// materialized in tables. A relation not yet materialized (an IDB
// relation on its first round, or an EDB relation not yet loaded)
// contributes zero, matching the "run it, see what it produces"
// treatment semi-naive evaluation gives an empty input. Negated
// literals are existence checks, not iteration sources, and do not
// contribute.
func EstimateCost(r rule.Rule, tables *table.Manager) int {
	cost := 0
	for _, lit := range r.Body {
		if lit.Negated {
			continue
		}
		if tr, ok := tables.Get(lit.Atom.Relation); ok {
			cost += tr.NumRows()
		}
	}
	return cost
}

// Queue is a binary min-heap of Candidates ordered by ascending Cost,
// built directly on top of the generic heap package rather than a
// bespoke container/heap.Interface implementation.
type Queue struct {
	items []Candidate
}

// NewQueue builds a Queue from rules, each re-costed against the
// current state of tables.
func NewQueue(rules []rule.Rule, tables *table.Manager) *Queue {
	q := &Queue{items: make([]Candidate, 0, len(rules))}
	for _, r := range rules {
		heap.PushSlice(&q.items, Candidate{Rule: r, Cost: EstimateCost(r, tables)}, less)
	}
	return q
}

// Len reports the number of candidates remaining in the queue.
func (q *Queue) Len() int { return len(q.items) }

// Pop removes and returns the cheapest remaining candidate. ok is
// false if the queue is empty.
func (q *Queue) Pop() (c Candidate, ok bool) {
	if len(q.items) == 0 {
		return Candidate{}, false
	}
	return heap.PopSlice(&q.items, less), true
}

// Push adds a new candidate, preserving the heap invariant.
func (q *Queue) Push(c Candidate) {
	heap.PushSlice(&q.items, c, less)
}

// Requeue re-estimates every rule still in the queue against tables'
// current state and restores the heap invariant. Call it once a round
// of evaluation has changed table contents, before drawing the next
// candidate — costs computed before the round may no longer reflect
// reality.
func (q *Queue) Requeue(tables *table.Manager) {
	for i := range q.items {
		q.items[i].Cost = EstimateCost(q.items[i].Rule, tables)
	}
	for i := range q.items {
		heap.FixSlice(q.items, i, less)
	}
}
