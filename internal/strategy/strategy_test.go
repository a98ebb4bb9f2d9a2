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

package strategy

import (
	"strings"
	"testing"

	"github.com/dltrie/dltrie/internal/table"
	"github.com/dltrie/dltrie/lang/rule"
	"github.com/dltrie/dltrie/trie"
)

func build(rows [][]uint64) *trie.Trie[uint64] {
	b := trie.NewBuilder[uint64](len(rows[0]))
	for _, r := range rows {
		b.Append(r)
	}
	return b.Finalize()
}

func parse(t *testing.T, src string) []rule.Rule {
	t.Helper()
	rules, err := rule.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return rules
}

func TestQueuePopsCheapestFirst(t *testing.T) {
	rules := parse(t, `
ancestor(x, z) :- parent(x, z).
big(x, z) :- parent(x, z), sibling(x, z).
`)
	tables := table.NewManager()
	tables.Replace("parent", build([][]uint64{{1, 2}, {2, 3}}))
	tables.Replace("sibling", build([][]uint64{{1, 2}, {2, 3}, {3, 4}, {4, 5}}))

	q := NewQueue(rules, tables)
	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}
	first, ok := q.Pop()
	if !ok {
		t.Fatal("Pop on non-empty queue returned !ok")
	}
	if first.Rule.Head.Relation != "ancestor" {
		t.Fatalf("first candidate = %q, want ancestor (cost 2 < cost 6)", first.Rule.Head.Relation)
	}
	second, ok := q.Pop()
	if !ok || second.Rule.Head.Relation != "big" {
		t.Fatalf("second candidate = %+v, %v", second, ok)
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("Pop on empty queue returned ok")
	}
}

func TestEstimateCostIgnoresNegatedLiterals(t *testing.T) {
	rules := parse(t, `orphan(x) :- person(x), ~parent(_, x).`)
	tables := table.NewManager()
	tables.Replace("person", build([][]uint64{{1}, {2}, {3}}))
	tables.Replace("parent", build([][]uint64{{1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}}))

	cost := EstimateCost(rules[0], tables)
	if cost != 3 {
		t.Fatalf("EstimateCost = %d, want 3 (person only, parent is negated)", cost)
	}
}

func TestEstimateCostUnmaterializedRelationIsZero(t *testing.T) {
	rules := parse(t, `reach(x, z) :- edge(x, z).`)
	tables := table.NewManager()
	if cost := EstimateCost(rules[0], tables); cost != 0 {
		t.Fatalf("EstimateCost = %d, want 0 for an unloaded relation", cost)
	}
}

func TestRequeueReordersAfterTableGrowth(t *testing.T) {
	rules := parse(t, `
a(x, z) :- r(x, z).
b(x, z) :- s(x, z).
`)
	tables := table.NewManager()
	tables.Replace("r", build([][]uint64{{1, 2}}))
	tables.Replace("s", build([][]uint64{{1, 2}, {2, 3}, {3, 4}}))

	q := NewQueue(rules, tables)
	tables.Replace("r", build([][]uint64{{1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}}))
	q.Requeue(tables)

	first, ok := q.Pop()
	if !ok || first.Rule.Head.Relation != "b" {
		t.Fatalf("after Requeue, first = %+v, %v, want b (now the cheaper rule)", first, ok)
	}
}
