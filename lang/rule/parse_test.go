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

package rule

import (
	"strings"
	"testing"
)

func TestParseBasicRules(t *testing.T) {
	src := `
ancestor(x, z) :- parent(x, y), parent(y, z).
reachable(x, y) :- edge(x, y).
reachable(x, z) :- edge(x, y), reachable(y, z).
orphan(x) :- person(x), ~parent(_, x).
`
	rules, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rules) != 4 {
		t.Fatalf("got %d rules, want 4", len(rules))
	}

	r0 := rules[0]
	if r0.Head.Relation != "ancestor" || r0.Head.Arity() != 2 {
		t.Fatalf("rule 0 head = %v", r0.Head)
	}
	if len(r0.Body) != 2 || r0.Body[0].Atom.Relation != "parent" || r0.Body[1].Atom.Relation != "parent" {
		t.Fatalf("rule 0 body = %v", r0.Body)
	}

	last := rules[3]
	if len(last.Body) != 2 {
		t.Fatalf("orphan rule body length = %d, want 2", len(last.Body))
	}
	neg := last.Body[1]
	if !neg.Negated {
		t.Fatalf("expected second literal of orphan rule to be negated")
	}
	if !neg.Atom.Terms[0].Anonymous() {
		t.Fatalf("expected first term of ~parent(_, x) to be anonymous")
	}
	if neg.Atom.Terms[1].Name != "x" {
		t.Fatalf("expected second term of ~parent(_, x) to be x")
	}

	vars := r0.Variables()
	want := []string{"x", "z", "y"}
	if len(vars) != len(want) {
		t.Fatalf("Variables() = %v, want %v", vars, want)
	}
	for i := range want {
		if vars[i] != want[i] {
			t.Fatalf("Variables() = %v, want %v", vars, want)
		}
	}
}

func TestParseRoundTripString(t *testing.T) {
	src := "reachable(x, z) :- edge(x, y), reachable(y, z).\n"
	rules, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := rules[0].String() + "\n"; got != src {
		t.Fatalf("String() round trip = %q, want %q", got, src)
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse(strings.NewReader("bad(x) :- \n"))
	if err == nil {
		t.Fatalf("expected a parse error for a truncated rule body")
	}
}
