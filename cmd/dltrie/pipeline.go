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

package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dltrie/dltrie/ingest/csv"
	"github.com/dltrie/dltrie/ingest/rdf"
	"github.com/dltrie/dltrie/internal/config"
	"github.com/dltrie/dltrie/internal/dict"
	"github.com/dltrie/dltrie/internal/dlerr"
	"github.com/dltrie/dltrie/internal/plan"
	"github.com/dltrie/dltrie/internal/strategy"
	"github.com/dltrie/dltrie/internal/table"
	"github.com/dltrie/dltrie/lang/rule"
	"github.com/dltrie/dltrie/trie"
)

func readConfig(path string) *config.Config {
	f, err := os.Open(path)
	if err != nil {
		exitf("opening config: %s\n", err)
	}
	defer f.Close()
	cfg, err := config.Load(f)
	if err != nil {
		exitf("loading config: %s\n", err)
	}
	return cfg
}

// loadSources ingests every configured source into tables, one
// relation per source. The engine keeps no durable on-disk form of a
// relation, so this always runs from the original files, not from a
// prior load's output.
func loadSources(cfg *config.Config, terms *dict.Table, tables *table.Manager) error {
	for _, src := range cfg.Sources {
		if err := loadOneSource(src, terms, tables); err != nil {
			return err
		}
	}
	return nil
}

func loadOneSource(src config.Source, terms *dict.Table, tables *table.Manager) error {
	f, err := os.Open(src.Path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src.Path, err)
	}
	defer f.Close()

	if src.Format == config.FormatCSV {
		hint := src.CSVHint()
		b := trie.NewBuilder[uint64](len(hint.Columns))
		stats, err := csv.Load(src.Path, f, &csv.Chopper{Hint: hint}, hint, b, terms)
		if err != nil {
			return fmt.Errorf("loading %s: %w", src.Path, err)
		}
		fmt.Fprintf(os.Stderr, "%s: loaded %d rows, skipped %d\n", src.Relation, stats.Loaded, stats.Skipped)
		tables.Replace(src.Relation, b.Finalize())
		return nil
	}

	b := trie.NewBuilder[uint64](3)
	stats, err := rdf.Load(src.Path, f, src.Format.RDFFormat(), b, terms, src.FunctionalSet())
	if err != nil {
		return fmt.Errorf("loading %s: %w", src.Path, err)
	}
	fmt.Fprintf(os.Stderr, "%s: loaded %d rows, skipped %d\n", src.Relation, stats.Loaded, stats.Skipped)
	tables.Replace(src.Relation, b.Finalize())
	return nil
}

// runProgram parses cfg.Rules and evaluates it against tables to a
// fixpoint: every pass, the strategy queue orders the remaining rules
// by estimated cost, each is run once through internal/plan, and its
// derived rows are unioned into its head relation. A pass that
// changes no relation ends the loop.
func runProgram(cfg *config.Config, tables *table.Manager) error {
	f, err := os.Open(cfg.Rules)
	if err != nil {
		return fmt.Errorf("opening rules: %w", err)
	}
	defer f.Close()
	rules, err := rule.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing rules: %w", err)
	}

	plans := make(map[string]*plan.Plan, len(rules))
	for _, r := range rules {
		p, err := plan.Build(r)
		if err != nil {
			return fmt.Errorf("building plan for %s: %w", r.Head.Relation, err)
		}
		plans[r.String()] = p
	}

	ctx := context.Background()
	for {
		queue := strategy.NewQueue(rules, tables)
		changed := false
		for {
			cand, ok := queue.Pop()
			if !ok {
				break
			}
			p := plans[cand.Rule.String()]
			derived, err := p.Run(ctx, tables)
			if err != nil {
				return fmt.Errorf("running %s: %w", cand.Rule.Head.Relation, err)
			}
			head := cand.Rule.Head.Relation
			existing, _ := tables.Get(head)
			merged := unionTrie(existing, derived)
			if tables.Changed(head, merged) {
				tables.Replace(head, merged)
				changed = true
			}
		}
		if !changed {
			return nil
		}
	}
}

// unionTrie merges the rows of existing (which may be nil, for an IDB
// relation's first round) and derived into a fresh, sorted,
// deduplicated trie of the same arity.
func unionTrie(existing, derived *trie.Trie[uint64]) *trie.Trie[uint64] {
	arity := derived.Arity()
	var rows [][]uint64
	if existing != nil {
		rows = append(rows, trie.Rows(trie.NewScan(existing))...)
	}
	rows = append(rows, trie.Rows(trie.NewScan(derived))...)
	sort.Slice(rows, func(i, j int) bool { return lexLess(rows[i], rows[j]) })

	b := trie.NewBuilder[uint64](arity)
	var last []uint64
	for _, r := range rows {
		if last != nil && rowEqual(r, last) {
			continue
		}
		b.Append(r)
		last = r
	}
	return b.Finalize()
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

func reportSizes(w *os.File, tables *table.Manager) {
	names := tables.Names()
	sort.Strings(names)
	for _, name := range names {
		t, _ := tables.Get(name)
		fmt.Fprintf(w, "%s: %d rows\n", name, t.NumRows())
	}
}

// dumpRelation prints every row of the named relation, one per line,
// as comma-separated dict/scalar handles. The engine keeps no
// reverse-dictionary pretty-printer; a handle is exactly the opaque
// value the trie stores; resolving a string handle back to text is a
// dict.Table.Lookup call left to a caller that still has the Table
// this run built, which the CLI's single-shot process does not retain
// past this point.
func dumpRelation(w *os.File, tables *table.Manager, relation string) error {
	t, ok := tables.Get(relation)
	if !ok {
		return fmt.Errorf("%w: %q", dlerr.ErrUnknownTable, relation)
	}
	for _, row := range trie.Rows(trie.NewScan(t)) {
		fields := make([]string, len(row))
		for i, v := range row {
			fields[i] = strconv.FormatUint(v, 10)
		}
		fmt.Fprintln(w, strings.Join(fields, ","))
	}
	return nil
}
