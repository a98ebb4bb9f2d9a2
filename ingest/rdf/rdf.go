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

package rdf

import (
	"errors"
	"fmt"
	"io"

	"github.com/dltrie/dltrie/internal/dict"
	"github.com/dltrie/dltrie/internal/dlerr"
	"github.com/dltrie/dltrie/internal/log"
	"github.com/dltrie/dltrie/trie"
)

// Format selects which of the three RDF serializations Load parses.
type Format int

const (
	FormatNTriples Format = iota
	FormatTurtle           // the prefix-aware, line-oriented subset this package supports
	FormatRDFXML           // the flat rdf:Description subset this package supports
)

type tripleSource interface {
	Next() (Triple, error)
}

// Stats reports the outcome of a Load.
type Stats struct {
	Loaded  int
	Skipped int
}

// Load reads every triple from r in the given format, interns its
// three terms into terms, and appends the resulting (subject,
// predicate, object) handle row to b.
//
// A triple that fails to parse is skipped before ever reaching b, as
// in ingest/csv. A triple whose predicate is marked functional
// (functional[predicateIRI] == true) is appended optimistically —
// only once its object handle is known can it be compared against an
// already-recorded object for the same subject+predicate — and rolled
// back via b.Forget if it would give one (subject, predicate) more
// than one object.
//
// Rows must arrive in ascending (subject, predicate, object) handle
// order, consistent with trie.Builder's contract; callers ingesting
// from an unordered source should buffer, sort, and dedupe triples
// before calling Load.
func Load(source string, r io.Reader, format Format, b *trie.Builder[uint64], terms *dict.Table, functional map[string]bool) (Stats, error) {
	var src tripleSource
	switch format {
	case FormatNTriples, FormatTurtle:
		src = NewParser(r)
	case FormatRDFXML:
		src = NewXMLParser(r)
	default:
		return Stats{}, fmt.Errorf("rdf: unknown format %d", format)
	}

	seenObject := make(map[[2]uint64]uint64) // (subject, predicate) -> object, for functional predicates

	var stats Stats
	seq := 0
	for {
		t, err := src.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		var perr *ParseError
		if errors.As(err, &perr) {
			seq++
			log.IngestRowSkipped(source, perr.Line, fmt.Errorf("%w: %s", dlerr.ErrIngestRow, perr))
			stats.Skipped++
			continue
		}
		if err != nil {
			return stats, fmt.Errorf("%s: %w", source, err)
		}
		seq++

		vals := []uint64{
			uint64(terms.Intern(t.Subject.Canonical())),
			uint64(terms.Intern(t.Predicate.Canonical())),
			uint64(terms.Intern(t.Object.Canonical())),
		}
		b.Append(vals)

		if functional[t.Predicate.Value] {
			key := [2]uint64{vals[0], vals[1]}
			if prev, ok := seenObject[key]; ok && prev != vals[2] {
				b.Forget()
				log.IngestRowSkipped(source, seq, fmt.Errorf("%w: functional predicate %q has more than one object for this subject",
					dlerr.ErrIngestRow, t.Predicate.Value))
				stats.Skipped++
				continue
			}
			seenObject[key] = vals[2]
		}
		stats.Loaded++
	}
}
