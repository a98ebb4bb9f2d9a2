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

// Package csv loads CSV (RFC 4180) files into a trie.Builder, one row
// per trie row, converting each field per a Hint and rolling back a
// row via trie.Builder.Forget when it fails a constraint that can
// only be checked once the whole row is known.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dltrie/dltrie/internal/dict"
	"github.com/dltrie/dltrie/internal/dlerr"
	"github.com/dltrie/dltrie/internal/log"
	"github.com/dltrie/dltrie/trie"
)

// Kind is the conversion target for one CSV column.
type Kind int

const (
	// KindInt parses the field as a decimal unsigned integer.
	KindInt Kind = iota
	// KindString interns the field into a dict.Table and uses the
	// resulting handle as the column's value.
	KindString
)

// ColumnHint describes how to convert one CSV column.
type ColumnHint struct {
	Name   string
	Kind   Kind
	Unique bool // reject a row whose value here duplicates an earlier row's
}

// Hint describes an entire CSV source: one ColumnHint per column, in
// file order, which is also the trie's layer (attribute) order.
type Hint struct {
	SkipRecords int
	Separator   rune // 0 means comma
	Columns     []ColumnHint
}

// Chopper reads CSV records via encoding/csv, skipping Hint.SkipRecords
// leading rows (e.g. a header line).
type Chopper struct {
	Hint *Hint

	r      io.Reader
	cr     *csv.Reader
	lineNr int
}

func (c *Chopper) init(r io.Reader) {
	if c.r != r {
		c.r = r
		c.cr = csv.NewReader(r)
		c.cr.FieldsPerRecord = -1
		c.cr.ReuseRecord = true
		c.cr.LazyQuotes = true
		if c.Hint.Separator != 0 {
			c.cr.Comma = c.Hint.Separator
		}
	}
}

// next returns the next data record, skipping Hint.SkipRecords
// leading records.
func (c *Chopper) next(r io.Reader) ([]string, error) {
	c.init(r)
	for {
		fields, err := c.cr.Read()
		if err != nil {
			return nil, err
		}
		c.lineNr++
		if c.lineNr > c.Hint.SkipRecords {
			return fields, nil
		}
	}
}

// Stats reports the outcome of a Load.
type Stats struct {
	Loaded  int
	Skipped int
}

// Load reads every record from r via ch, converts it according to
// hint, and appends it as a row to b. Source names the input for log
// messages (typically a file path).
//
// A row whose field count does not match hint.Columns, or whose
// KindInt field does not parse, is skipped before ever reaching b — no
// rollback is needed because no partial state was built. A row that
// violates a Unique column constraint is appended optimistically (the
// constraint can only be checked once the row's converted value is in
// hand) and then rolled back via b.Forget if it collides.
func Load(source string, r io.Reader, ch *Chopper, hint *Hint, b *trie.Builder[uint64], strings *dict.Table) (Stats, error) {
	seen := make([]map[uint64]bool, len(hint.Columns))
	for i, c := range hint.Columns {
		if c.Unique {
			seen[i] = make(map[uint64]bool)
		}
	}

	var stats Stats
	line := 0
	for {
		fields, err := ch.next(r)
		if err == io.EOF {
			return stats, nil
		}
		if err != nil {
			return stats, fmt.Errorf("%s: reading record: %w", source, err)
		}
		line++

		row, convErr := convertRow(fields, hint, strings)
		if convErr != nil {
			log.IngestRowSkipped(source, line, fmt.Errorf("%w: %s", dlerr.ErrIngestRow, convErr))
			stats.Skipped++
			continue
		}

		b.Append(row)

		if violated := checkUnique(row, hint, seen); violated >= 0 {
			b.Forget()
			log.IngestRowSkipped(source, line, fmt.Errorf("%w: duplicate value in unique column %q",
				dlerr.ErrIngestRow, hint.Columns[violated].Name))
			stats.Skipped++
			continue
		}

		for i, c := range hint.Columns {
			if c.Unique {
				seen[i][row[i]] = true
			}
		}
		stats.Loaded++
	}
}

func convertRow(fields []string, hint *Hint, strings *dict.Table) ([]uint64, error) {
	if len(fields) != len(hint.Columns) {
		return nil, fmt.Errorf("got %d fields, want %d", len(fields), len(hint.Columns))
	}
	row := make([]uint64, len(fields))
	for i, c := range hint.Columns {
		switch c.Kind {
		case KindInt:
			v, err := strconv.ParseUint(fields[i], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", c.Name, err)
			}
			row[i] = v
		case KindString:
			row[i] = uint64(strings.Intern(fields[i]))
		default:
			return nil, fmt.Errorf("column %q: unknown kind %d", c.Name, c.Kind)
		}
	}
	return row, nil
}

func checkUnique(row []uint64, hint *Hint, seen []map[uint64]bool) int {
	for i, c := range hint.Columns {
		if c.Unique && seen[i][row[i]] {
			return i
		}
	}
	return -1
}
