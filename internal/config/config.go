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

// Package config describes the YAML manifest cmd/dltrie reads: which
// sources to load into which relations, and where the rule file is.
package config

import (
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/dltrie/dltrie/ingest/csv"
	"github.com/dltrie/dltrie/ingest/rdf"
	"github.com/dltrie/dltrie/internal/dlerr"
)

// Format names one of the source formats a Source can declare.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatNTriples Format = "ntriples"
	FormatTurtle   Format = "turtle"
	FormatRDFXML   Format = "rdfxml"
)

// ColumnSpec describes one column of a CSV source.
type ColumnSpec struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"` // "int" or "string"
	Unique bool   `json:"unique,omitempty"`
}

// CSVOptions holds the fields of csv.Hint a manifest can configure.
type CSVOptions struct {
	SkipRecords int          `json:"skipRecords,omitempty"`
	Separator   string       `json:"separator,omitempty"` // a single character, e.g. ";" or "\t"
	Columns     []ColumnSpec `json:"columns"`
}

// Source is one external data file to load into a named relation.
type Source struct {
	Relation   string      `json:"relation"`
	Format     Format      `json:"format"`
	Path       string      `json:"path"`
	CSV        *CSVOptions `json:"csv,omitempty"`
	Functional []string    `json:"functionalPredicates,omitempty"` // RDF only: IRIs of functional predicates
}

// Config is the top-level manifest: where the rule program lives, and
// which sources feed which EDB relations.
type Config struct {
	Rules   string   `json:"rules"`
	Sources []Source `json:"sources"`
}

// Load parses a YAML (or, since YAML is a superset, JSON) manifest.
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Rules == "" {
		return fmt.Errorf("%w: config has no rules file", dlerr.ErrBuilderMisuse)
	}
	seen := make(map[string]bool, len(c.Sources))
	for _, s := range c.Sources {
		if s.Relation == "" {
			return fmt.Errorf("%w: source with empty relation name", dlerr.ErrBuilderMisuse)
		}
		if seen[s.Relation] {
			return fmt.Errorf("%w: relation %q loaded from more than one source", dlerr.ErrBuilderMisuse, s.Relation)
		}
		seen[s.Relation] = true
		switch s.Format {
		case FormatCSV:
			if s.CSV == nil {
				return fmt.Errorf("%w: source %q is csv but declares no csv options", dlerr.ErrBuilderMisuse, s.Relation)
			}
		case FormatNTriples, FormatTurtle, FormatRDFXML:
		default:
			return fmt.Errorf("%w: source %q has unknown format %q", dlerr.ErrBuilderMisuse, s.Relation, s.Format)
		}
	}
	return nil
}

// CSVHint translates a Source's CSV options into ingest/csv's Hint
// type. It panics if s.CSV is nil (a source with no csv options);
// cmd/dltrie's loader calls it only for FormatCSV sources.
func (s Source) CSVHint() *csv.Hint {
	if s.CSV == nil {
		panic("config: CSVHint called on a source with no csv options")
	}
	h := &csv.Hint{SkipRecords: s.CSV.SkipRecords, Columns: make([]csv.ColumnHint, len(s.CSV.Columns))}
	if s.CSV.Separator != "" {
		h.Separator = rune(s.CSV.Separator[0])
	}
	for i, c := range s.CSV.Columns {
		kind := csv.KindInt
		if c.Kind == "string" {
			kind = csv.KindString
		}
		h.Columns[i] = csv.ColumnHint{Name: c.Name, Kind: kind, Unique: c.Unique}
	}
	return h
}

// RDFFormat translates Format into ingest/rdf's Format enum.
func (f Format) RDFFormat() rdf.Format {
	switch f {
	case FormatTurtle:
		return rdf.FormatTurtle
	case FormatRDFXML:
		return rdf.FormatRDFXML
	default:
		return rdf.FormatNTriples
	}
}

// FunctionalSet returns s.Functional as a membership set, the shape
// ingest/rdf.Load expects.
func (s Source) FunctionalSet() map[string]bool {
	if len(s.Functional) == 0 {
		return nil
	}
	set := make(map[string]bool, len(s.Functional))
	for _, p := range s.Functional {
		set[p] = true
	}
	return set
}
