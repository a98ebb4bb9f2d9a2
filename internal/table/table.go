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

// Package table owns the set of named, arity-tagged relations a
// program operates over — both the EDB facts loaded by ingest/csv and
// ingest/rdf, and the IDB relations a rule's evaluation materializes.
// Every value in every relation is a uint64 (a dict-interned handle,
// or a raw integer from a CSV int column), so a Manager is wholly a
// map of names to *trie.Trie[uint64].
package table

import (
	"fmt"

	"github.com/dltrie/dltrie/internal/dlerr"
	"github.com/dltrie/dltrie/internal/fixpoint"
	"github.com/dltrie/dltrie/trie"
)

// Relation pairs a materialized trie with the fingerprint of its
// content as of the last Replace, so Manager.Changed can answer "did
// this round change anything" by fingerprinting only the candidate
// trie and comparing digests, without diffing tuples.
type Relation struct {
	Trie        *trie.Trie[uint64]
	fingerprint [32]byte
}

// Manager is the table manager: a registry of named relations shared
// by the strategy loop and the plan executor across every round of
// semi-naive evaluation.
type Manager struct {
	relations map[string]*Relation
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{relations: make(map[string]*Relation)}
}

// Get returns the named relation's trie, or false if no relation by
// that name has been registered yet.
func (m *Manager) Get(name string) (*trie.Trie[uint64], bool) {
	r, ok := m.relations[name]
	if !ok {
		return nil, false
	}
	return r.Trie, true
}

// Arity returns the named relation's arity, or an error wrapping
// dlerr.ErrUnknownTable if no such relation exists.
func (m *Manager) Arity(name string) (int, error) {
	r, ok := m.relations[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", dlerr.ErrUnknownTable, name)
	}
	return r.Trie.Arity(), nil
}

// Names returns every relation name currently registered, in no
// particular order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.relations))
	for name := range m.relations {
		names = append(names, name)
	}
	return names
}

// Replace installs t as the current content of the named relation,
// recomputing its fingerprint. It is used both to register a fresh
// EDB relation from ingestion and to install a freshly materialized
// IDB relation at the end of a round.
func (m *Manager) Replace(name string, t *trie.Trie[uint64]) {
	m.relations[name] = &Relation{Trie: t, fingerprint: fixpoint.Fingerprint(t)}
}

// Fingerprint returns the named relation's last-recorded content
// fingerprint, or an error wrapping dlerr.ErrUnknownTable if no such
// relation exists.
func (m *Manager) Fingerprint(name string) ([32]byte, error) {
	r, ok := m.relations[name]
	if !ok {
		return [32]byte{}, fmt.Errorf("%w: %q", dlerr.ErrUnknownTable, name)
	}
	return r.fingerprint, nil
}

// Changed reports whether t's content differs from the fingerprint
// recorded the last time the named relation was Replace'd. A relation
// that has never been registered is reported changed, so the first
// round of evaluation for a brand-new IDB relation always proceeds.
func (m *Manager) Changed(name string, t *trie.Trie[uint64]) bool {
	r, ok := m.relations[name]
	if !ok {
		return true
	}
	return !fixpoint.Unchanged(r.fingerprint, fixpoint.Fingerprint(t))
}
