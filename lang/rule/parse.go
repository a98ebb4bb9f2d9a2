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
	"fmt"
	"io"
	"os"
	"text/scanner"
)

// Parse parses a sequence of rules from r.
func Parse(r io.Reader) ([]Rule, error) {
	var err error
	onError := func(s *scanner.Scanner, msg string) {
		s.ErrorCount++
		if err == nil {
			err = fmt.Errorf("%s:%d:%d: %s", s.Filename, s.Line, s.Column, msg)
		}
	}
	s := new(scanner.Scanner)
	s = s.Init(r)
	if f, ok := r.(*os.File); ok {
		s.Position.Filename = f.Name()
	}
	s.Error = onError

	var rules []Rule
	p := &parser{src: s}
	for !p.atEOF() && s.ErrorCount == 0 {
		loc := s.Pos()
		head := p.atom()
		if !p.ok() || !p.colonDash() {
			break
		}
		body := p.body()
		p.consumeOrError('.')
		if !p.ok() {
			break
		}
		rules = append(rules, Rule{Head: head, Body: body, Location: loc})
	}
	if s.ErrorCount > 0 {
		return nil, fmt.Errorf("%s (and %d other errors)", err, s.ErrorCount-1)
	}
	return rules, nil
}

// parser is an LL(1) recursive-descent parser over text/scanner
// tokens, structured the same way as the teacher's generic rules
// package: a single rune of lookahead, peek/next/consume primitives.
type parser struct {
	src     *scanner.Scanner
	la      rune
	lavalid bool
}

func (p *parser) peek() rune {
	if !p.lavalid {
		p.la = p.src.Scan()
		p.lavalid = true
	}
	return p.la
}

func (p *parser) next() rune {
	r := p.peek()
	p.lavalid = false
	return r
}

func (p *parser) atEOF() bool { return p.peek() == scanner.EOF }

func (p *parser) ok() bool { return p.src.ErrorCount == 0 }

func (p *parser) consume(r rune) bool {
	if p.peek() == r {
		p.lavalid = false
		return true
	}
	return false
}

func (p *parser) consumeOrError(r rune) {
	if !p.consume(r) {
		p.src.Error(p.src, "expected "+scanner.TokenString(r)+", got "+scanner.TokenString(p.peek()))
	}
}

// colonDash consumes the two-rune ":-" token.
func (p *parser) colonDash() bool {
	return p.consume(':') && p.consume('-')
}

func (p *parser) body() []Literal {
	var out []Literal
	first := p.literal()
	if !p.ok() {
		return nil
	}
	out = append(out, first)
	for p.ok() && p.consume(',') {
		out = append(out, p.literal())
	}
	return out
}

func (p *parser) literal() Literal {
	negated := p.consume('~')
	return Literal{Negated: negated, Atom: p.atom()}
}

func (p *parser) atom() Atom {
	if p.peek() != scanner.Ident {
		p.src.Error(p.src, "expected relation name, got "+scanner.TokenString(p.peek()))
		return Atom{}
	}
	pos := p.src.Pos()
	name := p.src.TokenText()
	p.next()
	p.consumeOrError('(')
	var terms []Term
	for p.ok() {
		terms = append(terms, p.term())
		if !p.consume(',') {
			break
		}
	}
	p.consumeOrError(')')
	return Atom{Relation: name, Terms: terms, Location: pos}
}

func (p *parser) term() Term {
	if p.peek() != scanner.Ident {
		p.src.Error(p.src, "expected term, got "+scanner.TokenString(p.peek()))
		return Term{}
	}
	pos := p.src.Pos()
	name := p.src.TokenText()
	p.next()
	return Term{Name: name, Location: pos}
}
