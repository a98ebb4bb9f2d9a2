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
	"encoding/xml"
	"fmt"
	"io"
)

// XMLParser reads a minimal subset of RDF/XML: flat rdf:Description
// elements identified by an rdf:about attribute, each with child
// property elements whose tag name is the predicate and whose
// content is either an rdf:resource attribute (an IRI object) or the
// element's text (a plain literal object). Nested/striped RDF/XML,
// rdf:parseType, and collections are not supported — this exists to
// ingest the common "one flat description per subject" shape that
// most RDF/XML exporters emit, not to be a general RDF/XML reader.
type XMLParser struct {
	dec    *xml.Decoder
	pend   []Triple
	subj   string
	hasSub bool
}

// NewXMLParser returns an XMLParser reading from r.
func NewXMLParser(r io.Reader) *XMLParser {
	return &XMLParser{dec: xml.NewDecoder(r)}
}

// Next returns the next triple, or io.EOF once the document is
// exhausted.
func (p *XMLParser) Next() (Triple, error) {
	for len(p.pend) == 0 {
		tok, err := p.dec.Token()
		if err != nil {
			return Triple{}, err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if isRDFDescription(el) {
				p.subj, p.hasSub = attrValue(el, "about"), true
				break
			}
			if !p.hasSub {
				break
			}
			pred := el.Name.Local
			if res := attrValue(el, "resource"); res != "" {
				p.pend = append(p.pend, Triple{
					Subject:   Term{Kind: KindIRI, Value: p.subj},
					Predicate: Term{Kind: KindIRI, Value: pred},
					Object:    Term{Kind: KindIRI, Value: res},
				})
				break
			}
			text, err := p.textContent(el)
			if err != nil {
				return Triple{}, fmt.Errorf("reading %s: %w", pred, err)
			}
			p.pend = append(p.pend, Triple{
				Subject:   Term{Kind: KindIRI, Value: p.subj},
				Predicate: Term{Kind: KindIRI, Value: pred},
				Object:    Term{Kind: KindLiteral, Value: text},
			})
		case xml.EndElement:
			if isRDFDescriptionEnd(el) {
				p.hasSub = false
			}
		}
	}
	t := p.pend[0]
	p.pend = p.pend[1:]
	return t, nil
}

func (p *XMLParser) textContent(start xml.StartElement) (string, error) {
	var text string
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return "", err
		}
		switch el := tok.(type) {
		case xml.CharData:
			text += string(el)
		case xml.EndElement:
			if el.Name.Local == start.Name.Local {
				return text, nil
			}
		}
	}
}

func isRDFDescription(el xml.StartElement) bool { return el.Name.Local == "Description" }
func isRDFDescriptionEnd(el xml.EndElement) bool { return el.Name.Local == "Description" }

func attrValue(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
