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

package scan

import "github.com/dltrie/dltrie/column"

// Passthrough delegates every call to an inner scan unchanged. Nothing
// in this module constructs one: internal/plan reconciles variable
// order by rebuilding each relation's trie in the shared order rather
// than by selecting physical scans through a Passthrough.
type Passthrough[T column.Ordered] struct {
	Inner column.Scan[T]
}

func (p *Passthrough[T]) Next() (T, bool)         { return p.Inner.Next() }
func (p *Passthrough[T]) Seek(target T) (T, bool) { return p.Inner.Seek(target) }
func (p *Passthrough[T]) Current() (T, bool)      { return p.Inner.Current() }
func (p *Passthrough[T]) Reset()                  { p.Inner.Reset() }
