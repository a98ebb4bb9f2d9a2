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

// Package scan implements the column-scan operators (L2b): scans that
// wrap other column scans to realize algebraic steps over them --
// equality against a reference, leapfrog intersection, and an
// identity passthrough.
package scan

import "github.com/dltrie/dltrie/column"

// Ensure every operator scan satisfies the narrower column.Scan
// contract: Pos/Narrow are not meaningful on derived scans.
var (
	_ column.Scan[uint64] = (*EqualScan[uint64])(nil)
	_ column.Scan[uint64] = (*JoinScan[uint64])(nil)
	_ column.Scan[uint64] = (*Passthrough[uint64])(nil)
)
