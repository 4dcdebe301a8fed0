// seehuhn.de/go/docraster - render vector documents to PNG images
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package render

import (
	"math"

	"seehuhn.de/go/geom/matrix"
)

// singular reports whether m cannot be inverted.  This must be checked
// before calling [matrix.Matrix.Inv], which panics on singular matrices.
func singular(m matrix.Matrix) bool {
	d := m[0]*m[3] - m[1]*m[2]
	return d == 0 || math.IsNaN(d) || math.IsInf(d, 0)
}

// lengthScale returns the factor by which m scales lengths, averaged over
// all directions.
func lengthScale(m matrix.Matrix) float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}
