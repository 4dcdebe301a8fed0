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

package scene

import "seehuhn.de/go/pdf/graphics"

// Stroke describes how the outline of a path is painted.
type Stroke struct {
	Paint Paint

	// Width is the line width in the coordinate system of the shape.  A
	// width of zero paints nothing.
	Width float64

	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64 // at least 1

	// Dash alternates between lengths of painted and unpainted line.  An
	// empty slice means a solid line.
	Dash      []float64
	DashPhase float64
}

// DefaultStroke returns a one unit wide black solid stroke with butt caps
// and miter joins.
func DefaultStroke() *Stroke {
	return &Stroke{
		Paint:      RGBA(0, 0, 0, 1),
		Width:      1,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: 10,
	}
}
