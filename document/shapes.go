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

package document

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// kappa is the control point distance for approximating a quarter circle
// of radius 1 by a cubic Bézier curve.
const kappa = 0.5522847498

// RectPath returns a closed path for the rectangle with top-left corner
// (x, y).  The corners are rounded with radius r, which is reduced to half
// the shorter side if necessary.
func RectPath(x, y, w, h, r float64) *path.Data {
	p := &path.Data{}
	r = min(r, w/2, h/2)
	if r <= 0 {
		return p.
			MoveTo(vec.Vec2{X: x, Y: y}).
			LineTo(vec.Vec2{X: x + w, Y: y}).
			LineTo(vec.Vec2{X: x + w, Y: y + h}).
			LineTo(vec.Vec2{X: x, Y: y + h}).
			Close()
	}

	k := r * kappa
	x1, y1 := x+w, y+h
	return p.
		MoveTo(vec.Vec2{X: x + r, Y: y}).
		LineTo(vec.Vec2{X: x1 - r, Y: y}).
		CubeTo(vec.Vec2{X: x1 - r + k, Y: y}, vec.Vec2{X: x1, Y: y + r - k}, vec.Vec2{X: x1, Y: y + r}).
		LineTo(vec.Vec2{X: x1, Y: y1 - r}).
		CubeTo(vec.Vec2{X: x1, Y: y1 - r + k}, vec.Vec2{X: x1 - r + k, Y: y1}, vec.Vec2{X: x1 - r, Y: y1}).
		LineTo(vec.Vec2{X: x + r, Y: y1}).
		CubeTo(vec.Vec2{X: x + r - k, Y: y1}, vec.Vec2{X: x, Y: y1 - r + k}, vec.Vec2{X: x, Y: y1 - r}).
		LineTo(vec.Vec2{X: x, Y: y + r}).
		CubeTo(vec.Vec2{X: x, Y: y + r - k}, vec.Vec2{X: x + r - k, Y: y}, vec.Vec2{X: x + r, Y: y}).
		Close()
}

// EllipsePath returns a closed path for the axis-aligned ellipse with
// center (cx, cy) and radii rx and ry.
func EllipsePath(cx, cy, rx, ry float64) *path.Data {
	kx, ky := rx*kappa, ry*kappa
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: cx + rx, Y: cy}).
		CubeTo(vec.Vec2{X: cx + rx, Y: cy + ky}, vec.Vec2{X: cx + kx, Y: cy + ry}, vec.Vec2{X: cx, Y: cy + ry}).
		CubeTo(vec.Vec2{X: cx - kx, Y: cy + ry}, vec.Vec2{X: cx - rx, Y: cy + ky}, vec.Vec2{X: cx - rx, Y: cy}).
		CubeTo(vec.Vec2{X: cx - rx, Y: cy - ky}, vec.Vec2{X: cx - kx, Y: cy - ry}, vec.Vec2{X: cx, Y: cy - ry}).
		CubeTo(vec.Vec2{X: cx + kx, Y: cy - ry}, vec.Vec2{X: cx + rx, Y: cy - ky}, vec.Vec2{X: cx + rx, Y: cy}).
		Close()
}
