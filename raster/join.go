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

package raster

import (
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// addCap appends the cap at the end point p of a line.  The unit vector t
// points away from the line.
func (r *Rasterizer) addCap(p, t vec.Vec2, d float64) {
	n := vec.Vec2{X: -t.Y, Y: t.X}

	switch r.Cap {
	case graphics.LineCapSquare:
		e := p.Add(t.Mul(d))
		r.outline = append(r.outline, e.Add(n.Mul(d)), e.Sub(n.Mul(d)))
	case graphics.LineCapRound:
		// half circle from +n through t to -n
		r.addArc(p, d, n, -math.Pi, true)
	}
	// Butt caps connect the two offset lines directly.
}

// addJoin appends the join on the outer side of the corner p, where the
// direction changes from t1 to t2.
func (r *Rasterizer) addJoin(p, t1, t2 vec.Vec2, d float64, plus bool) {
	c := t1.Dot(t2)
	s := cross(t1, t2)
	if math.Abs(s) < collinearityThreshold {
		return
	}
	if c < cuspCosineThreshold {
		// The path turns back on itself.  A join would be unbounded, so
		// both pieces get a cap instead.
		r.addCap(p, t1, d)
		r.addCap(p, t2.Mul(-1), d)
		return
	}

	n1 := vec.Vec2{X: -t1.Y, Y: t1.X}
	n2 := vec.Vec2{X: -t2.Y, Y: t2.X}

	switch r.Join {
	case graphics.LineJoinMiter:
		// The miter length relative to the line width is 1/cos(θ/2),
		// where θ is the angle between t1 and t2.
		h := math.Sqrt((1 + c) / 2)
		if h == 0 || 1/h > r.MiterLimit+1e-10 {
			return // bevel
		}
		dir := n1.Add(n2)
		if !plus {
			dir = dir.Mul(-1)
		}
		if l := dir.Length(); l > zeroLengthThreshold {
			r.outline = append(r.outline, p.Add(dir.Mul(d/(h*l))))
		}

	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, c)))
		if s < 0 {
			angle = -angle
		}
		if plus {
			r.addArc(p, d, n1, angle, false)
		} else {
			r.addArc(p, d, n2.Mul(-1), -angle, false)
		}
	}
	// Bevel joins need no extra points.
}

// addArc appends points on the circle of radius rad around c, starting in
// direction from and turning by sweep radians (counter-clockwise if
// positive).  The start point is only included if withStart is set.
func (r *Rasterizer) addArc(c vec.Vec2, rad float64, from vec.Vec2, sweep float64, withStart bool) {
	devRad := max(
		r.deviceLength(vec.Vec2{X: rad}),
		r.deviceLength(vec.Vec2{Y: rad}),
	)

	n := 1
	if devRad >= r.Flatness {
		// A chord spanning the angle φ deviates from the circle by
		// rad·(1-cos(φ/2)).
		step := 2 * math.Acos(1-r.Flatness/devRad)
		if !(step > 0) {
			step = math.Pi / 4
		}
		n = max(int(math.Ceil(min(math.Abs(sweep)/step, maxArcPieces))), 1)
	}
	if !r.spend(n) {
		return
	}

	i := 1
	if withStart {
		i = 0
	}
	for ; i <= n; i++ {
		phi := sweep * float64(i) / float64(n)
		sin, cos := math.Sincos(phi)
		dir := vec.Vec2{
			X: from.X*cos - from.Y*sin,
			Y: from.X*sin + from.Y*cos,
		}
		r.outline = append(r.outline, c.Add(dir.Mul(rad)))
	}
}
