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
)

// deviceLength returns the length of v after applying the linear part of
// the CTM.  Translations do not affect how far a curve may deviate from its
// chords, so they are ignored here.
func (r *Rasterizer) deviceLength(v vec.Vec2) float64 {
	m := &r.CTM
	return math.Hypot(m[0]*v.X+m[2]*v.Y, m[1]*v.X+m[3]*v.Y)
}

// maxStretch is an upper bound for the factor by which the CTM can
// lengthen a vector.
func (r *Rasterizer) maxStretch() float64 {
	m := &r.CTM
	return math.Sqrt(m[0]*m[0] + m[1]*m[1] + m[2]*m[2] + m[3]*m[3])
}

// meanScale is the factor by which the CTM scales lengths, averaged over
// all directions.
func (r *Rasterizer) meanScale() float64 {
	m := &r.CTM
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}

// flattenQuad approximates the quadratic Bézier curve p0, p1, p2 by
// straight segments, calling line for each of them.  The number of
// segments is chosen so that the device-space error stays below Flatness,
// but never exceeds maxCurvePieces.
func (r *Rasterizer) flattenQuad(p0, p1, p2 vec.Vec2, line func(a, b vec.Vec2)) {
	if r.offClip(p0, p1, p2) {
		if r.spend(1) {
			line(p0, p2)
		}
		return
	}

	// The maximal distance between the curve and the chord p0-p2 is
	// |p0 - 2p1 + p2|/4; splitting into n pieces divides this by n².
	dev := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(min(math.Sqrt(dev/r.Flatness), maxCurvePieces)))
	}
	if !r.spend(n) {
		return
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		line(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by straight segments,
// using Wang's formula for the number of pieces.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, line func(a, b vec.Vec2)) {
	if r.offClip(p0, p1, p2, p3) {
		if r.spend(1) {
			line(p0, p3)
		}
		return
	}

	dd := max(
		r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2)),
		r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3)),
	)
	n := 1
	if dd > 0 {
		if k := math.Sqrt(3 * dd / (4 * r.Flatness)); k > 1 {
			n = int(math.Ceil(min(k, maxCurvePieces)))
		}
	}
	if !r.spend(n) {
		return
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		line(prev, pt)
		prev = pt
	}
}
