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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// segment is a straight piece of a flattened path, in user space.
type segment struct {
	a, b vec.Vec2
	t    vec.Vec2 // unit direction from a to b
	n    vec.Vec2 // t rotated by +90°
}

func newSegment(a, b vec.Vec2) (segment, bool) {
	d := b.Sub(a)
	l := d.Length()
	if l < zeroLengthThreshold {
		return segment{}, false
	}
	t := d.Mul(1 / l)
	return segment{a: a, b: b, t: t, n: vec.Vec2{X: -t.Y, Y: t.X}}, true
}

// run is a range of consecutive segments belonging to one subpath or dash.
type run struct {
	lo, hi int
	closed bool
}

func cross(u, v vec.Vec2) float64 {
	return u.X*v.Y - u.Y*v.X
}

// Stroke computes the coverage of the area painted when p is stroked with
// the current line width, caps, joins and dash pattern.
//
// All outline polygons are filled together using the nonzero rule, so that
// overlapping parts of the stroke are painted only once.
func (r *Rasterizer) Stroke(p *path.Data, emit EmitFunc) error {
	d := r.Width / 2
	dashed := r.dashing()
	// Curves are only replaced by chords for solid lines, since the chord
	// would shift the dash pattern on the rest of the subpath.
	r.begin(!dashed, r.maxStretch()*d*max(r.MiterLimit, math.Sqrt2)+1)

	r.collectSegments(p)
	if r.exceeded() {
		return ErrTooComplex
	}
	if len(r.runs) == 0 && len(r.dots) == 0 {
		return nil
	}

	r.outline = r.outline[:0]
	r.polys = r.polys[:0]

	// Subpaths without direction only leave a mark with round caps.
	if r.Cap == graphics.LineCapRound {
		for _, pt := range r.dots {
			lo := len(r.outline)
			r.addArc(pt, d, vec.Vec2{X: 1}, 2*math.Pi, true)
			r.endPolygon(lo)
		}
	}

	if dashed {
		r.applyDash()
		for _, dr := range r.dashRuns {
			segs := r.dashed[dr.lo:dr.hi]
			if len(segs) == 1 && segs[0].a == segs[0].b {
				r.strokeDot(&segs[0], d)
				continue
			}
			lo := len(r.outline)
			r.outlineOpen(segs, d)
			r.endPolygon(lo)
		}
	} else {
		for _, rn := range r.runs {
			segs := r.segs[rn.lo:rn.hi]
			lo := len(r.outline)
			if rn.closed {
				r.outlineClosed(segs, d)
			} else {
				r.outlineOpen(segs, d)
			}
			r.endPolygon(lo)
		}
	}
	if r.exceeded() {
		return ErrTooComplex
	}

	r.beginEdges()
	for i, lo := range r.polys {
		hi := len(r.outline)
		if i+1 < len(r.polys) {
			hi = r.polys[i+1]
		}
		poly := r.outline[lo:hi]
		for j := range poly {
			r.addEdge(poly[j], poly[(j+1)%len(poly)])
		}
	}
	r.scan(NonZero, emit)
	return nil
}

// endPolygon keeps the outline points added since lo as a polygon, or
// drops them if they cannot enclose any area.
func (r *Rasterizer) endPolygon(lo int) {
	if len(r.outline)-lo < 3 {
		r.outline = r.outline[:lo]
		return
	}
	r.polys = append(r.polys, lo)
}

// strokeDot draws the mark left by a zero-length dash.  The segment
// carries the direction of the underlying path, which orients square
// caps.
func (r *Rasterizer) strokeDot(s *segment, d float64) {
	lo := len(r.outline)
	switch r.Cap {
	case graphics.LineCapRound:
		r.addArc(s.a, d, vec.Vec2{X: 1}, 2*math.Pi, true)
	case graphics.LineCapSquare:
		c, t, n := s.a, s.t.Mul(d), s.n.Mul(d)
		r.outline = append(r.outline,
			c.Add(t).Add(n),
			c.Add(t).Sub(n),
			c.Sub(t).Sub(n),
			c.Sub(t).Add(n),
		)
	}
	r.endPolygon(lo)
}

// collectSegments flattens p into r.segs.  Each subpath with a direction
// becomes one entry of r.runs; subpaths which have drawing operations but
// no extent are recorded in r.dots.
func (r *Rasterizer) collectSegments(p *path.Data) {
	r.segs = r.segs[:0]
	r.runs = r.runs[:0]
	r.dots = r.dots[:0]

	var cur, start vec.Vec2
	lo := 0
	open := false
	drawn := false

	finish := func(closed bool) {
		if len(r.segs) > lo {
			r.runs = append(r.runs, run{lo: lo, hi: len(r.segs), closed: closed})
		} else if drawn || closed {
			r.dots = append(r.dots, start)
		}
		lo = len(r.segs)
		open = false
		drawn = false
	}
	line := func(a, b vec.Vec2) {
		if s, ok := newSegment(a, b); ok {
			r.segs = append(r.segs, s)
		}
	}
	draw := func() {
		if !open {
			// A drawing operation after a close starts a new subpath at
			// the start of the previous one.
			cur = start
			lo = len(r.segs)
			open = true
		}
		drawn = true
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				finish(false)
			}
			cur = p.Coords[k]
			start = cur
			lo = len(r.segs)
			open = true
			k++
		case path.CmdLineTo:
			draw()
			line(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			draw()
			r.flattenQuad(cur, p.Coords[k], p.Coords[k+1], line)
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			draw()
			r.flattenCubic(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2], line)
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if open {
				line(cur, start)
				cur = start
				finish(true)
			}
		}
	}
	if open {
		finish(false)
	}
}

// outlineOpen appends the outline of an open run: the start cap, the
// offset line on the +n side, the end cap, and the offset line on the -n
// side traversed backwards.
func (r *Rasterizer) outlineOpen(segs []segment, d float64) {
	first, last := &segs[0], &segs[len(segs)-1]

	r.addCap(first.a, first.t.Mul(-1), d)
	for i := range segs {
		s := &segs[i]
		r.outline = append(r.outline, s.a.Add(s.n.Mul(d)))
		if i == len(segs)-1 {
			r.outline = append(r.outline, s.b.Add(s.n.Mul(d)))
			break
		}
		r.openCorner(s.b, s, &segs[i+1], d, true)
	}

	r.addCap(last.b, last.t, d)
	for i := len(segs) - 1; i >= 0; i-- {
		s := &segs[i]
		r.outline = append(r.outline, s.b.Sub(s.n.Mul(d)))
		if i == 0 {
			r.outline = append(r.outline, s.a.Sub(s.n.Mul(d)))
			break
		}
		r.openCorner(s.a, &segs[i-1], s, d, false)
	}
}

// outlineClosed appends the outline of a closed run.  There are no caps;
// the corner where the run closes is joined like every other corner.
func (r *Rasterizer) outlineClosed(segs []segment, d float64) {
	n := len(segs)
	first, last := &segs[0], &segs[n-1]

	r.outline = append(r.outline, first.a.Add(first.n.Mul(d)))
	for i := range segs {
		r.closedCorner(segs[i].b, &segs[i], &segs[(i+1)%n], d, true)
	}

	r.closedCorner(first.a, last, first, d, false)
	for i := n - 1; i > 0; i-- {
		r.closedCorner(segs[i].a, &segs[i-1], &segs[i], d, false)
	}
	r.outline = append(r.outline, first.a.Sub(first.n.Mul(d)))
}

// isOuter reports whether the given side of a corner is on the outside of
// the turn from in to out.
func isOuter(in, out *segment, plus bool) bool {
	return plus == (cross(in.t, out.t) < 0)
}

// openCorner appends the geometry for the corner p between in and out, on
// the +n side if plus is set and the -n side otherwise.  The offset point
// of the segment being left is always added here; the caller adds the
// offset point of the segment being entered.
func (r *Rasterizer) openCorner(p vec.Vec2, in, out *segment, d float64, plus bool) {
	from := in
	side := d
	if !plus {
		from = out
		side = -d
	}

	r.outline = append(r.outline, p.Add(from.n.Mul(side)))
	switch {
	case math.Abs(cross(in.t, out.t)) < collinearityThreshold:
		// straight on
	case isOuter(in, out, plus):
		r.addJoin(p, in.t, out.t, d, plus)
	default:
		// On the inner side, the outline returns to the path before
		// continuing.  The nonzero rule then fills the overlap, also
		// when the offset lines do not meet within the adjacent
		// segments.
		r.outline = append(r.outline, p)
	}
}

// closedCorner is like openCorner, but also appends the offset point of
// the segment being entered.
func (r *Rasterizer) closedCorner(p vec.Vec2, in, out *segment, d float64, plus bool) {
	to := out
	side := d
	if !plus {
		to = in
		side = -d
	}
	r.openCorner(p, in, out, d, plus)
	r.outline = append(r.outline, p.Add(to.n.Mul(side)))
}
