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

// Package raster computes anti-aliased pixel coverage for filled and
// stroked paths.
//
// Coverage is the fraction of a pixel's area which lies inside the painted
// region, between 0 and 1. It is computed exactly for the polygon obtained
// by flattening all curves, using signed-area accumulation along each
// scanline. The result is delivered one row at a time through an
// [EmitFunc]; painting the coverage into an image is left to the caller.
package raster

import (
	"errors"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// ErrTooComplex is returned by [Rasterizer.Fill] and [Rasterizer.Stroke]
// when a path needs more than MaxEdges line segments.
var ErrTooComplex = errors.New("path too complex")

// FillRule selects how the winding number of a point is mapped to
// insideness.
type FillRule uint8

// These are the supported fill rules.
const (
	NonZero FillRule = iota
	EvenOdd
)

func (f FillRule) String() string {
	switch f {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return "FillRule(invalid)"
	}
}

// EmitFunc receives the coverage of the pixels xMin, xMin+1, ... in row y.
// The slice is only valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// Rasterizer turns paths into coverage values.
//
// The zero value is not usable; use [New].  A Rasterizer keeps its scratch
// buffers between calls, so that rendering many paths with the same
// Rasterizer does not allocate once the buffers have grown large enough.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space to device space.  It must be non-singular.
	CTM matrix.Matrix

	// Clip restricts the output to this device-space rectangle.  The
	// coordinates must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and the polygon used to approximate it.
	Flatness float64

	// Width is the line width for Stroke, in user-space units.
	Width float64

	// Cap is the shape used at the ends of open subpaths and dashes.
	Cap graphics.LineCapStyle

	// Join is the shape used at corners of stroked paths.
	Join graphics.LineJoinStyle

	// MiterLimit is the maximal ratio between miter length and line width
	// before a miter join is replaced by a bevel.  Must be at least 1.
	MiterLimit float64

	// Dash lists alternating dash and gap lengths in user-space units.
	// Entries must be non-negative and not all zero.  An empty slice
	// strokes solid lines.
	Dash []float64

	// DashPhase is the distance into the dash pattern at which each
	// subpath starts.
	DashPhase float64

	// MaxEdges bounds the number of line segments which a single call to
	// Fill or Stroke may generate, counting flattened curves, arcs and
	// dashes.  Zero or negative values disable the limit.
	MaxEdges int

	budget int     // segments left in the current call, negative once exceeded
	cull   bool    // replace curves outside the clip rectangle by chords
	margin float64 // device-space distance by which strokes extend the path

	// denseLimit is the largest bounding box area, in pixels, for which
	// the whole bounding box is accumulated at once.
	denseLimit int

	edges []edge
	box   deviceBox

	cover   []float32
	area    []float32
	active  []int
	touched []bool

	segs    []segment
	runs    []run
	dots    []vec.Vec2
	outline []vec.Vec2
	polys   []int

	dashed   []segment
	dashRuns []run
}

// edge is a non-horizontal line segment in device space.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	slope  float64 // dx/dy
}

func (e *edge) top() float64    { return min(e.y0, e.y1) }
func (e *edge) bottom() float64 { return max(e.y0, e.y1) }

func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.slope*(y-e.y0)
}

// deviceBox tracks the bounding box of all edges seen so far.
type deviceBox struct {
	empty                  bool
	xMin, xMax, yMin, yMax float64
}

func (b *deviceBox) add(x, y float64) {
	if b.empty {
		b.xMin, b.xMax, b.yMin, b.yMax = x, x, y, y
		b.empty = false
		return
	}
	b.xMin = min(b.xMin, x)
	b.xMax = max(b.xMax, x)
	b.yMin = min(b.yMin, y)
	b.yMax = max(b.yMax, y)
}

// New allocates a Rasterizer for the given clip rectangle.  All other
// parameters are set to their default values.
func New(clip rect.Rect) *Rasterizer {
	r := &Rasterizer{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// The internal buffers are kept, so that a Rasterizer can be recycled.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = DefaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = DefaultMiterLimit
	r.Dash = nil
	r.DashPhase = 0
	r.MaxEdges = DefaultMaxEdges
	r.denseLimit = denseAreaLimit
}

// begin starts the segment budget for one call to Fill or Stroke.
func (r *Rasterizer) begin(cull bool, margin float64) {
	r.budget = r.MaxEdges
	if r.budget <= 0 {
		r.budget = math.MaxInt
	}
	r.cull = cull
	r.margin = margin
}

// spend takes n segments from the budget.  Once the budget is exceeded,
// spend keeps returning false until the next call to begin.
func (r *Rasterizer) spend(n int) bool {
	if n > r.budget {
		r.budget = -1
		return false
	}
	r.budget -= n
	return true
}

func (r *Rasterizer) exceeded() bool {
	return r.budget < 0
}

// offClip reports whether the device-space bounding box of the given
// control points lies outside the clip rectangle, enlarged by r.margin.
// The curve then lies outside as well and can be replaced by its chord
// without changing the winding number of any pixel inside the clip.
func (r *Rasterizer) offClip(pts ...vec.Vec2) bool {
	if !r.cull {
		return false
	}
	m := &r.CTM
	b := deviceBox{empty: true}
	for _, p := range pts {
		b.add(m[0]*p.X+m[2]*p.Y+m[4], m[1]*p.X+m[3]*p.Y+m[5])
	}
	c := &r.Clip
	return b.xMax < c.LLx-r.margin || b.xMin > c.URx+r.margin ||
		b.yMax < c.LLy-r.margin || b.yMin > c.URy+r.margin
}

// Fill computes the coverage of the region enclosed by p.  Open subpaths
// are closed implicitly.
func (r *Rasterizer) Fill(p *path.Data, rule FillRule, emit EmitFunc) error {
	r.begin(true, 1)
	r.beginEdges()

	var cur, start vec.Vec2
	open := false
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if open && cur != start {
				r.lineEdge(cur, start)
			}
			cur = p.Coords[k]
			start = cur
			open = true
			k++
		case path.CmdLineTo:
			r.lineEdge(cur, p.Coords[k])
			cur = p.Coords[k]
			open = true
			k++
		case path.CmdQuadTo:
			r.flattenQuad(cur, p.Coords[k], p.Coords[k+1], r.addEdge)
			cur = p.Coords[k+1]
			open = true
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2], r.addEdge)
			cur = p.Coords[k+2]
			open = true
			k += 3
		case path.CmdClose:
			if cur != start {
				r.lineEdge(cur, start)
			}
			cur = start
			open = false
		}
	}
	if open && cur != start {
		r.lineEdge(cur, start)
	}
	if r.exceeded() {
		return ErrTooComplex
	}

	r.scan(rule, emit)
	return nil
}

func (r *Rasterizer) lineEdge(a, b vec.Vec2) {
	if r.spend(1) {
		r.addEdge(a, b)
	}
}

func (r *Rasterizer) beginEdges() {
	r.edges = r.edges[:0]
	r.box = deviceBox{empty: true}
}

// addEdge maps the segment from a to b to device space and records the
// part which can affect pixels inside the clip rectangle.  Parts above or
// below the clip rectangle are dropped, as are parts to its right.  Parts
// to its left are moved onto the left boundary, which keeps their
// contribution to the winding number.
func (r *Rasterizer) addEdge(a, b vec.Vec2) {
	m := &r.CTM
	x0 := m[0]*a.X + m[2]*a.Y + m[4]
	y0 := m[1]*a.X + m[3]*a.Y + m[5]
	x1 := m[0]*b.X + m[2]*b.Y + m[4]
	y1 := m[1]*b.X + m[3]*b.Y + m[5]
	if s := x0 + y0 + x1 + y1; math.IsNaN(s) || math.IsInf(s, 0) {
		return
	}
	if math.Abs(y1-y0) < horizontalEdgeThreshold {
		return
	}

	top, bot := r.Clip.LLy, r.Clip.URy
	if max(y0, y1) <= top || min(y0, y1) >= bot {
		return
	}
	xa, ya := clipRows(x0, y0, x1, y1, top, bot)
	xb, yb := clipRows(x1, y1, x0, y0, top, bot)

	left, right := r.Clip.LLx, r.Clip.URx
	if min(xa, xb) >= left && max(xa, xb) <= right {
		r.pushEdge(xa, ya, xb, yb)
		return
	}

	ts := [4]float64{0}
	n := 1
	for _, x := range [2]float64{left, right} {
		if t := (x - xa) / (xb - xa); t > 0 && t < 1 {
			ts[n] = t
			n++
		}
	}
	ts[n] = 1
	n++
	slices.Sort(ts[:n])

	at := func(t float64) (float64, float64) {
		switch t {
		case 0:
			return xa, ya
		case 1:
			return xb, yb
		}
		return xa + (xb-xa)*t, ya + (yb-ya)*t
	}
	for i := 1; i < n; i++ {
		px, py := at(ts[i-1])
		qx, qy := at(ts[i])
		switch mid := (px + qx) / 2; {
		case mid > right:
			// no effect on pixels inside the clip rectangle
		case mid < left:
			r.pushEdge(left, py, left, qy)
		default:
			r.pushEdge(px, py, qx, qy)
		}
	}
}

// clipRows moves the point (x, y) along the line towards (ox, oy) until
// it lies between the rows top and bot.
func clipRows(x, y, ox, oy, top, bot float64) (float64, float64) {
	c := min(max(y, top), bot)
	if c != y {
		x += (ox - x) * (c - y) / (oy - y)
	}
	return x, c
}

func (r *Rasterizer) pushEdge(x0, y0, x1, y1 float64) {
	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		// Horizontal edges do not change the winding number along a
		// scanline and contribute nothing.
		return
	}
	r.edges = append(r.edges, edge{
		x0: x0, y0: y0,
		x1: x1, y1: y1,
		slope: (x1 - x0) / dy,
	})
	r.box.add(x0, y0)
	r.box.add(x1, y1)
}

// pixelBounds returns the pixel range touched by the recorded edges,
// intersected with the clip rectangle.
func (r *Rasterizer) pixelBounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.box.xMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.box.xMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.box.yMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.box.yMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// scan converts the recorded edges into coverage rows.
func (r *Rasterizer) scan(rule FillRule, emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.pixelBounds()
	if !ok {
		return
	}
	if (xMax-xMin)*(yMax-yMin) < r.denseLimit {
		r.scanDense(xMin, xMax, yMin, yMax, rule, emit)
	} else {
		r.scanSparse(xMin, xMax, yMin, yMax, rule, emit)
	}
}

// Default parameter values.
const (
	// DefaultFlatness is a quarter of a device pixel, which is below what
	// can be seen.
	DefaultFlatness = 0.25

	// DefaultMiterLimit turns miters into bevels below an angle of
	// roughly 11.5 degrees.
	DefaultMiterLimit = 10.0

	// DefaultMaxEdges is the default value of Rasterizer.MaxEdges.
	DefaultMaxEdges = 1 << 22
)

const (
	horizontalEdgeThreshold = 1e-10

	// TODO: measure where the sparse scanner starts to win and tune this.
	denseAreaLimit = 65536

	zeroLengthThreshold   = 1e-10
	collinearityThreshold = 1e-6

	// cos(179.43°), below this the path reverses direction
	cuspCosineThreshold = -0.9999

	maxCurvePieces = 1 << 12
	maxArcPieces   = 1 << 10

	// Dash patterns with a shorter period, in device pixels, are drawn
	// as solid lines.
	minDashPeriod = 0.1
)
