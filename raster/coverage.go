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
	"cmp"
	"math"
	"slices"
)

// Each edge piece inside a pixel contributes two numbers to that pixel:
//
//	cover: the signed height of the piece (positive when the edge runs
//	       downwards, negative when it runs upwards)
//	area:  cover times the fraction of the pixel to the right of the piece
//
// Summing cover from the left edge of the row gives the winding number
// to the left of each pixel; adding the pixel's own area gives its exact
// signed coverage.  Edges left of the accumulation window are folded into
// the first pixel, with area equal to cover.

// accumulate adds the part of e inside row y to the row buffers cover and
// area, which hold pixels x0, ..., x1-1.
func accumulate(e *edge, y int, cover, area []float32, x0, x1 int) {
	top := max(float64(y), e.top())
	bot := min(float64(y+1), e.bottom())
	if bot <= top {
		return
	}

	var sign float32 = 1
	if e.y1 < e.y0 {
		sign = -1
	}

	xa := e.xAt(top)
	xb := e.xAt(bot)
	lo, hi := min(xa, xb), max(xa, xb)
	pixLo := int(math.Floor(lo))
	pixHi := int(math.Floor(hi))

	switch {
	case pixHi < x0:
		c := sign * float32(bot-top)
		cover[0] += c
		area[0] += c
		return
	case pixLo >= x1:
		return
	case pixLo == pixHi:
		deposit(e, top, bot, sign, pixLo, cover, area, x0, x1)
		return
	}

	// The piece crosses several pixel columns; split it at the column
	// boundaries.
	invSlope := 1 / e.slope
	for pix := pixLo; pix <= pixHi; pix++ {
		ya := e.y0 + invSlope*(float64(pix)-e.x0)
		yb := e.y0 + invSlope*(float64(pix+1)-e.x0)
		sTop := max(min(ya, yb), top)
		sBot := min(max(ya, yb), bot)
		if sBot <= sTop {
			continue
		}
		deposit(e, sTop, sBot, sign, pix, cover, area, x0, x1)
	}
}

// deposit records the piece of e between top and bot, which lies inside
// pixel column pix.
func deposit(e *edge, top, bot float64, sign float32, pix int, cover, area []float32, x0, x1 int) {
	c := sign * float32(bot-top)
	if pix < x0 {
		cover[0] += c
		area[0] += c
		return
	}
	if pix >= x1 {
		return
	}

	frac := e.xAt((top+bot)/2) - float64(pix)
	i := pix - x0
	cover[i] += c
	area[i] += c * float32(1-frac)
}

// resolve turns accumulated cover and area values into coverage, in place
// in cover.
func resolve(cover, area []float32, rule FillRule) {
	var acc float32
	for i := range cover {
		w := acc + area[i]
		acc += cover[i]
		if w < 0 {
			w = -w
		}

		if rule == EvenOdd {
			// distance to the nearest even winding number
			w -= 2 * float32(int(w/2))
			if w > 1 {
				w = 2 - w
			}
		} else if w > 1 {
			w = 1
		}
		cover[i] = w
	}
}

// nonZeroSpan returns the sub-slice of row between the first and last
// non-zero entry, together with its offset.
func nonZeroSpan(row []float32) ([]float32, int) {
	lo, hi := 0, len(row)
	for lo < hi && row[lo] == 0 {
		lo++
	}
	for hi > lo && row[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return row[lo:hi], lo
}

// scanDense accumulates all edges into a buffer covering the whole
// bounding box at once, then resolves the rows which were touched.
func (r *Rasterizer) scanDense(xMin, xMax, yMin, yMax int, rule FillRule, emit EmitFunc) {
	w := xMax - xMin
	h := yMax - yMin
	n := w * h

	r.cover = slices.Grow(r.cover[:0], n)[:n]
	r.area = slices.Grow(r.area[:0], n)[:n]
	r.touched = slices.Grow(r.touched[:0], h)[:h]
	clear(r.cover)
	clear(r.area)
	clear(r.touched)

	for i := range r.edges {
		e := &r.edges[i]
		first := max(int(math.Floor(e.top())), yMin)
		last := min(int(math.Floor(e.bottom()))+1, yMax)
		for y := first; y < last; y++ {
			row := y - yMin
			k := row * w
			accumulate(e, y, r.cover[k:k+w], r.area[k:k+w], xMin, xMax)
			r.touched[row] = true
		}
	}

	for row := range h {
		if !r.touched[row] {
			continue
		}
		k := row * w
		line := r.cover[k : k+w]
		resolve(line, r.area[k:k+w], rule)
		if span, off := nonZeroSpan(line); span != nil {
			emit(yMin+row, xMin+off, span)
		}
	}
}

// scanSparse walks the scanlines from top to bottom, keeping a list of the
// edges which cross the current row.  Only one row of buffer space is
// needed.
func (r *Rasterizer) scanSparse(xMin, xMax, yMin, yMax int, rule FillRule, emit EmitFunc) {
	w := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], w)[:w]
	r.area = slices.Grow(r.area[:0], w)[:w]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.top(), b.top())
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		rowTop := float64(y)
		rowBot := float64(y + 1)

		for next < len(r.edges) && r.edges[next].top() < rowBot {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		hit := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if e.bottom() <= rowTop {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			accumulate(e, y, r.cover, r.area, xMin, xMax)
			if min(rowBot, e.bottom()) > max(rowTop, e.top()) {
				hit = true
			}
			i++
		}
		if !hit {
			continue
		}

		resolve(r.cover, r.area, rule)
		if span, off := nonZeroSpan(r.cover); span != nil {
			emit(y, xMin+off, span)
		}
	}
}
