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
	"slices"
)

// patternLength returns the length of one full period of the dash
// pattern.  Patterns with an odd number of entries repeat with on and off
// swapped, so the period is twice the sum of the entries.
func patternLength(dash []float64) float64 {
	var total float64
	for _, v := range dash {
		total += v
	}
	if len(dash)%2 == 1 {
		total *= 2
	}
	return total
}

// dashing reports whether strokes are currently dashed.  Patterns whose
// period is shorter than minDashPeriod device pixels cannot be resolved
// and are drawn as solid lines.
func (r *Rasterizer) dashing() bool {
	if len(r.Dash) == 0 {
		return false
	}
	return patternLength(r.Dash)*r.meanScale() >= minDashPeriod
}

// dashCursor tracks the position within the dash pattern.
type dashCursor struct {
	pattern []float64
	idx     int     // index into the infinitely repeated pattern
	left    float64 // remaining length of the current entry
}

func startDash(pattern []float64, phase float64) dashCursor {
	c := dashCursor{pattern: pattern}
	n := len(pattern)
	for phase > 0 && phase >= pattern[c.idx%n] {
		phase -= pattern[c.idx%n]
		c.idx++
	}
	c.left = pattern[c.idx%n] - phase
	return c
}

func (c *dashCursor) on() bool {
	return c.idx%2 == 0
}

func (c *dashCursor) next() {
	c.idx++
	c.left = c.pattern[c.idx%len(c.pattern)]
}

// applyDash cuts the runs in r.segs into dashes, which are stored as open
// runs in r.dashed and r.dashRuns.  A zero-length dash is stored as a
// single segment with a == b which keeps the direction of the path at that
// point.
func (r *Rasterizer) applyDash() {
	r.dashed = r.dashed[:0]
	r.dashRuns = r.dashRuns[:0]

	period := patternLength(r.Dash)
	phase := math.Mod(r.DashPhase, period)
	if phase < 0 {
		phase += period
	}

	for _, rn := range r.runs {
		segs := r.segs[rn.lo:rn.hi]
		cur := startDash(r.Dash, phase)

		if cur.on() && cur.left == 0 {
			s := segs[0]
			s.b = s.a
			r.dashRuns = append(r.dashRuns, run{lo: len(r.dashed), hi: len(r.dashed) + 1})
			r.dashed = append(r.dashed, s)
			cur.next()
		}

		startsOn := cur.on()
		firstDash := -1 // index in r.dashRuns of the first dash of this run
		lo := len(r.dashed)

		k := 0
		pos := 0.0 // distance already consumed on segs[k]
		for k < len(segs) {
			s := segs[k]
			length := s.b.Sub(s.a).Length()
			rest := length - pos

			if cur.left >= rest {
				if cur.on() {
					piece := s
					if pos > 0 {
						piece.a = s.a.Add(s.b.Sub(s.a).Mul(pos / length))
					}
					r.dashed = append(r.dashed, piece)
				}
				cur.left -= rest
				k++
				pos = 0
				continue
			}

			end := pos + cur.left
			if cur.on() {
				a := s.a.Add(s.b.Sub(s.a).Mul(pos / length))
				b := s.a.Add(s.b.Sub(s.a).Mul(end / length))
				if piece, ok := newSegment(a, b); ok {
					r.dashed = append(r.dashed, piece)
				} else if len(r.dashed) == lo {
					r.dashed = append(r.dashed, segment{a: a, b: a, t: s.t, n: s.n})
				}
				if len(r.dashed) > lo {
					if firstDash < 0 {
						firstDash = len(r.dashRuns)
					}
					r.dashRuns = append(r.dashRuns, run{lo: lo, hi: len(r.dashed)})
					lo = len(r.dashed)
				}
			}
			pos = end
			if !r.spend(1) {
				return
			}
			cur.next()
		}

		if len(r.dashed) == lo {
			continue
		}
		if rn.closed && startsOn && cur.on() && firstDash >= 0 {
			// The last dash runs across the start of a closed subpath;
			// join it with the first dash.
			first := r.dashRuns[firstDash]
			r.dashed = append(r.dashed, r.dashed[first.lo:first.hi]...)
			r.dashRuns = slices.Delete(r.dashRuns, firstDash, firstDash+1)
		}
		r.dashRuns = append(r.dashRuns, run{lo: lo, hi: len(r.dashed)})
	}
}
