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

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"seehuhn.de/go/geom/vec"
)

// Paint is one of Color, *LinearGradient or *RadialGradient.
type Paint interface {
	isPaint()
}

// Color is an sRGB color with straight (non-premultiplied) alpha.
type Color struct {
	colorful.Color
	A float64
}

// Transparent is the fully transparent color.
var Transparent = Color{}

// RGBA returns the color with the given sRGB components and alpha, all in
// the range [0, 1].
func RGBA(r, g, b, a float64) Color {
	return Color{Color: colorful.Color{R: r, G: g, B: b}, A: a}
}

func (Color) isPaint() {}

// Premultiplied returns the color components multiplied by alpha, in the
// order red, green, blue, alpha.
func (c Color) Premultiplied() [4]float32 {
	a := float32(c.A)
	return [4]float32{float32(c.R) * a, float32(c.G) * a, float32(c.B) * a, a}
}

// WithAlpha returns c with its alpha multiplied by k.
func (c Color) WithAlpha(k float64) Color {
	c.A *= k
	return c
}

// Stop is a color at a position along a gradient.
type Stop struct {
	Offset float64 // in [0, 1]
	Color  Color
}

// LinearGradient varies the color along the line from From to To.  Beyond
// the end points the color of the nearest stop is used.
type LinearGradient struct {
	From, To vec.Vec2
	Stops    []Stop // sorted by Offset, at least one
}

// RadialGradient varies the color with the distance from Center.  Offset 1
// is reached at distance Radius.
type RadialGradient struct {
	Center vec.Vec2
	Radius float64
	Stops  []Stop // sorted by Offset, at least one
}

func (*LinearGradient) isPaint() {}
func (*RadialGradient) isPaint() {}

// At returns the gradient color at the point p.
func (g *LinearGradient) At(p vec.Vec2) Color {
	d := g.To.Sub(g.From)
	l2 := d.Dot(d)
	if l2 == 0 {
		return g.Stops[len(g.Stops)-1].Color
	}
	return ColorAt(g.Stops, p.Sub(g.From).Dot(d)/l2)
}

// At returns the gradient color at the point p.
func (g *RadialGradient) At(p vec.Vec2) Color {
	if g.Radius <= 0 {
		return g.Stops[len(g.Stops)-1].Color
	}
	return ColorAt(g.Stops, p.Sub(g.Center).Length()/g.Radius)
}

// ColorAt interpolates between the stops at position t.  The sRGB
// components are interpolated premultiplied by alpha, so that a
// transparent stop does not tint its neighbors.
func ColorAt(stops []Stop, t float64) Color {
	n := len(stops)
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	if t >= stops[n-1].Offset {
		return stops[n-1].Color
	}

	// stops[i-1].Offset < t <= stops[i].Offset
	i := sort.Search(n, func(i int) bool { return stops[i].Offset >= t })
	lo, hi := stops[i-1], stops[i]
	span := hi.Offset - lo.Offset
	if span <= 0 {
		return hi.Color
	}
	u := (t - lo.Offset) / span
	a := lo.Color.A + u*(hi.Color.A-lo.Color.A)
	if a <= 0 {
		return Transparent
	}
	mix := func(x, y float64) float64 {
		return (x*lo.Color.A + u*(y*hi.Color.A-x*lo.Color.A)) / a
	}
	return Color{
		Color: colorful.Color{
			R: mix(lo.Color.R, hi.Color.R),
			G: mix(lo.Color.G, hi.Color.G),
			B: mix(lo.Color.B, hi.Color.B),
		},
		A: a,
	}
}
