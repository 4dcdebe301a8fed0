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

package testcases

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf/graphics"
)

var fillShapes = []Shape{
	{Name: "triangle", Path: triangle(10, 50, 32, 10, 54, 50), Width: 64, Height: 64, Op: Fill{Rule: NonZero}},
	{Name: "triangle_evenodd", Path: triangle(10, 50, 32, 10, 54, 50), Width: 64, Height: 64, Op: Fill{Rule: EvenOdd}},
	{Name: "star_nonzero", Path: star(32, 32, 25), Width: 64, Height: 64, Op: Fill{Rule: NonZero}},
	{Name: "star_evenodd", Path: star(32, 32, 25), Width: 64, Height: 64, Op: Fill{Rule: EvenOdd}},
	{Name: "rectangle", Path: Rectangle(10, 10, 44, 44), Width: 64, Height: 64, Op: Fill{Rule: NonZero}},
	{Name: "rectangle_subpixel", Path: Rectangle(10.25, 10.5, 43.75, 20.125), Width: 64, Height: 64, Op: Fill{Rule: NonZero}},
	{Name: "nested_nonzero", Path: nestedSquares(32, 32, 24, 10), Width: 64, Height: 64, Op: Fill{Rule: NonZero}},
	{Name: "nested_evenodd", Path: nestedSquares(32, 32, 24, 10), Width: 64, Height: 64, Op: Fill{Rule: EvenOdd}},
	{Name: "clipped", Path: Rectangle(-20, 20, 90, 40), Width: 64, Height: 64, Op: Fill{Rule: NonZero}},
}

var curveShapes = []Shape{
	{Name: "circle", Path: Circle(32, 32, 25), Width: 64, Height: 64, Op: Fill{Rule: NonZero}},
	{Name: "ellipse", Path: Ellipse(32, 32, 28, 12), Width: 64, Height: 64, Op: Fill{Rule: NonZero}},
	{Name: "quadratic", Path: quadArch(10, 50, 32, 10, 54, 50), Width: 64, Height: 64, Op: Fill{Rule: NonZero}},
	{
		Name: "cubic_stroke", Path: cubicWave(8, 32, 56, 32), Width: 64, Height: 64,
		Op: Stroke{Width: 3, Cap: graphics.LineCapRound, Join: graphics.LineJoinRound, MiterLimit: 10},
	},
}

func stroke(w float64, c graphics.LineCapStyle, j graphics.LineJoinStyle) Stroke {
	return Stroke{Width: w, Cap: c, Join: j, MiterLimit: 10}
}

var strokeShapes = []Shape{
	{Name: "line_butt", Path: HorizontalLine(10, 32, 54), Width: 64, Height: 64, Op: stroke(8, graphics.LineCapButt, graphics.LineJoinMiter)},
	{Name: "line_round", Path: HorizontalLine(10, 32, 54), Width: 64, Height: 64, Op: stroke(8, graphics.LineCapRound, graphics.LineJoinMiter)},
	{Name: "line_square", Path: HorizontalLine(10, 32, 54), Width: 64, Height: 64, Op: stroke(8, graphics.LineCapSquare, graphics.LineJoinMiter)},
	{Name: "corner_miter", Path: corner(10, 50, 32, 14, 54, 50), Width: 64, Height: 64, Op: stroke(6, graphics.LineCapButt, graphics.LineJoinMiter)},
	{Name: "corner_round", Path: corner(10, 50, 32, 14, 54, 50), Width: 64, Height: 64, Op: stroke(6, graphics.LineCapButt, graphics.LineJoinRound)},
	{Name: "corner_bevel", Path: corner(10, 50, 32, 14, 54, 50), Width: 64, Height: 64, Op: stroke(6, graphics.LineCapButt, graphics.LineJoinBevel)},
	{Name: "zigzag", Path: zigzag(6, 32, 58, 12, 6), Width: 64, Height: 64, Op: stroke(3, graphics.LineCapSquare, graphics.LineJoinMiter)},
	{Name: "closed_square", Path: Rectangle(16, 16, 48, 48), Width: 64, Height: 64, Op: stroke(4, graphics.LineCapButt, graphics.LineJoinMiter)},
	{Name: "closed_circle", Path: Circle(32, 32, 20), Width: 64, Height: 64, Op: stroke(5, graphics.LineCapButt, graphics.LineJoinRound)},
}

func dashed(dash []float64, phase float64, c graphics.LineCapStyle) Stroke {
	return Stroke{Width: 4, Cap: c, Join: graphics.LineJoinMiter, MiterLimit: 10, Dash: dash, DashPhase: phase}
}

var dashShapes = []Shape{
	{Name: "even", Path: HorizontalLine(5, 32, 59), Width: 64, Height: 64, Op: dashed([]float64{10, 10}, 0, graphics.LineCapButt)},
	{Name: "odd_length", Path: HorizontalLine(5, 32, 59), Width: 64, Height: 64, Op: dashed([]float64{5, 3, 8}, 0, graphics.LineCapButt)},
	{Name: "phase", Path: HorizontalLine(5, 32, 59), Width: 64, Height: 64, Op: dashed([]float64{10, 5}, 7, graphics.LineCapButt)},
	{Name: "negative_phase", Path: HorizontalLine(5, 32, 59), Width: 64, Height: 64, Op: dashed([]float64{10, 5}, -3, graphics.LineCapButt)},
	{Name: "dots_round", Path: HorizontalLine(5, 32, 59), Width: 64, Height: 64, Op: dashed([]float64{0, 8}, 0, graphics.LineCapRound)},
	{Name: "dots_square", Path: HorizontalLine(5, 32, 59), Width: 64, Height: 64, Op: dashed([]float64{0, 8}, 0, graphics.LineCapSquare)},
	{Name: "closed", Path: Rectangle(12, 12, 52, 52), Width: 64, Height: 64, Op: dashed([]float64{14, 6}, 4, graphics.LineCapButt)},
	{Name: "corner", Path: corner(10, 50, 32, 14, 54, 50), Width: 64, Height: 64, Op: dashed([]float64{12, 4}, 0, graphics.LineCapSquare)},
}

var ctmShapes = []Shape{
	{Name: "scale_2x", Path: Rectangle(0, 0, 20, 20), Width: 128, Height: 128, Op: Fill{Rule: NonZero}, CTM: matrix.Scale(2, 2).Translate(24, 24)},
	{Name: "scale_half", Path: Rectangle(0, 0, 80, 80), Width: 64, Height: 64, Op: Fill{Rule: NonZero}, CTM: matrix.Scale(0.5, 0.5).Translate(12, 12)},
	{Name: "rotate_45", Path: Rectangle(-10, -10, 10, 10), Width: 64, Height: 64, Op: Fill{Rule: NonZero}, CTM: matrix.RotateDeg(45).Translate(32, 32)},
	{
		Name: "stroke_anisotropic", Path: Circle(0, 0, 10), Width: 64, Height: 64,
		Op:  stroke(1, graphics.LineCapButt, graphics.LineJoinRound),
		CTM: matrix.Scale(2.5, 1).Translate(32, 32),
	},
}

var largeShapes = []Shape{
	{Name: "rectangle", Path: Rectangle(50, 50, 462, 462), Width: 512, Height: 512, Op: Fill{Rule: NonZero}},
	{Name: "nested_evenodd", Path: nestedSquares(256, 256, 200, 100), Width: 512, Height: 512, Op: Fill{Rule: EvenOdd}},
	{Name: "grid", Path: grid(8, 8, 512, 512, 4), Width: 512, Height: 512, Op: Fill{Rule: NonZero}},
	{Name: "circle_stroke", Path: Circle(256, 256, 200), Width: 512, Height: 512, Op: stroke(12, graphics.LineCapButt, graphics.LineJoinMiter)},
}
