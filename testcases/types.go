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

// Package testcases holds the inputs shared by the tests and benchmarks of
// the other packages: bare geometry for the coverage rasterizer, and
// complete documents for the decoding and export pipeline.
package testcases

import (
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Shape is a single path together with the operation used to paint it.
type Shape struct {
	Name   string        // lowercase a-z, 0-9 and _ only
	Path   *path.Data    // in user space
	Width  int           // clip width in pixels
	Height int           // clip height in pixels
	Op     Operation     // Fill or Stroke
	CTM    matrix.Matrix // zero value means identity
}

// Operation is either Fill or Stroke.
type Operation interface {
	isOperation()
}

// FillRule mirrors the fill rules of the rasterizer.
type FillRule int

// These are the available fill rules.
const (
	NonZero FillRule = iota
	EvenOdd
)

// Fill paints the interior of a path.
type Fill struct {
	Rule FillRule
}

func (Fill) isOperation() {}

// Stroke paints along a path.
type Stroke struct {
	Width      float64
	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64
	Dash       []float64
	DashPhase  float64
}

func (Stroke) isOperation() {}

// Document is a complete input document, together with facts about the
// expected output.
type Document struct {
	Name string
	Data []byte

	// Width and Height are the intrinsic document size.
	Width, Height float64

	// Pixels lists pixels with known values at scale 1.
	Pixels []Pixel
}

// Pixel gives the expected color of one output pixel.
type Pixel struct {
	X, Y  int
	Color color.NRGBA
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
