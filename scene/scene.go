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

// Package scene describes a decoded document as a tree of drawable items.
//
// A Scene is built once by the document decoder and is never modified
// afterwards.  All exported fields are read-only by convention, which
// makes it safe to render the same Scene from several goroutines at once.
//
// Coordinates are in document units, with the origin in the top-left
// corner and the y-axis pointing down.
package scene

import (
	"image"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
)

// Scene is the root of a decoded document.
type Scene struct {
	// Width and Height give the intrinsic size of the document.  Both are
	// finite and positive.
	Width, Height float64

	// Background, if not nil, is painted over the whole page before the
	// items.
	Background Paint

	// Items are painted in order, later items on top.
	Items []Item
}

// Item is one of *Shape, *Image or *Group.
type Item interface {
	isItem()
}

// Shape is a path which is filled, stroked, or both.  Text is converted
// into shapes when the document is decoded.
type Shape struct {
	Path *path.Data

	// Transform maps the coordinates of Path and of gradient paints to the
	// coordinate system of the parent.  The zero matrix is treated as the
	// identity.
	Transform matrix.Matrix

	Fill   *Fill   // nil means not filled
	Stroke *Stroke // nil means not stroked

	Effects
}

// Image places a raster image into the rectangle Rect.
type Image struct {
	Img       *image.NRGBA
	Rect      rect.Rect
	Transform matrix.Matrix

	Effects
}

// Group is a list of items which is composited as a unit.
type Group struct {
	Items     []Item
	Transform matrix.Matrix

	Effects
}

func (*Shape) isItem() {}
func (*Image) isItem() {}
func (*Group) isItem() {}

// Effects are applied after an item has been painted into an offscreen
// layer, and before the layer is composited onto its parent.
type Effects struct {
	// Opacity multiplies the alpha of the item.  It is in [0, 1]; note
	// that the zero value makes the item invisible.
	Opacity float64

	// Blur is the radius of a Gaussian blur, in the units of the parent's
	// coordinate system.  Zero disables blurring.
	Blur float64

	// Shadow, if not nil, is painted below the item.
	Shadow *Shadow
}

// Plain reports whether the effects leave the painted item unchanged.
func (e *Effects) Plain() bool {
	return e.Opacity >= 1 && e.Blur <= 0 && e.Shadow == nil
}

// Shadow is a drop shadow, cast by the alpha channel of an item.
type Shadow struct {
	Color Color

	// OffsetX and OffsetY give the displacement of the shadow, in the
	// coordinate system of the item's parent.
	OffsetX, OffsetY float64

	// Blur is the radius of the shadow's Gaussian blur.
	Blur float64
}

// Fill describes how the inside of a path is painted.
type Fill struct {
	Paint Paint
	Rule  FillRule
}

// FillRule decides which points are inside a path.
type FillRule uint8

// These are the supported fill rules.
const (
	NonZero FillRule = iota
	EvenOdd
)
