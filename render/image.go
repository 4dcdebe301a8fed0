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

package render

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/docraster/scene"
)

// drawImage resamples im into device space and composites it onto dst.
func drawImage(dst *canvas, im *scene.Image, ctm matrix.Matrix) {
	b := im.Img.Bounds()
	sx := (im.Rect.URx - im.Rect.LLx) / float64(b.Dx())
	sy := (im.Rect.URy - im.Rect.LLy) / float64(b.Dy())
	place := matrix.Matrix{
		sx, 0,
		0, sy,
		im.Rect.LLx - sx*float64(b.Min.X), im.Rect.LLy - sy*float64(b.Min.Y),
	}
	m := place.Mul(ctm)
	if singular(m) {
		return
	}

	// device-space bounding box of the image
	xMin, yMin := math.Inf(1), math.Inf(1)
	xMax, yMax := math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]int{{b.Min.X, b.Min.Y}, {b.Max.X, b.Min.Y}, {b.Min.X, b.Max.Y}, {b.Max.X, b.Max.Y}} {
		x, y := m.Apply(float64(c[0]), float64(c[1]))
		xMin, xMax = min(xMin, x), max(xMax, x)
		yMin, yMax = min(yMin, y), max(yMax, y)
	}
	box := image.Rect(0, 0, dst.w, dst.h)
	if xMax <= 0 || yMax <= 0 || xMin >= float64(dst.w) || yMin >= float64(dst.h) {
		return
	}
	box = box.Intersect(image.Rect(
		int(math.Floor(max(xMin, 0))), int(math.Floor(max(yMin, 0))),
		int(math.Ceil(min(xMax, float64(dst.w)))), int(math.Ceil(min(yMax, float64(dst.h)))),
	))
	if box.Empty() {
		return
	}

	tmp := image.NewRGBA(box)
	s2d := f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
	draw.CatmullRom.Transform(tmp, s2d, im.Img, b, draw.Src, nil)
	dst.compositeRGBA(tmp)
}
