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

	"seehuhn.de/go/geom/rect"
)

// canvas is a pixel buffer with premultiplied float32 RGBA samples.
type canvas struct {
	w, h int
	pix  []float32
}

func newCanvas(w, h int) *canvas {
	return &canvas{w: w, h: h, pix: make([]float32, 4*w*h)}
}

func (c *canvas) clip() rect.Rect {
	return rect.Rect{URx: float64(c.w), URy: float64(c.h)}
}

// paintSpan composites the paint onto row y, with the pixels starting at
// xMin covered by the given fractions.
func (c *canvas) paintSpan(y, xMin int, coverage []float32, sh shader) {
	row := c.pix[4*(y*c.w+xMin):]
	for i, k := range coverage {
		if k <= 0 {
			continue
		}
		s := sh.at(xMin+i, y)
		over(row[4*i:4*i+4], s, min(k, 1))
	}
}

// over composites the premultiplied color s, scaled by k, onto dst.
func over(dst []float32, s [4]float32, k float32) {
	a := s[3] * k
	if a <= 0 {
		return
	}
	rest := 1 - a
	dst[0] = s[0]*k + dst[0]*rest
	dst[1] = s[1]*k + dst[1]*rest
	dst[2] = s[2]*k + dst[2]*rest
	dst[3] = a + dst[3]*rest
}

// composite paints src over c, with the alpha of src multiplied by
// opacity.  Both canvases must have the same size.
func (c *canvas) composite(src *canvas, opacity float64) {
	k := float32(opacity)
	for i := 0; i < len(c.pix); i += 4 {
		over(c.pix[i:i+4], [4]float32(src.pix[i:i+4]), k)
	}
}

// compositeRGBA paints the premultiplied 8-bit image src over c.  The
// bounds of src are in canvas coordinates.
func (c *canvas) compositeRGBA(src *image.RGBA) {
	b := src.Rect.Intersect(image.Rect(0, 0, c.w, c.h))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		in := src.Pix[src.PixOffset(b.Min.X, y):]
		out := c.pix[4*(y*c.w+b.Min.X):]
		for x := range b.Dx() {
			var s [4]float32
			for j := range 4 {
				s[j] = float32(in[4*x+j]) / 255
			}
			over(out[4*x:4*x+4], s, 1)
		}
	}
}

// rgba quantizes the canvas to premultiplied 8-bit samples.
func (c *canvas) rgba() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.w, c.h))
	for i, v := range c.pix {
		img.Pix[i] = quantize(v)
	}
	return img
}

// setRGBA replaces the contents of c with the pixels of img, which must
// have the same size.
func (c *canvas) setRGBA(img *image.RGBA) {
	for y := range c.h {
		in := img.Pix[img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y):]
		out := c.pix[4*y*c.w : 4*(y+1)*c.w]
		for i := range out {
			out[i] = float32(in[i]) / 255
		}
	}
}

// nrgba converts the canvas to straight alpha 8-bit samples.
func (c *canvas) nrgba() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.w, c.h))
	for i := 0; i < len(c.pix); i += 4 {
		a := c.pix[i+3]
		qa := quantize(a)
		if qa == 0 {
			continue
		}
		img.Pix[i+0] = quantize(c.pix[i+0] / a)
		img.Pix[i+1] = quantize(c.pix[i+1] / a)
		img.Pix[i+2] = quantize(c.pix[i+2] / a)
		img.Pix[i+3] = qa
	}
	return img
}

func quantize(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
