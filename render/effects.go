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

	"github.com/anthonynsimon/bild/blur"
	"golang.org/x/image/draw"

	"seehuhn.de/go/docraster/scene"
)

const (
	// minBlurRadius is the smallest device-space blur radius which
	// changes the output.
	minBlurRadius = 0.5

	// maxDirectBlurRadius is the largest radius for which the kernel is
	// applied at full resolution.  Larger blurs are computed on a
	// downscaled copy of the canvas.
	maxDirectBlurRadius = 16
)

// blurCanvas applies a Gaussian blur with the given radius in device
// pixels.  The blur operates on premultiplied samples.  Radii larger than
// the canvas are reduced to the canvas size.
func blurCanvas(c *canvas, radius float64) {
	if !(radius >= minBlurRadius) {
		return
	}
	radius = min(radius, float64(max(c.w, c.h)))

	// The Gaussian kernel of bild has a standard deviation of
	// sqrt(2·radius), so shrinking the canvas by a factor f divides the
	// radius by f².
	src := c.rgba()
	f := math.Ceil(math.Sqrt(radius / maxDirectBlurRadius))
	if f <= 1 {
		c.setRGBA(blur.Gaussian(src, radius))
		return
	}

	sw := max(int(math.Ceil(float64(c.w)/f)), 1)
	sh := max(int(math.Ceil(float64(c.h)/f)), 1)
	small := image.NewRGBA(image.Rect(0, 0, sw, sh))
	draw.BiLinear.Scale(small, small.Rect, src, src.Rect, draw.Src, nil)
	blurred := blur.Gaussian(small, radius/(f*f))
	draw.BiLinear.Scale(src, src.Rect, blurred, blurred.Rect, draw.Src, nil)
	c.setRGBA(src)
}

// shadowOf returns a canvas which holds the shadow cast by the alpha
// channel of src, moved by (dx, dy) device pixels.
func shadowOf(src *canvas, col scene.Color, dx, dy float64) *canvas {
	// offsets beyond the canvas size move the shadow out of view
	dx = min(max(dx, -float64(src.w)), float64(src.w))
	dy = min(max(dy, -float64(src.h)), float64(src.h))
	ox, oy := int(math.Round(dx)), int(math.Round(dy))
	s := col.Premultiplied()
	dst := newCanvas(src.w, src.h)
	for y := range dst.h {
		sy := y - oy
		if sy < 0 || sy >= src.h {
			continue
		}
		for x := range dst.w {
			sx := x - ox
			if sx < 0 || sx >= src.w {
				continue
			}
			a := src.pix[4*(sy*src.w+sx)+3]
			if a == 0 {
				continue
			}
			out := dst.pix[4*(y*dst.w+x):]
			out[0] = s[0] * a
			out[1] = s[1] * a
			out[2] = s[2] * a
			out[3] = s[3] * a
		}
	}
	return dst
}
