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

// Package pngenc encodes rendered pages as PNG files.
//
// The output is always lossless.  The quality parameter, an integer
// between 0 and 100, only selects how hard the encoder tries to make the
// file small:
//
//	 0-29   fastest compression
//	30-69   default compression
//	70-100  best compression
//
// Values outside the range are clamped.  Since every tier reproduces the
// pixels exactly, higher quality never decreases fidelity.
package pngenc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// These are the bounds of the quality range.
const (
	MinQuality = 0
	MaxQuality = 100
)

// ErrEmptyImage is returned when the image has no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// ClampQuality maps q into the range [MinQuality, MaxQuality].
func ClampQuality(q int) int {
	return min(max(q, MinQuality), MaxQuality)
}

// Level returns the deflate effort used for the given quality.
func Level(quality int) png.CompressionLevel {
	switch q := ClampQuality(quality); {
	case q < 30:
		return png.BestSpeed
	case q < 70:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

// Encode returns img as a PNG byte stream.
func Encode(img image.Image, quality int) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	b := img.Bounds()
	buf := bytes.NewBuffer(make([]byte, 0, 1024+b.Dx()*b.Dy()/4))
	err := imaging.Encode(buf, img, imaging.PNG, imaging.PNGCompressionLevel(Level(quality)))
	if err != nil {
		return nil, fmt.Errorf("png encoding: %w", err)
	}
	return buf.Bytes(), nil
}
