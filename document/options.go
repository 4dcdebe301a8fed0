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

package document

import (
	"go.uber.org/zap"

	"seehuhn.de/go/docraster/scene"
)

// Limits bound the resources used while decoding a document.
type Limits struct {
	// MaxDocumentBytes is the largest accepted input buffer.
	MaxDocumentBytes int64

	// MaxDecompressedBytes bounds the total size of all data extracted
	// from a compressed document or zip package.
	MaxDecompressedBytes int64

	// MaxDimension is the largest accepted page width or height, in
	// document units.
	MaxDimension float64

	// MaxDepth is the largest accepted nesting depth of groups.  Values
	// above [scene.MaxDepth] are reduced to that value.
	MaxDepth int

	// MaxImagePixels bounds the number of pixels of each embedded image.
	MaxImagePixels int

	// MaxEdges bounds the number of line segments generated for a single
	// fill or stroke when the document is rendered.  It is not used by
	// the decoder itself.
	MaxEdges int
}

// DefaultLimits returns the limits used when no [WithLimits] option is
// given.
func DefaultLimits() Limits {
	return Limits{
		MaxDocumentBytes:     64 << 20,
		MaxDecompressedBytes: 256 << 20,
		MaxDimension:         1 << 20,
		MaxDepth:             scene.MaxDepth,
		MaxImagePixels:       1 << 26,
		MaxEdges:             1 << 22,
	}
}

// Option configures [Decode].
type Option func(*config)

type config struct {
	limits Limits
	logger *zap.Logger
}

// WithLimits replaces the default limits.  Zero fields keep their default
// values.
func WithLimits(l Limits) Option {
	return func(c *config) {
		if l.MaxDocumentBytes > 0 {
			c.limits.MaxDocumentBytes = l.MaxDocumentBytes
		}
		if l.MaxDecompressedBytes > 0 {
			c.limits.MaxDecompressedBytes = l.MaxDecompressedBytes
		}
		if l.MaxDimension > 0 {
			c.limits.MaxDimension = l.MaxDimension
		}
		if l.MaxDepth > 0 {
			c.limits.MaxDepth = min(l.MaxDepth, scene.MaxDepth)
		}
		if l.MaxImagePixels > 0 {
			c.limits.MaxImagePixels = l.MaxImagePixels
		}
		if l.MaxEdges > 0 {
			c.limits.MaxEdges = l.MaxEdges
		}
	}
}

// WithLogger sets the logger used for debug messages.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
