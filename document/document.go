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

// Package document decodes vector documents into scenes.
//
// A document is a JSON object with the page size, an optional background,
// optional embedded assets, and a list of layers:
//
//	{
//	  "version": 1,
//	  "width": 100, "height": 100,
//	  "background": "#ffffff",
//	  "layers": [
//	    {"type": "rect", "x": 0, "y": 0, "width": 100, "height": 100, "fill": "#ff0000"}
//	  ]
//	}
//
// The JSON text may be stored as is, compressed with gzip or zstandard, or
// as the entry "document.json" of a zip package.  In the last case, image
// layers can refer to other entries of the package by name.
//
// Supported layer types are "path", "rect", "ellipse", "text", "image" and
// "group".  The y-axis points down.
package document

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"seehuhn.de/go/docraster/scene"
)

// Version is the document format version understood by this package.
const Version = 1

// Decode parses a document.  Errors wrap one of [ErrEmpty],
// [ErrUnsupportedFormat], [ErrMalformed], [ErrUnresolvedReference] or
// [ErrTooLarge].
func Decode(buf []byte, opts ...Option) (*scene.Scene, error) {
	cfg := &config{
		limits: DefaultLimits(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	lim := &cfg.limits

	src, err := unpack(buf, lim)
	if err != nil {
		return nil, err
	}
	doc, err := parseJSON(src.doc)
	if err != nil {
		return nil, err
	}

	if doc.Version != nil && *doc.Version != Version {
		return nil, malformed("unsupported version %d", *doc.Version)
	}
	width, err := dimension("width", doc.Width, lim.MaxDimension)
	if err != nil {
		return nil, err
	}
	height, err := dimension("height", doc.Height, lim.MaxDimension)
	if err != nil {
		return nil, err
	}

	sc := &scene.Scene{Width: width, Height: height}
	if doc.Background != nil {
		sc.Background, err = paint(doc.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
	}

	b := &builder{
		assets:   newAssets(src, doc.Assets, lim.MaxImagePixels),
		maxDepth: lim.MaxDepth,
	}
	sc.Items, err = b.layers(doc.Layers, 0)
	if err != nil {
		return nil, err
	}

	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	cfg.logger.Debug("decoded document",
		zap.Stringer("format", src.format),
		zap.Float64("width", width),
		zap.Float64("height", height),
		zap.Int("layers", len(doc.Layers)),
		zap.Int("images", len(b.assets.cache)))
	return sc, nil
}

func dimension(name string, v *float64, limit float64) (float64, error) {
	if v == nil {
		return 0, malformed("missing %q", name)
	}
	x := *v
	if !(x > 0) || math.IsInf(x, 0) {
		return 0, malformed("%s must be positive, not %g", name, x)
	}
	if x > limit {
		return 0, fmt.Errorf("%w: %s %g exceeds %g", ErrTooLarge, name, x, limit)
	}
	return x, nil
}

// IsInputError reports whether err was caused by a problem with the input
// document, rather than by the environment.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmpty) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrMalformed) ||
		errors.Is(err, ErrUnresolvedReference) ||
		errors.Is(err, ErrTooLarge)
}
