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

// Package docraster converts vector documents into PNG images.
//
// A document is decoded once into a [Container], which can then be
// exported any number of times, at different scales and from several
// goroutines concurrently.  The size of the output image is
// ceil(width·scale) × ceil(height·scale) pixels, where width and height
// are the intrinsic size of the document.
//
// Two interfaces are provided.  [Decode] and [Container.Export] follow
// the usual Go conventions and report errors.  [New], [Handle.ExportPNG]
// and [Result] form an opaque-handle interface for use across a foreign
// function boundary: these functions never panic, and every failure is
// reported as [NoHandle] or as a failed [Result].
//
// See package [seehuhn.de/go/docraster/document] for the input format.
package docraster

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"seehuhn.de/go/docraster/document"
	"seehuhn.de/go/docraster/pngenc"
	"seehuhn.de/go/docraster/render"
	"seehuhn.de/go/docraster/scene"
)

var (
	// ErrReleased is returned when exporting from a handle which has been
	// freed, or from NoHandle.  [Result.Err] also returns it after
	// [Result.Free].
	ErrReleased = errors.New("already released")

	// ErrInternal is returned when a panic was recovered at the API
	// boundary.
	ErrInternal = errors.New("internal error")
)

// Option configures a container.
type Option func(*config)

type config struct {
	logger    *zap.Logger
	debug     bool
	limits    document.Limits
	maxPixels int
}

func newConfig(opts []Option) *config {
	cfg := &config{
		logger:    zap.NewNop(),
		limits:    document.DefaultLimits(),
		maxPixels: render.DefaultMaxPixels,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLogger sets the logger.  By default, nothing is logged.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug enables detailed log messages from decoding and rendering.
func WithDebug(debug bool) Option {
	return func(c *config) {
		c.debug = debug
	}
}

// WithLimits sets the resource limits for decoding and rendering
// documents.  Zero fields keep their default values.
func WithLimits(l document.Limits) Option {
	return func(c *config) {
		c.limits = l
	}
}

// WithMaxPixels sets the largest number of pixels of an exported image.
func WithMaxPixels(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxPixels = n
		}
	}
}

// debugLogger returns the logger passed to the decoding and rendering
// stages.
func (c *config) debugLogger() *zap.Logger {
	if !c.debug {
		return zap.NewNop()
	}
	return c.logger
}

// Container holds a decoded document.  A Container is never modified
// after it has been created, and all methods are safe for concurrent use.
type Container struct {
	sc  *scene.Scene
	cfg config
}

// Decode decodes a document.
func Decode(buf []byte, opts ...Option) (*Container, error) {
	cfg := newConfig(opts)
	sc, err := document.Decode(buf,
		document.WithLimits(cfg.limits),
		document.WithLogger(cfg.debugLogger()))
	if err != nil {
		return nil, err
	}
	return &Container{sc: sc, cfg: *cfg}, nil
}

// Page returns the intrinsic size of the document.
func (c *Container) Page() (width, height float64) {
	return c.sc.Width, c.sc.Height
}

// Size returns the pixel dimensions of an export at the given scale.
func (c *Container) Size(scale float64) (w, h int, err error) {
	return render.Size(c.sc.Width, c.sc.Height, scale, c.cfg.maxPixels)
}

// Image renders the document at the given scale.
func (c *Container) Image(scale float64) (*image.NRGBA, error) {
	return render.Render(c.sc, scale,
		render.WithMaxPixels(c.cfg.maxPixels),
		render.WithMaxEdges(c.cfg.limits.MaxEdges),
		render.WithLogger(c.cfg.debugLogger()))
}

// Export renders the document at the given scale and encodes the result as
// a PNG image.  The quality, in the range 0 to 100, controls the
// compression effort; see package [seehuhn.de/go/docraster/pngenc].
func (c *Container) Export(scale float64, quality int) ([]byte, error) {
	img, err := c.Image(scale)
	if err != nil {
		return nil, err
	}
	return pngenc.Encode(img, quality)
}

// safely calls f and converts a panic into an error.
func safely(logger *zap.Logger, op string, f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("recovered from panic",
				zap.String("op", op),
				zap.Any("panic", r),
				zap.Stack("stack"))
			err = fmt.Errorf("%s: %w: %v", op, ErrInternal, r)
		}
	}()
	return f()
}
