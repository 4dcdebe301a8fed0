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

// Package render paints a scene into a pixel buffer.
//
// Items are composited in order using source-over with premultiplied
// float32 samples.  The result is quantized once, at the end, into an
// [image.NRGBA]: 8 bits per channel, straight (non-premultiplied) alpha,
// rows from top to bottom.
//
// The output of [Render] only depends on its arguments: rendering the same
// scene at the same scale twice gives identical pixels.
package render

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"go.uber.org/zap"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/docraster/raster"
	"seehuhn.de/go/docraster/scene"
)

var (
	// ErrInvalidScale is returned for scale factors which are not finite
	// and positive.
	ErrInvalidScale = errors.New("scale must be finite and positive")

	// ErrEmptyRaster is returned if the output would have no pixels.
	ErrEmptyRaster = errors.New("empty raster")

	// ErrTooLarge is returned if the output would exceed the pixel limit.
	ErrTooLarge = errors.New("raster too large")

	// ErrTooComplex is returned if a single fill or stroke needs more
	// line segments than allowed by [WithMaxEdges].
	ErrTooComplex = raster.ErrTooComplex
)

// DefaultMaxPixels is the default limit for the number of output pixels.
const DefaultMaxPixels = 1 << 24

// Option configures Render.
type Option func(*config)

type config struct {
	maxPixels int
	maxEdges  int
	logger    *zap.Logger
}

// WithMaxPixels sets the largest allowed number of output pixels.
func WithMaxPixels(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxPixels = n
		}
	}
}

// WithMaxEdges sets the largest number of line segments which may be
// generated for a single fill or stroke.
func WithMaxEdges(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxEdges = n
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

// Size returns the pixel dimensions of a page of the given size, rendered
// at the given scale.  These are ceil(width*scale) and ceil(height*scale).
func Size(width, height, scale float64, maxPixels int) (w, h int, err error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return 0, 0, fmt.Errorf("%w: %g", ErrInvalidScale, scale)
	}
	fw := math.Ceil(width * scale)
	fh := math.Ceil(height * scale)
	if !(fw >= 1 && fh >= 1) {
		return 0, 0, fmt.Errorf("%w: %gx%g at scale %g", ErrEmptyRaster, width, height, scale)
	}
	if fw*fh > float64(maxPixels) {
		return 0, 0, fmt.Errorf("%w: %.0fx%.0f pixels", ErrTooLarge, fw, fh)
	}
	return int(fw), int(fh), nil
}

var rasterizers = sync.Pool{
	New: func() any {
		return raster.New(rect.Rect{})
	},
}

// Render paints the scene at the given scale.  One document unit becomes
// scale pixels.
func Render(sc *scene.Scene, scale float64, opts ...Option) (*image.NRGBA, error) {
	cfg := &config{
		maxPixels: DefaultMaxPixels,
		maxEdges:  raster.DefaultMaxEdges,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	w, h, err := Size(sc.Width, sc.Height, scale, cfg.maxPixels)
	if err != nil {
		return nil, err
	}
	cfg.logger.Debug("render",
		zap.Int("width", w), zap.Int("height", h), zap.Float64("scale", scale))

	rz := rasterizers.Get().(*raster.Rasterizer)
	defer rasterizers.Put(rz)

	r := &renderer{rz: rz, log: cfg.logger, maxEdges: cfg.maxEdges}
	c := newCanvas(w, h)
	base := matrix.Scale(scale, scale)
	if sc.Background != nil {
		r.fill(c, page(sc.Width, sc.Height), raster.NonZero, sc.Background, base)
		if r.err != nil {
			return nil, fmt.Errorf("background: %w", r.err)
		}
	}
	for i, item := range sc.Items {
		r.item(c, item, base)
		if r.err != nil {
			return nil, fmt.Errorf("item %d: %w", i, r.err)
		}
	}
	return c.nrgba(), nil
}

func page(w, h float64) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: w, Y: 0}).
		LineTo(vec.Vec2{X: w, Y: h}).
		LineTo(vec.Vec2{X: 0, Y: h}).
		Close()
}

type renderer struct {
	rz       *raster.Rasterizer
	log      *zap.Logger
	maxEdges int

	// err is the first error from the rasterizer.  Once it is set,
	// nothing more is painted.
	err error
}

// item paints one item.  The matrix ctm maps the coordinate system of the
// item's parent to device space.
func (r *renderer) item(dst *canvas, item scene.Item, ctm matrix.Matrix) {
	if r.err != nil {
		return
	}
	var eff *scene.Effects
	var m matrix.Matrix
	switch item := item.(type) {
	case *scene.Shape:
		eff, m = &item.Effects, item.Transform
	case *scene.Image:
		eff, m = &item.Effects, item.Transform
	case *scene.Group:
		eff, m = &item.Effects, item.Transform
	default:
		return
	}
	if eff.Opacity <= 0 {
		return
	}
	if m.IsZero() {
		m = matrix.Identity
	}
	m = m.Mul(ctm)
	if singular(m) {
		r.log.Debug("skipping item with singular transformation")
		return
	}

	if eff.Plain() {
		r.draw(dst, item, m)
		return
	}

	layer := newCanvas(dst.w, dst.h)
	r.draw(layer, item, m)
	if r.err != nil {
		return
	}

	k := lengthScale(ctm)
	if eff.Blur > 0 {
		blurCanvas(layer, eff.Blur*k)
	}
	if sh := eff.Shadow; sh != nil {
		dx := ctm[0]*sh.OffsetX + ctm[2]*sh.OffsetY
		dy := ctm[1]*sh.OffsetX + ctm[3]*sh.OffsetY
		shadow := shadowOf(layer, sh.Color, dx, dy)
		if sh.Blur > 0 {
			blurCanvas(shadow, sh.Blur*k)
		}
		dst.composite(shadow, eff.Opacity)
	}
	dst.composite(layer, eff.Opacity)
}

// draw paints the item without its effects.  The matrix m maps the item's
// own coordinate system to device space.
func (r *renderer) draw(dst *canvas, item scene.Item, m matrix.Matrix) {
	switch item := item.(type) {
	case *scene.Shape:
		if item.Fill != nil {
			rule := raster.NonZero
			if item.Fill.Rule == scene.EvenOdd {
				rule = raster.EvenOdd
			}
			r.fill(dst, item.Path, rule, item.Fill.Paint, m)
		}
		if item.Stroke != nil && item.Stroke.Width > 0 {
			r.stroke(dst, item.Path, item.Stroke, m)
		}
	case *scene.Image:
		drawImage(dst, item, m)
	case *scene.Group:
		for _, child := range item.Items {
			r.item(dst, child, m)
		}
	}
}

func (r *renderer) fill(dst *canvas, p *path.Data, rule raster.FillRule, paint scene.Paint, m matrix.Matrix) {
	if r.err != nil {
		return
	}
	sh := newShader(paint, m)
	r.rz.Reset(dst.clip())
	r.rz.CTM = m
	r.rz.MaxEdges = r.maxEdges
	r.err = r.rz.Fill(p, rule, func(y, xMin int, coverage []float32) {
		dst.paintSpan(y, xMin, coverage, sh)
	})
}

func (r *renderer) stroke(dst *canvas, p *path.Data, st *scene.Stroke, m matrix.Matrix) {
	if r.err != nil {
		return
	}
	sh := newShader(st.Paint, m)
	r.rz.Reset(dst.clip())
	r.rz.CTM = m
	r.rz.MaxEdges = r.maxEdges
	r.rz.Width = st.Width
	r.rz.Cap = st.Cap
	r.rz.Join = st.Join
	r.rz.MiterLimit = st.MiterLimit
	r.rz.Dash = st.Dash
	r.rz.DashPhase = st.DashPhase
	r.err = r.rz.Stroke(p, func(y, xMin int, coverage []float32) {
		dst.paintSpan(y, xMin, coverage, sh)
	})
}
