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
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/docraster/scene"
)

// builder converts the JSON layers of a document into scene items.
type builder struct {
	assets   *assets
	maxDepth int
}

func (b *builder) layers(in []layerJSON, depth int) ([]scene.Item, error) {
	if depth > b.maxDepth {
		return nil, fmt.Errorf("%w: groups nested more than %d levels deep",
			ErrTooLarge, b.maxDepth)
	}

	items := make([]scene.Item, 0, len(in))
	for i := range in {
		l := &in[i]
		if l.Hidden {
			continue
		}
		item, err := b.layer(l, depth)
		if err != nil {
			if l.Name != "" {
				return nil, fmt.Errorf("layer %d (%q): %w", i, l.Name, err)
			}
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (b *builder) layer(l *layerJSON, depth int) (scene.Item, error) {
	eff, err := effects(l)
	if err != nil {
		return nil, err
	}
	m, err := transform(l.Transform)
	if err != nil {
		return nil, err
	}

	switch l.Type {
	case "group":
		items, err := b.layers(l.Layers, depth+1)
		if err != nil {
			return nil, err
		}
		return &scene.Group{Items: items, Transform: m, Effects: eff}, nil

	case "image":
		return b.image(l, m, eff)

	case "path", "rect", "ellipse", "text":
		p, err := shapePath(l)
		if err != nil {
			return nil, err
		}
		sh := &scene.Shape{Path: p, Transform: m, Effects: eff}
		if l.Fill != nil {
			sh.Fill, err = fill(l.Fill)
			if err != nil {
				return nil, err
			}
		}
		if l.Stroke != nil {
			sh.Stroke, err = stroke(l.Stroke)
			if err != nil {
				return nil, err
			}
		}
		if sh.Fill == nil && sh.Stroke == nil {
			sh.Fill = &scene.Fill{Paint: scene.RGBA(0, 0, 0, 1)}
		}
		return sh, nil

	case "":
		return nil, malformed("layer without type")
	default:
		return nil, malformed("unknown layer type %q", l.Type)
	}
}

func shapePath(l *layerJSON) (*path.Data, error) {
	switch l.Type {
	case "path":
		if l.D == nil {
			return nil, malformed("path without \"d\"")
		}
		return ParsePath(*l.D)

	case "rect":
		x, y := value(l.X, 0), value(l.Y, 0)
		w, err := required("width", l.Width)
		if err != nil {
			return nil, err
		}
		h, err := required("height", l.Height)
		if err != nil {
			return nil, err
		}
		r := value(l.Radius, 0)
		if !finite(x, y, r) || r < 0 {
			return nil, malformed("invalid rectangle")
		}
		return RectPath(x, y, w, h, r), nil

	case "ellipse":
		cx, cy := value(l.CX, 0), value(l.CY, 0)
		rx, err := required("rx", l.RX)
		if err != nil {
			return nil, err
		}
		ry, err := required("ry", l.RY)
		if err != nil {
			return nil, err
		}
		if !finite(cx, cy) {
			return nil, malformed("invalid ellipse center")
		}
		return EllipsePath(cx, cy, rx, ry), nil

	default: // text
		if l.Text == nil {
			return nil, malformed("text layer without \"text\"")
		}
		style := TextStyle{
			Font: l.Font,
			Size: value(l.Size, 16),
		}
		if style.Font == "" {
			style.Font = DefaultFont
		}
		style.LineHeight = value(l.LineHeight, 1.2*style.Size)
		switch l.Align {
		case "", "left":
			style.Align = AlignLeft
		case "center":
			style.Align = AlignCenter
		case "right":
			style.Align = AlignRight
		default:
			return nil, malformed("unknown text alignment %q", l.Align)
		}
		x, y := value(l.X, 0), value(l.Y, 0)
		if !finite(x, y, style.LineHeight) || !(style.Size > 0) || math.IsInf(style.Size, 0) {
			return nil, malformed("invalid text geometry")
		}
		return TextPath(*l.Text, x, y, style)
	}
}

func (b *builder) image(l *layerJSON, m matrix.Matrix, eff scene.Effects) (scene.Item, error) {
	img, err := b.assets.image(l.Ref)
	if err != nil {
		return nil, err
	}
	x, y := value(l.X, 0), value(l.Y, 0)
	w := value(l.Width, float64(img.Bounds().Dx()))
	h := value(l.Height, float64(img.Bounds().Dy()))
	if !finite(x, y, w, h) || !(w > 0 && h > 0) {
		return nil, malformed("invalid image rectangle")
	}
	return &scene.Image{
		Img:       img,
		Rect:      rect.Rect{LLx: x, LLy: y, URx: x + w, URy: y + h},
		Transform: m,
		Effects:   eff,
	}, nil
}

func effects(l *layerJSON) (scene.Effects, error) {
	eff := scene.Effects{
		Opacity: value(l.Opacity, 1),
		Blur:    value(l.Blur, 0),
	}
	if !(eff.Opacity >= 0 && eff.Opacity <= 1) {
		return eff, malformed("opacity %g not in [0, 1]", eff.Opacity)
	}
	if !(eff.Blur >= 0) || math.IsInf(eff.Blur, 0) {
		return eff, malformed("invalid blur radius %g", eff.Blur)
	}

	if s := l.Shadow; s != nil {
		col := scene.RGBA(0, 0, 0, 1)
		if s.Color != nil {
			var err error
			col, err = ParseColor(*s.Color)
			if err != nil {
				return eff, err
			}
		}
		if !finite(s.X, s.Y, s.Blur) || s.Blur < 0 {
			return eff, malformed("invalid shadow")
		}
		eff.Shadow = &scene.Shadow{Color: col, OffsetX: s.X, OffsetY: s.Y, Blur: s.Blur}
	}
	return eff, nil
}

func transform(t []float64) (matrix.Matrix, error) {
	switch len(t) {
	case 0:
		return matrix.Identity, nil
	case 6:
		var m matrix.Matrix
		copy(m[:], t)
		if !finite(t...) {
			return m, malformed("transform has non-finite entries")
		}
		return m, nil
	default:
		return matrix.Matrix{}, malformed("transform needs 6 entries, not %d", len(t))
	}
}

func fill(f *fillJSON) (*scene.Fill, error) {
	p, err := paint(&f.paintJSON)
	if err != nil {
		return nil, err
	}
	res := &scene.Fill{Paint: p}
	switch f.Rule {
	case "", "nonzero":
		res.Rule = scene.NonZero
	case "evenodd":
		res.Rule = scene.EvenOdd
	default:
		return nil, malformed("unknown fill rule %q", f.Rule)
	}
	return res, nil
}

func stroke(s *strokeJSON) (*scene.Stroke, error) {
	p, err := paint(&s.paintJSON)
	if err != nil {
		return nil, err
	}
	res := scene.DefaultStroke()
	res.Paint = p
	res.Width = value(s.Width, 1)
	res.MiterLimit = value(s.MiterLimit, 10)
	res.DashPhase = s.DashPhase
	if !finite(res.Width, res.MiterLimit, res.DashPhase) || res.Width < 0 || res.MiterLimit < 1 {
		return nil, malformed("invalid stroke parameters")
	}

	switch s.Cap {
	case "", "butt":
		res.Cap = graphics.LineCapButt
	case "round":
		res.Cap = graphics.LineCapRound
	case "square":
		res.Cap = graphics.LineCapSquare
	default:
		return nil, malformed("unknown line cap %q", s.Cap)
	}
	switch s.Join {
	case "", "miter":
		res.Join = graphics.LineJoinMiter
	case "round":
		res.Join = graphics.LineJoinRound
	case "bevel":
		res.Join = graphics.LineJoinBevel
	default:
		return nil, malformed("unknown line join %q", s.Join)
	}

	var total float64
	for _, d := range s.Dash {
		if !(d >= 0) || math.IsInf(d, 0) {
			return nil, malformed("invalid dash length %g", d)
		}
		total += d
	}
	if total > 0 {
		res.Dash = s.Dash
	}
	return res, nil
}

// paint converts a color or gradient.  A missing color means opaque black.
func paint(p *paintJSON) (scene.Paint, error) {
	alpha := value(p.Opacity, 1)
	if !(alpha >= 0 && alpha <= 1) {
		return nil, malformed("opacity %g not in [0, 1]", alpha)
	}

	if g := p.Gradient; g != nil {
		if p.Color != nil {
			return nil, malformed("paint has both color and gradient")
		}
		return gradient(g, alpha)
	}

	col := scene.RGBA(0, 0, 0, 1)
	if p.Color != nil {
		var err error
		col, err = ParseColor(*p.Color)
		if err != nil {
			return nil, err
		}
	}
	return col.WithAlpha(alpha), nil
}

func gradient(g *gradientJSON, alpha float64) (scene.Paint, error) {
	if len(g.Stops) == 0 {
		return nil, malformed("gradient without stops")
	}
	stops := make([]scene.Stop, len(g.Stops))
	prev := 0.0
	for i, s := range g.Stops {
		if s.Offset == nil {
			return nil, malformed("gradient stop %d without offset", i)
		}
		off := *s.Offset
		if !(off >= 0 && off <= 1) || off < prev {
			return nil, malformed("gradient stop %d: offset %g out of order", i, off)
		}
		prev = off

		col, err := ParseColor(s.Color)
		if err != nil {
			return nil, err
		}
		k := value(s.Opacity, 1)
		if !(k >= 0 && k <= 1) {
			return nil, malformed("gradient stop %d: opacity %g not in [0, 1]", i, k)
		}
		stops[i] = scene.Stop{Offset: off, Color: col.WithAlpha(k * alpha)}
	}

	switch g.Type {
	case "linear":
		if g.From == nil || g.To == nil {
			return nil, malformed("linear gradient needs \"from\" and \"to\"")
		}
		from, to := point(*g.From), point(*g.To)
		if !finite(from.X, from.Y, to.X, to.Y) {
			return nil, malformed("linear gradient has non-finite end points")
		}
		return &scene.LinearGradient{From: from, To: to, Stops: stops}, nil
	case "radial":
		if g.Center == nil || g.Radius == nil {
			return nil, malformed("radial gradient needs \"center\" and \"radius\"")
		}
		c, r := point(*g.Center), *g.Radius
		if !finite(c.X, c.Y, r) || r < 0 {
			return nil, malformed("invalid radial gradient geometry")
		}
		return &scene.RadialGradient{Center: c, Radius: r, Stops: stops}, nil
	default:
		return nil, malformed("unknown gradient type %q", g.Type)
	}
}

func point(p [2]float64) vec.Vec2 {
	return vec.Vec2{X: p[0], Y: p[1]}
}

func value(p *float64, dflt float64) float64 {
	if p == nil {
		return dflt
	}
	return *p
}

func required(name string, p *float64) (float64, error) {
	if p == nil {
		return 0, malformed("missing %q", name)
	}
	if !(*p >= 0) || math.IsInf(*p, 0) {
		return 0, malformed("invalid %q: %g", name, *p)
	}
	return *p, nil
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
