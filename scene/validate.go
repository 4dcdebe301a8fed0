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

package scene

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
)

// ErrInvalid is returned by Validate.  The returned errors wrap ErrInvalid
// and name the offending item.
var ErrInvalid = errors.New("invalid scene")

// MaxDepth is the maximal nesting depth of groups.
const MaxDepth = 64

// Validate checks that the scene satisfies the invariants documented on
// the scene types.  Renderers may assume that a scene which passes
// Validate is well-formed.
func (s *Scene) Validate() error {
	if !positive(s.Width) || !positive(s.Height) {
		return fmt.Errorf("%w: page size %gx%g", ErrInvalid, s.Width, s.Height)
	}
	if s.Background != nil {
		if err := checkPaint(s.Background); err != nil {
			return fmt.Errorf("%w: background: %v", ErrInvalid, err)
		}
	}
	return checkItems(s.Items, "item", 0)
}

func checkItems(items []Item, prefix string, depth int) error {
	if depth > MaxDepth {
		return fmt.Errorf("%w: %s: groups nested too deeply", ErrInvalid, prefix)
	}
	for i, item := range items {
		where := fmt.Sprintf("%s %d", prefix, i)
		if err := checkItem(item, where, depth); err != nil {
			return err
		}
	}
	return nil
}

func checkItem(item Item, where string, depth int) error {
	var err error
	switch item := item.(type) {
	case *Shape:
		err = checkShape(item)
	case *Image:
		err = checkImage(item)
	case *Group:
		if err = checkEffects(&item.Effects); err == nil {
			err = checkMatrix(item.Transform)
		}
		if err == nil {
			return checkItems(item.Items, where+"/item", depth+1)
		}
	case nil:
		err = errors.New("missing item")
	default:
		err = fmt.Errorf("unknown item type %T", item)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, where, err)
	}
	return nil
}

func checkShape(s *Shape) error {
	if s.Path == nil {
		return errors.New("missing path")
	}
	for _, c := range s.Path.Coords {
		if !finite(c.X) || !finite(c.Y) {
			return errors.New("path coordinate is not finite")
		}
	}
	if err := checkMatrix(s.Transform); err != nil {
		return err
	}
	if s.Fill != nil {
		if s.Fill.Rule > EvenOdd {
			return fmt.Errorf("unknown fill rule %d", s.Fill.Rule)
		}
		if err := checkPaint(s.Fill.Paint); err != nil {
			return fmt.Errorf("fill: %w", err)
		}
	}
	if st := s.Stroke; st != nil {
		if err := checkPaint(st.Paint); err != nil {
			return fmt.Errorf("stroke: %w", err)
		}
		if !finite(st.Width) || st.Width < 0 {
			return fmt.Errorf("invalid line width %g", st.Width)
		}
		if !finite(st.MiterLimit) || st.MiterLimit < 1 {
			return fmt.Errorf("invalid miter limit %g", st.MiterLimit)
		}
		if !finite(st.DashPhase) {
			return errors.New("dash phase is not finite")
		}
		for _, d := range st.Dash {
			if !finite(d) || d < 0 {
				return fmt.Errorf("invalid dash length %g", d)
			}
		}
	}
	return checkEffects(&s.Effects)
}

func checkImage(img *Image) error {
	if img.Img == nil {
		return errors.New("missing image data")
	}
	if img.Img.Rect.Empty() {
		return errors.New("image has no pixels")
	}
	r := img.Rect
	if !finite(r.LLx) || !finite(r.LLy) || !finite(r.URx) || !finite(r.URy) {
		return errors.New("image rectangle is not finite")
	}
	if r.URx <= r.LLx || r.URy <= r.LLy {
		return errors.New("image rectangle is empty")
	}
	if err := checkMatrix(img.Transform); err != nil {
		return err
	}
	return checkEffects(&img.Effects)
}

func checkEffects(e *Effects) error {
	if !finite(e.Opacity) || e.Opacity < 0 || e.Opacity > 1 {
		return fmt.Errorf("opacity %g outside [0, 1]", e.Opacity)
	}
	if !finite(e.Blur) || e.Blur < 0 {
		return fmt.Errorf("invalid blur %g", e.Blur)
	}
	if sh := e.Shadow; sh != nil {
		if !finite(sh.OffsetX) || !finite(sh.OffsetY) {
			return errors.New("shadow offset is not finite")
		}
		if !finite(sh.Blur) || sh.Blur < 0 {
			return fmt.Errorf("invalid shadow blur %g", sh.Blur)
		}
		if err := checkColor(sh.Color); err != nil {
			return fmt.Errorf("shadow: %w", err)
		}
	}
	return nil
}

func checkPaint(p Paint) error {
	switch p := p.(type) {
	case Color:
		return checkColor(p)
	case *LinearGradient:
		if !finite(p.From.X) || !finite(p.From.Y) || !finite(p.To.X) || !finite(p.To.Y) {
			return errors.New("gradient end point is not finite")
		}
		return checkStops(p.Stops)
	case *RadialGradient:
		if !finite(p.Center.X) || !finite(p.Center.Y) {
			return errors.New("gradient center is not finite")
		}
		if !finite(p.Radius) || p.Radius < 0 {
			return fmt.Errorf("invalid gradient radius %g", p.Radius)
		}
		return checkStops(p.Stops)
	case nil:
		return errors.New("missing paint")
	default:
		return fmt.Errorf("unknown paint type %T", p)
	}
}

func checkStops(stops []Stop) error {
	if len(stops) == 0 {
		return errors.New("gradient without stops")
	}
	prev := math.Inf(-1)
	for _, s := range stops {
		if !finite(s.Offset) || s.Offset < prev {
			return errors.New("gradient stops out of order")
		}
		prev = s.Offset
		if err := checkColor(s.Color); err != nil {
			return err
		}
	}
	return nil
}

func checkColor(c Color) error {
	for _, v := range []float64{c.R, c.G, c.B, c.A} {
		if !finite(v) || v < 0 || v > 1 {
			return fmt.Errorf("color component %g outside [0, 1]", v)
		}
	}
	return nil
}

func checkMatrix(m matrix.Matrix) error {
	for _, v := range m {
		if !finite(v) {
			return errors.New("transformation matrix is not finite")
		}
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func positive(x float64) bool {
	return finite(x) && x > 0
}
