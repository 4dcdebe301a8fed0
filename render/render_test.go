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
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/docraster/scene"
)

var (
	red  = scene.RGBA(1, 0, 0, 1)
	blue = scene.RGBA(0, 0, 1, 1)

	opaqueRed  = color.NRGBA{R: 255, A: 255}
	opaqueBlue = color.NRGBA{B: 255, A: 255}
)

func box(x0, y0, x1, y1 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: x0, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y1}).
		LineTo(vec.Vec2{X: x0, Y: y1}).
		Close()
}

func filled(p *path.Data, paint scene.Paint) *scene.Shape {
	return &scene.Shape{
		Path:      p,
		Transform: matrix.Identity,
		Fill:      &scene.Fill{Paint: paint},
		Effects:   scene.Effects{Opacity: 1},
	}
}

func TestSize(t *testing.T) {
	cases := []struct {
		name          string
		width, height float64
		scale         float64
		w, h          int
		err           error
	}{
		{"unit", 100, 100, 1, 100, 100, nil},
		{"double", 100, 100, 2, 200, 200, nil},
		{"fraction", 10.2, 3.5, 1, 11, 4, nil},
		{"tiny", 0.001, 0.001, 1, 1, 1, nil},
		{"zero_scale", 100, 100, 0, 0, 0, ErrInvalidScale},
		{"negative_scale", 100, 100, -1, 0, 0, ErrInvalidScale},
		{"nan_scale", 100, 100, math.NaN(), 0, 0, ErrInvalidScale},
		{"inf_scale", 100, 100, math.Inf(1), 0, 0, ErrInvalidScale},
		{"underflow", 1e-300, 1, 1e-300, 0, 0, ErrEmptyRaster},
		{"too_large", 1e6, 1e6, 1, 0, 0, ErrTooLarge},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, h, err := Size(c.width, c.height, c.scale, DefaultMaxPixels)
			if c.err != nil {
				assert.ErrorIs(t, err, c.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.w, w)
			assert.Equal(t, c.h, h)
		})
	}
}

// TestRedSquare renders a page which is completely covered by an opaque
// red square.
func TestRedSquare(t *testing.T) {
	sc := &scene.Scene{
		Width:  100,
		Height: 100,
		Items:  []scene.Item{filled(box(0, 0, 100, 100), red)},
	}
	for _, scale := range []float64{1, 2, 0.5} {
		img, err := Render(sc, scale)
		require.NoError(t, err)

		n := int(100 * scale)
		require.Equal(t, image.Rect(0, 0, n, n), img.Bounds())
		for y := range n {
			for x := range n {
				if c := img.NRGBAAt(x, y); c != opaqueRed {
					t.Fatalf("scale %g: pixel (%d,%d) = %v", scale, x, y, c)
				}
			}
		}
	}
}

func TestRenderErrors(t *testing.T) {
	sc := &scene.Scene{Width: 10, Height: 10}

	_, err := Render(sc, 0)
	assert.ErrorIs(t, err, ErrInvalidScale)

	_, err = Render(sc, 100, WithMaxPixels(50))
	assert.ErrorIs(t, err, ErrTooLarge)

	bad := &scene.Scene{Width: -1, Height: 10}
	_, err = Render(bad, 1)
	assert.ErrorIs(t, err, scene.ErrInvalid)
}

func TestDeterministic(t *testing.T) {
	sc := &scene.Scene{
		Width:      30,
		Height:     30,
		Background: scene.RGBA(1, 1, 1, 1),
		Items: []scene.Item{
			filled(box(3.3, 4.1, 22.7, 19.9), scene.RGBA(0.2, 0.4, 0.6, 0.7)),
			&scene.Shape{
				Path:      box(5, 5, 25, 25),
				Transform: matrix.RotateDeg(10),
				Stroke: &scene.Stroke{
					Paint: blue, Width: 2.5, Cap: graphics.LineCapRound,
					Join: graphics.LineJoinRound, MiterLimit: 10, Dash: []float64{4, 2},
				},
				Effects: scene.Effects{Opacity: 0.8, Blur: 1},
			},
		},
	}
	a, err := Render(sc, 1.7)
	require.NoError(t, err)
	b, err := Render(sc, 1.7)
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestBackground(t *testing.T) {
	sc := &scene.Scene{Width: 4, Height: 4, Background: blue}
	img, err := Render(sc, 1)
	require.NoError(t, err)
	assert.Equal(t, opaqueBlue, img.NRGBAAt(0, 0))
	assert.Equal(t, opaqueBlue, img.NRGBAAt(3, 3))
}

func TestSourceOver(t *testing.T) {
	sc := &scene.Scene{
		Width:      4,
		Height:     4,
		Background: scene.RGBA(1, 1, 1, 1),
		Items:      []scene.Item{filled(box(0, 0, 4, 4), scene.RGBA(0, 0, 0, 0.5))},
	}
	img, err := Render(sc, 1)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 128, G: 128, B: 128, A: 255}, img.NRGBAAt(1, 1))
}

func TestTransparentResult(t *testing.T) {
	sc := &scene.Scene{
		Width:  4,
		Height: 4,
		Items:  []scene.Item{filled(box(0, 0, 4, 4), scene.RGBA(0, 1, 0, 0.5))},
	}
	img, err := Render(sc, 1)
	require.NoError(t, err)

	// straight alpha: the color channels are not scaled by alpha
	assert.Equal(t, color.NRGBA{G: 255, A: 128}, img.NRGBAAt(2, 2))
}

func TestGroupOpacity(t *testing.T) {
	sc := &scene.Scene{
		Width:  30,
		Height: 30,
		Items: []scene.Item{
			&scene.Group{
				Effects: scene.Effects{Opacity: 0.5},
				Items: []scene.Item{
					filled(box(0, 0, 20, 20), red),
					filled(box(10, 10, 30, 30), red),
				},
			},
		},
	}
	img, err := Render(sc, 1)
	require.NoError(t, err)

	half := color.NRGBA{R: 255, A: 128}
	assert.Equal(t, half, img.NRGBAAt(5, 5))
	assert.Equal(t, half, img.NRGBAAt(15, 15), "overlap must not be darker")
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(25, 2))
}

func TestGroupTransform(t *testing.T) {
	sc := &scene.Scene{
		Width:  40,
		Height: 20,
		Items: []scene.Item{
			&scene.Group{
				Transform: matrix.Matrix{1, 0, 0, 1, 20, 0},
				Effects:   scene.Effects{Opacity: 1},
				Items:     []scene.Item{filled(box(0, 0, 10, 10), blue)},
			},
		},
	}
	img, err := Render(sc, 2)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(10, 10))
	assert.Equal(t, opaqueBlue, img.NRGBAAt(50, 10))
}

func TestInvisible(t *testing.T) {
	hidden := filled(box(0, 0, 10, 10), red)
	hidden.Opacity = 0
	singular := filled(box(0, 0, 10, 10), red)
	singular.Transform = matrix.Matrix{1, 0, 1, 0, 0, 0}

	sc := &scene.Scene{Width: 10, Height: 10, Items: []scene.Item{hidden, singular}}
	img, err := Render(sc, 1)
	require.NoError(t, err)
	for _, v := range img.Pix {
		require.Zero(t, v)
	}
}

func TestLinearGradient(t *testing.T) {
	g := &scene.LinearGradient{
		From: vec.Vec2{X: 0, Y: 0},
		To:   vec.Vec2{X: 100, Y: 0},
		Stops: []scene.Stop{
			{Offset: 0, Color: scene.RGBA(0, 0, 0, 1)},
			{Offset: 1, Color: scene.RGBA(1, 1, 1, 1)},
		},
	}
	sc := &scene.Scene{Width: 100, Height: 10, Items: []scene.Item{filled(box(0, 0, 100, 10), g)}}

	img, err := Render(sc, 1)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 1, G: 1, B: 1, A: 255}, img.NRGBAAt(0, 5))
	assert.Equal(t, color.NRGBA{R: 129, G: 129, B: 129, A: 255}, img.NRGBAAt(50, 5))

	// gradient coordinates scale with the page
	img2, err := Render(sc, 2)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 128, G: 128, B: 128, A: 255}, img2.NRGBAAt(100, 5))
}

func TestRadialGradient(t *testing.T) {
	g := &scene.RadialGradient{
		Center: vec.Vec2{X: 10, Y: 10},
		Radius: 5,
		Stops: []scene.Stop{
			{Offset: 0, Color: red},
			{Offset: 1, Color: blue},
		},
	}
	sc := &scene.Scene{Width: 20, Height: 20, Items: []scene.Item{filled(box(0, 0, 20, 20), g)}}
	img, err := Render(sc, 1)
	require.NoError(t, err)

	assert.Equal(t, opaqueBlue, img.NRGBAAt(0, 0))
	center := img.NRGBAAt(10, 10)
	assert.Greater(t, center.R, uint8(200))
	assert.Less(t, center.B, uint8(50))
}

func TestStroke(t *testing.T) {
	line := (&path.Data{}).MoveTo(vec.Vec2{X: 2, Y: 10}).LineTo(vec.Vec2{X: 18, Y: 10})
	sc := &scene.Scene{
		Width:  20,
		Height: 20,
		Items: []scene.Item{
			&scene.Shape{
				Path:      line,
				Transform: matrix.Identity,
				Stroke:    &scene.Stroke{Paint: blue, Width: 4, MiterLimit: 10},
				Effects:   scene.Effects{Opacity: 1},
			},
		},
	}
	img, err := Render(sc, 1)
	require.NoError(t, err)
	assert.Equal(t, opaqueBlue, img.NRGBAAt(10, 9))
	assert.Equal(t, opaqueBlue, img.NRGBAAt(10, 11))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(10, 5))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(0, 10))
}

func TestShadow(t *testing.T) {
	s := filled(box(2, 2, 8, 8), red)
	s.Shadow = &scene.Shadow{Color: blue, OffsetX: 10, OffsetY: 10}
	sc := &scene.Scene{Width: 20, Height: 20, Items: []scene.Item{s}}

	img, err := Render(sc, 1)
	require.NoError(t, err)
	assert.Equal(t, opaqueRed, img.NRGBAAt(5, 5))
	assert.Equal(t, opaqueBlue, img.NRGBAAt(15, 15))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(15, 5))

	// the shadow offset is scaled with the page
	img2, err := Render(sc, 2)
	require.NoError(t, err)
	assert.Equal(t, opaqueBlue, img2.NRGBAAt(30, 30))
}

func TestBlur(t *testing.T) {
	s := filled(box(10, 10, 30, 30), scene.RGBA(0, 0, 0, 1))
	s.Blur = 3
	sc := &scene.Scene{Width: 40, Height: 40, Items: []scene.Item{s}}

	img, err := Render(sc, 1)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 40), img.Bounds())
	assert.GreaterOrEqual(t, img.NRGBAAt(20, 20).A, uint8(250))
	edge := img.NRGBAAt(10, 20).A
	assert.Greater(t, edge, uint8(0))
	assert.Less(t, edge, uint8(255))
	assert.Equal(t, uint8(0), img.NRGBAAt(1, 1).A)
	assert.Greater(t, img.NRGBAAt(9, 20).A, uint8(0), "blur spreads outside the shape")
}

func TestImage(t *testing.T) {
	swatch := color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			src.SetNRGBA(x, y, swatch)
		}
	}
	sc := &scene.Scene{
		Width:  20,
		Height: 20,
		Items: []scene.Item{
			&scene.Image{
				Img:       src,
				Rect:      rect.Rect{LLx: 5, LLy: 5, URx: 15, URy: 15},
				Transform: matrix.Identity,
				Effects:   scene.Effects{Opacity: 1},
			},
		},
	}
	img, err := Render(sc, 1)
	require.NoError(t, err)

	got := img.NRGBAAt(10, 10)
	assert.InDelta(t, swatch.R, got.R, 1)
	assert.InDelta(t, swatch.G, got.G, 1)
	assert.InDelta(t, swatch.B, got.B, 1)
	assert.Equal(t, uint8(255), got.A)
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(2, 2))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(17, 17))
}

// TestNestedTransforms checks the order in which the transformations of
// nested items are applied: the child's own transformation comes first.
func TestNestedTransforms(t *testing.T) {
	child := filled(box(0, 0, 5, 5), blue)
	child.Transform = matrix.Translate(5, 0)
	sc := &scene.Scene{
		Width:  40,
		Height: 20,
		Items: []scene.Item{
			&scene.Group{
				Transform: matrix.Scale(2, 2),
				Effects:   scene.Effects{Opacity: 1},
				Items:     []scene.Item{child},
			},
		},
	}
	img, err := Render(sc, 1)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(5, 5))
	assert.Equal(t, opaqueBlue, img.NRGBAAt(15, 5))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(25, 5))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(15, 15))
}

func TestSingularShader(t *testing.T) {
	g := &scene.LinearGradient{
		To: vec.Vec2{X: 1},
		Stops: []scene.Stop{
			{Offset: 0, Color: red},
			{Offset: 1, Color: blue},
		},
	}
	sh := newShader(g, matrix.Matrix{1, 2, 2, 4, 0, 0})
	assert.Equal(t, solid(blue.Premultiplied()), sh)

	sh = newShader(g, matrix.Scale(2, 2))
	assert.Equal(t, red.Premultiplied(), sh.at(-5, 0))
	assert.Equal(t, blue.Premultiplied(), sh.at(5, 0))

	assert.True(t, singular(matrix.Matrix{1, 2, 2, 4, 0, 0}))
	assert.True(t, singular(matrix.Matrix{math.Inf(1), 0, 0, 1, 0, 0}))
	assert.False(t, singular(matrix.RotateDeg(30)))
	assert.InDelta(t, 3, lengthScale(matrix.Matrix{3, 0, 0, 3, 1, 1}), 1e-12)
}

func TestTooComplex(t *testing.T) {
	circle := (&path.Data{}).
		MoveTo(vec.Vec2{X: 35, Y: 20}).
		CubeTo(vec.Vec2{X: 35, Y: 11.7}, vec.Vec2{X: 28.3, Y: 5}, vec.Vec2{X: 20, Y: 5}).
		CubeTo(vec.Vec2{X: 11.7, Y: 5}, vec.Vec2{X: 5, Y: 11.7}, vec.Vec2{X: 5, Y: 20}).
		Close()
	sc := &scene.Scene{
		Width:  40,
		Height: 40,
		Items: []scene.Item{
			filled(box(0, 0, 40, 40), blue),
			filled(circle, red),
		},
	}

	_, err := Render(sc, 1, WithMaxEdges(6))
	assert.ErrorIs(t, err, ErrTooComplex)

	_, err = Render(sc, 1)
	assert.NoError(t, err)
}

// TestLargeBlur checks that blur radii far beyond the canvas size are
// handled on a reduced canvas.
func TestLargeBlur(t *testing.T) {
	s := filled(box(40, 40, 60, 60), scene.RGBA(0, 0, 0, 1))
	s.Blur = 1e5
	sc := &scene.Scene{Width: 100, Height: 100, Items: []scene.Item{s}}

	img, err := Render(sc, 1)
	require.NoError(t, err)

	centre := img.NRGBAAt(50, 50).A
	assert.Greater(t, centre, uint8(0))
	assert.Less(t, centre, uint8(128))
	assert.Greater(t, img.NRGBAAt(30, 50).A, uint8(0))

	// a medium radius is also computed on a reduced canvas
	s.Blur = 40
	img, err = Render(sc, 1)
	require.NoError(t, err)
	assert.Greater(t, img.NRGBAAt(50, 50).A, img.NRGBAAt(30, 50).A)
	assert.Greater(t, img.NRGBAAt(30, 50).A, uint8(0))
}

func BenchmarkRender(b *testing.B) {
	sc := &scene.Scene{
		Width:      200,
		Height:     200,
		Background: scene.RGBA(1, 1, 1, 1),
	}
	for i := range 20 {
		x := float64(i * 9)
		sc.Items = append(sc.Items, filled(box(x, x, x+30, x+30), scene.RGBA(0, 0, 1, 0.3)))
	}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := Render(sc, 2); err != nil {
			b.Fatal(err)
		}
	}
}
