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
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

const (
	mv = path.CmdMoveTo
	ln = path.CmdLineTo
	qd = path.CmdQuadTo
	cb = path.CmdCubeTo
	cl = path.CmdClose
)

func v(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

func TestParsePath(t *testing.T) {
	cases := []struct {
		d      string
		cmds   []path.Command
		coords []vec.Vec2
	}{
		{"", nil, nil},
		{"M10 20 L30 40", []path.Command{mv, ln}, []vec.Vec2{v(10, 20), v(30, 40)}},
		{"M10,20,30,40", []path.Command{mv, ln}, []vec.Vec2{v(10, 20), v(30, 40)}},
		{"m10 20 10 0 0 10z", []path.Command{mv, ln, ln, cl}, []vec.Vec2{v(10, 20), v(20, 20), v(20, 30)}},
		{"M0 0 H10 V10 h-10 v-5", []path.Command{mv, ln, ln, ln, ln}, []vec.Vec2{v(0, 0), v(10, 0), v(10, 10), v(0, 10), v(0, 5)}},
		{"M1e1-2.5L.5.5", []path.Command{mv, ln}, []vec.Vec2{v(10, -2.5), v(0.5, 0.5)}},
		{"M0 0 Z L5 5", []path.Command{mv, cl, mv, ln}, []vec.Vec2{v(0, 0), v(0, 0), v(5, 5)}},
		{"M1 1 2 2 Z m1 1 l1 0", []path.Command{mv, ln, cl, mv, ln}, []vec.Vec2{v(1, 1), v(2, 2), v(2, 2), v(3, 2)}},
		{
			"M0 0 C0 10 10 10 10 0 S20 -10 20 0",
			[]path.Command{mv, cb, cb},
			[]vec.Vec2{v(0, 0), v(0, 10), v(10, 10), v(10, 0), v(10, -10), v(20, -10), v(20, 0)},
		},
		{
			"M0 0 s10 10 20 0",
			[]path.Command{mv, cb},
			[]vec.Vec2{v(0, 0), v(0, 0), v(10, 10), v(20, 0)},
		},
		{
			"M0 0 Q5 10 10 0 T20 0",
			[]path.Command{mv, qd, qd},
			[]vec.Vec2{v(0, 0), v(5, 10), v(10, 0), v(15, -10), v(20, 0)},
		},
		{
			"M0 0 q5 10 10 0 t10 0",
			[]path.Command{mv, qd, qd},
			[]vec.Vec2{v(0, 0), v(5, 10), v(10, 0), v(15, -10), v(20, 0)},
		},
		{"M0 0 A0 5 0 0 1 10 0", []path.Command{mv, ln}, []vec.Vec2{v(0, 0), v(10, 0)}},
		{"M0 0 A5 5 0 0 1 0 0", []path.Command{mv}, []vec.Vec2{v(0, 0)}},
	}
	for _, c := range cases {
		t.Run(c.d, func(t *testing.T) {
			p, err := ParsePath(c.d)
			require.NoError(t, err)
			assert.Equal(t, c.cmds, p.Cmds)
			require.Len(t, p.Coords, len(c.coords))
			for i, want := range c.coords {
				assert.InDelta(t, want.X, p.Coords[i].X, 1e-12, "coord %d", i)
				assert.InDelta(t, want.Y, p.Coords[i].Y, 1e-12, "coord %d", i)
			}
		})
	}
}

func TestParseArc(t *testing.T) {
	center := v(10, 0)
	for _, d := range []string{
		"M0 0 A10 10 0 0 1 20 0",
		"M0 0 A10 10 0 1 0 20 0",
		"M0 0 a10 10 0 0 0 20 0",
		"M0 0 A1 1 0 0 1 20 0", // radii are scaled up to fit
	} {
		t.Run(d, func(t *testing.T) {
			p, err := ParsePath(d)
			require.NoError(t, err)
			require.Equal(t, path.CmdMoveTo, p.Cmds[0])
			require.Len(t, p.Cmds, 3, "a half circle needs two quarter arcs")
			k := 1
			for _, cmd := range p.Cmds[1:] {
				require.Equal(t, path.CmdCubeTo, cmd)
				end := p.Coords[k+2]
				assert.InDelta(t, 10, end.Sub(center).Length(), 1e-9)
				k += 3
			}
			assert.Equal(t, v(20, 0), p.Coords[len(p.Coords)-1])
		})
	}
}

// TestArcSweep checks that the sweep flag selects the side of the chord.
func TestArcSweep(t *testing.T) {
	mid := func(d string) vec.Vec2 {
		p, err := ParsePath(d)
		require.NoError(t, err)
		return p.Coords[3] // end point of the first quarter
	}
	a := mid("M0 0 A10 10 0 0 1 20 0")
	b := mid("M0 0 A10 10 0 0 0 20 0")
	assert.InDelta(t, -10, a.Y, 1e-9)
	assert.InDelta(t, 10, b.Y, 1e-9)
}

func TestLargeArc(t *testing.T) {
	small, err := ParsePath("M10 0 A10 10 0 0 1 0 10")
	require.NoError(t, err)
	large, err := ParsePath("M10 0 A10 10 0 1 1 0 10")
	require.NoError(t, err)
	assert.Len(t, small.Cmds, 2)
	assert.GreaterOrEqual(t, len(large.Cmds), 4)

	end := large.Coords[len(large.Coords)-1]
	assert.Equal(t, v(0, 10), end)
}

func TestParsePathErrors(t *testing.T) {
	cases := []struct {
		d      string
		offset int
	}{
		{"L10 10", 0},
		{"10 10", 0},
		{"M10", 3},
		{"M10 x", 4},
		{"M0 0 Z 5", 7},
		{"M0 0 A1 1 0 2 1 5 5", 12},
		{"M 1e999 0", 2},
		{"M0 0 L1 1,", 10},
		{"M0 0 X", 5},
	}
	for _, c := range cases {
		t.Run(c.d, func(t *testing.T) {
			_, err := ParsePath(c.d)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)

			var pe *PathError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, c.offset, pe.Offset)
		})
	}
}

func TestShapes(t *testing.T) {
	r := RectPath(1, 2, 10, 4, 0)
	assert.Equal(t, []path.Command{mv, ln, ln, ln, cl}, r.Cmds)
	assert.Equal(t, []vec.Vec2{v(1, 2), v(11, 2), v(11, 6), v(1, 6)}, r.Coords)

	// the radius is reduced to half the shorter side
	rr := RectPath(0, 0, 10, 4, 100)
	for _, c := range rr.Coords {
		assert.True(t, c.X >= 0 && c.X <= 10 && c.Y >= 0 && c.Y <= 4, "%v", c)
	}
	assert.Equal(t, v(2, 0), rr.Coords[0])

	e := EllipsePath(5, 5, 4, 2)
	assert.Equal(t, []path.Command{mv, cb, cb, cb, cb, cl}, e.Cmds)
	for _, k := range []int{0, 3, 6, 9, 12} {
		c := e.Coords[k]
		dx, dy := (c.X-5)/4, (c.Y-5)/2
		assert.InDelta(t, 1, math.Hypot(dx, dy), 1e-12)
	}
}
