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

package testcases

import (
	"math"

	"seehuhn.de/go/geom/path"
)

// Kappa is the control point distance, relative to the radius, for
// approximating a quarter circle by a cubic Bézier curve.
const Kappa = 0.5522847498307936

// Rectangle returns the closed rectangle with corners (x1, y1) and (x2, y2).
func Rectangle(x1, y1, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x1, y2)).
		Close()
}

// Circle returns a circle made from four cubic Bézier curves.
func Circle(cx, cy, r float64) *path.Data {
	return Ellipse(cx, cy, r, r)
}

// Ellipse returns an axis-aligned ellipse made from four cubic Bézier
// curves.
func Ellipse(cx, cy, rx, ry float64) *path.Data {
	kx, ky := rx*Kappa, ry*Kappa
	return (&path.Data{}).
		MoveTo(pt(cx+rx, cy)).
		CubeTo(pt(cx+rx, cy-ky), pt(cx+kx, cy-ry), pt(cx, cy-ry)).
		CubeTo(pt(cx-kx, cy-ry), pt(cx-rx, cy-ky), pt(cx-rx, cy)).
		CubeTo(pt(cx-rx, cy+ky), pt(cx-kx, cy+ry), pt(cx, cy+ry)).
		CubeTo(pt(cx+kx, cy+ry), pt(cx+rx, cy+ky), pt(cx+rx, cy)).
		Close()
}

func triangle(x1, y1, x2, y2, x3, y3 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x3, y3)).
		Close()
}

// star returns a self-intersecting five-pointed star, which has a
// winding number of 2 in the central pentagon.
func star(cx, cy, r float64) *path.Data {
	p := &path.Data{}
	for i, k := range []int{0, 2, 4, 1, 3} {
		phi := float64(k)*2*math.Pi/5 - math.Pi/2
		v := pt(cx+r*math.Cos(phi), cy+r*math.Sin(phi))
		if i == 0 {
			p = p.MoveTo(v)
		} else {
			p = p.LineTo(v)
		}
	}
	return p.Close()
}

// nestedSquares returns two concentric squares, both oriented the same
// way.
func nestedSquares(cx, cy, outer, inner float64) *path.Data {
	p := Rectangle(cx-outer, cy-outer, cx+outer, cy+outer)
	q := Rectangle(cx-inner, cy-inner, cx+inner, cy+inner)
	p.Cmds = append(p.Cmds, q.Cmds...)
	p.Coords = append(p.Coords, q.Coords...)
	return p
}

// grid returns rows×cols separate squares covering a w×h area.
func grid(rows, cols int, w, h, gap float64) *path.Data {
	p := &path.Data{}
	cw := w / float64(cols)
	ch := h / float64(rows)
	for i := range rows {
		for j := range cols {
			x := float64(j) * cw
			y := float64(i) * ch
			p = p.MoveTo(pt(x+gap, y+gap)).
				LineTo(pt(x+cw-gap, y+gap)).
				LineTo(pt(x+cw-gap, y+ch-gap)).
				LineTo(pt(x+gap, y+ch-gap)).
				Close()
		}
	}
	return p
}

// HorizontalLine returns the open path from (x1, y) to (x2, y).
func HorizontalLine(x1, y, x2 float64) *path.Data {
	return (&path.Data{}).MoveTo(pt(x1, y)).LineTo(pt(x2, y))
}

// corner returns an open path with a single corner at (x2, y2).
func corner(x1, y1, x2, y2, x3, y3 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x3, y3))
}

func zigzag(x1, y, x2, amp float64, teeth int) *path.Data {
	p := (&path.Data{}).MoveTo(pt(x1, y))
	step := (x2 - x1) / float64(teeth)
	for i := 1; i <= teeth; i++ {
		dy := amp
		if i%2 == 1 {
			dy = -amp
		}
		p = p.LineTo(pt(x1+float64(i)*step, y+dy))
	}
	return p
}

func quadArch(x1, y1, cx, cy, x2, y2 float64) *path.Data {
	return (&path.Data{}).MoveTo(pt(x1, y1)).QuadTo(pt(cx, cy), pt(x2, y2)).Close()
}

func cubicWave(x1, y1, x2, y2 float64) *path.Data {
	dx := (x2 - x1) / 3
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		CubeTo(pt(x1+dx, y1-30), pt(x2-dx, y2+30), pt(x2, y2))
}
