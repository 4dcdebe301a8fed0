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
	"strconv"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// PathError reports a syntax error in path data.
type PathError struct {
	Offset int // byte offset into the path data
	Msg    string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path data: %s at byte %d", e.Msg, e.Offset)
}

func (e *PathError) Unwrap() error {
	return ErrMalformed
}

// ParsePath converts SVG path data into a path.  All commands of the SVG
// path grammar are supported, in both absolute and relative form.
// Elliptical arcs are converted to cubic Bézier curves.
func ParsePath(d string) (*path.Data, error) {
	p := &pathParser{s: d, p: &path.Data{}}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.p, nil
}

type pathParser struct {
	s   string
	pos int
	p   *path.Data

	cur, start vec.Vec2
	ctrl       vec.Vec2 // last control point, for S, s, T and t
	prev       byte     // last command
	closed     bool     // the last command was Z or z
}

func (p *pathParser) fail(msg string) error {
	return &PathError{Offset: p.pos, Msg: msg}
}

func (p *pathParser) parse() error {
	var cmd byte
	for {
		p.skipSpace()
		if p.pos >= len(p.s) {
			return nil
		}

		c := p.s[p.pos]
		switch {
		case isCommand(c):
			if cmd == 0 && c != 'M' && c != 'm' {
				return p.fail("path must start with a moveto")
			}
			cmd = c
			p.pos++
		case cmd == 0:
			return p.fail("path must start with a moveto")
		case cmd == 'Z' || cmd == 'z':
			return p.fail("unexpected number after closepath")
		case cmd == 'M':
			cmd = 'L'
		case cmd == 'm':
			cmd = 'l'
		}

		if err := p.segment(cmd); err != nil {
			return err
		}
		p.prev = cmd
	}
}

func (p *pathParser) segment(cmd byte) error {
	if cmd == 'Z' || cmd == 'z' {
		p.p.Close()
		p.cur = p.start
		p.closed = true
		return nil
	}
	if p.closed && cmd != 'M' && cmd != 'm' {
		p.p.MoveTo(p.start)
	}
	p.closed = false

	var rel vec.Vec2
	if cmd >= 'a' {
		rel = p.cur
	}
	var err error
	point := func() vec.Vec2 {
		if err != nil {
			return vec.Vec2{}
		}
		var x, y float64
		if x, err = p.number(); err != nil {
			return vec.Vec2{}
		}
		if y, err = p.number(); err != nil {
			return vec.Vec2{}
		}
		return vec.Vec2{X: x, Y: y}.Add(rel)
	}

	switch cmd {
	case 'M', 'm':
		pt := point()
		if err != nil {
			return err
		}
		p.p.MoveTo(pt)
		p.cur, p.start = pt, pt

	case 'L', 'l':
		pt := point()
		if err != nil {
			return err
		}
		p.p.LineTo(pt)
		p.cur = pt

	case 'H', 'h':
		x, err := p.number()
		if err != nil {
			return err
		}
		pt := vec.Vec2{X: x + rel.X, Y: p.cur.Y}
		p.p.LineTo(pt)
		p.cur = pt

	case 'V', 'v':
		y, err := p.number()
		if err != nil {
			return err
		}
		pt := vec.Vec2{X: p.cur.X, Y: y + rel.Y}
		p.p.LineTo(pt)
		p.cur = pt

	case 'C', 'c':
		c1, c2, pt := point(), point(), point()
		if err != nil {
			return err
		}
		p.p.CubeTo(c1, c2, pt)
		p.cur, p.ctrl = pt, c2

	case 'S', 's':
		c1 := p.cur
		if isOneOf(p.prev, "CcSs") {
			c1 = p.cur.Add(p.cur.Sub(p.ctrl))
		}
		c2, pt := point(), point()
		if err != nil {
			return err
		}
		p.p.CubeTo(c1, c2, pt)
		p.cur, p.ctrl = pt, c2

	case 'Q', 'q':
		c, pt := point(), point()
		if err != nil {
			return err
		}
		p.p.QuadTo(c, pt)
		p.cur, p.ctrl = pt, c

	case 'T', 't':
		c := p.cur
		if isOneOf(p.prev, "QqTt") {
			c = p.cur.Add(p.cur.Sub(p.ctrl))
		}
		pt := point()
		if err != nil {
			return err
		}
		p.p.QuadTo(c, pt)
		p.cur, p.ctrl = pt, c

	case 'A', 'a':
		var rx, ry, phi float64
		var large, sweep bool
		if rx, err = p.number(); err != nil {
			return err
		}
		if ry, err = p.number(); err != nil {
			return err
		}
		if phi, err = p.number(); err != nil {
			return err
		}
		if large, err = p.flag(); err != nil {
			return err
		}
		if sweep, err = p.flag(); err != nil {
			return err
		}
		pt := point()
		if err != nil {
			return err
		}
		arcTo(p.p, p.cur, pt, rx, ry, phi, large, sweep)
		p.cur = pt
	}
	return nil
}

func isCommand(c byte) bool {
	return isOneOf(c, "MmLlHhVvCcSsQqTtAaZz")
}

func isOneOf(c byte, set string) bool {
	for i := range len(set) {
		if set[i] == c {
			return true
		}
	}
	return false
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func (p *pathParser) skipSpace() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r', '\f':
			p.pos++
		default:
			return
		}
	}
}

// skipSeparator skips white space and at most one comma.
func (p *pathParser) skipSeparator() {
	p.skipSpace()
	if p.pos < len(p.s) && p.s[p.pos] == ',' {
		p.pos++
		p.skipSpace()
	}
}

func (p *pathParser) number() (float64, error) {
	p.skipSeparator()
	start := p.pos
	s := p.s
	if p.pos < len(s) && (s[p.pos] == '+' || s[p.pos] == '-') {
		p.pos++
	}
	digits := 0
	for p.pos < len(s) && isDigit(s[p.pos]) {
		p.pos++
		digits++
	}
	if p.pos < len(s) && s[p.pos] == '.' {
		p.pos++
		for p.pos < len(s) && isDigit(s[p.pos]) {
			p.pos++
			digits++
		}
	}
	if digits == 0 {
		p.pos = start
		return 0, p.fail("expected number")
	}
	if p.pos < len(s) && (s[p.pos] == 'e' || s[p.pos] == 'E') {
		q := p.pos + 1
		if q < len(s) && (s[q] == '+' || s[q] == '-') {
			q++
		}
		if q < len(s) && isDigit(s[q]) {
			for q < len(s) && isDigit(s[q]) {
				q++
			}
			p.pos = q
		}
	}

	x, err := strconv.ParseFloat(s[start:p.pos], 64)
	if err != nil || math.IsInf(x, 0) {
		p.pos = start
		return 0, p.fail("number out of range")
	}
	return x, nil
}

func (p *pathParser) flag() (bool, error) {
	p.skipSeparator()
	if p.pos < len(p.s) {
		switch p.s[p.pos] {
		case '0':
			p.pos++
			return false, nil
		case '1':
			p.pos++
			return true, nil
		}
	}
	return false, p.fail("expected flag")
}

// arcTo appends an elliptical arc from a to b, following the endpoint
// parameterization of the SVG specification.
func arcTo(p *path.Data, a, b vec.Vec2, rx, ry, phiDeg float64, large, sweep bool) {
	if a == b {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		p.LineTo(b)
		return
	}

	sin, cos := math.Sincos(phiDeg * math.Pi / 180)
	dx, dy := (a.X-b.X)/2, (a.Y-b.Y)/2
	x1 := cos*dx + sin*dy
	y1 := -sin*dx + cos*dy

	if l := x1*x1/(rx*rx) + y1*y1/(ry*ry); l > 1 {
		s := math.Sqrt(l)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	var k float64
	if num > 0 && den > 0 {
		k = math.Sqrt(num / den)
	}
	if large == sweep {
		k = -k
	}
	cxp := k * rx * y1 / ry
	cyp := -k * ry * x1 / rx
	cx := cos*cxp - sin*cyp + (a.X+b.X)/2
	cy := sin*cxp + cos*cyp + (a.Y+b.Y)/2

	ux, uy := (x1-cxp)/rx, (y1-cyp)/ry
	vx, vy := (-x1-cxp)/rx, (-y1-cyp)/ry
	theta := math.Atan2(uy, ux)
	delta := math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	// map a point on the unit circle to the ellipse
	ellipse := func(x, y float64) vec.Vec2 {
		return vec.Vec2{
			X: cx + rx*cos*x - ry*sin*y,
			Y: cy + rx*sin*x + ry*cos*y,
		}
	}

	n := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	n = max(n, 1)
	step := delta / float64(n)
	t := 4.0 / 3.0 * math.Tan(step/4)
	for i := range n {
		s1, c1 := math.Sincos(theta + float64(i)*step)
		s2, c2 := math.Sincos(theta + float64(i+1)*step)
		end := ellipse(c2, s2)
		if i == n-1 {
			end = b
		}
		p.CubeTo(ellipse(c1-t*s1, s1+t*c1), ellipse(c2+t*s2, s2-t*c2), end)
	}
}
