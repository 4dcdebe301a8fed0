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

package raster

import (
	"errors"
	"maps"
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/docraster/testcases"
)

// render paints a test case into a coverage buffer of size
// tc.Width×tc.Height.  The denseLimit argument selects the scanner.
func render(tc testcases.Shape, denseLimit int) []float32 {
	w, h := tc.Width, tc.Height
	buf := make([]float32, w*h)

	r := New(rect.Rect{URx: float64(w), URy: float64(h)})
	r.denseLimit = denseLimit
	if tc.CTM != (matrix.Matrix{}) {
		r.CTM = tc.CTM
	}

	emit := func(y, xMin int, coverage []float32) {
		copy(buf[y*w+xMin:], coverage)
	}
	switch op := tc.Op.(type) {
	case testcases.Fill:
		rule := NonZero
		if op.Rule == testcases.EvenOdd {
			rule = EvenOdd
		}
		r.Fill(tc.Path, rule, emit)
	case testcases.Stroke:
		r.Width = op.Width
		r.Cap = op.Cap
		r.Join = op.Join
		r.MiterLimit = op.MiterLimit
		r.Dash = op.Dash
		r.DashPhase = op.DashPhase
		r.Stroke(tc.Path, emit)
	}
	return buf
}

func sum(buf []float32) float64 {
	var total float64
	for _, c := range buf {
		total += float64(c)
	}
	return total
}

// TestScannersAgree checks that the dense and the sparse scanner produce
// the same coverage for all test cases.
func TestScannersAgree(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				dense := render(tc, math.MaxInt)
				sparse := render(tc, 0)

				painted := false
				for i := range dense {
					if d := math.Abs(float64(dense[i] - sparse[i])); d > 1e-4 {
						t.Fatalf("pixel (%d, %d): dense %g, sparse %g",
							i%tc.Width, i/tc.Width, dense[i], sparse[i])
					}
					if dense[i] < 0 || dense[i] > 1 {
						t.Fatalf("pixel (%d, %d): coverage %g out of range",
							i%tc.Width, i/tc.Width, dense[i])
					}
					painted = painted || dense[i] > 0
				}
				if !painted {
					t.Error("nothing was painted")
				}
			})
		}
	}
}

// TestTriangleCoverage checks exact coverage values for a thin triangle.
// The hypotenuse of (0,0), (10,0), (10,1) is y = x/10, so pixel x is
// covered to (2x+1)/20.
func TestTriangleCoverage(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	for _, limit := range []int{math.MaxInt, 0} {
		r := New(rect.Rect{URx: 10, URy: 1})
		r.denseLimit = limit

		got := make([]float32, 10)
		r.Fill(p, NonZero, func(y, xMin int, coverage []float32) {
			if y == 0 {
				copy(got[xMin:], coverage)
			}
		})

		for x := range 10 {
			want := float32(2*x+1) / 20
			if math.Abs(float64(got[x]-want)) > 1e-6 {
				t.Errorf("limit %d, pixel %d: got %.4f, want %.4f", limit, x, got[x], want)
			}
		}
	}
}

func TestFillArea(t *testing.T) {
	cases := []struct {
		name string
		p    *path.Data
		area float64
		tol  float64
	}{
		{"aligned", testcases.Rectangle(2, 3, 12, 9), 60, 1e-4},
		{"subpixel", testcases.Rectangle(2.25, 3.5, 11.75, 9.125), 9.5 * 5.625, 1e-3},
		// flattening cuts off slivers of up to Flatness pixels
		{"circle", testcases.Circle(20, 20, 15), math.Pi * 15 * 15, 15},
		{"reversed", (&path.Data{}).
			MoveTo(vec.Vec2{X: 2, Y: 2}).
			LineTo(vec.Vec2{X: 2, Y: 12}).
			LineTo(vec.Vec2{X: 12, Y: 12}).
			LineTo(vec.Vec2{X: 12, Y: 2}).
			Close(), 100, 1e-4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := New(rect.Rect{URx: 40, URy: 40})
			var total float64
			r.Fill(tc.p, NonZero, func(y, xMin int, coverage []float32) {
				total += sum(coverage)
			})
			if math.Abs(total-tc.area) > tc.tol {
				t.Errorf("area %g, want %g", total, tc.area)
			}
		})
	}
}

// TestImplicitClose checks that open subpaths are filled as if they were
// closed.
func TestImplicitClose(t *testing.T) {
	open := (&path.Data{}).
		MoveTo(vec.Vec2{X: 1, Y: 1}).
		LineTo(vec.Vec2{X: 15, Y: 3}).
		LineTo(vec.Vec2{X: 6, Y: 14}).
		MoveTo(vec.Vec2{X: 20, Y: 20}).
		LineTo(vec.Vec2{X: 30, Y: 20}).
		LineTo(vec.Vec2{X: 30, Y: 30})
	closed := (&path.Data{}).
		MoveTo(vec.Vec2{X: 1, Y: 1}).
		LineTo(vec.Vec2{X: 15, Y: 3}).
		LineTo(vec.Vec2{X: 6, Y: 14}).
		Close().
		MoveTo(vec.Vec2{X: 20, Y: 20}).
		LineTo(vec.Vec2{X: 30, Y: 20}).
		LineTo(vec.Vec2{X: 30, Y: 30}).
		Close()

	a := render(testcases.Shape{Path: open, Width: 32, Height: 32, Op: testcases.Fill{}}, math.MaxInt)
	b := render(testcases.Shape{Path: closed, Width: 32, Height: 32, Op: testcases.Fill{}}, math.MaxInt)
	if !slices.Equal(a, b) {
		t.Error("open and closed subpaths differ")
	}
}

func TestFillRules(t *testing.T) {
	shape := testcases.All["fill"]
	var nonZero, evenOdd testcases.Shape
	for _, tc := range shape {
		switch tc.Name {
		case "nested_nonzero":
			nonZero = tc
		case "nested_evenodd":
			evenOdd = tc
		}
	}

	a := render(nonZero, math.MaxInt)
	b := render(evenOdd, math.MaxInt)
	centre := 32*64 + 32
	if a[centre] != 1 {
		t.Errorf("nonzero: centre coverage %g, want 1", a[centre])
	}
	if b[centre] != 0 {
		t.Errorf("evenodd: centre coverage %g, want 0", b[centre])
	}
	if got, want := sum(b), 48.0*48-20*20; math.Abs(got-want) > 1e-3 {
		t.Errorf("evenodd: area %g, want %g", got, want)
	}
}

func TestClip(t *testing.T) {
	r := New(rect.Rect{LLx: 4, LLy: 4, URx: 12, URy: 10})
	p := testcases.Rectangle(0, 0, 20, 20)
	var total float64
	r.Fill(p, NonZero, func(y, xMin int, coverage []float32) {
		if y < 4 || y >= 10 || xMin < 4 || xMin+len(coverage) > 12 {
			t.Errorf("row %d, x %d..%d outside of clip", y, xMin, xMin+len(coverage))
		}
		total += sum(coverage)
	})
	if total != 48 {
		t.Errorf("area %g, want 48", total)
	}
}

func TestStrokeArea(t *testing.T) {
	line := testcases.HorizontalLine(10, 20, 30)
	cases := []struct {
		name string
		cap  graphics.LineCapStyle
		area float64
		tol  float64
	}{
		{"butt", graphics.LineCapButt, 20 * 4, 1e-3},
		{"square", graphics.LineCapSquare, 24 * 4, 1e-3},
		{"round", graphics.LineCapRound, 20*4 + math.Pi*4, 1.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := New(rect.Rect{URx: 40, URy: 40})
			r.Width = 4
			r.Cap = tc.cap
			var total float64
			r.Stroke(line, func(y, xMin int, coverage []float32) {
				total += sum(coverage)
			})
			if math.Abs(total-tc.area) > tc.tol {
				t.Errorf("area %g, want %g", total, tc.area)
			}
		})
	}
}

func TestStrokeClosedSquare(t *testing.T) {
	r := New(rect.Rect{URx: 40, URy: 40})
	r.Width = 2
	var total float64
	r.Stroke(testcases.Rectangle(10, 10, 30, 30), func(y, xMin int, coverage []float32) {
		total += sum(coverage)
	})
	// outer 22×22 minus inner 18×18, miter corners
	if want := 22.0*22 - 18*18; math.Abs(total-want) > 1e-3 {
		t.Errorf("area %g, want %g", total, want)
	}
}

func TestMiterLimit(t *testing.T) {
	// a sharp corner with an angle of about 11 degrees
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 5, Y: 10}).
		LineTo(vec.Vec2{X: 55, Y: 15}).
		LineTo(vec.Vec2{X: 5, Y: 20})

	area := func(limit float64) float64 {
		r := New(rect.Rect{URx: 100, URy: 40})
		r.Width = 2
		r.MiterLimit = limit
		var total float64
		r.Stroke(p, func(y, xMin int, coverage []float32) {
			total += sum(coverage)
		})
		return total
	}

	bevel := area(1)
	miter := area(100)
	if miter <= bevel+1 {
		t.Errorf("miter area %g not larger than bevel area %g", miter, bevel)
	}
}

func TestDashArea(t *testing.T) {
	cases := []struct {
		name  string
		dash  []float64
		phase float64
		area  float64
	}{
		{"half", []float64{2, 2}, 0, 10 * 2},
		{"odd", []float64{4}, 0, 12 * 2},
		{"phase", []float64{5, 5}, 5, 10 * 2},
		{"zero_entry", []float64{0, 5, 5}, 3, 10 * 2},
		{"all_zero", []float64{0, 0}, 0, 20 * 2},
	}
	line := testcases.HorizontalLine(0, 10, 20)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := New(rect.Rect{URx: 40, URy: 20})
			r.Width = 2
			r.Dash = tc.dash
			r.DashPhase = tc.phase
			var total float64
			r.Stroke(line, func(y, xMin int, coverage []float32) {
				total += sum(coverage)
			})
			if math.Abs(total-tc.area) > 1e-3 {
				t.Errorf("area %g, want %g", total, tc.area)
			}
		})
	}
}

// TestDashClosedJoin checks that a dash crossing the start of a closed
// subpath is drawn as a single piece, for every subpath.
func TestDashClosedJoin(t *testing.T) {
	sq := func(x float64) *path.Data {
		return testcases.Rectangle(x, 4, x+10, 14)
	}
	p := sq(2)
	q := sq(20)
	p.Cmds = append(p.Cmds, q.Cmds...)
	p.Coords = append(p.Coords, q.Coords...)

	r := New(rect.Rect{URx: 40, URy: 20})
	r.Width = 1
	r.Dash = []float64{6, 4}
	r.DashPhase = 3
	r.Stroke(p, func(int, int, []float32) {})

	// Each square has a perimeter of 40 and thus 4 dashes; the first and
	// last dash of each square are merged.
	if len(r.dashRuns) != 8 {
		t.Errorf("got %d dashes, want 8", len(r.dashRuns))
	}
}

func TestDots(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 10}).
		LineTo(vec.Vec2{X: 10, Y: 10})

	for _, tc := range []struct {
		cap   graphics.LineCapStyle
		empty bool
	}{
		{graphics.LineCapButt, true},
		{graphics.LineCapSquare, true},
		{graphics.LineCapRound, false},
	} {
		r := New(rect.Rect{URx: 20, URy: 20})
		r.Width = 6
		r.Cap = tc.cap
		var total float64
		r.Stroke(p, func(y, xMin int, coverage []float32) {
			total += sum(coverage)
		})
		if (total == 0) != tc.empty {
			t.Errorf("%s: area %g", tc.cap, total)
		}
		if !tc.empty && (total > math.Pi*9 || total < 0.85*math.Pi*9) {
			t.Errorf("%s: area %g, want %g", tc.cap, total, math.Pi*9)
		}
	}
}

func TestCTM(t *testing.T) {
	r := New(rect.Rect{URx: 64, URy: 64})
	r.CTM = matrix.Scale(2, 3).Translate(5, 7)
	var total float64
	r.Fill(testcases.Rectangle(0, 0, 10, 10), NonZero, func(y, xMin int, coverage []float32) {
		if y < 7 || y >= 37 || xMin < 5 {
			t.Errorf("unexpected row %d at %d", y, xMin)
		}
		total += sum(coverage)
	})
	if math.Abs(total-600) > 1e-3 {
		t.Errorf("area %g, want 600", total)
	}
}

func TestReset(t *testing.T) {
	r := New(rect.Rect{URx: 10, URy: 10})
	r.CTM = matrix.Scale(2, 2)
	r.Width = 5
	r.Dash = []float64{1, 2}
	r.Cap = graphics.LineCapRound

	r.Reset(rect.Rect{URx: 20, URy: 20})
	if r.CTM != matrix.Identity || r.Width != 1 || r.Dash != nil ||
		r.Cap != graphics.LineCapButt || r.MiterLimit != DefaultMiterLimit ||
		r.Flatness != DefaultFlatness || r.Clip.URx != 20 {
		t.Errorf("Reset left parameters behind: %+v", r)
	}
}

func TestEmpty(t *testing.T) {
	r := New(rect.Rect{URx: 10, URy: 10})
	called := false
	emit := func(int, int, []float32) { called = true }

	r.Fill(&path.Data{}, NonZero, emit)
	r.Stroke(&path.Data{}, emit)
	r.Fill(testcases.Rectangle(20, 20, 30, 30), NonZero, emit)
	r.Fill(testcases.HorizontalLine(0, 5, 10), NonZero, emit)
	if called {
		t.Error("emit called for empty output")
	}
}

// TestWideStrokeInside checks a stroke which is wider than the diameter
// of the stroked circle.  The inner offset lines cross each other and the
// whole disk must be painted.
func TestWideStrokeInside(t *testing.T) {
	for _, limit := range []int{math.MaxInt, 0} {
		buf := make([]float32, 64*64)
		r := New(rect.Rect{URx: 64, URy: 64})
		r.denseLimit = limit
		r.Width = 14
		r.Join = graphics.LineJoinRound
		r.Stroke(testcases.Circle(32, 32, 5), func(y, xMin int, coverage []float32) {
			copy(buf[y*64+xMin:], coverage)
		})

		for y := range 64 {
			for x := range 64 {
				dist := math.Hypot(float64(x)+0.5-32, float64(y)+0.5-32)
				if dist <= 5.5 && buf[y*64+x] < 0.999 {
					t.Fatalf("limit %d: pixel (%d,%d) has coverage %g", limit, x, y, buf[y*64+x])
				}
			}
		}

		// The circle is flattened into 12 segments and each round join
		// into a single chord, which makes the area slightly smaller than
		// π·12².
		if area := sum(buf); math.Abs(area-439) > 2.5 {
			t.Errorf("limit %d: area %g, want 439", limit, area)
		}
	}
}

// TestFarAwayEdges checks that edges with huge device coordinates are
// clipped without changing the coverage inside the clip rectangle.
func TestFarAwayEdges(t *testing.T) {
	r := New(rect.Rect{URx: 10, URy: 10})
	var total float64
	err := r.Fill(testcases.Rectangle(-1e12, 2, 5, 6), NonZero, func(y, xMin int, coverage []float32) {
		total += sum(coverage)
	})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(total-20) > 1e-4 {
		t.Errorf("area %g, want 20", total)
	}

	// a slanted edge crossing the whole clip rectangle
	tri := (&path.Data{}).
		MoveTo(vec.Vec2{X: -1e9, Y: -1e9}).
		LineTo(vec.Vec2{X: 1e9, Y: 1e9}).
		LineTo(vec.Vec2{X: -1e9, Y: 1e9}).
		Close()
	total = 0
	err = r.Fill(tri, NonZero, func(y, xMin int, coverage []float32) {
		total += sum(coverage)
	})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(total-50) > 1e-3 {
		t.Errorf("area %g, want 50", total)
	}
}

// TestHugeCurve checks that a curve with enormous control points is
// flattened into a bounded number of segments.
func TestHugeCurve(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		CubeTo(vec.Vec2{X: 1e30, Y: 1e30}, vec.Vec2{X: -1e30, Y: 1e30}, vec.Vec2{X: 50, Y: 50}).
		Close()

	r := New(rect.Rect{URx: 100, URy: 100})
	if err := r.Fill(p, NonZero, func(int, int, []float32) {}); err != nil {
		t.Fatal(err)
	}
	if len(r.edges) > 2*maxCurvePieces+2 {
		t.Errorf("%d edges", len(r.edges))
	}

	r.Width = 3
	if err := r.Stroke(p, func(int, int, []float32) {}); err != nil {
		t.Fatal(err)
	}
	if len(r.segs) > maxCurvePieces+1 {
		t.Errorf("%d segments", len(r.segs))
	}
}

// TestCurveCulling checks that curves far outside the clip rectangle are
// replaced by their chords.
func TestCurveCulling(t *testing.T) {
	emit := func(int, int, []float32) {}

	r := New(rect.Rect{URx: 40, URy: 40})
	r.MaxEdges = 8
	if err := r.Fill(testcases.Circle(1e6, 1e6, 15), NonZero, emit); err != nil {
		t.Errorf("far away circle: %v", err)
	}
	if err := r.Fill(testcases.Circle(20, 20, 15), NonZero, emit); !errors.Is(err, ErrTooComplex) {
		t.Errorf("visible circle: got %v, want ErrTooComplex", err)
	}
}

func TestMaxEdges(t *testing.T) {
	emit := func(int, int, []float32) {}
	line := testcases.HorizontalLine(0, 10, 20)

	r := New(rect.Rect{URx: 40, URy: 20})
	r.Width = 2
	r.Dash = []float64{0.5, 0.5}
	r.MaxEdges = 10
	if err := r.Stroke(line, emit); !errors.Is(err, ErrTooComplex) {
		t.Errorf("dashes: got %v, want ErrTooComplex", err)
	}

	r.Reset(rect.Rect{URx: 40, URy: 20})
	r.Width = 1e7
	r.Cap = graphics.LineCapRound
	r.MaxEdges = 100
	if err := r.Stroke(line, emit); !errors.Is(err, ErrTooComplex) {
		t.Errorf("round caps: got %v, want ErrTooComplex", err)
	}

	// the budget is per call
	r.Reset(rect.Rect{URx: 40, URy: 20})
	r.MaxEdges = 10
	for range 3 {
		if err := r.Fill(testcases.Rectangle(1, 1, 9, 9), NonZero, emit); err != nil {
			t.Fatal(err)
		}
	}
}

// TestTinyDashes checks that a dash pattern with a period far below one
// pixel is drawn as a solid line.
func TestTinyDashes(t *testing.T) {
	line := testcases.HorizontalLine(0, 10, 20)
	area := func(dash []float64) float64 {
		r := New(rect.Rect{URx: 40, URy: 20})
		r.Width = 2
		r.Dash = dash
		var total float64
		err := r.Stroke(line, func(y, xMin int, coverage []float32) {
			total += sum(coverage)
		})
		if err != nil {
			t.Fatal(err)
		}
		return total
	}

	solid := area(nil)
	if got := area([]float64{1e-9, 1e-9}); got != solid {
		t.Errorf("area %g, want %g", got, solid)
	}
}

func BenchmarkRasterizeAll(b *testing.B) {
	var cases []testcases.Shape
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		cases = append(cases, testcases.All[category]...)
	}

	r := New(rect.Rect{})
	emit := func(y, xMin int, coverage []float32) {}

	for b.Loop() {
		for _, tc := range cases {
			r.Reset(rect.Rect{URx: float64(tc.Width), URy: float64(tc.Height)})
			if tc.CTM != (matrix.Matrix{}) {
				r.CTM = tc.CTM
			}
			switch op := tc.Op.(type) {
			case testcases.Fill:
				rule := NonZero
				if op.Rule == testcases.EvenOdd {
					rule = EvenOdd
				}
				r.Fill(tc.Path, rule, emit)
			case testcases.Stroke:
				r.Width = op.Width
				r.Cap = op.Cap
				r.Join = op.Join
				r.MiterLimit = op.MiterLimit
				r.Dash = op.Dash
				r.DashPhase = op.DashPhase
				r.Stroke(tc.Path, emit)
			}
		}
	}
}
