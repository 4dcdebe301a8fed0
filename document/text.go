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
	"bytes"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// DefaultFont is used for text layers which do not name a font.
const DefaultFont = "sans"

var fontData = map[string][]byte{
	"sans":        goregular.TTF,
	"sans-bold":   gobold.TTF,
	"sans-italic": goitalic.TTF,
	"mono":        gomono.TTF,
}

// typeface holds one font, parsed once for shaping and once for reading
// glyph outlines.  Both representations are safe for concurrent use.
type typeface struct {
	outlines *sfnt.Font
	shaping  *font.Font
	upem     float64
}

var loadFaces = sync.OnceValues(func() (map[string]*typeface, error) {
	faces := make(map[string]*typeface, len(fontData))
	for name, data := range fontData {
		outlines, err := sfnt.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("font %q: %w", name, err)
		}
		face, err := font.ParseTTF(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("font %q: %w", name, err)
		}
		faces[name] = &typeface{
			outlines: outlines,
			shaping:  face.Font,
			upem:     float64(outlines.UnitsPerEm()),
		}
	}
	return faces, nil
})

// Align gives the horizontal position of a line of text relative to the
// anchor point.
type Align int

// These are the supported alignments.
const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle describes how a text is laid out.
type TextStyle struct {
	Font       string
	Size       float64
	Align      Align
	LineHeight float64 // distance between baselines
}

// TextPath converts the text into glyph outlines.  The first baseline
// starts at (x, y), subsequent lines are placed below.
func TextPath(text string, x, y float64, style TextStyle) (*path.Data, error) {
	faces, err := loadFaces()
	if err != nil {
		return nil, err
	}
	tf := faces[style.Font]
	if tf == nil {
		return nil, malformed("unknown font %q", style.Font)
	}

	t := &typesetter{
		tf:     tf,
		face:   font.NewFace(tf.shaping),
		shaper: &shaping.HarfbuzzShaper{},
		scale:  style.Size / tf.upem,
		p:      &path.Data{},
	}
	text = norm.NFC.String(text)
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if err := t.line(line, x, y+float64(i)*style.LineHeight, style.Align); err != nil {
			return nil, err
		}
	}
	return t.p, nil
}

type typesetter struct {
	tf     *typeface
	face   *font.Face
	shaper *shaping.HarfbuzzShaper
	buf    sfnt.Buffer
	scale  float64 // document units per font unit
	p      *path.Data
}

func (t *typesetter) line(line string, x, y float64, align Align) error {
	runes := []rune(line)
	if len(runes) == 0 {
		return nil
	}

	// Shaping at a size of one em per font unit gives advances and
	// offsets in font units.
	out := t.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      t.face,
		Size:      fixed.Int26_6(t.tf.upem * 64),
		Script:    script(runes),
		Language:  language.NewLanguage("en"),
	})

	var width float64
	for _, g := range out.Glyphs {
		width += units(g.Advance)
	}
	switch align {
	case AlignCenter:
		x -= width * t.scale / 2
	case AlignRight:
		x -= width * t.scale
	}

	pen := 0.0
	for _, g := range out.Glyphs {
		origin := vec.Vec2{
			X: x + (pen+units(g.XOffset))*t.scale,
			Y: y - units(g.YOffset)*t.scale,
		}
		if err := t.glyph(sfnt.GlyphIndex(g.GlyphID), origin); err != nil {
			return err
		}
		pen += units(g.Advance)
	}
	return nil
}

// glyph appends the outline of one glyph, with the glyph origin placed at
// the given point.
func (t *typesetter) glyph(gid sfnt.GlyphIndex, origin vec.Vec2) error {
	segs, err := t.tf.outlines.LoadGlyph(&t.buf, gid, fixed.Int26_6(t.tf.upem*64), nil)
	if err == sfnt.ErrColoredGlyph {
		return nil
	} else if err != nil {
		return malformed("glyph %d: %v", gid, err)
	}

	pt := func(q fixed.Point26_6) vec.Vec2 {
		return vec.Vec2{
			X: origin.X + units(q.X)*t.scale,
			Y: origin.Y + units(q.Y)*t.scale,
		}
	}
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				t.p.Close()
			}
			t.p.MoveTo(pt(s.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			t.p.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			t.p.QuadTo(pt(s.Args[0]), pt(s.Args[1]))
		case sfnt.SegmentOpCubeTo:
			t.p.CubeTo(pt(s.Args[0]), pt(s.Args[1]), pt(s.Args[2]))
		}
	}
	if open {
		t.p.Close()
	}
	return nil
}

func units(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// script returns the script of the first letter in the text.
func script(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsLetter(r) {
			return language.LookupScript(r)
		}
	}
	return language.Latin
}
