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

// Command export writes the shared test documents to disk, for inspection
// and for use with other renderers.
//
// Every sample document is written as plain JSON and in each of the
// supported container formats.  Every geometric test case is converted
// into a single-layer document.  With -png, each document is also
// rendered at scale 1.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/docraster"
	"seehuhn.de/go/docraster/testcases"
)

func main() {
	out := flag.String("o", "testdata/export", "output directory")
	withPNG := flag.Bool("png", false, "also render every document")
	flag.Parse()

	if err := run(*out, *withPNG); err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		os.Exit(1)
	}
}

func run(dir string, withPNG bool) error {
	for _, sub := range []string{"documents", "shapes"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return err
		}
	}

	for _, doc := range testcases.Documents {
		base := filepath.Join(dir, "documents", doc.Name)
		files := map[string][]byte{
			".json":     doc.Data,
			".zip":      testcases.Zip(doc.Data, nil),
			".json.gz":  testcases.Gzip(doc.Data),
			".json.zst": testcases.Zstd(doc.Data),
		}
		for ext, data := range files {
			if err := os.WriteFile(base+ext, data, 0o644); err != nil {
				return err
			}
		}
		if withPNG {
			if err := render(base+".png", doc.Data); err != nil {
				return fmt.Errorf("%s: %w", doc.Name, err)
			}
		}
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			data, err := json.MarshalIndent(toDocument(tc), "", "  ")
			if err != nil {
				return err
			}
			base := filepath.Join(dir, "shapes", category+"_"+tc.Name)
			if err := os.WriteFile(base+".json", data, 0o644); err != nil {
				return err
			}
			if withPNG {
				if err := render(base+".png", data); err != nil {
					return fmt.Errorf("%s_%s: %w", category, tc.Name, err)
				}
			}
		}
	}
	return nil
}

func render(fname string, doc []byte) error {
	c, err := docraster.Decode(doc)
	if err != nil {
		return err
	}
	data, err := c.Export(1, 100)
	if err != nil {
		return err
	}
	return os.WriteFile(fname, data, 0o644)
}

type jsonDocument struct {
	Version    int         `json:"version"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Background string      `json:"background"`
	Layers     []jsonLayer `json:"layers"`
}

type jsonLayer struct {
	Type      string      `json:"type"`
	Name      string      `json:"name"`
	Transform []float64   `json:"transform,omitempty"`
	D         string      `json:"d"`
	Fill      *jsonFill   `json:"fill,omitempty"`
	Stroke    *jsonStroke `json:"stroke,omitempty"`
}

type jsonFill struct {
	Color string `json:"color"`
	Rule  string `json:"rule"`
}

type jsonStroke struct {
	Color      string    `json:"color"`
	Width      float64   `json:"width"`
	Cap        string    `json:"cap"`
	Join       string    `json:"join"`
	MiterLimit float64   `json:"miterLimit,omitempty"`
	Dash       []float64 `json:"dash,omitempty"`
	DashPhase  float64   `json:"dashPhase,omitempty"`
}

func toDocument(tc testcases.Shape) *jsonDocument {
	layer := jsonLayer{
		Type: "path",
		Name: tc.Name,
		D:    pathData(tc.Path),
	}
	if tc.CTM != (matrix.Matrix{}) {
		layer.Transform = tc.CTM[:]
	}

	switch op := tc.Op.(type) {
	case testcases.Fill:
		layer.Fill = &jsonFill{Color: "#000000", Rule: "nonzero"}
		if op.Rule == testcases.EvenOdd {
			layer.Fill.Rule = "evenodd"
		}
	case testcases.Stroke:
		layer.Stroke = &jsonStroke{
			Color:      "#000000",
			Width:      op.Width,
			Cap:        capName(op.Cap),
			Join:       joinName(op.Join),
			MiterLimit: op.MiterLimit,
			Dash:       op.Dash,
			DashPhase:  op.DashPhase,
		}
	}

	return &jsonDocument{
		Version:    1,
		Width:      tc.Width,
		Height:     tc.Height,
		Background: "#ffffff",
		Layers:     []jsonLayer{layer},
	}
}

// pathData formats a path using the SVG path syntax.
func pathData(p *path.Data) string {
	var b strings.Builder
	k := 0
	for _, cmd := range p.Cmds {
		var letter string
		var n int
		switch cmd {
		case path.CmdMoveTo:
			letter, n = "M", 1
		case path.CmdLineTo:
			letter, n = "L", 1
		case path.CmdQuadTo:
			letter, n = "Q", 2
		case path.CmdCubeTo:
			letter, n = "C", 3
		case path.CmdClose:
			letter = "Z"
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(letter)
		for _, pt := range p.Coords[k : k+n] {
			b.WriteByte(' ')
			b.WriteString(strconv.FormatFloat(pt.X, 'g', -1, 64))
			b.WriteByte(' ')
			b.WriteString(strconv.FormatFloat(pt.Y, 'g', -1, 64))
		}
		k += n
	}
	return b.String()
}

func capName(c graphics.LineCapStyle) string {
	switch c {
	case graphics.LineCapRound:
		return "round"
	case graphics.LineCapSquare:
		return "square"
	default:
		return "butt"
	}
}

func joinName(j graphics.LineJoinStyle) string {
	switch j {
	case graphics.LineJoinRound:
		return "round"
	case graphics.LineJoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}
