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
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
)

var (
	red         = color.NRGBA{R: 255, A: 255}
	green       = color.NRGBA{G: 255, A: 255}
	blue        = color.NRGBA{B: 255, A: 255}
	black       = color.NRGBA{A: 255}
	white       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	transparent = color.NRGBA{}
)

// redSquare is a 100×100 document which is completely covered by an
// opaque red square.
var redSquare = Document{
	Name:   "red_square",
	Width:  100,
	Height: 100,
	Data: []byte(`{
  "version": 1,
  "width": 100,
  "height": 100,
  "layers": [
    {"type": "rect", "x": 0, "y": 0, "width": 100, "height": 100, "fill": "#ff0000"}
  ]
}`),
	Pixels: []Pixel{
		{X: 0, Y: 0, Color: red},
		{X: 50, Y: 50, Color: red},
		{X: 99, Y: 99, Color: red},
	},
}

// RedSquare returns a copy of the red square document.
func RedSquare() Document {
	d := redSquare
	d.Data = bytes.Clone(d.Data)
	return d
}

var shapes = Document{
	Name:   "shapes",
	Width:  64,
	Height: 64,
	Data: []byte(`{
  "width": 64,
  "height": 64,
  "background": "#ffffff",
  "layers": [
    {"type": "rect", "name": "blue box", "x": 4, "y": 4, "width": 24, "height": 24, "fill": "#0000ff"},
    {"type": "ellipse", "cx": 46, "cy": 46, "rx": 14, "ry": 14, "fill": {"color": "#00ff00"}},
    {"type": "path", "d": "M36 4 H60 V28 H36 Z", "fill": "#ff000080"},
    {"type": "rect", "hidden": true, "x": 0, "y": 0, "width": 64, "height": 64, "fill": "#000"}
  ]
}`),
	Pixels: []Pixel{
		{X: 1, Y: 1, Color: white},
		{X: 10, Y: 10, Color: blue},
		{X: 46, Y: 46, Color: green},
		{X: 48, Y: 16, Color: color.NRGBA{R: 255, G: 127, B: 127, A: 255}},
		{X: 62, Y: 62, Color: white},
	},
}

var strokes = Document{
	Name:   "strokes",
	Width:  64,
	Height: 64,
	Data: []byte(`{
  "width": 64,
  "height": 64,
  "layers": [
    {"type": "path", "d": "M8 32 H56", "stroke": {"color": "#000000", "width": 8}},
    {"type": "path", "d": "M8 52 h48", "stroke": {"color": "#000000", "width": 4, "dash": [8, 8]}},
    {"type": "path", "d": "M8 8 L20 16 L32 8", "stroke": {"color": "#0000ff", "width": 2, "cap": "round", "join": "round"}}
  ]
}`),
	Pixels: []Pixel{
		{X: 32, Y: 32, Color: black},
		{X: 32, Y: 24, Color: transparent},
		{X: 4, Y: 32, Color: transparent},
		{X: 12, Y: 52, Color: black},
		{X: 20, Y: 52, Color: transparent},
	},
}

var gradients = Document{
	Name:   "gradients",
	Width:  100,
	Height: 20,
	Data: []byte(`{
  "width": 100,
  "height": 20,
  "layers": [
    {"type": "rect", "x": 0, "y": 0, "width": 100, "height": 20,
     "fill": {"gradient": {"type": "linear", "from": [0, 0], "to": [100, 0],
              "stops": [{"offset": 0, "color": "#000000"}, {"offset": 1, "color": "#ffffff"}]}}}
  ]
}`),
	Pixels: []Pixel{
		{X: 50, Y: 10, Color: color.NRGBA{R: 129, G: 129, B: 129, A: 255}},
		{X: 99, Y: 0, Color: color.NRGBA{R: 254, G: 254, B: 254, A: 255}},
	},
}

var groups = Document{
	Name:   "groups",
	Width:  80,
	Height: 40,
	Data: []byte(`{
  "width": 80,
  "height": 40,
  "layers": [
    {"type": "group", "opacity": 0.5, "layers": [
      {"type": "rect", "x": 0, "y": 0, "width": 20, "height": 20, "fill": "#ff0000"},
      {"type": "rect", "x": 10, "y": 10, "width": 20, "height": 20, "fill": "#ff0000"}
    ]},
    {"type": "group", "transform": [1, 0, 0, 1, 40, 0], "layers": [
      {"type": "rect", "x": 0, "y": 0, "width": 20, "height": 20, "fill": "#0000ff"}
    ]}
  ]
}`),
	Pixels: []Pixel{
		{X: 15, Y: 15, Color: color.NRGBA{R: 255, A: 128}},
		{X: 50, Y: 10, Color: blue},
		{X: 35, Y: 5, Color: transparent},
	},
}

var text = Document{
	Name:   "text",
	Width:  200,
	Height: 60,
	Data: []byte(`{
  "width": 200,
  "height": 60,
  "layers": [
    {"type": "text", "text": "Hello, world", "x": 10, "y": 40, "size": 24, "fill": "#000000"}
  ]
}`),
	Pixels: []Pixel{
		{X: 0, Y: 0, Color: transparent},
		{X: 199, Y: 59, Color: transparent},
	},
}

// Swatch is the color of the image embedded in the images document.
var Swatch = color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}

var images = imageDocument()

func imageDocument() Document {
	data := base64.StdEncoding.EncodeToString(SwatchPNG(4, 4))
	return Document{
		Name:   "images",
		Width:  40,
		Height: 40,
		Data: fmt.Appendf(nil, `{
  "width": 40,
  "height": 40,
  "assets": {"swatch": %q},
  "layers": [
    {"type": "image", "ref": "swatch", "x": 0, "y": 0, "width": 40, "height": 40}
  ]
}`, data),
		Pixels: []Pixel{
			{X: 20, Y: 20, Color: Swatch},
		},
	}
}

// SwatchPNG returns a PNG image of the given size, filled with Swatch.
func SwatchPNG(w, h int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = Swatch.R
		img.Pix[i+1] = Swatch.G
		img.Pix[i+2] = Swatch.B
		img.Pix[i+3] = Swatch.A
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
