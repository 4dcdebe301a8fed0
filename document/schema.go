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
	"encoding/json"
	"errors"
	"io"
)

// docJSON is the top-level object of a document.
type docJSON struct {
	Version    *int              `json:"version"`
	Width      *float64          `json:"width"`
	Height     *float64          `json:"height"`
	Background *paintJSON        `json:"background"`
	Assets     map[string]string `json:"assets"`
	Layers     []layerJSON       `json:"layers"`
}

// layerJSON holds the union of the fields of all layer types.
type layerJSON struct {
	Type      string      `json:"type"`
	Name      string      `json:"name"`
	Hidden    bool        `json:"hidden"`
	Opacity   *float64    `json:"opacity"`
	Transform []float64   `json:"transform"`
	Blur      *float64    `json:"blur"`
	Shadow    *shadowJSON `json:"shadow"`

	Fill   *fillJSON   `json:"fill"`
	Stroke *strokeJSON `json:"stroke"`

	// path
	D *string `json:"d"`

	// rect, image and text
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
	Radius *float64 `json:"radius"`

	// ellipse
	CX *float64 `json:"cx"`
	CY *float64 `json:"cy"`
	RX *float64 `json:"rx"`
	RY *float64 `json:"ry"`

	// text
	Text       *string  `json:"text"`
	Size       *float64 `json:"size"`
	Font       string   `json:"font"`
	Align      string   `json:"align"`
	LineHeight *float64 `json:"lineHeight"`

	// image
	Ref string `json:"ref"`

	// group
	Layers []layerJSON `json:"layers"`
}

type shadowJSON struct {
	Color *string `json:"color"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Blur  float64 `json:"blur"`
}

// paintJSON is either a color string or an object with a color or a
// gradient.
type paintJSON struct {
	Color    *string       `json:"color"`
	Opacity  *float64      `json:"opacity"`
	Gradient *gradientJSON `json:"gradient"`
}

type gradientJSON struct {
	Type   string      `json:"type"`
	From   *[2]float64 `json:"from"`
	To     *[2]float64 `json:"to"`
	Center *[2]float64 `json:"center"`
	Radius *float64    `json:"radius"`
	Stops  []stopJSON  `json:"stops"`
}

type stopJSON struct {
	Offset  *float64 `json:"offset"`
	Color   string   `json:"color"`
	Opacity *float64 `json:"opacity"`
}

func (p *paintJSON) UnmarshalJSON(data []byte) error {
	if isString(data) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = paintJSON{Color: &s}
		return nil
	}
	type plain paintJSON
	return json.Unmarshal(data, (*plain)(p))
}

type fillJSON struct {
	paintJSON
	Rule string
}

func (f *fillJSON) UnmarshalJSON(data []byte) error {
	if err := f.paintJSON.UnmarshalJSON(data); err != nil {
		return err
	}
	if isString(data) {
		return nil
	}
	var extra struct {
		Rule string `json:"rule"`
	}
	if err := json.Unmarshal(data, &extra); err != nil {
		return err
	}
	f.Rule = extra.Rule
	return nil
}

type strokeJSON struct {
	paintJSON
	Width      *float64
	Cap        string
	Join       string
	MiterLimit *float64
	Dash       []float64
	DashPhase  float64
}

func (s *strokeJSON) UnmarshalJSON(data []byte) error {
	if err := s.paintJSON.UnmarshalJSON(data); err != nil {
		return err
	}
	if isString(data) {
		return nil
	}
	var extra struct {
		Width      *float64  `json:"width"`
		Cap        string    `json:"cap"`
		Join       string    `json:"join"`
		MiterLimit *float64  `json:"miterLimit"`
		Dash       []float64 `json:"dash"`
		DashPhase  float64   `json:"dashPhase"`
	}
	if err := json.Unmarshal(data, &extra); err != nil {
		return err
	}
	s.Width = extra.Width
	s.Cap = extra.Cap
	s.Join = extra.Join
	s.MiterLimit = extra.MiterLimit
	s.Dash = extra.Dash
	s.DashPhase = extra.DashPhase
	return nil
}

func isString(data []byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n")
	return len(data) > 0 && data[0] == '"'
}

// parseJSON decodes a document.  The input must consist of exactly one
// JSON object.
func parseJSON(data []byte) (*docJSON, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	doc := &docJSON{}
	if err := dec.Decode(doc); err != nil {
		return nil, malformed("%v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed("trailing data after document")
	}
	return doc, nil
}
