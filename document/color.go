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
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"seehuhn.de/go/docraster/scene"
)

// ParseColor parses a color in one of the forms "#rgb", "#rgba",
// "#rrggbb" or "#rrggbbaa".  The name "transparent" is also accepted.
func ParseColor(s string) (scene.Color, error) {
	if s == "transparent" {
		return scene.Transparent, nil
	}
	if !strings.HasPrefix(s, "#") || strings.IndexFunc(s[1:], notHex) >= 0 {
		return scene.Color{}, malformed("invalid color %q", s)
	}

	rgb, alpha := s, "ff"
	switch len(s) {
	case 4, 7:
		// handled by colorful.Hex
	case 5:
		rgb, alpha = s[:4], strings.Repeat(s[4:5], 2)
	case 9:
		rgb, alpha = s[:7], s[7:9]
	default:
		return scene.Color{}, malformed("invalid color %q", s)
	}

	c, err := colorful.Hex(rgb)
	if err != nil {
		return scene.Color{}, malformed("invalid color %q", s)
	}
	a, err := strconv.ParseUint(alpha, 16, 8)
	if err != nil {
		return scene.Color{}, malformed("invalid color %q", s)
	}
	return scene.Color{Color: c, A: float64(a) / 255}, nil
}

func notHex(r rune) bool {
	return !('0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F')
}
