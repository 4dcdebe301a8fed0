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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/docraster/scene"
)

// shader gives the premultiplied color of a paint at a device pixel.
type shader interface {
	at(x, y int) [4]float32
}

type solid [4]float32

func (s solid) at(int, int) [4]float32 { return s }

// gradient evaluates a gradient at the center of each device pixel.
type gradient struct {
	inv  matrix.Matrix // device space to paint space
	eval func(vec.Vec2) scene.Color
}

func (g *gradient) at(x, y int) [4]float32 {
	px, py := g.inv.Apply(float64(x)+0.5, float64(y)+0.5)
	return g.eval(vec.Vec2{X: px, Y: py}).Premultiplied()
}

// newShader prepares p for painting with the given user-to-device
// transformation.
func newShader(p scene.Paint, ctm matrix.Matrix) shader {
	var eval func(vec.Vec2) scene.Color
	var last scene.Color
	switch p := p.(type) {
	case scene.Color:
		return solid(p.Premultiplied())
	case *scene.LinearGradient:
		eval, last = p.At, p.Stops[len(p.Stops)-1].Color
	case *scene.RadialGradient:
		eval, last = p.At, p.Stops[len(p.Stops)-1].Color
	default:
		return solid{}
	}

	if singular(ctm) {
		return solid(last.Premultiplied())
	}
	return &gradient{inv: ctm.Inv(), eval: eval}
}
