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

package main

import (
	"bytes"
	"image/png"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/docraster/testcases"
)

func TestCopyInput(t *testing.T) {
	src := []byte("hello")
	buf, ok := copyInput(unsafe.Pointer(&src[0]), uint64(len(src)))
	assert.True(t, ok)
	assert.Equal(t, src, buf)

	src[0] = 'j'
	assert.Equal(t, byte('h'), buf[0], "input is copied")

	_, ok = copyInput(nil, 5)
	assert.False(t, ok)
	_, ok = copyInput(unsafe.Pointer(&src[0]), 0)
	assert.False(t, ok)
}

// callNew passes buf to f.  Test files cannot use cgo, so the C argument
// types are taken from the signature of f.
func callNew[P ~*E, E any, S ~uint32 | ~uint64, R any](f func(P, S) R, buf []byte) R {
	if len(buf) == 0 {
		return f(nil, 0)
	}
	return f(P(unsafe.Pointer(&buf[0])), S(len(buf)))
}

func TestNullArguments(t *testing.T) {
	assert.Nil(t, PRRasterizerNew(nil, 0))

	res := PRRasterizerExportPNG(nil, 1, 50)
	require.NotNil(t, res)
	assert.Nil(t, res.buffer)
	assert.Zero(t, res.size)
	PRRasterizerResultFree(res)

	PRRasterizerFree(nil)
	PRRasterizerResultFree(nil)
}

func TestExportRoundTrip(t *testing.T) {
	doc := testcases.RedSquare()
	c := callNew(PRRasterizerNew, doc.Data)
	require.NotNil(t, c)
	defer PRRasterizerFree(c)

	res := PRRasterizerExportPNG(c, 2, 50)
	require.NotNil(t, res)
	require.NotNil(t, res.buffer)
	require.NotZero(t, res.size)
	data := unsafe.Slice((*byte)(unsafe.Pointer(res.buffer)), res.size)
	img, err := png.Decode(bytes.NewReader(data))
	PRRasterizerResultFree(res)
	require.NoError(t, err)
	assert.Equal(t, int(2*doc.Width), img.Bounds().Dx())
	assert.Equal(t, int(2*doc.Height), img.Bounds().Dy())
	r, g, b, a := img.At(100, 100).RGBA()
	assert.Equal(t, [4]uint32{0xffff, 0, 0, 0xffff}, [4]uint32{r, g, b, a})

	// invalid scale
	res = PRRasterizerExportPNG(c, 0, 50)
	require.NotNil(t, res)
	assert.Nil(t, res.buffer)
	assert.Zero(t, res.size)
	PRRasterizerResultFree(res)
}

func TestNewMalformed(t *testing.T) {
	assert.Nil(t, callNew(PRRasterizerNew, []byte("{")))
	assert.Nil(t, callNew(PRRasterizerNew, nil))
}
