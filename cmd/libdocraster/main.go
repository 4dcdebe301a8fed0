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

// Command libdocraster is a C interface to the document rasterizer.  Build
// it with
//
//	go build -buildmode=c-shared -o libdocraster.so ./cmd/libdocraster
//
// The library exports the following functions:
//
//	PRRasterizerContainer *PRRasterizerNew(const char *buffer, unsigned long size);
//	PRRasterizerResult *PRRasterizerExportPNG(PRRasterizerContainer *container,
//	                                          float backingScale, int quality);
//	void PRRasterizerFree(PRRasterizerContainer *container);
//	void PRRasterizerResultFree(PRRasterizerResult *result);
//
// PRRasterizerNew returns NULL if the document cannot be decoded.  The
// buffer of a result is NULL, and its size is zero, if the export failed.
// Result buffers are allocated with malloc and belong to the caller until
// PRRasterizerResultFree is called.
//
// If the environment variable DOCRASTER_DEBUG is set to a non-empty value,
// log messages are written to standard error.
package main

/*
#include <stdlib.h>

typedef struct _PRRasterizerContainer {
	unsigned long long handle;
} PRRasterizerContainer;

typedef struct _PRRasterizerResult {
	char *buffer;
	unsigned long size;
} PRRasterizerResult;
*/
import "C"

import (
	"math"
	"os"
	"unsafe"

	"go.uber.org/zap"

	"seehuhn.de/go/docraster"
)

var options = setup()

func setup() []docraster.Option {
	if os.Getenv("DOCRASTER_DEBUG") == "" {
		return nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil
	}
	return []docraster.Option{
		docraster.WithLogger(logger),
		docraster.WithDebug(true),
	}
}

// copyInput copies n bytes starting at p into Go memory.
func copyInput(p unsafe.Pointer, n uint64) ([]byte, bool) {
	if p == nil || n == 0 || n > math.MaxInt {
		return nil, false
	}
	buf := make([]byte, n)
	copy(buf, unsafe.Slice((*byte)(p), n))
	return buf, true
}

//export PRRasterizerNew
func PRRasterizerNew(buffer *C.char, size C.ulong) *C.PRRasterizerContainer {
	buf, ok := copyInput(unsafe.Pointer(buffer), uint64(size))
	if !ok {
		return nil
	}
	h := docraster.New(buf, options...)
	if h == docraster.NoHandle {
		return nil
	}

	cell := (*C.PRRasterizerContainer)(C.malloc(C.sizeof_PRRasterizerContainer))
	if cell == nil {
		h.Free()
		return nil
	}
	cell.handle = C.ulonglong(h)
	return cell
}

//export PRRasterizerExportPNG
func PRRasterizerExportPNG(container *C.PRRasterizerContainer, backingScale C.float, quality C.int) *C.PRRasterizerResult {
	res := (*C.PRRasterizerResult)(C.malloc(C.sizeof_PRRasterizerResult))
	if res == nil {
		return nil
	}
	res.buffer = nil
	res.size = 0
	if container == nil {
		return res
	}

	out := docraster.Handle(container.handle).ExportPNG(float32(backingScale), int(quality))
	defer out.Free()
	if out.Failed() {
		return res
	}

	data := out.Bytes()
	buf := C.malloc(C.size_t(len(data)))
	if buf == nil {
		return res
	}
	copy(unsafe.Slice((*byte)(buf), len(data)), data)
	res.buffer = (*C.char)(buf)
	res.size = C.ulong(len(data))
	return res
}

//export PRRasterizerFree
func PRRasterizerFree(container *C.PRRasterizerContainer) {
	if container == nil {
		return
	}
	docraster.Handle(container.handle).Free()
	container.handle = 0
	C.free(unsafe.Pointer(container))
}

//export PRRasterizerResultFree
func PRRasterizerResultFree(result *C.PRRasterizerResult) {
	if result == nil {
		return
	}
	C.free(unsafe.Pointer(result.buffer))
	C.free(unsafe.Pointer(result))
}

func main() {}
