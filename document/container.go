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
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// DocumentEntry is the name of the zip entry which holds the document.
const DocumentEntry = "document.json"

// Format identifies the outer container of a document.
type Format int

// These are the supported container formats.
const (
	FormatUnknown Format = iota
	FormatJSON
	FormatZip
	FormatGzip
	FormatZstd
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatZip:
		return "zip"
	case FormatGzip:
		return "gzip"
	case FormatZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

var (
	magicZip  = []byte("PK\x03\x04")
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	utf8BOM   = []byte{0xef, 0xbb, 0xbf}
)

// Sniff determines the container format from the first bytes of buf.
func Sniff(buf []byte) Format {
	switch {
	case bytes.HasPrefix(buf, magicZip):
		return FormatZip
	case bytes.HasPrefix(buf, magicGzip):
		return FormatGzip
	case bytes.HasPrefix(buf, magicZstd):
		return FormatZstd
	case isJSONObject(buf):
		return FormatJSON
	default:
		return FormatUnknown
	}
}

func isJSONObject(buf []byte) bool {
	buf = bytes.TrimLeft(bytes.TrimPrefix(buf, utf8BOM), " \t\r\n")
	return len(buf) > 0 && buf[0] == '{'
}

// source is an unpacked input buffer.
type source struct {
	format Format
	doc    []byte      // the JSON document, without BOM
	zip    *zip.Reader // nil unless format is FormatZip

	// budget is the number of bytes which may still be decompressed.
	budget int64
}

func unpack(buf []byte, lim *Limits) (*source, error) {
	if len(buf) == 0 {
		return nil, ErrEmpty
	}
	if int64(len(buf)) > lim.MaxDocumentBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(buf))
	}

	s := &source{format: Sniff(buf), budget: lim.MaxDecompressedBytes}
	var err error
	switch s.format {
	case FormatJSON:
		s.doc = buf
	case FormatZip:
		s.zip, err = zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
		if err != nil {
			return nil, malformed("zip: %v", err)
		}
		var ok bool
		s.doc, ok, err = s.file(DocumentEntry)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, malformed("zip package has no %s", DocumentEntry)
		}
	case FormatGzip:
		var zr *gzip.Reader
		zr, err = gzip.NewReader(bytes.NewReader(buf))
		if err != nil {
			return nil, malformed("gzip: %v", err)
		}
		s.doc, err = s.read(zr)
		zr.Close()
		if err != nil {
			return nil, err
		}
	case FormatZstd:
		s.doc, err = s.unzstd(buf)
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnsupportedFormat
	}

	if s.format != FormatJSON && !isJSONObject(s.doc) {
		return nil, malformed("%s container does not hold a JSON document", s.format)
	}
	s.doc = bytes.TrimPrefix(s.doc, utf8BOM)
	return s, nil
}

// read reads r to the end, charging the data to the decompression budget.
func (s *source) read(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.budget+1))
	if err != nil {
		return nil, malformed("%v", err)
	}
	if int64(len(data)) > s.budget {
		return nil, fmt.Errorf("%w: decompressed data exceeds %d bytes", ErrTooLarge, s.budget)
	}
	s.budget -= int64(len(data))
	return data, nil
}

func (s *source) unzstd(buf []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(uint64(max(s.budget, 1))))
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	data, err := dec.DecodeAll(buf, nil)
	switch {
	case errors.Is(err, zstd.ErrDecoderSizeExceeded), errors.Is(err, zstd.ErrWindowSizeExceeded):
		return nil, fmt.Errorf("%w: decompressed data exceeds %d bytes", ErrTooLarge, s.budget)
	case err != nil:
		return nil, malformed("zstd: %v", err)
	case int64(len(data)) > s.budget:
		return nil, fmt.Errorf("%w: decompressed data exceeds %d bytes", ErrTooLarge, s.budget)
	}
	s.budget -= int64(len(data))
	return data, nil
}

// file returns the contents of a zip entry.  The second return value is
// false if the input is not a zip package or has no such entry.
func (s *source) file(name string) ([]byte, bool, error) {
	if s.zip == nil {
		return nil, false, nil
	}
	for _, f := range s.zip.File {
		if f.Name != name {
			continue
		}
		if f.UncompressedSize64 > uint64(s.budget) {
			return nil, false, fmt.Errorf("%w: zip entry %q has %d bytes", ErrTooLarge, name, f.UncompressedSize64)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, false, malformed("zip entry %q: %v", name, err)
		}
		data, err := s.read(rc)
		rc.Close()
		if err != nil {
			return nil, false, err
		}
		return data, true, nil
	}
	return nil, false, nil
}
