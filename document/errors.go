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
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned for a zero-length input buffer.
	ErrEmpty = errors.New("empty document")

	// ErrUnsupportedFormat is returned if the input is neither a zip
	// package, a compressed document, nor a JSON document.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrMalformed is returned for structurally invalid documents.
	ErrMalformed = errors.New("malformed document")

	// ErrUnresolvedReference is returned if an image refers to an asset
	// which does not exist or cannot be decoded.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrTooLarge is returned if a document exceeds one of the [Limits].
	ErrTooLarge = errors.New("document too large")
)

// malformed returns an error wrapping ErrMalformed.
func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
