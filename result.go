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

package docraster

// Result holds the outcome of one export.  The methods can be called on a
// nil Result, which behaves like a failed export.
type Result struct {
	data []byte
	err  error
}

// Bytes returns the PNG image, or nil if the export failed.
func (r *Result) Bytes() []byte {
	if r == nil {
		return nil
	}
	return r.data
}

// Size returns the length of the PNG image in bytes.
func (r *Result) Size() int {
	return len(r.Bytes())
}

// Failed reports whether the result holds no image.
func (r *Result) Failed() bool {
	return r.Bytes() == nil
}

// Err returns the reason why the Result holds no image.  It returns nil
// exactly when Failed returns false.
func (r *Result) Err() error {
	if r == nil {
		return ErrReleased
	}
	return r.err
}

// Free releases the image data.  After Free, the Result is empty and Err
// returns [ErrReleased], unless the export had already failed.
func (r *Result) Free() {
	if r == nil {
		return
	}
	r.data = nil
	if r.err == nil {
		r.err = ErrReleased
	}
}
