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
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register the WebP decoder
)

// assets resolves image references.  Images are looked up in the
// "assets" map of the document first, then among the entries of a zip
// package.  Every reference is decoded at most once.
type assets struct {
	src       *source
	inline    map[string]string
	maxPixels int
	cache     map[string]*image.NRGBA
}

func newAssets(src *source, inline map[string]string, maxPixels int) *assets {
	return &assets{
		src:       src,
		inline:    inline,
		maxPixels: maxPixels,
		cache:     make(map[string]*image.NRGBA),
	}
}

func (a *assets) image(ref string) (*image.NRGBA, error) {
	if img, ok := a.cache[ref]; ok {
		return img, nil
	}

	data, err := a.lookup(ref)
	if err != nil {
		return nil, err
	}
	img, err := a.decode(ref, data)
	if err != nil {
		return nil, err
	}
	a.cache[ref] = img
	return img, nil
}

func (a *assets) lookup(ref string) ([]byte, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: empty image reference", ErrUnresolvedReference)
	}
	if enc, ok := a.inline[ref]; ok {
		if i := strings.Index(enc, ";base64,"); strings.HasPrefix(enc, "data:") && i >= 0 {
			enc = enc[i+len(";base64,"):]
		}
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(enc))
		if err != nil {
			return nil, fmt.Errorf("%w: asset %q: %v", ErrUnresolvedReference, ref, err)
		}
		return data, nil
	}

	data, ok, err := a.src.file(ref)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnresolvedReference, ref)
	}
	return data, nil
}

func (a *assets) decode(ref string, data []byte) (*image.NRGBA, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: asset %q: %v", ErrUnresolvedReference, ref, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: asset %q is empty", ErrUnresolvedReference, ref)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(a.maxPixels) {
		return nil, fmt.Errorf("%w: asset %q has %dx%d pixels",
			ErrTooLarge, ref, cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: asset %q: %v", ErrUnresolvedReference, ref, err)
	}
	return imaging.Clone(img), nil
}
