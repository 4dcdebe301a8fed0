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

import (
	"sync"

	"go.uber.org/zap"
)

// Handle identifies a container created by [New].  Handles are never
// reused, so a handle which has been freed stays invalid.
type Handle uint64

// NoHandle is returned by [New] when the document cannot be decoded.
const NoHandle Handle = 0

type registry struct {
	mu   sync.RWMutex
	last Handle
	live map[Handle]*Container
}

var handles = &registry{live: make(map[Handle]*Container)}

func (r *registry) add(c *Container) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last++
	r.live[r.last] = c
	return r.last
}

func (r *registry) get(h Handle) *Container {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.live[h]
}

func (r *registry) remove(h Handle) *Container {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.live[h]
	delete(r.live, h)
	return c
}

func (r *registry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.live)
}

// New decodes a document and returns a handle for the resulting container.
// If the document cannot be decoded, NoHandle is returned.  Every other
// handle must eventually be released using [Handle.Free].
func New(buf []byte, opts ...Option) Handle {
	cfg := newConfig(opts)

	var c *Container
	err := safely(cfg.logger, "decode", func() error {
		var err error
		c, err = Decode(buf, opts...)
		return err
	})
	if err != nil {
		cfg.logger.Info("cannot decode document",
			zap.Int("size", len(buf)),
			zap.Error(err))
		return NoHandle
	}

	h := handles.add(c)
	if cfg.debug {
		w, ht := c.Page()
		cfg.logger.Debug("new container",
			zap.Uint64("handle", uint64(h)),
			zap.Float64("width", w),
			zap.Float64("height", ht))
	}
	return h
}

// Free releases the container.  Freeing NoHandle has no effect.
func (h Handle) Free() {
	if h == NoHandle {
		return
	}
	c := handles.remove(h)
	if c != nil && c.cfg.debug {
		c.cfg.logger.Debug("free container", zap.Uint64("handle", uint64(h)))
	}
}

// ExportPNG renders the container at the given backing scale and encodes
// the result as a PNG image.  The returned Result is never nil.  On
// failure, the Result holds no data and Result.Err gives the reason.
func (h Handle) ExportPNG(backingScale float32, quality int) *Result {
	c := handles.get(h)
	if c == nil {
		return &Result{err: ErrReleased}
	}

	var data []byte
	err := safely(c.cfg.logger, "export", func() error {
		var err error
		data, err = c.Export(float64(backingScale), quality)
		return err
	})
	if err != nil {
		c.cfg.logger.Info("export failed",
			zap.Uint64("handle", uint64(h)),
			zap.Float32("scale", backingScale),
			zap.Error(err))
		return &Result{err: err}
	}
	if c.cfg.debug {
		c.cfg.logger.Debug("export",
			zap.Uint64("handle", uint64(h)),
			zap.Float32("scale", backingScale),
			zap.Int("quality", quality),
			zap.Int("bytes", len(data)))
	}
	return &Result{data: data}
}
