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

// Command docraster converts a vector document into PNG images.
//
// Usage:
//
//	docraster [-config file.toml] [-scale 1,2,3] [-quality q] [-o pattern] [-debug] input
//
// One image is written for every scale factor.  The output file names are
// obtained from the pattern by replacing {name} with the base name of the
// input file and {scale} with the scale factor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/docraster"
	"seehuhn.de/go/docraster/document"
)

func main() {
	cfg, args, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	} else if err != nil {
		fmt.Fprintln(os.Stderr, "docraster:", err)
		os.Exit(2)
	}

	logger, err := cfg.Log.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "docraster:", err)
		os.Exit(2)
	}
	defer logger.Sync()

	err = run(context.Background(), cfg, args[0], logger)
	if err != nil {
		if document.IsInputError(err) {
			logger.Error("invalid document", zap.String("file", args[0]), zap.Error(err))
		} else {
			logger.Error("export failed", zap.String("file", args[0]), zap.Error(err))
		}
		logger.Sync()
		os.Exit(1)
	}
}

// run decodes the input once and writes one image per scale factor.  The
// images are rendered concurrently.
func run(ctx context.Context, cfg *Config, input string, logger *zap.Logger) error {
	buf, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	start := time.Now()
	c, err := docraster.Decode(buf,
		docraster.WithLogger(logger),
		docraster.WithDebug(cfg.Log.Debug),
		docraster.WithLimits(cfg.Limits.DocumentLimits()),
		docraster.WithMaxPixels(cfg.Limits.MaxPixels))
	if err != nil {
		return err
	}
	w, h := c.Page()
	logger.Debug("decoded",
		zap.String("file", input),
		zap.Float64("width", w),
		zap.Float64("height", h),
		zap.Duration("elapsed", time.Since(start)))

	g, ctx := errgroup.WithContext(ctx)
	for _, scale := range cfg.Export.Scales {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			data, err := c.Export(scale, cfg.Export.Quality)
			if err != nil {
				return fmt.Errorf("scale %g: %w", scale, err)
			}
			out := cfg.Export.OutputName(input, scale)
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			logger.Info("wrote image",
				zap.String("file", out),
				zap.Float64("scale", scale),
				zap.Int("bytes", len(data)),
				zap.Duration("elapsed", time.Since(start)))
			return nil
		})
	}
	return g.Wait()
}
