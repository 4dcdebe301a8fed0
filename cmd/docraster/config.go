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
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"seehuhn.de/go/docraster/document"
	"seehuhn.de/go/docraster/render"
)

// Config holds the settings of the command.  Values are read from an
// optional TOML file and can be overridden by command line flags.
type Config struct {
	Export ExportConfig `toml:"export"`
	Limits LimitsConfig `toml:"limits"`
	Log    LogConfig    `toml:"log"`
}

// ExportConfig describes the images to produce.
type ExportConfig struct {
	Scales  []float64 `toml:"scales"`
	Quality int       `toml:"quality"`

	// Output is the name of the output files.  The placeholders {name}
	// and {scale} are replaced by the base name of the input file and by
	// the scale factor.
	Output string `toml:"output"`
}

// LimitsConfig bounds the resources used for one document.
type LimitsConfig struct {
	MaxDocumentBytes     int64   `toml:"max_document_bytes"`
	MaxDecompressedBytes int64   `toml:"max_decompressed_bytes"`
	MaxDimension         float64 `toml:"max_dimension"`
	MaxDepth             int     `toml:"max_depth"`
	MaxImagePixels       int     `toml:"max_image_pixels"`
	MaxEdges             int     `toml:"max_edges"`
	MaxPixels            int     `toml:"max_pixels"`
}

// LogConfig selects the log output.
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
	Debug       bool   `toml:"debug"`
}

// DefaultConfig returns the settings used when neither a configuration
// file nor flags are given.
func DefaultConfig() *Config {
	lim := document.DefaultLimits()
	return &Config{
		Export: ExportConfig{
			Scales:  []float64{1},
			Quality: 80,
			Output:  "{name}@{scale}x.png",
		},
		Limits: LimitsConfig{
			MaxDocumentBytes:     lim.MaxDocumentBytes,
			MaxDecompressedBytes: lim.MaxDecompressedBytes,
			MaxDimension:         lim.MaxDimension,
			MaxDepth:             lim.MaxDepth,
			MaxImagePixels:       lim.MaxImagePixels,
			MaxEdges:             lim.MaxEdges,
			MaxPixels:            render.DefaultMaxPixels,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadFile reads settings from a TOML file into cfg.  Keys which are not
// present in the file keep their previous values.
func (cfg *Config) LoadFile(fname string) error {
	meta, err := toml.DecodeFile(fname, cfg)
	if err != nil {
		return err
	}
	if keys := meta.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return fmt.Errorf("%s: unknown settings %s", fname, strings.Join(names, ", "))
	}
	return nil
}

// Validate checks the settings for consistency.
func (cfg *Config) Validate() error {
	if len(cfg.Export.Scales) == 0 {
		return errors.New("no scales given")
	}
	for _, s := range cfg.Export.Scales {
		if !(s > 0) || math.IsInf(s, 0) {
			return fmt.Errorf("invalid scale %g", s)
		}
	}
	if cfg.Export.Output == "" {
		return errors.New("empty output pattern")
	}
	if len(cfg.Export.Scales) > 1 && !strings.Contains(cfg.Export.Output, "{scale}") {
		return fmt.Errorf("output pattern %q needs {scale} for several scales", cfg.Export.Output)
	}
	if _, err := zap.ParseAtomicLevel(cfg.Log.Level); err != nil {
		return err
	}
	return nil
}

// DocumentLimits converts the limits for use with the document decoder.
func (l *LimitsConfig) DocumentLimits() document.Limits {
	return document.Limits{
		MaxDocumentBytes:     l.MaxDocumentBytes,
		MaxDecompressedBytes: l.MaxDecompressedBytes,
		MaxDimension:         l.MaxDimension,
		MaxDepth:             l.MaxDepth,
		MaxImagePixels:       l.MaxImagePixels,
		MaxEdges:             l.MaxEdges,
	}
}

// Logger builds the logger described by the settings.
func (l *LogConfig) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(l.Level)
	if err != nil {
		return nil, err
	}
	if l.Debug {
		level.SetLevel(zap.DebugLevel)
	}

	var zc zap.Config
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = level
	return zc.Build()
}

// OutputName returns the name of the file for the given input and scale.
func (e *ExportConfig) OutputName(input string, scale float64) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	r := strings.NewReplacer(
		"{name}", name,
		"{scale}", strconv.FormatFloat(scale, 'g', -1, 64))
	return r.Replace(e.Output)
}

// scaleList is a flag.Value for a comma-separated list of scale factors.
type scaleList []float64

func (s *scaleList) String() string {
	parts := make([]string, len(*s))
	for i, x := range *s {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (s *scaleList) Set(v string) error {
	var res []float64
	for _, part := range strings.Split(v, ",") {
		x, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return err
		}
		res = append(res, x)
	}
	*s = res
	return nil
}

// parseArgs reads the command line.  Settings from the configuration file
// named by -config are applied first, explicitly given flags take
// precedence.
func parseArgs(args []string, stderr io.Writer) (*Config, []string, error) {
	fs := flag.NewFlagSet("docraster", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: docraster [flags] input")
		fs.PrintDefaults()
	}

	dflt := DefaultConfig()
	configFile := fs.String("config", "", "read settings from this TOML `file`")
	scales := scaleList(dflt.Export.Scales)
	fs.Var(&scales, "scale", "comma-separated list of scale factors")
	quality := fs.Int("quality", dflt.Export.Quality, "PNG compression effort, 0-100")
	output := fs.String("o", dflt.Export.Output, "output file `pattern`")
	maxPixels := fs.Int("max-pixels", dflt.Limits.MaxPixels, "largest number of pixels per image")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, nil, errors.New("exactly one input file is required")
	}

	cfg := dflt
	if *configFile != "" {
		if err := cfg.LoadFile(*configFile); err != nil {
			return nil, nil, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scale":
			cfg.Export.Scales = scales
		case "quality":
			cfg.Export.Quality = *quality
		case "o":
			cfg.Export.Output = *output
		case "max-pixels":
			cfg.Limits.MaxPixels = *maxPixels
		case "debug":
			cfg.Log.Debug = *debug
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}
