// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads show descriptions.
//
// A show names its dimming curves, its channels with their color
// capabilities and preview pixels, and the size of the preview. Shows are
// written in TOML or YAML:
//
//	[curves]
//	gamma = [{x = 0.0, y = 0.0}, {x = 50.0, y = 25.0}, {x = 100.0, y = 100.0}]
//
//	[[channels]]
//	name   = "Arch"
//	mode   = "discrete"
//	colors = ["red", "green", "blue"]
//	curve  = "gamma"
//	pixels = [{x = 10, y = 10, size = 4}]
//
// [Show.Build] turns a validated show into a ready-to-run [Rig].
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/lightshow"
	"github.com/gogpu/lightshow/channel"
	"github.com/gogpu/lightshow/curve"
	"github.com/gogpu/lightshow/value"
)

// Validation and loading errors. Errors returned by this package wrap one
// of these; test with errors.Is.
var (
	ErrUnsupportedFormat = errors.New("config: unsupported format")
	ErrUnknownCurve      = errors.New("config: unknown curve")
	ErrInvalidColor      = errors.New("config: invalid color")
	ErrDuplicateChannel  = errors.New("config: duplicate channel")
	ErrInvalidChannel    = errors.New("config: invalid channel")
	ErrInvalidPixel      = errors.New("config: invalid pixel")

	// ErrInvalidPoint is curve.ErrInvalidPoint, reported for bad curve
	// control points.
	ErrInvalidPoint = curve.ErrInvalidPoint
)

// Format is a show file syntax.
type Format string

// Supported formats.
const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Show is a complete show description.
type Show struct {
	Name     string                   `toml:"name" yaml:"name"`
	Curves   map[string][]curve.Point `toml:"curves" yaml:"curves"`
	Channels []Channel                `toml:"channels" yaml:"channels"`
	Preview  Preview                  `toml:"preview" yaml:"preview"`
}

// Channel describes one channel.
type Channel struct {
	// ID is the channel's UUID. Empty derives one from Name.
	ID   string `toml:"id" yaml:"id"`
	Name string `toml:"name" yaml:"name"`
	// Mode is "full", "single" or "discrete". Empty means "full".
	Mode string `toml:"mode" yaml:"mode"`
	// Colors are color names or hex values. Single-color channels list
	// exactly one, discrete channels at least one.
	Colors []string `toml:"colors" yaml:"colors"`
	// Curve names an entry of Show.Curves. Empty means linear.
	Curve  string      `toml:"curve" yaml:"curve"`
	Pixels []PixelSpec `toml:"pixels" yaml:"pixels"`
}

// PixelSpec places one preview pixel.
type PixelSpec struct {
	X    int `toml:"x" yaml:"x"`
	Y    int `toml:"y" yaml:"y"`
	Z    int `toml:"z" yaml:"z"`
	Size int `toml:"size" yaml:"size"`
	// Location, when set, is a sub-pixel [x, y] and makes the pixel
	// high-precision.
	Location []float64 `toml:"location" yaml:"location"`
	MaxAlpha uint8     `toml:"max_alpha" yaml:"max_alpha"`
}

// Preview sizes the preview canvas. A zero size fits the canvas around
// the pixels.
type Preview struct {
	Width      int    `toml:"width" yaml:"width"`
	Height     int    `toml:"height" yaml:"height"`
	Zoom       int    `toml:"zoom" yaml:"zoom"`
	Background string `toml:"background" yaml:"background"`
	Labels     bool   `toml:"labels" yaml:"labels"`
}

// Load reads and validates the show at path. The format follows the file
// extension.
func Load(path string) (*Show, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	s, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	lightshow.Logger().Info("config: show loaded",
		"path", path, "name", s.Name, "channels", len(s.Channels), "curves", len(s.Curves))
	return s, nil
}

// Decode reads and validates a show from r.
func Decode(r io.Reader, format Format) (*Show, error) {
	var s Show
	switch format {
	case TOML:
		md, err := toml.NewDecoder(r).Decode(&s)
		if err != nil {
			return nil, fmt.Errorf("config: parse toml: %w", err)
		}
		for _, key := range md.Undecoded() {
			lightshow.Logger().Warn("config: unknown key ignored", "key", key.String())
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the show for consistency and reports every problem found.
func (s *Show) Validate() error {
	var errs []error
	for name, pts := range s.Curves {
		if err := curve.New(pts...).Validate(); err != nil {
			errs = append(errs, fmt.Errorf("curve %q: %w", name, err))
		}
	}

	ids := make(map[channel.ID]string, len(s.Channels))
	names := make(map[channel.ID]bool, len(s.Channels))
	for i := range s.Channels {
		c := &s.Channels[i]
		if err := s.validateChannel(c); err != nil {
			errs = append(errs, err)
			continue
		}
		id, _ := c.channelID()
		if prev, ok := ids[id]; ok {
			errs = append(errs, fmt.Errorf("%w: %q and %q share id %s", ErrDuplicateChannel, prev, c.Name, id))
			continue
		}
		ids[id] = c.Name
		byName := channel.IDFromName(c.Name)
		if names[byName] {
			errs = append(errs, fmt.Errorf("%w: name %q", ErrDuplicateChannel, c.Name))
			continue
		}
		names[byName] = true
	}

	if s.Preview.Background != "" {
		if _, ok := value.ParseColor(s.Preview.Background); !ok {
			errs = append(errs, fmt.Errorf("%w: preview background %q", ErrInvalidColor, s.Preview.Background))
		}
	}
	if s.Preview.Width < 0 || s.Preview.Height < 0 || s.Preview.Zoom < 0 {
		errs = append(errs, fmt.Errorf("%w: negative preview size", ErrInvalidPixel))
	}
	return errors.Join(errs...)
}

func (s *Show) validateChannel(c *Channel) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidChannel)
	}
	if _, err := c.channelID(); err != nil {
		return fmt.Errorf("%w: %q: id %q: %w", ErrInvalidChannel, c.Name, c.ID, err)
	}
	mode, ok := channel.ParseColorMode(c.Mode)
	if !ok {
		return fmt.Errorf("%w: %q: mode %q", ErrInvalidChannel, c.Name, c.Mode)
	}
	if _, err := c.colors(); err != nil {
		return err
	}
	switch {
	case mode == channel.SingleColor && len(c.Colors) != 1:
		return fmt.Errorf("%w: %q: single-color channel needs one color, has %d", ErrInvalidChannel, c.Name, len(c.Colors))
	case mode == channel.MultipleDiscreteColors && len(c.Colors) == 0:
		return fmt.Errorf("%w: %q: discrete channel without colors", ErrInvalidChannel, c.Name)
	}
	if c.Curve != "" {
		if _, ok := s.Curves[c.Curve]; !ok {
			return fmt.Errorf("%w: %q used by channel %q", ErrUnknownCurve, c.Curve, c.Name)
		}
	}
	for i, p := range c.Pixels {
		if p.Size < 0 || (len(p.Location) != 0 && len(p.Location) != 2) {
			return fmt.Errorf("%w: channel %q pixel %d", ErrInvalidPixel, c.Name, i)
		}
	}
	return nil
}

func (c *Channel) channelID() (channel.ID, error) {
	if c.ID == "" {
		return channel.IDFromName(c.Name), nil
	}
	return channel.ParseID(c.ID)
}

func (c *Channel) colors() ([]value.Color, error) {
	out := make([]value.Color, 0, len(c.Colors))
	for _, name := range c.Colors {
		col, ok := value.ParseColor(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q in channel %q", ErrInvalidColor, name, c.Name)
		}
		out = append(out, col)
	}
	return out, nil
}

// Curve returns the named curve, or the linear curve for an empty name.
func (s *Show) Curve(name string) (*curve.Curve, error) {
	if name == "" {
		return curve.Linear(), nil
	}
	pts, ok := s.Curves[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
	}
	return curve.New(pts...), nil
}
