// Package config handles glyphtool configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/glyphfx/internal/layout"
	"github.com/Faultbox/glyphfx/pkg/glyph"
	"github.com/Faultbox/glyphfx/pkg/math"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all tool settings.
type Config struct {
	Layout   LayoutConfig   `yaml:"layout"`
	Animator AnimatorConfig `yaml:"animator"`
	Window   WindowConfig   `yaml:"window"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LayoutConfig holds glyph placement settings.
type LayoutConfig struct {
	OriginX     float32 `yaml:"origin_x"`
	OriginY     float32 `yaml:"origin_y"`
	Advance     float32 `yaml:"advance"`
	LineHeight  float32 `yaml:"line_height"`
	GlyphWidth  float32 `yaml:"glyph_width"`
	GlyphHeight float32 `yaml:"glyph_height"`
	Color       string  `yaml:"color"`     // Rest-pose vertex color, hex
	Normalize   bool    `yaml:"normalize"` // Compose text to NFC before layout
}

// AnimatorConfig holds playback settings.
type AnimatorConfig struct {
	DefaultColor string `yaml:"default_color"` // Fade-in fallback color, hex; empty for none
	FPS          int    `yaml:"fps"`
	Frames       int    `yaml:"frames"` // Frames simulated by the resolve command
}

// WindowConfig holds preview window settings.
type WindowConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`
	Scale  int  `yaml:"scale"` // Pixels per world unit
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			Advance:     1,
			LineHeight:  1.2,
			GlyphWidth:  0.9,
			GlyphHeight: 1,
			Color:       "#FFFFFFFF",
			Normalize:   true,
		},
		Animator: AnimatorConfig{
			FPS:    30,
			Frames: 30,
		},
		Window: WindowConfig{
			Width:  960,
			Height: 540,
			VSync:  true,
			Scale:  48,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Layout.Advance > 0, "layout.advance must be positive, got %v", c.Layout.Advance)
	check(c.Layout.LineHeight > 0, "layout.line_height must be positive, got %v", c.Layout.LineHeight)
	check(c.Layout.GlyphWidth > 0, "layout.glyph_width must be positive, got %v", c.Layout.GlyphWidth)
	check(c.Layout.GlyphHeight > 0, "layout.glyph_height must be positive, got %v", c.Layout.GlyphHeight)
	if _, err := glyph.ParseHex(c.Layout.Color); err != nil {
		check(false, "layout.color: %v", err)
	}
	if c.Animator.DefaultColor != "" {
		if _, err := glyph.ParseHex(c.Animator.DefaultColor); err != nil {
			check(false, "animator.default_color: %v", err)
		}
	}
	check(c.Animator.FPS > 0, "animator.fps must be positive, got %d", c.Animator.FPS)
	check(c.Animator.Frames >= 0, "animator.frames must not be negative, got %d", c.Animator.Frames)
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.Scale > 0, "window.scale must be positive, got %d", c.Window.Scale)
	return errs
}

// LayoutOptions converts the layout section. Call Validate first.
func (c *Config) LayoutOptions() layout.Options {
	color, err := glyph.ParseHex(c.Layout.Color)
	if err != nil {
		color = glyph.White
	}
	return layout.Options{
		Origin:      math.Vec2{X: c.Layout.OriginX, Y: c.Layout.OriginY},
		Advance:     c.Layout.Advance,
		LineHeight:  c.Layout.LineHeight,
		GlyphWidth:  c.Layout.GlyphWidth,
		GlyphHeight: c.Layout.GlyphHeight,
		Color:       color,
		Normalize:   c.Layout.Normalize,
	}
}

// DefaultColor returns the animator default color, if one is configured.
func (c *Config) DefaultColor() (glyph.Color32, bool) {
	if c.Animator.DefaultColor == "" {
		return glyph.Color32{}, false
	}
	color, err := glyph.ParseHex(c.Animator.DefaultColor)
	return color, err == nil
}

// FrameDelta returns seconds per frame.
func (c *Config) FrameDelta() float32 {
	return 1 / float32(max(c.Animator.FPS, 1))
}
