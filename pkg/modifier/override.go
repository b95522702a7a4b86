package modifier

import "github.com/Faultbox/glyphfx/pkg/glyph"

// Override is a value that may or may not be specified.
type Override[T comparable] struct {
	Set   bool
	Value T
}

// Some returns an override holding v.
func Some[T comparable](v T) Override[T] {
	return Override[T]{Set: true, Value: v}
}

// Merge returns other if it is set, otherwise o.
func (o Override[T]) Merge(other Override[T]) Override[T] {
	if other.Set {
		return other
	}
	return o
}

// Get returns the overridden value, or fallback if unset.
func (o Override[T]) Get(fallback T) T {
	if o.Set {
		return o.Value
	}
	return fallback
}

// ColorChannels selects which parts of a color an override controls.
type ColorChannels uint8

const (
	ChannelRGB ColorChannels = 1 << iota
	ChannelAlpha

	ChannelNone ColorChannels = 0
	ChannelAll                = ChannelRGB | ChannelAlpha
)

// ColorOverride overrides RGB and alpha independently, so an animation
// driving opacity does not clobber one driving hue.
type ColorOverride struct {
	Channels ColorChannels
	Color    glyph.Color32
}

// OverrideColor overrides all four channels.
func OverrideColor(c glyph.Color32) ColorOverride {
	return ColorOverride{Channels: ChannelAll, Color: c}
}

// OverrideRGB overrides only the RGB channels.
func OverrideRGB(c glyph.Color32) ColorOverride {
	return ColorOverride{Channels: ChannelRGB, Color: c}
}

// OverrideAlpha overrides only the alpha channel.
func OverrideAlpha(a uint8) ColorOverride {
	return ColorOverride{Channels: ChannelAlpha, Color: glyph.Color32{A: a}}
}

// IsSet reports whether any channel is overridden.
func (o ColorOverride) IsSet() bool {
	return o.Channels != ChannelNone
}

// OverridesRGB reports whether the RGB channels are overridden.
func (o ColorOverride) OverridesRGB() bool {
	return o.Channels&ChannelRGB != 0
}

// OverridesAlpha reports whether the alpha channel is overridden.
func (o ColorOverride) OverridesAlpha() bool {
	return o.Channels&ChannelAlpha != 0
}

// Merge layers other on top of o. Channels set in other win; the rest
// pass through from o.
func (o ColorOverride) Merge(other ColorOverride) ColorOverride {
	out := o
	if other.OverridesRGB() {
		out.Color.R, out.Color.G, out.Color.B = other.Color.R, other.Color.G, other.Color.B
		out.Channels |= ChannelRGB
	}
	if other.OverridesAlpha() {
		out.Color.A = other.Color.A
		out.Channels |= ChannelAlpha
	}
	return out
}

// Get resolves the color against fallback, channel group by channel group.
func (o ColorOverride) Get(fallback glyph.Color32) glyph.Color32 {
	out := fallback
	if o.OverridesRGB() {
		out.R, out.G, out.B = o.Color.R, o.Color.G, o.Color.B
	}
	if o.OverridesAlpha() {
		out.A = o.Color.A
	}
	return out
}
