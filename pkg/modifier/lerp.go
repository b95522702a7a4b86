package modifier

import (
	"github.com/Faultbox/glyphfx/pkg/glyph"
	"github.com/Faultbox/glyphfx/pkg/math"
)

// Fallback supplies the values a color or UV lerp uses for a side that has
// no override of its own. Lookup order is the side's own value, then
// Combined, then Defaults, then Rest. Combined and Defaults may be nil.
type Fallback struct {
	Rest     glyph.Quad
	Combined *MeshModifiers // The character's modifiers combined so far this frame
	Defaults *MeshModifiers // Animator-wide defaults
}

func (f *Fallback) color(c glyph.Corner) glyph.Color32 {
	v := f.Rest[c].Color
	if f.Defaults != nil {
		v = f.Defaults.colors[c].Get(v)
	}
	if f.Combined != nil {
		v = f.Combined.colors[c].Get(v)
	}
	return v
}

func (f *Fallback) uv0(c glyph.Corner) math.Vec3 {
	v := f.Rest[c].UV0
	if f.Defaults != nil {
		v = f.Defaults.uv0[c].Get(v)
	}
	if f.Combined != nil {
		v = f.Combined.uv0[c].Get(v)
	}
	return v
}

func (f *Fallback) uv2(c glyph.Corner) math.Vec3 {
	v := f.Rest[c].UV2
	if f.Defaults != nil {
		v = f.Defaults.uv2[c].Get(v)
	}
	if f.Combined != nil {
		v = f.Combined.uv2[c].Get(v)
	}
	return v
}

// LerpColor interpolates between two color overrides. At t == 0 the result
// is start and at t == 1 it is end. In between, the result overrides the
// union of both sides' channels, with an unset side resolved to fallback.
// Like LerpUV, t is not clamped; channels saturate at 0 and 255.
func LerpColor(start, end ColorOverride, fallback glyph.Color32, t float32) ColorOverride {
	switch {
	case t == 0:
		return start
	case t == 1:
		return end
	}
	channels := start.Channels | end.Channels
	if channels == ChannelNone {
		return ColorOverride{}
	}
	from := start.Get(fallback)
	to := end.Get(fallback)
	return ColorOverride{Channels: channels, Color: from.Lerp(to, t)}
}

// LerpUV interpolates between two UV overrides with the same rules as
// LerpColor. t is not clamped.
func LerpUV(start, end Override[math.Vec3], fallback math.Vec3, t float32) Override[math.Vec3] {
	switch {
	case t == 0:
		return start
	case t == 1:
		return end
	}
	if !start.Set && !end.Set {
		return Override[math.Vec3]{}
	}
	return Some(start.Get(fallback).Lerp(end.Get(fallback), t))
}

// LerpMesh interpolates from start to end and writes the result to out.
// A nil start means an untouched set and a nil fb falls back to a zero
// rest pose. out may alias start or end.
func LerpMesh(start, end *MeshModifiers, t float32, fb *Fallback, out *MeshModifiers) {
	var neutral MeshModifiers
	if start == nil {
		start = &neutral
	}
	if fb == nil {
		fb = &Fallback{}
	}
	switch {
	case t == 0:
		out.CopyFrom(start)
		return
	case t == 1:
		out.CopyFrom(end)
		return
	}

	var res MeshModifiers
	flags := start.flags | end.flags
	for _, c := range glyph.Corners {
		if flags&MeshDeltas != 0 {
			_ = res.SetDelta(c, start.deltas[c].Lerp(end.deltas[c], t))
		}
		if flags&MeshColors != 0 {
			_ = res.SetColor(c, LerpColor(start.colors[c], end.colors[c], fb.color(c), t))
		}
		if flags&MeshUVs != 0 {
			_ = res.SetUV0Override(c, LerpUV(start.uv0[c], end.uv0[c], fb.uv0(c), t))
			_ = res.SetUV2Override(c, LerpUV(start.uv2[c], end.uv2[c], fb.uv2(c), t))
		}
	}
	out.CopyFrom(&res)
}

// LerpCharacter interpolates from start to end and writes the result to
// out. A nil start means an untouched set. t is not clamped.
//
// Position deltas lerp component-wise. Scales lerp on their signed
// per-axis factors. Rotations are faded against the identity: start's
// rotations are weighted by 1-t and end's by t, pivots unchanged.
// Rotations past MaxRotations are dropped and ErrTooManyRotations is
// returned, but out still receives everything else.
// out may alias start or end.
func LerpCharacter(start, end *CharacterModifiers, t float32, out *CharacterModifiers) error {
	var neutral CharacterModifiers
	if start == nil {
		start = &neutral
	}
	switch {
	case t == 0:
		out.CopyFrom(start)
		return nil
	case t == 1:
		out.CopyFrom(end)
		return nil
	}

	var res CharacterModifiers
	flags := start.flags | end.flags
	if flags&CharPositionDelta != 0 {
		res.SetPositionDelta(start.positionDelta.Lerp(end.positionDelta, t))
	}
	if flags&CharScale != 0 {
		from := start.ScaleDelta().SignedScale()
		to := end.ScaleDelta().SignedScale()
		res.SetScaleDelta(math.ScaleVec(from.Lerp(to, t)))
	}
	var err error
	if flags&CharRotations != 0 {
		for _, r := range start.rotations {
			if err = res.AddRotation(r.Euler.Scale(1-t), r.Pivot); err != nil {
				break
			}
		}
		if err == nil {
			for _, r := range end.rotations {
				if err = res.AddRotation(r.Euler.Scale(t), r.Pivot); err != nil {
					break
				}
			}
		}
	}
	out.CopyFrom(&res)
	return err
}
