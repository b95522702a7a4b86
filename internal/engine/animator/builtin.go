package animator

import (
	gomath "math"
	"math/rand/v2"

	"github.com/Faultbox/glyphfx/pkg/glyph"
	"github.com/Faultbox/glyphfx/pkg/math"
	"github.com/Faultbox/glyphfx/pkg/modifier"
)

// Builtins returns the built-in animations.
func Builtins() []Animation {
	return []Animation{
		wave{}, fade{}, spin{}, grow{}, palette{}, jump{}, shake{}, skew{}, scroll{}, tumble{},
	}
}

func sinf(x float32) float32 { return float32(gomath.Sin(float64(x))) }
func cosf(x float32) float32 { return float32(gomath.Cos(float64(x))) }

const tau = 2 * gomath.Pi

// wave bobs characters up and down with a per-character phase.
type wave struct{}

var waveSchema = NewSchema(
	Param{Name: "amplitude", Aliases: []string{"amp"}, Kind: KindFloat, Default: float32(0.25)},
	Param{Name: "frequency", Aliases: []string{"freq"}, Kind: KindFloat, Default: float32(1)},
	Param{Name: "phase", Kind: KindFloat, Default: float32(0.5)},
)

func (wave) Name() string    { return "wave" }
func (wave) Schema() *Schema { return waveSchema }

func (wave) Animate(ctx *Context) error {
	p := ctx.Params
	y := p.Float("amplitude") * sinf(tau*p.Float("frequency")*ctx.Time-p.Float("phase")*float32(ctx.Segment))
	ctx.Modifiers.SetPositionDelta(math.Vec3{Y: y})
	return nil
}

// fade pulses opacity without touching hue.
type fade struct{}

var fadeSchema = NewSchema(
	Param{Name: "min", Kind: KindInt, Default: 0},
	Param{Name: "max", Kind: KindInt, Default: 255},
	Param{Name: "speed", Kind: KindFloat, Default: float32(1)},
)

func (fade) Name() string    { return "fade" }
func (fade) Schema() *Schema { return fadeSchema }

func (fade) Animate(ctx *Context) error {
	p := ctx.Params
	lo, hi := clampByte(p.Int("min")), clampByte(p.Int("max"))
	w := 0.5 + 0.5*cosf(tau*p.Float("speed")*ctx.Time)
	a := glyph.Color32{A: lo}.Lerp(glyph.Color32{A: hi}, w).A
	for _, c := range glyph.Corners {
		if err := ctx.Mesh.SetColor(c, modifier.OverrideAlpha(a)); err != nil {
			return err
		}
	}
	return nil
}

func clampByte(v int) uint8 {
	return uint8(max(0, min(255, v)))
}

// spin rotates characters around a pivot offset at a constant speed.
type spin struct{}

var spinSchema = NewSchema(
	Param{Name: "speed", Kind: KindFloat, Default: float32(180)}, // degrees per second
	Param{Name: "axis", Kind: KindVec3, Default: math.Vec3{Z: 1}},
	Param{Name: "pivot", Kind: KindVec3, Default: math.Vec3{}},
)

func (spin) Name() string    { return "spin" }
func (spin) Schema() *Schema { return spinSchema }

func (spin) Animate(ctx *Context) error {
	p := ctx.Params
	angle := float32(gomath.Mod(float64(p.Float("speed")*ctx.Time), 360))
	return ctx.Modifiers.AddRotation(p.Vec3("axis").Normalize().Scale(angle), p.Vec3("pivot"))
}

// grow pulses the character scale around its center.
type grow struct{}

var growSchema = NewSchema(
	Param{Name: "scale", Kind: KindFloat, Default: float32(1.5)},
	Param{Name: "speed", Kind: KindFloat, Default: float32(1)},
)

func (grow) Name() string    { return "grow" }
func (grow) Schema() *Schema { return growSchema }

func (grow) Animate(ctx *Context) error {
	p := ctx.Params
	w := 0.5 - 0.5*cosf(tau*p.Float("speed")*ctx.Time)
	s := 1 + (p.Float("scale")-1)*w
	ctx.Modifiers.SetScaleDelta(math.Scale(s, s, 1))
	return nil
}

// palette cycles RGB through a list of colors, leaving alpha alone.
type palette struct{}

var paletteSchema = NewSchema(
	Param{Name: "colors", Kind: KindColors, Default: []glyph.Color32{glyph.RGBA(255, 0, 0, 255), glyph.RGBA(0, 0, 255, 255)}},
	Param{Name: "speed", Kind: KindFloat, Default: float32(0.5)},
	Param{Name: "phase", Kind: KindFloat, Default: float32(0.1)},
)

func (palette) Name() string    { return "palette" }
func (palette) Schema() *Schema { return paletteSchema }

func (palette) Animate(ctx *Context) error {
	p := ctx.Params
	c := paletteColor(p.Colors("colors"), triangle(p.Float("speed")*ctx.Time+p.Float("phase")*float32(ctx.Segment)))
	for _, corner := range glyph.Corners {
		if err := ctx.Mesh.SetColor(corner, modifier.OverrideRGB(c)); err != nil {
			return err
		}
	}
	return nil
}

// triangle maps x onto a wave rising 0..1 over one unit and falling back
// over the next.
func triangle(x float32) float32 {
	f := float32(gomath.Mod(float64(x), 2))
	if f < 0 {
		f += 2
	}
	if f > 1 {
		return 2 - f
	}
	return f
}

// paletteColor picks the color at position v in [0, 1] along colors.
func paletteColor(colors []glyph.Color32, v float32) glyph.Color32 {
	switch {
	case len(colors) == 0:
		return glyph.White
	case len(colors) == 1:
		return colors[0]
	case v <= 0: // trough
		return colors[0]
	case v >= 1: // crest
		return colors[len(colors)-1]
	}
	pos := v * float32(len(colors)-1)
	seg := int(pos)
	return colors[seg].Lerp(colors[seg+1], pos-float32(seg))
}

// jump hops characters through the transform path rather than modifiers.
type jump struct{}

var jumpSchema = NewSchema(
	Param{Name: "height", Kind: KindFloat, Default: float32(0.5)},
	Param{Name: "speed", Kind: KindFloat, Default: float32(1)},
	Param{Name: "phase", Kind: KindFloat, Default: float32(0.3)},
)

func (jump) Name() string    { return "jump" }
func (jump) Schema() *Schema { return jumpSchema }

func (jump) Animate(ctx *Context) error {
	p := ctx.Params
	h := p.Float("height") * float32(gomath.Abs(float64(sinf(gomath.Pi*(p.Float("speed")*ctx.Time-p.Float("phase")*float32(ctx.Segment))))))
	ctx.Char.SetPosition(ctx.Char.Position().Add(math.Vec3{Y: h}))
	return nil
}

// shake jitters characters to a new random offset at a fixed interval.
// The current offset lives in the state arena.
type shake struct{}

var shakeSchema = NewSchema(
	Param{Name: "amplitude", Aliases: []string{"amp"}, Kind: KindFloat, Default: float32(0.05)},
	Param{Name: "interval", Kind: KindFloat, Default: float32(0.05)},
	Param{Name: "seed", Kind: KindInt, Default: 1},
)

func (shake) Name() string    { return "shake" }
func (shake) Schema() *Schema { return shakeSchema }

func (shake) Animate(ctx *Context) error {
	p := ctx.Params
	st := ctx.State
	interval := max(p.Float("interval"), 0.001)

	if !st.Initialized || ctx.Time >= st.Next {
		st.Initialized = true
		st.Step++
		st.Next = ctx.Time + interval
		rng := rand.New(rand.NewPCG(uint64(p.Int("seed")), uint64(ctx.Char.Info.Index)<<32|uint64(st.Step)))
		amp := p.Float("amplitude")
		st.Values[0] = (rng.Float32()*2 - 1) * amp
		st.Values[1] = (rng.Float32()*2 - 1) * amp
	}
	ctx.Modifiers.SetPositionDelta(math.Vec3{X: st.Values[0], Y: st.Values[1]})
	return nil
}

// skew leans the top edge of each character sideways.
type skew struct{}

var skewSchema = NewSchema(
	Param{Name: "amount", Kind: KindFloat, Default: float32(0.3)},
	Param{Name: "speed", Kind: KindFloat, Default: float32(1)},
)

func (skew) Name() string    { return "skew" }
func (skew) Schema() *Schema { return skewSchema }

func (skew) Animate(ctx *Context) error {
	p := ctx.Params
	dx := p.Float("amount") * sinf(tau*p.Float("speed")*ctx.Time)
	if err := ctx.Mesh.SetDelta(glyph.TopLeft, math.Vec3{X: dx}); err != nil {
		return err
	}
	return ctx.Mesh.SetDelta(glyph.TopRight, math.Vec3{X: dx})
}

// scroll slides the UV0 window of each character.
type scroll struct{}

var scrollSchema = NewSchema(
	Param{Name: "velocity", Aliases: []string{"vel"}, Kind: KindVec3, Default: math.Vec3{X: 0.5}},
)

func (scroll) Name() string    { return "scroll" }
func (scroll) Schema() *Schema { return scrollSchema }

func (scroll) Animate(ctx *Context) error {
	off := ctx.Params.Vec3("velocity").Scale(ctx.Time)
	rest := ctx.Char.Rest()
	for _, c := range glyph.Corners {
		if err := ctx.Mesh.SetUV0(c, rest[c].UV0.Add(off)); err != nil {
			return err
		}
	}
	return nil
}

// tumble rocks each character around its bottom-left corner and squashes
// it on the way, sampled from keyframe tracks on the transform path.
type tumble struct{}

var tumbleSchema = NewSchema(
	Param{Name: "angle", Kind: KindFloat, Default: float32(20)}, // degrees
	Param{Name: "squash", Kind: KindFloat, Default: float32(0.2)},
	Param{Name: "duration", Aliases: []string{"dur"}, Kind: KindFloat, Default: float32(1)},
	Param{Name: "phase", Kind: KindFloat, Default: float32(0.1)},
)

func (tumble) Name() string    { return "tumble" }
func (tumble) Schema() *Schema { return tumbleSchema }

func (tumble) Animate(ctx *Context) error {
	p := ctx.Params
	d := max(p.Float("duration"), 0.001)
	angle, squash := p.Float("angle"), p.Float("squash")

	rot := NewTrack(slerp,
		Keyframe[math.Quat]{0, math.QuatIdentity()},
		Keyframe[math.Quat]{d / 4, math.QuatFromEuler(math.Vec3{Z: angle})},
		Keyframe[math.Quat]{d * 3 / 4, math.QuatFromEuler(math.Vec3{Z: -angle})},
		Keyframe[math.Quat]{d, math.QuatIdentity()},
	)
	scale := NewTrack(lerp3,
		Keyframe[math.Vec3]{0, math.Vec3One},
		Keyframe[math.Vec3]{d / 2, math.Vec3{X: 1 + squash, Y: 1 - squash, Z: 1}},
		Keyframe[math.Vec3]{d, math.Vec3One},
	)

	t := float32(gomath.Mod(float64(ctx.Time+p.Float("phase")*float32(ctx.Segment)), float64(d)))
	ch := ctx.Char
	ch.SetPivot(ch.Rest()[glyph.BottomLeft].Position)
	ch.SetRotation(rot.Sample(t, math.QuatIdentity()))
	ch.SetScale(scale.Sample(t, math.Vec3One))
	return nil
}
