package animator

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/glyphfx/internal/engine/meshbuf"
	"github.com/Faultbox/glyphfx/internal/layout"
	"github.com/Faultbox/glyphfx/pkg/glyph"
	"github.com/Faultbox/glyphfx/pkg/math"
	"github.com/Faultbox/glyphfx/pkg/modifier"
)

var approx = cmpopts.EquateApprox(0, 1e-4)

// funcAnim adapts a function to the Animation interface.
type funcAnim struct {
	name string
	fn   func(ctx *Context) error
}

var emptySchema = NewSchema()

func (f funcAnim) Name() string               { return f.name }
func (f funcAnim) Schema() *Schema            { return emptySchema }
func (f funcAnim) Animate(ctx *Context) error { return f.fn(ctx) }

func newAnimator(t *testing.T, text string, opts ...Option) *Animator {
	t.Helper()
	a := New(opts...)
	if err := a.SetText(text); err != nil {
		t.Fatalf("SetText failed: %v", err)
	}
	return a
}

func layoutWithColor(c glyph.Color32) layout.Options {
	opts := layout.DefaultOptions()
	opts.Color = c
	return opts
}

func quadAt(t *testing.T, a *Animator, i int) glyph.Quad {
	t.Helper()
	q, err := a.Buffer().Quad(i * glyph.CornerCount)
	if err != nil {
		t.Fatalf("Quad(%d) failed: %v", i, err)
	}
	return q
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	want := []string{"fade", "grow", "jump", "palette", "scroll", "shake", "skew", "spin", "tumble", "wave"}
	if diff := cmp.Diff(want, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if _, err := r.Lookup("nope"); !errors.Is(err, ErrUnknownAnimation) {
		t.Errorf("Lookup(nope) error = %v, want ErrUnknownAnimation", err)
	}
}

func TestUpdateUploadsOnlyChanges(t *testing.T) {
	a := newAnimator(t, "ab")
	a.Add(Invocation{
		Animation: funcAnim{name: "nudge", fn: func(ctx *Context) error {
			if ctx.Time < 1 {
				ctx.Modifiers.SetPositionDelta(math.Vec3{Y: 1})
			}
			return nil
		}},
		From: 1,
		To:   -1,
	})
	rest0 := a.Table().At(0).Rest()
	rest1 := a.Table().At(1).Rest()

	// First frame rewrites every channel of every character.
	stats := a.Update(0.5)
	if stats.Uploaded != 2 || stats.Uploads != meshbuf.All {
		t.Errorf("frame 1: uploaded %d chars, channels %v", stats.Uploaded, stats.Uploads)
	}
	if got := quadAt(t, a, 0); got != rest0 {
		t.Errorf("untouched char changed: %v", got)
	}
	if got := quadAt(t, a, 1)[glyph.BottomLeft].Position; got != rest1[glyph.BottomLeft].Position.Add(math.Vec3{Y: 1}) {
		t.Errorf("char 1 BL = %v, want rest + (0,1,0)", got)
	}

	// Still moving: only positions of char 1.
	stats = a.Update(0.25)
	if stats.Uploaded != 1 || stats.Uploads != meshbuf.Positions {
		t.Errorf("frame 2: uploaded %d chars, channels %v", stats.Uploaded, stats.Uploads)
	}

	// Animation stops writing; char 1 is uploaded once more to restore it.
	stats = a.Update(0.5)
	if stats.Uploaded != 1 || stats.Uploads != meshbuf.Positions {
		t.Errorf("frame 3: uploaded %d chars, channels %v", stats.Uploaded, stats.Uploads)
	}
	if got := quadAt(t, a, 1); got != rest1 {
		t.Errorf("char 1 not restored: %v", got)
	}

	stats = a.Update(0.5)
	if stats.Uploaded != 0 || stats.Uploads != meshbuf.None {
		t.Errorf("frame 4: uploaded %d chars, channels %v", stats.Uploaded, stats.Uploads)
	}
	if stats.Resolved != 2 || stats.Frame != 4 || a.Frame() != 4 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestUpdateCombinesInRegistrationOrder(t *testing.T) {
	a := newAnimator(t, "a")
	var order []string
	for _, name := range []string{"first", "second"} {
		a.Add(Invocation{Animation: funcAnim{name: name, fn: func(ctx *Context) error {
			order = append(order, name)
			ctx.Modifiers.SetPositionDelta(math.Vec3{X: 1})
			return nil
		}}, To: -1})
	}

	a.Update(0.1)
	if !slices.Equal(order, []string{"first", "second"}) {
		t.Errorf("order = %v", order)
	}
	if got := a.Table().At(0).Modifiers.PositionDelta(); got != (math.Vec3{X: 2}) {
		t.Errorf("combined delta = %v, want (2,0,0)", got)
	}
}

func TestUpdateStartDelay(t *testing.T) {
	a := newAnimator(t, "a")
	var times []float32
	a.Add(Invocation{Animation: funcAnim{name: "late", fn: func(ctx *Context) error {
		times = append(times, ctx.Time)
		return nil
	}}, To: -1, Start: 1})

	a.Update(0.5)
	a.Update(1)
	if diff := cmp.Diff([]float32{0.5}, times, approx); diff != "" {
		t.Errorf("local times mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateFadeIn(t *testing.T) {
	a := newAnimator(t, "a", WithDefaultColor(glyph.RGBA(100, 100, 100, 255)))
	a.Add(Invocation{Animation: funcAnim{name: "tint", fn: func(ctx *Context) error {
		ctx.Modifiers.SetPositionDelta(math.Vec3{Y: 2})
		for _, c := range glyph.Corners {
			if err := ctx.Mesh.SetColor(c, modifier.OverrideRGB(glyph.Black)); err != nil {
				return err
			}
		}
		return nil
	}}, To: -1, FadeIn: 1})
	rest := a.Table().At(0).Rest()

	a.Update(0.5)
	q := quadAt(t, a, 0)
	if diff := cmp.Diff(rest[glyph.TopLeft].Position.Add(math.Vec3{Y: 1}), q[glyph.TopLeft].Position, approx); diff != "" {
		t.Errorf("half-faded position mismatch (-want +got):\n%s", diff)
	}
	// RGB blends from the default color; alpha is left to the rest pose.
	if want := glyph.RGBA(50, 50, 50, 255); q[glyph.TopLeft].Color != want {
		t.Errorf("half-faded color = %v, want %v", q[glyph.TopLeft].Color, want)
	}

	a.Update(1)
	q = quadAt(t, a, 0)
	if q[glyph.TopLeft].Color != glyph.Black {
		t.Errorf("fully faded color = %v, want black", q[glyph.TopLeft].Color)
	}
	if diff := cmp.Diff(rest[glyph.TopLeft].Position.Add(math.Vec3{Y: 2}), q[glyph.TopLeft].Position, approx); diff != "" {
		t.Errorf("fully faded position mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateRotationCapIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	a := newAnimator(t, "a", WithLogger(zap.New(core)))

	many := funcAnim{name: "many", fn: func(ctx *Context) error {
		for range 60 {
			if err := ctx.Modifiers.AddRotation(math.Vec3{Z: 1}, math.Vec3{}); err != nil {
				return err
			}
		}
		return nil
	}}
	a.Add(Invocation{Animation: many, To: -1})
	a.Add(Invocation{Animation: many, To: -1})

	stats := a.Update(0.1)
	if stats.Warnings != 1 {
		t.Errorf("Warnings = %d, want 1", stats.Warnings)
	}
	if n := logs.FilterMessage("combine failed").Len(); n != 1 {
		t.Errorf("logged %d combine warnings, want 1", n)
	}
	if n := len(a.Table().At(0).Modifiers.Rotations()); n != 60 {
		t.Errorf("rotations = %d, want the first 60 only", n)
	}
}

func TestUpdateAnimationErrorSkipsContribution(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	a := newAnimator(t, "a", WithLogger(zap.New(core)))
	a.Add(Invocation{Animation: funcAnim{name: "broken", fn: func(ctx *Context) error {
		ctx.Modifiers.SetPositionDelta(math.Vec3{X: 5})
		return errors.New("boom")
	}}, To: -1})

	stats := a.Update(0.1)
	if stats.Warnings != 1 || logs.FilterMessage("animation failed").Len() != 1 {
		t.Errorf("error not reported: %+v", stats)
	}
	if a.Table().At(0).Modifiers.Has(modifier.CharPositionDelta) {
		t.Error("failed contribution should not be combined")
	}
}

func TestAddByName(t *testing.T) {
	a := newAnimator(t, "abc")

	if err := a.AddByName("wave", map[string]string{"amp": "2"}, 0, -1, 0, 0); err != nil {
		t.Fatalf("AddByName failed: %v", err)
	}
	if got := a.Invocations()[0].Params.Float("amplitude"); got != 2 {
		t.Errorf("amplitude = %v, want 2", got)
	}
	if err := a.AddByName("warp", nil, 0, -1, 0, 0); !errors.Is(err, ErrUnknownAnimation) {
		t.Errorf("unknown name error = %v", err)
	}
	if err := a.AddByName("wave", map[string]string{"amp": "high"}, 0, -1, 0, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("bad parameter error = %v", err)
	}
	if len(a.Invocations()) != 1 {
		t.Errorf("failed adds should not register invocations")
	}
}

func TestSetTextResetsState(t *testing.T) {
	a := newAnimator(t, "ab")
	a.Add(Invocation{Animation: shake{}, To: -1})
	a.Update(0.1)
	if a.arena.Len() != 2 {
		t.Fatalf("arena holds %d states, want 2", a.arena.Len())
	}

	if err := a.SetText("xyz"); err != nil {
		t.Fatal(err)
	}
	if a.arena.Len() != 0 || a.Buffer().VertexCount() != 12 {
		t.Errorf("arena %d states, buffer %d vertices", a.arena.Len(), a.Buffer().VertexCount())
	}
	if err := a.SetText("\xff"); err == nil {
		t.Error("invalid UTF-8 should fail")
	}
}

func TestBuiltinsRunWithDefaults(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	a := newAnimator(t, "hi there", WithLogger(zap.New(core)))
	for _, anim := range Builtins() {
		a.Add(Invocation{Animation: anim, To: -1, FadeIn: 0.2})
	}
	for range 10 {
		a.Update(1.0 / 30)
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected warnings: %v", logs.All())
	}
}

func TestShakeIsDeterministic(t *testing.T) {
	run := func() glyph.Quad {
		a := newAnimator(t, "ab")
		a.Add(Invocation{Animation: shake{}, To: -1})
		for range 5 {
			a.Update(0.03)
		}
		return quadAt(t, a, 1)
	}
	first, second := run(), run()
	if first != second {
		t.Errorf("shake differs between runs: %v vs %v", first, second)
	}
}

func TestJumpUsesTransformPath(t *testing.T) {
	a := newAnimator(t, "a")
	a.Add(Invocation{Animation: jump{}, To: -1})
	a.Update(0.5)

	ch := a.Table().At(0)
	if !ch.PositionDirty() || ch.Modifiers.Flags() != modifier.CharNone {
		t.Error("jump should move the character through its transform only")
	}
	if got, rest := quadAt(t, a, 0)[glyph.BottomLeft].Position.Y, ch.Rest()[glyph.BottomLeft].Position.Y; got <= rest {
		t.Errorf("jump did not lift the character: %v <= %v", got, rest)
	}
}

func TestFadeInCoversTransformPath(t *testing.T) {
	vals, err := jump{}.Schema().Parse(map[string]string{"phase": "0"})
	if err != nil {
		t.Fatal(err)
	}
	lift := func(fadeIn float32) float32 {
		a := newAnimator(t, "a")
		a.Add(Invocation{Animation: jump{}, Params: vals, To: -1, FadeIn: fadeIn})
		a.Update(0.5)
		ch := a.Table().At(0)
		if ch.RotationDirty() || ch.ScaleDirty() {
			t.Errorf("fade-in touched fields jump never writes (fade_in=%v)", fadeIn)
		}
		return ch.Position().Y - ch.InitialPosition().Y
	}

	tests := []struct {
		fadeIn float32
		want   float32
	}{
		{0, 0.5},
		{1, 0.25},
		{10, 0.025},
	}
	for _, tt := range tests {
		if got := lift(tt.fadeIn); !cmp.Equal(got, tt.want, approx) {
			t.Errorf("fade_in=%v: lift = %v, want %v", tt.fadeIn, got, tt.want)
		}
	}
}

func TestFadeInBlendsTumbleRotation(t *testing.T) {
	vals, err := tumble{}.Schema().Parse(map[string]string{"angle": "90", "duration": "4", "squash": "0"})
	if err != nil {
		t.Fatal(err)
	}
	a := newAnimator(t, "a")
	a.Add(Invocation{Animation: tumble{}, Params: vals, To: -1, FadeIn: 2})
	a.Update(1)

	// Unfaded, tumble is at its +90 key; half faded it is halfway there.
	want := math.QuatFromEuler(math.Vec3{Z: 45})
	if diff := cmp.Diff(want, a.Table().At(0).Rotation(), approx); diff != "" {
		t.Errorf("rotation mismatch (-want +got):\n%s", diff)
	}
}

func TestFadeKeepsHue(t *testing.T) {
	a := newAnimator(t, "a", WithLayout(layoutWithColor(glyph.RGBA(10, 20, 30, 255))))
	vals, err := fade{}.Schema().Parse(map[string]string{"min": "0", "max": "0"})
	if err != nil {
		t.Fatal(err)
	}
	a.Add(Invocation{Animation: fade{}, Params: vals, To: -1})
	a.Update(0.1)

	if got := quadAt(t, a, 0)[glyph.BottomRight].Color; got != glyph.RGBA(10, 20, 30, 0) {
		t.Errorf("color = %v, want rest RGB with zero alpha", got)
	}
}

func TestPaletteColor(t *testing.T) {
	red, green, blue := glyph.RGBA(255, 0, 0, 255), glyph.RGBA(0, 255, 0, 255), glyph.RGBA(0, 0, 255, 255)
	colors := []glyph.Color32{red, green, blue}

	tests := []struct {
		name   string
		colors []glyph.Color32
		v      float32
		want   glyph.Color32
	}{
		{"trough", colors, 0, red},
		{"crest", colors, 1, blue},
		{"middle stop", colors, 0.5, green},
		{"between stops", colors, 0.25, glyph.RGBA(128, 128, 0, 255)},
		{"single color", []glyph.Color32{green}, 0.7, green},
		{"empty", nil, 0.3, glyph.White},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := paletteColor(tt.colors, tt.v); got != tt.want {
				t.Errorf("paletteColor(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestTriangle(t *testing.T) {
	tests := []struct {
		x, want float32
	}{
		{0, 0}, {0.5, 0.5}, {1, 1}, {1.5, 0.5}, {2, 0}, {-0.5, 0.5},
	}
	for _, tt := range tests {
		if got := triangle(tt.x); !cmp.Equal(got, tt.want, approx) {
			t.Errorf("triangle(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestTumbleUsesPivotAndScale(t *testing.T) {
	a := newAnimator(t, "a")
	vals, err := tumble{}.Schema().Parse(map[string]string{"dur": "2"})
	if err != nil {
		t.Fatal(err)
	}
	a.Add(Invocation{Animation: tumble{}, Params: vals, To: -1})
	a.Update(1) // Halfway: no rotation, full squash

	ch := a.Table().At(0)
	if diff := cmp.Diff(math.QuatIdentity(), ch.Rotation(), approx); diff != "" {
		t.Errorf("rotation at the midpoint mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(math.Vec3{X: 1.2, Y: 0.8, Z: 1}, ch.Scale(), approx); diff != "" {
		t.Errorf("scale mismatch (-want +got):\n%s", diff)
	}
	if ch.Pivot() != ch.Rest()[glyph.BottomLeft].Position {
		t.Errorf("pivot = %v, want bottom-left corner", ch.Pivot())
	}
}
