// Package animator drives the per-frame modifier pipeline: it runs every
// registered animation over the characters it covers, combines their
// contributions, resolves the final quads and uploads what changed.
package animator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/glyphfx/internal/engine/character"
	"github.com/Faultbox/glyphfx/internal/engine/meshbuf"
	"github.com/Faultbox/glyphfx/internal/layout"
	"github.com/Faultbox/glyphfx/pkg/glyph"
	"github.com/Faultbox/glyphfx/pkg/math"
	"github.com/Faultbox/glyphfx/pkg/modifier"
)

// Invocation is one animation applied to a range of characters.
type Invocation struct {
	Animation Animation
	Params    Values
	From      int     // First character index
	To        int     // One past the last character; negative means the end
	FadeIn    float32 // Seconds over which the contribution blends in
	Start     float32 // Animator time at which the invocation begins
}

func (inv *Invocation) bounds(n int) (from, to int) {
	to = inv.To
	if to < 0 || to > n {
		to = n
	}
	return max(inv.From, 0), to
}

// FrameStats summarizes one Update call.
type FrameStats struct {
	Frame    int
	Resolved int // Characters run through the resolver
	Uploaded int // Characters with at least one channel uploaded
	Warnings int // Animation or combine errors, logged and skipped
	Uploads  meshbuf.Channels
}

// Option configures an Animator.
type Option func(*Animator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(a *Animator) { a.log = l }
}

// WithRegistry sets the registry used by AddByName.
func WithRegistry(r *Registry) Option {
	return func(a *Animator) { a.registry = r }
}

// WithLayout sets the layout options used by SetText.
func WithLayout(opts layout.Options) Option {
	return func(a *Animator) { a.layout = opts }
}

// WithDefaultColor sets the color a fading-in color override blends from
// when nothing else has set one.
func WithDefaultColor(c glyph.Color32) Option {
	return func(a *Animator) {
		for _, corner := range glyph.Corners {
			_ = a.defaults.SetColor(corner, modifier.OverrideColor(c))
		}
	}
}

// Animator owns a character table and the invocations running over it.
type Animator struct {
	log      *zap.Logger
	registry *Registry
	layout   layout.Options

	table       *character.Table
	buf         *meshbuf.Buffer
	invocations []Invocation
	arena       *Arena
	defaults    modifier.MeshModifiers

	time  float32
	frame int

	// Per-invocation contribution, cleared before every Animate call
	scratchChar modifier.CharacterModifiers
	scratchMesh modifier.MeshModifiers

	// Channels uploaded last frame, per character; they must be
	// uploaded again so the buffer returns to the rest pose.
	prev []meshbuf.Channels
}

// New creates an animator with an empty text.
func New(opts ...Option) *Animator {
	a := &Animator{
		log:      zap.NewNop(),
		registry: DefaultRegistry(),
		layout:   layout.DefaultOptions(),
		arena:    NewArena(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.setTable(character.NewTable("", nil))
	return a
}

// SetText lays out text and rebuilds the character table. Invocations are
// kept; their state is dropped.
func (a *Animator) SetText(text string) error {
	t, err := layout.Table(text, a.layout)
	if err != nil {
		return fmt.Errorf("set text: %w", err)
	}
	a.setTable(t)
	a.log.Debug("text set",
		zap.Int("characters", t.Len()),
		zap.Int("vertices", a.buf.VertexCount()))
	return nil
}

func (a *Animator) setTable(t *character.Table) {
	a.table = t
	a.buf = meshbuf.New(t.Len())
	a.arena.Reset()
	a.prev = make([]meshbuf.Channels, t.Len())
	for i, ch := range t.All() {
		// First Update rewrites everything.
		a.prev[i] = meshbuf.All
		_ = a.buf.Upload(i*glyph.CornerCount, ch.Rest(), meshbuf.All)
	}
}

// Add appends an invocation. Invocations run in the order they were added.
func (a *Animator) Add(inv Invocation) {
	if inv.Params.schema == nil {
		inv.Params = inv.Animation.Schema().Defaults()
	}
	a.invocations = append(a.invocations, inv)
}

// AddByName looks up an animation and parses its raw parameters.
func (a *Animator) AddByName(name string, params map[string]string, from, to int, fadeIn, start float32) error {
	anim, err := a.registry.Lookup(name)
	if err != nil {
		return err
	}
	vals, err := anim.Schema().Parse(params)
	if err != nil {
		return fmt.Errorf("animation %q: %w", name, err)
	}
	a.Add(Invocation{
		Animation: anim,
		Params:    vals,
		From:      from,
		To:        to,
		FadeIn:    fadeIn,
		Start:     start,
	})
	return nil
}

// Invocations returns the registered invocations.
func (a *Animator) Invocations() []Invocation {
	return a.invocations
}

// Update advances time by dt and runs one frame.
func (a *Animator) Update(dt float32) FrameStats {
	a.time += dt
	a.frame++
	stats := FrameStats{Frame: a.frame}

	n := a.table.Len()
	for i, ch := range a.table.All() {
		ch.BeginFrame()
		stats.Warnings += a.animate(i, n, ch, dt)

		q := ch.Resolve()
		stats.Resolved++

		now := channelsOf(ch)
		up := now | a.prev[i]
		a.prev[i] = now
		if up == meshbuf.None {
			continue
		}
		if err := a.buf.Upload(i*glyph.CornerCount, q, up); err != nil {
			// The buffer is sized from the table; this is a bug.
			a.log.Error("upload failed", zap.Int("char", i), zap.Error(err))
			continue
		}
		stats.Uploaded++
		stats.Uploads |= up
	}
	return stats
}

// animate runs every invocation covering character i and combines the
// results into ch. It returns the number of errors logged.
func (a *Animator) animate(i, n int, ch *character.Character, dt float32) int {
	warnings := 0
	for k := range a.invocations {
		inv := &a.invocations[k]
		from, to := inv.bounds(n)
		if i < from || i >= to {
			continue
		}
		local := a.time - inv.Start
		if local < 0 {
			continue
		}

		a.scratchChar.Clear()
		a.scratchMesh.Clear()
		ctx := Context{
			Char:      ch,
			Params:    inv.Params,
			State:     a.arena.Get(Key{Char: i, Invocation: k}),
			Time:      local,
			Delta:     dt,
			Segment:   i - from,
			Length:    to - from,
			Modifiers: &a.scratchChar,
			Mesh:      &a.scratchMesh,
		}
		pos, rot, scale := ch.Position(), ch.Rotation(), ch.Scale()
		if err := inv.Animation.Animate(&ctx); err != nil {
			a.log.Warn("animation failed",
				zap.String("animation", inv.Animation.Name()),
				zap.Int("char", i),
				zap.Error(err))
			warnings++
			continue
		}

		if inv.FadeIn > 0 && local < inv.FadeIn {
			t := min(1, local/inv.FadeIn)
			fadeTransform(ch, pos, rot, scale, t)
			fb := modifier.Fallback{Rest: ch.Rest(), Combined: &ch.Mesh, Defaults: &a.defaults}
			modifier.LerpMesh(nil, &a.scratchMesh, t, &fb, &a.scratchMesh)
			if err := modifier.LerpCharacter(nil, &a.scratchChar, t, &a.scratchChar); err != nil {
				a.log.Warn("fade-in failed",
					zap.String("animation", inv.Animation.Name()),
					zap.Int("char", i),
					zap.Error(err))
				warnings++
			}
		}

		ch.Mesh.Combine(&a.scratchMesh)
		if err := ch.Modifiers.Combine(&a.scratchChar); err != nil {
			a.log.Warn("combine failed",
				zap.String("animation", inv.Animation.Name()),
				zap.Int("char", i),
				zap.Int("rotations", len(ch.Modifiers.Rotations())),
				zap.Error(err))
			warnings++
		}
	}
	return warnings
}

// fadeTransform blends the transform an animation wrote this pass back
// towards the values it had before, so fade-in covers the transform path.
// Untouched fields are left exactly as they are.
func fadeTransform(ch *character.Character, pos math.Vec3, rot math.Quat, scale math.Vec3, t float32) {
	if p := ch.Position(); p != pos {
		ch.SetPosition(pos.Lerp(p, t))
	}
	if r := ch.Rotation(); r != rot {
		ch.SetRotation(rot.Slerp(r, t))
	}
	if s := ch.Scale(); s != scale {
		ch.SetScale(scale.Lerp(s, t))
	}
}

// channelsOf reports which vertex arrays of ch differ from the rest pose
// this frame.
func channelsOf(ch *character.Character) meshbuf.Channels {
	var c meshbuf.Channels
	if ch.GeometryDirty() {
		c |= meshbuf.Positions
	}
	if ch.Mesh.Has(modifier.MeshColors) {
		c |= meshbuf.Colors
	}
	if ch.UVsDirty() {
		c |= meshbuf.UVs
	}
	return c
}

// Table returns the current character table.
func (a *Animator) Table() *character.Table { return a.table }

// Buffer returns the vertex buffer written by Update.
func (a *Animator) Buffer() *meshbuf.Buffer { return a.buf }

// Time returns the seconds elapsed across all Update calls.
func (a *Animator) Time() float32 { return a.time }

// Frame returns the number of Update calls.
func (a *Animator) Frame() int { return a.frame }
