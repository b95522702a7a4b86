// Package character holds the per-character runtime state driven by the
// animator: the immutable rest pose, the simple transform path and the
// modifier pair that animations combine into each frame.
package character

import (
	"github.com/Faultbox/glyphfx/pkg/glyph"
	"github.com/Faultbox/glyphfx/pkg/math"
	"github.com/Faultbox/glyphfx/pkg/modifier"
)

// Info is addressing metadata from the layout. The resolver never reads it.
type Info struct {
	Index   int  // Position in the source string (runes)
	Rune    rune // The character itself
	Line    int
	Word    int
	Page    int
	Visible bool // False for whitespace and control runes
}

// Character is one laid-out glyph and its animation state.
type Character struct {
	Info Info

	rest            glyph.Quad
	initialPosition math.Vec3

	position math.Vec3
	rotation math.Quat
	scale    math.Vec3
	pivot    math.Vec3

	// Combined contributions for the current frame
	Modifiers modifier.CharacterModifiers
	Mesh      modifier.MeshModifiers
}

// New creates a character from its rest-pose quad. The initial position is
// the centroid of the quad.
func New(info Info, rest glyph.Quad) *Character {
	c := &Character{
		Info:            info,
		rest:            rest,
		initialPosition: rest.Centroid(),
	}
	c.ResetTransform()
	return c
}

// Rest returns a copy of the rest-pose quad.
func (c *Character) Rest() glyph.Quad {
	return c.rest
}

// InitialPosition returns the centroid of the rest pose.
func (c *Character) InitialPosition() math.Vec3 {
	return c.initialPosition
}

// InitialRotation is always the identity.
func (c *Character) InitialRotation() math.Quat {
	return math.QuatIdentity()
}

// InitialScale is always (1, 1, 1).
func (c *Character) InitialScale() math.Vec3 {
	return math.Vec3One
}

func (c *Character) Position() math.Vec3 { return c.position }
func (c *Character) Rotation() math.Quat { return c.rotation }
func (c *Character) Scale() math.Vec3    { return c.scale }
func (c *Character) Pivot() math.Vec3    { return c.pivot }

func (c *Character) SetPosition(p math.Vec3) { c.position = p }
func (c *Character) SetRotation(q math.Quat) { c.rotation = q }
func (c *Character) SetScale(s math.Vec3)    { c.scale = s }

// SetPivot sets the point rotations of the transform path are centered on.
func (c *Character) SetPivot(p math.Vec3) { c.pivot = p }

func (c *Character) PositionDirty() bool { return c.position != c.initialPosition }
func (c *Character) RotationDirty() bool { return c.rotation != c.InitialRotation() }
func (c *Character) ScaleDirty() bool    { return c.scale != c.InitialScale() }
func (c *Character) PivotDirty() bool    { return c.pivot != c.initialPosition }

// VerticesDirty reports whether any vertex delta is active.
func (c *Character) VerticesDirty() bool { return c.Mesh.Has(modifier.MeshDeltas) }

// ColorsDirty reports whether any corner overrides RGB.
func (c *Character) ColorsDirty() bool { return c.Mesh.AnyColor(modifier.ChannelRGB) }

// AlphasDirty reports whether any corner overrides alpha.
func (c *Character) AlphasDirty() bool { return c.Mesh.AnyColor(modifier.ChannelAlpha) }

// UVsDirty reports whether any UV override is active.
func (c *Character) UVsDirty() bool { return c.Mesh.Has(modifier.MeshUVs) }

// GeometryDirty reports whether the resolved positions can differ from
// the rest pose.
func (c *Character) GeometryDirty() bool {
	return c.PositionDirty() || c.RotationDirty() || c.ScaleDirty() ||
		c.VerticesDirty() || c.Modifiers.Flags() != modifier.CharNone
}

func (c *Character) ResetPosition() { c.position = c.initialPosition }
func (c *Character) ResetRotation() { c.rotation = c.InitialRotation() }
func (c *Character) ResetScale()    { c.scale = c.InitialScale() }
func (c *Character) ResetPivot()    { c.pivot = c.initialPosition }

func (c *Character) ResetVertices() { c.Mesh.ClearFlags(modifier.MeshDeltas) }
func (c *Character) ResetColors()   { c.Mesh.ClearFlags(modifier.MeshColors) }
func (c *Character) ResetUVs()      { c.Mesh.ClearFlags(modifier.MeshUVs) }

// ResetTransform restores position, rotation, scale and pivot.
func (c *Character) ResetTransform() {
	c.ResetPosition()
	c.ResetRotation()
	c.ResetScale()
	c.ResetPivot()
}

// Reset restores the transform and clears every mesh modifier.
func (c *Character) Reset() {
	c.ResetTransform()
	c.Mesh.Clear()
}

// BeginFrame clears all state written during the previous frame.
func (c *Character) BeginFrame() {
	c.Reset()
	c.Modifiers.Clear()
}

// Resolve computes this frame's quad: the modifier pipeline first, then the
// transform path in the same order (scale about the initial position,
// rotation about the pivot, translation by the position offset).
func (c *Character) Resolve() glyph.Quad {
	q := modifier.Resolve(c.rest, c.initialPosition, &c.Modifiers, &c.Mesh)

	scaled := c.ScaleDirty()
	rotated := c.RotationDirty()
	moved := c.PositionDirty()
	if !scaled && !rotated && !moved {
		return q
	}

	offset := c.position.Sub(c.initialPosition)
	for i := range q {
		p := q[i].Position
		if scaled {
			p = c.initialPosition.Add(p.Sub(c.initialPosition).Mul(c.scale))
		}
		if rotated {
			p = c.rotation.RotateAround(p, c.pivot)
		}
		if moved {
			p = p.Add(offset)
		}
		q[i].Position = p
	}
	return q
}
