package modifier

import (
	"fmt"

	"github.com/Faultbox/glyphfx/pkg/math"
)

// MaxRotations bounds the rotations queued on one character per frame.
// Hitting it means an animation keeps adding rotations without clearing.
const MaxRotations = 100

// CharacterFlags records which whole-character categories are active.
type CharacterFlags uint8

const (
	CharPositionDelta CharacterFlags = 1 << iota
	CharScale
	CharRotations

	CharNone CharacterFlags = 0
	CharAll                 = CharPositionDelta | CharScale | CharRotations
)

// Rotation rotates a character by Euler angles (degrees) around Pivot.
// Pivot is an offset from the character's initial position.
type Rotation struct {
	Euler math.Vec3
	Pivot math.Vec3
}

// CharacterModifiers holds the uniform transforms applied to a whole
// character. The zero value is an untouched set.
type CharacterModifiers struct {
	positionDelta math.Vec3
	scale         math.Mat4 // only meaningful while CharScale is set
	rotations     []Rotation
	flags         CharacterFlags
}

// Flags returns the dirty categories.
func (m *CharacterModifiers) Flags() CharacterFlags {
	return m.flags
}

// Has reports whether any category in mask is dirty.
func (m *CharacterModifiers) Has(mask CharacterFlags) bool {
	return m.flags&mask != 0
}

// PositionDelta returns the uniform translation.
func (m *CharacterModifiers) PositionDelta() math.Vec3 {
	return m.positionDelta
}

// SetPositionDelta replaces the uniform translation.
func (m *CharacterModifiers) SetPositionDelta(v math.Vec3) {
	if m.positionDelta != v {
		m.positionDelta = v
		m.flags |= CharPositionDelta
	}
}

// ScaleDelta returns the scale matrix, identity when unset.
func (m *CharacterModifiers) ScaleDelta() math.Mat4 {
	if !m.Has(CharScale) {
		return math.Identity()
	}
	return m.scale
}

// SetScaleDelta replaces the scale matrix.
func (m *CharacterModifiers) SetScaleDelta(s math.Mat4) {
	if m.ScaleDelta() != s {
		m.scale = s
		m.flags |= CharScale
	}
}

// Rotations returns the queued rotations in application order.
// The slice is owned by m and is only valid until the next mutation.
func (m *CharacterModifiers) Rotations() []Rotation {
	return m.rotations
}

// AddRotation queues a rotation. It is rejected once MaxRotations
// entries are queued.
func (m *CharacterModifiers) AddRotation(euler, pivot math.Vec3) error {
	if len(m.rotations) >= MaxRotations {
		return fmt.Errorf("%w: limit is %d", ErrTooManyRotations, MaxRotations)
	}
	m.rotations = append(m.rotations, Rotation{Euler: euler, Pivot: pivot})
	m.flags |= CharRotations
	return nil
}

// RemoveRotation drops the rotation at index i.
func (m *CharacterModifiers) RemoveRotation(i int) error {
	if i < 0 || i >= len(m.rotations) {
		return fmt.Errorf("%w: %d of %d", ErrRotationIndex, i, len(m.rotations))
	}
	m.rotations = append(m.rotations[:i], m.rotations[i+1:]...)
	if len(m.rotations) == 0 {
		m.flags &^= CharRotations
	}
	return nil
}

// Combine merges other into m: position deltas add, scales multiply
// (m then other) and rotation lists concatenate (m's first). If the
// concatenation would exceed MaxRotations, other's rotations are rejected
// as a whole and the rest of the merge still applies.
func (m *CharacterModifiers) Combine(other *CharacterModifiers) error {
	if other.Has(CharPositionDelta) {
		m.positionDelta = m.positionDelta.Add(other.positionDelta)
		m.flags |= CharPositionDelta
	}
	if other.Has(CharScale) {
		m.scale = m.ScaleDelta().Mul(other.scale)
		m.flags |= CharScale
	}
	if !other.Has(CharRotations) {
		return nil
	}
	if n := len(m.rotations) + len(other.rotations); n > MaxRotations {
		return fmt.Errorf("%w: combining %d rotations into %d exceeds %d",
			ErrTooManyRotations, len(other.rotations), len(m.rotations), MaxRotations)
	}
	m.rotations = append(m.rotations, other.rotations...)
	m.flags |= CharRotations
	return nil
}

// Clear resets every dirty category.
func (m *CharacterModifiers) Clear() {
	m.ClearFlags(m.flags)
}

// ClearFlags resets the categories in mask to defaults.
func (m *CharacterModifiers) ClearFlags(mask CharacterFlags) {
	if mask&CharPositionDelta != 0 {
		m.positionDelta = math.Vec3{}
	}
	if mask&CharScale != 0 {
		m.scale = math.Mat4{}
	}
	if mask&CharRotations != 0 {
		m.rotations = m.rotations[:0]
	}
	m.flags &^= mask
}

// CopyFrom overwrites m with other. The rotation backing array of m is
// reused.
func (m *CharacterModifiers) CopyFrom(other *CharacterModifiers) {
	m.positionDelta = other.positionDelta
	m.scale = other.scale
	m.rotations = append(m.rotations[:0], other.rotations...)
	m.flags = other.flags
}
