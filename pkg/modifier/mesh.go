package modifier

import (
	"github.com/Faultbox/glyphfx/pkg/glyph"
	"github.com/Faultbox/glyphfx/pkg/math"
)

// MeshFlags records which per-vertex categories hold non-default values.
type MeshFlags uint8

const (
	MeshDeltas MeshFlags = 1 << iota
	MeshColors
	MeshUVs

	MeshNone MeshFlags = 0
	MeshAll            = MeshDeltas | MeshColors | MeshUVs
)

// MeshModifiers holds per-corner vertex deltas, color overrides and UV
// overrides. The zero value is an untouched set.
type MeshModifiers struct {
	deltas [glyph.CornerCount]math.Vec3
	colors [glyph.CornerCount]ColorOverride
	uv0    [glyph.CornerCount]Override[math.Vec3]
	uv2    [glyph.CornerCount]Override[math.Vec3]
	flags  MeshFlags
}

// Flags returns the dirty categories.
func (m *MeshModifiers) Flags() MeshFlags {
	return m.flags
}

// Has reports whether any category in mask is dirty.
func (m *MeshModifiers) Has(mask MeshFlags) bool {
	return m.flags&mask != 0
}

// Delta returns the position delta of corner c.
func (m *MeshModifiers) Delta(c glyph.Corner) math.Vec3 {
	return m.deltas[c]
}

// Color returns the color override of corner c.
func (m *MeshModifiers) Color(c glyph.Corner) ColorOverride {
	return m.colors[c]
}

// UV0 returns the UV0 override of corner c.
func (m *MeshModifiers) UV0(c glyph.Corner) Override[math.Vec3] {
	return m.uv0[c]
}

// UV2 returns the UV2 override of corner c.
func (m *MeshModifiers) UV2(c glyph.Corner) Override[math.Vec3] {
	return m.uv2[c]
}

// SetDelta sets the position delta of corner c.
func (m *MeshModifiers) SetDelta(c glyph.Corner, v math.Vec3) error {
	if err := checkCorner(c); err != nil {
		return err
	}
	if m.deltas[c] != v {
		m.deltas[c] = v
		m.flags |= MeshDeltas
	}
	return nil
}

// SetColor sets the color override of corner c.
func (m *MeshModifiers) SetColor(c glyph.Corner, o ColorOverride) error {
	if err := checkCorner(c); err != nil {
		return err
	}
	if m.colors[c] != o {
		m.colors[c] = o
		m.flags |= MeshColors
	}
	return nil
}

// SetUV0 overrides the UV0 coordinate of corner c.
func (m *MeshModifiers) SetUV0(c glyph.Corner, uv math.Vec3) error {
	return m.SetUV0Override(c, Some(uv))
}

// SetUV2 overrides the UV2 coordinate of corner c.
func (m *MeshModifiers) SetUV2(c glyph.Corner, uv math.Vec3) error {
	return m.SetUV2Override(c, Some(uv))
}

// SetUV0Override replaces the UV0 override of corner c, set or not.
func (m *MeshModifiers) SetUV0Override(c glyph.Corner, o Override[math.Vec3]) error {
	if err := checkCorner(c); err != nil {
		return err
	}
	if m.uv0[c] != o {
		m.uv0[c] = o
		m.flags |= MeshUVs
	}
	return nil
}

// SetUV2Override replaces the UV2 override of corner c, set or not.
func (m *MeshModifiers) SetUV2Override(c glyph.Corner, o Override[math.Vec3]) error {
	if err := checkCorner(c); err != nil {
		return err
	}
	if m.uv2[c] != o {
		m.uv2[c] = o
		m.flags |= MeshUVs
	}
	return nil
}

// Combine merges other into m. Deltas add, with each axis clamped to the
// range spanned by the two inputs so stacked deformations cannot run away.
// Color and UV overrides from other win where set.
func (m *MeshModifiers) Combine(other *MeshModifiers) {
	if other.Has(MeshDeltas) {
		for i := range m.deltas {
			a, b := m.deltas[i], other.deltas[i]
			m.deltas[i] = a.Add(b).Clamp(a.Min(b), a.Max(b))
		}
	}
	if other.Has(MeshColors) {
		for i := range m.colors {
			m.colors[i] = m.colors[i].Merge(other.colors[i])
		}
	}
	if other.Has(MeshUVs) {
		for i := range m.uv0 {
			m.uv0[i] = m.uv0[i].Merge(other.uv0[i])
			m.uv2[i] = m.uv2[i].Merge(other.uv2[i])
		}
	}
	m.flags |= other.flags
}

// Clear resets every dirty category.
func (m *MeshModifiers) Clear() {
	m.ClearFlags(m.flags)
}

// ClearFlags resets the categories in mask to defaults.
func (m *MeshModifiers) ClearFlags(mask MeshFlags) {
	if mask&MeshDeltas != 0 {
		m.deltas = [glyph.CornerCount]math.Vec3{}
	}
	if mask&MeshColors != 0 {
		m.colors = [glyph.CornerCount]ColorOverride{}
	}
	if mask&MeshUVs != 0 {
		m.uv0 = [glyph.CornerCount]Override[math.Vec3]{}
		m.uv2 = [glyph.CornerCount]Override[math.Vec3]{}
	}
	m.flags &^= mask
}

// CopyFrom overwrites m with other.
func (m *MeshModifiers) CopyFrom(other *MeshModifiers) {
	*m = *other
}

// AnyColor reports whether some corner overrides the given channels.
func (m *MeshModifiers) AnyColor(ch ColorChannels) bool {
	if !m.Has(MeshColors) {
		return false
	}
	for i := range m.colors {
		if m.colors[i].Channels&ch != 0 {
			return true
		}
	}
	return false
}
