package modifier

import (
	"github.com/Faultbox/glyphfx/pkg/glyph"
	"github.com/Faultbox/glyphfx/pkg/math"
)

// Resolve applies the modifier pair to the rest-pose quad and returns the
// final quad for this frame. origin is the character's initial position;
// scaling and rotation pivots are relative to it. Either set may be nil.
//
// Positions are transformed in a fixed order: vertex deltas, scale,
// rotations (in queue order), then the uniform position delta. Colors and
// UVs are overrides on top of the rest pose and ignore the transform.
func Resolve(rest glyph.Quad, origin math.Vec3, cm *CharacterModifiers, mm *MeshModifiers) glyph.Quad {
	out := rest
	if mm != nil {
		resolveMesh(&out, mm)
	}
	if cm != nil {
		resolveCharacter(&out, origin, cm)
	}
	return out
}

func resolveMesh(q *glyph.Quad, mm *MeshModifiers) {
	if mm.Has(MeshDeltas) {
		for i := range q {
			q[i].Position = q[i].Position.Add(mm.deltas[i])
		}
	}
	if mm.Has(MeshColors) {
		for i := range q {
			q[i].Color = mm.colors[i].Get(q[i].Color)
		}
	}
	if mm.Has(MeshUVs) {
		for i := range q {
			q[i].UV0 = mm.uv0[i].Get(q[i].UV0)
			q[i].UV2 = mm.uv2[i].Get(q[i].UV2)
		}
	}
}

func resolveCharacter(q *glyph.Quad, origin math.Vec3, cm *CharacterModifiers) {
	scale := cm.ScaleDelta()

	if cm.Has(CharScale) {
		for i := range q {
			q[i].Position = origin.Add(scale.TransformDirection(q[i].Position.Sub(origin)))
		}
	}

	if cm.Has(CharRotations) {
		for _, r := range cm.rotations {
			if r.Euler.IsZero() {
				continue
			}
			// The pivot offset follows the character's scale.
			pivot := origin.Add(scale.TransformDirection(r.Pivot))
			rot := math.QuatFromEuler(r.Euler)
			for i := range q {
				q[i].Position = rot.RotateAround(q[i].Position, pivot)
			}
		}
	}

	if cm.Has(CharPositionDelta) {
		for i := range q {
			q[i].Position = q[i].Position.Add(cm.positionDelta)
		}
	}
}
