package modifier

import (
	stdmath "math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Faultbox/glyphfx/pkg/glyph"
	"github.com/Faultbox/glyphfx/pkg/math"
)

var approx = cmpopts.EquateApprox(0, 1e-4)

// unitQuad has corners at (±1, ±1, 0) and its centroid at the origin.
func unitQuad() glyph.Quad {
	return glyph.NewQuad(
		math.Vec3{-1, -1, 0},
		math.Vec3{-1, 1, 0},
		math.Vec3{1, 1, 0},
		math.Vec3{1, -1, 0},
		glyph.White,
	)
}

func positions(q glyph.Quad) [4]math.Vec3 {
	return q.Positions()
}

func TestResolveNoModifiers(t *testing.T) {
	rest := unitQuad()
	got := Resolve(rest, rest.Centroid(), nil, nil)
	if got != rest {
		t.Errorf("Resolve with nil sets should return rest pose, got %v", got)
	}

	var cm CharacterModifiers
	var mm MeshModifiers
	if got := Resolve(rest, rest.Centroid(), &cm, &mm); got != rest {
		t.Errorf("Resolve with clean sets should return rest pose, got %v", got)
	}
}

func TestResolveScaleScenario(t *testing.T) {
	rest := unitQuad()
	var cm CharacterModifiers
	cm.SetScaleDelta(math.Scale(2, 2, 2))

	got := positions(Resolve(rest, rest.Centroid(), &cm, nil))
	want := [4]math.Vec3{{-2, -2, 0}, {-2, 2, 0}, {2, 2, 0}, {2, -2, 0}}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("scaled corners mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveRotate180Scenario(t *testing.T) {
	rest := unitQuad()
	var cm CharacterModifiers
	_ = cm.AddRotation(math.Vec3{0, 0, 180}, math.Vec3{})

	got := positions(Resolve(rest, rest.Centroid(), &cm, nil))
	var want [4]math.Vec3
	for i, p := range rest.Positions() {
		want[i] = p.Neg()
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("rotated corners mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveScaleAroundCentroid(t *testing.T) {
	// A quad away from the origin must grow around its own center
	rest := glyph.NewQuad(
		math.Vec3{4, 0, 0},
		math.Vec3{4, 2, 0},
		math.Vec3{6, 2, 0},
		math.Vec3{6, 0, 0},
		glyph.White,
	)
	var cm CharacterModifiers
	cm.SetScaleDelta(math.Scale(2, 2, 1))

	out := Resolve(rest, rest.Centroid(), &cm, nil)
	if got := out.Centroid(); !got.ApproxEqual(rest.Centroid(), 1e-5) {
		t.Errorf("centroid moved from %v to %v", rest.Centroid(), got)
	}
	if got := out[glyph.BottomLeft].Position; !got.ApproxEqual(math.Vec3{3, -1, 0}, 1e-5) {
		t.Errorf("BL = %v, want (3,-1,0)", got)
	}
}

// TestResolveOrder guards the pipeline order: scale, then rotation, then
// translation.
func TestResolveOrder(t *testing.T) {
	rest := glyph.NewQuad(
		math.Vec3{2, 0, 0},
		math.Vec3{2, 2, 0},
		math.Vec3{4, 2, 0},
		math.Vec3{4, 0, 0},
		glyph.White,
	)
	origin := rest.Centroid()
	pivotOffset := math.Vec3{0.5, 0, 0}
	delta := math.Vec3{10, -3, 0}

	var cm CharacterModifiers
	cm.SetScaleDelta(math.Scale(2, 1, 1))
	_ = cm.AddRotation(math.Vec3{0, 0, 90}, pivotOffset)
	cm.SetPositionDelta(delta)

	got := positions(Resolve(rest, origin, &cm, nil))

	scale := math.Scale(2, 1, 1)
	pivot := origin.Add(scale.TransformDirection(pivotOffset))
	rot := math.Translate(pivot.X, pivot.Y, pivot.Z).
		Mul(math.RotateZ(float32(stdmath.Pi / 2))).
		Mul(math.Translate(-pivot.X, -pivot.Y, -pivot.Z))

	var want [4]math.Vec3
	for i, p := range rest.Positions() {
		p = origin.Add(scale.TransformVec3(p.Sub(origin)))
		p = rot.TransformVec3(p)
		want[i] = p.Add(delta)
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("pipeline order mismatch (-want +got):\n%s", diff)
	}

	// Translating before rotating gives a different quad
	var wrong [4]math.Vec3
	for i, p := range rest.Positions() {
		p = origin.Add(scale.TransformVec3(p.Sub(origin)))
		wrong[i] = rot.TransformVec3(p.Add(delta))
	}
	if cmp.Equal(wrong, got, approx) {
		t.Error("resolve result should depend on transform order")
	}
}

func TestResolveDeltasBeforeScale(t *testing.T) {
	rest := unitQuad()
	var mm MeshModifiers
	_ = mm.SetDelta(glyph.TopRight, math.Vec3{1, 0, 0})
	var cm CharacterModifiers
	cm.SetScaleDelta(math.Scale(2, 2, 2))

	out := Resolve(rest, rest.Centroid(), &cm, &mm)
	// (1,1) + (1,0) = (2,1), then doubled
	if got := out[glyph.TopRight].Position; !got.ApproxEqual(math.Vec3{4, 2, 0}, 1e-5) {
		t.Errorf("TR = %v, want (4,2,0)", got)
	}
}

func TestResolvePivotFollowsScale(t *testing.T) {
	rest := unitQuad()
	var cm CharacterModifiers
	cm.SetScaleDelta(math.Scale(2, 2, 2))
	_ = cm.AddRotation(math.Vec3{0, 0, 180}, math.Vec3{1, 0, 0})

	out := Resolve(rest, rest.Centroid(), &cm, nil)
	// Scaled pivot sits at (2,0); BL (-2,-2) mirrors to (6,2)
	if got := out[glyph.BottomLeft].Position; !got.ApproxEqual(math.Vec3{6, 2, 0}, 1e-4) {
		t.Errorf("BL = %v, want (6,2,0)", got)
	}
}

func TestResolveRotationsInOrder(t *testing.T) {
	rest := unitQuad()
	var cm CharacterModifiers
	_ = cm.AddRotation(math.Vec3{0, 0, 90}, math.Vec3{1, 0, 0})
	_ = cm.AddRotation(math.Vec3{}, math.Vec3{5, 5, 5}) // skipped
	_ = cm.AddRotation(math.Vec3{0, 0, 90}, math.Vec3{})

	out := Resolve(rest, rest.Centroid(), &cm, nil)

	p := rest[glyph.BottomLeft].Position
	p = math.QuatFromEuler(math.Vec3{0, 0, 90}).RotateAround(p, math.Vec3{1, 0, 0})
	p = math.QuatFromEuler(math.Vec3{0, 0, 90}).Rotate(p)
	if got := out[glyph.BottomLeft].Position; !got.ApproxEqual(p, 1e-4) {
		t.Errorf("BL = %v, want %v", got, p)
	}
}

func TestResolveColorsAndUVs(t *testing.T) {
	rest := unitQuad()
	var mm MeshModifiers
	_ = mm.SetColor(glyph.BottomLeft, OverrideAlpha(128))
	_ = mm.SetColor(glyph.TopLeft, OverrideRGB(glyph.Color32{0, 0, 255, 0}))
	_ = mm.SetUV0(glyph.TopRight, math.Vec3{0.5, 0.5, 0})

	var cm CharacterModifiers
	_ = cm.AddRotation(math.Vec3{0, 0, 45}, math.Vec3{})

	out := Resolve(rest, rest.Centroid(), &cm, &mm)

	if got := out[glyph.BottomLeft].Color; got != (glyph.Color32{255, 255, 255, 128}) {
		t.Errorf("BL color = %v", got)
	}
	if got := out[glyph.TopLeft].Color; got != (glyph.Color32{0, 0, 255, 255}) {
		t.Errorf("TL color = %v", got)
	}
	if got := out[glyph.TopRight].Color; got != glyph.White {
		t.Errorf("TR color = %v, want rest color", got)
	}
	if got := out[glyph.TopRight].UV0; got != (math.Vec3{0.5, 0.5, 0}) {
		t.Errorf("TR UV0 = %v", got)
	}
	if got := out[glyph.TopRight].UV2; got != rest[glyph.TopRight].UV2 {
		t.Errorf("TR UV2 = %v, want rest UV2", got)
	}
}

func TestResolveDoesNotMutateRest(t *testing.T) {
	rest := unitQuad()
	snapshot := rest
	var mm MeshModifiers
	_ = mm.SetDelta(glyph.BottomLeft, math.Vec3{9, 9, 9})
	_ = Resolve(rest, rest.Centroid(), nil, &mm)
	if rest != snapshot {
		t.Error("Resolve mutated the rest pose")
	}
}
