package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
	if !m.IsIdentity() {
		t.Error("IsIdentity() = false for Identity()")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformVec3(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformVec3(Vec3{1, 2, 3})

	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformVec3: got %v, want %v", got, want)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30).Mul(Scale(2, 2, 2))
	got := m.TransformDirection(Vec3{1, 2, 3})

	want := Vec3{2, 4, 6}
	if got != want {
		t.Errorf("TransformDirection: got %v, want %v", got, want)
	}
}

func TestRotateZ90(t *testing.T) {
	m := RotateZ(float32(math.Pi / 2))
	got := m.TransformVec3(Vec3{1, 0, 0})

	// (1,0,0) should become (0,1,0)
	if !got.ApproxEqual(Vec3{0, 1, 0}, 0.001) {
		t.Errorf("RotateZ 90: got %v, want (0, 1, 0)", got)
	}
}

func TestSignedScale(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		want Vec3
	}{
		{"identity", Identity(), Vec3{1, 1, 1}},
		{"uniform", Scale(2, 2, 2), Vec3{2, 2, 2}},
		{"reflection", Scale(-3, 1, 0.5), Vec3{-3, 1, 0.5}},
		{"all negative", Scale(-1, -2, -4), Vec3{-1, -2, -4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.SignedScale()
			if !got.ApproxEqual(tt.want, 0.0001) {
				t.Errorf("SignedScale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSignedScaleRotated(t *testing.T) {
	// Magnitude survives a small rotation
	m := RotateZ(0.1).Mul(Scale(2, 3, 1))
	got := m.SignedScale()
	if !got.ApproxEqual(Vec3{2, 3, 1}, 0.001) {
		t.Errorf("SignedScale() = %v, want (2, 3, 1)", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
