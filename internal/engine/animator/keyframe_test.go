package animator

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Faultbox/glyphfx/pkg/math"
)

func lerpf(a, b, t float32) float32 { return a + (b-a)*t }

func TestTrackSample(t *testing.T) {
	// Keys out of order on purpose
	tr := NewTrack(lerpf,
		Keyframe[float32]{2, 10},
		Keyframe[float32]{0, 0},
		Keyframe[float32]{1, 4},
	)
	if tr.Duration() != 2 {
		t.Errorf("Duration() = %v, want 2", tr.Duration())
	}

	tests := []struct {
		at, want float32
	}{
		{-1, 0},
		{0, 0},
		{0.5, 2},
		{1, 4},
		{1.5, 7},
		{2, 10},
		{3, 10},
	}
	for _, tt := range tests {
		if got := tr.Sample(tt.at, -1); !cmp.Equal(got, tt.want, approx) {
			t.Errorf("Sample(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
}

func TestTrackDegenerate(t *testing.T) {
	empty := NewTrack[float32](lerpf)
	if empty.Sample(1, 7) != 7 || empty.Duration() != 0 {
		t.Error("empty track should return the fallback")
	}
	single := NewTrack(lerpf, Keyframe[float32]{5, 3})
	if single.Sample(0, 7) != 3 || single.Sample(9, 7) != 3 {
		t.Error("single-key track should hold its value")
	}
}

func TestTrackSlerp(t *testing.T) {
	tr := NewTrack(slerp,
		Keyframe[math.Quat]{0, math.QuatIdentity()},
		Keyframe[math.Quat]{1, math.QuatFromEuler(math.Vec3{Z: 90})},
	)
	got := tr.Sample(0.5, math.QuatIdentity()).Rotate(math.Vec3{X: 1})
	want := math.QuatFromEuler(math.Vec3{Z: 45}).Rotate(math.Vec3{X: 1})
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("halfway rotation mismatch (-want +got):\n%s", diff)
	}
}
