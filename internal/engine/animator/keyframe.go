package animator

import (
	"cmp"
	"slices"

	"github.com/Faultbox/glyphfx/pkg/math"
)

// Keyframe is one keyframe of a track.
type Keyframe[T any] struct {
	Time  float32
	Value T
}

// Track samples keyframes with an interpolation function. Before the
// first key it holds the first value and after the last it holds the last.
type Track[T any] struct {
	keys []Keyframe[T]
	lerp func(a, b T, t float32) T
}

// NewTrack sorts keys by time and returns a track.
func NewTrack[T any](lerp func(a, b T, t float32) T, keys ...Keyframe[T]) *Track[T] {
	keys = slices.Clone(keys)
	slices.SortStableFunc(keys, func(a, b Keyframe[T]) int { return cmp.Compare(a.Time, b.Time) })
	return &Track[T]{keys: keys, lerp: lerp}
}

// Duration returns the time of the last key.
func (tr *Track[T]) Duration() float32 {
	if len(tr.keys) == 0 {
		return 0
	}
	return tr.keys[len(tr.keys)-1].Time
}

// Sample returns the value at time t, or fallback when the track is empty.
func (tr *Track[T]) Sample(t float32, fallback T) T {
	switch len(tr.keys) {
	case 0:
		return fallback
	case 1:
		return tr.keys[0].Value
	}

	// First key strictly after t
	next, _ := slices.BinarySearchFunc(tr.keys, t, func(k Keyframe[T], t float32) int {
		if k.Time <= t {
			return -1
		}
		return 1
	})
	switch next {
	case 0:
		return tr.keys[0].Value
	case len(tr.keys):
		return tr.keys[len(tr.keys)-1].Value
	}

	k0, k1 := tr.keys[next-1], tr.keys[next]
	return tr.lerp(k0.Value, k1.Value, (t-k0.Time)/(k1.Time-k0.Time))
}

func slerp(a, b math.Quat, t float32) math.Quat { return a.Slerp(b, t) }
func lerp3(a, b math.Vec3, t float32) math.Vec3 { return a.Lerp(b, t) }
