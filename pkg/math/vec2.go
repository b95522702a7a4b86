// Package math provides the small vector, quaternion and matrix types used
// by the glyph modifier pipeline.
package math

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}
