// Package glyph defines the rest-pose geometry of a single text character:
// four corners, each carrying a position, a color and two UV channels.
package glyph

import (
	"fmt"

	"github.com/Faultbox/glyphfx/pkg/math"
)

// Corner identifies one of the four quad vertices.
type Corner int

const (
	BottomLeft Corner = iota
	TopLeft
	TopRight
	BottomRight
)

// CornerCount is the number of vertices in a quad.
const CornerCount = 4

// Corners lists all corners in vertex-buffer order.
var Corners = [CornerCount]Corner{BottomLeft, TopLeft, TopRight, BottomRight}

// Valid reports whether c names one of the four corners.
func (c Corner) Valid() bool {
	return c >= BottomLeft && c <= BottomRight
}

func (c Corner) String() string {
	switch c {
	case BottomLeft:
		return "BL"
	case TopLeft:
		return "TL"
	case TopRight:
		return "TR"
	case BottomRight:
		return "BR"
	default:
		return fmt.Sprintf("Corner(%d)", int(c))
	}
}

// Vertex is a single quad corner.
type Vertex struct {
	Position math.Vec3
	Color    Color32
	UV0      math.Vec3 // Atlas coordinates (z unused by most shaders)
	UV2      math.Vec3
}

// Quad is the four-vertex rectangle of one character, in Corner order.
type Quad [CornerCount]Vertex

// NewQuad builds a quad from corner positions with a uniform color.
// UVs map the unit square onto the corners.
func NewQuad(bl, tl, tr, br math.Vec3, color Color32) Quad {
	return Quad{
		{Position: bl, Color: color, UV0: math.Vec3{0, 0, 0}, UV2: math.Vec3{0, 0, 0}},
		{Position: tl, Color: color, UV0: math.Vec3{0, 1, 0}, UV2: math.Vec3{0, 1, 0}},
		{Position: tr, Color: color, UV0: math.Vec3{1, 1, 0}, UV2: math.Vec3{1, 1, 0}},
		{Position: br, Color: color, UV0: math.Vec3{1, 0, 0}, UV2: math.Vec3{1, 0, 0}},
	}
}

// Positions returns the corner positions.
func (q Quad) Positions() [CornerCount]math.Vec3 {
	var out [CornerCount]math.Vec3
	for i := range q {
		out[i] = q[i].Position
	}
	return out
}

// Centroid returns the average of the four corner positions.
func (q Quad) Centroid() math.Vec3 {
	var sum math.Vec3
	for i := range q {
		sum = sum.Add(q[i].Position)
	}
	return sum.Scale(1.0 / CornerCount)
}
