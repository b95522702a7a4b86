// Package meshbuf holds the flat vertex arrays a renderer consumes and
// splices resolved character quads into them.
package meshbuf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/glyphfx/pkg/glyph"
	"github.com/Faultbox/glyphfx/pkg/math"
)

// ErrOutOfRange is returned when a quad does not fit in the buffer.
var ErrOutOfRange = errors.New("vertex offset out of range")

// Channels selects which vertex arrays an upload writes.
type Channels uint8

const (
	Positions Channels = 1 << iota
	Colors
	UVs

	None Channels = 0
	All           = Positions | Colors | UVs
)

func (c Channels) String() string {
	if c == None {
		return "none"
	}
	var names []string
	if c&Positions != 0 {
		names = append(names, "positions")
	}
	if c&Colors != 0 {
		names = append(names, "colors")
	}
	if c&UVs != 0 {
		names = append(names, "uvs")
	}
	return strings.Join(names, "|")
}

// Buffer is a CPU-side copy of a text mesh.
type Buffer struct {
	Positions []math.Vec3
	Colors    []glyph.Color32
	UV0       []math.Vec3
	UV2       []math.Vec3

	dirty Channels
}

// New allocates a buffer for n characters.
func New(n int) *Buffer {
	v := n * glyph.CornerCount
	return &Buffer{
		Positions: make([]math.Vec3, v),
		Colors:    make([]glyph.Color32, v),
		UV0:       make([]math.Vec3, v),
		UV2:       make([]math.Vec3, v),
	}
}

// VertexCount returns the number of vertices.
func (b *Buffer) VertexCount() int {
	return len(b.Positions)
}

// Upload writes the selected channels of q at vertex offset.
func (b *Buffer) Upload(offset int, q glyph.Quad, ch Channels) error {
	if offset < 0 || offset+glyph.CornerCount > len(b.Positions) {
		return fmt.Errorf("%w: %d (vertices: %d)", ErrOutOfRange, offset, len(b.Positions))
	}
	for i, v := range q {
		if ch&Positions != 0 {
			b.Positions[offset+i] = v.Position
		}
		if ch&Colors != 0 {
			b.Colors[offset+i] = v.Color
		}
		if ch&UVs != 0 {
			b.UV0[offset+i] = v.UV0
			b.UV2[offset+i] = v.UV2
		}
	}
	b.dirty |= ch
	return nil
}

// Quad reads back the quad at vertex offset.
func (b *Buffer) Quad(offset int) (glyph.Quad, error) {
	var q glyph.Quad
	if offset < 0 || offset+glyph.CornerCount > len(b.Positions) {
		return q, fmt.Errorf("%w: %d (vertices: %d)", ErrOutOfRange, offset, len(b.Positions))
	}
	for i := range q {
		q[i] = glyph.Vertex{
			Position: b.Positions[offset+i],
			Color:    b.Colors[offset+i],
			UV0:      b.UV0[offset+i],
			UV2:      b.UV2[offset+i],
		}
	}
	return q, nil
}

// Dirty returns the channels written since the last Flush.
func (b *Buffer) Dirty() Channels {
	return b.dirty
}

// Flush clears the dirty channels and returns them. A renderer calls it
// after copying the arrays to the GPU.
func (b *Buffer) Flush() Channels {
	d := b.dirty
	b.dirty = None
	return d
}
