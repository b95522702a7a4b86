// Package debug renders resolved text meshes to images for inspection.
package debug

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	stdmath "math"
	"os"
	"path/filepath"

	"golang.org/x/image/vector"

	"github.com/Faultbox/glyphfx/internal/engine/meshbuf"
	"github.com/Faultbox/glyphfx/pkg/glyph"
)

var (
	ErrNonFiniteBounds = errors.New("mesh bounds are not finite")
	ErrImageTooLarge   = errors.New("snapshot image too large")
)

// Snapshot rasterizes mesh buffers to PNG files.
type Snapshot struct {
	outputDir string
	prefix    string

	Scale      float32 // Pixels per world unit
	Padding    int     // Border in pixels around the mesh bounds
	MaxSize    int     // Largest width or height Render will allocate
	Background color.Color
}

// NewSnapshot creates a snapshot writer for outputDir.
func NewSnapshot(outputDir, prefix string) *Snapshot {
	return &Snapshot{
		outputDir:  outputDir,
		prefix:     prefix,
		Scale:      32,
		Padding:    8,
		MaxSize:    4096,
		Background: color.Transparent,
	}
}

// SetOutputDir sets the output directory for snapshots.
func (s *Snapshot) SetOutputDir(dir string) {
	s.outputDir = dir
}

// Render draws every quad of buf filled with its average vertex color.
// World Y points up, so the image is flipped vertically. Meshes with NaN
// or infinite positions, or that would exceed MaxSize pixels on a side,
// are rejected.
func (s *Snapshot) Render(buf *meshbuf.Buffer) (*image.RGBA, error) {
	if buf.VertexCount() == 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	}

	minX, minY := buf.Positions[0].X, buf.Positions[0].Y
	maxX, maxY := minX, minY
	for _, p := range buf.Positions[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	if !finite(minX, maxX, minY, maxY) {
		return nil, ErrNonFiniteBounds
	}

	pad := float32(s.Padding)
	fw := stdmath.Ceil(float64(maxX-minX)*float64(s.Scale)+2*float64(pad)) + 1
	fh := stdmath.Ceil(float64(maxY-minY)*float64(s.Scale)+2*float64(pad)) + 1
	if limit := float64(s.MaxSize); fw > limit || fh > limit || stdmath.IsNaN(fw) || stdmath.IsNaN(fh) {
		return nil, fmt.Errorf("%w: %.0fx%.0f exceeds %d", ErrImageTooLarge, fw, fh, s.MaxSize)
	}
	w, h := int(fw), int(fh)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(s.Background), image.Point{}, draw.Src)

	z := vector.NewRasterizer(w, h)
	for off := 0; off < buf.VertexCount(); off += glyph.CornerCount {
		q, _ := buf.Quad(off)
		c := averageColor(q)
		if c.A == 0 {
			continue
		}

		z.Reset(w, h)
		for i, v := range q {
			px := (v.Position.X-minX)*s.Scale + pad
			py := (maxY-v.Position.Y)*s.Scale + pad
			if i == 0 {
				z.MoveTo(px, py)
			} else {
				z.LineTo(px, py)
			}
		}
		z.ClosePath()
		z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
	}
	return img, nil
}

func finite(vs ...float32) bool {
	for _, v := range vs {
		if stdmath.IsNaN(float64(v)) || stdmath.IsInf(float64(v), 0) {
			return false
		}
	}
	return true
}

func averageColor(q glyph.Quad) color.NRGBA {
	var r, g, b, a int
	for _, v := range q {
		r += int(v.Color.R)
		g += int(v.Color.G)
		b += int(v.Color.B)
		a += int(v.Color.A)
	}
	n := glyph.CornerCount
	return color.NRGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: uint8(a / n)}
}

// Filename returns the path Save uses for frame.
func (s *Snapshot) Filename(frame int) string {
	name := fmt.Sprintf("%s_%04d.png", s.prefix, frame)
	if s.outputDir != "" {
		name = filepath.Join(s.outputDir, name)
	}
	return name
}

// Save renders buf and writes it as the PNG for frame, returning its path.
func (s *Snapshot) Save(buf *meshbuf.Buffer, frame int) (string, error) {
	if s.outputDir != "" {
		if err := os.MkdirAll(s.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	img, err := s.Render(buf)
	if err != nil {
		return "", err
	}

	filename := s.Filename(frame)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}
