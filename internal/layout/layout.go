// Package layout is a minimal monospace text layout. It stands in for a
// real shaping engine and produces the rest-pose quad and addressing
// metadata of every character.
package layout

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"

	"github.com/Faultbox/glyphfx/internal/engine/character"
	"github.com/Faultbox/glyphfx/pkg/glyph"
	"github.com/Faultbox/glyphfx/pkg/math"
)

// ErrInvalidText is returned for strings that are not valid UTF-8.
var ErrInvalidText = errors.New("text is not valid UTF-8")

// Options controls glyph placement.
type Options struct {
	Origin      math.Vec2 // Bottom-left of the first line
	Advance     float32   // Horizontal distance per terminal cell
	LineHeight  float32
	GlyphWidth  float32 // Quad width per cell
	GlyphHeight float32
	Color       glyph.Color32
	Normalize   bool // Compose to NFC first so base+mark pairs become one character
}

// DefaultOptions returns a 1x1 cell grid with a small glyph inset.
func DefaultOptions() Options {
	return Options{
		Advance:     1,
		LineHeight:  1.2,
		GlyphWidth:  0.9,
		GlyphHeight: 1,
		Color:       glyph.White,
		Normalize:   true,
	}
}

// Glyph is one laid-out character.
type Glyph struct {
	Info character.Info
	Quad glyph.Quad
}

// Prepare validates text and applies normalization. Indices produced by
// Layout refer to the runes of the returned string.
func Prepare(text string, opts Options) (string, error) {
	if !utf8.ValidString(text) {
		return "", ErrInvalidText
	}
	if opts.Normalize {
		text = norm.NFC.String(text)
	}
	return text, nil
}

// Layout places every rune of text. Newlines start a new line and form
// feeds start a new page; both still produce an invisible character so
// indices match the prepared runes.
func Layout(text string, opts Options) ([]Glyph, error) {
	text, err := Prepare(text, opts)
	if err != nil {
		return nil, err
	}

	glyphs := make([]Glyph, 0, utf8.RuneCountInString(text))
	var (
		col, line, word, page int
		inWord                bool
	)

	for _, r := range []rune(text) {
		cells := runewidth.RuneWidth(r)
		visible := cells > 0 && !unicode.IsSpace(r)

		if visible && !inWord && len(glyphs) > 0 {
			word++
		}
		inWord = visible

		x := opts.Origin.X + float32(col)*opts.Advance
		y := opts.Origin.Y - float32(line)*opts.LineHeight
		w := opts.GlyphWidth * float32(max(cells, 1))
		q := glyph.NewQuad(
			math.Vec3{X: x, Y: y},
			math.Vec3{X: x, Y: y + opts.GlyphHeight},
			math.Vec3{X: x + w, Y: y + opts.GlyphHeight},
			math.Vec3{X: x + w, Y: y},
			opts.Color,
		)

		glyphs = append(glyphs, Glyph{
			Info: character.Info{
				Index:   len(glyphs),
				Rune:    r,
				Line:    line,
				Word:    word,
				Page:    page,
				Visible: visible,
			},
			Quad: q,
		})

		switch r {
		case '\n':
			col = 0
			line++
		case '\f':
			col = 0
			line = 0
			page++
		default:
			col += cells
		}
	}
	return glyphs, nil
}

// Table lays out text and wraps the result in a character table.
func Table(text string, opts Options) (*character.Table, error) {
	text, err := Prepare(text, opts)
	if err != nil {
		return nil, err
	}
	opts.Normalize = false
	glyphs, err := Layout(text, opts)
	if err != nil {
		return nil, err
	}
	chars := make([]*character.Character, len(glyphs))
	for i, g := range glyphs {
		chars[i] = character.New(g.Info, g.Quad)
	}
	return character.NewTable(text, chars), nil
}
