// Package modifier composes independently authored per-character
// contributions (vertex deltas, scale, rotations, color and UV overrides)
// into a single resolved quad.
//
// A frame runs in three steps: every contributing animation combines its
// modifiers into the character's shared pair, Resolve reads the pair once,
// and the pair is cleared for the next frame. Nothing in this package is
// safe for concurrent use; the frame loop owns the modifier sets.
package modifier

import (
	"errors"
	"fmt"

	"github.com/Faultbox/glyphfx/pkg/glyph"
)

var (
	ErrCornerOutOfRange = errors.New("corner out of range")
	ErrTooManyRotations = errors.New("too many rotations")
	ErrRotationIndex    = errors.New("rotation index out of range")
)

func checkCorner(c glyph.Corner) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %d", ErrCornerOutOfRange, int(c))
	}
	return nil
}
