package animator

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/Faultbox/glyphfx/internal/engine/character"
	"github.com/Faultbox/glyphfx/pkg/modifier"
)

// ErrUnknownAnimation is returned when a name is not registered.
var ErrUnknownAnimation = errors.New("unknown animation")

// Context is everything an animation sees for one character in one frame.
type Context struct {
	Char   *character.Character // Transform path may be written directly
	Params Values
	State  *State

	Time    float32 // Seconds since the invocation started
	Delta   float32 // Seconds since the previous frame
	Segment int     // Character position within the invocation range
	Length  int     // Number of characters the invocation covers

	// Contribution for this invocation; combined into the character
	// after Animate returns.
	Modifiers *modifier.CharacterModifiers
	Mesh      *modifier.MeshModifiers
}

// Animation writes a contribution for one character.
type Animation interface {
	Name() string
	Schema() *Schema
	Animate(ctx *Context) error
}

// Registry maps names to animations.
type Registry struct {
	anims map[string]Animation
}

// NewRegistry creates a registry holding anims.
func NewRegistry(anims ...Animation) *Registry {
	r := &Registry{anims: make(map[string]Animation, len(anims))}
	for _, a := range anims {
		r.Register(a)
	}
	return r
}

// DefaultRegistry returns a registry with the built-in animations.
func DefaultRegistry() *Registry {
	return NewRegistry(Builtins()...)
}

// Register adds or replaces an animation.
func (r *Registry) Register(a Animation) {
	r.anims[a.Name()] = a
}

// Lookup returns the animation registered as name.
func (r *Registry) Lookup(name string) (Animation, error) {
	a, ok := r.anims[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAnimation, name)
	}
	return a, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.anims))
}
