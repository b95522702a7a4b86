// Package scene loads text plus an animation list from YAML and applies
// it to an animator.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/glyphfx/internal/engine/animator"
)

// ErrInvalidScene wraps every validation failure.
var ErrInvalidScene = errors.New("invalid scene")

// Scene is a text and the animations that run over it.
type Scene struct {
	Text       string      `yaml:"text"`
	Animations []Animation `yaml:"animations"`
}

// Animation is one animator invocation. To is exclusive; nil runs to the
// end of the text.
type Animation struct {
	Name   string            `yaml:"name"`
	From   int               `yaml:"from"`
	To     *int              `yaml:"to,omitempty"`
	FadeIn float32           `yaml:"fade_in"`
	Start  float32           `yaml:"start"`
	Params map[string]string `yaml:"params,omitempty"`
}

func (a *Animation) end() int {
	if a.To == nil {
		return -1
	}
	return *a.To
}

// Load reads a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene. Unknown keys are rejected.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	return &s, nil
}

// Validate checks ranges and parameters against reg, reporting every
// problem at once.
func (s *Scene) Validate(reg *animator.Registry) error {
	var errs error
	for i, a := range s.Animations {
		prefix := fmt.Sprintf("animations[%d] (%s)", i, a.Name)
		if a.From < 0 {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s: negative from %d", ErrInvalidScene, prefix, a.From))
		}
		if a.To != nil && *a.To < a.From {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s: to %d before from %d", ErrInvalidScene, prefix, *a.To, a.From))
		}
		if a.FadeIn < 0 || a.Start < 0 {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s: negative timing", ErrInvalidScene, prefix))
		}

		anim, err := reg.Lookup(a.Name)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s: %w", ErrInvalidScene, prefix, err))
			continue
		}
		if _, err := anim.Schema().Parse(a.Params); err != nil {
			for _, e := range multierr.Errors(err) {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s: %w", ErrInvalidScene, prefix, e))
			}
		}
	}
	return errs
}

// Apply sets the text on an and registers every animation in order.
func (s *Scene) Apply(an *animator.Animator) error {
	if err := an.SetText(s.Text); err != nil {
		return err
	}
	for i, a := range s.Animations {
		if err := an.AddByName(a.Name, a.Params, a.From, a.end(), a.FadeIn, a.Start); err != nil {
			return fmt.Errorf("animations[%d]: %w", i, err)
		}
	}
	return nil
}
