package animator

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/Faultbox/glyphfx/pkg/glyph"
	"github.com/Faultbox/glyphfx/pkg/math"
)

var (
	ErrUnknownParameter   = errors.New("unknown parameter")
	ErrInvalidParameter   = errors.New("invalid parameter value")
	ErrDuplicateParameter = errors.New("parameter given more than once")
)

// Kind is the type of an animation parameter.
type Kind uint8

const (
	KindFloat Kind = iota
	KindInt
	KindBool
	KindColor
	KindColors // Comma-separated list of hex colors
	KindVec3   // "x,y" or "x,y,z"
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindColor:
		return "color"
	case KindColors:
		return "colors"
	case KindVec3:
		return "vec3"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Param declares one named, typed parameter with its default.
// Default must hold the Go type matching Kind: float32, int, bool,
// glyph.Color32, []glyph.Color32 or math.Vec3.
type Param struct {
	Name    string
	Aliases []string
	Kind    Kind
	Default any
}

// Schema is the fixed parameter list of an animation.
type Schema struct {
	params []Param
	lookup map[string]int // name or alias -> index
}

// NewSchema builds a schema. It panics on duplicate names or a default of
// the wrong type, both of which are bugs in the animation.
func NewSchema(params ...Param) *Schema {
	s := &Schema{params: params, lookup: make(map[string]int)}
	for i, p := range params {
		if err := checkDefault(p); err != nil {
			panic(err)
		}
		for _, name := range append([]string{p.Name}, p.Aliases...) {
			if _, dup := s.lookup[name]; dup {
				panic(fmt.Sprintf("animator: duplicate parameter name %q", name))
			}
			s.lookup[name] = i
		}
	}
	return s
}

// Params returns the declared parameters.
func (s *Schema) Params() []Param {
	return s.params
}

// Defaults returns values with every parameter at its default.
func (s *Schema) Defaults() Values {
	v := Values{schema: s, vals: make([]any, len(s.params))}
	for i, p := range s.params {
		v.vals[i] = p.Default
	}
	return v
}

// Parse validates raw string parameters against the schema and returns
// typed values. All problems are reported together.
func (s *Schema) Parse(raw map[string]string) (Values, error) {
	v := s.Defaults()
	seen := make(map[int]string, len(raw))

	var errs error
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		idx, ok := s.lookup[key]
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q", ErrUnknownParameter, key))
			continue
		}
		if prev, dup := seen[idx]; dup {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q and %q", ErrDuplicateParameter, prev, key))
			continue
		}
		seen[idx] = key

		val, err := parseValue(s.params[idx].Kind, raw[key])
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w %q: %v", ErrInvalidParameter, key, err))
			continue
		}
		v.vals[idx] = val
	}
	if errs != nil {
		return Values{}, errs
	}
	return v, nil
}

func parseValue(kind Kind, s string) (any, error) {
	s = strings.TrimSpace(s)
	switch kind {
	case KindFloat:
		f, err := strconv.ParseFloat(s, 32)
		return float32(f), err
	case KindInt:
		return strconv.Atoi(s)
	case KindBool:
		return strconv.ParseBool(s)
	case KindColor:
		return glyph.ParseHex(s)
	case KindColors:
		var out []glyph.Color32
		for _, part := range strings.Split(s, ",") {
			c, err := glyph.ParseHex(part)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		return out, nil
	case KindVec3:
		return parseVec3(s)
	default:
		return nil, fmt.Errorf("unsupported kind %s", kind)
	}
}

func parseVec3(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return math.Vec3{}, fmt.Errorf("expected 2 or 3 components, got %d", len(parts))
	}
	var c [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return math.Vec3{}, err
		}
		c[i] = float32(f)
	}
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

func checkDefault(p Param) error {
	var ok bool
	switch p.Kind {
	case KindFloat:
		_, ok = p.Default.(float32)
	case KindInt:
		_, ok = p.Default.(int)
	case KindBool:
		_, ok = p.Default.(bool)
	case KindColor:
		_, ok = p.Default.(glyph.Color32)
	case KindColors:
		_, ok = p.Default.([]glyph.Color32)
	case KindVec3:
		_, ok = p.Default.(math.Vec3)
	}
	if !ok {
		return fmt.Errorf("animator: parameter %q: default %T does not match kind %s", p.Name, p.Default, p.Kind)
	}
	return nil
}

// Values holds parsed, typed parameters for one invocation.
type Values struct {
	schema *Schema
	vals   []any
}

func (v Values) get(name string) any {
	idx, ok := v.schema.lookup[name]
	if !ok {
		panic(fmt.Sprintf("animator: parameter %q not declared", name))
	}
	return v.vals[idx]
}

func (v Values) Float(name string) float32          { return v.get(name).(float32) }
func (v Values) Int(name string) int                { return v.get(name).(int) }
func (v Values) Bool(name string) bool              { return v.get(name).(bool) }
func (v Values) Color(name string) glyph.Color32    { return v.get(name).(glyph.Color32) }
func (v Values) Colors(name string) []glyph.Color32 { return v.get(name).([]glyph.Color32) }
func (v Values) Vec3(name string) math.Vec3         { return v.get(name).(math.Vec3) }
