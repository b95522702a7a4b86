package animator

// Key identifies the state of one invocation on one character.
type Key struct {
	Char       int // Character index
	Invocation int // Invocation index in registration order
}

// State is per-character, per-invocation scratch data an animation keeps
// across frames. Animations decide what the slots mean.
type State struct {
	Initialized bool
	Step        int
	Next        float32 // Time of the next step
	Values      [4]float32
}

// Arena owns every State, allocated on first use and stable for the
// lifetime of the character table.
type Arena struct {
	states []State
	index  map[Key]int
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{index: make(map[Key]int)}
}

// Get returns the state for k, allocating a zero State on first use.
// The pointer is valid until the next call to Get or Reset.
func (a *Arena) Get(k Key) *State {
	i, ok := a.index[k]
	if !ok {
		i = len(a.states)
		a.states = append(a.states, State{})
		a.index[k] = i
	}
	return &a.states[i]
}

// Len returns the number of allocated states.
func (a *Arena) Len() int {
	return len(a.states)
}

// Reset drops every state. Call it when the character table is rebuilt.
func (a *Arena) Reset() {
	a.states = a.states[:0]
	clear(a.index)
}
