package animator

import "testing"

func TestArenaGet(t *testing.T) {
	a := NewArena()

	s := a.Get(Key{Char: 1, Invocation: 0})
	if s.Initialized {
		t.Fatal("new state should be zero")
	}
	s.Initialized = true
	s.Values[0] = 4

	a.Get(Key{Char: 2, Invocation: 0})
	if got := a.Get(Key{Char: 1, Invocation: 0}); !got.Initialized || got.Values[0] != 4 {
		t.Errorf("state not preserved: %+v", got)
	}
	if a.Get(Key{Char: 1, Invocation: 1}).Initialized {
		t.Error("states should be per invocation")
	}
	if a.Len() != 3 {
		t.Errorf("Len() = %d, want 3", a.Len())
	}
}

func TestArenaReset(t *testing.T) {
	a := NewArena()
	a.Get(Key{}).Step = 9
	a.Reset()

	if a.Len() != 0 {
		t.Errorf("Len() = %d after Reset", a.Len())
	}
	if a.Get(Key{}).Step != 0 {
		t.Error("state should be fresh after Reset")
	}
}
