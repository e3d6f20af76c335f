package source

import (
	"fmt"
	"testing"
)

func TestInternerBasic(t *testing.T) {
	interner := NewInterner()

	// NoStringID is reserved for the empty string
	if s, ok := interner.Lookup(NoStringID); !ok || s != "" {
		t.Errorf("NoStringID lookup = %q, ok=%v; want empty string", s, ok)
	}

	id1 := interner.Intern("hello")
	if id1 == NoStringID {
		t.Error("Intern must not return NoStringID for a non-empty string")
	}

	id2 := interner.Intern("hello")
	if id1 != id2 {
		t.Errorf("equal strings must share an ID: %d != %d", id1, id2)
	}

	if s, ok := interner.Lookup(id1); !ok || s != "hello" {
		t.Errorf("Lookup = %q, ok=%v; want %q", s, ok, "hello")
	}

	id3 := interner.Intern("world")
	if id3 == id1 {
		t.Error("distinct strings must have distinct IDs")
	}

	if interner.Len() != 3 { // "", "hello", "world"
		t.Errorf("Len = %d, want 3", interner.Len())
	}
}

func TestInternerBytes(t *testing.T) {
	interner := NewInterner()

	id1 := interner.InternBytes([]byte("test"))
	id2 := interner.Intern("test")

	if id1 != id2 {
		t.Errorf("InternBytes and Intern must agree for equal content: %d != %d", id1, id2)
	}
}

func TestInternerSnapshot(t *testing.T) {
	interner := NewInterner()

	want := []string{"", "alpha", "beta", "gamma"}
	for _, s := range want[1:] {
		interner.Intern(s)
	}

	snap := interner.Snapshot()
	if len(snap) != len(want) {
		t.Fatalf("Snapshot length = %d, want %d", len(snap), len(want))
	}
	for i, s := range want {
		if snap[i] != s {
			t.Errorf("Snapshot[%d] = %q, want %q", i, snap[i], s)
		}
	}
}

func TestInternerManyStrings(t *testing.T) {
	interner := NewInterner()

	ids := make(map[StringID]string)
	for i := 0; i < 100; i++ {
		s := fmt.Sprintf("sym_%d", i)
		id := interner.Intern(s)
		if prev, dup := ids[id]; dup {
			t.Fatalf("ID %d reused: %q and %q", id, prev, s)
		}
		ids[id] = s
	}

	for id, want := range ids {
		if got := interner.MustLookup(id); got != want {
			t.Errorf("MustLookup(%d) = %q, want %q", id, got, want)
		}
	}
}
