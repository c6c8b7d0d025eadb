package source

import "testing"

func TestInternerDedup(t *testing.T) {
	in := NewInterner()

	a := in.Intern("print")
	b := in.Intern("print")
	if a != b {
		t.Errorf("same string interned twice: %d vs %d", a, b)
	}
	if a == NoStringID {
		t.Error("non-empty string got NoStringID")
	}

	c := in.InternBytes([]byte("println"))
	if c == a {
		t.Error("distinct strings share an ID")
	}

	if s := in.MustLookup(a); s != "print" {
		t.Errorf("MustLookup = %q", s)
	}
	if in.Len() != 3 { // "", "print", "println"
		t.Errorf("Len() = %d, want 3", in.Len())
	}
}

func TestInternerEmptyString(t *testing.T) {
	in := NewInterner()
	if id := in.Intern(""); id != NoStringID {
		t.Errorf("empty string ID = %d, want %d", id, NoStringID)
	}
	if s, ok := in.Lookup(NoStringID); !ok || s != "" {
		t.Errorf("Lookup(NoStringID) = %q, %v", s, ok)
	}
}

func TestInternerUnknownID(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Error("unknown ID reported as present")
	}
	if in.Snapshot()[0] != "" {
		t.Error("snapshot slot 0 is not the empty string")
	}
}
