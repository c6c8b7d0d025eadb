package source

import "slices"

// StringID identifies an interned string. 0 is the empty string.
type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates strings shared by the lexer, the AST and the
// symbol table. IDs are dense and stable for the lifetime of a pass.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern returns the ID for s, inserting it on first use.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.index[s]; ok {
		return id
	}

	// собственная копия, чтобы не держать исходный буфер файла
	cpy := string([]byte(s))
	id := StringID(len(in.byID)) // #nosec G115 -- interner is bounded by source size
	in.byID = append(in.byID, cpy)
	in.index[cpy] = id
	return id
}

// InternBytes interns b as a string.
func (in *Interner) InternBytes(b []byte) StringID {
	return in.Intern(string(b))
}

// Lookup returns the string for id, or ("", false) for an unknown ID.
func (in *Interner) Lookup(id StringID) (string, bool) {
	if !in.Has(id) {
		return "", false
	}
	return in.byID[id], true
}

// MustLookup is Lookup that panics on an unknown ID.
func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

func (in *Interner) Has(id StringID) bool {
	return int(id) < len(in.byID)
}

// Len counts stored strings, including the empty string at NoStringID.
func (in *Interner) Len() int {
	return len(in.byID)
}

// Snapshot returns a copy of all stored strings, indexed by ID.
func (in *Interner) Snapshot() []string {
	return slices.Clone(in.byID)
}
