package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"quill/internal/source"
)

// arena is the shared slice store behind Scopes and Symbols. Index 0 is
// a sentinel so the zero ID stays invalid.
type arena[T any] struct {
	items []T
}

func newArena[T any](capacity uint32) arena[T] {
	if capacity == 0 {
		capacity = 32
	}
	return arena[T]{items: make([]T, 1, capacity+1)}
}

func (a *arena[T]) add(v T) uint32 {
	id, err := safecast.Conv[uint32](len(a.items))
	if err != nil {
		panic(fmt.Errorf("symbols arena overflow: %w", err))
	}
	a.items = append(a.items, v)
	return id
}

func (a *arena[T]) get(i uint32) *T {
	if i == 0 || int(i) >= len(a.items) {
		return nil
	}
	return &a.items[i]
}

func (a *arena[T]) count() int { return len(a.items) - 1 }

func (a *arena[T]) tail() []T {
	if len(a.items) <= 1 {
		return nil
	}
	return a.items[1:]
}

// Scopes stores every allocated scope of one resolution.
type Scopes struct {
	arena[Scope]
}

func NewScopes(capacity uint32) *Scopes {
	return &Scopes{arena: newArena[Scope](capacity)}
}

// New allocates a scope and links it under parent.
func (s *Scopes) New(kind ScopeKind, parent ScopeID, owner ScopeOwner, span source.Span) ScopeID {
	id := ScopeID(s.add(Scope{
		Kind:      kind,
		Parent:    parent,
		Owner:     owner,
		Span:      span,
		NameIndex: make(map[source.StringID][]SymbolID),
	}))
	if parentScope := s.Get(parent); parentScope != nil {
		parentScope.Children = append(parentScope.Children, id)
	}
	return id
}

// Get returns the scope or nil for an invalid ID.
func (s *Scopes) Get(id ScopeID) *Scope { return s.get(uint32(id)) }

// Len reports the number of scopes excluding the sentinel.
func (s *Scopes) Len() int { return s.count() }

// Data exposes the underlying slice without the sentinel.
func (s *Scopes) Data() []Scope { return s.tail() }

// Symbols stores declared symbols.
type Symbols struct {
	arena[Symbol]
}

func NewSymbols(capacity uint32) *Symbols {
	return &Symbols{arena: newArena[Symbol](capacity)}
}

// New copies the symbol into the arena and returns its ID.
func (s *Symbols) New(sym *Symbol) SymbolID {
	if sym == nil {
		panic("symbols.New: nil symbol")
	}
	return SymbolID(s.add(*sym))
}

// Get returns the symbol or nil for an invalid ID.
func (s *Symbols) Get(id SymbolID) *Symbol { return s.get(uint32(id)) }

// Len reports the number of stored symbols excluding the sentinel.
func (s *Symbols) Len() int { return s.count() }

// Data exposes the arena storage without the sentinel.
func (s *Symbols) Data() []Symbol { return s.tail() }
