package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"quill/internal/source"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates symbol-related arenas and shared resources. One table
// spans a whole compilation pass; every file and stdlib root lives in it.
type Table struct {
	Scopes   *Scopes
	Symbols  *Symbols
	Strings  *source.Interner
	fileRoot map[source.FileID]ScopeID
	prelude  ScopeID
	program  ScopeID
}

// NewTable builds a fresh table with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Scopes:   NewScopes(scopeCap),
		Symbols:  NewSymbols(symCap),
		Strings:  strings,
		fileRoot: make(map[source.FileID]ScopeID),
	}
}

// PreludeRoot returns (and creates on first call) the outermost scope
// shared by every file. Prelude bindings land here so ordinary
// innermost-out lookup makes them visible everywhere, and any local
// declaration shadows them naturally.
func (t *Table) PreludeRoot() ScopeID {
	if t.prelude.IsValid() {
		return t.prelude
	}
	t.prelude = t.Scopes.New(ScopePrelude, NoScopeID, ScopeOwner{}, source.Span{})
	return t.prelude
}

// ProgramRoot returns (and creates on first call) the merged top-level
// scope shared by all units. Top-level declarations land here so every
// file sees every other file's modules; per-file use bindings stay in
// the file scopes below it.
func (t *Table) ProgramRoot() ScopeID {
	if t.program.IsValid() {
		return t.program
	}
	t.program = t.Scopes.New(ScopeModule, t.PreludeRoot(), ScopeOwner{}, source.Span{})
	return t.program
}

// FileRoot returns (and creates if needed) a file-level scope for the
// given file, parented under the program scope.
func (t *Table) FileRoot(file source.FileID, span source.Span) ScopeID {
	if scope, ok := t.fileRoot[file]; ok {
		return scope
	}
	scope := t.Scopes.New(ScopeFile, t.ProgramRoot(), ScopeOwner{
		Kind:       ScopeOwnerFile,
		SourceFile: file,
	}, span)
	t.fileRoot[file] = scope
	return scope
}

// FileRoots lists every registered file scope.
func (t *Table) FileRoots() map[source.FileID]ScopeID {
	return t.fileRoot
}
