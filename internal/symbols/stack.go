package symbols

import (
	"fmt"

	"quill/internal/diag"
	"quill/internal/source"
)

// StackOptions configures scope stack construction.
type StackOptions struct {
	Reporter diag.Reporter
}

// KindMask restricts lookup to specific symbol kinds.
type KindMask uint32

const (
	// KindMaskNone filters out all kinds.
	KindMaskNone KindMask = 0
	// KindMaskAny allows all kinds.
	KindMaskAny KindMask = ^KindMask(0)
)

// Mask converts a symbol kind into a KindMask bit.
func (k SymbolKind) Mask() KindMask {
	return KindMask(1 << uint(k))
}

func matchKind(mask KindMask, kind SymbolKind) bool {
	return mask == KindMaskAny || mask&kind.Mask() != 0
}

// Stack drives scope management and declaration/lookup routines during
// one walk over a file. The table outlives the stack.
type Stack struct {
	table                 *Table
	reporter              diag.Reporter
	stack                 []ScopeID
	scopeMismatchReported map[ScopeID]bool
}

// NewStack wires a stack to an existing table. If root is valid it
// becomes the current scope; otherwise scope-sensitive operations are
// no-ops.
func NewStack(table *Table, root ScopeID, opts StackOptions) *Stack {
	s := &Stack{
		table:                 table,
		reporter:              opts.Reporter,
		stack:                 make([]ScopeID, 0, 8),
		scopeMismatchReported: make(map[ScopeID]bool),
	}
	if root.IsValid() {
		s.stack = append(s.stack, root)
	}
	return s
}

// CurrentScope returns the scope at the top of the stack.
func (s *Stack) CurrentScope() ScopeID {
	if len(s.stack) == 0 {
		return NoScopeID
	}
	return s.stack[len(s.stack)-1]
}

// Enter creates a child scope, pushes it onto the stack, and returns its ID.
func (s *Stack) Enter(kind ScopeKind, owner ScopeOwner, span source.Span) ScopeID {
	parent := s.CurrentScope()
	scope := s.table.Scopes.New(kind, parent, owner, span)
	s.stack = append(s.stack, scope)
	return scope
}

// EnterExisting pushes an already allocated scope, used when a walk
// revisits a module body declared in an earlier pass.
func (s *Stack) EnterExisting(id ScopeID) {
	if id.IsValid() {
		s.stack = append(s.stack, id)
	}
}

// Leave pops the current scope, validating against the expected one.
// A mismatch is a front-end bug; it is reported as a warning so a broken
// walk still yields diagnostics instead of a crash.
func (s *Stack) Leave(expected ScopeID) {
	if len(s.stack) == 0 {
		return
	}
	top := s.stack[len(s.stack)-1]
	if expected.IsValid() && top != expected {
		s.reportScopeMismatch(expected, top)
	}
	s.stack = s.stack[:len(s.stack)-1]
}

// Declare installs a symbol into the current scope. A name already bound
// in the same frame is a duplicate-declaration error; shadowing an outer
// frame only warns. Builtin bindings may be shadowed silently.
func (s *Stack) Declare(sym Symbol) (SymbolID, bool) {
	return s.DeclareIn(s.CurrentScope(), sym)
}

// DeclareIn installs a symbol into an explicit scope with the same
// duplicate and shadow checks. Used when the declaration target differs
// from the walk position, e.g. top-level items merging into the shared
// program scope while the walk sits in a file scope.
func (s *Stack) DeclareIn(scopeID ScopeID, sym Symbol) (SymbolID, bool) {
	if !scopeID.IsValid() {
		return NoSymbolID, false
	}
	scope := s.table.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID, false
	}

	if existing := scope.NameIndex[sym.Name]; len(existing) > 0 {
		prev := s.table.Symbols.Get(existing[len(existing)-1])
		if prev != nil {
			s.reportDuplicate(scope.Kind, sym.Name, sym.Span, prev)
			return NoSymbolID, false
		}
	}

	if shadow := s.findShadowing(scopeID, sym.Name); shadow.IsValid() {
		s.reportShadowing(sym, shadow)
	}

	sym.Scope = scopeID
	id := s.table.Symbols.New(&sym)
	scope.Symbols = append(scope.Symbols, id)
	scope.NameIndex[sym.Name] = append(scope.NameIndex[sym.Name], id)
	return id, true
}

// DeclareBuiltin bypasses duplicate and shadow checks; stdlib roots use
// it to seed their catalogs.
func (s *Stack) DeclareBuiltin(sym Symbol) SymbolID {
	scopeID := s.CurrentScope()
	if !scopeID.IsValid() {
		return NoSymbolID
	}
	sym.Scope = scopeID
	sym.Flags |= SymbolFlagBuiltin
	id := s.table.Symbols.New(&sym)
	if scope := s.table.Scopes.Get(scopeID); scope != nil {
		scope.Symbols = append(scope.Symbols, id)
		scope.NameIndex[sym.Name] = append(scope.NameIndex[sym.Name], id)
	}
	return id
}

// Lookup walks the scope chain searching for a symbol with the name.
func (s *Stack) Lookup(name source.StringID) (SymbolID, bool) {
	return s.LookupOne(name, KindMaskAny)
}

// LookupOne finds the most recent symbol with matching name and kind mask,
// innermost scope first.
func (s *Stack) LookupOne(name source.StringID, mask KindMask) (SymbolID, bool) {
	if mask == KindMaskNone {
		return NoSymbolID, false
	}
	scopeID := s.CurrentScope()
	for scopeID.IsValid() {
		scope := s.table.Scopes.Get(scopeID)
		if scope == nil {
			break
		}
		if id := lookupInScope(s.table, scope, name, mask); id.IsValid() {
			return id, true
		}
		scopeID = scope.Parent
	}
	return NoSymbolID, false
}

func lookupInScope(t *Table, scope *Scope, name source.StringID, mask KindMask) SymbolID {
	ids := scope.NameIndex[name]
	for i := len(ids) - 1; i >= 0; i-- {
		if sym := t.Symbols.Get(ids[i]); sym != nil && matchKind(mask, sym.Kind) {
			return ids[i]
		}
	}
	return NoSymbolID
}

// LookupIn searches exactly one scope without walking the chain.
func (t *Table) LookupIn(scopeID ScopeID, name source.StringID, mask KindMask) SymbolID {
	scope := t.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID
	}
	return lookupInScope(t, scope, name, mask)
}

func (s *Stack) reportDuplicate(scopeKind ScopeKind, name source.StringID, span source.Span, prev *Symbol) {
	if s.reporter == nil {
		return
	}
	nameStr := s.table.Strings.MustLookup(name)
	code := diag.SemaDuplicateDeclaration
	msg := fmt.Sprintf("duplicate declaration of '%s'", nameStr)
	if scopeKind == ScopeClass {
		code = diag.SemaDuplicateMember
		msg = fmt.Sprintf("duplicate class member '%s'", nameStr)
	}
	builder := diag.ReportError(s.reporter, code, span, msg)
	noteMsg := "previous declaration here"
	if prev.Flags&SymbolFlagBuiltin != 0 {
		noteMsg = "built-in declaration here"
	}
	if prev.Span != (source.Span{}) {
		builder.WithNote(prev.Span, noteMsg)
	}
	builder.Emit()
}

func (s *Stack) findShadowing(scopeID ScopeID, name source.StringID) SymbolID {
	scope := s.table.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID
	}
	parent := scope.Parent
	for parent.IsValid() {
		parentScope := s.table.Scopes.Get(parent)
		if parentScope == nil {
			break
		}
		if ids := parentScope.NameIndex[name]; len(ids) > 0 {
			return ids[len(ids)-1]
		}
		parent = parentScope.Parent
	}
	return NoSymbolID
}

func (s *Stack) reportShadowing(sym Symbol, shadow SymbolID) {
	if s.reporter == nil {
		return
	}
	prev := s.table.Symbols.Get(shadow)
	if prev == nil {
		return
	}
	nameStr := s.table.Strings.MustLookup(sym.Name)
	if prev.Flags&SymbolFlagBuiltin != 0 {
		// shadowing a prelude builtin is how user code overrides it; the
		// explicit replacement form gets an informational marker, the
		// plain shadow stays silent
		if sym.Flags&SymbolFlagPreludeReplacing != 0 {
			diag.ReportInfo(s.reporter, diag.SemaPreludeReplaced, sym.Span,
				fmt.Sprintf("'%s' replaces the prelude builtin", nameStr)).
				Emit()
		}
		return
	}
	diag.ReportWarning(s.reporter, diag.SemaShadowedDeclaration, sym.Span,
		fmt.Sprintf("declaration of '%s' shadows previous binding", nameStr)).
		WithNote(prev.Span, "previous declaration here").
		Emit()
}

func (s *Stack) reportScopeMismatch(expected, actual ScopeID) {
	if s.reporter == nil {
		return
	}
	if actual.IsValid() && s.scopeMismatchReported[actual] {
		return
	}
	if actual.IsValid() {
		s.scopeMismatchReported[actual] = true
	}

	var primary source.Span
	actualLabel := fmt.Sprintf("scope #%d", actual)
	if scope := s.table.Scopes.Get(actual); scope != nil {
		primary = scope.Span
		actualLabel = fmt.Sprintf("%s scope #%d", scope.Kind, actual)
	}
	expectedLabel := "unknown scope"
	if scope := s.table.Scopes.Get(expected); scope != nil {
		expectedLabel = fmt.Sprintf("%s scope #%d", scope.Kind, expected)
	}

	msg := fmt.Sprintf("scope stack mismatch: closing %s while expecting %s", actualLabel, expectedLabel)
	builder := diag.ReportWarning(s.reporter, diag.SemaScopeMismatch, primary, msg)
	if scope := s.table.Scopes.Get(expected); scope != nil {
		builder.WithNote(scope.Span, "expected scope declared here")
	}
	builder.Emit()
}
