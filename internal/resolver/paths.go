package resolver

import (
	"fmt"

	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/symbols"
)

// pathHeadMask: a qualified path can start at a module, a class (static
// access) or an import alias that points at one.
var pathHeadMask = symbols.SymbolModule.Mask() | symbols.SymbolClass.Mask() | symbols.SymbolImport.Mask()

// scopeOf maps a container symbol to the scope holding its members.
func (r *Resolver) scopeOf(sym symbols.SymbolID) (symbols.ScopeID, bool) {
	if sc, ok := r.moduleScope[sym]; ok {
		return sc, true
	}
	if sc, ok := r.classScope[sym]; ok {
		return sc, true
	}
	return symbols.NoScopeID, false
}

// walkPath resolves a qualified name segment by segment. Failure modes
// are deliberately split: a bad step inside the path is an
// unresolved-path error, which is distinct from the unresolved-name
// error plain identifiers get.
func (r *Resolver) walkPath(stack *symbols.Stack, segments []source.StringID, spans []source.Span) (symbols.SymbolID, bool) {
	if len(segments) == 0 {
		return symbols.NoSymbolID, false
	}
	head := segments[0]
	headStr := r.table.Strings.MustLookup(head)

	var cur symbols.ScopeID
	inStdRoot := false

	switch {
	case headStr == "prelude" && len(segments) > 1:
		cur = r.table.PreludeRoot()
	case headStr == "core" && len(segments) > 1:
		cur = r.coreRoot
	case headStr == "std" && len(segments) > 1:
		cur = r.stdRoot
		inStdRoot = true
	default:
		if sym, ok := stack.LookupOne(head, pathHeadMask); ok {
			container := r.followImport(sym)
			sc, haveScope := r.scopeOf(container)
			if !haveScope {
				r.errPath(spans[0], fmt.Sprintf("'%s' is not a module", headStr))
				return symbols.NoSymbolID, false
			}
			cur = sc
		} else if nsSym := r.table.LookupIn(r.coreRoot, head, symbols.SymbolModule.Mask()); nsSym.IsValid() {
			// core namespaces are addressable by bare qualified path,
			// e.g. log::info without any use
			cur = r.moduleScope[nsSym]
		} else {
			r.errPath(spans[0], fmt.Sprintf("'%s' does not name a module or import", headStr))
			return symbols.NoSymbolID, false
		}
	}

	for i := 1; i < len(segments); i++ {
		segStr := r.table.Strings.MustLookup(segments[i])

		sym := r.table.LookupIn(cur, segments[i], symbols.KindMaskAny)
		if !sym.IsValid() {
			r.errPath(spans[i], fmt.Sprintf("'%s' is not declared here", segStr))
			return symbols.NoSymbolID, false
		}

		if inStdRoot && !r.stdNamespaceEnabled(segStr) {
			r.reportStdDisabled(spans[i], segStr)
			return symbols.NoSymbolID, false
		}
		inStdRoot = false

		if i == len(segments)-1 {
			return sym, true
		}

		container := r.followImport(sym)
		sc, haveScope := r.scopeOf(container)
		if !haveScope {
			r.errPath(spans[i], fmt.Sprintf("'%s' is not a module", segStr))
			return symbols.NoSymbolID, false
		}
		cur = sc
	}

	// single-segment path: the head symbol itself
	if sym, ok := stack.LookupOne(head, pathHeadMask); ok {
		return sym, true
	}
	r.errPath(spans[0], fmt.Sprintf("'%s' does not name a module or import", headStr))
	return symbols.NoSymbolID, false
}

// followImport unwraps an import alias to the declaration it binds.
func (r *Resolver) followImport(sym symbols.SymbolID) symbols.SymbolID {
	s := r.table.Symbols.Get(sym)
	if s != nil && s.Kind == symbols.SymbolImport && s.Target.IsValid() {
		return s.Target
	}
	return sym
}

func (r *Resolver) errPath(sp source.Span, msg string) {
	if r.reporter == nil {
		return
	}
	diag.ReportError(r.reporter, diag.SemaUnresolvedPath, sp, msg).Emit()
}

func (r *Resolver) reportStdDisabled(sp source.Span, ns string) {
	if r.reporter == nil {
		return
	}
	diag.ReportError(r.reporter, diag.SemaStdNamespaceDisabled, sp,
		fmt.Sprintf("std namespace '%s' is not enabled", ns)).
		WithNote(source.Span{}, fmt.Sprintf("enable it with std = [\"%s\"] in quill.toml", ns)).
		Emit()
}
