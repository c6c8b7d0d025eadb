package resolver

import (
	"quill/internal/source"
	"quill/internal/stdlib"
	"quill/internal/symbols"
)

// installStdlibRoots seeds the prelude ring and builds the core/std
// roots. Core and std scopes sit outside the lexical chain, so their
// entries are reachable only through path walking.
func (r *Resolver) installStdlibRoots() {
	preludeStack := symbols.NewStack(r.table, r.table.PreludeRoot(), symbols.StackOptions{})
	for _, e := range stdlib.Prelude() {
		preludeStack.DeclareBuiltin(symbols.Symbol{
			Name:          r.table.Strings.Intern(e.Name),
			Kind:          symbols.SymbolFunction,
			Arity:         e.Arity,
			QualifiedPath: "prelude::" + e.Name,
		})
	}

	r.coreRoot = r.table.Scopes.New(symbols.ScopeModule, symbols.NoScopeID, symbols.ScopeOwner{}, source.Span{})
	for _, ns := range stdlib.Core() {
		if r.disabledCore[ns.Name] {
			continue
		}
		r.installNamespace(r.coreRoot, "core", ns)
	}

	// std carries every namespace; enablement is checked when a path
	// walks into one, so the disabled case gets a pointed diagnostic
	r.stdRoot = r.table.Scopes.New(symbols.ScopeModule, symbols.NoScopeID, symbols.ScopeOwner{}, source.Span{})
	for _, ns := range stdlib.Std() {
		r.installNamespace(r.stdRoot, "std", ns)
	}
}

func (r *Resolver) installNamespace(root symbols.ScopeID, tier string, ns stdlib.Namespace) {
	rootStack := symbols.NewStack(r.table, root, symbols.StackOptions{})
	nsSym := rootStack.DeclareBuiltin(symbols.Symbol{
		Name:          r.table.Strings.Intern(ns.Name),
		Kind:          symbols.SymbolModule,
		QualifiedPath: tier + "::" + ns.Name,
	})

	nsScope := r.table.Scopes.New(symbols.ScopeModule, symbols.NoScopeID, symbols.ScopeOwner{}, source.Span{})
	r.moduleScope[nsSym] = nsScope

	nsStack := symbols.NewStack(r.table, nsScope, symbols.StackOptions{})
	for _, e := range ns.Entries {
		nsStack.DeclareBuiltin(symbols.Symbol{
			Name:          r.table.Strings.Intern(e.Name),
			Kind:          symbols.SymbolFunction,
			Arity:         e.Arity,
			QualifiedPath: tier + "::" + ns.Name + "::" + e.Name,
		})
	}
}

// stdNamespaceEnabled reports whether cfg switched the namespace on.
func (r *Resolver) stdNamespaceEnabled(name string) bool {
	return r.enabledStd[name]
}
