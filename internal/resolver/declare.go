package resolver

import (
	"fmt"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/symbols"
)

// declareFile merges one unit's top-level declarations into the shared
// program scope. The walk itself is rooted at the file scope so module
// and class scopes parent under it, keeping file-local use bindings
// visible from every body in the file. Bodies are not entered here;
// pass 2 walks them.
func (r *Resolver) declareFile(fileID ast.FileID) {
	f := r.builder.File(fileID)
	if f == nil {
		return
	}

	fileScope := r.table.FileRoot(f.Span.File, f.Span)
	stack := symbols.NewStack(r.table, fileScope, symbols.StackOptions{Reporter: r.reporter})
	for _, itemID := range f.Items {
		r.declareItem(stack, fileID, itemID, true)
	}
}

// declareItem registers one item. Top-level symbols land in the program
// scope; nested ones land in the current module scope.
func (r *Resolver) declareItem(stack *symbols.Stack, fileID ast.FileID, itemID ast.ItemID, top bool) {
	declare := stack.Declare
	if top {
		declare = func(sym symbols.Symbol) (symbols.SymbolID, bool) {
			return stack.DeclareIn(r.table.ProgramRoot(), sym)
		}
	}

	switch r.builder.Items.Kind(itemID) {
	case ast.ItemModule:
		r.declareModule(stack, fileID, itemID, declare)
	case ast.ItemClass:
		r.declareClass(stack, fileID, itemID, declare)
	case ast.ItemFunction:
		fn, _ := r.builder.Items.Function(itemID)
		sym, ok := declare(symbols.Symbol{
			Name:  fn.Name,
			Kind:  symbols.SymbolFunction,
			Span:  fn.NameSpan,
			Arity: len(fn.Params),
			Decl:  symbols.SymbolDecl{ASTFile: fileID, Item: itemID},
		})
		if ok {
			r.itemSymbol[itemID] = sym
		}
	case ast.ItemLet:
		let, _ := r.builder.Items.Let(itemID)
		var flags symbols.SymbolFlags
		if let.IsConst {
			flags |= symbols.SymbolFlagConst
		}
		sym, ok := declare(symbols.Symbol{
			Name:  let.Name,
			Kind:  symbols.SymbolLet,
			Span:  let.NameSpan,
			Flags: flags,
			Decl:  symbols.SymbolDecl{ASTFile: fileID, Item: itemID},
		})
		if ok {
			r.itemSymbol[itemID] = sym
		}
	case ast.ItemUse, ast.ItemStmt:
		// use bindings are file-scoped and resolved in pass 2; loose
		// statements declare nothing at the top level
	}
}

type declareFn func(symbols.Symbol) (symbols.SymbolID, bool)

func (r *Resolver) declareModule(stack *symbols.Stack, fileID ast.FileID, itemID ast.ItemID, declare declareFn) {
	mod, _ := r.builder.Items.Module(itemID)
	span := r.builder.Items.Span(itemID)

	sym, ok := declare(symbols.Symbol{
		Name: mod.Name,
		Kind: symbols.SymbolModule,
		Span: mod.NameSpan,
		Decl: symbols.SymbolDecl{ASTFile: fileID, Item: itemID},
	})
	if !ok {
		return
	}
	r.itemSymbol[itemID] = sym

	scope := stack.Enter(symbols.ScopeModule, symbols.ScopeOwner{
		Kind:    symbols.ScopeOwnerItem,
		ASTFile: fileID,
		Item:    itemID,
	}, span)
	r.moduleScope[sym] = scope

	for _, inner := range mod.Items {
		r.declareItem(stack, fileID, inner, false)
	}
	stack.Leave(scope)
}

func (r *Resolver) declareClass(stack *symbols.Stack, fileID ast.FileID, itemID ast.ItemID, declare declareFn) {
	cls, _ := r.builder.Items.Class(itemID)
	span := r.builder.Items.Span(itemID)

	sym, ok := declare(symbols.Symbol{
		Name: cls.Name,
		Kind: symbols.SymbolClass,
		Span: cls.NameSpan,
		Decl: symbols.SymbolDecl{ASTFile: fileID, Item: itemID},
	})
	if !ok {
		return
	}
	r.itemSymbol[itemID] = sym

	scope := stack.Enter(symbols.ScopeClass, symbols.ScopeOwner{
		Kind:    symbols.ScopeOwnerItem,
		ASTFile: fileID,
		Item:    itemID,
	}, span)
	r.classScope[sym] = scope

	// one frame for fields and methods; duplicates collide here no
	// matter their member kind
	for _, memberID := range cls.Members {
		m := r.builder.Items.Member(memberID)
		if m == nil {
			continue
		}
		kind := symbols.SymbolMethod
		var flags symbols.SymbolFlags
		arity := 0
		switch m.Kind {
		case ast.MemberField:
			kind = symbols.SymbolField
		case ast.MemberStaticMethod:
			flags |= symbols.SymbolFlagStatic
		}
		if fn := r.builder.Items.Fn(m.Fn); fn != nil {
			arity = len(fn.Params)
		}
		stack.Declare(symbols.Symbol{
			Name:  m.Name,
			Kind:  kind,
			Span:  m.NameSpan,
			Flags: flags,
			Arity: arity,
			Decl:  symbols.SymbolDecl{ASTFile: fileID, Item: itemID, Member: memberID},
		})
	}
	stack.Leave(scope)
}

// applyPreludeReplacement installs the configured prelude module's
// top-level declarations over the built-in prelude entries. Lookup takes
// the newest entry per name, so appending is enough to win.
func (r *Resolver) applyPreludeReplacement() {
	nameID := r.table.Strings.Intern(r.cfg.preludeModule())
	modSym := r.table.LookupIn(r.table.ProgramRoot(), nameID, symbols.SymbolModule.Mask())
	if !modSym.IsValid() {
		return
	}
	modScope := r.table.Scopes.Get(r.moduleScope[modSym])
	prelude := r.table.Scopes.Get(r.table.PreludeRoot())
	if modScope == nil || prelude == nil {
		return
	}

	for _, symID := range modScope.Symbols {
		sym := r.table.Symbols.Get(symID)
		if sym == nil || sym.Kind == symbols.SymbolModule {
			continue
		}
		replaced := len(prelude.NameIndex[sym.Name]) > 0
		sym.Flags |= symbols.SymbolFlagPreludeReplacing
		prelude.Symbols = append(prelude.Symbols, symID)
		prelude.NameIndex[sym.Name] = append(prelude.NameIndex[sym.Name], symID)

		if replaced && r.reporter != nil {
			name := r.table.Strings.MustLookup(sym.Name)
			diag.ReportInfo(r.reporter, diag.SemaPreludeReplaced, sym.Span,
				fmt.Sprintf("'%s' replaces the prelude builtin", name)).
				Emit()
		}
	}
}
