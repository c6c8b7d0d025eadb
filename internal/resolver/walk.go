package resolver

import (
	"fmt"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/symbols"
)

// resolveFile binds every reference in one unit. Imports are installed
// first so they are visible to every body in the file.
func (r *Resolver) resolveFile(fileID ast.FileID) {
	f := r.builder.File(fileID)
	if f == nil {
		return
	}

	fileScope := r.table.FileRoot(f.Span.File, f.Span)
	stack := symbols.NewStack(r.table, fileScope, symbols.StackOptions{Reporter: r.reporter})

	r.bindUses(stack, fileID, f.Items)
	for _, itemID := range f.Items {
		r.resolveItem(stack, fileID, itemID)
	}
}

func (r *Resolver) resolveItem(stack *symbols.Stack, fileID ast.FileID, itemID ast.ItemID) {
	switch r.builder.Items.Kind(itemID) {
	case ast.ItemModule:
		mod, _ := r.builder.Items.Module(itemID)
		scope := r.moduleScope[r.itemSymbol[itemID]]
		if !scope.IsValid() {
			return // declaration failed, body already unreachable
		}
		stack.EnterExisting(scope)
		for _, inner := range mod.Items {
			r.resolveItem(stack, fileID, inner)
		}
		stack.Leave(scope)

	case ast.ItemClass:
		r.resolveClass(stack, fileID, itemID)

	case ast.ItemFunction:
		fn, _ := r.builder.Items.Function(itemID)
		r.resolveFnBody(stack, fileID, itemID, fn)

	case ast.ItemLet:
		let, _ := r.builder.Items.Let(itemID)
		if let.Value.IsValid() {
			r.resolveExpr(stack, let.Value)
		}

	case ast.ItemStmt:
		si, _ := r.builder.Items.Stmt(itemID)
		r.resolveStmt(stack, fileID, si.Stmt)

	case ast.ItemUse:
		// bound up front by bindUses
	}
}

func (r *Resolver) resolveClass(stack *symbols.Stack, fileID ast.FileID, itemID ast.ItemID) {
	cls, _ := r.builder.Items.Class(itemID)
	clsSym := r.itemSymbol[itemID]
	scope := r.classScope[clsSym]
	if !scope.IsValid() {
		return
	}

	savedClass := r.currentClass
	r.currentClass = clsSym
	stack.EnterExisting(scope)

	for _, memberID := range cls.Members {
		m := r.builder.Items.Member(memberID)
		if m == nil || !m.Fn.IsValid() {
			continue
		}
		fn := r.builder.Items.Fn(m.Fn)
		r.resolveFnBody(stack, fileID, itemID, fn)
	}

	stack.Leave(scope)
	r.currentClass = savedClass
}

// resolveFnBody opens the function frame, declares parameters and walks
// the body. Method frames nest inside the class frame the caller opened.
func (r *Resolver) resolveFnBody(stack *symbols.Stack, fileID ast.FileID, itemID ast.ItemID, fn *ast.FnItem) {
	if fn == nil {
		return
	}
	scope := stack.Enter(symbols.ScopeFunction, symbols.ScopeOwner{
		Kind:    symbols.ScopeOwnerItem,
		ASTFile: fileID,
		Item:    itemID,
	}, r.builder.Stmts.Span(fn.Body))

	for _, param := range fn.Params {
		stack.Declare(symbols.Symbol{
			Name: param.Name,
			Kind: symbols.SymbolParam,
			Span: param.Span,
			Decl: symbols.SymbolDecl{ASTFile: fileID, Item: itemID},
		})
	}

	if fn.Body.IsValid() {
		r.resolveStmt(stack, fileID, fn.Body)
	}
	stack.Leave(scope)
}

func (r *Resolver) resolveStmt(stack *symbols.Stack, fileID ast.FileID, stmtID ast.StmtID) {
	switch r.builder.Stmts.Kind(stmtID) {
	case ast.StmtBlock:
		block, _ := r.builder.Stmts.Block(stmtID)
		scope := stack.Enter(symbols.ScopeBlock, symbols.ScopeOwner{
			Kind:    symbols.ScopeOwnerStmt,
			ASTFile: fileID,
			Stmt:    stmtID,
		}, r.builder.Stmts.Span(stmtID))
		for _, inner := range block.Stmts {
			r.resolveStmt(stack, fileID, inner)
		}
		stack.Leave(scope)

	case ast.StmtLet:
		let, _ := r.builder.Stmts.Let(stmtID)
		// initializer first: `let x = x;` refers to the outer x
		if let.Value.IsValid() {
			r.resolveExpr(stack, let.Value)
		}
		var flags symbols.SymbolFlags
		if let.IsConst {
			flags |= symbols.SymbolFlagConst
		}
		stack.Declare(symbols.Symbol{
			Name:  let.Name,
			Kind:  symbols.SymbolLet,
			Span:  let.NameSpan,
			Flags: flags,
			Decl:  symbols.SymbolDecl{ASTFile: fileID, Stmt: stmtID},
		})

	case ast.StmtIf:
		ifStmt, _ := r.builder.Stmts.If(stmtID)
		r.resolveExpr(stack, ifStmt.Cond)
		r.resolveStmt(stack, fileID, ifStmt.Then)
		if ifStmt.Else.IsValid() {
			r.resolveStmt(stack, fileID, ifStmt.Else)
		}

	case ast.StmtFor:
		forStmt, _ := r.builder.Stmts.For(stmtID)
		r.resolveExpr(stack, forStmt.Iterable)
		// the loop variable lives in its own frame wrapping the body, so
		// it disappears when the loop exits
		scope := stack.Enter(symbols.ScopeBlock, symbols.ScopeOwner{
			Kind:    symbols.ScopeOwnerStmt,
			ASTFile: fileID,
			Stmt:    stmtID,
		}, r.builder.Stmts.Span(stmtID))
		stack.Declare(symbols.Symbol{
			Name: forStmt.Var,
			Kind: symbols.SymbolLet,
			Span: forStmt.VarSpan,
			Decl: symbols.SymbolDecl{ASTFile: fileID, Stmt: stmtID},
		})
		r.resolveStmt(stack, fileID, forStmt.Body)
		stack.Leave(scope)

	case ast.StmtExpr:
		es, _ := r.builder.Stmts.Expr(stmtID)
		r.resolveExpr(stack, es.Expr)
	}
}

func (r *Resolver) resolveExpr(stack *symbols.Stack, exprID ast.ExprID) {
	if !exprID.IsValid() {
		return
	}
	switch r.builder.Exprs.Kind(exprID) {
	case ast.ExprIdent:
		ident, _ := r.builder.Exprs.Ident(exprID)
		sym, ok := stack.Lookup(ident.Name)
		if !ok {
			r.errUnresolved(exprID, ident.Name)
			return
		}
		r.bind(exprID, sym)

	case ast.ExprPath:
		path, _ := r.builder.Exprs.Path(exprID)
		if sym, ok := r.walkPath(stack, path.Segments, path.SegSpans); ok {
			r.bind(exprID, sym)
		}

	case ast.ExprThis:
		if r.currentClass.IsValid() {
			r.bindings[exprID] = r.currentClass
		}

	case ast.ExprUnary:
		u, _ := r.builder.Exprs.Unary(exprID)
		r.resolveExpr(stack, u.Operand)

	case ast.ExprBinary:
		bin, _ := r.builder.Exprs.Binary(exprID)
		r.resolveExpr(stack, bin.Left)
		r.resolveExpr(stack, bin.Right)

	case ast.ExprRange:
		rng, _ := r.builder.Exprs.Range(exprID)
		r.resolveExpr(stack, rng.Low)
		r.resolveExpr(stack, rng.High)

	case ast.ExprCall:
		call, _ := r.builder.Exprs.Call(exprID)
		r.resolveExpr(stack, call.Callee)
		for _, arg := range call.Args {
			r.resolveExpr(stack, arg)
		}

	case ast.ExprMember:
		// duck-typed: only the receiver resolves, the member name is
		// checked by the evaluator
		member, _ := r.builder.Exprs.Member(exprID)
		r.resolveExpr(stack, member.Target)

	case ast.ExprIndex:
		idx, _ := r.builder.Exprs.Index(exprID)
		r.resolveExpr(stack, idx.Target)
		r.resolveExpr(stack, idx.Index)

	case ast.ExprArray:
		arr, _ := r.builder.Exprs.Array(exprID)
		for _, elem := range arr.Elems {
			r.resolveExpr(stack, elem)
		}

	case ast.ExprGroup:
		g, _ := r.builder.Exprs.Group(exprID)
		r.resolveExpr(stack, g.Inner)

	case ast.ExprLit, ast.ExprInvalid:
		// nothing to bind
	}
}

// bind records the resolved target, unwrapping import aliases so the
// evaluator lands on the real declaration.
func (r *Resolver) bind(exprID ast.ExprID, sym symbols.SymbolID) {
	r.bindings[exprID] = r.followImport(sym)
}

func (r *Resolver) errUnresolved(exprID ast.ExprID, name source.StringID) {
	if r.reporter == nil {
		return
	}
	nameStr := r.table.Strings.MustLookup(name)
	diag.ReportError(r.reporter, diag.SemaUnresolvedName,
		r.builder.Exprs.Span(exprID),
		fmt.Sprintf("cannot resolve '%s'", nameStr)).
		Emit()
}
