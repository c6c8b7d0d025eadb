package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"quill/internal/ast"
	"quill/internal/source"
)

// DumpAST prints one unit's tree with two-space indentation per level.
// Shape is stable so golden comparisons in tests stay cheap.
func DumpAST(w io.Writer, b *ast.Builder, fileID ast.FileID) {
	f := b.File(fileID)
	if f == nil {
		fmt.Fprintln(w, "File <nil>")
		return
	}
	fmt.Fprintf(w, "File (%d items)\n", len(f.Items))
	d := dumper{w: w, b: b}
	for _, item := range f.Items {
		d.item(item, 1)
	}
}

type dumper struct {
	w io.Writer
	b *ast.Builder
}

func (d *dumper) printf(depth int, format string, args ...interface{}) {
	fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (d *dumper) item(id ast.ItemID, depth int) {
	switch d.b.Items.Kind(id) {
	case ast.ItemModule:
		mod, _ := d.b.Items.Module(id)
		d.printf(depth, "Module %s", d.b.Name(mod.Name))
		for _, inner := range mod.Items {
			d.item(inner, depth+1)
		}
	case ast.ItemClass:
		cls, _ := d.b.Items.Class(id)
		d.printf(depth, "Class %s", d.b.Name(cls.Name))
		for _, memberID := range cls.Members {
			d.member(memberID, depth+1)
		}
	case ast.ItemFunction:
		fn, _ := d.b.Items.Function(id)
		d.printf(depth, "Function %s(%s)", d.b.Name(fn.Name), d.params(fn.Params))
		d.stmt(fn.Body, depth+1)
	case ast.ItemLet:
		let, _ := d.b.Items.Let(id)
		kw := "Let"
		if let.IsConst {
			kw = "Const"
		}
		d.printf(depth, "%s %s", kw, d.b.Name(let.Name))
		if let.Value.IsValid() {
			d.expr(let.Value, depth+1)
		}
	case ast.ItemUse:
		use, _ := d.b.Items.Use(id)
		segs := make([]string, 0, len(use.Path)+1)
		for _, seg := range use.Path {
			segs = append(segs, d.b.Name(seg))
		}
		segs = append(segs, d.b.Name(use.Name))
		line := "Use " + strings.Join(segs, "::")
		if use.Alias != source.NoStringID {
			line += " as " + d.b.Name(use.Alias)
		}
		d.printf(depth, "%s", line)
	case ast.ItemStmt:
		si, _ := d.b.Items.Stmt(id)
		d.stmt(si.Stmt, depth)
	default:
		d.printf(depth, "InvalidItem")
	}
}

func (d *dumper) member(id ast.MemberID, depth int) {
	m := d.b.Items.Member(id)
	if m == nil {
		return
	}
	switch m.Kind {
	case ast.MemberField:
		d.printf(depth, "Field %s: %s", d.b.Name(m.Name), d.b.Name(m.FieldType))
	case ast.MemberConstructor:
		fn := d.b.Items.Fn(m.Fn)
		d.printf(depth, "Constructor(%s)", d.params(fn.Params))
		d.stmt(fn.Body, depth+1)
	case ast.MemberStaticMethod, ast.MemberInstanceMethod:
		fn := d.b.Items.Fn(m.Fn)
		label := "Method"
		if m.Kind == ast.MemberStaticMethod {
			label = "StaticMethod"
		}
		d.printf(depth, "%s %s(%s)", label, d.b.Name(m.Name), d.params(fn.Params))
		d.stmt(fn.Body, depth+1)
	}
}

func (d *dumper) params(params []ast.Param) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = d.b.Name(p.Name)
	}
	return strings.Join(names, ", ")
}

func (d *dumper) stmt(id ast.StmtID, depth int) {
	if !id.IsValid() {
		return
	}
	switch d.b.Stmts.Kind(id) {
	case ast.StmtBlock:
		block, _ := d.b.Stmts.Block(id)
		d.printf(depth, "Block (%d stmts)", len(block.Stmts))
		for _, inner := range block.Stmts {
			d.stmt(inner, depth+1)
		}
	case ast.StmtLet:
		let, _ := d.b.Stmts.Let(id)
		kw := "Let"
		if let.IsConst {
			kw = "Const"
		}
		d.printf(depth, "%s %s", kw, d.b.Name(let.Name))
		if let.Value.IsValid() {
			d.expr(let.Value, depth+1)
		}
	case ast.StmtIf:
		ifStmt, _ := d.b.Stmts.If(id)
		d.printf(depth, "If")
		d.expr(ifStmt.Cond, depth+1)
		d.stmt(ifStmt.Then, depth+1)
		if ifStmt.Else.IsValid() {
			d.printf(depth, "Else")
			d.stmt(ifStmt.Else, depth+1)
		}
	case ast.StmtFor:
		forStmt, _ := d.b.Stmts.For(id)
		d.printf(depth, "For %s in", d.b.Name(forStmt.Var))
		d.expr(forStmt.Iterable, depth+1)
		d.stmt(forStmt.Body, depth+1)
	case ast.StmtExpr:
		es, _ := d.b.Stmts.Expr(id)
		d.expr(es.Expr, depth)
	default:
		d.printf(depth, "InvalidStmt")
	}
}

func (d *dumper) expr(id ast.ExprID, depth int) {
	if !id.IsValid() {
		return
	}
	switch d.b.Exprs.Kind(id) {
	case ast.ExprIdent:
		ident, _ := d.b.Exprs.Ident(id)
		d.printf(depth, "Ident %s", d.b.Name(ident.Name))
	case ast.ExprLit:
		lit, _ := d.b.Exprs.Lit(id)
		d.printf(depth, "Lit %s", lit.Text)
	case ast.ExprPath:
		path, _ := d.b.Exprs.Path(id)
		segs := make([]string, len(path.Segments))
		for i, seg := range path.Segments {
			segs[i] = d.b.Name(seg)
		}
		d.printf(depth, "Path %s", strings.Join(segs, "::"))
	case ast.ExprUnary:
		u, _ := d.b.Exprs.Unary(id)
		d.printf(depth, "Unary %d", u.Op)
		d.expr(u.Operand, depth+1)
	case ast.ExprBinary:
		bin, _ := d.b.Exprs.Binary(id)
		d.printf(depth, "Binary %s", bin.Op)
		d.expr(bin.Left, depth+1)
		d.expr(bin.Right, depth+1)
	case ast.ExprRange:
		rng, _ := d.b.Exprs.Range(id)
		d.printf(depth, "Range")
		d.expr(rng.Low, depth+1)
		d.expr(rng.High, depth+1)
	case ast.ExprCall:
		call, _ := d.b.Exprs.Call(id)
		d.printf(depth, "Call (%d args)", len(call.Args))
		d.expr(call.Callee, depth+1)
		for _, arg := range call.Args {
			d.expr(arg, depth+1)
		}
	case ast.ExprMember:
		member, _ := d.b.Exprs.Member(id)
		d.printf(depth, "Member .%s", d.b.Name(member.Name))
		d.expr(member.Target, depth+1)
	case ast.ExprIndex:
		idx, _ := d.b.Exprs.Index(id)
		d.printf(depth, "Index")
		d.expr(idx.Target, depth+1)
		d.expr(idx.Index, depth+1)
	case ast.ExprArray:
		arr, _ := d.b.Exprs.Array(id)
		d.printf(depth, "Array (%d elems)", len(arr.Elems))
		for _, elem := range arr.Elems {
			d.expr(elem, depth+1)
		}
	case ast.ExprGroup:
		g, _ := d.b.Exprs.Group(id)
		d.printf(depth, "Group")
		d.expr(g.Inner, depth+1)
	case ast.ExprThis:
		d.printf(depth, "This")
	default:
		d.printf(depth, "InvalidExpr")
	}
}
