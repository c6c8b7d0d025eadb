package ast_test

import (
	"testing"

	"quill/internal/ast"
	"quill/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func TestArenaIsOneBased(t *testing.T) {
	a := ast.NewArena[int](0)
	if a.Get(0) != nil {
		t.Error("index 0 must be the invalid sentinel")
	}
	first := a.Allocate(7)
	if first != 1 {
		t.Fatalf("first Allocate = %d, want 1", first)
	}
	if got := a.Get(first); got == nil || *got != 7 {
		t.Errorf("Get(%d) = %v", first, got)
	}
	if a.Len() != 1 {
		t.Errorf("Len = %d", a.Len())
	}
}

func TestExprAccessorsCheckKind(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	name := b.Intern("x")
	id := b.Exprs.NewIdent(sp(0, 1), name)

	if !id.IsValid() {
		t.Fatal("NewIdent returned invalid ID")
	}
	ident, ok := b.Exprs.Ident(id)
	if !ok || ident.Name != name {
		t.Fatalf("Ident(%d) = %v, %v", id, ident, ok)
	}
	if _, ok := b.Exprs.Binary(id); ok {
		t.Error("Binary accessor accepted an ident node")
	}
	if b.Exprs.Kind(ast.NoExprID) != ast.ExprInvalid {
		t.Error("Kind(NoExprID) must be ExprInvalid")
	}
}

func TestBinaryExprRoundTrip(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	one := b.Exprs.NewLit(sp(0, 1), ast.LitInt, b.Intern("1"))
	two := b.Exprs.NewLit(sp(4, 5), ast.LitInt, b.Intern("2"))
	sum := b.Exprs.NewBinary(sp(0, 5), ast.BinAdd, sp(2, 3), one, two)

	bin, ok := b.Exprs.Binary(sum)
	if !ok {
		t.Fatal("Binary accessor failed")
	}
	if bin.Op != ast.BinAdd || bin.Left != one || bin.Right != two {
		t.Errorf("payload = %+v", bin)
	}
	if b.Exprs.Span(sum) != sp(0, 5) {
		t.Errorf("Span = %v", b.Exprs.Span(sum))
	}
}

func TestAssignmentOps(t *testing.T) {
	assign := []ast.ExprBinaryOp{ast.BinAssign, ast.BinAddAssign, ast.BinSubAssign, ast.BinMulAssign, ast.BinDivAssign}
	for _, op := range assign {
		if !op.IsAssignment() {
			t.Errorf("%v.IsAssignment() = false", op)
		}
	}
	plain := []ast.ExprBinaryOp{ast.BinAdd, ast.BinEq, ast.BinAnd, ast.BinLt}
	for _, op := range plain {
		if op.IsAssignment() {
			t.Errorf("%v.IsAssignment() = true", op)
		}
	}
}

func TestUseItemLocalName(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	name := b.Intern("info")
	alias := b.Intern("say")

	plain := ast.UseItem{Name: name}
	if plain.LocalName() != name {
		t.Error("LocalName without alias must be the item name")
	}
	aliased := ast.UseItem{Name: name, Alias: alias}
	if aliased.LocalName() != alias {
		t.Error("LocalName with alias must be the alias")
	}
}

func TestClassMembers(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)

	field := b.Items.NewMember(ast.ClassMember{
		Kind:      ast.MemberField,
		Name:      b.Intern("radius"),
		FieldType: b.Intern("num"),
		Span:      sp(10, 21),
	})
	body := b.Stmts.NewBlock(sp(40, 42), nil)
	ctor := b.Items.NewMember(ast.ClassMember{
		Kind: ast.MemberConstructor,
		Name: b.Intern("constructor"),
		Span: sp(24, 42),
		Fn:   b.Items.NewFn(ast.FnItem{Body: body, UsesThis: true}),
	})
	cls := b.Items.NewClass(sp(0, 44), b.Intern("Circle"), sp(6, 12), []ast.MemberID{field, ctor})

	ci, ok := b.Items.Class(cls)
	if !ok || len(ci.Members) != 2 {
		t.Fatalf("Class = %v, %v", ci, ok)
	}
	fm := b.Items.Member(field)
	if fm.Kind != ast.MemberField || fm.Fn.IsValid() {
		t.Errorf("field member = %+v", fm)
	}
	cm := b.Items.Member(ctor)
	if cm.Kind != ast.MemberConstructor || !cm.Fn.IsValid() {
		t.Fatalf("constructor member = %+v", cm)
	}
	if fn := b.Items.Fn(cm.Fn); fn == nil || !fn.UsesThis {
		t.Error("constructor body must record this usage")
	}
}

func TestFileItems(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	let := b.Items.NewLet(sp(0, 10), b.Intern("answer"), sp(4, 10), ast.NoExprID, true)
	fid := b.AddFile(ast.File{Span: sp(0, 10), Items: []ast.ItemID{let}})

	f := b.File(fid)
	if f == nil || len(f.Items) != 1 {
		t.Fatalf("File = %+v", f)
	}
	li, ok := b.Items.Let(f.Items[0])
	if !ok || !li.IsConst {
		t.Errorf("Let = %v, %v", li, ok)
	}
}
