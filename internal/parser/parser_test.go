package parser_test

import (
	"testing"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/parser"
	"quill/internal/source"
	"quill/internal/testkit"
)

func parseSrc(t *testing.T, src string) (parser.Result, *ast.Builder, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ql", []byte(src))
	bag := diag.NewBag(256)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	res := parser.ParseFile(fs, lx, b, parser.Options{Reporter: rep})
	return res, b, bag
}

func fileItems(t *testing.T, res parser.Result, b *ast.Builder) []ast.ItemID {
	t.Helper()
	f := b.File(res.File)
	if f == nil {
		t.Fatal("parse produced no file node")
	}
	return f.Items
}

func requireClean(t *testing.T, bag *diag.Bag) {
	t.Helper()
	if bag.HasErrors() {
		for _, d := range bag.Items() {
			t.Logf("  %s: %s", d.Code.ID(), d.Message)
		}
		t.Fatal("unexpected diagnostics")
	}
}

func TestParseLetAndConst(t *testing.T) {
	res, b, bag := parseSrc(t, "let x = 1;\nconst pi = 3.14;\nlet empty;")
	requireClean(t, bag)

	items := fileItems(t, res, b)
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}

	x, ok := b.Items.Let(items[0])
	if !ok || x.IsConst || b.Name(x.Name) != "x" || !x.Value.IsValid() {
		t.Errorf("let x = %+v, %v", x, ok)
	}
	pi, ok := b.Items.Let(items[1])
	if !ok || !pi.IsConst || b.Name(pi.Name) != "pi" {
		t.Errorf("const pi = %+v, %v", pi, ok)
	}
	empty, ok := b.Items.Let(items[2])
	if !ok || empty.Value.IsValid() {
		t.Errorf("let empty = %+v, %v", empty, ok)
	}
}

func TestParseUseDecl(t *testing.T) {
	res, b, bag := parseSrc(t, "use core::log::info as print, warn;")
	requireClean(t, bag)

	items := fileItems(t, res, b)
	if len(items) != 2 {
		t.Fatalf("items = %d, want one use record per imported item", len(items))
	}

	first, ok := b.Items.Use(items[0])
	if !ok {
		t.Fatal("first item is not a use")
	}
	if len(first.Path) != 2 || b.Name(first.Path[0]) != "core" || b.Name(first.Path[1]) != "log" {
		t.Errorf("path = %v", first.Path)
	}
	if b.Name(first.Name) != "info" || b.Name(first.Alias) != "print" {
		t.Errorf("first = name %q alias %q", b.Name(first.Name), b.Name(first.Alias))
	}
	if b.Name(first.LocalName()) != "print" {
		t.Errorf("LocalName = %q", b.Name(first.LocalName()))
	}

	second, ok := b.Items.Use(items[1])
	if !ok || b.Name(second.Name) != "warn" || second.Alias != source.NoStringID {
		t.Errorf("second = %+v, %v", second, ok)
	}
	if len(second.Path) != 2 {
		t.Errorf("second path = %v, want shared path", second.Path)
	}
}

func TestParseUseWithoutItem(t *testing.T) {
	_, _, bag := parseSrc(t, "use core;")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynExpectItemAfterPath {
			found = true
		}
	}
	if !found {
		t.Error("single-segment use must be rejected")
	}
}

func TestParseModuleNesting(t *testing.T) {
	res, b, bag := parseSrc(t, `
module outer {
	let a = 1;
	module inner {
		function f() { a; }
	}
}
`)
	requireClean(t, bag)

	items := fileItems(t, res, b)
	if len(items) != 1 {
		t.Fatalf("items = %d", len(items))
	}
	outer, ok := b.Items.Module(items[0])
	if !ok || b.Name(outer.Name) != "outer" || len(outer.Items) != 2 {
		t.Fatalf("outer = %+v, %v", outer, ok)
	}
	inner, ok := b.Items.Module(outer.Items[1])
	if !ok || b.Name(inner.Name) != "inner" || len(inner.Items) != 1 {
		t.Fatalf("inner = %+v, %v", inner, ok)
	}
	if _, ok := b.Items.Function(inner.Items[0]); !ok {
		t.Error("inner module must contain the function")
	}
}

func TestParseClassMembersAnyOrder(t *testing.T) {
	res, b, bag := parseSrc(t, `
class Circle {
	area() { this.radius; }
	radius: num;
	constructor(r) { this.radius = r; }
	static unit() { Circle(1); }
}
`)
	requireClean(t, bag)

	items := fileItems(t, res, b)
	cls, ok := b.Items.Class(items[0])
	if !ok || b.Name(cls.Name) != "Circle" {
		t.Fatalf("class = %+v, %v", cls, ok)
	}
	if len(cls.Members) != 4 {
		t.Fatalf("members = %d", len(cls.Members))
	}

	kinds := []ast.MemberKind{
		ast.MemberInstanceMethod,
		ast.MemberField,
		ast.MemberConstructor,
		ast.MemberStaticMethod,
	}
	for i, want := range kinds {
		m := b.Items.Member(cls.Members[i])
		if m.Kind != want {
			t.Errorf("member %d kind = %v, want %v", i, m.Kind, want)
		}
	}

	area := b.Items.Member(cls.Members[0])
	if fn := b.Items.Fn(area.Fn); fn == nil || !fn.UsesThis {
		t.Error("area body mentions this, UsesThis must be set")
	}
	static := b.Items.Member(cls.Members[3])
	if fn := b.Items.Fn(static.Fn); fn == nil || fn.UsesThis {
		t.Error("static body has no this, UsesThis must be clear")
	}
	field := b.Items.Member(cls.Members[1])
	if b.Name(field.FieldType) != "num" {
		t.Errorf("field type = %q", b.Name(field.FieldType))
	}
}

func TestParseDuplicateConstructor(t *testing.T) {
	_, _, bag := parseSrc(t, `
class C {
	constructor() {}
	constructor(x) {}
}
`)
	count := 0
	for _, d := range bag.Items() {
		if d.Code == diag.SynDuplicateConstructor {
			count++
		}
	}
	if count != 1 {
		t.Errorf("SynDuplicateConstructor count = %d, want 1", count)
	}
}

func TestParseFunctionParams(t *testing.T) {
	res, b, bag := parseSrc(t, "function add(a, b) { a + b; }")
	requireClean(t, bag)

	fn, ok := b.Items.Function(fileItems(t, res, b)[0])
	if !ok || b.Name(fn.Name) != "add" {
		t.Fatalf("fn = %+v, %v", fn, ok)
	}
	if len(fn.Params) != 2 || b.Name(fn.Params[0].Name) != "a" || b.Name(fn.Params[1].Name) != "b" {
		t.Errorf("params = %v", fn.Params)
	}
	if fn.UsesThis {
		t.Error("free function must not record this usage")
	}
}

func TestParseIfThenElseChain(t *testing.T) {
	res, b, bag := parseSrc(t, `
function f(x) {
	if x < 0 then { x = 0; } else if x > 9 then { x = 9; } else { x = x; }
}
`)
	requireClean(t, bag)

	fn, _ := b.Items.Function(fileItems(t, res, b)[0])
	block, _ := b.Stmts.Block(fn.Body)
	ifStmt, ok := b.Stmts.If(block.Stmts[0])
	if !ok || !ifStmt.Else.IsValid() {
		t.Fatalf("if = %+v, %v", ifStmt, ok)
	}
	chained, ok := b.Stmts.If(ifStmt.Else)
	if !ok || !chained.Else.IsValid() {
		t.Fatalf("else-if chain = %+v, %v", chained, ok)
	}
	if b.Stmts.Kind(chained.Else) != ast.StmtBlock {
		t.Error("final else must be a block")
	}
}

func TestParseForInRange(t *testing.T) {
	res, b, bag := parseSrc(t, "function f() { for turn in 0..15 { turn; } }")
	requireClean(t, bag)

	fn, _ := b.Items.Function(fileItems(t, res, b)[0])
	block, _ := b.Stmts.Block(fn.Body)
	forStmt, ok := b.Stmts.For(block.Stmts[0])
	if !ok || b.Name(forStmt.Var) != "turn" {
		t.Fatalf("for = %+v, %v", forStmt, ok)
	}

	rng, ok := b.Exprs.Range(forStmt.Iterable)
	if !ok {
		t.Fatalf("iterable kind = %v, want range", b.Exprs.Kind(forStmt.Iterable))
	}
	low, _ := b.Exprs.Lit(rng.Low)
	high, _ := b.Exprs.Lit(rng.High)
	if b.Name(low.Text) != "0" || b.Name(high.Text) != "15" {
		t.Errorf("range = %s..%s", b.Name(low.Text), b.Name(high.Text))
	}
}

func TestParseForOverCollection(t *testing.T) {
	res, b, bag := parseSrc(t, "function f(items) { for item in items { item; } }")
	requireClean(t, bag)

	fn, _ := b.Items.Function(fileItems(t, res, b)[0])
	block, _ := b.Stmts.Block(fn.Body)
	forStmt, _ := b.Stmts.For(block.Stmts[0])
	if b.Exprs.Kind(forStmt.Iterable) != ast.ExprIdent {
		t.Errorf("iterable kind = %v", b.Exprs.Kind(forStmt.Iterable))
	}
}

func TestExprPrecedence(t *testing.T) {
	res, b, bag := parseSrc(t, "let r = a + b * c;")
	requireClean(t, bag)

	let, _ := b.Items.Let(fileItems(t, res, b)[0])
	top, ok := b.Exprs.Binary(let.Value)
	if !ok || top.Op != ast.BinAdd {
		t.Fatalf("top op = %+v", top)
	}
	right, ok := b.Exprs.Binary(top.Right)
	if !ok || right.Op != ast.BinMul {
		t.Errorf("mul must bind tighter: right = %+v", right)
	}
}

func TestAssignmentRightAssociative(t *testing.T) {
	res, b, bag := parseSrc(t, "function f(a, b, c) { a = b = c; }")
	requireClean(t, bag)

	fn, _ := b.Items.Function(fileItems(t, res, b)[0])
	block, _ := b.Stmts.Block(fn.Body)
	es, _ := b.Stmts.Expr(block.Stmts[0])
	top, ok := b.Exprs.Binary(es.Expr)
	if !ok || top.Op != ast.BinAssign {
		t.Fatalf("top = %+v", top)
	}
	nested, ok := b.Exprs.Binary(top.Right)
	if !ok || nested.Op != ast.BinAssign {
		t.Error("a = b = c must nest to the right")
	}
}

func TestInvalidAssignTarget(t *testing.T) {
	_, _, bag := parseSrc(t, "function f() { 1 = 2; }")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynInvalidAssignTarget {
			found = true
		}
	}
	if !found {
		t.Error("assigning to a literal must be rejected")
	}
}

func TestCompoundAssign(t *testing.T) {
	res, b, bag := parseSrc(t, "function f(l, c) { l += c; }")
	requireClean(t, bag)

	fn, _ := b.Items.Function(fileItems(t, res, b)[0])
	block, _ := b.Stmts.Block(fn.Body)
	es, _ := b.Stmts.Expr(block.Stmts[0])
	bin, ok := b.Exprs.Binary(es.Expr)
	if !ok || bin.Op != ast.BinAddAssign {
		t.Errorf("op = %+v", bin)
	}
}

func TestPathCall(t *testing.T) {
	res, b, bag := parseSrc(t, `log::info("hello");`)
	requireClean(t, bag)

	items := fileItems(t, res, b)
	si, ok := b.Items.Stmt(items[0])
	if !ok {
		t.Fatal("loose statement item expected")
	}
	es, _ := b.Stmts.Expr(si.Stmt)
	call, ok := b.Exprs.Call(es.Expr)
	if !ok || len(call.Args) != 1 {
		t.Fatalf("call = %+v, %v", call, ok)
	}
	path, ok := b.Exprs.Path(call.Callee)
	if !ok || len(path.Segments) != 2 {
		t.Fatalf("callee = %v", b.Exprs.Kind(call.Callee))
	}
	if b.Name(path.Segments[0]) != "log" || b.Name(path.Segments[1]) != "info" {
		t.Errorf("segments = %v", path.Segments)
	}
}

func TestMemberIndexChain(t *testing.T) {
	res, b, bag := parseSrc(t, "function f(g) { g.board[2].mark(); }")
	requireClean(t, bag)

	fn, _ := b.Items.Function(fileItems(t, res, b)[0])
	block, _ := b.Stmts.Block(fn.Body)
	es, _ := b.Stmts.Expr(block.Stmts[0])
	call, ok := b.Exprs.Call(es.Expr)
	if !ok {
		t.Fatal("outermost must be the call")
	}
	member, ok := b.Exprs.Member(call.Callee)
	if !ok || b.Name(member.Name) != "mark" {
		t.Fatalf("callee = %v", b.Exprs.Kind(call.Callee))
	}
	if _, ok := b.Exprs.Index(member.Target); !ok {
		t.Error("member target must be the index expression")
	}
}

func TestStatementRecovery(t *testing.T) {
	res, b, bag := parseSrc(t, `
function f() {
	let x = ;
	let y = 2;
}
`)
	if !bag.HasErrors() {
		t.Fatal("malformed statement must produce a diagnostic")
	}

	fn, _ := b.Items.Function(fileItems(t, res, b)[0])
	block, _ := b.Stmts.Block(fn.Body)
	found := false
	for _, s := range block.Stmts {
		if ls, ok := b.Stmts.Let(s); ok && b.Name(ls.Name) == "y" {
			found = true
		}
	}
	if !found {
		t.Error("parser must recover and see the next statement")
	}
}

func TestTopLevelRecovery(t *testing.T) {
	res, b, bag := parseSrc(t, "class { }\nlet ok = 1;")
	if !bag.HasErrors() {
		t.Fatal("class without a name must error")
	}
	items := fileItems(t, res, b)
	found := false
	for _, it := range items {
		if ls, ok := b.Items.Let(it); ok && b.Name(ls.Name) == "ok" {
			found = true
		}
	}
	if !found {
		t.Error("top-level recovery must reach the next item")
	}
}

func TestDanglingCommentClose(t *testing.T) {
	_, _, bag := parseSrc(t, "/* a */ */")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynDanglingCommentClose {
			found = true
		}
	}
	if !found {
		t.Error("dangling */ must raise SynDanglingCommentClose")
	}
}

func TestThisOutsideClass(t *testing.T) {
	_, _, bag := parseSrc(t, "function f() { this.x; }")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SemaThisOutsideClass {
			found = true
		}
	}
	if !found {
		t.Error("this outside a class must be reported")
	}
}

func TestParseDeterminism(t *testing.T) {
	src := `
use std::io::read_file;
module game {
	class Board {
		cells: array;
		constructor(n) { this.cells = []; for i in 0..n { this.cells; } }
	}
	function play(b) { if b then { log::info("go"); } else { } }
}
`
	_, b1, bag1 := parseSrc(t, src)
	_, b2, bag2 := parseSrc(t, src)
	requireClean(t, bag1)
	requireClean(t, bag2)

	if b1.Items.Len() != b2.Items.Len() ||
		b1.Stmts.Len() != b2.Stmts.Len() ||
		b1.Exprs.Len() != b2.Exprs.Len() {
		t.Error("repeated parses must allocate identical node counts")
	}
}

func TestParseSpanInvariants(t *testing.T) {
	src := `use core::log::info;
module game {
	let score = 0;
	function bump(n) { score + n; }
}
let outside = 1;
`
	fs := source.NewFileSet()
	id := fs.AddVirtual("spans.ql", []byte(src))
	bag := diag.NewBag(256)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	res := parser.ParseFile(fs, lx, b, parser.Options{Reporter: rep})
	requireClean(t, bag)

	if err := testkit.CheckSpanInvariants(b, res.File, fs.Get(id)); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
}

func TestMissingSemicolonCarriesFix(t *testing.T) {
	_, _, bag := parseSrc(t, "let x = 1")
	if !bag.HasErrors() {
		t.Fatal("expected a missing-semicolon error")
	}

	found := false
	for _, d := range bag.Items() {
		for _, f := range d.Fixes {
			if len(f.Edits) == 1 && f.Edits[0].NewText == ";" {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("missing-semicolon diagnostic has no insertion fix")
	}
}
