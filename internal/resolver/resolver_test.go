package resolver_test

import (
	"fmt"
	"testing"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/parser"
	"quill/internal/resolver"
	"quill/internal/source"
	"quill/internal/symbols"
)

func resolveSrc(t *testing.T, cfg resolver.Config, srcs ...string) (*resolver.Result, *ast.Builder, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	bag := diag.NewBag(256)
	rep := diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.Hints{}, nil)

	var files []ast.FileID
	for i, src := range srcs {
		id := fs.AddVirtual(fmt.Sprintf("unit%d.ql", i), []byte(src))
		lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
		res := parser.ParseFile(fs, lx, builder, parser.Options{Reporter: rep})
		files = append(files, res.File)
	}
	if bag.HasErrors() {
		for _, d := range bag.Items() {
			t.Logf("  parse: %s: %s", d.Code.ID(), d.Message)
		}
		t.Fatal("fixture must parse cleanly")
	}

	table := symbols.NewTable(symbols.Hints{}, builder.Strings)
	result := resolver.Resolve(builder, files, table, cfg, rep)
	return result, builder, bag
}

// identExprs finds every identifier expression spelled name.
func identExprs(b *ast.Builder, name string) []ast.ExprID {
	var out []ast.ExprID
	for i := uint32(1); i <= b.Exprs.Len(); i++ {
		id := ast.ExprID(i)
		if ident, ok := b.Exprs.Ident(id); ok && b.Name(ident.Name) == name {
			out = append(out, id)
		}
	}
	return out
}

func pathExprs(b *ast.Builder, last string) []ast.ExprID {
	var out []ast.ExprID
	for i := uint32(1); i <= b.Exprs.Len(); i++ {
		id := ast.ExprID(i)
		if p, ok := b.Exprs.Path(id); ok && b.Name(p.Segments[len(p.Segments)-1]) == last {
			out = append(out, id)
		}
	}
	return out
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

func TestResolvePreludeBuiltin(t *testing.T) {
	res, b, bag := resolveSrc(t, resolver.Config{}, `print("hi");`)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}

	ids := identExprs(b, "print")
	if len(ids) != 1 {
		t.Fatalf("print references = %d", len(ids))
	}
	sym := res.Table.Symbols.Get(res.Bindings[ids[0]])
	if sym == nil || sym.QualifiedPath != "prelude::print" {
		t.Errorf("print bound to %+v", sym)
	}
}

func TestUnresolvedNameContinues(t *testing.T) {
	_, _, bag := resolveSrc(t, resolver.Config{},
		"function f() { missing; also_missing; }")
	if n := countCode(bag, diag.SemaUnresolvedName); n != 2 {
		t.Errorf("SemaUnresolvedName = %d, want 2 (resolution must continue)", n)
	}
}

func TestForLoopVarScoped(t *testing.T) {
	_, _, bag := resolveSrc(t, resolver.Config{}, `
function f() {
	for turn in 0..15 {
		let line = turn;
		line;
	}
	turn;
}
`)
	if n := countCode(bag, diag.SemaUnresolvedName); n != 1 {
		t.Errorf("SemaUnresolvedName = %d, want exactly the post-loop reference", n)
	}
}

func TestLetInBlockNotVisibleAfter(t *testing.T) {
	_, _, bag := resolveSrc(t, resolver.Config{}, `
function f(flag) {
	if flag then {
		let inner = 1;
	}
	inner;
}
`)
	if countCode(bag, diag.SemaUnresolvedName) != 1 {
		t.Error("binding must die with its block")
	}
}

func TestDuplicateLetInBlock(t *testing.T) {
	_, _, bag := resolveSrc(t, resolver.Config{}, `
function f() {
	let total = 1;
	let total = 2;
	total;
}
`)
	if n := countCode(bag, diag.SemaDuplicateDeclaration); n != 1 {
		t.Errorf("SemaDuplicateDeclaration = %d, want 1", n)
	}
	// the reference after the duplicate still resolves
	if countCode(bag, diag.SemaUnresolvedName) != 0 {
		t.Error("resolution must continue after a duplicate")
	}
}

func TestImportBeatsPrelude(t *testing.T) {
	res, b, bag := resolveSrc(t, resolver.Config{}, `
use core::log::info as print;
print("redirected");
`)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}

	ids := identExprs(b, "print")
	sym := res.Table.Symbols.Get(res.Bindings[ids[0]])
	if sym == nil || sym.QualifiedPath != "core::log::info" {
		t.Errorf("print bound to %+v, want the explicit import", sym)
	}
}

func TestLocalBeatsImportAndPrelude(t *testing.T) {
	res, b, bag := resolveSrc(t, resolver.Config{}, `
use core::log::info as print;
function f() {
	let print = 1;
	print;
}
`)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}

	ids := identExprs(b, "print")
	sym := res.Table.Symbols.Get(res.Bindings[ids[len(ids)-1]])
	if sym == nil || sym.Kind != symbols.SymbolLet {
		t.Errorf("innermost binding must win, got %+v", sym)
	}
}

func TestPreludeModuleReplacement(t *testing.T) {
	res, b, bag := resolveSrc(t, resolver.Config{}, `
module prelude {
	function print(line) { line; }
}
print("custom");
`)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	if countCode(bag, diag.SemaPreludeReplaced) != 1 {
		t.Error("replacement must leave its informational marker")
	}

	var topRef ast.ExprID
	for _, id := range identExprs(b, "print") {
		if _, bound := res.Bindings[id]; bound {
			topRef = id
		}
	}
	sym := res.Table.Symbols.Get(res.Bindings[topRef])
	if sym == nil || sym.Flags&symbols.SymbolFlagBuiltin != 0 {
		t.Errorf("print must bind to the program declaration, got %+v", sym)
	}
	if sym != nil && sym.Flags&symbols.SymbolFlagPreludeReplacing == 0 {
		t.Error("replacement symbol must carry the replacing flag")
	}
}

func TestCoreQualifiedPathDefaultOn(t *testing.T) {
	res, b, bag := resolveSrc(t, resolver.Config{}, `log::info("direct");`)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}

	paths := pathExprs(b, "info")
	sym := res.Table.Symbols.Get(res.Bindings[paths[0]])
	if sym == nil || sym.QualifiedPath != "core::log::info" {
		t.Errorf("log::info bound to %+v", sym)
	}
}

func TestCoreUnqualifiedIsNotVisible(t *testing.T) {
	_, _, bag := resolveSrc(t, resolver.Config{}, "info;")
	if countCode(bag, diag.SemaUnresolvedName) != 1 {
		t.Error("core entries must not leak into unqualified scope")
	}
}

func TestDisabledCoreNamespace(t *testing.T) {
	_, _, bag := resolveSrc(t, resolver.Config{DisabledCore: []string{"log"}},
		`log::info("gone");`)
	if countCode(bag, diag.SemaUnresolvedPath) != 1 {
		t.Error("disabled core namespace must make the path unresolved")
	}
}

func TestStdRequiresEnablement(t *testing.T) {
	_, _, bag := resolveSrc(t, resolver.Config{}, "use std::io::read_file;\nread_file;")
	if countCode(bag, diag.SemaStdNamespaceDisabled) != 1 {
		t.Error("std namespace without enablement must get its own code")
	}

	_, _, bag = resolveSrc(t, resolver.Config{EnabledStd: []string{"io"}},
		"use std::io::read_file;\nread_file;")
	if bag.HasErrors() {
		t.Errorf("enabled std namespace must resolve, got %v", bag.Items())
	}
}

func TestUnresolvedPathDistinctFromName(t *testing.T) {
	_, _, bag := resolveSrc(t, resolver.Config{}, `
nowhere::thing;
missing;
`)
	if countCode(bag, diag.SemaUnresolvedPath) != 1 {
		t.Error("bad path root must be an unresolved-path error")
	}
	if countCode(bag, diag.SemaUnresolvedName) != 1 {
		t.Error("bad identifier must stay an unresolved-name error")
	}
}

func TestModulePathAcrossUnits(t *testing.T) {
	res, b, bag := resolveSrc(t, resolver.Config{},
		"module util { function helper() {} }",
		"util::helper();")
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}

	paths := pathExprs(b, "helper")
	sym := res.Table.Symbols.Get(res.Bindings[paths[0]])
	if sym == nil || sym.Kind != symbols.SymbolFunction {
		t.Errorf("cross-unit module member must resolve, got %+v", sym)
	}
}

func TestUseSiblingModule(t *testing.T) {
	_, _, bag := resolveSrc(t, resolver.Config{}, `
module util {
	function helper() {}
}
use util::helper as h;
h();
`)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
}

func TestClassStaticPath(t *testing.T) {
	res, b, bag := resolveSrc(t, resolver.Config{}, `
class Circle {
	radius: num;
	constructor(r) { this.radius = r; }
	static unit() {}
}
Circle::unit();
`)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}

	paths := pathExprs(b, "unit")
	sym := res.Table.Symbols.Get(res.Bindings[paths[0]])
	if sym == nil || sym.Flags&symbols.SymbolFlagStatic == 0 {
		t.Errorf("static member path must resolve, got %+v", sym)
	}
}

func TestDuplicateClassMember(t *testing.T) {
	_, _, bag := resolveSrc(t, resolver.Config{}, `
class C {
	area: num;
	area() {}
}
`)
	if countCode(bag, diag.SemaDuplicateMember) != 1 {
		t.Error("field and method with one name must collide at resolution")
	}
}

func TestMethodSeesFieldViaThis(t *testing.T) {
	res, b, bag := resolveSrc(t, resolver.Config{}, `
class Counter {
	count: num;
	bump() { this.count = this.count + 1; }
}
`)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}

	// this binds to the class symbol
	bound := false
	for i := uint32(1); i <= b.Exprs.Len(); i++ {
		id := ast.ExprID(i)
		if b.Exprs.Kind(id) == ast.ExprThis {
			if sym := res.Table.Symbols.Get(res.Bindings[id]); sym != nil && sym.Kind == symbols.SymbolClass {
				bound = true
			}
		}
	}
	if !bound {
		t.Error("this must bind to the enclosing class")
	}
}

func TestUseItemAliasEachOwnBinding(t *testing.T) {
	res, b, bag := resolveSrc(t, resolver.Config{}, `
use core::math::abs, min as smallest;
abs(1);
smallest(1, 2);
`)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}

	absSym := res.Table.Symbols.Get(res.Bindings[identExprs(b, "abs")[0]])
	if absSym == nil || absSym.QualifiedPath != "core::math::abs" {
		t.Errorf("abs bound to %+v", absSym)
	}
	minSym := res.Table.Symbols.Get(res.Bindings[identExprs(b, "smallest")[0]])
	if minSym == nil || minSym.QualifiedPath != "core::math::min" {
		t.Errorf("smallest bound to %+v", minSym)
	}
}

func TestResolutionDeterminism(t *testing.T) {
	src := `
use core::log::info;
module game {
	let board = [];
	function turn(n) { for i in 0..n { info(i); } }
}
game::turn(3);
`
	_, _, bag1 := resolveSrc(t, resolver.Config{}, src)
	_, _, bag2 := resolveSrc(t, resolver.Config{}, src)
	if bag1.Len() != bag2.Len() {
		t.Error("repeated passes must produce identical diagnostics")
	}
}
