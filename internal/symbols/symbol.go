package symbols

import (
	"quill/internal/ast"
	"quill/internal/source"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolModule
	SymbolImport
	SymbolClass
	SymbolFunction
	SymbolMethod
	SymbolField
	SymbolLet
	SymbolParam
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolModule:
		return "module"
	case SymbolImport:
		return "import"
	case SymbolClass:
		return "class"
	case SymbolFunction:
		return "function"
	case SymbolMethod:
		return "method"
	case SymbolField:
		return "field"
	case SymbolLet:
		return "let"
	case SymbolParam:
		return "param"
	default:
		return "invalid"
	}
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint16

const (
	SymbolFlagConst SymbolFlags = 1 << iota
	SymbolFlagStatic
	SymbolFlagImported
	SymbolFlagBuiltin
	// SymbolFlagPreludeReplacing marks a program declaration that shadows
	// the same-named prelude builtin throughout the program.
	SymbolFlagPreludeReplacing
)

// Strings returns textual flag labels for debug output.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	if f&SymbolFlagConst != 0 {
		labels = append(labels, "const")
	}
	if f&SymbolFlagStatic != 0 {
		labels = append(labels, "static")
	}
	if f&SymbolFlagImported != 0 {
		labels = append(labels, "imported")
	}
	if f&SymbolFlagBuiltin != 0 {
		labels = append(labels, "builtin")
	}
	if f&SymbolFlagPreludeReplacing != 0 {
		labels = append(labels, "prelude-replacing")
	}
	return labels
}

// SymbolDecl records the AST origin for diagnostics.
type SymbolDecl struct {
	SourceFile source.FileID
	ASTFile    ast.FileID
	Item       ast.ItemID
	Member     ast.MemberID
	Stmt       ast.StmtID
}

// Symbol describes a named entity available in a scope. Target carries
// the symbol an import binding points to; QualifiedPath is set for
// stdlib entries (e.g. "core::log::info").
type Symbol struct {
	Name          source.StringID
	Kind          SymbolKind
	Scope         ScopeID
	Span          source.Span
	Flags         SymbolFlags
	Decl          SymbolDecl
	Arity         int // -1 variadic, 0+ fixed; meaningful for callables
	Target        SymbolID
	QualifiedPath string
}
