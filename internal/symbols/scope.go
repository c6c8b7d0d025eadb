package symbols

import (
	"quill/internal/ast"
	"quill/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopePrelude            // outermost ring holding prelude bindings
	ScopeFile               // artificial root per parsed file
	ScopeModule             // module body
	ScopeClass              // class body, one frame for fields and methods
	ScopeFunction           // function or method body
	ScopeBlock              // generic block scope
)

func (k ScopeKind) String() string {
	switch k {
	case ScopePrelude:
		return "prelude"
	case ScopeFile:
		return "file"
	case ScopeModule:
		return "module"
	case ScopeClass:
		return "class"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// ScopeOwnerKind distinguishes what AST element owns a scope.
type ScopeOwnerKind uint8

const (
	ScopeOwnerUnknown ScopeOwnerKind = iota
	ScopeOwnerFile
	ScopeOwnerItem
	ScopeOwnerMember
	ScopeOwnerStmt
)

// ScopeOwner references the AST construct associated with the scope.
type ScopeOwner struct {
	Kind       ScopeOwnerKind
	SourceFile source.FileID
	ASTFile    ast.FileID
	Item       ast.ItemID
	Member     ast.MemberID
	Stmt       ast.StmtID
}

// Scope models a lexical scope with a parent-child hierarchy. NameIndex
// keeps declarations per name in declaration order.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Owner     ScopeOwner
	Span      source.Span
	NameIndex map[source.StringID][]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
}
