package ast

import "quill/internal/source"

type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtBlock
	StmtLet
	StmtIf
	StmtFor
	StmtExpr
)

func (k StmtKind) String() string {
	switch k {
	case StmtInvalid:
		return "Invalid"
	case StmtBlock:
		return "Block"
	case StmtLet:
		return "Let"
	case StmtIf:
		return "If"
	case StmtFor:
		return "For"
	case StmtExpr:
		return "Expr"
	default:
		return "StmtKind(?)"
	}
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type BlockStmt struct {
	Stmts []StmtID
}

type LetStmt struct {
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID // NoExprID when no initializer
	IsConst  bool
}

// IfStmt: Else is NoStmtID when absent. then/else branches are always
// blocks in well-formed input.
type IfStmt struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

// ForStmt binds Var over Iterable, a collection or a range expression.
type ForStmt struct {
	Var      source.StringID
	VarSpan  source.Span
	Iterable ExprID
	Body     StmtID
}

type ExprStmt struct {
	Expr ExprID
}

type Stmts struct {
	headers *Arena[Stmt]

	blocks *Arena[BlockStmt]
	lets   *Arena[LetStmt]
	ifs    *Arena[IfStmt]
	fors   *Arena[ForStmt]
	exprs  *Arena[ExprStmt]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{
		headers: NewArena[Stmt](capHint),
		blocks:  NewArena[BlockStmt](0),
		lets:    NewArena[LetStmt](0),
		ifs:     NewArena[IfStmt](0),
		fors:    NewArena[ForStmt](0),
		exprs:   NewArena[ExprStmt](capHint / 2),
	}
}

func (s *Stmts) alloc(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.headers.Allocate(Stmt{Kind: kind, Span: span, Payload: payload}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.headers.Get(uint32(id))
}

func (s *Stmts) Len() uint32 { return s.headers.Len() }

func (s *Stmts) Kind(id StmtID) StmtKind {
	h := s.Get(id)
	if h == nil {
		return StmtInvalid
	}
	return h.Kind
}

func (s *Stmts) Span(id StmtID) source.Span {
	h := s.Get(id)
	if h == nil {
		return source.Span{}
	}
	return h.Span
}

func (s *Stmts) NewInvalid(span source.Span) StmtID {
	return s.alloc(StmtInvalid, span, NoPayloadID)
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	p := PayloadID(s.blocks.Allocate(BlockStmt{Stmts: stmts}))
	return s.alloc(StmtBlock, span, p)
}

func (s *Stmts) NewLet(span source.Span, name source.StringID, nameSpan source.Span, value ExprID, isConst bool) StmtID {
	p := PayloadID(s.lets.Allocate(LetStmt{Name: name, NameSpan: nameSpan, Value: value, IsConst: isConst}))
	return s.alloc(StmtLet, span, p)
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	p := PayloadID(s.ifs.Allocate(IfStmt{Cond: cond, Then: then, Else: els}))
	return s.alloc(StmtIf, span, p)
}

func (s *Stmts) NewFor(span source.Span, varName source.StringID, varSpan source.Span, iterable ExprID, body StmtID) StmtID {
	p := PayloadID(s.fors.Allocate(ForStmt{Var: varName, VarSpan: varSpan, Iterable: iterable, Body: body}))
	return s.alloc(StmtFor, span, p)
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	p := PayloadID(s.exprs.Allocate(ExprStmt{Expr: expr}))
	return s.alloc(StmtExpr, span, p)
}

func (s *Stmts) Block(id StmtID) (*BlockStmt, bool) {
	h := s.Get(id)
	if h == nil || h.Kind != StmtBlock {
		return nil, false
	}
	return s.blocks.Get(uint32(h.Payload)), true
}

func (s *Stmts) Let(id StmtID) (*LetStmt, bool) {
	h := s.Get(id)
	if h == nil || h.Kind != StmtLet {
		return nil, false
	}
	return s.lets.Get(uint32(h.Payload)), true
}

func (s *Stmts) If(id StmtID) (*IfStmt, bool) {
	h := s.Get(id)
	if h == nil || h.Kind != StmtIf {
		return nil, false
	}
	return s.ifs.Get(uint32(h.Payload)), true
}

func (s *Stmts) For(id StmtID) (*ForStmt, bool) {
	h := s.Get(id)
	if h == nil || h.Kind != StmtFor {
		return nil, false
	}
	return s.fors.Get(uint32(h.Payload)), true
}

func (s *Stmts) Expr(id StmtID) (*ExprStmt, bool) {
	h := s.Get(id)
	if h == nil || h.Kind != StmtExpr {
		return nil, false
	}
	return s.exprs.Get(uint32(h.Payload)), true
}
