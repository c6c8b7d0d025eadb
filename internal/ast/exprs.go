package ast

import "quill/internal/source"

type IdentExpr struct {
	Name source.StringID
}

// LitExpr keeps the raw lexeme; literal decoding is a consumer concern.
type LitExpr struct {
	Kind ExprLitKind
	Text source.StringID
}

// PathExpr is a qualified name like log::info. Segments and SegSpans are
// parallel and always the same length.
type PathExpr struct {
	Segments []source.StringID
	SegSpans []source.Span
}

type UnaryExpr struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type BinaryExpr struct {
	Op     ExprBinaryOp
	OpSpan source.Span
	Left   ExprID
	Right  ExprID
}

// RangeExpr is the half-open a..b form.
type RangeExpr struct {
	Low  ExprID
	High ExprID
}

type CallExpr struct {
	Callee ExprID
	Args   []ExprID
}

type MemberExpr struct {
	Target   ExprID
	Name     source.StringID
	NameSpan source.Span
}

type IndexExpr struct {
	Target ExprID
	Index  ExprID
}

type ArrayExpr struct {
	Elems []ExprID
}

type GroupExpr struct {
	Inner ExprID
}

// Exprs owns every expression node of a build. The header arena gives each
// node a stable ExprID; payloads live in kind-specific arenas.
type Exprs struct {
	headers *Arena[Expr]

	idents   *Arena[IdentExpr]
	lits     *Arena[LitExpr]
	paths    *Arena[PathExpr]
	unaries  *Arena[UnaryExpr]
	binaries *Arena[BinaryExpr]
	ranges   *Arena[RangeExpr]
	calls    *Arena[CallExpr]
	members  *Arena[MemberExpr]
	indexes  *Arena[IndexExpr]
	arrays   *Arena[ArrayExpr]
	groups   *Arena[GroupExpr]
}

func NewExprs(capHint uint) *Exprs {
	return &Exprs{
		headers:  NewArena[Expr](capHint),
		idents:   NewArena[IdentExpr](capHint / 4),
		lits:     NewArena[LitExpr](capHint / 4),
		paths:    NewArena[PathExpr](0),
		unaries:  NewArena[UnaryExpr](0),
		binaries: NewArena[BinaryExpr](capHint / 4),
		ranges:   NewArena[RangeExpr](0),
		calls:    NewArena[CallExpr](0),
		members:  NewArena[MemberExpr](0),
		indexes:  NewArena[IndexExpr](0),
		arrays:   NewArena[ArrayExpr](0),
		groups:   NewArena[GroupExpr](0),
	}
}

func (e *Exprs) alloc(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.headers.Allocate(Expr{Kind: kind, Span: span, Payload: payload}))
}

// Get returns the node header, or nil for an invalid ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.headers.Get(uint32(id))
}

func (e *Exprs) Len() uint32 { return e.headers.Len() }

// Kind is a convenience over Get for dispatch loops.
func (e *Exprs) Kind(id ExprID) ExprKind {
	h := e.Get(id)
	if h == nil {
		return ExprInvalid
	}
	return h.Kind
}

func (e *Exprs) Span(id ExprID) source.Span {
	h := e.Get(id)
	if h == nil {
		return source.Span{}
	}
	return h.Span
}

func (e *Exprs) NewInvalid(span source.Span) ExprID {
	return e.alloc(ExprInvalid, span, NoPayloadID)
}

func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	p := PayloadID(e.idents.Allocate(IdentExpr{Name: name}))
	return e.alloc(ExprIdent, span, p)
}

func (e *Exprs) NewLit(span source.Span, kind ExprLitKind, text source.StringID) ExprID {
	p := PayloadID(e.lits.Allocate(LitExpr{Kind: kind, Text: text}))
	return e.alloc(ExprLit, span, p)
}

func (e *Exprs) NewPath(span source.Span, segments []source.StringID, segSpans []source.Span) ExprID {
	p := PayloadID(e.paths.Allocate(PathExpr{Segments: segments, SegSpans: segSpans}))
	return e.alloc(ExprPath, span, p)
}

func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	p := PayloadID(e.unaries.Allocate(UnaryExpr{Op: op, Operand: operand}))
	return e.alloc(ExprUnary, span, p)
}

func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, opSpan source.Span, left, right ExprID) ExprID {
	p := PayloadID(e.binaries.Allocate(BinaryExpr{Op: op, OpSpan: opSpan, Left: left, Right: right}))
	return e.alloc(ExprBinary, span, p)
}

func (e *Exprs) NewRange(span source.Span, low, high ExprID) ExprID {
	p := PayloadID(e.ranges.Allocate(RangeExpr{Low: low, High: high}))
	return e.alloc(ExprRange, span, p)
}

func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID) ExprID {
	p := PayloadID(e.calls.Allocate(CallExpr{Callee: callee, Args: args}))
	return e.alloc(ExprCall, span, p)
}

func (e *Exprs) NewMember(span source.Span, target ExprID, name source.StringID, nameSpan source.Span) ExprID {
	p := PayloadID(e.members.Allocate(MemberExpr{Target: target, Name: name, NameSpan: nameSpan}))
	return e.alloc(ExprMember, span, p)
}

func (e *Exprs) NewIndex(span source.Span, target, index ExprID) ExprID {
	p := PayloadID(e.indexes.Allocate(IndexExpr{Target: target, Index: index}))
	return e.alloc(ExprIndex, span, p)
}

func (e *Exprs) NewThis(span source.Span) ExprID {
	return e.alloc(ExprThis, span, NoPayloadID)
}

func (e *Exprs) NewArray(span source.Span, elems []ExprID) ExprID {
	p := PayloadID(e.arrays.Allocate(ArrayExpr{Elems: elems}))
	return e.alloc(ExprArray, span, p)
}

func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	p := PayloadID(e.groups.Allocate(GroupExpr{Inner: inner}))
	return e.alloc(ExprGroup, span, p)
}

func (e *Exprs) Ident(id ExprID) (*IdentExpr, bool) {
	h := e.Get(id)
	if h == nil || h.Kind != ExprIdent {
		return nil, false
	}
	return e.idents.Get(uint32(h.Payload)), true
}

func (e *Exprs) Lit(id ExprID) (*LitExpr, bool) {
	h := e.Get(id)
	if h == nil || h.Kind != ExprLit {
		return nil, false
	}
	return e.lits.Get(uint32(h.Payload)), true
}

func (e *Exprs) Path(id ExprID) (*PathExpr, bool) {
	h := e.Get(id)
	if h == nil || h.Kind != ExprPath {
		return nil, false
	}
	return e.paths.Get(uint32(h.Payload)), true
}

func (e *Exprs) Unary(id ExprID) (*UnaryExpr, bool) {
	h := e.Get(id)
	if h == nil || h.Kind != ExprUnary {
		return nil, false
	}
	return e.unaries.Get(uint32(h.Payload)), true
}

func (e *Exprs) Binary(id ExprID) (*BinaryExpr, bool) {
	h := e.Get(id)
	if h == nil || h.Kind != ExprBinary {
		return nil, false
	}
	return e.binaries.Get(uint32(h.Payload)), true
}

func (e *Exprs) Range(id ExprID) (*RangeExpr, bool) {
	h := e.Get(id)
	if h == nil || h.Kind != ExprRange {
		return nil, false
	}
	return e.ranges.Get(uint32(h.Payload)), true
}

func (e *Exprs) Call(id ExprID) (*CallExpr, bool) {
	h := e.Get(id)
	if h == nil || h.Kind != ExprCall {
		return nil, false
	}
	return e.calls.Get(uint32(h.Payload)), true
}

func (e *Exprs) Member(id ExprID) (*MemberExpr, bool) {
	h := e.Get(id)
	if h == nil || h.Kind != ExprMember {
		return nil, false
	}
	return e.members.Get(uint32(h.Payload)), true
}

func (e *Exprs) Index(id ExprID) (*IndexExpr, bool) {
	h := e.Get(id)
	if h == nil || h.Kind != ExprIndex {
		return nil, false
	}
	return e.indexes.Get(uint32(h.Payload)), true
}

func (e *Exprs) Array(id ExprID) (*ArrayExpr, bool) {
	h := e.Get(id)
	if h == nil || h.Kind != ExprArray {
		return nil, false
	}
	return e.arrays.Get(uint32(h.Payload)), true
}

func (e *Exprs) Group(id ExprID) (*GroupExpr, bool) {
	h := e.Get(id)
	if h == nil || h.Kind != ExprGroup {
		return nil, false
	}
	return e.groups.Get(uint32(h.Payload)), true
}
