package ast

import "quill/internal/source"

type ItemKind uint8

const (
	ItemInvalid ItemKind = iota
	ItemModule
	ItemClass
	ItemFunction
	ItemLet
	ItemUse
	// ItemStmt wraps a loose top-level statement; the program root is an
	// implicit module, so plain statements are legal items.
	ItemStmt
)

func (k ItemKind) String() string {
	switch k {
	case ItemInvalid:
		return "Invalid"
	case ItemModule:
		return "Module"
	case ItemClass:
		return "Class"
	case ItemFunction:
		return "Function"
	case ItemLet:
		return "Let"
	case ItemUse:
		return "Use"
	case ItemStmt:
		return "Stmt"
	default:
		return "ItemKind(?)"
	}
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// ModuleItem is a named declaration group; its body items keep source order.
type ModuleItem struct {
	Name     source.StringID
	NameSpan source.Span
	Items    []ItemID
}

type ClassItem struct {
	Name     source.StringID
	NameSpan source.Span
	Members  []MemberID
}

type MemberKind uint8

const (
	MemberInvalid MemberKind = iota
	MemberField
	MemberConstructor
	MemberStaticMethod
	MemberInstanceMethod
)

func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "Field"
	case MemberConstructor:
		return "Constructor"
	case MemberStaticMethod:
		return "StaticMethod"
	case MemberInstanceMethod:
		return "InstanceMethod"
	default:
		return "MemberKind(?)"
	}
}

// ClassMember covers fields and all method forms. Fn points into the Fns
// arena for everything except fields.
type ClassMember struct {
	Kind      MemberKind
	Name      source.StringID
	NameSpan  source.Span
	Span      source.Span
	FieldType source.StringID // field type annotation, NoStringID otherwise
	TypeSpan  source.Span
	Fn        PayloadID // NoPayloadID for fields
}

type Param struct {
	Name source.StringID
	Span source.Span
}

// FnItem is the shared body record for free functions, methods and the
// constructor. UsesThis is set by the parser when the body mentions this.
type FnItem struct {
	Name     source.StringID
	NameSpan source.Span
	Params   []Param
	Body     StmtID
	UsesThis bool
}

type StmtItem struct {
	Stmt StmtID
}

type LetItem struct {
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID
	IsConst  bool
}

// UseItem binds exactly one imported item; a multi-item use declaration
// produces one UseItem per listed name.
type UseItem struct {
	Path      []source.StringID
	PathSpans []source.Span
	Name      source.StringID
	NameSpan  source.Span
	Alias     source.StringID // NoStringID when no alias
	AliasSpan source.Span
}

// LocalName is the name the import is visible under in its file.
func (u *UseItem) LocalName() source.StringID {
	if u.Alias != source.NoStringID {
		return u.Alias
	}
	return u.Name
}

type Items struct {
	headers *Arena[Item]

	modules *Arena[ModuleItem]
	classes *Arena[ClassItem]
	members *Arena[ClassMember]
	fns     *Arena[FnItem]
	lets    *Arena[LetItem]
	uses    *Arena[UseItem]
	stmts   *Arena[StmtItem]
}

func NewItems(capHint uint) *Items {
	return &Items{
		headers: NewArena[Item](capHint),
		modules: NewArena[ModuleItem](0),
		classes: NewArena[ClassItem](0),
		members: NewArena[ClassMember](0),
		fns:     NewArena[FnItem](capHint / 2),
		lets:    NewArena[LetItem](0),
		uses:    NewArena[UseItem](0),
		stmts:   NewArena[StmtItem](0),
	}
}

func (it *Items) alloc(kind ItemKind, span source.Span, payload PayloadID) ItemID {
	return ItemID(it.headers.Allocate(Item{Kind: kind, Span: span, Payload: payload}))
}

func (it *Items) Get(id ItemID) *Item {
	return it.headers.Get(uint32(id))
}

func (it *Items) Len() uint32 { return it.headers.Len() }

func (it *Items) Kind(id ItemID) ItemKind {
	h := it.Get(id)
	if h == nil {
		return ItemInvalid
	}
	return h.Kind
}

func (it *Items) Span(id ItemID) source.Span {
	h := it.Get(id)
	if h == nil {
		return source.Span{}
	}
	return h.Span
}

func (it *Items) NewInvalid(span source.Span) ItemID {
	return it.alloc(ItemInvalid, span, NoPayloadID)
}

func (it *Items) NewModule(span source.Span, name source.StringID, nameSpan source.Span, items []ItemID) ItemID {
	p := PayloadID(it.modules.Allocate(ModuleItem{Name: name, NameSpan: nameSpan, Items: items}))
	return it.alloc(ItemModule, span, p)
}

func (it *Items) NewClass(span source.Span, name source.StringID, nameSpan source.Span, members []MemberID) ItemID {
	p := PayloadID(it.classes.Allocate(ClassItem{Name: name, NameSpan: nameSpan, Members: members}))
	return it.alloc(ItemClass, span, p)
}

// NewFn allocates a function body record without an item header. Methods
// and constructors reach their FnItem only through the owning member.
func (it *Items) NewFn(fn FnItem) PayloadID {
	return PayloadID(it.fns.Allocate(fn))
}

func (it *Items) NewFunction(span source.Span, fn FnItem) ItemID {
	return it.alloc(ItemFunction, span, it.NewFn(fn))
}

func (it *Items) NewMember(m ClassMember) MemberID {
	return MemberID(it.members.Allocate(m))
}

func (it *Items) NewLet(span source.Span, name source.StringID, nameSpan source.Span, value ExprID, isConst bool) ItemID {
	p := PayloadID(it.lets.Allocate(LetItem{Name: name, NameSpan: nameSpan, Value: value, IsConst: isConst}))
	return it.alloc(ItemLet, span, p)
}

func (it *Items) NewUse(span source.Span, u UseItem) ItemID {
	p := PayloadID(it.uses.Allocate(u))
	return it.alloc(ItemUse, span, p)
}

func (it *Items) NewStmt(span source.Span, stmt StmtID) ItemID {
	p := PayloadID(it.stmts.Allocate(StmtItem{Stmt: stmt}))
	return it.alloc(ItemStmt, span, p)
}

func (it *Items) Module(id ItemID) (*ModuleItem, bool) {
	h := it.Get(id)
	if h == nil || h.Kind != ItemModule {
		return nil, false
	}
	return it.modules.Get(uint32(h.Payload)), true
}

func (it *Items) Class(id ItemID) (*ClassItem, bool) {
	h := it.Get(id)
	if h == nil || h.Kind != ItemClass {
		return nil, false
	}
	return it.classes.Get(uint32(h.Payload)), true
}

func (it *Items) Member(id MemberID) *ClassMember {
	return it.members.Get(uint32(id))
}

// Fn resolves a function body record by payload ID.
func (it *Items) Fn(id PayloadID) *FnItem {
	return it.fns.Get(uint32(id))
}

// Function returns the body record of a free function item.
func (it *Items) Function(id ItemID) (*FnItem, bool) {
	h := it.Get(id)
	if h == nil || h.Kind != ItemFunction {
		return nil, false
	}
	return it.fns.Get(uint32(h.Payload)), true
}

func (it *Items) Let(id ItemID) (*LetItem, bool) {
	h := it.Get(id)
	if h == nil || h.Kind != ItemLet {
		return nil, false
	}
	return it.lets.Get(uint32(h.Payload)), true
}

func (it *Items) Use(id ItemID) (*UseItem, bool) {
	h := it.Get(id)
	if h == nil || h.Kind != ItemUse {
		return nil, false
	}
	return it.uses.Get(uint32(h.Payload)), true
}

func (it *Items) Stmt(id ItemID) (*StmtItem, bool) {
	h := it.Get(id)
	if h == nil || h.Kind != ItemStmt {
		return nil, false
	}
	return it.stmts.Get(uint32(h.Payload)), true
}
