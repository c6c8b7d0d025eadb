package ast

import "quill/internal/source"

// Hints sizes the arenas up front for large builds. Zero values are fine.
type Hints struct {
	Items uint
	Stmts uint
	Exprs uint
}

// Builder owns every arena of a single build and the string interner
// shared with the lexer. One Builder may hold many parsed files.
type Builder struct {
	Files   *Arena[File]
	Items   *Items
	Stmts   *Stmts
	Exprs   *Exprs
	Strings *source.Interner
}

func NewBuilder(h Hints, strings *source.Interner) *Builder {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Files:   NewArena[File](1),
		Items:   NewItems(h.Items),
		Stmts:   NewStmts(h.Stmts),
		Exprs:   NewExprs(h.Exprs),
		Strings: strings,
	}
}

func (b *Builder) AddFile(f File) FileID {
	return FileID(b.Files.Allocate(f))
}

func (b *Builder) File(id FileID) *File {
	return b.Files.Get(uint32(id))
}

// Intern is a shortcut used all over the parser.
func (b *Builder) Intern(s string) source.StringID {
	return b.Strings.Intern(s)
}

// Name resolves an interned name back to its text.
func (b *Builder) Name(id source.StringID) string {
	return b.Strings.MustLookup(id)
}
