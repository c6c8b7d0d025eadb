package parser

import (
	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

// parseUseItem handles `use path::item [as alias][, item [as alias]]*;`.
// The path is shared by every listed item and each item becomes its own
// use record, so later phases never deal with multi-name declarations.
//
// Only the first item ID is returned; extra items are pushed onto the
// file directly.
func (p *Parser) parseUseItem() (ast.ItemID, bool) {
	kw := p.advance() // use

	// собираем сегменты; последний оказывается первым импортируемым item
	var segs []source.StringID
	var segSpans []source.Span

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	segs = append(segs, name)
	segSpans = append(segSpans, nameSpan)

	for p.at(token.ColonColon) {
		p.advance()
		if !p.at(token.Ident) {
			p.err(diag.SynExpectPathSegment, "expected path segment after '::'")
			return ast.NoItemID, false
		}
		seg := p.advance()
		segs = append(segs, p.arenas.Intern(seg.Text))
		segSpans = append(segSpans, seg.Span)
	}

	if len(segs) < 2 {
		p.report(diag.SynExpectItemAfterPath, diag.SevError, nameSpan,
			"use needs a path and an item, like 'use std::io::read_file;'")
		return ast.NoItemID, false
	}

	path := segs[:len(segs)-1]
	pathSpans := segSpans[:len(segSpans)-1]
	itemName := segs[len(segs)-1]
	itemSpan := segSpans[len(segSpans)-1]

	first := ast.UseItem{
		Path:      path,
		PathSpans: pathSpans,
		Name:      itemName,
		NameSpan:  itemSpan,
	}
	if !p.parseUseAlias(&first) {
		return ast.NoItemID, false
	}

	var extra []ast.UseItem
	for p.at(token.Comma) {
		p.advance()
		moreName, moreSpan, ok := p.parseIdent()
		if !ok {
			return ast.NoItemID, false
		}
		u := ast.UseItem{
			Path:      path,
			PathSpans: pathSpans,
			Name:      moreName,
			NameSpan:  moreSpan,
		}
		if !p.parseUseAlias(&u) {
			return ast.NoItemID, false
		}
		extra = append(extra, u)
	}

	semi, semiOK := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after use declaration")
	end := p.lastSpan
	if semiOK {
		end = semi.Span
	}
	span := kw.Span.Cover(end)

	firstID := p.arenas.Items.NewUse(span, first)
	for _, u := range extra {
		p.pending = append(p.pending, p.arenas.Items.NewUse(span, u))
	}
	return firstID, true
}

func (p *Parser) parseUseAlias(u *ast.UseItem) bool {
	if !p.at(token.KwAs) {
		return true
	}
	p.advance()
	if !p.at(token.Ident) {
		p.err(diag.SynExpectIdentAfterAs, "expected identifier after 'as'")
		return false
	}
	alias := p.advance()
	u.Alias = p.arenas.Intern(alias.Text)
	u.AliasSpan = alias.Span
	return true
}
