package parser

import (
	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/token"
)

// parseModuleItem: `module <name> { item* }`. Nesting is unbounded.
func (p *Parser) parseModuleItem() (ast.ItemID, bool) {
	kw := p.advance() // module

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}

	if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{' after module name"); !ok {
		return ast.NoItemID, false
	}

	var items []ast.ItemID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		itemID, ok := p.parseItem()
		if !ok {
			p.pending = p.pending[:0]
			p.resyncUntil(token.Semicolon, token.RBrace,
				token.KwUse, token.KwModule, token.KwClass, token.KwFunction,
				token.KwLet, token.KwConst)
			if p.at(token.Semicolon) {
				p.advance()
			}
			continue
		}
		items = append(items, itemID)
		items = append(items, p.pending...)
		p.pending = p.pending[:0]
	}

	rbrace, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close module body")
	if !ok {
		return ast.NoItemID, false
	}

	span := kw.Span.Cover(rbrace.Span)
	return p.arenas.Items.NewModule(span, name, nameSpan, items), true
}
