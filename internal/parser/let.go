package parser

import (
	"quill/internal/ast"
)

// parseLetItem is the top-level form of a let/const binding. The body
// grammar is identical to the statement form; only the item wrapper
// differs so module bodies can hold bindings.
func (p *Parser) parseLetItem() (ast.ItemID, bool) {
	stmtID, ok := p.parseLetStmt()
	if !ok && !stmtID.IsValid() {
		return ast.NoItemID, false
	}
	ls, _ := p.arenas.Stmts.Let(stmtID)
	span := p.arenas.Stmts.Span(stmtID)
	return p.arenas.Items.NewLet(span, ls.Name, ls.NameSpan, ls.Value, ls.IsConst), true
}
