package parser

import (
	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/token"
)

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwLet, token.KwConst:
		return p.parseLetStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.LBrace:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

// parseBlock consumes { stmt* } with statement-level recovery: a bad
// statement resyncs to ';' or '}' and parsing continues inside the block.
func (p *Parser) parseBlock() (ast.StmtID, bool) {
	lbrace, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{'")
	if !ok {
		return ast.NoStmtID, false
	}

	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncUntil(token.Semicolon, token.RBrace)
			if p.at(token.Semicolon) {
				p.advance()
			}
			continue
		}
		stmts = append(stmts, stmt)
	}

	rbrace, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block")
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewBlock(lbrace.Span.Cover(rbrace.Span), stmts), true
}

// parseLetStmt handles both let and const bindings.
func (p *Parser) parseLetStmt() (ast.StmtID, bool) {
	kw := p.advance() // let | const
	isConst := kw.Kind == token.KwConst

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}

	value := ast.NoExprID
	if p.at(token.Assign) {
		p.advance()
		value, ok = p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
	}

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after binding")
	end := semi.Span
	if !ok {
		end = p.lastSpan
	}
	return p.arenas.Stmts.NewLet(kw.Span.Cover(end), name, nameSpan, value, isConst), ok
}

// parseIfStmt: if <cond> then <block> [else <block|if>]. The then keyword
// separates condition from branch; both branches are blocks, except that
// else may chain directly into another if.
func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	kw := p.advance() // if

	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}

	if _, ok := p.expect(token.KwThen, diag.SynUnexpectedToken, "expected 'then' after condition"); !ok {
		return ast.NoStmtID, false
	}

	then, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}

	els := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			els, ok = p.parseIfStmt()
		} else {
			els, ok = p.parseBlock()
		}
		if !ok {
			return ast.NoStmtID, false
		}
	}

	span := kw.Span.Cover(p.arenas.Stmts.Span(then))
	if els.IsValid() {
		span = span.Cover(p.arenas.Stmts.Span(els))
	}
	return p.arenas.Stmts.NewIf(span, cond, then, els), true
}

// parseForStmt: for <var> in <iterable> <block>. The iterable is any
// expression; ranges are ordinary a..b expressions.
func (p *Parser) parseForStmt() (ast.StmtID, bool) {
	kw := p.advance() // for

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}

	if _, ok := p.expect(token.KwIn, diag.SynForMissingIn, "expected 'in' after loop variable"); !ok {
		return ast.NoStmtID, false
	}

	iterable, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}

	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}

	span := kw.Span.Cover(p.arenas.Stmts.Span(body))
	return p.arenas.Stmts.NewFor(span, name, nameSpan, iterable, body), true
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression")
	span := p.arenas.Exprs.Span(expr)
	if ok {
		span = span.Cover(semi.Span)
	}
	return p.arenas.Stmts.NewExpr(span, expr), ok
}
