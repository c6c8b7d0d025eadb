package parser

import (
	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr is the precedence-climbing loop. Range (a..b) and
// assignment are folded in as the lowest tiers; assignment additionally
// validates its target.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		tok := p.lx.Peek()
		prec, rightAssoc := binaryPrec(tok.Kind)
		if prec < minPrec {
			break
		}

		opTok := p.advance()
		nextMinPrec := prec + 1
		if rightAssoc {
			nextMinPrec = prec
		}

		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			p.err(diag.SynExpectExpression, "expected expression after '"+opTok.Text+"'")
			return ast.NoExprID, false
		}

		span := p.arenas.Exprs.Span(left).Cover(p.arenas.Exprs.Span(right))
		if opTok.Kind == token.DotDot {
			left = p.arenas.Exprs.NewRange(span, left, right)
			continue
		}

		op := binaryOp(opTok.Kind)
		if op.IsAssignment() && !p.isAssignTarget(left) {
			p.report(diag.SynInvalidAssignTarget, diag.SevError,
				p.arenas.Exprs.Span(left), "cannot assign to this expression")
		}
		left = p.arenas.Exprs.NewBinary(span, op, opTok.Span, left, right)
	}

	return left, true
}

// isAssignTarget: plain names, member accesses and index expressions are
// writable; everything else is not.
func (p *Parser) isAssignTarget(id ast.ExprID) bool {
	switch p.arenas.Exprs.Kind(id) {
	case ast.ExprIdent, ast.ExprMember, ast.ExprIndex:
		return true
	case ast.ExprGroup:
		g, _ := p.arenas.Exprs.Group(id)
		return g != nil && p.isAssignTarget(g.Inner)
	default:
		return false
	}
}

func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefix struct {
		op   ast.ExprUnaryOp
		span source.Span
	}
	var prefixes []prefix

	for {
		op, ok := unaryOp(p.lx.Peek().Kind)
		if !ok {
			break
		}
		tok := p.advance()
		prefixes = append(prefixes, prefix{op: op, span: tok.Span})
	}

	expr, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoExprID, false
	}

	// apply right to left
	for i := len(prefixes) - 1; i >= 0; i-- {
		span := prefixes[i].span.Cover(p.arenas.Exprs.Span(expr))
		expr = p.arenas.Exprs.NewUnary(span, prefixes[i].op, expr)
	}
	return expr, true
}

func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		switch p.lx.Peek().Kind {
		case token.LParen:
			expr, ok = p.parseCallExpr(expr)
		case token.LBracket:
			expr, ok = p.parseIndexExpr(expr)
		case token.Dot:
			expr, ok = p.parseMemberExpr(expr)
		default:
			return expr, true
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
}

func (p *Parser) parseCallExpr(callee ast.ExprID) (ast.ExprID, bool) {
	lparen := p.advance()

	var args []ast.ExprID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}

	rparen, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list")
	if !ok {
		return ast.NoExprID, false
	}
	span := p.arenas.Exprs.Span(callee).Cover(lparen.Span).Cover(rparen.Span)
	return p.arenas.Exprs.NewCall(span, callee, args), true
}

func (p *Parser) parseIndexExpr(target ast.ExprID) (ast.ExprID, bool) {
	p.advance() // [
	index, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	rb, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close index")
	if !ok {
		return ast.NoExprID, false
	}
	span := p.arenas.Exprs.Span(target).Cover(rb.Span)
	return p.arenas.Exprs.NewIndex(span, target, index), true
}

func (p *Parser) parseMemberExpr(target ast.ExprID) (ast.ExprID, bool) {
	p.advance() // .
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoExprID, false
	}
	span := p.arenas.Exprs.Span(target).Cover(nameSpan)
	return p.arenas.Exprs.NewMember(span, target, name, nameSpan), true
}

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()

	switch tok.Kind {
	case token.Ident:
		p.advance()
		if p.at(token.ColonColon) {
			return p.parsePathExpr(tok)
		}
		return p.arenas.Exprs.NewIdent(tok.Span, p.arenas.Intern(tok.Text)), true

	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewLit(tok.Span, ast.LitInt, p.arenas.Intern(tok.Text)), true
	case token.FloatLit:
		p.advance()
		return p.arenas.Exprs.NewLit(tok.Span, ast.LitFloat, p.arenas.Intern(tok.Text)), true
	case token.StringLit:
		p.advance()
		return p.arenas.Exprs.NewLit(tok.Span, ast.LitString, p.arenas.Intern(tok.Text)), true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewLit(tok.Span, ast.LitBool, p.arenas.Intern(tok.Text)), true
	case token.KwNull:
		p.advance()
		return p.arenas.Exprs.NewLit(tok.Span, ast.LitNull, p.arenas.Intern(tok.Text)), true

	case token.KwThis:
		p.advance()
		p.usesThis = true
		if !p.inClass {
			p.report(diag.SemaThisOutsideClass, diag.SevError, tok.Span, "'this' outside of a class body")
		}
		return p.arenas.Exprs.NewThis(tok.Span), true

	case token.LParen:
		return p.parseGroupExpr()
	case token.LBracket:
		return p.parseArrayExpr()

	default:
		p.err(diag.SynExpectExpression, "expected expression, got \""+tok.Text+"\"")
		return ast.NoExprID, false
	}
}

// parsePathExpr continues after the first segment of a qualified name
// like log::info. first has already been consumed.
func (p *Parser) parsePathExpr(first token.Token) (ast.ExprID, bool) {
	segments := []source.StringID{p.arenas.Intern(first.Text)}
	segSpans := []source.Span{first.Span}

	for p.at(token.ColonColon) {
		p.advance()
		if !p.at(token.Ident) {
			p.err(diag.SynExpectPathSegment, "expected path segment after '::'")
			return ast.NoExprID, false
		}
		seg := p.advance()
		segments = append(segments, p.arenas.Intern(seg.Text))
		segSpans = append(segSpans, seg.Span)
	}

	span := first.Span.Cover(segSpans[len(segSpans)-1])
	return p.arenas.Exprs.NewPath(span, segments, segSpans), true
}

func (p *Parser) parseGroupExpr() (ast.ExprID, bool) {
	lparen := p.advance()
	inner, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	rparen, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewGroup(lparen.Span.Cover(rparen.Span), inner), true
}

func (p *Parser) parseArrayExpr() (ast.ExprID, bool) {
	lb := p.advance()

	var elems []ast.ExprID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		elem, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, elem)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}

	rb, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close array literal")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewArray(lb.Span.Cover(rb.Span), elems), true
}
