package parser

import (
	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

// parseFunctionItem: `function <name>(params) { ... }`.
func (p *Parser) parseFunctionItem() (ast.ItemID, bool) {
	kw := p.advance() // function

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}

	fn, bodySpan, ok := p.parseFnRest(name, nameSpan)
	if !ok {
		return ast.NoItemID, false
	}

	return p.arenas.Items.NewFunction(kw.Span.Cover(bodySpan), fn), true
}

// parseFnRest parses the parameter list and body shared by free
// functions, methods and constructors. It tracks whether the body
// mentions this; dispatch on that is the evaluator's problem.
func (p *Parser) parseFnRest(name source.StringID, nameSpan source.Span) (ast.FnItem, source.Span, bool) {
	params, ok := p.parseParams()
	if !ok {
		return ast.FnItem{}, source.Span{}, false
	}

	savedUsesThis := p.usesThis
	p.usesThis = false
	body, ok := p.parseBlock()
	usesThis := p.usesThis
	p.usesThis = savedUsesThis
	if !ok {
		return ast.FnItem{}, source.Span{}, false
	}

	fn := ast.FnItem{
		Name:     name,
		NameSpan: nameSpan,
		Params:   params,
		Body:     body,
		UsesThis: usesThis,
	}
	return fn, p.arenas.Stmts.Span(body), true
}

func (p *Parser) parseParams() ([]ast.Param, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' to open parameter list"); !ok {
		return nil, false
	}

	var params []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		name, nameSpan, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		params = append(params, ast.Param{Name: name, Span: nameSpan})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}

	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list"); !ok {
		return nil, false
	}
	return params, true
}
