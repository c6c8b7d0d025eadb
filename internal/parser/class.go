package parser

import (
	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/token"
)

// parseClassItem: `class <name> { member* }`. Members come in any order:
// fields `name: Type;`, at most one constructor, static and instance
// methods. Duplicate member names are left for resolution; the parser
// only rejects a second constructor.
func (p *Parser) parseClassItem() (ast.ItemID, bool) {
	kw := p.advance() // class

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}

	if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{' after class name"); !ok {
		return ast.NoItemID, false
	}

	savedInClass := p.inClass
	p.inClass = true
	defer func() { p.inClass = savedInClass }()

	var members []ast.MemberID
	sawConstructor := false
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		member, ok := p.parseClassMember(&sawConstructor)
		if !ok {
			p.resyncUntil(token.Semicolon, token.RBrace,
				token.KwStatic, token.KwConstructor)
			if p.at(token.Semicolon) {
				p.advance()
			}
			continue
		}
		members = append(members, member)
	}

	rbrace, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close class body")
	if !ok {
		return ast.NoItemID, false
	}

	span := kw.Span.Cover(rbrace.Span)
	return p.arenas.Items.NewClass(span, name, nameSpan, members), true
}

func (p *Parser) parseClassMember(sawConstructor *bool) (ast.MemberID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwConstructor:
		return p.parseConstructor(sawConstructor)
	case token.KwStatic:
		return p.parseMethod(ast.MemberStaticMethod)
	case token.Ident:
		// field `name: Type;` or instance method `name(...) {...}`,
		// decided by the token after the name
		return p.parseFieldOrMethod()
	default:
		p.err(diag.SynExpectMemberName, "expected field, method or constructor")
		return ast.NoMemberID, false
	}
}

func (p *Parser) parseConstructor(sawConstructor *bool) (ast.MemberID, bool) {
	kw := p.advance() // constructor
	name := p.arenas.Intern(kw.Text)

	if *sawConstructor {
		p.report(diag.SynDuplicateConstructor, diag.SevError, kw.Span,
			"class already has a constructor")
	}
	*sawConstructor = true

	fn, bodySpan, ok := p.parseFnRest(name, kw.Span)
	if !ok {
		return ast.NoMemberID, false
	}

	member := ast.ClassMember{
		Kind:     ast.MemberConstructor,
		Name:     name,
		NameSpan: kw.Span,
		Span:     kw.Span.Cover(bodySpan),
		Fn:       p.arenas.Items.NewFn(fn),
	}
	return p.arenas.Items.NewMember(member), true
}

func (p *Parser) parseMethod(kind ast.MemberKind) (ast.MemberID, bool) {
	start := p.lx.Peek().Span
	if kind == ast.MemberStaticMethod {
		p.advance() // static
	}

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoMemberID, false
	}

	fn, bodySpan, ok := p.parseFnRest(name, nameSpan)
	if !ok {
		return ast.NoMemberID, false
	}

	member := ast.ClassMember{
		Kind:     kind,
		Name:     name,
		NameSpan: nameSpan,
		Span:     start.Cover(bodySpan),
		Fn:       p.arenas.Items.NewFn(fn),
	}
	return p.arenas.Items.NewMember(member), true
}

func (p *Parser) parseFieldOrMethod() (ast.MemberID, bool) {
	tok := p.lx.Peek()
	// a second peek would need more lookahead; instead consume the name
	// and branch on what follows
	nameTok := p.advance()
	name := p.arenas.Intern(nameTok.Text)

	switch p.lx.Peek().Kind {
	case token.Colon:
		p.advance()
		typeName, typeSpan, ok := p.parseIdent()
		if !ok {
			return ast.NoMemberID, false
		}
		semi, semiOK := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after field declaration")
		end := typeSpan
		if semiOK {
			end = semi.Span
		}
		member := ast.ClassMember{
			Kind:      ast.MemberField,
			Name:      name,
			NameSpan:  nameTok.Span,
			Span:      nameTok.Span.Cover(end),
			FieldType: typeName,
			TypeSpan:  typeSpan,
		}
		return p.arenas.Items.NewMember(member), semiOK

	case token.LParen:
		fn, bodySpan, ok := p.parseFnRest(name, nameTok.Span)
		if !ok {
			return ast.NoMemberID, false
		}
		member := ast.ClassMember{
			Kind:     ast.MemberInstanceMethod,
			Name:     name,
			NameSpan: nameTok.Span,
			Span:     nameTok.Span.Cover(bodySpan),
			Fn:       p.arenas.Items.NewFn(fn),
		}
		return p.arenas.Items.NewMember(member), true

	default:
		p.report(diag.SynExpectMemberName, diag.SevError, tok.Span,
			"expected ':' for a field or '(' for a method after member name")
		return ast.NoMemberID, false
	}
}
