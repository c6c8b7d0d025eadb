package parser

import (
	"slices"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/source"
	"quill/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit is reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser holds the state for one source unit.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span of the last consumed token
	inClass  bool
	usesThis bool         // set while parsing a body when this is mentioned
	pending  []ast.ItemID // extra items produced by one declaration (multi-item use)
}

// ParseFile parses one unit into arenas. The lexer must be freshly
// created over the unit's source.File.
func ParseFile(fs *source.FileSet, lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.AddFile(ast.File{Span: lx.EmptySpan()}),
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseItems()

	var bag *diag.Bag
	switch br := opts.Reporter.(type) {
	case diag.BagReporter:
		bag = br.Bag
	case *diag.BagReporter:
		bag = br.Bag
	}
	return Result{File: p.file, Bag: bag}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseItems is the top-level loop: items until EOF.
func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) {
		itemID, ok := p.parseItem()
		if !ok {
			p.pending = p.pending[:0]
			p.resyncTop()
			continue
		}
		f := p.arenas.File(p.file)
		f.Items = append(f.Items, itemID)
		f.Items = append(f.Items, p.pending...)
		p.pending = p.pending[:0]
	}
	p.arenas.File(p.file).Span = startSpan.Cover(p.lx.Peek().Span)
}

// parseItem dispatches on the first token of a top-level construct.
// Top level also admits plain statements: the program is the implicit
// root module, so loose let/if/for/expression statements are wrapped.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwUse:
		return p.parseUseItem()
	case token.KwModule:
		return p.parseModuleItem()
	case token.KwClass:
		return p.parseClassItem()
	case token.KwFunction:
		return p.parseFunctionItem()
	case token.KwLet, token.KwConst:
		return p.parseLetItem()
	case token.Star:
		// A dangling */ after an already closed block comment lexes as
		// Star Slash. Catch the pair for a pointed message.
		if id, handled := p.checkDanglingCommentClose(); handled {
			return id, false
		}
		return p.parseLooseStmtItem()
	default:
		return p.parseLooseStmtItem()
	}
}

// parseLooseStmtItem admits a plain statement at the top level; the
// program root is the implicit module, so they execute in root scope.
func (p *Parser) parseLooseStmtItem() (ast.ItemID, bool) {
	if !p.atStmtStarter() {
		p.err(diag.SynUnexpectedTopLevel, "unexpected top-level construct")
		return ast.NoItemID, false
	}
	stmtID, ok := p.parseStmt()
	if !ok {
		return ast.NoItemID, false
	}
	span := p.arenas.Stmts.Span(stmtID)
	return p.arenas.Items.NewStmt(span, stmtID), true
}

func (p *Parser) checkDanglingCommentClose() (ast.ItemID, bool) {
	star := p.lx.Peek()
	if star.Kind != token.Star {
		return ast.NoItemID, false
	}
	p.advance()
	next := p.lx.Peek()
	if next.Kind == token.Slash && next.Span.Start == star.Span.End && len(next.Leading) == 0 {
		p.advance()
		sp := star.Span.Cover(next.Span)
		p.report(diag.SynDanglingCommentClose, diag.SevError, sp, "unmatched block comment terminator")
		return ast.NoItemID, true
	}
	// lone *: not our case, still a bad statement start
	p.report(diag.SynUnexpectedToken, diag.SevError, star.Span, "unexpected '*'")
	return ast.NoItemID, true
}

// resyncTop skips to a semicolon, a closing brace or the next item starter.
func (p *Parser) resyncTop() {
	stop := []token.Kind{
		token.Semicolon, token.RBrace,
		token.KwUse, token.KwModule, token.KwClass, token.KwFunction,
		token.KwLet, token.KwConst, token.KwIf, token.KwFor,
	}
	p.resyncUntil(stop...)
	if p.atAny(token.Semicolon, token.RBrace) {
		p.advance()
	}
}

func (p *Parser) resyncUntil(kinds ...token.Kind) {
	for !p.at(token.EOF) && !p.atAny(kinds...) {
		p.advance()
	}
}

func (p *Parser) atStmtStarter() bool {
	k := p.lx.Peek().Kind
	switch k {
	case token.KwLet, token.KwConst, token.KwIf, token.KwFor, token.LBrace:
		return true
	default:
		return isExprStarter(k)
	}
}

func isExprStarter(k token.Kind) bool {
	switch k {
	case token.Ident, token.IntLit, token.FloatLit, token.StringLit,
		token.KwTrue, token.KwFalse, token.KwNull, token.KwThis,
		token.LParen, token.LBracket, token.Minus, token.Bang:
		return true
	default:
		return false
	}
}

// parseIdent expects and interns an identifier.
func (p *Parser) parseIdent() (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.arenas.Intern(tok.Text), tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.lx.Peek().Text+"\"")
	return source.NoStringID, p.diagSpan(), false
}
