package parser

import (
	"quill/internal/diag"
	"quill/internal/fix"
	"quill/internal/source"
	"quill/internal/token"
)

// advance consumes the next token and remembers its span.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagSpan picks the best span for a diagnostic at the current position.
// At EOF the insertion point after the last real token reads better than
// the zero-length EOF span.
func (p *Parser) diagSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.CollapseToEnd()
	}
	return peek.Span
}

// expect consumes k or reports code and stays put. Missing semicolons
// carry an insertion fix so tooling can repair them mechanically.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagSpan()
	if k == token.Semicolon && p.lastSpan.End > 0 {
		p.reportWithFix(code, diag.SevError, sp, msg,
			fix.InsertText("insert ';'", p.lastSpan, ";"))
	} else {
		p.report(code, diag.SevError, sp, msg)
	}
	return token.Token{Kind: token.Invalid, Span: sp, Text: p.lx.Peek().Text}, false
}

func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.diagSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Enough() {
		return false
	}
	diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg).Emit()
	return true
}

func (p *Parser) reportWithFix(code diag.Code, sev diag.Severity, sp source.Span, msg string, f diag.Fix) bool {
	if p.opts.Reporter == nil {
		return false
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Enough() {
		return false
	}
	diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg).
		WithFix(f.Title, f.Edits...).
		Emit()
	return true
}
