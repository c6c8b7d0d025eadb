package lexer

import (
	"quill/internal/diag"
	"quill/internal/source"
)

type Options struct {
	// Reporter receives lexical diagnostics. May be nil, the lexer
	// keeps scanning either way.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
}

// errLexTerminal reports the two conditions scanning cannot continue past.
func (lx *Lexer) errLexTerminal(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, code, sp, msg).Terminal().Emit()
}
