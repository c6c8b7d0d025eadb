package lexer

import (
	"quill/internal/diag"
	"quill/internal/token"
)

// scanString scans a literal opened by quote, which is '"' or '\''.
// The same delimiter must close it: a literal opened with ' is not
// closed by " and vice versa, so the other quote may appear inside
// unescaped. Literals do not span lines.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if b == quote {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		}

		if b == '\\' {
			escMark := lx.cursor.Mark()
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			switch esc := lx.cursor.Peek(); esc {
			case '\\', '"', '\'', 'n', 't', 'r', '0':
				lx.cursor.Bump()
			case '\n':
				// handled by the newline check on the next iteration
			default:
				lx.cursor.Bump()
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escMark),
					"unknown escape sequence '\\"+string(esc)+"'")
			}
			continue
		}

		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexNewlineInString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}

		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLexTerminal(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
