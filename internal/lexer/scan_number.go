package lexer

import (
	"quill/internal/token"
)

// scanNumber scans digit sequences with an optional single decimal
// point: 0, 123, 1.5. A '.' not followed by a digit stays outside the
// number, so '0..15' lexes as IntLit DotDot IntLit and '1.' as IntLit
// Dot.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	kind := token.IntLit
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump() // '.'
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
