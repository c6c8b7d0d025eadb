package lexer_test

import (
	"strings"
	"testing"

	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/source"
	"quill/internal/token"
)

// testReporter collects every diagnostic the lexer emits.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(d diag.Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

func (r *testReporter) ErrorCount() int {
	count := 0
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			count++
		}
	}
	return count
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ql", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

// expectTokens checks the token kind sequence, EOF excluded.
func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != len(expected) {
		kinds := make([]string, len(tokens))
		for i, tok := range tokens {
			kinds[i] = tok.Kind.String()
		}
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %s\nerrors: %d",
			len(expected), len(tokens), input, strings.Join(kinds, " "), reporter.ErrorCount())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
}

func TestKeywordsAndIdents(t *testing.T) {
	expectTokens(t, "let total = counts;", []token.Kind{
		token.KwLet, token.Ident, token.Assign, token.Ident, token.Semicolon,
	})
	expectTokens(t, "class Game { constructor() {} }", []token.Kind{
		token.KwClass, token.Ident, token.LBrace,
		token.KwConstructor, token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.RBrace,
	})
	// keywords are case-sensitive
	expectTokens(t, "Let LET lets", []token.Kind{token.Ident, token.Ident, token.Ident})
}

func TestOperators(t *testing.T) {
	expectTokens(t, "a += b .. c :: d != e <= f && g", []token.Kind{
		token.Ident, token.PlusAssign, token.Ident, token.DotDot, token.Ident,
		token.ColonColon, token.Ident, token.BangEq, token.Ident, token.LtEq,
		token.Ident, token.AndAnd, token.Ident,
	})
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kinds []token.Kind
		texts []string
	}{
		{"0", []token.Kind{token.IntLit}, []string{"0"}},
		{"123", []token.Kind{token.IntLit}, []string{"123"}},
		{"1.5", []token.Kind{token.FloatLit}, []string{"1.5"}},
		{"0..15", []token.Kind{token.IntLit, token.DotDot, token.IntLit}, []string{"0", "..", "15"}},
		{"1.", []token.Kind{token.IntLit, token.Dot}, []string{"1", "."}},
	}
	for _, tt := range tests {
		lx, _ := makeTestLexer(tt.input)
		toks := collectAllTokens(lx)
		toks = toks[:len(toks)-1]
		if len(toks) != len(tt.kinds) {
			t.Fatalf("%q: got %d tokens, want %d", tt.input, len(toks), len(tt.kinds))
		}
		for i := range toks {
			if toks[i].Kind != tt.kinds[i] || toks[i].Text != tt.texts[i] {
				t.Errorf("%q token %d: got %v %q, want %v %q",
					tt.input, i, toks[i].Kind, toks[i].Text, tt.kinds[i], tt.texts[i])
			}
		}
	}
}

func TestEitherQuoteStrings(t *testing.T) {
	lx, reporter := makeTestLexer(`"it's"`)
	tok := lx.Next()
	if tok.Kind != token.StringLit || tok.Text != `"it's"` {
		t.Errorf("double-quoted: got %v %q", tok.Kind, tok.Text)
	}
	if reporter.ErrorCount() != 0 {
		t.Errorf("unexpected errors: %d", reporter.ErrorCount())
	}

	lx, reporter = makeTestLexer(`'she said "hi"'`)
	tok = lx.Next()
	if tok.Kind != token.StringLit || tok.Text != `'she said "hi"'` {
		t.Errorf("single-quoted: got %v %q", tok.Kind, tok.Text)
	}
	if reporter.ErrorCount() != 0 {
		t.Errorf("unexpected errors: %d", reporter.ErrorCount())
	}
}

func TestStringEscapes(t *testing.T) {
	lx, reporter := makeTestLexer(`"a\"b\n\t"`)
	tok := lx.Next()
	if tok.Kind != token.StringLit {
		t.Errorf("escaped string: got %v", tok.Kind)
	}
	if reporter.ErrorCount() != 0 {
		t.Errorf("unexpected errors: %d", reporter.ErrorCount())
	}

	lx, reporter = makeTestLexer(`"a\qb"`)
	tok = lx.Next()
	if tok.Kind != token.StringLit {
		t.Errorf("bad escape should not kill the literal: got %v", tok.Kind)
	}
	if reporter.ErrorCount() != 1 {
		t.Errorf("bad escape errors = %d, want 1", reporter.ErrorCount())
	}
	if reporter.diagnostics[0].Code != diag.LexBadEscape {
		t.Errorf("code = %v, want LexBadEscape", reporter.diagnostics[0].Code)
	}
}

func TestUnterminatedStringAtNewline(t *testing.T) {
	lx, reporter := makeTestLexer("\"unterminated\nlet x = 1;")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Errorf("got %v, want Invalid", tok.Kind)
	}
	if reporter.ErrorCount() != 1 {
		t.Fatalf("errors = %d, want exactly 1", reporter.ErrorCount())
	}
	if reporter.diagnostics[0].Code != diag.LexNewlineInString {
		t.Errorf("code = %v, want LexNewlineInString", reporter.diagnostics[0].Code)
	}
	if reporter.diagnostics[0].Terminal {
		t.Error("newline-in-string must not be terminal")
	}

	// scanning continues on the next line
	if tok = lx.Next(); tok.Kind != token.KwLet {
		t.Errorf("after recovery got %v, want KwLet", tok.Kind)
	}
}

func TestUnterminatedStringAtEOF(t *testing.T) {
	lx, reporter := makeTestLexer(`"runs off the end`)
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Errorf("got %v, want Invalid", tok.Kind)
	}
	if reporter.ErrorCount() != 1 {
		t.Fatalf("errors = %d, want exactly 1", reporter.ErrorCount())
	}
	if !reporter.diagnostics[0].Terminal {
		t.Error("unterminated string at EOF must be terminal")
	}
}

func TestMismatchedQuotesDoNotClose(t *testing.T) {
	// a literal opened with ' is not closed by "
	lx, reporter := makeTestLexer(`'not closed by " quote`)
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Errorf("got %v, want Invalid", tok.Kind)
	}
	if reporter.ErrorCount() != 1 {
		t.Errorf("errors = %d, want 1", reporter.ErrorCount())
	}
}

func TestNestedBlockComment(t *testing.T) {
	input := "/* a /* b */ c */ let"
	lx, reporter := makeTestLexer(input)
	tok := lx.Next()
	if tok.Kind != token.KwLet {
		t.Fatalf("got %v, want KwLet", tok.Kind)
	}
	if reporter.ErrorCount() != 0 {
		t.Errorf("errors = %d, want 0", reporter.ErrorCount())
	}

	// the whole nested comment is one trivia entry
	var block *token.Trivia
	for i := range tok.Leading {
		if tok.Leading[i].Kind == token.TriviaBlockComment {
			if block != nil {
				t.Fatal("more than one block comment trivia")
			}
			block = &tok.Leading[i]
		}
	}
	if block == nil {
		t.Fatal("no block comment trivia")
	}
	if block.Text != "/* a /* b */ c */" {
		t.Errorf("block comment text = %q", block.Text)
	}
}

func TestDeeplyNestedBlockComment(t *testing.T) {
	depth := 64
	input := strings.Repeat("/* ", depth) + "x" + strings.Repeat(" */", depth) + " let"
	lx, reporter := makeTestLexer(input)
	if tok := lx.Next(); tok.Kind != token.KwLet {
		t.Errorf("got %v, want KwLet", tok.Kind)
	}
	if reporter.ErrorCount() != 0 {
		t.Errorf("errors = %d, want 0", reporter.ErrorCount())
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, reporter := makeTestLexer("let /* a /* b */ c")
	if tok := lx.Next(); tok.Kind != token.KwLet {
		t.Fatalf("got %v, want KwLet", tok.Kind)
	}
	tok := lx.Next()
	if tok.Kind != token.EOF {
		t.Errorf("got %v, want EOF", tok.Kind)
	}
	if reporter.ErrorCount() != 1 {
		t.Fatalf("errors = %d, want exactly 1", reporter.ErrorCount())
	}
	d := reporter.diagnostics[0]
	if d.Code != diag.LexUnterminatedBlockComment {
		t.Errorf("code = %v", d.Code)
	}
	if !d.Terminal {
		t.Error("unterminated block comment must be terminal")
	}
	// span points at the outermost opener
	if d.Primary.Start != 4 || d.Primary.End != 6 {
		t.Errorf("opener span = %d..%d, want 4..6", d.Primary.Start, d.Primary.End)
	}
}

func TestImbalancedCommentClose(t *testing.T) {
	// the first */ closes the comment, the dangling one becomes tokens
	expectTokens(t, "/* a */ */", []token.Kind{token.Star, token.Slash})
}

func TestLineComment(t *testing.T) {
	lx, reporter := makeTestLexer("// note\nlet x")
	tok := lx.Next()
	if tok.Kind != token.KwLet {
		t.Fatalf("got %v", tok.Kind)
	}
	if reporter.ErrorCount() != 0 {
		t.Errorf("errors = %d", reporter.ErrorCount())
	}
	found := false
	for _, tr := range tok.Leading {
		if tr.Kind == token.TriviaLineComment && tr.Text == "// note" {
			found = true
		}
	}
	if !found {
		t.Error("line comment trivia missing")
	}
}

func TestUnknownCharRecovery(t *testing.T) {
	lx, reporter := makeTestLexer("let # x")
	kinds := []token.Kind{}
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{token.KwLet, token.Invalid, token.Ident}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
	if reporter.ErrorCount() != 1 {
		t.Errorf("errors = %d, want 1", reporter.ErrorCount())
	}
}

func TestSpans(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("span.ql", []byte("let x = 10;"))
	lx := lexer.New(fs.Get(fileID), lexer.Options{})

	tok := lx.Next() // let
	if tok.Span.Start != 0 || tok.Span.End != 3 {
		t.Errorf("let span = %v", tok.Span)
	}
	tok = lx.Next() // x
	start, _ := fs.Resolve(tok.Span)
	if start.Line != 1 || start.Col != 5 {
		t.Errorf("x position = %v", start)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	p := lx.Peek()
	n := lx.Next()
	if p.Kind != n.Kind || p.Text != n.Text {
		t.Errorf("Peek %v %q != Next %v %q", p.Kind, p.Text, n.Kind, n.Text)
	}
	if lx.Next().Text != "b" {
		t.Error("stream advanced by Peek")
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("")
	for i := 0; i < 3; i++ {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("Next #%d = %v, want EOF", i, tok.Kind)
		}
	}
}
