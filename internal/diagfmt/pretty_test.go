package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/diagfmt"
	"quill/internal/lexer"
	"quill/internal/parser"
	"quill/internal/source"
	"quill/internal/token"
)

func fixtureBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	src := "let answer = 42;\nmystery;\n"
	id := fs.AddVirtual("main.ql", []byte(src))
	file := fs.Get(id)

	bag := diag.NewBag(16)
	// "mystery" starts at offset 17, length 7
	bag.Add(diag.New(diag.SevError, diag.SemaUnresolvedName,
		source.Span{File: file.ID, Start: 17, End: 24},
		"cannot resolve 'mystery'").
		WithNote(source.Span{File: file.ID, Start: 4, End: 10}, "did you mean 'answer'?"))
	return bag, fs
}

func TestPrettyShape(t *testing.T) {
	bag, fs := fixtureBag(t)

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{ShowNotes: true})
	out := buf.String()

	if !strings.Contains(out, "main.ql:2:1: error[SEM3003]: cannot resolve 'mystery'") {
		t.Errorf("missing header line:\n%s", out)
	}
	if !strings.Contains(out, "    mystery;") {
		t.Errorf("missing source context:\n%s", out)
	}
	if !strings.Contains(out, "    ^~~~~~~") {
		t.Errorf("underline must cover the span:\n%s", out)
	}
	if !strings.Contains(out, "note: did you mean 'answer'?") {
		t.Errorf("missing note:\n%s", out)
	}
}

func TestPrettyNoColorByDefault(t *testing.T) {
	bag, fs := fixtureBag(t)

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("color disabled must not emit escape sequences")
	}
}

func TestPrettySpanlessDiagnostic(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(4)
	bag.Add(diag.New(diag.SevWarning, diag.ProjUnknownStdNamespace,
		source.Span{}, "quill.toml names unknown std namespace 'sockets'"))

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})
	if !strings.Contains(buf.String(), "quill: warning[PRJ5002]") {
		t.Errorf("spanless diagnostics print bare:\n%s", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs := fixtureBag(t)

	var buf bytes.Buffer
	err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
	})
	if err != nil {
		t.Fatal(err)
	}

	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "SEM3003" || d.Severity != "error" {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 1 {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 {
		t.Error("note must survive serialization")
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(16)
	for range 5 {
		bag.Add(diag.New(diag.SevError, diag.SynUnexpectedToken, source.Span{}, "boom"))
	}

	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{Max: 2}); err != nil {
		t.Fatal(err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 {
		t.Errorf("count = %d, want truncation to 2", out.Count)
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.ql", []byte("// greeting\nlet x = 1;"))
	lx := lexer.New(fs.Get(id), lexer.Options{})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	var buf bytes.Buffer
	if err := diagfmt.FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "let") || !strings.Contains(out, "EOF") {
		t.Errorf("token dump incomplete:\n%s", out)
	}
	if !strings.Contains(out, "LineComment") {
		t.Errorf("leading trivia must be listed:\n%s", out)
	}
}

func TestDumpAST(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.ql", []byte(`
module game {
	function turn(n) {
		for i in 0..n { play(i); }
	}
}
use game::turn as t;
`))
	bag := diag.NewBag(16)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	res := parser.ParseFile(fs, lx, b, parser.Options{Reporter: rep})
	if bag.HasErrors() {
		t.Fatalf("fixture must parse: %v", bag.Items())
	}

	var buf bytes.Buffer
	diagfmt.DumpAST(&buf, b, res.File)
	out := buf.String()

	for _, want := range []string{
		"Module game",
		"Function turn(n)",
		"For i in",
		"Range",
		"Call (1 args)",
		"Use game::turn as t",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}
