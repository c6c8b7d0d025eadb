package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetAddAndLookup(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.AddVirtual("a.ql", []byte("let x = 1;"))
	if id1 != 0 {
		t.Errorf("first FileID = %d, want 0", id1)
	}

	id2 := fs.AddVirtual("a.ql", []byte("let x = 2;"))
	if id2 != 1 {
		t.Errorf("second FileID = %d, want 1", id2)
	}

	// path index points at the latest version, old IDs stay readable
	f, ok := fs.GetByPath("a.ql")
	if !ok || f.ID != id2 {
		t.Fatalf("GetByPath returned %v, %v; want latest id %d", f, ok, id2)
	}
	if string(fs.Get(id1).Content) != "let x = 1;" {
		t.Error("old version content lost after re-add")
	}
	if fs.Get(id2).Flags&FileVirtual == 0 {
		t.Error("AddVirtual did not set FileVirtual")
	}
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("pos.ql", []byte("let a = 1;\nlet b = 2;\n"))

	tests := []struct {
		name       string
		span       Span
		start, end LineCol
	}{
		{
			name:  "first line",
			span:  Span{File: id, Start: 0, End: 3},
			start: LineCol{Line: 1, Col: 1},
			end:   LineCol{Line: 1, Col: 4},
		},
		{
			name:  "second line",
			span:  Span{File: id, Start: 11, End: 14},
			start: LineCol{Line: 2, Col: 1},
			end:   LineCol{Line: 2, Col: 4},
		},
		{
			name:  "identifier on second line",
			span:  Span{File: id, Start: 15, End: 16},
			start: LineCol{Line: 2, Col: 5},
			end:   LineCol{Line: 2, Col: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := fs.Resolve(tt.span)
			if start != tt.start || end != tt.end {
				t.Errorf("Resolve() = %v..%v, want %v..%v", start, end, tt.start, tt.end)
			}
		})
	}
}

func TestFileLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lines.ql", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
	}
	for _, tt := range tests {
		if got := f.Line(tt.line); got != tt.want {
			t.Errorf("Line(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestFileSetLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.ql")
	content := []byte{0xEF, 0xBB, 0xBF}
	content = append(content, []byte("let a = 1;\r\nlet b = 2;\r\n")...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if f.Flags&FileHadBOM == 0 {
		t.Error("BOM flag not set")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("CRLF flag not set")
	}
	if string(f.Content) != "let a = 1;\nlet b = 2;\n" {
		t.Errorf("content not normalized: %q", f.Content)
	}
}

func TestFileSetLoadMissing(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "absent.ql")); err == nil {
		t.Error("Load of a missing file did not fail")
	}
}
