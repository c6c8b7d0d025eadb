package format

import (
	"errors"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/parser"
	"quill/internal/source"
)

type printer struct {
	builder *ast.Builder
	file    *ast.File
	writer  *Writer
}

// FormatFile rewrites use, function and let item headers into canonical form.
// Everything between items and every statement body is copied verbatim,
// so comments and user layout inside bodies survive untouched.
func FormatFile(sf *source.File, b *ast.Builder, fid ast.FileID) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	if b == nil {
		return nil, errors.New("format: nil builder")
	}
	file := b.File(fid)
	if file == nil {
		return nil, errors.New("format: missing ast file")
	}

	pr := printer{
		builder: b,
		file:    file,
		writer:  NewWriter(sf),
	}
	pr.printFile()
	return pr.writer.Bytes(), nil
}

func (p *printer) printFile() {
	contentLen := len(p.writer.sf.Content)
	prev := 0
	items := p.file.Items
	for i := 0; i < len(items); i++ {
		item := p.builder.Items.Get(items[i])
		if item == nil {
			continue
		}
		start := clampToContent(int(item.Span.Start), contentLen)
		if prev < start {
			p.writer.CopyRange(prev, start)
		}

		// Один use с несколькими именами даёт несколько item-ов с общим
		// span; печатаем всю группу одной декларацией.
		if item.Kind == ast.ItemUse {
			group := []ast.ItemID{items[i]}
			for i+1 < len(items) {
				next := p.builder.Items.Get(items[i+1])
				if next == nil || next.Kind != ast.ItemUse || next.Span != item.Span {
					break
				}
				i++
				group = append(group, items[i])
			}
			p.printUseGroup(group)
		} else {
			p.printItem(items[i], item)
		}

		end := max(clampToContent(int(item.Span.End), contentLen), start)
		prev = end
	}
	if prev < contentLen {
		p.writer.CopyRange(prev, contentLen)
	}
}

func (p *printer) printItem(id ast.ItemID, item *ast.Item) {
	switch item.Kind {
	case ast.ItemFunction:
		if fn, ok := p.builder.Items.Function(id); ok && fn != nil {
			p.printFnItem(item, fn)
			return
		}
	case ast.ItemLet:
		if let, ok := p.builder.Items.Let(id); ok && let != nil {
			p.printLetItem(item, let)
			return
		}
	}
	// module, class и loose statements копируем как есть
	p.writer.CopySpan(item.Span)
}

// CheckRoundTrip formats the file and re-parses the result, ensuring that
// the top-level item kinds stay identical to the original.
func CheckRoundTrip(sf *source.File, maxDiag int) (ok bool, msg string) {
	origBag := diag.NewBag(maxDiag)
	origBuilder, origFileID := parseOnce(sf, origBag)
	if origBuilder.File(origFileID) == nil {
		return false, "fmt-check: initial parse failed"
	}
	if origBag.HasErrors() {
		return false, "fmt-check: initial parse has errors"
	}

	formatted, err := FormatFile(sf, origBuilder, origFileID)
	if err != nil {
		return false, "fmt-check: formatter failed: " + err.Error()
	}

	fs2 := source.NewFileSet()
	fid := fs2.AddVirtual(sf.Path, formatted)
	rebuilt := fs2.Get(fid)
	newBag := diag.NewBag(maxDiag)
	newBuilder, newFileID := parseOnce(rebuilt, newBag)
	if newBuilder.File(newFileID) == nil || newBag.HasErrors() {
		return false, "fmt-check: reparse failed"
	}

	if !sameTopItemKinds(origBuilder, origFileID, newBuilder, newFileID) {
		return false, "fmt-check: top-level item kinds differ after round-trip"
	}
	return true, "fmt-check: OK"
}

func parseOnce(sf *source.File, bag *diag.Bag) (*ast.Builder, ast.FileID) {
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(sf, lexer.Options{Reporter: rep})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(source.NewFileSet(), lx, builder, parser.Options{
		Reporter:  rep,
		MaxErrors: 64,
	})
	return builder, res.File
}

func sameTopItemKinds(b1 *ast.Builder, f1 ast.FileID, b2 *ast.Builder, f2 ast.FileID) bool {
	file1 := b1.File(f1)
	file2 := b2.File(f2)
	if file1 == nil || file2 == nil {
		return false
	}
	if len(file1.Items) != len(file2.Items) {
		return false
	}
	for i := range file1.Items {
		if b1.Items.Kind(file1.Items[i]) != b2.Items.Kind(file2.Items[i]) {
			return false
		}
	}
	return true
}

func clampToContent(pos, length int) int {
	if pos < 0 {
		return 0
	}
	if pos > length {
		return length
	}
	return pos
}
