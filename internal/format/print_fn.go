package format

import (
	"quill/internal/ast"
	"quill/internal/source"
)

func (p *printer) printFnItem(item *ast.Item, fn *ast.FnItem) {
	body := p.builder.Stmts.Get(fn.Body)
	if body == nil {
		p.writer.CopySpan(item.Span)
		return
	}

	p.writer.WriteString("function ")
	p.writer.WriteString(p.string(fn.Name))
	_ = p.writer.WriteByte('(')
	for i, param := range fn.Params {
		if i > 0 {
			p.writer.WriteString(", ")
		}
		p.writer.WriteString(p.string(param.Name))
	}
	_ = p.writer.WriteByte(')')
	p.writer.Space()
	p.writer.CopySpan(body.Span)
	p.writer.CopyRange(int(body.Span.End), int(item.Span.End))
}

func (p *printer) string(id source.StringID) string {
	if id == source.NoStringID {
		return "_"
	}
	return p.builder.Name(id)
}
