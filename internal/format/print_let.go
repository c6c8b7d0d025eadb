package format

import (
	"quill/internal/ast"
)

func (p *printer) printLetItem(item *ast.Item, let *ast.LetItem) {
	value := p.builder.Exprs.Get(let.Value)
	if value == nil {
		p.writer.CopySpan(item.Span)
		return
	}

	if let.IsConst {
		p.writer.WriteString("const ")
	} else {
		p.writer.WriteString("let ")
	}
	p.writer.WriteString(p.string(let.Name))
	p.writer.WriteString(" = ")
	p.writer.CopySpan(value.Span)
	_ = p.writer.WriteByte(';')
}
