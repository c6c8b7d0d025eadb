package format

import (
	"quill/internal/ast"
	"quill/internal/source"
)

// printUseGroup prints one canonical use declaration for every binding that
// shares the same source span. The path is written once before the first
// name; the rest follow comma separated, matching the declaration syntax.
func (p *printer) printUseGroup(group []ast.ItemID) {
	first, ok := p.builder.Items.Use(group[0])
	if !ok || first == nil {
		return
	}

	p.writer.WriteString("use ")
	for i, seg := range first.Path {
		if i > 0 {
			p.writer.WriteString("::")
		}
		p.writer.WriteString(p.string(seg))
	}
	p.writer.WriteString("::")

	for i, id := range group {
		u, ok := p.builder.Items.Use(id)
		if !ok || u == nil {
			continue
		}
		if i > 0 {
			p.writer.WriteString(", ")
		}
		p.writer.WriteString(p.string(u.Name))
		if u.Alias != source.NoStringID {
			p.writer.WriteString(" as ")
			p.writer.WriteString(p.string(u.Alias))
		}
	}
	_ = p.writer.WriteByte(';')
}
