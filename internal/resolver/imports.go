package resolver

import (
	"quill/internal/ast"
	"quill/internal/source"
	"quill/internal/symbols"
)

// bindUses walks the unit's items and declares one import binding in the
// file scope per use record. Bindings beat prelude automatically: the
// file scope is inside the prelude ring, and lookup is innermost-out.
func (r *Resolver) bindUses(stack *symbols.Stack, fileID ast.FileID, items []ast.ItemID) {
	for _, itemID := range items {
		switch r.builder.Items.Kind(itemID) {
		case ast.ItemUse:
			r.bindUse(stack, fileID, itemID)
		case ast.ItemModule:
			if mod, ok := r.builder.Items.Module(itemID); ok {
				r.bindUses(stack, fileID, mod.Items)
			}
		}
	}
}

func (r *Resolver) bindUse(stack *symbols.Stack, fileID ast.FileID, itemID ast.ItemID) {
	use, ok := r.builder.Items.Use(itemID)
	if !ok {
		return
	}

	path := make([]source.StringID, 0, len(use.Path)+1)
	path = append(append(path, use.Path...), use.Name)
	spans := make([]source.Span, 0, len(use.PathSpans)+1)
	spans = append(append(spans, use.PathSpans...), use.NameSpan)

	target, resolved := r.walkPath(stack, path, spans)
	if !resolved {
		return
	}

	sym, declared := stack.Declare(symbols.Symbol{
		Name:   use.LocalName(),
		Kind:   symbols.SymbolImport,
		Span:   use.NameSpan,
		Flags:  symbols.SymbolFlagImported,
		Target: target,
		Decl:   symbols.SymbolDecl{ASTFile: fileID, Item: itemID},
	})
	if declared {
		r.itemSymbol[itemID] = sym
	}
}
