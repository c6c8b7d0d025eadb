package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"quill/internal/ast"
	"quill/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed unit:
// 1) the file span stays within content bounds
// 2) every item span is non-empty and fully contained in the file span
// 3) the file span covers the union of item spans
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.File(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}
	if len(f.Items) == 0 {
		return nil
	}

	contentLen, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return err
	}
	if f.Span.End < f.Span.Start || f.Span.End > contentLen {
		return fmt.Errorf("file span out of bounds: %d..%d (content %d bytes)",
			f.Span.Start, f.Span.End, contentLen)
	}

	union := source.Span{}
	for _, id := range f.Items {
		item := b.Items.Get(id)
		if item == nil {
			return fmt.Errorf("item %d missing", id)
		}
		sp := item.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("item %d has empty span %d..%d", id, sp.Start, sp.End)
		}
		if sp.Start < f.Span.Start || sp.End > f.Span.End {
			return fmt.Errorf("item %d span %d..%d escapes file span %d..%d",
				id, sp.Start, sp.End, f.Span.Start, f.Span.End)
		}
		if union.Empty() {
			union = sp
		} else {
			union = union.Cover(sp)
		}
	}

	if f.Span.Start > union.Start || f.Span.End < union.End {
		return fmt.Errorf("file span %d..%d does not cover item union %d..%d",
			f.Span.Start, f.Span.End, union.Start, union.End)
	}
	return nil
}
