package fix

import (
	"fmt"
	"sort"

	"quill/internal/diag"
	"quill/internal/source"
)

// Apply returns the file content with the fix's edits applied. Edits may
// arrive in any order; overlapping edits are rejected.
func Apply(content []byte, f diag.Fix) ([]byte, error) {
	return applyEdits(content, f.Edits)
}

// ApplyAll gathers every fix attached to diagnostics for the given file
// and applies them in one pass. Returns the rewritten content and the
// number of fixes applied; fixes whose edits overlap an earlier fix are
// skipped rather than corrupting the output.
func ApplyAll(file *source.File, bag *diag.Bag) ([]byte, int, error) {
	if file == nil {
		return nil, 0, fmt.Errorf("fix: nil file")
	}

	var edits []diag.FixEdit
	applied := 0
	for _, d := range bag.Items() {
		for _, f := range d.Fixes {
			candidate := make([]diag.FixEdit, 0, len(f.Edits))
			ok := true
			for _, e := range f.Edits {
				if e.Span.File != file.ID {
					ok = false
					break
				}
				if overlapsAny(e.Span, edits) {
					ok = false
					break
				}
				candidate = append(candidate, e)
			}
			if !ok || len(candidate) == 0 {
				continue
			}
			edits = append(edits, candidate...)
			applied++
		}
	}

	out, err := applyEdits(file.Content, edits)
	if err != nil {
		return nil, 0, err
	}
	return out, applied, nil
}

func applyEdits(content []byte, edits []diag.FixEdit) ([]byte, error) {
	if len(edits) == 0 {
		return content, nil
	}

	sorted := make([]diag.FixEdit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Span.Start != sorted[j].Span.Start {
			return sorted[i].Span.Start < sorted[j].Span.Start
		}
		return sorted[i].Span.End < sorted[j].Span.End
	})

	for i := range sorted {
		sp := sorted[i].Span
		if sp.End < sp.Start || int(sp.End) > len(content) {
			return nil, fmt.Errorf("fix: edit span %d..%d out of bounds", sp.Start, sp.End)
		}
		if i > 0 && sp.Start < sorted[i-1].Span.End {
			return nil, fmt.Errorf("fix: overlapping edits at offset %d", sp.Start)
		}
	}

	// применяем с конца, чтобы оффсеты ранних правок не плыли
	out := make([]byte, len(content))
	copy(out, content)
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		rebuilt := make([]byte, 0, len(out)+len(e.NewText))
		rebuilt = append(rebuilt, out[:e.Span.Start]...)
		rebuilt = append(rebuilt, e.NewText...)
		rebuilt = append(rebuilt, out[e.Span.End:]...)
		out = rebuilt
	}
	return out, nil
}

func overlapsAny(sp source.Span, edits []diag.FixEdit) bool {
	for _, e := range edits {
		if sp.File != e.Span.File {
			continue
		}
		if sp.Start < e.Span.End && e.Span.Start < sp.End {
			return true
		}
		// две вставки в одну и ту же точку конфликтуют
		if sp.Start == sp.End && e.Span.Start == e.Span.End && sp.Start == e.Span.Start {
			return true
		}
	}
	return false
}
