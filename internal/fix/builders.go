package fix

import (
	"quill/internal/diag"
	"quill/internal/source"
)

// InsertText creates a fix inserting text at a zero-width span.
func InsertText(title string, at source.Span, text string) diag.Fix {
	pos := source.Span{File: at.File, Start: at.End, End: at.End}
	return diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{Span: pos, NewText: text}},
	}
}

// DeleteSpan removes the text covered by the span.
func DeleteSpan(title string, span source.Span) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{Span: span, NewText: ""}},
	}
}

// ReplaceSpan swaps the text covered by the span for newText.
func ReplaceSpan(title string, span source.Span, newText string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{Span: span, NewText: newText}},
	}
}

// WrapWith surrounds the span with prefix and suffix insertions.
func WrapWith(title string, span source.Span, prefix, suffix string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{
			{Span: source.Span{File: span.File, Start: span.Start, End: span.Start}, NewText: prefix},
			{Span: source.Span{File: span.File, Start: span.End, End: span.End}, NewText: suffix},
		},
	}
}
