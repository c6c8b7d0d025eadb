package ast

import "quill/internal/source"

// File is the root node of a parsed unit: a flat list of top-level items
// in source order.
type File struct {
	Span  source.Span
	Items []ItemID
}
