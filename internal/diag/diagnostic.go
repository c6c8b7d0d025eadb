package diag

import (
	"quill/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type FixEdit struct {
	Span    source.Span
	NewText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is one finding of a front-end pass. Terminal marks the
// lexical conditions the scanner cannot continue past (unterminated
// string or block comment at end of input); everything else is
// recoverable and the pass goes on.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
	Terminal bool
}
