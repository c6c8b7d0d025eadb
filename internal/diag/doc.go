// Package diag defines the diagnostic model shared by all front-end phases.
//
// Diagnostic is the central record: severity, a stable numeric Code,
// a short human message, the primary source.Span, optional Notes with
// secondary spans, optional Fixes with concrete text edits, and a
// Terminal flag for the two lexical conditions the pass cannot scan
// past (unterminated string or block comment at end of input).
//
// Phases emit through the Reporter interface so they stay decoupled
// from storage. BagReporter aggregates into a Bag, which supports
// merging, sorting and deduplication for deterministic output.
// Rendering lives in internal/diagfmt, never here.
package diag
