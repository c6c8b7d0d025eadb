// Package ast stores the syntax tree in flat arenas. Every node is a small
// header (kind, span, payload index); kind-specific data lives in payload
// arenas so node IDs stay stable uint32 handles instead of pointers.
//
// IDs are 1-based; the zero value of every ID type is the invalid sentinel.
package ast
