// Package resolver binds every name reference in a parsed program to a
// declaration, or records a diagnostic for it. It owns the module tree:
// program modules merged across units plus the fixed stdlib roots
// (prelude, core, std).
package resolver

import (
	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/symbols"
)

// Config carries the host-supplied stdlib surface. Zero value: every
// core namespace on, no std namespaces, prelude module named "prelude".
type Config struct {
	EnabledStd    []string
	DisabledCore  []string
	PreludeModule string
}

func (c Config) preludeModule() string {
	if c.PreludeModule == "" {
		return "prelude"
	}
	return c.PreludeModule
}

// Result is the outcome of one resolution pass. Bindings maps each
// resolved reference expression to its declaration symbol; unresolved
// references are absent from the map and present in the diagnostics.
type Result struct {
	Table    *symbols.Table
	Bindings map[ast.ExprID]symbols.SymbolID
}

// Resolver state for one pass over the merged module tree.
type Resolver struct {
	builder  *ast.Builder
	table    *symbols.Table
	reporter diag.Reporter
	cfg      Config

	// module symbol -> scope holding its members
	moduleScope map[symbols.SymbolID]symbols.ScopeID
	classScope  map[symbols.SymbolID]symbols.ScopeID
	// item -> symbol from the declaration pass, reused by the walk
	itemSymbol map[ast.ItemID]symbols.SymbolID

	coreRoot symbols.ScopeID
	stdRoot  symbols.ScopeID

	disabledCore map[string]bool
	enabledStd   map[string]bool

	bindings map[ast.ExprID]symbols.SymbolID
	// innermost class symbol while walking a class body
	currentClass symbols.SymbolID
}

// Resolve runs declaration merging and reference binding over files.
// The builder must already contain every parsed unit: resolution needs
// the complete tree, so callers finish all parsing first.
func Resolve(builder *ast.Builder, files []ast.FileID, table *symbols.Table, cfg Config, reporter diag.Reporter) *Result {
	if table == nil {
		table = symbols.NewTable(symbols.Hints{}, builder.Strings)
	}
	r := &Resolver{
		builder:      builder,
		table:        table,
		reporter:     reporter,
		cfg:          cfg,
		moduleScope:  make(map[symbols.SymbolID]symbols.ScopeID),
		classScope:   make(map[symbols.SymbolID]symbols.ScopeID),
		itemSymbol:   make(map[ast.ItemID]symbols.SymbolID),
		disabledCore: toSet(cfg.DisabledCore),
		enabledStd:   toSet(cfg.EnabledStd),
		bindings:     make(map[ast.ExprID]symbols.SymbolID),
	}

	r.installStdlibRoots()

	// pass 1: merge every unit's top-level declarations into the tree
	for _, fileID := range files {
		r.declareFile(fileID)
	}
	r.applyPreludeReplacement()

	// pass 2: bind use imports and every reference, file by file
	for _, fileID := range files {
		r.resolveFile(fileID)
	}

	return &Result{Table: table, Bindings: r.bindings}
}

func toSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
