package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/stdlib"
)

// Manifest is a loaded quill.toml. The [stdlib] table controls which
// library tiers the resolver exposes; everything in it is optional.
type Manifest struct {
	Path string
	Root string

	Package PackageConfig `toml:"package"`
	Stdlib  StdlibConfig  `toml:"stdlib"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type StdlibConfig struct {
	// Std lists opt-in std namespaces, e.g. ["io", "time"].
	Std []string `toml:"std"`
	// DisableCore turns off default-on core namespaces.
	DisableCore []string `toml:"disable-core"`
	// PreludeModule overrides the module name whose declarations replace
	// the prelude builtins. Empty means "prelude".
	PreludeModule string `toml:"prelude-module"`
}

// Load decodes and validates one manifest file.
func Load(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(m.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	m.Path = path
	m.Root = filepath.Dir(path)
	return &m, nil
}

// LoadFromDir walks up from startDir and loads the nearest manifest.
// ok is false when no quill.toml exists anywhere above startDir; that is
// not an error, the caller falls back to defaults.
func LoadFromDir(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// Validate checks the [stdlib] table against the library catalog and
// reports unknown namespace names. Unknown names are dropped from the
// returned manifest view so a typo cannot silently enable nothing.
func (m *Manifest) Validate(reporter diag.Reporter) {
	kept := m.Stdlib.Std[:0]
	for _, name := range m.Stdlib.Std {
		if _, ok := stdlib.StdNamespace(name); !ok {
			reportUnknownNamespace(reporter, diag.ProjUnknownStdNamespace, "std", name, stdNamespaceNames())
			continue
		}
		kept = append(kept, name)
	}
	m.Stdlib.Std = kept

	kept = m.Stdlib.DisableCore[:0]
	for _, name := range m.Stdlib.DisableCore {
		if _, ok := stdlib.CoreNamespace(name); !ok {
			reportUnknownNamespace(reporter, diag.ProjUnknownCoreNamespace, "core", name, coreNamespaceNames())
			continue
		}
		kept = append(kept, name)
	}
	m.Stdlib.DisableCore = kept
}

func reportUnknownNamespace(reporter diag.Reporter, code diag.Code, tier, name string, known []string) {
	if reporter == nil {
		return
	}
	// manifest diagnostics have no source span; formatters print them bare
	diag.ReportWarning(reporter, code, source.Span{},
		fmt.Sprintf("quill.toml names unknown %s namespace '%s'", tier, name)).
		WithNote(source.Span{}, fmt.Sprintf("known %s namespaces: %s", tier, strings.Join(known, ", "))).
		Emit()
}

func stdNamespaceNames() []string {
	var out []string
	for _, ns := range stdlib.Std() {
		out = append(out, ns.Name)
	}
	return out
}

func coreNamespaceNames() []string {
	var out []string
	for _, ns := range stdlib.Core() {
		out = append(out, ns.Name)
	}
	return out
}
