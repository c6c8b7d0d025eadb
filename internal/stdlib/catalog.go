// Package stdlib declares the signatures of the three standard-library
// tiers. Entries are opaque to the front-end: name, arity and qualified
// path, no implementations.
//
// Tiers: prelude is unqualified and always on; core namespaces are
// qualified (log::info) and on unless disabled; std namespaces are
// qualified and off unless enabled by configuration.
package stdlib

// Entry is one callable signature. Arity -1 means variadic.
type Entry struct {
	Name  string
	Arity int
}

// Namespace groups entries under one qualified path segment.
type Namespace struct {
	Name    string
	Entries []Entry
}

// Prelude returns the unqualified default-on bindings.
func Prelude() []Entry {
	return []Entry{
		{Name: "print", Arity: -1},
		{Name: "println", Arity: -1},
		{Name: "input", Arity: 0},
		{Name: "len", Arity: 1},
		{Name: "str", Arity: 1},
		{Name: "num", Arity: 1},
		{Name: "clock", Arity: 0},
	}
}

// Core returns the qualified default-on namespaces.
func Core() []Namespace {
	return []Namespace{
		{Name: "log", Entries: []Entry{
			{Name: "trace", Arity: -1},
			{Name: "debug", Arity: -1},
			{Name: "info", Arity: -1},
			{Name: "warn", Arity: -1},
			{Name: "error", Arity: -1},
		}},
		{Name: "math", Entries: []Entry{
			{Name: "abs", Arity: 1},
			{Name: "min", Arity: 2},
			{Name: "max", Arity: 2},
			{Name: "floor", Arity: 1},
			{Name: "sqrt", Arity: 1},
			{Name: "pow", Arity: 2},
		}},
		{Name: "strings", Entries: []Entry{
			{Name: "upper", Arity: 1},
			{Name: "lower", Arity: 1},
			{Name: "trim", Arity: 1},
			{Name: "split", Arity: 2},
			{Name: "join", Arity: 2},
			{Name: "contains", Arity: 2},
		}},
	}
}

// Std returns the qualified opt-in namespaces.
func Std() []Namespace {
	return []Namespace{
		{Name: "io", Entries: []Entry{
			{Name: "read_file", Arity: 1},
			{Name: "write_file", Arity: 2},
			{Name: "append_file", Arity: 2},
		}},
		{Name: "time", Entries: []Entry{
			{Name: "now", Arity: 0},
			{Name: "sleep", Arity: 1},
			{Name: "format", Arity: 2},
		}},
		{Name: "env", Entries: []Entry{
			{Name: "get", Arity: 1},
			{Name: "set", Arity: 2},
			{Name: "vars", Arity: 0},
		}},
		{Name: "random", Entries: []Entry{
			{Name: "seed", Arity: 1},
			{Name: "int", Arity: 2},
			{Name: "float", Arity: 0},
		}},
	}
}

// CoreNamespace looks up a core namespace by name.
func CoreNamespace(name string) (Namespace, bool) {
	for _, ns := range Core() {
		if ns.Name == name {
			return ns, true
		}
	}
	return Namespace{}, false
}

// StdNamespace looks up a std namespace by name.
func StdNamespace(name string) (Namespace, bool) {
	for _, ns := range Std() {
		if ns.Name == name {
			return ns, true
		}
	}
	return Namespace{}, false
}
