package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		kind  Kind
		ok    bool
	}{
		{"let", KwLet, true},
		{"const", KwConst, true},
		{"function", KwFunction, true},
		{"class", KwClass, true},
		{"static", KwStatic, true},
		{"constructor", KwConstructor, true},
		{"module", KwModule, true},
		{"use", KwUse, true},
		{"as", KwAs, true},
		{"if", KwIf, true},
		{"then", KwThen, true},
		{"else", KwElse, true},
		{"for", KwFor, true},
		{"in", KwIn, true},
		{"this", KwThis, true},
		{"true", KwTrue, true},
		{"false", KwFalse, true},
		{"null", KwNull, true},
		{"Let", 0, false}, // case-sensitive
		{"letx", 0, false},
		{"print", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		k, ok := LookupKeyword(tt.ident)
		if ok != tt.ok || (ok && k != tt.kind) {
			t.Errorf("LookupKeyword(%q) = %v, %v; want %v, %v", tt.ident, k, ok, tt.kind, tt.ok)
		}
	}
}

func TestTokenClassification(t *testing.T) {
	if !(Token{Kind: StringLit}).IsLiteral() {
		t.Error("StringLit not a literal")
	}
	if !(Token{Kind: KwNull}).IsLiteral() {
		t.Error("null not a literal")
	}
	if (Token{Kind: Ident}).IsLiteral() {
		t.Error("Ident classified as literal")
	}
	if !(Token{Kind: DotDot}).IsPunctOrOp() {
		t.Error(".. not an operator")
	}
	if !(Token{Kind: KwConstructor}).IsKeyword() {
		t.Error("constructor not a keyword")
	}
	if (Token{Kind: EOF}).IsKeyword() || (Token{Kind: EOF}).IsPunctOrOp() {
		t.Error("EOF misclassified")
	}
}

func TestKindString(t *testing.T) {
	if ColonColon.String() != "::" {
		t.Errorf("ColonColon.String() = %q", ColonColon.String())
	}
	if Ident.String() != "Ident" {
		t.Errorf("Ident.String() = %q", Ident.String())
	}
	if Kind(250).String() != "Kind(?)" {
		t.Errorf("unknown kind String() = %q", Kind(250).String())
	}
}
