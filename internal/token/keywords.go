package token

var keywords = map[string]Kind{
	"let":         KwLet,
	"const":       KwConst,
	"function":    KwFunction,
	"class":       KwClass,
	"static":      KwStatic,
	"constructor": KwConstructor,
	"module":      KwModule,
	"use":         KwUse,
	"as":          KwAs,
	"if":          KwIf,
	"then":        KwThen,
	"else":        KwElse,
	"for":         KwFor,
	"in":          KwIn,
	"this":        KwThis,
	"true":        KwTrue,
	"false":       KwFalse,
	"null":        KwNull,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Matching is case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
