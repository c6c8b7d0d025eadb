package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexNewlineInString          Code = 1005
	LexBadEscape                Code = 1006

	// Syntax
	SynInfo                 Code = 2000
	SynUnexpectedToken      Code = 2001
	SynExpectSemicolon      Code = 2002
	SynUnclosedBrace        Code = 2003
	SynUnclosedParen        Code = 2004
	SynUnclosedBracket      Code = 2005
	SynExpectIdentifier     Code = 2006
	SynExpectExpression     Code = 2007
	SynExpectBlock          Code = 2008
	SynForMissingIn         Code = 2009
	SynExpectPathSegment    Code = 2010
	SynExpectItemAfterPath  Code = 2011
	SynExpectIdentAfterAs   Code = 2012
	SynDuplicateConstructor Code = 2013
	SynInvalidAssignTarget  Code = 2014
	SynExpectMemberName     Code = 2015
	SynUnexpectedTopLevel   Code = 2016
	SynDanglingCommentClose Code = 2017

	// Semantic / resolution
	SemaInfo                 Code = 3000
	SemaDuplicateDeclaration Code = 3001
	SemaShadowedDeclaration  Code = 3002
	SemaUnresolvedName       Code = 3003
	SemaUnresolvedPath       Code = 3004
	SemaStdNamespaceDisabled Code = 3005
	SemaScopeMismatch        Code = 3006
	SemaPreludeReplaced      Code = 3007
	SemaThisOutsideClass     Code = 3008
	SemaDuplicateMember      Code = 3009

	// I/O
	IOLoadFileError Code = 4001

	// Project / manifest
	ProjInfo                 Code = 5000
	ProjManifestInvalid      Code = 5001
	ProjUnknownStdNamespace  Code = 5002
	ProjUnknownCoreNamespace Code = 5003

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	LexNewlineInString:          "Newline in string literal",
	LexBadEscape:                "Bad escape sequence",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSemicolon:          "Expect semicolon",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBracket:          "Unclosed bracket",
	SynExpectIdentifier:         "Expect identifier",
	SynExpectExpression:         "Expect expression",
	SynExpectBlock:              "Expect block",
	SynForMissingIn:             "Missing 'in' in for-in loop",
	SynExpectPathSegment:        "Expect path segment",
	SynExpectItemAfterPath:      "Expect item after path separator",
	SynExpectIdentAfterAs:       "Expect identifier after as",
	SynDuplicateConstructor:     "Duplicate constructor",
	SynInvalidAssignTarget:      "Invalid assignment target",
	SynExpectMemberName:         "Expect class member name",
	SynUnexpectedTopLevel:       "Unexpected top level declaration",
	SynDanglingCommentClose:     "Dangling comment terminator",
	SemaInfo:                    "Semantic information",
	SemaDuplicateDeclaration:    "Duplicate declaration",
	SemaShadowedDeclaration:     "Shadowed declaration",
	SemaUnresolvedName:          "Unresolved name",
	SemaUnresolvedPath:          "Unresolved path",
	SemaStdNamespaceDisabled:    "Std namespace not enabled",
	SemaScopeMismatch:           "Scope stack mismatch",
	SemaPreludeReplaced:         "Prelude binding replaced",
	SemaThisOutsideClass:        "'this' outside class method",
	SemaDuplicateMember:         "Duplicate class member",
	IOLoadFileError:             "I/O load file error",
	ProjInfo:                    "Project information",
	ProjManifestInvalid:         "Invalid project manifest",
	ProjUnknownStdNamespace:     "Unknown std namespace in manifest",
	ProjUnknownCoreNamespace:    "Unknown core namespace in manifest",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
