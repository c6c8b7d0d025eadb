package parser

import (
	"quill/internal/ast"
	"quill/internal/token"
)

// Binary operator tiers, higher binds tighter. Assignment sits at the
// bottom and is right-associative; range binds just above the logical
// tier so `0..n-1` parses as a range over the whole arithmetic operand.
const (
	precAssignment     = 1 // = += -= *= /=
	precRange          = 2 // ..
	precLogicalOr      = 3 // ||
	precLogicalAnd     = 4 // &&
	precEquality       = 5 // == !=
	precComparison     = 6 // < <= > >=
	precAdditive       = 7 // + -
	precMultiplicative = 8 // * / %
)

// binaryPrec returns (precedence, rightAssociative) or (-1, false) when
// kind is not a binary operator.
func binaryPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign:
		return precAssignment, true
	case token.DotDot:
		return precRange, false
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false
	case token.EqEq, token.BangEq:
		return precEquality, false
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	default:
		return -1, false
	}
}

func binaryOp(kind token.Kind) ast.ExprBinaryOp {
	switch kind {
	case token.Plus:
		return ast.BinAdd
	case token.Minus:
		return ast.BinSub
	case token.Star:
		return ast.BinMul
	case token.Slash:
		return ast.BinDiv
	case token.Percent:
		return ast.BinMod
	case token.EqEq:
		return ast.BinEq
	case token.BangEq:
		return ast.BinNe
	case token.Lt:
		return ast.BinLt
	case token.LtEq:
		return ast.BinLe
	case token.Gt:
		return ast.BinGt
	case token.GtEq:
		return ast.BinGe
	case token.AndAnd:
		return ast.BinAnd
	case token.OrOr:
		return ast.BinOr
	case token.Assign:
		return ast.BinAssign
	case token.PlusAssign:
		return ast.BinAddAssign
	case token.MinusAssign:
		return ast.BinSubAssign
	case token.StarAssign:
		return ast.BinMulAssign
	case token.SlashAssign:
		return ast.BinDivAssign
	default:
		return ast.BinInvalid
	}
}

func unaryOp(kind token.Kind) (ast.ExprUnaryOp, bool) {
	switch kind {
	case token.Minus:
		return ast.UnaryNeg, true
	case token.Bang:
		return ast.UnaryNot, true
	default:
		return ast.UnaryInvalid, false
	}
}
