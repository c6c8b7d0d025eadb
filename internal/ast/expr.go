package ast

import "quill/internal/source"

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIdent
	ExprLit
	ExprPath
	ExprUnary
	ExprBinary
	ExprRange
	ExprCall
	ExprMember
	ExprIndex
	ExprThis
	ExprArray
	ExprGroup
)

func (k ExprKind) String() string {
	switch k {
	case ExprInvalid:
		return "Invalid"
	case ExprIdent:
		return "Ident"
	case ExprLit:
		return "Lit"
	case ExprPath:
		return "Path"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprRange:
		return "Range"
	case ExprCall:
		return "Call"
	case ExprMember:
		return "Member"
	case ExprIndex:
		return "Index"
	case ExprThis:
		return "This"
	case ExprArray:
		return "Array"
	case ExprGroup:
		return "Group"
	default:
		return "ExprKind(?)"
	}
}

// Expr is the per-node header; kind-specific data lives in payload arenas
// keyed by Payload.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprUnaryOp uint8

const (
	UnaryInvalid ExprUnaryOp = iota
	UnaryNeg                 // -
	UnaryNot                 // !
)

func (op ExprUnaryOp) String() string {
	switch op {
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "!"
	default:
		return "UnaryOp(?)"
	}
}

type ExprBinaryOp uint8

const (
	BinInvalid   ExprBinaryOp = iota
	BinAdd                    // +
	BinSub                    // -
	BinMul                    // *
	BinDiv                    // /
	BinMod                    // %
	BinEq                     // ==
	BinNe                     // !=
	BinLt                     // <
	BinLe                     // <=
	BinGt                     // >
	BinGe                     // >=
	BinAnd                    // &&
	BinOr                     // ||
	BinAssign                 // =
	BinAddAssign              // +=
	BinSubAssign              // -=
	BinMulAssign              // *=
	BinDivAssign              // /=
)

// IsAssignment reports whether op writes to its left operand.
func (op ExprBinaryOp) IsAssignment() bool {
	switch op {
	case BinAssign, BinAddAssign, BinSubAssign, BinMulAssign, BinDivAssign:
		return true
	default:
		return false
	}
}

func (op ExprBinaryOp) String() string {
	switch op {
	case BinAdd:
		return "+"
	case BinSub:
		return "-"
	case BinMul:
		return "*"
	case BinDiv:
		return "/"
	case BinMod:
		return "%"
	case BinEq:
		return "=="
	case BinNe:
		return "!="
	case BinLt:
		return "<"
	case BinLe:
		return "<="
	case BinGt:
		return ">"
	case BinGe:
		return ">="
	case BinAnd:
		return "&&"
	case BinOr:
		return "||"
	case BinAssign:
		return "="
	case BinAddAssign:
		return "+="
	case BinSubAssign:
		return "-="
	case BinMulAssign:
		return "*="
	case BinDivAssign:
		return "/="
	default:
		return "BinaryOp(?)"
	}
}

type ExprLitKind uint8

const (
	LitInt ExprLitKind = iota
	LitFloat
	LitString
	LitBool
	LitNull
)

func (k ExprLitKind) String() string {
	switch k {
	case LitInt:
		return "Int"
	case LitFloat:
		return "Float"
	case LitString:
		return "String"
	case LitBool:
		return "Bool"
	case LitNull:
		return "Null"
	default:
		return "LitKind(?)"
	}
}
