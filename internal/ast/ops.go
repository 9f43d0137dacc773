package ast

import "github.com/Aern-do/unnamedc/internal/token"

// BinaryOp enumerates infix operators.
type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinEq
	BinNeq
	BinLt
	BinLtEq
	BinGt
	BinGtEq
	BinAnd
	BinOr
	BinBitOr
	BinBitAnd
	BinBitXor
	BinBitShr
	BinBitShl
)

var binaryOpSpelling = [...]string{
	BinAdd:    "+",
	BinSub:    "-",
	BinMul:    "*",
	BinDiv:    "/",
	BinEq:     "==",
	BinNeq:    "!=",
	BinLt:     "<",
	BinLtEq:   "<=",
	BinGt:     ">",
	BinGtEq:   ">=",
	BinAnd:    "&&",
	BinOr:     "||",
	BinBitOr:  "|",
	BinBitAnd: "&",
	BinBitXor: "^",
	BinBitShr: ">>",
	BinBitShl: "<<",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpSpelling) {
		return binaryOpSpelling[op]
	}
	return "BinaryOp(?)"
}

var binaryOpByToken = map[token.Kind]BinaryOp{
	token.Add:    BinAdd,
	token.Sub:    BinSub,
	token.Mul:    BinMul,
	token.Div:    BinDiv,
	token.Eq:     BinEq,
	token.Neq:    BinNeq,
	token.Lt:     BinLt,
	token.LtEq:   BinLtEq,
	token.Gt:     BinGt,
	token.GtEq:   BinGtEq,
	token.And:    BinAnd,
	token.Or:     BinOr,
	token.BitOr:  BinBitOr,
	token.BitAnd: BinBitAnd,
	token.BitXor: BinBitXor,
	token.BitShr: BinBitShr,
	token.BitShl: BinBitShl,
}

// BinaryOpFromToken maps an operator token to its infix operator.
func BinaryOpFromToken(k token.Kind) (BinaryOp, bool) {
	op, ok := binaryOpByToken[k]
	return op, ok
}

// UnaryOp enumerates prefix operators.
type UnaryOp uint8

const (
	UnPlus UnaryOp = iota
	UnNeg
)

func (op UnaryOp) String() string {
	switch op {
	case UnPlus:
		return "+"
	case UnNeg:
		return "-"
	default:
		return "UnaryOp(?)"
	}
}

// UnaryOpFromToken maps `+` and `-` to prefix operators.
func UnaryOpFromToken(k token.Kind) (UnaryOp, bool) {
	switch k {
	case token.Add:
		return UnPlus, true
	case token.Sub:
		return UnNeg, true
	default:
		return 0, false
	}
}
