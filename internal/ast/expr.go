package ast

import (
	"github.com/Aern-do/unnamedc/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprString
	ExprInt
	ExprBool
	ExprUnit
	ExprBlock
	ExprAssign
	ExprBinary
	ExprUnary
	ExprCall
	ExprMethodCall
	ExprIf
	ExprWhile
	ExprArray
	ExprArrayRepeat
	ExprStruct
	ExprField
	ExprIndex
	ExprReturn
)

var exprKindNames = [...]string{
	ExprIdent:       "Ident",
	ExprString:      "String",
	ExprInt:         "Int",
	ExprBool:        "Bool",
	ExprUnit:        "Unit",
	ExprBlock:       "Block",
	ExprAssign:      "Assign",
	ExprBinary:      "Binary",
	ExprUnary:       "Unary",
	ExprCall:        "Call",
	ExprMethodCall:  "MethodCall",
	ExprIf:          "If",
	ExprWhile:       "While",
	ExprArray:       "Array",
	ExprArrayRepeat: "ArrayRepeat",
	ExprStruct:      "Struct",
	ExprField:       "Field",
	ExprIndex:       "Index",
	ExprReturn:      "Return",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "ExprKind(?)"
}

// Expr is the arena record of an expression. Span is fixed at construction.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprIdentData struct {
	Name source.StringID
}

type ExprStringData struct {
	Value source.StringID
}

type ExprIntData struct {
	Value uint64
}

type ExprBoolData struct {
	Value bool
}

type ExprBlockData struct {
	Exprs List[ExprID]
}

// ExprAssignData is `name = value`.
type ExprAssignData struct {
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID
}

type ExprBinaryData struct {
	Op     BinaryOp
	OpSpan source.Span
	Left   ExprID
	Right  ExprID
}

type ExprUnaryData struct {
	Op      UnaryOp
	OpSpan  source.Span
	Operand ExprID
}

type ExprCallData struct {
	Callee   ExprID
	TypeArgs List[TypeID]
	Args     List[ExprID]
}

type ExprMethodCallData struct {
	Receiver   ExprID
	Method     source.StringID
	MethodSpan source.Span
	TypeArgs   List[TypeID]
	Args       List[ExprID]
}

// ExprIfData: Then is always a block, Else is NoExprID, a block or another if.
type ExprIfData struct {
	KwSpan source.Span // `if`
	Cond   ExprID
	Then   ExprID
	Else   ExprID
}

type ExprWhileData struct {
	KwSpan source.Span // `while`
	Cond   ExprID
	Body   ExprID
}

type ExprArrayData struct {
	Values List[ExprID]
}

// ExprArrayRepeatData is `[value; count]`.
type ExprArrayRepeatData struct {
	Value ExprID
	Count ExprID
}

type ExprStructData struct {
	Name     source.StringID
	NameSpan source.Span
	Fields   List[FieldID]
}

type ExprFieldData struct {
	Base       ExprID
	Member     source.StringID
	MemberSpan source.Span
}

type ExprIndexData struct {
	Base  ExprID
	Index ExprID
}

type ExprReturnData struct {
	KwSpan source.Span
	Value  ExprID // NoExprID для голого return
}
