package ast

import (
	"github.com/Aern-do/unnamedc/internal/source"
)

// Exprs owns every expression node plus one payload arena per variant.
type Exprs struct {
	Arena        *Arena[ExprID, Expr]
	Idents       *Arena[PayloadID, ExprIdentData]
	Strings      *Arena[PayloadID, ExprStringData]
	Ints         *Arena[PayloadID, ExprIntData]
	Bools        *Arena[PayloadID, ExprBoolData]
	Blocks       *Arena[PayloadID, ExprBlockData]
	Assigns      *Arena[PayloadID, ExprAssignData]
	Binaries     *Arena[PayloadID, ExprBinaryData]
	Unaries      *Arena[PayloadID, ExprUnaryData]
	Calls        *Arena[PayloadID, ExprCallData]
	MethodCalls  *Arena[PayloadID, ExprMethodCallData]
	Ifs          *Arena[PayloadID, ExprIfData]
	Whiles       *Arena[PayloadID, ExprWhileData]
	Arrays       *Arena[PayloadID, ExprArrayData]
	ArrayRepeats *Arena[PayloadID, ExprArrayRepeatData]
	Structs      *Arena[PayloadID, ExprStructData]
	Fields       *Arena[PayloadID, ExprFieldData]
	Indices      *Arena[PayloadID, ExprIndexData]
	Returns      *Arena[PayloadID, ExprReturnData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	// литералы и идентификаторы встречаются чаще всего
	return &Exprs{
		Arena:        NewArena[ExprID, Expr](capHint),
		Idents:       NewArena[PayloadID, ExprIdentData](capHint / 2),
		Strings:      NewArena[PayloadID, ExprStringData](capHint / 8),
		Ints:         NewArena[PayloadID, ExprIntData](capHint / 4),
		Bools:        NewArena[PayloadID, ExprBoolData](capHint / 16),
		Blocks:       NewArena[PayloadID, ExprBlockData](capHint / 8),
		Assigns:      NewArena[PayloadID, ExprAssignData](capHint / 16),
		Binaries:     NewArena[PayloadID, ExprBinaryData](capHint / 4),
		Unaries:      NewArena[PayloadID, ExprUnaryData](capHint / 16),
		Calls:        NewArena[PayloadID, ExprCallData](capHint / 8),
		MethodCalls:  NewArena[PayloadID, ExprMethodCallData](capHint / 16),
		Ifs:          NewArena[PayloadID, ExprIfData](capHint / 16),
		Whiles:       NewArena[PayloadID, ExprWhileData](capHint / 32),
		Arrays:       NewArena[PayloadID, ExprArrayData](capHint / 32),
		ArrayRepeats: NewArena[PayloadID, ExprArrayRepeatData](capHint / 64),
		Structs:      NewArena[PayloadID, ExprStructData](capHint / 32),
		Fields:       NewArena[PayloadID, ExprFieldData](capHint / 8),
		Indices:      NewArena[PayloadID, ExprIndexData](capHint / 32),
		Returns:      NewArena[PayloadID, ExprReturnData](capHint / 32),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	})
}

// Get returns the node behind id; NoExprID yields nil.
func (e *Exprs) Get(id ExprID) *Expr {
	if !id.IsValid() {
		return nil
	}
	return e.Arena.Get(id)
}

// Span is the precomputed span of id.
func (e *Exprs) Span(id ExprID) source.Span {
	return e.Arena.Get(id).Span
}

// Kind reports the variant of id.
func (e *Exprs) Kind(id ExprID) (ExprKind, bool) {
	expr := e.Get(id)
	if expr == nil {
		return 0, false
	}
	return expr.Kind, true
}

// List returns the handles of an expression list.
func (e *Exprs) List(l List[ExprID]) []ExprID {
	return e.Arena.Items(l)
}

func payloadOf[T any](e *Exprs, id ExprID, kind ExprKind, arena *Arena[PayloadID, T]) (*T, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind || !expr.Payload.IsValid() {
		return nil, false
	}
	return arena.Get(expr.Payload), true
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	return payloadOf(e, id, ExprIdent, e.Idents)
}

func (e *Exprs) Str(id ExprID) (*ExprStringData, bool) {
	return payloadOf(e, id, ExprString, e.Strings)
}

func (e *Exprs) Int(id ExprID) (*ExprIntData, bool) {
	return payloadOf(e, id, ExprInt, e.Ints)
}

func (e *Exprs) Bool(id ExprID) (*ExprBoolData, bool) {
	return payloadOf(e, id, ExprBool, e.Bools)
}

func (e *Exprs) Block(id ExprID) (*ExprBlockData, bool) {
	return payloadOf(e, id, ExprBlock, e.Blocks)
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	return payloadOf(e, id, ExprAssign, e.Assigns)
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	return payloadOf(e, id, ExprBinary, e.Binaries)
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	return payloadOf(e, id, ExprUnary, e.Unaries)
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	return payloadOf(e, id, ExprCall, e.Calls)
}

func (e *Exprs) MethodCall(id ExprID) (*ExprMethodCallData, bool) {
	return payloadOf(e, id, ExprMethodCall, e.MethodCalls)
}

func (e *Exprs) If(id ExprID) (*ExprIfData, bool) {
	return payloadOf(e, id, ExprIf, e.Ifs)
}

func (e *Exprs) While(id ExprID) (*ExprWhileData, bool) {
	return payloadOf(e, id, ExprWhile, e.Whiles)
}

func (e *Exprs) Array(id ExprID) (*ExprArrayData, bool) {
	return payloadOf(e, id, ExprArray, e.Arrays)
}

func (e *Exprs) ArrayRepeat(id ExprID) (*ExprArrayRepeatData, bool) {
	return payloadOf(e, id, ExprArrayRepeat, e.ArrayRepeats)
}

func (e *Exprs) Struct(id ExprID) (*ExprStructData, bool) {
	return payloadOf(e, id, ExprStruct, e.Structs)
}

func (e *Exprs) Field(id ExprID) (*ExprFieldData, bool) {
	return payloadOf(e, id, ExprField, e.Fields)
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	return payloadOf(e, id, ExprIndex, e.Indices)
}

func (e *Exprs) Return(id ExprID) (*ExprReturnData, bool) {
	return payloadOf(e, id, ExprReturn, e.Returns)
}
