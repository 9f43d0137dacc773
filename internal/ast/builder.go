package ast

import (
	"fmt"

	"github.com/Aern-do/unnamedc/internal/source"
)

// Hints are initial arena capacities; zero picks a default.
type Hints struct {
	Exprs  uint
	Types  uint
	Fields uint
}

// Builder owns all arenas of one compilation unit. Every constructor
// computes the node span once from its children and its own tokens, so
// span queries never walk the tree.
type Builder struct {
	Exprs   *Exprs
	Types   *Types
	Fields  *Fields
	Strings *source.Interner
}

// NewBuilder creates a builder. A nil interner gets a private one; pass a
// shared interner to make StringIDs comparable across units.
func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Exprs:   NewExprs(hints.Exprs),
		Types:   NewTypes(hints.Types),
		Fields:  NewFields(hints.Fields),
		Strings: strings,
	}
}

func (b *Builder) ExprSpan(id ExprID) source.Span {
	return b.Exprs.Span(id)
}

func (b *Builder) TypeSpan(id TypeID) source.Span {
	return b.Types.Span(id)
}

func (b *Builder) FieldSpan(id FieldID) source.Span {
	return b.Fields.Span(id)
}

// Intern is a shortcut for the builder's interner.
func (b *Builder) Intern(s string) source.StringID {
	return b.Strings.Intern(s)
}

func (b *Builder) mustExpr(id ExprID, role string) {
	if !id.IsValid() {
		panic(fmt.Sprintf("ast: missing %s expression", role))
	}
}

func (b *Builder) mustKind(id ExprID, role string, kinds ...ExprKind) {
	b.mustExpr(id, role)
	got := b.Exprs.Arena.Get(id).Kind
	for _, k := range kinds {
		if got == k {
			return
		}
	}
	panic(fmt.Sprintf("ast: %s must be %v, got %v", role, kinds, got))
}

func (b *Builder) coverExprs(sp source.Span, ids []ExprID) source.Span {
	for _, id := range ids {
		sp = sp.Cover(b.ExprSpan(id))
	}
	return sp
}

func (b *Builder) coverTypes(sp source.Span, ids []TypeID) source.Span {
	for _, id := range ids {
		sp = sp.Cover(b.TypeSpan(id))
	}
	return sp
}

// Leaves

func (b *Builder) Ident(name source.StringID, sp source.Span) ExprID {
	payload := b.Exprs.Idents.Allocate(ExprIdentData{Name: name})
	return b.Exprs.new(ExprIdent, sp, payload)
}

func (b *Builder) Str(value source.StringID, sp source.Span) ExprID {
	payload := b.Exprs.Strings.Allocate(ExprStringData{Value: value})
	return b.Exprs.new(ExprString, sp, payload)
}

func (b *Builder) Int(value uint64, sp source.Span) ExprID {
	payload := b.Exprs.Ints.Allocate(ExprIntData{Value: value})
	return b.Exprs.new(ExprInt, sp, payload)
}

func (b *Builder) Bool(value bool, sp source.Span) ExprID {
	payload := b.Exprs.Bools.Allocate(ExprBoolData{Value: value})
	return b.Exprs.new(ExprBool, sp, payload)
}

// Unit is `()`; sp covers both parentheses.
func (b *Builder) Unit(sp source.Span) ExprID {
	return b.Exprs.new(ExprUnit, sp, NoPayloadID)
}

// Composite expressions

// Block is `{ exprs }`; delims spans the braces.
func (b *Builder) Block(exprs []ExprID, delims source.Span) ExprID {
	payload := b.Exprs.Blocks.Allocate(ExprBlockData{
		Exprs: b.Exprs.Arena.NewList(exprs...),
	})
	return b.Exprs.new(ExprBlock, b.coverExprs(delims, exprs), payload)
}

func (b *Builder) Assign(name source.StringID, nameSpan source.Span, value ExprID) ExprID {
	b.mustExpr(value, "assignment value")
	payload := b.Exprs.Assigns.Allocate(ExprAssignData{
		Name:     name,
		NameSpan: nameSpan,
		Value:    value,
	})
	return b.Exprs.new(ExprAssign, nameSpan.Cover(b.ExprSpan(value)), payload)
}

func (b *Builder) Binary(left ExprID, op BinaryOp, opSpan source.Span, right ExprID) ExprID {
	b.mustExpr(left, "left operand")
	b.mustExpr(right, "right operand")
	payload := b.Exprs.Binaries.Allocate(ExprBinaryData{
		Op:     op,
		OpSpan: opSpan,
		Left:   left,
		Right:  right,
	})
	sp := b.ExprSpan(left).Cover(opSpan).Cover(b.ExprSpan(right))
	return b.Exprs.new(ExprBinary, sp, payload)
}

func (b *Builder) Unary(op UnaryOp, opSpan source.Span, operand ExprID) ExprID {
	b.mustExpr(operand, "operand")
	payload := b.Exprs.Unaries.Allocate(ExprUnaryData{
		Op:      op,
		OpSpan:  opSpan,
		Operand: operand,
	})
	return b.Exprs.new(ExprUnary, opSpan.Cover(b.ExprSpan(operand)), payload)
}

// Call is `callee::<typeArgs>(args)`; delims spans the parentheses.
func (b *Builder) Call(callee ExprID, typeArgs []TypeID, args []ExprID, delims source.Span) ExprID {
	b.mustExpr(callee, "callee")
	payload := b.Exprs.Calls.Allocate(ExprCallData{
		Callee:   callee,
		TypeArgs: b.Types.Arena.NewList(typeArgs...),
		Args:     b.Exprs.Arena.NewList(args...),
	})
	sp := b.ExprSpan(callee).Cover(delims)
	sp = b.coverTypes(sp, typeArgs)
	sp = b.coverExprs(sp, args)
	return b.Exprs.new(ExprCall, sp, payload)
}

// MethodCall is `receiver.method::<typeArgs>(args)`.
func (b *Builder) MethodCall(receiver ExprID, method source.StringID, methodSpan source.Span, typeArgs []TypeID, args []ExprID, delims source.Span) ExprID {
	b.mustExpr(receiver, "receiver")
	payload := b.Exprs.MethodCalls.Allocate(ExprMethodCallData{
		Receiver:   receiver,
		Method:     method,
		MethodSpan: methodSpan,
		TypeArgs:   b.Types.Arena.NewList(typeArgs...),
		Args:       b.Exprs.Arena.NewList(args...),
	})
	sp := b.ExprSpan(receiver).Cover(methodSpan).Cover(delims)
	sp = b.coverTypes(sp, typeArgs)
	sp = b.coverExprs(sp, args)
	return b.Exprs.new(ExprMethodCall, sp, payload)
}

// If builds `if cond then else els`. then must be a block; els is
// NoExprID, a block, or another if.
// If spans from the `if` keyword to the end of the last branch; els is
// NoExprID, a block or a nested if for `else if`.
func (b *Builder) If(kwSpan source.Span, cond, then, els ExprID) ExprID {
	b.mustExpr(cond, "if condition")
	b.mustKind(then, "if body", ExprBlock)
	sp := kwSpan.Cover(b.ExprSpan(cond)).Cover(b.ExprSpan(then))
	if els.IsValid() {
		b.mustKind(els, "else branch", ExprBlock, ExprIf)
		sp = sp.Cover(b.ExprSpan(els))
	}
	payload := b.Exprs.Ifs.Allocate(ExprIfData{KwSpan: kwSpan, Cond: cond, Then: then, Else: els})
	return b.Exprs.new(ExprIf, sp, payload)
}

func (b *Builder) While(kwSpan source.Span, cond, body ExprID) ExprID {
	b.mustExpr(cond, "while condition")
	b.mustKind(body, "while body", ExprBlock)
	payload := b.Exprs.Whiles.Allocate(ExprWhileData{KwSpan: kwSpan, Cond: cond, Body: body})
	sp := kwSpan.Cover(b.ExprSpan(cond)).Cover(b.ExprSpan(body))
	return b.Exprs.new(ExprWhile, sp, payload)
}

// Array is `[values]`; delims spans the brackets.
func (b *Builder) Array(values []ExprID, delims source.Span) ExprID {
	payload := b.Exprs.Arrays.Allocate(ExprArrayData{
		Values: b.Exprs.Arena.NewList(values...),
	})
	return b.Exprs.new(ExprArray, b.coverExprs(delims, values), payload)
}

// ArrayRepeat is `[value; count]`.
func (b *Builder) ArrayRepeat(value, count ExprID, delims source.Span) ExprID {
	b.mustExpr(value, "repeated value")
	b.mustExpr(count, "repeat count")
	payload := b.Exprs.ArrayRepeats.Allocate(ExprArrayRepeatData{Value: value, Count: count})
	sp := delims.Cover(b.ExprSpan(value)).Cover(b.ExprSpan(count))
	return b.Exprs.new(ExprArrayRepeat, sp, payload)
}

// StructField allocates one `name: value` entry for Struct.
func (b *Builder) StructField(name source.StringID, nameSpan source.Span, value ExprID) FieldID {
	b.mustExpr(value, "field value")
	return b.Fields.Arena.Allocate(Field{
		Name:     name,
		NameSpan: nameSpan,
		Value:    value,
		Span:     nameSpan.Cover(b.ExprSpan(value)),
	})
}

// Struct is `Name { fields }`; delims spans the braces.
func (b *Builder) Struct(name source.StringID, nameSpan source.Span, fields []FieldID, delims source.Span) ExprID {
	payload := b.Exprs.Structs.Allocate(ExprStructData{
		Name:     name,
		NameSpan: nameSpan,
		Fields:   b.Fields.Arena.NewList(fields...),
	})
	sp := nameSpan.Cover(delims)
	for _, f := range fields {
		sp = sp.Cover(b.FieldSpan(f))
	}
	return b.Exprs.new(ExprStruct, sp, payload)
}

// Field is member access `base.member`.
func (b *Builder) Field(base ExprID, member source.StringID, memberSpan source.Span) ExprID {
	b.mustExpr(base, "field base")
	payload := b.Exprs.Fields.Allocate(ExprFieldData{
		Base:       base,
		Member:     member,
		MemberSpan: memberSpan,
	})
	return b.Exprs.new(ExprField, b.ExprSpan(base).Cover(memberSpan), payload)
}

// Index is `base[index]`; delims spans the brackets.
func (b *Builder) Index(base, index ExprID, delims source.Span) ExprID {
	b.mustExpr(base, "indexed value")
	b.mustExpr(index, "index")
	payload := b.Exprs.Indices.Allocate(ExprIndexData{Base: base, Index: index})
	sp := b.ExprSpan(base).Cover(b.ExprSpan(index)).Cover(delims)
	return b.Exprs.new(ExprIndex, sp, payload)
}

// Return is `return` with an optional value.
func (b *Builder) Return(kwSpan source.Span, value ExprID) ExprID {
	sp := kwSpan
	if value.IsValid() {
		sp = sp.Cover(b.ExprSpan(value))
	}
	payload := b.Exprs.Returns.Allocate(ExprReturnData{KwSpan: kwSpan, Value: value})
	return b.Exprs.new(ExprReturn, sp, payload)
}

// Types

// NamedType is a bare type name without arguments.
func (b *Builder) NamedType(name source.StringID, nameSpan source.Span) TypeID {
	return b.Types.Arena.Allocate(Type{
		Kind:     TypeNamed,
		Span:     nameSpan,
		Name:     name,
		NameSpan: nameSpan,
	})
}

// GenericType is `Name<args>`; delims spans the angle brackets.
func (b *Builder) GenericType(name source.StringID, nameSpan source.Span, args []TypeID, delims source.Span) TypeID {
	return b.Types.Arena.Allocate(Type{
		Kind:     TypeNamed,
		Span:     b.coverTypes(nameSpan.Cover(delims), args),
		Name:     name,
		NameSpan: nameSpan,
		Args:     b.Types.Arena.NewList(args...),
	})
}

func (b *Builder) UnitType(sp source.Span) TypeID {
	return b.Types.Arena.Allocate(Type{Kind: TypeUnit, Span: sp})
}
