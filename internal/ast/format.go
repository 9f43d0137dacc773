package ast

import (
	"strconv"
	"strings"
)

// Sexpr renders an expression as an s-expression, mainly for tests and
// debug dumps. NoExprID renders as "_".
func (b *Builder) Sexpr(id ExprID) string {
	var sb strings.Builder
	b.writeExpr(&sb, id)
	return sb.String()
}

// TypeString renders type syntax the way it is written in source.
func (b *Builder) TypeString(id TypeID) string {
	var sb strings.Builder
	b.writeType(&sb, id)
	return sb.String()
}

func (b *Builder) writeExpr(sb *strings.Builder, id ExprID) {
	expr := b.Exprs.Get(id)
	if expr == nil {
		sb.WriteString("_")
		return
	}
	e := b.Exprs
	switch expr.Kind {
	case ExprIdent:
		d, _ := e.Ident(id)
		sb.WriteString(b.Strings.MustLookup(d.Name))
	case ExprString:
		d, _ := e.Str(id)
		sb.WriteString(strconv.Quote(b.Strings.MustLookup(d.Value)))
	case ExprInt:
		d, _ := e.Int(id)
		sb.WriteString(strconv.FormatUint(d.Value, 10))
	case ExprBool:
		d, _ := e.Bool(id)
		sb.WriteString(strconv.FormatBool(d.Value))
	case ExprUnit:
		sb.WriteString("()")
	case ExprBlock:
		d, _ := e.Block(id)
		sb.WriteString("(block")
		b.writeExprList(sb, d.Exprs)
		sb.WriteByte(')')
	case ExprAssign:
		d, _ := e.Assign(id)
		sb.WriteString("(= ")
		sb.WriteString(b.Strings.MustLookup(d.Name))
		sb.WriteByte(' ')
		b.writeExpr(sb, d.Value)
		sb.WriteByte(')')
	case ExprBinary:
		d, _ := e.Binary(id)
		sb.WriteByte('(')
		sb.WriteString(d.Op.String())
		sb.WriteByte(' ')
		b.writeExpr(sb, d.Left)
		sb.WriteByte(' ')
		b.writeExpr(sb, d.Right)
		sb.WriteByte(')')
	case ExprUnary:
		d, _ := e.Unary(id)
		sb.WriteByte('(')
		sb.WriteString(d.Op.String())
		sb.WriteByte(' ')
		b.writeExpr(sb, d.Operand)
		sb.WriteByte(')')
	case ExprCall:
		d, _ := e.Call(id)
		sb.WriteString("(call ")
		b.writeExpr(sb, d.Callee)
		b.writeTypeArgs(sb, d.TypeArgs)
		b.writeExprList(sb, d.Args)
		sb.WriteByte(')')
	case ExprMethodCall:
		d, _ := e.MethodCall(id)
		sb.WriteString("(method ")
		b.writeExpr(sb, d.Receiver)
		sb.WriteByte(' ')
		sb.WriteString(b.Strings.MustLookup(d.Method))
		b.writeTypeArgs(sb, d.TypeArgs)
		b.writeExprList(sb, d.Args)
		sb.WriteByte(')')
	case ExprIf:
		d, _ := e.If(id)
		sb.WriteString("(if ")
		b.writeExpr(sb, d.Cond)
		sb.WriteByte(' ')
		b.writeExpr(sb, d.Then)
		if d.Else.IsValid() {
			sb.WriteByte(' ')
			b.writeExpr(sb, d.Else)
		}
		sb.WriteByte(')')
	case ExprWhile:
		d, _ := e.While(id)
		sb.WriteString("(while ")
		b.writeExpr(sb, d.Cond)
		sb.WriteByte(' ')
		b.writeExpr(sb, d.Body)
		sb.WriteByte(')')
	case ExprArray:
		d, _ := e.Array(id)
		sb.WriteString("(array")
		b.writeExprList(sb, d.Values)
		sb.WriteByte(')')
	case ExprArrayRepeat:
		d, _ := e.ArrayRepeat(id)
		sb.WriteString("(repeat ")
		b.writeExpr(sb, d.Value)
		sb.WriteByte(' ')
		b.writeExpr(sb, d.Count)
		sb.WriteByte(')')
	case ExprStruct:
		d, _ := e.Struct(id)
		sb.WriteString("(struct ")
		sb.WriteString(b.Strings.MustLookup(d.Name))
		for _, fid := range b.Fields.Arena.Items(d.Fields) {
			f := b.Fields.Get(fid)
			sb.WriteString(" (")
			sb.WriteString(b.Strings.MustLookup(f.Name))
			sb.WriteByte(' ')
			b.writeExpr(sb, f.Value)
			sb.WriteByte(')')
		}
		sb.WriteByte(')')
	case ExprField:
		d, _ := e.Field(id)
		sb.WriteString("(. ")
		b.writeExpr(sb, d.Base)
		sb.WriteByte(' ')
		sb.WriteString(b.Strings.MustLookup(d.Member))
		sb.WriteByte(')')
	case ExprIndex:
		d, _ := e.Index(id)
		sb.WriteString("(index ")
		b.writeExpr(sb, d.Base)
		sb.WriteByte(' ')
		b.writeExpr(sb, d.Index)
		sb.WriteByte(')')
	case ExprReturn:
		d, _ := e.Return(id)
		sb.WriteString("(return")
		if d.Value.IsValid() {
			sb.WriteByte(' ')
			b.writeExpr(sb, d.Value)
		}
		sb.WriteByte(')')
	default:
		sb.WriteString(expr.Kind.String())
	}
}

func (b *Builder) writeExprList(sb *strings.Builder, l List[ExprID]) {
	for _, id := range b.Exprs.List(l) {
		sb.WriteByte(' ')
		b.writeExpr(sb, id)
	}
}

func (b *Builder) writeTypeArgs(sb *strings.Builder, l List[TypeID]) {
	if l.Empty() {
		return
	}
	sb.WriteString(" ::<")
	for i, id := range b.Types.Arena.Items(l) {
		if i > 0 {
			sb.WriteString(", ")
		}
		b.writeType(sb, id)
	}
	sb.WriteByte('>')
}

func (b *Builder) writeType(sb *strings.Builder, id TypeID) {
	ty := b.Types.Get(id)
	switch {
	case ty == nil:
		sb.WriteString("_")
	case ty.Kind == TypeUnit:
		sb.WriteString("()")
	default:
		sb.WriteString(b.Strings.MustLookup(ty.Name))
		if ty.Args.Empty() {
			return
		}
		sb.WriteByte('<')
		for i, arg := range b.Types.Arena.Items(ty.Args) {
			if i > 0 {
				sb.WriteString(", ")
			}
			b.writeType(sb, arg)
		}
		sb.WriteByte('>')
	}
}
