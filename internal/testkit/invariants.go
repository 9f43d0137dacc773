package testkit

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"github.com/Aern-do/unnamedc/internal/ast"
	"github.com/Aern-do/unnamedc/internal/source"
	"github.com/Aern-do/unnamedc/internal/token"
)

// CheckTokenStream runs the token stream invariants on toks lexed from src:
// 1) spans are ordered, non-overlapping and within content bounds
// 2) every token but EOF is non-empty and its Text is the source slice
// 3) only whitespace lies between tokens
// 4) EOF, if present, is last, empty and sits at the end of content
func CheckTokenStream(src source.Source, toks []token.Token) error {
	limit, err := safecast.Conv[uint32](len(src.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var prevEnd uint32
	for i, tok := range toks {
		sp := tok.Span
		if sp.End < sp.Start {
			return fmt.Errorf("token %d (%v): inverted span %v", i, tok.Kind, sp)
		}
		if sp.End > limit {
			return fmt.Errorf("token %d (%v): span %v beyond content (%d bytes)", i, tok.Kind, sp, limit)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d (%v): span %v overlaps previous token ending at %d", i, tok.Kind, sp, prevEnd)
		}
		if gap := src.Content[prevEnd:sp.Start]; !isBlank(gap) {
			return fmt.Errorf("token %d (%v): non-whitespace %q skipped before %v", i, tok.Kind, gap, sp)
		}
		if tok.Kind == token.EOF {
			if i != len(toks)-1 {
				return fmt.Errorf("token %d: EOF is not the last token", i)
			}
			if !sp.Empty() || sp.Start != limit {
				return fmt.Errorf("EOF span %v, want empty at %d", sp, limit)
			}
			if tok.Text != "" {
				return fmt.Errorf("EOF carries text %q", tok.Text)
			}
			continue
		}
		if sp.Empty() {
			return fmt.Errorf("token %d (%v): empty span at %d", i, tok.Kind, sp.Start)
		}
		if want := src.Slice(sp); tok.Text != want {
			return fmt.Errorf("token %d (%v): text %q, source has %q", i, tok.Kind, tok.Text, want)
		}
		prevEnd = sp.End
	}
	return nil
}

func isBlank(s string) bool {
	for len(s) > 0 {
		r, sz := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError || !unicode.IsSpace(r) {
			return false
		}
		s = s[sz:]
	}
	return true
}

// CheckExprSpans walks the tree under root and checks that every child
// span (expressions, struct fields, type arguments) lies inside its
// parent's span.
func CheckExprSpans(b *ast.Builder, root ast.ExprID) error {
	if b == nil {
		return fmt.Errorf("nil builder")
	}
	if !root.IsValid() {
		return nil
	}
	return checkExpr(b, root)
}

func within(inner, outer source.Span) bool {
	return inner.Start >= outer.Start && inner.End <= outer.End && inner.Start <= inner.End
}

func checkExpr(b *ast.Builder, id ast.ExprID) error {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return fmt.Errorf("expr %d not found", id)
	}
	parent := expr.Span
	if parent.End < parent.Start {
		return fmt.Errorf("%v %d: inverted span %v", expr.Kind, id, parent)
	}

	var kids []ast.ExprID
	var types []ast.TypeID
	own := []source.Span{}
	add := func(ids ...ast.ExprID) {
		for _, k := range ids {
			if k.IsValid() {
				kids = append(kids, k)
			}
		}
	}

	switch expr.Kind {
	case ast.ExprBlock:
		d, _ := b.Exprs.Block(id)
		add(b.Exprs.List(d.Exprs)...)
	case ast.ExprAssign:
		d, _ := b.Exprs.Assign(id)
		own = append(own, d.NameSpan)
		add(d.Value)
	case ast.ExprBinary:
		d, _ := b.Exprs.Binary(id)
		own = append(own, d.OpSpan)
		add(d.Left, d.Right)
	case ast.ExprUnary:
		d, _ := b.Exprs.Unary(id)
		own = append(own, d.OpSpan)
		add(d.Operand)
	case ast.ExprCall:
		d, _ := b.Exprs.Call(id)
		add(d.Callee)
		add(b.Exprs.List(d.Args)...)
		types = b.Types.Arena.Items(d.TypeArgs)
	case ast.ExprMethodCall:
		d, _ := b.Exprs.MethodCall(id)
		own = append(own, d.MethodSpan)
		add(d.Receiver)
		add(b.Exprs.List(d.Args)...)
		types = b.Types.Arena.Items(d.TypeArgs)
	case ast.ExprIf:
		d, _ := b.Exprs.If(id)
		own = append(own, d.KwSpan)
		add(d.Cond, d.Then, d.Else)
	case ast.ExprWhile:
		d, _ := b.Exprs.While(id)
		own = append(own, d.KwSpan)
		add(d.Cond, d.Body)
	case ast.ExprArray:
		d, _ := b.Exprs.Array(id)
		add(b.Exprs.List(d.Values)...)
	case ast.ExprArrayRepeat:
		d, _ := b.Exprs.ArrayRepeat(id)
		add(d.Value, d.Count)
	case ast.ExprStruct:
		d, _ := b.Exprs.Struct(id)
		own = append(own, d.NameSpan)
		for _, fid := range b.Fields.Arena.Items(d.Fields) {
			f := b.Fields.Get(fid)
			if !within(f.Span, parent) {
				return fmt.Errorf("field %d span %v is outside %v %v", fid, f.Span, expr.Kind, parent)
			}
			if !within(f.NameSpan, f.Span) {
				return fmt.Errorf("field %d name span %v is outside field span %v", fid, f.NameSpan, f.Span)
			}
			if f.Value.IsValid() && !within(b.ExprSpan(f.Value), f.Span) {
				return fmt.Errorf("field %d value span %v is outside field span %v", fid, b.ExprSpan(f.Value), f.Span)
			}
			add(f.Value)
		}
	case ast.ExprField:
		d, _ := b.Exprs.Field(id)
		own = append(own, d.MemberSpan)
		add(d.Base)
	case ast.ExprIndex:
		d, _ := b.Exprs.Index(id)
		add(d.Base, d.Index)
	case ast.ExprReturn:
		d, _ := b.Exprs.Return(id)
		own = append(own, d.KwSpan)
		add(d.Value)
	}

	for _, sp := range own {
		if !within(sp, parent) {
			return fmt.Errorf("%v %d: token span %v is outside %v", expr.Kind, id, sp, parent)
		}
	}
	for _, tid := range types {
		if err := checkType(b, tid, parent); err != nil {
			return err
		}
	}
	for _, k := range kids {
		if sp := b.ExprSpan(k); !within(sp, parent) {
			return fmt.Errorf("%v %d: child %d span %v is outside %v", expr.Kind, id, k, sp, parent)
		}
		if err := checkExpr(b, k); err != nil {
			return err
		}
	}
	return nil
}

func checkType(b *ast.Builder, id ast.TypeID, outer source.Span) error {
	ty := b.Types.Get(id)
	if ty == nil {
		return fmt.Errorf("type %d not found", id)
	}
	if !within(ty.Span, outer) {
		return fmt.Errorf("type %d span %v is outside %v", id, ty.Span, outer)
	}
	for _, arg := range b.Types.Arena.Items(ty.Args) {
		if err := checkType(b, arg, ty.Span); err != nil {
			return err
		}
	}
	return nil
}
