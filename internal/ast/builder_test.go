package ast

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aern-do/unnamedc/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.NewSpan(start, end)
}

type fixture struct {
	*Builder
}

func newFixture() fixture {
	return fixture{NewBuilder(Hints{}, nil)}
}

func (f fixture) ident(name string, start, end uint32) ExprID {
	return f.Ident(f.Intern(name), sp(start, end))
}

func (f fixture) block(start, end uint32, exprs ...ExprID) ExprID {
	return f.Block(exprs, sp(start, end))
}

func TestLeafSpans(t *testing.T) {
	f := newFixture()
	assert.Equal(t, sp(0, 3), f.ExprSpan(f.ident("foo", 0, 3)))
	assert.Equal(t, sp(4, 6), f.ExprSpan(f.Int(42, sp(4, 6))))
	assert.Equal(t, sp(0, 5), f.ExprSpan(f.Str(f.Intern("abc"), sp(0, 5))))
	assert.Equal(t, sp(1, 5), f.ExprSpan(f.Bool(true, sp(1, 5))))
	assert.Equal(t, sp(2, 4), f.ExprSpan(f.Unit(sp(2, 4))))
}

func TestCompositeSpans(t *testing.T) {
	tests := []struct {
		name  string
		build func(f fixture) ExprID
		want  source.Span
	}{
		{
			// a + bc
			name: "binary",
			build: func(f fixture) ExprID {
				return f.Binary(f.ident("a", 0, 1), BinAdd, sp(2, 3), f.ident("bc", 4, 6))
			},
			want: sp(0, 6),
		},
		{
			// -x
			name: "unary",
			build: func(f fixture) ExprID {
				return f.Unary(UnNeg, sp(0, 1), f.ident("x", 1, 2))
			},
			want: sp(0, 2),
		},
		{
			// x = 1
			name: "assign",
			build: func(f fixture) ExprID {
				return f.Assign(f.Intern("x"), sp(0, 1), f.Int(1, sp(4, 5)))
			},
			want: sp(0, 5),
		},
		{
			// f::<T>(1, x)
			name: "call",
			build: func(f fixture) ExprID {
				ty := f.NamedType(f.Intern("T"), sp(4, 5))
				return f.Call(f.ident("f", 0, 1), []TypeID{ty},
					[]ExprID{f.Int(1, sp(7, 8)), f.ident("x", 10, 11)}, sp(6, 12))
			},
			want: sp(0, 12),
		},
		{
			// f()
			name: "call without args",
			build: func(f fixture) ExprID {
				return f.Call(f.ident("f", 0, 1), nil, nil, sp(1, 3))
			},
			want: sp(0, 3),
		},
		{
			// v.push(1)
			name: "method call",
			build: func(f fixture) ExprID {
				return f.MethodCall(f.ident("v", 0, 1), f.Intern("push"), sp(2, 6), nil,
					[]ExprID{f.Int(1, sp(7, 8))}, sp(6, 9))
			},
			want: sp(0, 9),
		},
		{
			// {}
			name: "empty block",
			build: func(f fixture) ExprID { return f.block(5, 7) },
			want:  sp(5, 7),
		},
		{
			// { a b }
			name: "block",
			build: func(f fixture) ExprID {
				return f.block(0, 7, f.ident("a", 2, 3), f.ident("b", 4, 5))
			},
			want: sp(0, 7),
		},
		{
			// while a {}
			name: "while",
			build: func(f fixture) ExprID {
				return f.While(sp(0, 5), f.ident("a", 6, 7), f.block(8, 10))
			},
			want: sp(0, 10),
		},
		{
			// []
			name: "empty array",
			build: func(f fixture) ExprID { return f.Array(nil, sp(3, 5)) },
			want:  sp(3, 5),
		},
		{
			// [0; 3]
			name: "array repeat",
			build: func(f fixture) ExprID {
				return f.ArrayRepeat(f.Int(0, sp(1, 2)), f.Int(3, sp(4, 5)), sp(0, 6))
			},
			want: sp(0, 6),
		},
		{
			// P { x: 1 }
			name: "struct",
			build: func(f fixture) ExprID {
				field := f.StructField(f.Intern("x"), sp(4, 5), f.Int(1, sp(7, 8)))
				return f.Struct(f.Intern("P"), sp(0, 1), []FieldID{field}, sp(2, 10))
			},
			want: sp(0, 10),
		},
		{
			// P {}
			name: "empty struct",
			build: func(f fixture) ExprID {
				return f.Struct(f.Intern("P"), sp(0, 1), nil, sp(2, 4))
			},
			want: sp(0, 4),
		},
		{
			// a.b
			name: "field",
			build: func(f fixture) ExprID {
				return f.Field(f.ident("a", 0, 1), f.Intern("b"), sp(2, 3))
			},
			want: sp(0, 3),
		},
		{
			// a[i]
			name: "index",
			build: func(f fixture) ExprID {
				return f.Index(f.ident("a", 0, 1), f.ident("i", 2, 3), sp(1, 4))
			},
			want: sp(0, 4),
		},
		{
			// return
			name: "bare return",
			build: func(f fixture) ExprID { return f.Return(sp(0, 6), NoExprID) },
			want:  sp(0, 6),
		},
		{
			// return x
			name: "return value",
			build: func(f fixture) ExprID { return f.Return(sp(0, 6), f.ident("x", 7, 8)) },
			want:  sp(0, 8),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			id := tt.build(f)
			assert.Equal(t, tt.want, f.ExprSpan(id))
			assert.Equal(t, tt.want, f.Exprs.Get(id).Span)
		})
	}
}

func TestIfElseChainSpans(t *testing.T) {
	// if a {} else if b {} else {}
	f := newFixture()
	inner := f.If(sp(13, 15), f.ident("b", 16, 17), f.block(18, 20), f.block(26, 28))
	outer := f.If(sp(0, 2), f.ident("a", 3, 4), f.block(5, 7), inner)

	assert.Equal(t, sp(13, 28), f.ExprSpan(inner))
	assert.Equal(t, sp(0, 28), f.ExprSpan(outer))

	data, ok := f.Exprs.If(outer)
	require.True(t, ok)
	assert.Equal(t, inner, data.Else)
	assert.Equal(t, sp(0, 2), data.KwSpan)

	// if c {}
	noElse := f.If(sp(0, 2), f.ident("c", 3, 4), f.block(5, 7), NoExprID)
	assert.Equal(t, sp(0, 7), f.ExprSpan(noElse))
}

func TestLoopSpanStartsAtKeyword(t *testing.T) {
	// while x {}
	f := newFixture()
	loop := f.While(sp(0, 5), f.ident("x", 6, 7), f.block(8, 10))
	assert.Equal(t, sp(0, 10), f.ExprSpan(loop))
	data, ok := f.Exprs.While(loop)
	require.True(t, ok)
	assert.Equal(t, sp(0, 5), data.KwSpan)
}

func TestIfRejectsMalformedBranches(t *testing.T) {
	f := newFixture()
	kw := sp(0, 0)
	assert.Panics(t, func() { f.If(kw, f.ident("a", 0, 1), f.ident("b", 2, 3), NoExprID) })
	assert.Panics(t, func() { f.If(kw, f.ident("a", 0, 1), f.block(2, 4), f.ident("c", 5, 6)) })
	assert.Panics(t, func() { f.If(kw, NoExprID, f.block(2, 4), NoExprID) })
	assert.Panics(t, func() { f.While(kw, f.ident("a", 0, 1), f.Int(1, sp(2, 3))) })
	assert.Panics(t, func() { f.Binary(NoExprID, BinAdd, sp(0, 1), f.ident("a", 2, 3)) })
}

func TestTypeSpans(t *testing.T) {
	f := newFixture()
	i32 := f.NamedType(f.Intern("i32"), sp(4, 7))
	vec := f.GenericType(f.Intern("Vec"), sp(0, 3), []TypeID{i32}, sp(3, 8))
	unit := f.UnitType(sp(10, 12))

	assert.Equal(t, sp(4, 7), f.TypeSpan(i32))
	assert.Equal(t, sp(0, 8), f.TypeSpan(vec))
	assert.Equal(t, sp(10, 12), f.TypeSpan(unit))
	assert.Equal(t, []TypeID{i32}, f.Types.Args(vec))
	assert.Equal(t, "Vec<i32>", f.TypeString(vec))
	assert.Equal(t, "()", f.TypeString(unit))

	_, ok := f.Types.Named(unit)
	assert.False(t, ok)
	named, ok := f.Types.Named(vec)
	require.True(t, ok)
	assert.Equal(t, "Vec", f.Strings.MustLookup(named.Name))
}

func TestFieldSpan(t *testing.T) {
	f := newFixture()
	id := f.StructField(f.Intern("x"), sp(4, 5), f.Int(1, sp(7, 8)))
	assert.Equal(t, sp(4, 8), f.FieldSpan(id))
	assert.Equal(t, sp(7, 8), f.ExprSpan(f.Fields.Get(id).Value))
}

func TestAccessorsCheckKind(t *testing.T) {
	f := newFixture()
	bin := f.Binary(f.Int(1, sp(0, 1)), BinMul, sp(2, 3), f.Int(2, sp(4, 5)))

	data, ok := f.Exprs.Binary(bin)
	require.True(t, ok)
	assert.Equal(t, BinMul, data.Op)
	assert.Equal(t, sp(2, 3), data.OpSpan)

	_, ok = f.Exprs.Call(bin)
	assert.False(t, ok)
	_, ok = f.Exprs.Binary(NoExprID)
	assert.False(t, ok)

	unit := f.Unit(sp(0, 2))
	_, ok = f.Exprs.Block(unit)
	assert.False(t, ok)
	kind, ok := f.Exprs.Kind(unit)
	require.True(t, ok)
	assert.Equal(t, ExprUnit, kind)

	_, ok = f.Exprs.Kind(NoExprID)
	assert.False(t, ok)
}

func TestListsPreserveOrder(t *testing.T) {
	f := newFixture()
	args := []ExprID{f.Int(1, sp(2, 3)), f.Int(2, sp(5, 6)), f.Int(3, sp(8, 9))}
	call := f.Call(f.ident("f", 0, 1), nil, args, sp(1, 10))

	data, ok := f.Exprs.Call(call)
	require.True(t, ok)
	if diff := cmp.Diff(args, f.Exprs.List(data.Args)); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, data.TypeArgs.Empty())
}

func TestSexpr(t *testing.T) {
	f := newFixture()
	// if x < 10 { v.push::<i32>(x); P { y: -1 }; } else { return [0; 2][1] }
	cond := f.Binary(f.ident("x", 3, 4), BinLt, sp(5, 6), f.Int(10, sp(7, 9)))
	push := f.MethodCall(f.ident("v", 12, 13), f.Intern("push"), sp(14, 18),
		[]TypeID{f.NamedType(f.Intern("i32"), sp(21, 24))},
		[]ExprID{f.ident("x", 26, 27)}, sp(25, 28))
	lit := f.Struct(f.Intern("P"), sp(30, 31), []FieldID{
		f.StructField(f.Intern("y"), sp(34, 35), f.Unary(UnNeg, sp(37, 38), f.Int(1, sp(38, 39)))),
	}, sp(32, 41))
	then := f.block(10, 44, push, lit)
	ret := f.Return(sp(52, 58), f.Index(
		f.ArrayRepeat(f.Int(0, sp(60, 61)), f.Int(2, sp(63, 64)), sp(59, 65)),
		f.Int(1, sp(66, 67)), sp(65, 68)))
	expr := f.If(sp(0, 2), cond, then, f.block(50, 70, ret))

	want := "(if (< x 10) (block (method v push ::<i32> x) (struct P (y (- 1)))) " +
		"(block (return (index (repeat 0 2) 1))))"
	assert.Equal(t, want, f.Sexpr(expr))
	assert.Equal(t, sp(0, 70), f.ExprSpan(expr))
	assert.Equal(t, "_", f.Sexpr(NoExprID))
}

// Случайные деревья: спан родителя всегда равен объединению спанов детей.
func TestSpanCoversChildren(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for range 200 {
		f := newFixture()
		var offset uint32
		leaf := func() ExprID {
			start := offset
			offset += 1 + r.Uint32N(4)
			id := f.Int(uint64(start), sp(start, offset))
			offset += r.Uint32N(3)
			return id
		}
		var build func(depth int) ExprID
		build = func(depth int) ExprID {
			if depth == 0 || r.IntN(3) == 0 {
				return leaf()
			}
			left := build(depth - 1)
			opStart := offset
			offset++
			op := sp(opStart, offset)
			right := build(depth - 1)
			return f.Binary(left, BinaryOp(r.IntN(int(BinBitShl)+1)), op, right)
		}

		root := build(6)
		for id, expr := range f.Exprs.Arena.Entries() {
			data, ok := f.Exprs.Binary(id)
			if !ok {
				continue
			}
			want := f.ExprSpan(data.Left).Cover(data.OpSpan).Cover(f.ExprSpan(data.Right))
			require.Equal(t, want, expr.Span)
			require.True(t, expr.Span.Start <= f.ExprSpan(data.Left).Start)
			require.True(t, expr.Span.End >= f.ExprSpan(data.Right).End)
		}
		assert.LessOrEqual(t, f.ExprSpan(root).End, offset)
	}
}

func TestSharedInterner(t *testing.T) {
	strs := source.NewInterner()
	a := NewBuilder(Hints{}, strs)
	b := NewBuilder(Hints{}, strs)
	ia := a.Ident(a.Intern("main"), sp(0, 4))
	ib := b.Ident(b.Intern("main"), sp(0, 4))

	da, _ := a.Exprs.Ident(ia)
	db, _ := b.Exprs.Ident(ib)
	assert.Equal(t, da.Name, db.Name)
}
