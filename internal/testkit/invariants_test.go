package testkit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Aern-do/unnamedc/internal/ast"
	"github.com/Aern-do/unnamedc/internal/lexer"
	"github.com/Aern-do/unnamedc/internal/source"
	"github.com/Aern-do/unnamedc/internal/token"
)

func lexAll(src source.Source) []token.Token {
	lx := lexer.New(src, lexer.Options{})
	var toks []token.Token
	for {
		tok, _ := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestCheckTokenStreamAccepts(t *testing.T) {
	for _, content := range []string{
		"",
		"  \n\t",
		"let x = 1 @ \"s\\n\" ;",
		"\"unterminated",
		"名前 \xff !",
	} {
		src := source.NewSource(content, "t.un")
		require.NoError(t, CheckTokenStream(src, lexAll(src)), "%q", content)
	}
}

func TestCheckTokenStreamRejects(t *testing.T) {
	src := source.NewSource("ab cd", "t.un")
	good := lexAll(src)
	require.Len(t, good, 3)

	mutate := func(f func(toks []token.Token) []token.Token) []token.Token {
		toks := append([]token.Token(nil), good...)
		return f(toks)
	}

	cases := map[string][]token.Token{
		"wrong text": mutate(func(toks []token.Token) []token.Token {
			toks[0].Text = "xx"
			return toks
		}),
		"overlap": mutate(func(toks []token.Token) []token.Token {
			toks[1].Span = source.NewSpan(1, 5)
			toks[1].Text = src.Slice(toks[1].Span)
			return toks
		}),
		"skipped text": mutate(func(toks []token.Token) []token.Token {
			return []token.Token{toks[1], toks[2]}
		}),
		"eof not last": mutate(func(toks []token.Token) []token.Token {
			return []token.Token{toks[2], toks[0]}
		}),
		"eof misplaced": mutate(func(toks []token.Token) []token.Token {
			toks[2].Span = source.NewSpan(4, 4)
			return toks
		}),
		"beyond content": mutate(func(toks []token.Token) []token.Token {
			toks[1].Span = source.NewSpan(3, 9)
			return toks
		}),
	}
	for name, toks := range cases {
		t.Run(name, func(t *testing.T) {
			require.Error(t, CheckTokenStream(src, toks))
		})
	}
}

func TestCheckExprSpans(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	sp := source.NewSpan

	// foo::<Vec<int>>(a + 1, P { x: 2 })
	intTy := b.NamedType(b.Intern("int"), sp(10, 13))
	vecTy := b.GenericType(b.Intern("Vec"), sp(6, 9), []ast.TypeID{intTy}, sp(9, 14))
	sum := b.Binary(b.Ident(b.Intern("a"), sp(16, 17)), ast.BinAdd, sp(18, 19), b.Int(1, sp(20, 21)))
	field := b.StructField(b.Intern("x"), sp(27, 28), b.Int(2, sp(30, 31)))
	st := b.Struct(b.Intern("P"), sp(23, 24), []ast.FieldID{field}, sp(25, 33))
	call := b.Call(b.Ident(b.Intern("foo"), sp(0, 3)), []ast.TypeID{vecTy}, []ast.ExprID{sum, st}, sp(15, 34))
	ret := b.Return(sp(40, 46), call)
	root := b.Block([]ast.ExprID{ret}, sp(38, 50))

	require.NoError(t, CheckExprSpans(b, root))
	require.NoError(t, CheckExprSpans(b, ast.NoExprID))

	// ломаем спан листа: он выходит за пределы родителя
	b.Exprs.Get(sum).Span = sp(16, 60)
	require.Error(t, CheckExprSpans(b, root))
}

func TestCheckExprSpansKeyword(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	sp := source.NewSpan

	// while x { if y {} }
	inner := b.If(sp(10, 12), b.Ident(b.Intern("y"), sp(13, 14)), b.Block(nil, sp(15, 17)), ast.NoExprID)
	loop := b.While(sp(0, 5), b.Ident(b.Intern("x"), sp(6, 7)), b.Block([]ast.ExprID{inner}, sp(8, 19)))
	require.NoError(t, CheckExprSpans(b, loop))

	d, ok := b.Exprs.If(inner)
	require.True(t, ok)
	d.KwSpan = sp(2, 4)
	require.Error(t, CheckExprSpans(b, loop))
}
