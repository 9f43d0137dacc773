package token

import (
	"fmt"

	"github.com/Aern-do/unnamedc/internal/source"
)

// ValueKind tells which field of Value is populated.
type ValueKind uint8

const (
	NoValue ValueKind = iota
	NumberValue
	StringValue
)

// Value is the literal payload attached to Int and Str tokens.
type Value struct {
	Kind ValueKind
	Int  uint64
	Str  string
}

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Value Value
}

// NewNumber builds an Int token carrying v.
func NewNumber(span source.Span, text string, v uint64) Token {
	return Token{Kind: Int, Span: span, Text: text, Value: Value{Kind: NumberValue, Int: v}}
}

// NewString builds a Str token; text is the quoted slice, decoded the unescaped content.
func NewString(span source.Span, text, decoded string) Token {
	return Token{Kind: Str, Span: span, Text: text, Value: Value{Kind: StringValue, Str: decoded}}
}

// Number returns the integer payload. It panics if the token carries none.
func (t Token) Number() uint64 {
	if t.Value.Kind != NumberValue {
		panic(fmt.Sprintf("token: %s at %s has no number value", t.Kind, t.Span))
	}
	return t.Value.Int
}

// Str returns the decoded string payload. It panics if the token carries none.
func (t Token) Str() string {
	if t.Value.Kind != StringValue {
		panic(fmt.Sprintf("token: %s at %s has no string value", t.Kind, t.Span))
	}
	return t.Value.Str
}

// HasValue reports whether the token carries a literal payload.
func (t Token) HasValue() bool { return t.Value.Kind != NoValue }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsOperator reports whether the token is an operator or punctuation.
func (t Token) IsOperator() bool { return t.Kind.IsOperator() }

// IsEOF reports whether the token marks the end of input.
func (t Token) IsEOF() bool { return t.Kind == EOF }
