package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Int represents an integer literal; its value is in Token.Value.
	Int
	// Str represents a string literal; its decoded text is in Token.Value.
	Str
	// Ident represents an identifier token.
	Ident

	Add    // +
	Sub    // -
	Mul    // *
	Div    // /
	Eq     // ==
	Asgmt  // =
	Neq    // !=
	Lt     // <
	LtEq   // <=
	Gt     // >
	GtEq   // >=
	And    // &&
	Or     // ||
	BitOr  // |
	BitAnd // &
	BitXor // ^
	BitShr // >>
	BitShl // <<

	Comma       // ,
	LParen      // (
	RParen      // )
	LBrace      // {
	RBrace      // }
	LBracket    // [
	RBracket    // ]
	Semicolon   // ;
	Colon       // :
	DoubleColon // ::
	Dot         // .
	Arrow       // ->

	KwFunc   // func
	KwTrait  // trait
	KwImpl   // impl
	KwStruct // struct
	KwWhile  // while
	KwLet    // let
	KwFor    // for
	KwIf     // if
	KwElse   // else
	KwReturn // return
	KwTrue   // true
	KwFalse  // false

	kindCount
)

var kindNames = [kindCount]string{
	Invalid: "Invalid",
	EOF:     "EOF",
	Int:     "Int",
	Str:     "Str",
	Ident:   "Ident",

	Add:    "Add",
	Sub:    "Sub",
	Mul:    "Mul",
	Div:    "Div",
	Eq:     "Eq",
	Asgmt:  "Asgmt",
	Neq:    "Neq",
	Lt:     "Lt",
	LtEq:   "LtEq",
	Gt:     "Gt",
	GtEq:   "GtEq",
	And:    "And",
	Or:     "Or",
	BitOr:  "BitOr",
	BitAnd: "BitAnd",
	BitXor: "BitXor",
	BitShr: "BitShr",
	BitShl: "BitShl",

	Comma:       "Comma",
	LParen:      "LParen",
	RParen:      "RParen",
	LBrace:      "LBrace",
	RBrace:      "RBrace",
	LBracket:    "LBracket",
	RBracket:    "RBracket",
	Semicolon:   "Semicolon",
	Colon:       "Colon",
	DoubleColon: "DoubleColon",
	Dot:         "Dot",
	Arrow:       "Arrow",

	KwFunc:   "KwFunc",
	KwTrait:  "KwTrait",
	KwImpl:   "KwImpl",
	KwStruct: "KwStruct",
	KwWhile:  "KwWhile",
	KwLet:    "KwLet",
	KwFor:    "KwFor",
	KwIf:     "KwIf",
	KwElse:   "KwElse",
	KwReturn: "KwReturn",
	KwTrue:   "KwTrue",
	KwFalse:  "KwFalse",
}

// String returns the Go-style name of the kind, e.g. "LtEq".
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := range kindCount {
		out = append(out, k)
	}
	return out
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwFunc && k <= KwFalse
}

// IsOperator reports whether k is an operator or punctuation token.
func (k Kind) IsOperator() bool {
	return k >= Add && k <= Arrow
}

// IsLiteral reports whether k carries a literal value payload.
func (k Kind) IsLiteral() bool {
	return k == Int || k == Str
}
