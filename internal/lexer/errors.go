package lexer

import (
	"fmt"

	"github.com/Aern-do/unnamedc/internal/diag"
	"github.com/Aern-do/unnamedc/internal/source"
)

// ErrorKind classifies a lexical failure.
type ErrorKind uint8

const (
	InvalidToken ErrorKind = iota
	UnexpectedEOF
	UnclosedStringLiteral
	InvalidEscapeSequence
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidToken:
		return "InvalidToken"
	case UnexpectedEOF:
		return "UnexpectedEOF"
	case UnclosedStringLiteral:
		return "UnclosedStringLiteral"
	case InvalidEscapeSequence:
		return "InvalidEscapeSequence"
	}
	return "ErrorKind(?)"
}

// Message is the headline shown to the user.
func (k ErrorKind) Message() string {
	switch k {
	case InvalidToken:
		return "invalid token"
	case UnexpectedEOF:
		return "unexpected eof"
	case UnclosedStringLiteral:
		return "unclosed string literal"
	case InvalidEscapeSequence:
		return "invalid escape sequence"
	}
	return "lexical error"
}

// Label is the text rendered under the offending span.
func (k ErrorKind) Label() string {
	if k == UnclosedStringLiteral {
		return "this string literal is not closed"
	}
	return k.Message()
}

// Code maps the kind to its stable diagnostic code.
func (k ErrorKind) Code() diag.Code {
	switch k {
	case InvalidToken:
		return diag.LexInvalidToken
	case UnexpectedEOF:
		return diag.LexUnexpectedEOF
	case UnclosedStringLiteral:
		return diag.LexUnclosedString
	case InvalidEscapeSequence:
		return diag.LexInvalidEscape
	}
	return diag.UnknownCode
}

// Error is a lexical failure at Span. For unclosed strings Span is the
// opening quote; for bad escapes it is the escaped character.
type Error struct {
	Span source.Span
	Kind ErrorKind
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Kind.Message(), e.Span)
}

// Diagnostic converts the error into a reportable diagnostic for file.
func (e *Error) Diagnostic(file source.FileID) diag.Diagnostic {
	d := diag.NewError(e.Kind.Code(), file, e.Span, e.Kind.Message()).WithLabel(e.Kind.Label())
	if e.Kind == UnclosedStringLiteral {
		d = d.WithNote(e.Span, "string literal opened here")
	}
	return d
}

func errAt(kind ErrorKind, sp source.Span) *Error {
	return &Error{Span: sp, Kind: kind}
}
