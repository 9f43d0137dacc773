package ast

import (
	"github.com/Aern-do/unnamedc/internal/source"
)

// Field is one `name: value` entry of a struct literal.
type Field struct {
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID
	Span     source.Span
}

type Fields struct {
	Arena *Arena[FieldID, Field]
}

func NewFields(capHint uint) *Fields {
	if capHint == 0 {
		capHint = 1 << 4
	}
	return &Fields{Arena: NewArena[FieldID, Field](capHint)}
}

func (f *Fields) Get(id FieldID) *Field {
	if !id.IsValid() {
		return nil
	}
	return f.Arena.Get(id)
}

func (f *Fields) Span(id FieldID) source.Span {
	return f.Arena.Get(id).Span
}
