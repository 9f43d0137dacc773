package ast

import (
	"github.com/Aern-do/unnamedc/internal/source"
)

type TypeKind uint8

const (
	TypeNamed TypeKind = iota
	TypeUnit
)

func (k TypeKind) String() string {
	switch k {
	case TypeNamed:
		return "Named"
	case TypeUnit:
		return "Unit"
	default:
		return "TypeKind(?)"
	}
}

// Type is a type syntax node: `Name<Args>` or `()`.
type Type struct {
	Kind     TypeKind
	Span     source.Span
	Name     source.StringID
	NameSpan source.Span
	Args     List[TypeID]
}

type Types struct {
	Arena *Arena[TypeID, Type]
}

func NewTypes(capHint uint) *Types {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Types{Arena: NewArena[TypeID, Type](capHint)}
}

func (t *Types) Get(id TypeID) *Type {
	if !id.IsValid() {
		return nil
	}
	return t.Arena.Get(id)
}

func (t *Types) Span(id TypeID) source.Span {
	return t.Arena.Get(id).Span
}

// Named returns the node when id is a named type.
func (t *Types) Named(id TypeID) (*Type, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeNamed {
		return nil, false
	}
	return ty, true
}

func (t *Types) Args(id TypeID) []TypeID {
	ty := t.Get(id)
	if ty == nil {
		return nil
	}
	return t.Arena.Items(ty.Args)
}
