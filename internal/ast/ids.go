package ast

type (
	ExprID    uint32
	TypeID    uint32
	FieldID   uint32
	PayloadID uint32
)

const (
	NoExprID    ExprID    = 0
	NoTypeID    TypeID    = 0
	NoFieldID   FieldID   = 0
	NoPayloadID PayloadID = 0
)

func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id TypeID) IsValid() bool    { return id != NoTypeID }
func (id FieldID) IsValid() bool   { return id != NoFieldID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
