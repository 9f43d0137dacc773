// Package ast stores expression and type syntax in flat arenas.
//
// Nodes are addressed by dense 32-bit handles (ExprID, TypeID, FieldID);
// the zero handle means "absent". Child lists live in a per-arena pool and
// are referenced by List values. A node's span is the union of its own
// tokens and its children and is computed exactly once, when the Builder
// allocates the node.
package ast
