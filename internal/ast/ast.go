// Package ast defines the Daedalus abstract syntax tree: expressions,
// statements, and declarations, each carrying a byte Span into its origin
// file per spec.md §3.
package ast

import "github.com/cwbudde/daedalus-dc/internal/token"

// Node is implemented by every AST node.
type Node interface {
	Span() token.Span
}

// Expr is any node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is any top-level or nested declaration.
type Decl interface {
	Node
	declNode()
}

// base carries the span shared by every concrete node; embedding it
// supplies Span() without repeating the field and method on each type.
type base struct {
	span token.Span
}

func (b base) Span() token.Span { return b.span }

// Ident is a raw identifier: its bytes plus the span they occupy.
// Comparisons between idents are always case-insensitive ASCII (spec.md
// §3); Name preserves the source's original casing for diagnostics.
type Ident struct {
	base
	Name string
}

func NewIdent(name string, span token.Span) *Ident {
	return &Ident{base: base{span}, Name: name}
}
