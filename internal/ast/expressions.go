package ast

import "github.com/cwbudde/daedalus-dc/internal/token"

func (*IntegerLit) exprNode()  {}
func (*FloatLit) exprNode()    {}
func (*StringLit) exprNode()   {}
func (*VarAccess) exprNode()   {}
func (*CallExpr) exprNode()    {}
func (*UnaryExpr) exprNode()   {}
func (*BinaryExpr) exprNode()  {}

// IntegerLit is a 64-bit signed integer literal.
type IntegerLit struct {
	base
	Value int64
}

func NewIntegerLit(value int64, span token.Span) *IntegerLit {
	return &IntegerLit{base: base{span}, Value: value}
}

// FloatLit is a 64-bit decimal literal.
type FloatLit struct {
	base
	Value float64
}

func NewFloatLit(value float64, span token.Span) *FloatLit {
	return &FloatLit{base: base{span}, Value: value}
}

// StringLit is a raw, opaque-byte string literal (spec.md §3: no escape
// syntax in the source language).
type StringLit struct {
	base
	Value string
}

func NewStringLit(value string, span token.Span) *StringLit {
	return &StringLit{base: base{span}, Value: value}
}

// VarAccess is `name`, `instance.name`, or either with a trailing
// `[index]`, per spec.md §3.
type VarAccess struct {
	base
	Name     *Ident
	Instance *Ident // nil when unqualified
	Index    Expr   // nil when not indexed
}

func NewVarAccess(name, instance *Ident, index Expr, span token.Span) *VarAccess {
	return &VarAccess{base: base{span}, Name: name, Instance: instance, Index: index}
}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	base
	Callee *Ident
	Args   []Expr
}

func NewCallExpr(callee *Ident, args []Expr, span token.Span) *CallExpr {
	return &CallExpr{base: base{span}, Callee: callee, Args: args}
}

// UnaryExpr is a prefix operator applied to a single operand: `+ - ! ~`.
type UnaryExpr struct {
	base
	Op      token.Type
	Operand Expr
}

func NewUnaryExpr(op token.Type, operand Expr, span token.Span) *UnaryExpr {
	return &UnaryExpr{base: base{span}, Op: op, Operand: operand}
}

// BinaryExpr is a left-associative infix operator application, per the
// precedence table of spec.md §3.
type BinaryExpr struct {
	base
	Op          token.Type
	Left, Right Expr
}

func NewBinaryExpr(op token.Type, left, right Expr, span token.Span) *BinaryExpr {
	return &BinaryExpr{base: base{span}, Op: op, Left: left, Right: right}
}
