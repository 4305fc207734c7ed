package ast

import "github.com/cwbudde/daedalus-dc/internal/token"

func (*ExprStmt) stmtNode()        {}
func (*AssignStmt) stmtNode()      {}
func (*IfStmt) stmtNode()          {}
func (*VarDeclStmt) stmtNode()     {}
func (*ConstDeclStmt) stmtNode()   {}
func (*ConstArrayDeclStmt) stmtNode() {}
func (*ReturnStmt) stmtNode()      {}

// ExprStmt wraps a bare expression used as a statement (typically a call).
type ExprStmt struct {
	base
	X Expr
}

func NewExprStmt(x Expr, span token.Span) *ExprStmt {
	return &ExprStmt{base: base{span}, X: x}
}

// AssignStmt is `target OP value` where OP is one of
// `= += -= *= /=` (spec.md §3).
type AssignStmt struct {
	base
	Target *VarAccess
	Op     token.Type
	Value  Expr
}

func NewAssignStmt(target *VarAccess, op token.Type, value Expr, span token.Span) *AssignStmt {
	return &AssignStmt{base: base{span}, Target: target, Op: op, Value: value}
}

// IfBranch is one `condition { body }` arm of an if-statement; `else if`
// is normalized into additional branches by the parser (spec.md §3).
type IfBranch struct {
	Cond Expr
	Body []Stmt
}

// IfStmt is an ordered list of branches plus an optional trailing else.
type IfStmt struct {
	base
	Branches []IfBranch
	Else     []Stmt // nil when there is no trailing else
}

func NewIfStmt(branches []IfBranch, elseBody []Stmt, span token.Span) *IfStmt {
	return &IfStmt{base: base{span}, Branches: branches, Else: elseBody}
}

// VarSpec is one `NAME [size]?` slot within a var declaration list.
type VarSpec struct {
	Name *Ident
	Size ArraySize // zero value (nil Expr) when not an array
}

// ArraySize is either a literal integer or an identifier referring to a
// constant integer; resolved to a concrete size only at type-check time
// (spec.md §3).
type ArraySize struct {
	Expr Expr // nil when the var is not an array
}

// VarDeclStmt is `var TYPE NAME [size]? (, (var)? NAME [size]?)*`
// (spec.md §3, §4.3): one `var` introduces one or more same-typed names.
type VarDeclStmt struct {
	base
	Type  *Ident
	Names []VarSpec
}

func NewVarDeclStmt(typ *Ident, names []VarSpec, span token.Span) *VarDeclStmt {
	return &VarDeclStmt{base: base{span}, Type: typ, Names: names}
}

// ConstDeclStmt is a scalar `const TYPE NAME = expr;`.
type ConstDeclStmt struct {
	base
	Type  *Ident
	Name  *Ident
	Value Expr
}

func NewConstDeclStmt(typ, name *Ident, value Expr, span token.Span) *ConstDeclStmt {
	return &ConstDeclStmt{base: base{span}, Type: typ, Name: name, Value: value}
}

// ConstArrayDeclStmt is `const TYPE NAME[size] = { e1, ..., ek };`.
type ConstArrayDeclStmt struct {
	base
	Type     *Ident
	Name     *Ident
	Size     Expr
	Elements []Expr
}

func NewConstArrayDeclStmt(typ, name *Ident, size Expr, elems []Expr, span token.Span) *ConstArrayDeclStmt {
	return &ConstArrayDeclStmt{base: base{span}, Type: typ, Name: name, Size: size, Elements: elems}
}

// ReturnStmt is `return expr?;`.
type ReturnStmt struct {
	base
	Value Expr // nil for a bare `return;`
}

func NewReturnStmt(value Expr, span token.Span) *ReturnStmt {
	return &ReturnStmt{base: base{span}, Value: value}
}
