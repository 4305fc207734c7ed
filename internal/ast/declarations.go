package ast

import "github.com/cwbudde/daedalus-dc/internal/token"

func (*FuncDecl) declNode()      {}
func (*ClassDecl) declNode()     {}
func (*InstanceDecl) declNode()  {}
func (*PrototypeDecl) declNode() {}

// VarDeclStmt, ConstDeclStmt, and ConstArrayDeclStmt (statements.go) double
// as top-level declarations: spec.md §3's "Declaration (sum type)" lists
// Var/Const/ConstArray as declaration variants with the same shape as
// their statement-level counterparts, so the same node type serves both
// roles rather than being duplicated.
func (*VarDeclStmt) declNode()        {}
func (*ConstDeclStmt) declNode()      {}
func (*ConstArrayDeclStmt) declNode() {}

// Param is a single function parameter: a one-name var declaration.
type Param struct {
	Type *Ident
	Name *Ident
	Size ArraySize
}

// FuncDecl is `func TYPE NAME ( params ) { body }` (spec.md §3).
type FuncDecl struct {
	base
	ReturnType *Ident
	Name       *Ident
	Params     []Param
	Body       []Stmt
}

func NewFuncDecl(returnType, name *Ident, params []Param, body []Stmt, span token.Span) *FuncDecl {
	return &FuncDecl{base: base{span}, ReturnType: returnType, Name: name, Params: params, Body: body}
}

// ClassMember is a single `var TYPE NAME [size]? ;` line inside a class
// body.
type ClassMember struct {
	base
	Type *Ident
	Name *Ident
	Size ArraySize
}

func NewClassMember(typ, name *Ident, size ArraySize, span token.Span) *ClassMember {
	return &ClassMember{base: base{span}, Type: typ, Name: name, Size: size}
}

// ClassDecl is `class NAME { (var-decl ;)* }`; members are scoped under
// Name for qualified `class.member` lookup (spec.md §3).
type ClassDecl struct {
	base
	Name    *Ident
	Members []*ClassMember
}

func NewClassDecl(name *Ident, members []*ClassMember, span token.Span) *ClassDecl {
	return &ClassDecl{base: base{span}, Name: name, Members: members}
}

// InstanceDecl is `instance NAME (, NAME)* ( PARENT ) block?`; one
// `instance` keyword can declare multiple names sharing a parent
// (spec.md §3).
type InstanceDecl struct {
	base
	Names  []*Ident
	Parent *Ident
	Body   []Stmt // may be nil/empty
}

func NewInstanceDecl(names []*Ident, parent *Ident, body []Stmt, span token.Span) *InstanceDecl {
	return &InstanceDecl{base: base{span}, Names: names, Parent: parent, Body: body}
}

// PrototypeDecl is `prototype NAME ( PARENT ) block`; unlike InstanceDecl
// the body is mandatory (spec.md §3), though it may be an empty block.
type PrototypeDecl struct {
	base
	Name   *Ident
	Parent *Ident
	Body   []Stmt
}

func NewPrototypeDecl(name, parent *Ident, body []Stmt, span token.Span) *PrototypeDecl {
	return &PrototypeDecl{base: base{span}, Name: name, Parent: parent, Body: body}
}
