// Package checker implements the type checker of spec.md §4.5: it walks
// every declaration in a symbol collection and produces zero or more
// typed diagnostics, never panicking on parser-well-formed input.
package checker

import (
	"fmt"

	"github.com/cwbudde/daedalus-dc/internal/ast"
	"github.com/cwbudde/daedalus-dc/internal/source"
	"github.com/cwbudde/daedalus-dc/internal/symbols"
	"github.com/cwbudde/daedalus-dc/internal/token"
	"github.com/cwbudde/daedalus-dc/internal/types"
)

// Kind is the closed set of type-check error shapes named in spec.md §4.5
// and §8, plus a handful of resolution-failure kinds the spec leaves
// unnamed but which the checker must still report.
type Kind int

const (
	BinaryExpressionNotInt Kind = iota
	UnaryExpressionNotInt
	ConditionNotInt
	IndexNotInt
	NotAnArray
	ReturnWithoutExpression
	ReturnExpressionInVoidFunction
	TypeMismatch
	WrongTypeInArrayInitialization
	ArrayLengthMismatch
	NonConstantArraySize
	IdentifierIsNotType
	IdentifierIsClassInExpression
	UnresolvedIdentifier
	NotAFunction
	ArgumentCountMismatch
	AssignToConstant
	CanOnlyAssignToString
	CanOnlyAssignToFloat
	CanOnlyAssignToInstance
	InvalidParentType
)

func (k Kind) String() string {
	switch k {
	case BinaryExpressionNotInt:
		return "BinaryExpressionNotInt"
	case UnaryExpressionNotInt:
		return "UnaryExpressionNotInt"
	case ConditionNotInt:
		return "ConditionNotInt"
	case IndexNotInt:
		return "IndexNotInt"
	case NotAnArray:
		return "NotAnArray"
	case ReturnWithoutExpression:
		return "ReturnWithoutExpression"
	case ReturnExpressionInVoidFunction:
		return "ReturnExpressionInVoidFunction"
	case TypeMismatch:
		return "TypeMismatch"
	case WrongTypeInArrayInitialization:
		return "WrongTypeInArrayInitialization"
	case ArrayLengthMismatch:
		return "ArrayLengthMismatch"
	case NonConstantArraySize:
		return "NonConstantArraySize"
	case IdentifierIsNotType:
		return "IdentifierIsNotType"
	case IdentifierIsClassInExpression:
		return "IdentifierIsClassInExpression"
	case UnresolvedIdentifier:
		return "UnresolvedIdentifier"
	case NotAFunction:
		return "NotAFunction"
	case ArgumentCountMismatch:
		return "ArgumentCountMismatch"
	case AssignToConstant:
		return "AssignToConstant"
	case CanOnlyAssignToString:
		return "CanOnlyAssignToString"
	case CanOnlyAssignToFloat:
		return "CanOnlyAssignToFloat"
	case CanOnlyAssignToInstance:
		return "CanOnlyAssignToInstance"
	case InvalidParentType:
		return "InvalidParentType"
	default:
		return "TypecheckError"
	}
}

// Error is a single `{kind, span}` diagnostic; Detail carries a
// human-readable elaboration for terminal rendering.
type Error struct {
	Kind   Kind
	File   source.FileId
	Span   token.Span
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// funcSig is a function's resolved parameter and return types, built once
// up front so calls can resolve forward references (spec.md §9).
type funcSig struct {
	params []types.Type
	ret    types.Type
}

// checker carries the mutable state of one typecheck run.
type checker struct {
	coll        *symbols.Collection
	errs        []*Error
	seen        map[string]struct{}
	funcSigs    map[string]funcSig
	folding     map[string]bool
	currentFile source.FileId
}

func dedupKey(file source.FileId, k Kind, span token.Span) string {
	return fmt.Sprintf("%d:%d:%d:%d", file, k, span.Start, span.End)
}

// report appends err unless an error of the same kind, span, and file was
// already reported (spec.md §4.5 "Error emission"). Errors are attributed
// to the file of the top-level declaration currently being walked, so a
// multi-file run's diagnostics can each be routed back to their origin.
func (c *checker) report(kind Kind, span token.Span, detail string) {
	key := dedupKey(c.currentFile, kind, span)
	if _, dup := c.seen[key]; dup {
		return
	}
	c.seen[key] = struct{}{}
	c.errs = append(c.errs, &Error{Kind: kind, File: c.currentFile, Span: span, Detail: detail})
}

// Typecheck walks every declaration reachable from coll and returns every
// typed diagnostic found, per spec.md §4.5.
func Typecheck(coll *symbols.Collection) []*Error {
	c := &checker{
		coll:     coll,
		seen:     make(map[string]struct{}),
		funcSigs: make(map[string]funcSig),
		folding:  make(map[string]bool),
	}
	c.buildFuncSigs()

	visited := make(map[ast.Decl]bool)
	for _, sym := range coll.All() {
		if sym.Scope != "" {
			continue
		}
		decl, ok := sym.Decl.(ast.Decl)
		if !ok || visited[decl] {
			continue
		}
		visited[decl] = true
		c.currentFile = sym.File
		c.checkDecl(decl)
	}
	return c.errs
}

// buildFuncSigs resolves every global function's parameter and return
// types without emitting diagnostics, so that a call to a not-yet-walked
// function still type-checks correctly (forward references, spec.md §9).
func (c *checker) buildFuncSigs() {
	for _, sym := range c.coll.All() {
		if sym.Kind != symbols.KindFunc || sym.Scope != "" {
			continue
		}
		fn, ok := sym.Decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		sig := funcSig{ret: c.resolveTypeQuiet(fn.ReturnType)}
		for _, p := range fn.Params {
			sig.params = append(sig.params, c.resolveTypeQuiet(p.Type))
		}
		c.funcSigs[symbols.FQNKey(fn.Name.Name)] = sig
	}
}

func (c *checker) checkDecl(d ast.Decl) {
	switch decl := d.(type) {
	case *ast.FuncDecl:
		c.checkFuncDecl(decl)
	case *ast.ClassDecl:
		c.checkClassDecl(decl)
	case *ast.InstanceDecl:
		c.checkInstanceDecl(decl)
	case *ast.PrototypeDecl:
		c.checkPrototypeDecl(decl)
	case *ast.VarDeclStmt:
		c.checkVarDeclStmt("", decl)
	case *ast.ConstDeclStmt:
		c.checkConstDeclStmt("", decl)
	case *ast.ConstArrayDeclStmt:
		c.checkConstArrayDeclStmt("", decl)
	}
}

// resolveType resolves a type identifier to a primitive or a declared
// class, emitting IdentifierIsNotType on failure and returning a plausible
// Void fallback so callers can keep checking (spec.md §4.5 "continues past
// errors").
func (c *checker) resolveType(ident *ast.Ident) types.Type {
	if t, ok := types.LookupPrimitive(ident.Name); ok {
		return t
	}
	sym := c.coll.GetByName(ident.Name)
	if sym != nil && sym.Kind == symbols.KindClass {
		return types.NewInstance(sym.Name)
	}
	c.report(IdentifierIsNotType, ident.Span(), ident.Name)
	return types.TVoid
}

// resolveTypeQuiet is resolveType without diagnostic emission, used while
// pre-building function signatures (the real per-declaration walk is what
// reports IdentifierIsNotType for a bad parameter/return type).
func (c *checker) resolveTypeQuiet(ident *ast.Ident) types.Type {
	if t, ok := types.LookupPrimitive(ident.Name); ok {
		return t
	}
	sym := c.coll.GetByName(ident.Name)
	if sym != nil && sym.Kind == symbols.KindClass {
		return types.NewInstance(sym.Name)
	}
	return types.TVoid
}

// resolveInstanceClass follows an instance/prototype's parent chain up to
// its ultimate class, guarding against cyclic prototype chains.
func (c *checker) resolveInstanceClass(parentName string) (string, bool) {
	name := parentName
	visited := map[string]bool{}
	for {
		key := symbols.FQNKey(name)
		if visited[key] {
			return "", false
		}
		visited[key] = true
		sym := c.coll.GetByName(name)
		if sym == nil {
			return "", false
		}
		switch sym.Kind {
		case symbols.KindClass:
			return sym.Name, true
		case symbols.KindPrototype:
			name = sym.TypeID.Name
		default:
			return "", false
		}
	}
}

// resolveVar looks up an identifier first as a local/param of scope, then
// (when scope is an instance/prototype body) as a member of its anchoring
// class, then globally, per spec.md §4.4's scoping rule. The middle step
// lets an instance body write `health = 100;` without qualifying it as
// `Npc.health`, matching how such bodies read in source.
func (c *checker) resolveVar(scope, name string) *symbols.Symbol {
	if scope != "" {
		if sym := c.coll.GetByName(scope + "." + name); sym != nil {
			return sym
		}
		if class, ok := c.classOfScope(scope); ok {
			if sym := c.coll.GetByName(class + "." + name); sym != nil {
				return sym
			}
		}
	}
	return c.coll.GetByName(name)
}

// classOfScope reports the class anchoring scope, when scope names an
// instance or prototype (directly, or via a prototype chain).
func (c *checker) classOfScope(scope string) (string, bool) {
	sym := c.coll.GetByName(scope)
	if sym == nil {
		return "", false
	}
	switch sym.Kind {
	case symbols.KindClass:
		return sym.Name, true
	case symbols.KindInstance, symbols.KindPrototype:
		if sym.TypeID == nil {
			return "", false
		}
		return c.resolveInstanceClass(sym.TypeID.Name)
	default:
		return "", false
	}
}

// valueType computes the type a reference to sym would have when used as
// an expression value.
func (c *checker) valueType(sym *symbols.Symbol) types.Type {
	switch sym.Kind {
	case symbols.KindVar, symbols.KindParam, symbols.KindClassMember, symbols.KindConst, symbols.KindConstArray:
		if sym.TypeID == nil {
			return types.TVoid
		}
		return c.resolveTypeQuiet(sym.TypeID)
	case symbols.KindInstance, symbols.KindPrototype:
		if sym.TypeID == nil {
			return types.TVoid
		}
		if class, ok := c.resolveInstanceClass(sym.TypeID.Name); ok {
			return types.NewInstance(class)
		}
		return types.TVoid
	case symbols.KindFunc:
		return types.TFunc
	default:
		return types.TVoid
	}
}

func (c *checker) checkFuncDecl(fn *ast.FuncDecl) {
	retType := c.resolveType(fn.ReturnType)
	for _, p := range fn.Params {
		c.checkVarLike(fn.Name.Name, p.Type, p.Name, p.Size)
	}
	c.checkStmts(fn.Name.Name, fn.Body, retType)
}

func (c *checker) checkClassDecl(cl *ast.ClassDecl) {
	for _, m := range cl.Members {
		c.checkVarLike(cl.Name.Name, m.Type, m.Name, m.Size)
	}
}

func (c *checker) checkInstanceDecl(inst *ast.InstanceDecl) {
	c.checkParentKind(inst.Parent)
	for _, name := range inst.Names {
		c.checkStmts(name.Name, inst.Body, types.TVoid)
	}
}

func (c *checker) checkPrototypeDecl(proto *ast.PrototypeDecl) {
	c.checkParentKind(proto.Parent)
	c.checkStmts(proto.Name.Name, proto.Body, types.TVoid)
}

// checkParentKind validates that an instance/prototype's parent resolves
// to a class or another prototype (spec.md §4.5 "Instance / prototype").
func (c *checker) checkParentKind(parent *ast.Ident) {
	sym := c.coll.GetByName(parent.Name)
	if sym == nil || (sym.Kind != symbols.KindClass && sym.Kind != symbols.KindPrototype) {
		c.report(InvalidParentType, parent.Span(), parent.Name)
	}
}

// checkVarLike validates one `TYPE NAME [size]?` slot shared by var
// declarations, function parameters, and class members.
func (c *checker) checkVarLike(scope string, typ, name *ast.Ident, size ast.ArraySize) {
	c.resolveType(typ)
	if size.Expr != nil {
		c.checkArraySize(scope, size.Expr)
	}
	_ = name
}

func (c *checker) checkArraySize(scope string, expr ast.Expr) {
	v, ok := c.foldInt(scope, expr)
	if !ok || v <= 0 {
		c.report(NonConstantArraySize, expr.Span(), "")
	}
}

func (c *checker) checkVarDeclStmt(scope string, decl *ast.VarDeclStmt) {
	for _, spec := range decl.Names {
		c.checkVarLike(scope, decl.Type, spec.Name, spec.Size)
	}
}

func (c *checker) checkConstDeclStmt(scope string, decl *ast.ConstDeclStmt) {
	declType := c.resolveType(decl.Type)
	valType := c.checkExpr(scope, decl.Value)
	if !types.Compatible(declType, valType) {
		c.report(TypeMismatch, decl.Value.Span(), fmt.Sprintf("expected %s, got %s", declType, valType))
	}
}

func (c *checker) checkConstArrayDeclStmt(scope string, decl *ast.ConstArrayDeclStmt) {
	declType := c.resolveType(decl.Type)
	size, ok := c.foldInt(scope, decl.Size)
	if !ok || size <= 0 {
		c.report(NonConstantArraySize, decl.Size.Span(), "")
		size = int64(len(decl.Elements))
	}
	if int64(len(decl.Elements)) != size {
		c.report(ArrayLengthMismatch, decl.Span(), fmt.Sprintf("declared size %d, got %d elements", size, len(decl.Elements)))
	}
	for _, el := range decl.Elements {
		elType := c.checkExpr(scope, el)
		if !types.Compatible(declType, elType) {
			c.report(WrongTypeInArrayInitialization, el.Span(), fmt.Sprintf("expected %s, got %s", declType, elType))
		}
	}
}
