package checker

import (
	"fmt"

	"github.com/cwbudde/daedalus-dc/internal/ast"
	"github.com/cwbudde/daedalus-dc/internal/symbols"
	"github.com/cwbudde/daedalus-dc/internal/types"
)

// checkExpr types an expression in the given scope, reporting diagnostics
// along the way and always returning a plausible type so the caller can
// keep checking (spec.md §4.5 "continues past errors").
func (c *checker) checkExpr(scope string, e ast.Expr) types.Type {
	switch expr := e.(type) {
	case *ast.IntegerLit:
		return types.TInt
	case *ast.FloatLit:
		return types.TFloat
	case *ast.StringLit:
		return types.TString
	case *ast.UnaryExpr:
		return c.checkUnary(scope, expr)
	case *ast.BinaryExpr:
		return c.checkBinary(scope, expr)
	case *ast.CallExpr:
		return c.checkCall(scope, expr)
	case *ast.VarAccess:
		return c.checkVarAccess(scope, expr)
	default:
		return types.TVoid
	}
}

func (c *checker) checkUnary(scope string, e *ast.UnaryExpr) types.Type {
	operand := c.checkExpr(scope, e.Operand)
	if operand.Kind != types.Int {
		c.report(UnaryExpressionNotInt, e.Operand.Span(), fmt.Sprintf("operand has type %s", operand))
	}
	return types.TInt
}

func (c *checker) checkBinary(scope string, e *ast.BinaryExpr) types.Type {
	left := c.checkExpr(scope, e.Left)
	right := c.checkExpr(scope, e.Right)
	if left.Kind != types.Int {
		c.report(BinaryExpressionNotInt, e.Left.Span(), fmt.Sprintf("left operand has type %s", left))
	}
	if right.Kind != types.Int {
		c.report(BinaryExpressionNotInt, e.Right.Span(), fmt.Sprintf("right operand has type %s", right))
	}
	return types.TInt
}

func (c *checker) checkCall(scope string, e *ast.CallExpr) types.Type {
	sig, ok := c.funcSigs[symbols.FQNKey(e.Callee.Name)]
	if !ok {
		sym := c.coll.GetByName(e.Callee.Name)
		if sym == nil {
			c.report(UnresolvedIdentifier, e.Callee.Span(), e.Callee.Name)
		} else {
			c.report(NotAFunction, e.Callee.Span(), e.Callee.Name)
		}
		for _, a := range e.Args {
			c.checkExpr(scope, a)
		}
		return types.TVoid
	}
	if len(e.Args) != len(sig.params) {
		c.report(ArgumentCountMismatch, e.Span(), fmt.Sprintf("%s expects %d argument(s), got %d", e.Callee.Name, len(sig.params), len(e.Args)))
	}
	for i, a := range e.Args {
		argType := c.checkExpr(scope, a)
		if i < len(sig.params) && !types.Compatible(argType, sig.params[i]) {
			c.report(TypeMismatch, a.Span(), fmt.Sprintf("argument %d: expected %s, got %s", i+1, sig.params[i], argType))
		}
	}
	return sig.ret
}

// checkVarAccess resolves `name` or `instance.name` plus an optional
// `[index]`, per spec.md §4.5 "Variable access" / "Index".
func (c *checker) checkVarAccess(scope string, e *ast.VarAccess) types.Type {
	var sym *symbols.Symbol
	if e.Instance != nil {
		sym = c.resolveMember(scope, e.Instance, e.Name)
	} else {
		sym = c.resolveBareName(scope, e.Name)
	}
	if sym == nil {
		return types.TVoid
	}
	valType := c.valueType(sym)
	if e.Index != nil {
		if sym.Size.Expr == nil {
			c.report(NotAnArray, e.Name.Span(), e.Name.Name)
		}
		if idxType := c.checkExpr(scope, e.Index); idxType.Kind != types.Int {
			c.report(IndexNotInt, e.Index.Span(), fmt.Sprintf("index has type %s", idxType))
		}
	}
	return valType
}

// resolveBareName resolves a plain identifier, rejecting a bare class
// reference used as a value (spec.md §4.5 "IdentifierIsClassInExpression").
func (c *checker) resolveBareName(scope string, name *ast.Ident) *symbols.Symbol {
	sym := c.resolveVar(scope, name.Name)
	if sym == nil {
		c.report(UnresolvedIdentifier, name.Span(), name.Name)
		return nil
	}
	if sym.Kind == symbols.KindClass {
		c.report(IdentifierIsClassInExpression, name.Span(), name.Name)
		return nil
	}
	return sym
}

// resolveMember resolves `instQualifier.memberName`: the qualifier must
// resolve (in scope) to an instance-typed value or a class identifier;
// the member must be declared on that class.
func (c *checker) resolveMember(scope string, instQualifier, member *ast.Ident) *symbols.Symbol {
	qualSym := c.resolveVar(scope, instQualifier.Name)
	if qualSym == nil {
		c.report(UnresolvedIdentifier, instQualifier.Span(), instQualifier.Name)
		return nil
	}
	var class string
	switch qualSym.Kind {
	case symbols.KindClass:
		class = qualSym.Name
	default:
		t := c.valueType(qualSym)
		if t.Kind != types.Instance {
			c.report(IdentifierIsClassInExpression, instQualifier.Span(), instQualifier.Name)
			return nil
		}
		class = t.Class
	}
	memberSym := c.coll.GetByName(class + "." + member.Name)
	if memberSym == nil || memberSym.Kind != symbols.KindClassMember {
		c.report(UnresolvedIdentifier, member.Span(), class+"."+member.Name)
		return nil
	}
	return memberSym
}
