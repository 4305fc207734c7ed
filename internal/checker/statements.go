package checker

import (
	"fmt"

	"github.com/cwbudde/daedalus-dc/internal/ast"
	"github.com/cwbudde/daedalus-dc/internal/symbols"
	"github.com/cwbudde/daedalus-dc/internal/token"
	"github.com/cwbudde/daedalus-dc/internal/types"
)

// checkStmts type-checks a statement list in scope, with expectedReturn
// threaded through for `return` validation (spec.md §4.5 "Statement
// typing").
func (c *checker) checkStmts(scope string, stmts []ast.Stmt, expectedReturn types.Type) {
	for _, s := range stmts {
		c.checkStmt(scope, s, expectedReturn)
	}
}

func (c *checker) checkStmt(scope string, s ast.Stmt, expectedReturn types.Type) {
	switch stmt := s.(type) {
	case *ast.ExprStmt:
		c.checkExpr(scope, stmt.X)
	case *ast.AssignStmt:
		c.checkAssignStmt(scope, stmt)
	case *ast.IfStmt:
		c.checkIfStmt(scope, stmt, expectedReturn)
	case *ast.ReturnStmt:
		c.checkReturnStmt(scope, stmt, expectedReturn)
	case *ast.VarDeclStmt:
		c.checkVarDeclStmt(scope, stmt)
	case *ast.ConstDeclStmt:
		c.checkConstDeclStmt(scope, stmt)
	case *ast.ConstArrayDeclStmt:
		c.checkConstArrayDeclStmt(scope, stmt)
	}
}

func (c *checker) checkIfStmt(scope string, stmt *ast.IfStmt, expectedReturn types.Type) {
	for _, branch := range stmt.Branches {
		condType := c.checkExpr(scope, branch.Cond)
		if condType.Kind != types.Int {
			c.report(ConditionNotInt, branch.Cond.Span(), fmt.Sprintf("condition has type %s", condType))
		}
		c.checkStmts(scope, branch.Body, expectedReturn)
	}
	c.checkStmts(scope, stmt.Else, expectedReturn)
}

func (c *checker) checkReturnStmt(scope string, stmt *ast.ReturnStmt, expectedReturn types.Type) {
	if stmt.Value == nil {
		if expectedReturn.Kind != types.Void {
			c.report(ReturnWithoutExpression, stmt.Span(), "")
		}
		return
	}
	valType := c.checkExpr(scope, stmt.Value)
	if expectedReturn.Kind == types.Void {
		c.report(ReturnExpressionInVoidFunction, stmt.Value.Span(), "")
		return
	}
	if !types.Compatible(valType, expectedReturn) {
		c.report(TypeMismatch, stmt.Value.Span(), fmt.Sprintf("expected %s, got %s", expectedReturn, valType))
	}
}

// checkAssignStmt resolves the target, enforces the constant/compound
// restrictions of spec.md §4.5 "Assignment", and types the right side.
func (c *checker) checkAssignStmt(scope string, stmt *ast.AssignStmt) {
	target := stmt.Target
	var sym *symbols.Symbol
	if target.Instance != nil {
		sym = c.resolveMember(scope, target.Instance, target.Name)
	} else {
		sym = c.resolveBareName(scope, target.Name)
	}
	valType := c.checkExpr(scope, stmt.Value)
	if target.Index != nil {
		if idxType := c.checkExpr(scope, target.Index); idxType.Kind != types.Int {
			c.report(IndexNotInt, target.Index.Span(), fmt.Sprintf("index has type %s", idxType))
		}
	}
	if sym == nil {
		return
	}
	if sym.Kind == symbols.KindConst || sym.Kind == symbols.KindConstArray {
		c.report(AssignToConstant, target.Span(), target.Name.Name)
	}
	targetType := c.valueType(sym)

	if stmt.Op == token.ASSIGN {
		if !types.Compatible(valType, targetType) {
			c.report(TypeMismatch, stmt.Value.Span(), fmt.Sprintf("expected %s, got %s", targetType, valType))
		}
		return
	}

	switch targetType.Kind {
	case types.Int:
		if !types.Compatible(valType, types.TInt) {
			c.report(TypeMismatch, stmt.Value.Span(), fmt.Sprintf("expected int, got %s", valType))
		}
	case types.String:
		c.report(CanOnlyAssignToString, target.Span(), "")
	case types.Float:
		c.report(CanOnlyAssignToFloat, target.Span(), "")
	case types.Instance:
		c.report(CanOnlyAssignToInstance, target.Span(), "")
	default:
		c.report(TypeMismatch, target.Span(), fmt.Sprintf("compound assignment on %s", targetType))
	}
}
