package checker

import (
	"github.com/cwbudde/daedalus-dc/internal/ast"
	"github.com/cwbudde/daedalus-dc/internal/symbols"
	"github.com/cwbudde/daedalus-dc/internal/token"
)

// foldInt implements the constant evaluator of spec.md §4.5 "Constant
// folding": literals fold to themselves, unary/binary fold over foldable
// int operands using the integer semantics of spec.md §3, and a variable
// access folds iff it names a previously declared scalar integer
// constant. Used for array-size resolution, including sizes that name a
// constant (whose initializer is folded on demand); a const declaration's
// own initializer is type-checked but not folded.
func (c *checker) foldInt(scope string, e ast.Expr) (int64, bool) {
	switch expr := e.(type) {
	case *ast.IntegerLit:
		return expr.Value, true
	case *ast.UnaryExpr:
		v, ok := c.foldInt(scope, expr.Operand)
		if !ok {
			return 0, false
		}
		switch expr.Op {
		case token.MINUS:
			return -v, true
		case token.PLUS:
			return v, true
		case token.NOT:
			if v == 0 {
				return 1, true
			}
			return 0, true
		case token.TILDE:
			return ^v, true
		}
		return 0, false
	case *ast.BinaryExpr:
		l, lok := c.foldInt(scope, expr.Left)
		r, rok := c.foldInt(scope, expr.Right)
		if !lok || !rok {
			return 0, false
		}
		return foldBinary(expr.Op, l, r)
	case *ast.VarAccess:
		if expr.Instance != nil || expr.Index != nil {
			return 0, false
		}
		return c.foldConstRef(scope, expr.Name.Name)
	default:
		return 0, false
	}
}

// foldConstRef resolves name to a previously declared scalar integer
// constant and folds its initializer, guarding against cyclic const
// references.
func (c *checker) foldConstRef(scope, name string) (int64, bool) {
	sym := c.resolveVar(scope, name)
	if sym == nil || sym.Kind != symbols.KindConst {
		return 0, false
	}
	constDecl, ok := sym.Decl.(*ast.ConstDeclStmt)
	if !ok {
		return 0, false
	}
	key := symbols.FQNKey(sym.FQN)
	if c.folding[key] {
		return 0, false
	}
	c.folding[key] = true
	defer delete(c.folding, key)
	return c.foldInt(sym.Scope, constDecl.Value)
}

func foldBinary(op token.Type, l, r int64) (int64, bool) {
	switch op {
	case token.PLUS:
		return l + r, true
	case token.MINUS:
		return l - r, true
	case token.STAR:
		return l * r, true
	case token.SLASH:
		if r == 0 {
			return 0, false
		}
		return l / r, true
	case token.PERCENT:
		if r == 0 {
			return 0, false
		}
		return l % r, true
	case token.PIPE:
		return l | r, true
	case token.AMP:
		return l & r, true
	case token.SHL:
		return l << uint64(r), true
	case token.SHR:
		return l >> uint64(r), true
	case token.OR_OR:
		return boolToInt(l != 0 || r != 0), true
	case token.AND_AND:
		return boolToInt(l != 0 && r != 0), true
	case token.EQ:
		return boolToInt(l == r), true
	case token.NOT_EQ:
		return boolToInt(l != r), true
	case token.LESS:
		return boolToInt(l < r), true
	case token.LESS_EQ:
		return boolToInt(l <= r), true
	case token.GREATER:
		return boolToInt(l > r), true
	case token.GREATER_EQ:
		return boolToInt(l >= r), true
	default:
		return 0, false
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
