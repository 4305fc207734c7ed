package parser

import (
	"strconv"

	"github.com/cwbudde/daedalus-dc/internal/ast"
	"github.com/cwbudde/daedalus-dc/internal/token"
)

// parseInt64 parses a decimal digit run into a 64-bit signed integer. The
// lexer already rejected overflow, so a parse failure here would be an
// internal inconsistency; callers pass only lexer-validated literals.
func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseFloat64(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// level0Ops, level1Ops, ... implement the precedence table of spec.md §3.
// Level 4's `~` is the bitwise-flip unary operator, not a binary one; it
// is handled in parseUnary, so it is deliberately absent here.
var level0Ops = map[token.Type]bool{token.OR_OR: true, token.AND_AND: true}
var level1Ops = map[token.Type]bool{
	token.EQ: true, token.NOT_EQ: true, token.LESS: true,
	token.LESS_EQ: true, token.GREATER: true, token.GREATER_EQ: true,
}
var level2Ops = map[token.Type]bool{token.PLUS: true, token.MINUS: true}
var level3Ops = map[token.Type]bool{token.STAR: true, token.SLASH: true, token.PERCENT: true}
var level4Ops = map[token.Type]bool{token.PIPE: true, token.AMP: true, token.SHL: true, token.SHR: true}

func (p *Parser) parseExpression() (ast.Expr, *ParseError) {
	return p.parseBinary(level0Ops, func() (ast.Expr, *ParseError) {
		return p.parseBinary(level1Ops, func() (ast.Expr, *ParseError) {
			return p.parseBinary(level2Ops, func() (ast.Expr, *ParseError) {
				return p.parseBinary(level3Ops, func() (ast.Expr, *ParseError) {
					return p.parseBinary(level4Ops, p.parseUnary)
				})
			})
		})
	})
}

// parseBinary implements one left-associative precedence level: parse the
// next-higher level, then fold in zero or more `op next-higher` pairs
// whose operator belongs to ops.
func (p *Parser) parseBinary(ops map[token.Type]bool, next func() (ast.Expr, *ParseError)) (ast.Expr, *ParseError) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for ops[p.c.peek().Type] {
		opTok := p.c.advance()
		right, rerr := next()
		if rerr != nil {
			return nil, rerr
		}
		span := token.Span{Start: left.Span().Start, End: right.Span().End}
		left = ast.NewBinaryExpr(opTok.Type, left, right, span)
	}
	return left, nil
}

// unaryOps is the set of valid prefix operators; unary binds tighter than
// the level-4 binary operators (spec.md §3).
var unaryOps = map[token.Type]bool{token.NOT: true, token.TILDE: true, token.PLUS: true, token.MINUS: true}

func (p *Parser) parseUnary() (ast.Expr, *ParseError) {
	if unaryOps[p.c.peek().Type] {
		opTok := p.c.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		span := token.Span{Start: opTok.Span.Start, End: operand.Span().End}
		return ast.NewUnaryExpr(opTok.Type, operand, span), nil
	}
	return p.parseValue()
}

// parseValue dispatches, in order: call, var_access, literal, parenthesized
// expression, per spec.md §4.3. Call vs. var_access is resolved by trying
// a call first and restoring the cursor on failure.
func (p *Parser) parseValue() (ast.Expr, *ParseError) {
	if p.c.check(token.IDENT) && p.c.peekAt(1).Type == token.LPAREN {
		if call, ok := p.tryParseCall(); ok {
			return call, nil
		}
	}
	if p.c.check(token.IDENT) {
		return p.parseVarAccessExpr()
	}
	if tok, ok := p.c.consume(token.INT); ok {
		v, _ := parseInt64(tok.Literal)
		return ast.NewIntegerLit(v, tok.Span), nil
	}
	if tok, ok := p.c.consume(token.FLOAT); ok {
		v, _ := parseFloat64(tok.Literal)
		return ast.NewFloatLit(v, tok.Span), nil
	}
	if tok, ok := p.c.consume(token.STRING); ok {
		return ast.NewStringLit(tok.Literal, tok.Span), nil
	}
	if open, ok := p.c.consume(token.LPAREN); ok {
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, ok := p.c.consume(token.RPAREN); !ok {
			got := p.c.peek()
			return nil, errExpected(token.RPAREN, got, false)
		}
		_ = open
		return inner, nil
	}
	got := p.c.peek()
	return nil, &ParseError{Kind: IllegalExpression, Span: got.Span, Got: got, Recoverable: true}
}

// tryParseCall attempts `IDENTIFIER ( args )`, restoring the cursor and
// returning ok=false if it does not parse cleanly — used so the caller can
// fall back to var_access.
func (p *Parser) tryParseCall() (ast.Expr, bool) {
	mark := p.c.freeze()
	nameTok, _ := p.c.consume(token.IDENT)
	if _, ok := p.c.consume(token.LPAREN); !ok {
		p.c.restore(mark)
		return nil, false
	}
	var args []ast.Expr
	if !p.c.check(token.RPAREN) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				p.c.restore(mark)
				return nil, false
			}
			args = append(args, arg)
			if _, ok := p.c.consume(token.COMMA); !ok {
				break
			}
		}
	}
	closeTok, ok := p.c.consume(token.RPAREN)
	if !ok {
		p.c.restore(mark)
		return nil, false
	}
	span := token.Span{Start: nameTok.Span.Start, End: closeTok.Span.End}
	return ast.NewCallExpr(ast.NewIdent(nameTok.Literal, nameTok.Span), args, span), true
}

// parseVarAccess parses `IDENTIFIER (. IDENTIFIER)? ([ expression ])?`
// and requires the result (used by assignment targets, where a plain
// expression would be the wrong shape).
func (p *Parser) parseVarAccess() (*ast.VarAccess, *ParseError) {
	nameTok, ok := p.c.consume(token.IDENT)
	if !ok {
		got := p.c.peek()
		return nil, errExpected(token.IDENT, got, true)
	}
	name := ast.NewIdent(nameTok.Literal, nameTok.Span)
	var instance *ast.Ident
	if _, ok := p.c.consume(token.DOT); ok {
		memberTok, mok := p.c.consume(token.IDENT)
		if !mok {
			got := p.c.peek()
			return nil, errMissingName("member name after '.'", got)
		}
		// For `inst.member`, name slot holds the member and Instance
		// holds the qualifier, matching spec.md §3's VarAccess shape.
		instance = name
		name = ast.NewIdent(memberTok.Literal, memberTok.Span)
	}
	var index ast.Expr
	endSpan := name.Span()
	if _, ok := p.c.consume(token.LBRACK); ok {
		idx, ierr := p.parseExpression()
		if ierr != nil {
			return nil, ierr
		}
		closeTok, cok := p.c.consume(token.RBRACK)
		if !cok {
			got := p.c.peek()
			return nil, errExpected(token.RBRACK, got, false)
		}
		index = idx
		endSpan = closeTok.Span
	}
	span := token.Span{Start: nameTok.Span.Start, End: endSpan.End}
	return ast.NewVarAccess(name, instance, index, span), nil
}

func (p *Parser) parseVarAccessExpr() (ast.Expr, *ParseError) {
	return p.parseVarAccess()
}
