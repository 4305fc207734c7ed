package parser

import (
	"github.com/cwbudde/daedalus-dc/internal/ast"
	"github.com/cwbudde/daedalus-dc/internal/token"
)

// parseBlock parses `{ statement* }`.
func (p *Parser) parseBlock() ([]ast.Stmt, *ParseError) {
	if _, ok := p.c.consume(token.LBRACE); !ok {
		got := p.c.peek()
		return nil, errExpected(token.LBRACE, got, false)
	}
	var stmts []ast.Stmt
	for !p.c.check(token.RBRACE) && !p.c.atEnd() {
		start := p.c.freeze()
		s, err := p.parseStatement()
		if err != nil {
			p.errors = append(p.errors, err)
			if p.c.freeze() == start {
				p.c.advance()
			}
			p.resyncInBlock()
			continue
		}
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	if _, ok := p.c.consume(token.RBRACE); !ok {
		got := p.c.peek()
		return nil, errExpected(token.RBRACE, got, false)
	}
	return stmts, nil
}

// resyncInBlock skips to the next ';' or '}' so one bad statement does not
// abort the rest of the enclosing body.
func (p *Parser) resyncInBlock() {
	for !p.c.atEnd() {
		if p.c.check(token.RBRACE) {
			return
		}
		if _, ok := p.c.consume(token.SEMICOLON); ok {
			return
		}
		p.c.advance()
	}
}

// parseStatement dispatches on the leading keyword, per spec.md §4.3
// "Statement": if/var/const/return get their own productions; everything
// else tries assignment then falls back to an expression-statement with
// backtracking.
func (p *Parser) parseStatement() (ast.Stmt, *ParseError) {
	switch p.c.peek().Type {
	case token.IF:
		return p.parseIfStmt()
	case token.VAR:
		decl, err := p.parseVarDeclStmt()
		if err != nil {
			return nil, err
		}
		if serr := p.expectSemicolon(); serr != nil {
			p.errors = append(p.errors, serr)
		}
		return decl, nil
	case token.CONST:
		decl, err := p.parseConstDecl()
		if err != nil {
			return nil, err
		}
		if serr := p.expectSemicolon(); serr != nil {
			p.errors = append(p.errors, serr)
		}
		switch d := decl.(type) {
		case *ast.ConstDeclStmt:
			return d, nil
		case *ast.ConstArrayDeclStmt:
			return d, nil
		}
		return nil, &ParseError{Kind: InternalFailure, Span: p.c.peek().Span}
	case token.RETURN:
		return p.parseReturnStmt()
	}

	if s, ok := p.tryParseAssignment(); ok {
		return s, nil
	}
	return p.parseExprStmt()
}

// parseIfStmt parses `if expr block (else if expr block)* (else block)?`,
// normalizing each `else if` into an additional branch (spec.md §3).
func (p *Parser) parseIfStmt() (ast.Stmt, *ParseError) {
	kw, _ := p.c.consume(token.IF)
	cond, err := p.parseExpression()
	if err != nil {
		return nil, &ParseError{Kind: IfClause, Span: err.Span, Recoverable: false}
	}
	body, berr := p.parseBlock()
	if berr != nil {
		return nil, &ParseError{Kind: IfClause, Span: berr.Span, Recoverable: false}
	}
	branches := []ast.IfBranch{{Cond: cond, Body: body}}
	var elseBody []ast.Stmt

	for p.c.check(token.ELSE) {
		elseKw := p.c.advance()
		_ = elseKw
		if p.c.check(token.IF) {
			p.c.advance()
			c2, cerr := p.parseExpression()
			if cerr != nil {
				return nil, &ParseError{Kind: IfClause, Span: cerr.Span, Recoverable: false}
			}
			b2, berr2 := p.parseBlock()
			if berr2 != nil {
				return nil, &ParseError{Kind: IfClause, Span: berr2.Span, Recoverable: false}
			}
			branches = append(branches, ast.IfBranch{Cond: c2, Body: b2})
			continue
		}
		eb, eerr := p.parseBlock()
		if eerr != nil {
			return nil, &ParseError{Kind: ElseClause, Span: eerr.Span, Recoverable: false}
		}
		elseBody = eb
		break
	}

	span := token.Span{Start: kw.Span.Start, End: p.c.previous().Span.End}
	// An if-statement may be followed by an optional ';' (spec.md §4.3);
	// it is not required, so a missing one is never reported.
	p.c.consume(token.SEMICOLON)
	return ast.NewIfStmt(branches, elseBody, span), nil
}

// parseReturnStmt parses `return expr?;`.
func (p *Parser) parseReturnStmt() (ast.Stmt, *ParseError) {
	kw, _ := p.c.consume(token.RETURN)
	var value ast.Expr
	if !p.c.check(token.SEMICOLON) {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		value = v
	}
	span := token.Span{Start: kw.Span.Start, End: p.c.previous().Span.End}
	if serr := p.expectSemicolon(); serr != nil {
		p.errors = append(p.errors, serr)
	}
	return ast.NewReturnStmt(value, span), nil
}

// assignOps is the set of token types valid as an assignment operator
// (spec.md §3).
var assignOps = map[token.Type]bool{
	token.ASSIGN:       true,
	token.PLUS_ASSIGN:  true,
	token.MINUS_ASSIGN: true,
	token.STAR_ASSIGN:  true,
	token.SLASH_ASSIGN: true,
}

// tryParseAssignment attempts `var_access OP expression`, restoring the
// cursor and returning (nil, false) if the shape does not match — the
// call/assignment/expression-statement ambiguity of spec.md §4.3.
func (p *Parser) tryParseAssignment() (ast.Stmt, bool) {
	mark := p.c.freeze()
	target, err := p.parseVarAccess()
	if err != nil {
		p.c.restore(mark)
		return nil, false
	}
	op := p.c.peek().Type
	if !assignOps[op] {
		p.c.restore(mark)
		return nil, false
	}
	p.c.advance()
	value, verr := p.parseExpression()
	if verr != nil {
		p.c.restore(mark)
		return nil, false
	}
	span := token.Span{Start: target.Span().Start, End: p.c.previous().Span.End}
	if serr := p.expectSemicolon(); serr != nil {
		p.errors = append(p.errors, serr)
	}
	return ast.NewAssignStmt(target, op, value, span), true
}

// parseExprStmt parses a bare expression statement (a call, a variable
// access, or any other expression).
func (p *Parser) parseExprStmt() (ast.Stmt, *ParseError) {
	start := p.c.peek().Span
	x, err := p.parseExpression()
	if err != nil {
		return nil, &ParseError{Kind: IllegalStatement, Span: err.Span, Recoverable: true}
	}
	span := token.Span{Start: start.Start, End: p.c.previous().Span.End}
	if serr := p.expectSemicolon(); serr != nil {
		p.errors = append(p.errors, serr)
	}
	return ast.NewExprStmt(x, span), nil
}
