package parser

import (
	"github.com/cwbudde/daedalus-dc/internal/ast"
	"github.com/cwbudde/daedalus-dc/internal/token"
)

// reservedAtIdentBoundary is the set of keyword tokens that are NOT legal
// identifiers, per spec.md §3: "`if` and `var` are reserved at identifier
// boundaries (other keywords are legal identifiers — a quirk preserved
// from the source language)". The original's own
// parsers/identifier.rs::is_keyword reserves exactly these two bytes.
var reservedAtIdentBoundary = map[token.Type]bool{
	token.IF:  true,
	token.VAR: true,
}

// parseIdent consumes an IDENT token or, per the quirk above, any keyword
// token other than `if`/`var` used where a name/type/member/parent
// identifier is expected. The literal text (not the keyword spelling) is
// what matters here; the token's original casing is preserved.
func (p *Parser) parseIdent() (*ast.Ident, *ParseError) {
	tok := p.c.peek()
	if tok.Type == token.IDENT || (tok.Type.IsKeyword() && !reservedAtIdentBoundary[tok.Type]) {
		p.c.advance()
		return ast.NewIdent(tok.Literal, tok.Span), nil
	}
	return nil, errExpected(token.IDENT, tok, false)
}

// parseType parses a type identifier. Primitive vs. class resolution
// happens in the checker (spec.md §4.5); the parser only needs a name.
func (p *Parser) parseType() (*ast.Ident, *ParseError) {
	return p.parseIdent()
}

// parseArraySize parses `[ INTEGER | IDENTIFIER ]`, per spec.md §4.3.
// Resolution to a concrete positive integer is a type-checker concern.
func (p *Parser) parseArraySize() (ast.ArraySize, *ParseError) {
	if _, ok := p.c.consume(token.LBRACK); !ok {
		return ast.ArraySize{}, nil
	}
	var expr ast.Expr
	if tok, ok := p.c.consume(token.INT); ok {
		expr = parseIntLit(tok)
	} else if tok, ok := p.c.consume(token.IDENT); ok {
		expr = ast.NewVarAccess(ast.NewIdent(tok.Literal, tok.Span), nil, nil, tok.Span)
	} else {
		got := p.c.peek()
		return ast.ArraySize{}, &ParseError{Kind: ExpectedOneOfCategory, Span: got.Span, Names: []string{"integer", "identifier"}, Got: got, Recoverable: false}
	}
	if _, ok := p.c.consume(token.RBRACK); !ok {
		got := p.c.peek()
		return ast.ArraySize{}, errExpected(token.RBRACK, got, false)
	}
	return ast.ArraySize{Expr: expr}, nil
}

// parseVarDeclStmt parses a `var` declaration list: `var TYPE NAME [size]?
// (, (var)? NAME [size]?)*`. The continuation heuristic of spec.md §4.3
// applies: a comma-separated continuation may repeat the `var` keyword or
// omit it, and either way the next NAME takes the type given after the
// first `var`.
func (p *Parser) parseVarDeclStmt() (*ast.VarDeclStmt, *ParseError) {
	kw, _ := p.c.consume(token.VAR)
	typ, err := p.parseType()
	if err != nil {
		return nil, &ParseError{Kind: VariableDeclaration, Span: err.Span, Recoverable: false}
	}
	var specs []ast.VarSpec
	spec, err := p.parseOneVarSpec()
	if err != nil {
		return nil, &ParseError{Kind: VariableDeclaration, Span: err.Span, Recoverable: false}
	}
	specs = append(specs, spec)

	for {
		mark := p.c.freeze()
		if _, ok := p.c.consume(token.COMMA); !ok {
			break
		}
		// An optional repeated `var` keeps the list's type. Either way
		// the next NAME belongs to this VarDeclStmt, not a sibling
		// declaration — so a bare `var` at this point is consumed here,
		// never left for the caller to reinterpret as a new statement.
		p.c.consume(token.VAR)
		s, serr := p.parseOneVarSpec()
		if serr != nil {
			p.c.restore(mark)
			break
		}
		specs = append(specs, s)
	}

	span := token.Span{Start: kw.Span.Start, End: p.c.previous().Span.End}
	return ast.NewVarDeclStmt(typ, specs, span), nil
}

func (p *Parser) parseOneVarSpec() (ast.VarSpec, *ParseError) {
	name, err := p.parseIdent()
	if err != nil {
		return ast.VarSpec{}, err
	}
	size, serr := p.parseArraySize()
	if serr != nil {
		return ast.VarSpec{}, serr
	}
	return ast.VarSpec{Name: name, Size: size}, nil
}

// parseTopLevelVarDecl parses a global `var ...;` declaration.
func (p *Parser) parseTopLevelVarDecl() (ast.Decl, *ParseError) {
	decl, err := p.parseVarDeclStmt()
	if err != nil {
		return nil, err
	}
	if serr := p.expectSemicolon(); serr != nil {
		p.errors = append(p.errors, serr)
	}
	return decl, nil
}

// parseConstDecl parses `const TYPE NAME` then either a scalar initializer
// or an array initializer, per spec.md §3/§4.3.
func (p *Parser) parseConstDecl() (ast.Decl, *ParseError) {
	kw, _ := p.c.consume(token.CONST)
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	if _, ok := p.c.consume(token.LBRACK); ok {
		var size ast.Expr
		if tok, ok := p.c.consume(token.INT); ok {
			size = parseIntLit(tok)
		} else if tok, ok := p.c.consume(token.IDENT); ok {
			size = ast.NewVarAccess(ast.NewIdent(tok.Literal, tok.Span), nil, nil, tok.Span)
		} else {
			got := p.c.peek()
			return nil, &ParseError{Kind: ExpectedOneOfCategory, Span: got.Span, Names: []string{"integer", "identifier"}, Got: got}
		}
		if _, ok := p.c.consume(token.RBRACK); !ok {
			got := p.c.peek()
			return nil, errExpected(token.RBRACK, got, false)
		}
		if _, ok := p.c.consume(token.ASSIGN); !ok {
			got := p.c.peek()
			return nil, errExpected(token.ASSIGN, got, false)
		}
		if _, ok := p.c.consume(token.LBRACE); !ok {
			got := p.c.peek()
			return nil, errExpected(token.LBRACE, got, false)
		}
		var elems []ast.Expr
		if !p.c.check(token.RBRACE) {
			for {
				e, eerr := p.parseExpression()
				if eerr != nil {
					return nil, eerr
				}
				elems = append(elems, e)
				if _, ok := p.c.consume(token.COMMA); !ok {
					break
				}
			}
		}
		closeTok, ok := p.c.consume(token.RBRACE)
		if !ok {
			got := p.c.peek()
			return nil, errExpected(token.RBRACE, got, false)
		}
		span := token.Span{Start: kw.Span.Start, End: closeTok.Span.End}
		return ast.NewConstArrayDeclStmt(typ, name, size, elems, span), nil
	}

	if _, ok := p.c.consume(token.ASSIGN); !ok {
		got := p.c.peek()
		return nil, errExpected(token.ASSIGN, got, false)
	}
	value, verr := p.parseExpression()
	if verr != nil {
		return nil, verr
	}
	span := token.Span{Start: kw.Span.Start, End: p.c.previous().Span.End}
	return ast.NewConstDeclStmt(typ, name, value, span), nil
}

func (p *Parser) parseTopLevelConstDecl() (ast.Decl, *ParseError) {
	decl, err := p.parseConstDecl()
	if err != nil {
		return nil, err
	}
	if serr := p.expectSemicolon(); serr != nil {
		p.errors = append(p.errors, serr)
	}
	return decl, nil
}

// parseFuncDecl parses `func TYPE NAME ( params ) { statements }`.
func (p *Parser) parseFuncDecl() (ast.Decl, *ParseError) {
	kw, _ := p.c.consume(token.FUNC)
	retType, err := p.parseType()
	if err != nil {
		return nil, errMissingName("function return type", p.c.peek())
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, errMissingName("function name", p.c.peek())
	}
	if _, ok := p.c.consume(token.LPAREN); !ok {
		got := p.c.peek()
		return nil, errExpected(token.LPAREN, got, false)
	}
	var params []ast.Param
	if !p.c.check(token.RPAREN) {
		for {
			if _, ok := p.c.consume(token.VAR); !ok {
				got := p.c.peek()
				return nil, errExpected(token.VAR, got, false)
			}
			pt, perr := p.parseType()
			if perr != nil {
				return nil, perr
			}
			pn, nerr := p.parseIdent()
			if nerr != nil {
				return nil, nerr
			}
			params = append(params, ast.Param{Type: pt, Name: pn})
			if _, ok := p.c.consume(token.COMMA); !ok {
				break
			}
		}
	}
	if _, ok := p.c.consume(token.RPAREN); !ok {
		got := p.c.peek()
		return nil, errExpected(token.RPAREN, got, false)
	}
	body, berr := p.parseBlock()
	if berr != nil {
		return nil, berr
	}
	span := token.Span{Start: kw.Span.Start, End: p.c.previous().Span.End}
	if serr := p.expectSemicolon(); serr != nil {
		p.errors = append(p.errors, serr)
	}
	return ast.NewFuncDecl(retType, name, params, body, span), nil
}

// parseClassDecl parses `class NAME { (var-decl ;)* }`.
func (p *Parser) parseClassDecl() (ast.Decl, *ParseError) {
	kw, _ := p.c.consume(token.CLASS)
	name, err := p.parseIdent()
	if err != nil {
		return nil, &ParseError{Kind: ClassDeclaration, Span: err.Span, Recoverable: false}
	}
	if _, ok := p.c.consume(token.LBRACE); !ok {
		got := p.c.peek()
		return nil, &ParseError{Kind: ClassDeclaration, Span: got.Span, Recoverable: false}
	}
	var members []*ast.ClassMember
	for !p.c.check(token.RBRACE) && !p.c.atEnd() {
		mkw, _ := p.c.consume(token.VAR)
		mt, terr := p.parseType()
		if terr != nil {
			return nil, &ParseError{Kind: ClassDeclaration, Span: terr.Span, Recoverable: false}
		}
		mn, nerr := p.parseIdent()
		if nerr != nil {
			return nil, &ParseError{Kind: ClassDeclaration, Span: nerr.Span, Recoverable: false}
		}
		size, serr := p.parseArraySize()
		if serr != nil {
			return nil, &ParseError{Kind: ClassDeclaration, Span: serr.Span, Recoverable: false}
		}
		mspan := token.Span{Start: mkw.Span.Start, End: p.c.previous().Span.End}
		if semErr := p.expectSemicolon(); semErr != nil {
			p.errors = append(p.errors, semErr)
		}
		members = append(members, ast.NewClassMember(mt, mn, size, mspan))
	}
	closeTok, ok := p.c.consume(token.RBRACE)
	if !ok {
		got := p.c.peek()
		return nil, &ParseError{Kind: ClassDeclaration, Span: got.Span, Recoverable: false}
	}
	span := token.Span{Start: kw.Span.Start, End: closeTok.Span.End}
	if serr := p.expectSemicolon(); serr != nil {
		p.errors = append(p.errors, serr)
	}
	return ast.NewClassDecl(name, members, span), nil
}

// parseInstanceDecl parses `instance NAME (, NAME)* ( PARENT ) block?`.
func (p *Parser) parseInstanceDecl() (ast.Decl, *ParseError) {
	kw, _ := p.c.consume(token.INSTANCE)
	var names []*ast.Ident
	first, err := p.parseIdent()
	if err != nil {
		return nil, errMissingName("instance name", p.c.peek())
	}
	names = append(names, first)
	for {
		if _, ok := p.c.consume(token.COMMA); !ok {
			break
		}
		n, nerr := p.parseIdent()
		if nerr != nil {
			return nil, errMissingName("instance name", p.c.peek())
		}
		names = append(names, n)
	}
	if _, ok := p.c.consume(token.LPAREN); !ok {
		got := p.c.peek()
		return nil, errExpected(token.LPAREN, got, false)
	}
	parent, perr := p.parseIdent()
	if perr != nil {
		return nil, errMissingName("instance parent", p.c.peek())
	}
	if _, ok := p.c.consume(token.RPAREN); !ok {
		got := p.c.peek()
		return nil, errExpected(token.RPAREN, got, false)
	}
	var body []ast.Stmt
	if p.c.check(token.LBRACE) {
		b, berr := p.parseBlock()
		if berr != nil {
			return nil, berr
		}
		body = b
	}
	span := token.Span{Start: kw.Span.Start, End: p.c.previous().Span.End}
	if serr := p.expectSemicolon(); serr != nil {
		p.errors = append(p.errors, serr)
	}
	return ast.NewInstanceDecl(names, parent, body, span), nil
}

// parsePrototypeDecl parses `prototype NAME ( PARENT ) block` — unlike
// instance, the body is mandatory (spec.md §3).
func (p *Parser) parsePrototypeDecl() (ast.Decl, *ParseError) {
	kw, _ := p.c.consume(token.PROTOTYPE)
	name, err := p.parseIdent()
	if err != nil {
		return nil, errMissingName("prototype name", p.c.peek())
	}
	if _, ok := p.c.consume(token.LPAREN); !ok {
		got := p.c.peek()
		return nil, errExpected(token.LPAREN, got, false)
	}
	parent, perr := p.parseIdent()
	if perr != nil {
		return nil, errMissingName("prototype parent", p.c.peek())
	}
	if _, ok := p.c.consume(token.RPAREN); !ok {
		got := p.c.peek()
		return nil, errExpected(token.RPAREN, got, false)
	}
	body, berr := p.parseBlock()
	if berr != nil {
		return nil, berr
	}
	span := token.Span{Start: kw.Span.Start, End: p.c.previous().Span.End}
	if serr := p.expectSemicolon(); serr != nil {
		p.errors = append(p.errors, serr)
	}
	return ast.NewPrototypeDecl(name, parent, body, span), nil
}

func parseIntLit(tok token.Token) *ast.IntegerLit {
	v, _ := parseInt64(tok.Literal)
	return ast.NewIntegerLit(v, tok.Span)
}
