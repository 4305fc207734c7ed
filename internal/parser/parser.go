// Package parser implements the recursive-descent parser of spec.md §4.3:
// token stream in, declaration list (AST) with spans and structured parse
// errors out. Backtracking is bounded to the documented ambiguity points
// (call vs. variable access; statement alternatives; the var-list
// continuation heuristic).
package parser

import (
	"github.com/cwbudde/daedalus-dc/internal/ast"
	"github.com/cwbudde/daedalus-dc/internal/token"
)

// Parser holds the cursor and the accumulated diagnostics for one file's
// token stream. COMMENT tokens are filtered out by New, once, at
// construction, rather than on every peek (spec.md §4.2: "Comments ...
// are filtered out by the Parser before processing").
type Parser struct {
	c       *cursor
	errors  []*ParseError
	tracing bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithTracing sets the parser's tracing flag. No production reads the
// flag, so the parser writes no trace output whether it is set or not.
func WithTracing(trace bool) Option {
	return func(p *Parser) { p.tracing = trace }
}

// New constructs a Parser over toks, filtering out any COMMENT tokens the
// lexer may have preserved.
func New(toks []token.Token, opts ...Option) *Parser {
	filtered := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.Type != token.COMMENT {
			filtered = append(filtered, t)
		}
	}
	p := &Parser{c: newCursor(filtered)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse runs the full grammar of spec.md §4.3 (Program -> global
// declaration list) and returns every declaration it could recover,
// alongside every error encountered. A single error never masks the rest
// of the file: the parser resynchronizes at the next ';' or declaration
// keyword after any error, per the "top level" recovery rule.
func Parse(toks []token.Token, opts ...Option) ([]ast.Decl, []*ParseError) {
	p := New(toks, opts...)
	var decls []ast.Decl
	for !p.c.atEnd() {
		start := p.c.freeze()
		d, err := p.parseGlobalDeclaration()
		if err != nil {
			p.errors = append(p.errors, err)
			if p.c.freeze() == start {
				// No progress was made at all; force one token forward so
				// resynchronization always terminates.
				p.c.advance()
			}
			p.resyncToDeclarationBoundary()
			continue
		}
		if d != nil {
			decls = append(decls, d)
		}
	}
	return decls, p.errors
}

// declKeywords is the set of leading tokens that start a global
// declaration, used both for dispatch and for resynchronization.
var declKeywords = []token.Type{token.FUNC, token.VAR, token.CONST, token.INSTANCE, token.PROTOTYPE, token.CLASS}

func isDeclKeyword(t token.Type) bool {
	for _, k := range declKeywords {
		if k == t {
			return true
		}
	}
	return false
}

// resyncToDeclarationBoundary advances past tokens until the next ';' (and
// consumes it) or until a declaration keyword or EOF is reached, so a
// single malformed declaration does not swallow the rest of the file
// (spec.md §4.3 "Error policy").
func (p *Parser) resyncToDeclarationBoundary() {
	for !p.c.atEnd() {
		if p.c.check(token.SEMICOLON) {
			p.c.advance()
			return
		}
		if isDeclKeyword(p.c.peek().Type) {
			return
		}
		p.c.advance()
	}
}

// parseGlobalDeclaration dispatches on the leading keyword to one of the
// six declaration forms, per spec.md §4.3 "Global declaration".
func (p *Parser) parseGlobalDeclaration() (ast.Decl, *ParseError) {
	switch p.c.peek().Type {
	case token.FUNC:
		return p.parseFuncDecl()
	case token.VAR:
		return p.parseTopLevelVarDecl()
	case token.CONST:
		return p.parseTopLevelConstDecl()
	case token.INSTANCE:
		return p.parseInstanceDecl()
	case token.PROTOTYPE:
		return p.parsePrototypeDecl()
	case token.CLASS:
		return p.parseClassDecl()
	default:
		got := p.c.peek()
		return nil, errExpectedOneOf(declKeywords, got, true)
	}
}

// expectSemicolon consumes a trailing ';', emitting the specialized
// StatementWithoutSemicolon error (with its own diagnostic rendering) when
// missing — per spec.md §4.3, "the most common parse error".
func (p *Parser) expectSemicolon() *ParseError {
	if _, ok := p.c.consume(token.SEMICOLON); ok {
		return nil
	}
	return errNoSemicolon(p.c.previous())
}
