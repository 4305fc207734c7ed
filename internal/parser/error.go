package parser

import (
	"fmt"
	"strings"

	"github.com/cwbudde/daedalus-dc/internal/token"
)

// ErrorKind enumerates the closed set of parse-error shapes named in
// spec.md §4.3.
type ErrorKind int

const (
	InternalFailure ErrorKind = iota
	ReachedEOF
	ExpectedToken
	ExpectedOneOfToken
	ExpectedOneOfCategory
	MissingName
	StatementWithoutSemicolon
	VariableDeclaration
	ClassDeclaration
	IfClause
	ElseClause
	IllegalStatement
	InvalidCall
	IllegalExpression
)

// ParseError is a single parse failure: a kind, the span of the offending
// token(s), and a recoverable bit. A recoverable error lets a caller that
// is trying one of several grammar alternatives fall through to the next;
// a non-recoverable error means the parser has already committed to this
// production (e.g. consumed `func`) and the failure must propagate
// (spec.md §4.3).
type ParseError struct {
	Kind        ErrorKind
	Span        token.Span
	Recoverable bool

	// Detail fields, populated depending on Kind.
	Want  token.Type   // ExpectedToken
	Wants []token.Type // ExpectedOneOfToken
	Names []string     // ExpectedOneOfCategory, MissingName
	Got   token.Token
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case InternalFailure:
		return "internal parser failure"
	case ReachedEOF:
		return "unexpected end of file"
	case ExpectedToken:
		return fmt.Sprintf("expected %s, found %s", e.Want, describeTok(e.Got))
	case ExpectedOneOfToken:
		return fmt.Sprintf("expected one of %s, found %s", joinTypes(e.Wants), describeTok(e.Got))
	case ExpectedOneOfCategory:
		return fmt.Sprintf("expected one of %s, found %s", strings.Join(e.Names, ", "), describeTok(e.Got))
	case MissingName:
		what := "name"
		if len(e.Names) > 0 {
			what = e.Names[0]
		}
		return fmt.Sprintf("missing %s", what)
	case StatementWithoutSemicolon:
		return "statement is missing a terminating ';'"
	case VariableDeclaration:
		return "malformed variable declaration"
	case ClassDeclaration:
		return "malformed class declaration"
	case IfClause:
		return "malformed if-statement"
	case ElseClause:
		return "malformed else-clause"
	case IllegalStatement:
		return "illegal statement"
	case InvalidCall:
		return "invalid call expression"
	case IllegalExpression:
		return "illegal expression"
	default:
		return "parse error"
	}
}

func describeTok(t token.Token) string {
	if t.Type.String() == "UNKNOWN" {
		return "<unknown>"
	}
	if t.Literal != "" {
		return fmt.Sprintf("%q", t.Literal)
	}
	return t.Type.String()
}

func joinTypes(types []token.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

func errExpected(want token.Type, got token.Token, recoverable bool) *ParseError {
	return &ParseError{Kind: ExpectedToken, Span: got.Span, Want: want, Got: got, Recoverable: recoverable}
}

func errExpectedOneOf(wants []token.Type, got token.Token, recoverable bool) *ParseError {
	return &ParseError{Kind: ExpectedOneOfToken, Span: got.Span, Wants: wants, Got: got, Recoverable: recoverable}
}

func errMissingName(what string, got token.Token) *ParseError {
	return &ParseError{Kind: MissingName, Span: got.Span, Names: []string{what}, Got: got, Recoverable: false}
}

// errNoSemicolon points at the zero-width byte position immediately after
// got (the statement's last token), per spec.md §8's end-to-end property,
// rather than at got's own span — the caret in render_terminal.go must
// land after the last token, not under it.
func errNoSemicolon(got token.Token) *ParseError {
	pos := token.Span{Start: got.Span.End, End: got.Span.End}
	return &ParseError{Kind: StatementWithoutSemicolon, Span: pos, Got: got, Recoverable: true}
}
