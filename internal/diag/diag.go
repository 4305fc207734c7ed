// Package diag defines the shared diagnostic record that flows out of the
// parser and type checker (spec.md §6 "Output: diagnostics") and renders
// it for either a terminal or a JSON consumer. The Source DB is the only
// thing diag ever asks to translate a span into a human line/column; it
// never reaches back into the pipeline stages themselves.
package diag

import (
	"fmt"
	"sort"

	"github.com/cwbudde/daedalus-dc/internal/checker"
	"github.com/cwbudde/daedalus-dc/internal/lexer"
	"github.com/cwbudde/daedalus-dc/internal/parser"
	"github.com/cwbudde/daedalus-dc/internal/source"
	"github.com/cwbudde/daedalus-dc/internal/token"
)

// Severity distinguishes a fatal diagnostic from an advisory one. Only
// warnings (currently: an unterminated block comment, spec.md §4.2) use
// SeverityWarning; everything the parser and checker emit is an error.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Label is one `(file_id, span, message, primary)` annotation on a
// Diagnostic, per spec.md §6. A diagnostic normally carries exactly one
// primary label; secondary labels exist for future multi-span errors
// (e.g. "first declared here") but nothing in the core currently emits
// more than one.
type Label struct {
	File    source.FileId
	Span    token.Span
	Message string
	Primary bool
}

// Diagnostic is the shared record carrying a message, a short stable
// code, and one or more labeled spans (spec.md §6).
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Labels   []Label
}

func primaryLabel(file source.FileId, span token.Span, msg string) Label {
	return Label{File: file, Span: span, Message: msg, Primary: true}
}

// parseErrorCodes maps parser.ErrorKind to the stable diagnostic codes of
// spec.md §6. Codes are assigned in declaration order of the ErrorKind
// enum so a new parser error kind only ever appends, never reshuffles.
var parseErrorCodes = map[parser.ErrorKind]string{
	parser.InternalFailure:             "E0001",
	parser.ReachedEOF:                  "E0002",
	parser.ExpectedToken:               "E0003",
	parser.ExpectedOneOfToken:          "E0004",
	parser.ExpectedOneOfCategory:       "E0005",
	parser.MissingName:                 "E0006",
	parser.StatementWithoutSemicolon:   "E0007",
	parser.VariableDeclaration:         "E0008",
	parser.ClassDeclaration:            "E0009",
	parser.IfClause:                    "E0010",
	parser.ElseClause:                  "E0011",
	parser.IllegalStatement:            "E0012",
	parser.InvalidCall:                 "E0013",
	parser.IllegalExpression:           "E0014",
}

// FromParseError converts a parser.ParseError, attributed to file, into a
// Diagnostic.
func FromParseError(file source.FileId, e *parser.ParseError) Diagnostic {
	code, ok := parseErrorCodes[e.Kind]
	if !ok {
		code = "E0000"
	}
	return Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  e.Error(),
		Labels:   []Label{primaryLabel(file, e.Span, e.Error())},
	}
}

// checkErrorCodes maps checker.Kind to the stable diagnostic codes of
// spec.md §6, continuing the numbering after the parser's E00xx range.
var checkErrorCodes = map[checker.Kind]string{
	checker.BinaryExpressionNotInt:         "E0100",
	checker.UnaryExpressionNotInt:          "E0101",
	checker.ConditionNotInt:                "E0102",
	checker.IndexNotInt:                    "E0103",
	checker.NotAnArray:                     "E0104",
	checker.ReturnWithoutExpression:        "E0105",
	checker.ReturnExpressionInVoidFunction: "E0106",
	checker.TypeMismatch:                   "E0107",
	checker.WrongTypeInArrayInitialization: "E0108",
	checker.ArrayLengthMismatch:            "E0109",
	checker.NonConstantArraySize:           "E0110",
	checker.IdentifierIsNotType:            "E0111",
	checker.IdentifierIsClassInExpression:  "E0112",
	checker.UnresolvedIdentifier:           "E0113",
	checker.NotAFunction:                   "E0114",
	checker.ArgumentCountMismatch:          "E0115",
	checker.AssignToConstant:               "E0116",
	checker.CanOnlyAssignToString:          "E0117",
	checker.CanOnlyAssignToFloat:           "E0118",
	checker.CanOnlyAssignToInstance:        "E0119",
	checker.InvalidParentType:              "E0120",
}

// FromCheckError converts a checker.Error, attributed to file, into a
// Diagnostic.
func FromCheckError(file source.FileId, e *checker.Error) Diagnostic {
	code, ok := checkErrorCodes[e.Kind]
	if !ok {
		code = "E0099"
	}
	return Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  e.Error(),
		Labels:   []Label{primaryLabel(file, e.Span, e.Error())},
	}
}

// FromLexWarning converts a lexer.Warning, attributed to file, into an
// advisory Diagnostic (spec.md §4.2: an unterminated block comment is a
// warning, not a fatal LexError).
func FromLexWarning(file source.FileId, w lexer.Warning) Diagnostic {
	span := token.Span{Start: w.Offset, End: w.Offset}
	return Diagnostic{
		Severity: SeverityWarning,
		Code:     "W0001",
		Message:  w.Reason,
		Labels:   []Label{primaryLabel(file, span, w.Reason)},
	}
}

// Sort orders diagnostics deterministically by (file_id, span.start),
// per spec.md §5's requirement that a parallelized implementation must
// still produce deterministic diagnostic ordering.
func Sort(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		li, lj := primaryOf(diags[i]), primaryOf(diags[j])
		if li.File != lj.File {
			return li.File < lj.File
		}
		return li.Span.Start < lj.Span.Start
	})
}

func primaryOf(d Diagnostic) Label {
	for _, l := range d.Labels {
		if l.Primary {
			return l
		}
	}
	if len(d.Labels) > 0 {
		return d.Labels[0]
	}
	return Label{}
}

// Errors filters diags down to SeverityError entries.
func Errors(diags []Diagnostic) []Diagnostic { return filterBySeverity(diags, SeverityError) }

// Warnings filters diags down to SeverityWarning entries.
func Warnings(diags []Diagnostic) []Diagnostic { return filterBySeverity(diags, SeverityWarning) }

func filterBySeverity(diags []Diagnostic, sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// fileName resolves file to a display path, falling back to its numeric
// id when the database lookup fails (it never should for a Diagnostic the
// pipeline itself produced).
func fileName(db *source.Database, file source.FileId) string {
	f, err := db.Get(file)
	if err != nil {
		return fmt.Sprintf("<file %d>", file)
	}
	return f.Path
}
