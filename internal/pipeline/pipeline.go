// Package pipeline wires the five core components together into the
// single data flow spec.md §2 describes: bytes -> lexer -> parser ->
// collector -> typechecker -> diagnostics. It is the concrete sequencing
// the teacher's cmd/dwscript/cmd/compile.go hand-wires inline; here it is
// factored out so the collect, check, and compile subcommands share one
// Run; the lex and parse subcommands drive the lexer and parser directly.
package pipeline

import (
	"github.com/cwbudde/daedalus-dc/internal/ast"
	"github.com/cwbudde/daedalus-dc/internal/checker"
	"github.com/cwbudde/daedalus-dc/internal/diag"
	"github.com/cwbudde/daedalus-dc/internal/lexer"
	"github.com/cwbudde/daedalus-dc/internal/parser"
	"github.com/cwbudde/daedalus-dc/internal/source"
	"github.com/cwbudde/daedalus-dc/internal/symbols"
	"github.com/cwbudde/daedalus-dc/internal/token"
)

// FileResult holds one file's lex/parse output.
type FileResult struct {
	ID    source.FileId
	Decls []ast.Decl
}

// Result is the accumulated outcome of a full pipeline run.
type Result struct {
	DB          *source.Database
	Files       []FileResult
	Symbols     *symbols.Collection
	Diagnostics []diag.Diagnostic
}

// HasErrors reports whether the run produced any error-severity
// diagnostic (lex error, parse error, or typecheck error). Warnings alone
// do not count, per spec.md §6's exit-code design ("0 on success with no
// errors").
func (r *Result) HasErrors() bool {
	return len(diag.Errors(r.Diagnostics)) > 0
}

// Run loads each of paths (via readFile) into a fresh Source DB and runs
// lex, parse, collect, and typecheck over them in turn, per spec.md §2's
// data flow. A file whose lex or parse step fails is excluded from symbol
// collection and type checking (spec.md §7 family 2: "A file with any
// parse error does not contribute to the type-checker input") but every
// other file still contributes; diagnostics from all files are merged and
// deterministically ordered (spec.md §5) before being returned.
func Run(paths []string, readFile func(string) ([]byte, error)) (*Result, error) {
	db := source.NewDatabase()
	res := &Result{DB: db}

	var cleanFiles []symbols.FileAST
	for _, p := range paths {
		data, err := readFile(p)
		if err != nil {
			return nil, err
		}
		id := db.Add(p, data)

		toks, warnings, lexErr := lexer.Lex(data)
		for _, w := range warnings {
			res.Diagnostics = append(res.Diagnostics, diag.FromLexWarning(id, w))
		}
		if lexErr != nil {
			res.Diagnostics = append(res.Diagnostics, lexErrorDiagnostic(id, lexErr.(*lexer.Error)))
			continue
		}

		decls, perrs := parser.Parse(toks)
		res.Files = append(res.Files, FileResult{ID: id, Decls: decls})
		for _, pe := range perrs {
			res.Diagnostics = append(res.Diagnostics, diag.FromParseError(id, pe))
		}
		if len(perrs) == 0 {
			cleanFiles = append(cleanFiles, symbols.FileAST{Id: id, Decls: decls})
		}
	}

	if len(cleanFiles) > 0 {
		res.Symbols = symbols.Collect(cleanFiles)
		for _, e := range checker.Typecheck(res.Symbols) {
			res.Diagnostics = append(res.Diagnostics, diag.FromCheckError(e.File, e))
		}
	}

	diag.Sort(res.Diagnostics)
	return res, nil
}

// lexErrorDiagnostic wraps the single fatal lexical failure of a file
// (spec.md §4.2: "lexing does not attempt to recover past the first
// error") as an error-severity Diagnostic with a zero-width span at the
// failure offset.
func lexErrorDiagnostic(id source.FileId, e *lexer.Error) diag.Diagnostic {
	return diag.Diagnostic{
		Severity: diag.SeverityError,
		Code:     "E0090",
		Message:  e.Error(),
		Labels: []diag.Label{{
			File:    id,
			Span:    token.Span{Start: e.Offset, End: e.Offset},
			Message: e.Error(),
			Primary: true,
		}},
	}
}
