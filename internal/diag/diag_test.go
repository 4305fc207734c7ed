package diag

import (
	"testing"

	"github.com/cwbudde/daedalus-dc/internal/checker"
	"github.com/cwbudde/daedalus-dc/internal/lexer"
	"github.com/cwbudde/daedalus-dc/internal/parser"
	"github.com/cwbudde/daedalus-dc/internal/source"
	"github.com/cwbudde/daedalus-dc/internal/symbols"
	"github.com/cwbudde/daedalus-dc/internal/token"
	"github.com/tidwall/gjson"
)

func tspan(start, end int) token.Span { return token.Span{Start: start, End: end} }

func TestRenderJSONShape(t *testing.T) {
	db := source.NewDatabase()
	file := db.Add("a.d", []byte(`func void foo() { 3 + 3.5; };`))

	toks, _, err := lexer.Lex([]byte(`func void foo() { 3 + 3.5; };`))
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	decls, perrs := parser.Parse(toks)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	coll := symbols.Collect([]symbols.FileAST{{Id: file, Decls: decls}})
	errs := checker.Typecheck(coll)
	if len(errs) != 1 {
		t.Fatalf("want 1 typecheck error, got %d", len(errs))
	}

	diags := []Diagnostic{FromCheckError(file, errs[0])}
	out, err := RenderJSON(diags)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	if !gjson.Get(out, "errors").IsArray() {
		t.Fatalf("expected errors to be an array: %s", out)
	}
	if n := gjson.Get(out, "errors.#").Int(); n != 1 {
		t.Fatalf("want 1 error entry, got %d: %s", n, out)
	}
	if code := gjson.Get(out, "errors.0.message").String(); code == "" {
		t.Fatalf("expected non-empty message: %s", out)
	}
	if fid := gjson.Get(out, "errors.0.file_id").Int(); fid != int64(file) {
		t.Fatalf("want file_id %d, got %d", file, fid)
	}
	if n := gjson.Get(out, "warnings.#").Int(); n != 0 {
		t.Fatalf("want 0 warnings, got %d: %s", n, out)
	}
}

func TestSortIsDeterministicByFileThenOffset(t *testing.T) {
	diags := []Diagnostic{
		{Code: "E0100", Labels: []Label{{File: 1, Span: tspan(10, 12), Primary: true}}},
		{Code: "E0101", Labels: []Label{{File: 0, Span: tspan(20, 22), Primary: true}}},
		{Code: "E0102", Labels: []Label{{File: 0, Span: tspan(5, 6), Primary: true}}},
	}
	Sort(diags)
	want := []string{"E0102", "E0101", "E0100"}
	for i, code := range want {
		if diags[i].Code != code {
			t.Fatalf("position %d: want %s, got %s", i, code, diags[i].Code)
		}
	}
}

func TestErrorsAndWarningsFilter(t *testing.T) {
	diags := []Diagnostic{
		{Severity: SeverityError, Code: "E0001"},
		{Severity: SeverityWarning, Code: "W0001"},
		{Severity: SeverityError, Code: "E0002"},
	}
	if got := len(Errors(diags)); got != 2 {
		t.Fatalf("want 2 errors, got %d", got)
	}
	if got := len(Warnings(diags)); got != 1 {
		t.Fatalf("want 1 warning, got %d", got)
	}
}
