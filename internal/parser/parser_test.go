package parser

import (
	"testing"

	"github.com/cwbudde/daedalus-dc/internal/ast"
	"github.com/cwbudde/daedalus-dc/internal/lexer"
	"github.com/cwbudde/daedalus-dc/internal/token"
)

func mustParse(t *testing.T, src string) []ast.Decl {
	t.Helper()
	toks, warnings, err := lexer.Lex([]byte(src))
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	if len(warnings) > 0 {
		t.Fatalf("unexpected lex warnings: %v", warnings)
	}
	decls, errs := Parse(toks)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return decls
}

// spanContains reports whether outer fully covers inner, per spec.md §8
// "Parser coverage": for every declaration in a parse result, its span
// covers every child node's span.
func spanContains(outer, inner token.Span) bool {
	return outer.Start <= inner.Start && inner.End <= outer.End
}

func TestFunctionDeclSpanCoversChildren(t *testing.T) {
	decls := mustParse(t, `func int Add(var int a, var int b) { return a + b; };`)
	if len(decls) != 1 {
		t.Fatalf("want 1 decl, got %d", len(decls))
	}
	fn, ok := decls[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("want *ast.FuncDecl, got %T", decls[0])
	}
	outer := fn.Span()
	if !spanContains(outer, fn.ReturnType.Span()) {
		t.Errorf("func span does not cover return type span")
	}
	if !spanContains(outer, fn.Name.Span()) {
		t.Errorf("func span does not cover name span")
	}
	for _, p := range fn.Params {
		if !spanContains(outer, p.Type.Span()) || !spanContains(outer, p.Name.Span()) {
			t.Errorf("func span does not cover param span")
		}
	}
	for _, s := range fn.Body {
		if !spanContains(outer, s.Span()) {
			t.Errorf("func span does not cover body statement span %v", s.Span())
		}
	}
}

func TestClassDeclSpanCoversMembers(t *testing.T) {
	decls := mustParse(t, `class Npc { var int health; var int gold; };`)
	class, ok := decls[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("want *ast.ClassDecl, got %T", decls[0])
	}
	for _, m := range class.Members {
		if !spanContains(class.Span(), m.Span()) {
			t.Errorf("class span does not cover member span %v", m.Span())
		}
	}
}

func TestInstanceDeclMultipleNamesAndBodySpan(t *testing.T) {
	decls := mustParse(t, `class C {}; instance A, B(C) { };`)
	if len(decls) != 2 {
		t.Fatalf("want 2 decls, got %d", len(decls))
	}
	inst, ok := decls[1].(*ast.InstanceDecl)
	if !ok {
		t.Fatalf("want *ast.InstanceDecl, got %T", decls[1])
	}
	if len(inst.Names) != 2 {
		t.Fatalf("want 2 instance names, got %d", len(inst.Names))
	}
	if inst.Parent.Name != "C" {
		t.Errorf("want parent C, got %s", inst.Parent.Name)
	}
	for _, n := range inst.Names {
		if !spanContains(inst.Span(), n.Span()) {
			t.Errorf("instance span does not cover name span %v", n.Span())
		}
	}
	if !spanContains(inst.Span(), inst.Parent.Span()) {
		t.Errorf("instance span does not cover parent span %v", inst.Parent.Span())
	}
	if wantEnd := len(`class C {}; instance A, B(C) { }`); inst.Span().End != wantEnd {
		t.Errorf("want instance span to end after the body's '}' at %d, got %v", wantEnd, inst.Span())
	}
}

func TestExpressionPrecedenceTreeShape(t *testing.T) {
	decls := mustParse(t, `const int N = 2+3*4;`)
	constDecl, ok := decls[0].(*ast.ConstDeclStmt)
	if !ok {
		t.Fatalf("want *ast.ConstDeclStmt, got %T", decls[0])
	}
	bin, ok := constDecl.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("want top-level *ast.BinaryExpr, got %T", constDecl.Value)
	}
	if bin.Op != token.PLUS {
		t.Fatalf("want top-level op PLUS (lowest precedence binds last), got %s", bin.Op)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op != token.STAR {
		t.Fatalf("want right operand to be a STAR subexpression, got %#v", bin.Right)
	}
	if !spanContains(bin.Span(), bin.Left.Span()) || !spanContains(bin.Span(), bin.Right.Span()) {
		t.Errorf("binary expr span does not cover its operands")
	}
}

func TestCallVsVarAccessAmbiguity(t *testing.T) {
	decls := mustParse(t, `func void foo() { bar(); baz; };`)
	fn := decls[0].(*ast.FuncDecl)
	if len(fn.Body) != 2 {
		t.Fatalf("want 2 statements, got %d", len(fn.Body))
	}
	exprStmt0, ok := fn.Body[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("want *ast.ExprStmt, got %T", fn.Body[0])
	}
	if _, ok := exprStmt0.X.(*ast.CallExpr); !ok {
		t.Errorf("want CallExpr for 'bar()', got %T", exprStmt0.X)
	}
	exprStmt1, ok := fn.Body[1].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("want *ast.ExprStmt, got %T", fn.Body[1])
	}
	if _, ok := exprStmt1.X.(*ast.VarAccess); !ok {
		t.Errorf("want VarAccess for 'baz', got %T", exprStmt1.X)
	}
}

// TestKeywordsAreLegalIdentifiersExceptIfAndVar covers spec.md §3's quirk
// "`if` and `var` are reserved at identifier boundaries (other keywords
// are legal identifiers)": here `class`, `func`, and `const` are used as
// ordinary names, types, members, and parents and must parse, while
// `if`/`var` used as a class name must still fail.
func TestKeywordsAreLegalIdentifiersExceptIfAndVar(t *testing.T) {
	decls := mustParse(t, `class class { var class func; };`)
	class, ok := decls[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("want *ast.ClassDecl, got %T", decls[0])
	}
	if class.Name.Name != "class" {
		t.Errorf("want class name %q, got %q", "class", class.Name.Name)
	}
	if len(class.Members) != 1 || class.Members[0].Type.Name != "class" || class.Members[0].Name.Name != "func" {
		t.Fatalf("want one member `class func`, got %#v", class.Members)
	}

	decls = mustParse(t, `instance const(class) { };`)
	inst, ok := decls[0].(*ast.InstanceDecl)
	if !ok {
		t.Fatalf("want *ast.InstanceDecl, got %T", decls[0])
	}
	if len(inst.Names) != 1 || inst.Names[0].Name != "const" {
		t.Fatalf("want instance name %q, got %#v", "const", inst.Names)
	}
	if inst.Parent.Name != "class" {
		t.Errorf("want parent %q, got %q", "class", inst.Parent.Name)
	}

	toks, _, err := lexer.Lex([]byte(`class if { };`))
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	if _, errs := Parse(toks); len(errs) == 0 {
		t.Errorf("want a parse error using the reserved word `if` as a class name")
	}

	toks, _, err = lexer.Lex([]byte(`class var { };`))
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	if _, errs := Parse(toks); len(errs) == 0 {
		t.Errorf("want a parse error using the reserved word `var` as a class name")
	}
}

// TestMissingSemicolonError locks in spec.md §8's end-to-end property: a
// single missing semicolon produces exactly one StatementWithoutSemicolon
// diagnostic, whose span is the zero-width byte position immediately
// after the statement's last token (here, the `)` closing `bar()`) rather
// than the span of that token itself.
func TestMissingSemicolonError(t *testing.T) {
	src := `func void foo() { bar() };`
	toks, _, err := lexer.Lex([]byte(src))
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	_, errs := Parse(toks)
	if len(errs) != 1 {
		t.Fatalf("want exactly 1 parse error, got %d: %v", len(errs), errs)
	}
	if errs[0].Kind != StatementWithoutSemicolon {
		t.Fatalf("want a StatementWithoutSemicolon error, got %v", errs[0])
	}
	wantPos := len(`func void foo() { bar()`)
	if errs[0].Span.Start != wantPos || errs[0].Span.End != wantPos {
		t.Errorf("want zero-width span at %d, got %v", wantPos, errs[0].Span)
	}
}
