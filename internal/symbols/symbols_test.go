package symbols_test

import (
	"testing"

	"github.com/cwbudde/daedalus-dc/internal/lexer"
	"github.com/cwbudde/daedalus-dc/internal/parser"
	"github.com/cwbudde/daedalus-dc/internal/source"
	"github.com/cwbudde/daedalus-dc/internal/symbols"
)

func collectSource(t *testing.T, src string) *symbols.Collection {
	t.Helper()
	toks, warnings, err := lexer.Lex([]byte(src))
	if err != nil || len(warnings) > 0 {
		t.Fatalf("lex failure: err=%v warnings=%v", err, warnings)
	}
	decls, perrs := parser.Parse(toks)
	if len(perrs) > 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	db := source.NewDatabase()
	id := db.Add("test.d", []byte(src))
	return symbols.Collect([]symbols.FileAST{{Id: id, Decls: decls}})
}

// TestScopingExample mirrors spec.md §8's "Scoping" testable property.
func TestScopingExample(t *testing.T) {
	coll := collectSource(t, `class C { var int m; }; instance I(C) { m = 3; };`)

	member := coll.GetByName("C.m")
	if member == nil {
		t.Fatal("expected to resolve C.m")
	}
	if member.Kind != symbols.KindClassMember {
		t.Errorf("C.m should be a class member, got %s", member.Kind)
	}

	inst := coll.GetByName("I")
	if inst == nil {
		t.Fatal("expected to resolve I")
	}
	if inst.Kind != symbols.KindInstance {
		t.Errorf("I should be an instance symbol, got %s", inst.Kind)
	}
	if inst.TypeID == nil || inst.TypeID.Name != "C" {
		t.Errorf("I's parent should be C, got %v", inst.TypeID)
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	coll := collectSource(t, `func void DoThing() {};`)
	if coll.GetByName("dothing") == nil {
		t.Error("lookup should be case-insensitive")
	}
	if coll.GetByName("DOTHING") == nil {
		t.Error("lookup should be case-insensitive")
	}
}

func TestDuplicateSymbolsRetainedFirstMatchWins(t *testing.T) {
	coll := collectSource(t, `var int x; var int x;`)
	all := coll.All()
	count := 0
	for _, s := range all {
		if s.Name == "x" {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected both duplicate declarations retained, got %d", count)
	}
	first := coll.GetByName("x")
	if first == nil || first.Span != all[0].Span {
		t.Error("lookup must return the first declaration site among duplicates")
	}
}

func TestFunctionParamsAndLocalsScoped(t *testing.T) {
	coll := collectSource(t, `func int Add(var int a, var int b) { var int total; return total; };`)
	if coll.GetByName("Add.a") == nil {
		t.Error("expected Add.a to be collected")
	}
	if coll.GetByName("Add.b") == nil {
		t.Error("expected Add.b to be collected")
	}
	if coll.GetByName("Add.total") == nil {
		t.Error("expected Add.total (local var) to be collected")
	}
}

func TestNestedIfBranchDeclarationsCollected(t *testing.T) {
	coll := collectSource(t, `func void foo() { if (1) { var int a; } else { var int b; }; };`)
	if coll.GetByName("foo.a") == nil {
		t.Error("expected then-branch var to be collected")
	}
	if coll.GetByName("foo.b") == nil {
		t.Error("expected else-branch var to be collected")
	}
}
