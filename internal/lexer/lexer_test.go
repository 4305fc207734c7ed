package lexer

import (
	"testing"

	"github.com/cwbudde/daedalus-dc/internal/token"
)

func typesOf(toks []token.Token) []token.Type {
	types := make([]token.Type, len(toks))
	for i, t := range toks {
		types[i] = t.Type
	}
	return types
}

func TestLexBasicDeclaration(t *testing.T) {
	toks, warnings, err := Lex([]byte(`func void foo() { var int x; };`))
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	want := []token.Type{
		token.FUNC, token.IDENT, token.IDENT, token.LPAREN, token.RPAREN,
		token.LBRACE, token.VAR, token.IDENT, token.IDENT, token.SEMICOLON,
		token.RBRACE, token.SEMICOLON, token.EOF,
	}
	got := typesOf(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexKeywordsCaseInsensitive(t *testing.T) {
	for _, spelling := range []string{"FUNC", "Func", "fUnC", "func"} {
		toks, _, err := Lex([]byte(spelling))
		if err != nil {
			t.Fatalf("Lex(%q): %v", spelling, err)
		}
		if toks[0].Type != token.FUNC {
			t.Errorf("Lex(%q)[0].Type = %s, want func", spelling, toks[0].Type)
		}
		if toks[0].Literal != spelling {
			t.Errorf("Lex(%q)[0].Literal = %q, want original casing preserved", spelling, toks[0].Literal)
		}
	}
}

func TestLexOperatorLongestMatch(t *testing.T) {
	toks, _, err := Lex([]byte(`+= -= *= /= == != >= <= << >> || &&`))
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	want := []token.Type{
		token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN, token.SLASH_ASSIGN,
		token.EQ, token.NOT_EQ, token.GREATER_EQ, token.LESS_EQ,
		token.SHL, token.SHR, token.OR_OR, token.AND_AND, token.EOF,
	}
	got := typesOf(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexSingleCharFallback(t *testing.T) {
	toks, _, err := Lex([]byte(`+ - * / = ! > < | &`))
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	want := []token.Type{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.ASSIGN,
		token.NOT, token.GREATER, token.LESS, token.PIPE, token.AMP, token.EOF,
	}
	got := typesOf(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexIntegerAndDecimal(t *testing.T) {
	toks, _, err := Lex([]byte(`123 45.67 0`))
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	if toks[0].Type != token.INT || toks[0].Literal != "123" {
		t.Errorf("token 0 = %+v, want INT 123", toks[0])
	}
	if toks[1].Type != token.FLOAT || toks[1].Literal != "45.67" {
		t.Errorf("token 1 = %+v, want FLOAT 45.67", toks[1])
	}
	if toks[2].Type != token.INT {
		t.Errorf("token 2 = %+v, want INT", toks[2])
	}
}

func TestLexIntegerOverflow(t *testing.T) {
	_, _, err := Lex([]byte(`99999999999999999999999999`))
	if err == nil {
		t.Fatal("expected overflow error, got nil")
	}
}

func TestLexString(t *testing.T) {
	toks, _, err := Lex([]byte(`"hello world"`))
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	if toks[0].Type != token.STRING || toks[0].Literal != "hello world" {
		t.Errorf("token 0 = %+v, want STRING \"hello world\"", toks[0])
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, _, err := Lex([]byte(`"hello`))
	if err == nil {
		t.Fatal("expected unterminated string error, got nil")
	}
}

func TestLexLineComment(t *testing.T) {
	toks, _, err := Lex([]byte("var int x; // trailing comment\nvar int y;"))
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	// Comments are discarded by default; both var-decls should be adjacent.
	count := 0
	for _, tok := range toks {
		if tok.Type == token.VAR {
			count++
		}
	}
	if count != 2 {
		t.Errorf("found %d VAR tokens, want 2", count)
	}
}

func TestLexBlockCommentUnterminatedIsWarningNotError(t *testing.T) {
	toks, warnings, err := Lex([]byte("var int x; /* unterminated"))
	if err != nil {
		t.Fatalf("expected no fatal error, got %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if toks[len(toks)-1].Type != token.EOF {
		t.Errorf("last token = %s, want EOF", toks[len(toks)-1].Type)
	}
}

func TestLexIdentifierWithHighBitBytes(t *testing.T) {
	// 0xE4 is the Latin-1 umlaut byte carved out by spec.md §3.
	input := append([]byte("na"), 0xE4, 'm', 'e')
	toks, _, err := Lex(input)
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	if toks[0].Type != token.IDENT {
		t.Errorf("token 0 type = %s, want IDENT", toks[0].Type)
	}
	if len(toks[0].Literal) != len(input) {
		t.Errorf("identifier literal truncated: %q", toks[0].Literal)
	}
}

func TestLexSpansCoverSource(t *testing.T) {
	src := []byte(`func void foo() {};`)
	toks, _, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	for i := 1; i < len(toks); i++ {
		if toks[i].Span.Start < toks[i-1].Span.End {
			t.Errorf("token %d span %v overlaps previous token end %d", i, toks[i].Span, toks[i-1].Span.End)
		}
	}
	last := toks[len(toks)-1]
	if last.Type != token.EOF || last.Span.Start != len(src) || last.Span.End != len(src) {
		t.Errorf("EOF token = %+v, want zero-width span at %d", last, len(src))
	}
}

func TestLexRoundTrip(t *testing.T) {
	src := "func void foo(var int x) { x += 1; return; };"
	toks, _, err := Lex([]byte(src))
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	var rebuilt []byte
	for _, tok := range toks {
		if tok.Type == token.EOF {
			continue
		}
		rebuilt = append(rebuilt, []byte(src[tok.Span.Start:tok.Span.End])...)
	}
	// Reconstructing only the token slices (without interleaved
	// whitespace) must reproduce the source with whitespace collapsed
	// to nothing but no bytes dropped or invented.
	var collapsed []byte
	for i := 0; i < len(src); i++ {
		if src[i] != ' ' {
			collapsed = append(collapsed, src[i])
		}
	}
	if string(rebuilt) != string(collapsed) {
		t.Errorf("rebuilt token slices = %q, want %q", rebuilt, collapsed)
	}
	for _, tok := range toks {
		if tok.Type == token.EOF {
			continue
		}
		if src[tok.Span.Start:tok.Span.End] != tok.Literal && tok.Type != token.STRING {
			t.Errorf("token %+v literal does not match its own span slice %q", tok, src[tok.Span.Start:tok.Span.End])
		}
	}
}

func TestLexPunctuation(t *testing.T) {
	toks, _, err := Lex([]byte(`{ } [ ] ( ) , . ;`))
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	want := []token.Type{
		token.LBRACE, token.RBRACE, token.LBRACK, token.RBRACK,
		token.LPAREN, token.RPAREN, token.COMMA, token.DOT, token.SEMICOLON, token.EOF,
	}
	got := typesOf(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}
