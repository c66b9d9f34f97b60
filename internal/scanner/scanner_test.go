package scanner

import (
	"testing"

	"github.com/cwbudde/golox/internal/token"
)

func typesOf(tokens []token.Token) []token.Type {
	types := make([]token.Type, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestScanTokens_Punctuation(t *testing.T) {
	tokens := New("(){},.-+;*%?:").ScanTokens()
	want := []token.Type{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON,
		token.STAR, token.PERCENT, token.QUESTION, token.COLON, token.EOF,
	}
	got := typesOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanTokens_TwoCharOperators(t *testing.T) {
	tokens := New("!= == <= >= ! = < >").ScanTokens()
	want := []token.Type{
		token.BANG_EQUAL, token.EQUAL_EQUAL, token.LESS_EQUAL, token.GREATER_EQUAL,
		token.BANG, token.EQUAL, token.LESS, token.GREATER, token.EOF,
	}
	got := typesOf(tokens)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanTokens_LineComment(t *testing.T) {
	s := New("1 // a comment\n2")
	tokens := s.ScanTokens()
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3: %v", len(tokens), tokens)
	}
	if tokens[0].Literal != 1.0 || tokens[1].Literal != 2.0 {
		t.Errorf("unexpected literals: %v %v", tokens[0].Literal, tokens[1].Literal)
	}
	if tokens[1].Line != 2 {
		t.Errorf("got line %d, want 2", tokens[1].Line)
	}
}

func TestScanTokens_BlockComment(t *testing.T) {
	s := New("1 /* multi\nline */ 2")
	tokens := s.ScanTokens()
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3: %v", len(tokens), tokens)
	}
	if tokens[1].Line != 2 {
		t.Errorf("got line %d, want 2", tokens[1].Line)
	}
}

func TestScanTokens_UnterminatedBlockComment(t *testing.T) {
	s := New("/* never closed")
	s.ScanTokens()
	if !s.HadError() {
		t.Fatal("expected a scan error for an unterminated block comment")
	}
}

func TestScanTokens_String(t *testing.T) {
	s := New(`"hello, world"`)
	tokens := s.ScanTokens()
	if tokens[0].Type != token.STRING || tokens[0].Literal != "hello, world" {
		t.Errorf("got %#v", tokens[0])
	}
}

func TestScanTokens_MultilineString(t *testing.T) {
	s := New("\"a\nb\"\n1")
	tokens := s.ScanTokens()
	if tokens[0].Literal != "a\nb" {
		t.Errorf("got literal %q", tokens[0].Literal)
	}
	if tokens[1].Line != 3 {
		t.Errorf("got line %d, want 3", tokens[1].Line)
	}
}

func TestScanTokens_UnterminatedString(t *testing.T) {
	s := New(`"never closed`)
	s.ScanTokens()
	if !s.HadError() {
		t.Fatal("expected a scan error for an unterminated string")
	}
}

func TestScanTokens_Number(t *testing.T) {
	tokens := New("123 1.5 1.").ScanTokens()
	if tokens[0].Literal != 123.0 {
		t.Errorf("got %v", tokens[0].Literal)
	}
	if tokens[1].Literal != 1.5 {
		t.Errorf("got %v", tokens[1].Literal)
	}
	// The trailing dot is not consumed since it isn't followed by a digit.
	if tokens[2].Literal != 1.0 || tokens[3].Type != token.DOT {
		t.Errorf("got %v %v", tokens[2], tokens[3])
	}
}

func TestScanTokens_IdentifiersAndKeywords(t *testing.T) {
	tokens := New("orchid or class _foo").ScanTokens()
	want := []token.Type{token.IDENT, token.OR, token.CLASS, token.IDENT, token.EOF}
	got := typesOf(tokens)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanTokens_IllegalCharacter(t *testing.T) {
	s := New("@")
	s.ScanTokens()
	if !s.HadError() {
		t.Fatal("expected a scan error for an illegal character")
	}
	if s.Errors()[0].Line != 1 {
		t.Errorf("got line %d, want 1", s.Errors()[0].Line)
	}
}

func TestScanTokens_LineNumbers(t *testing.T) {
	s := New("var a = 1;\nvar b = 2;\nprint a + b;")
	tokens := s.ScanTokens()
	var bLines []int
	for _, tok := range tokens {
		if tok.Type == token.IDENT && tok.Lexeme == "b" {
			bLines = append(bLines, tok.Line)
		}
	}
	if len(bLines) != 2 || bLines[0] != 2 || bLines[1] != 3 {
		t.Errorf("got lines %v for 'b', want [2 3]", bLines)
	}
}
