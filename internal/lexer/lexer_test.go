package lexer

import (
	"testing"

	"github.com/jdpolicano/lox/internal/token"
)

func typesOf(t *testing.T, tokens []token.Token) []token.Type {
	t.Helper()
	types := make([]token.Type, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestScanTokensPunctuationAndOperators(t *testing.T) {
	tokens, err := ScanTokens(`(){}, ; + - * / == != <= >= < > = += -= *= /=`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []token.Type{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Semicolon, token.Plus, token.Minus, token.Star, token.Slash,
		token.EqualEqual, token.BangEqual, token.LessEqual, token.GreaterEqual,
		token.Less, token.Greater, token.Equal,
		token.PlusEqual, token.MinusEqual, token.StarEqual, token.SlashEqual,
		token.Eof,
	}

	got := typesOf(t, tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanTokensStringLiteral(t *testing.T) {
	tokens, err := ScanTokens(`"hello world"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected string + eof, got %d tokens", len(tokens))
	}
	if tokens[0].Type != token.String {
		t.Fatalf("expected String token, got %v", tokens[0].Type)
	}
	if tokens[0].Literal.Str != "hello world" {
		t.Errorf("literal = %q, want %q", tokens[0].Literal.Str, "hello world")
	}
}

func TestScanTokensUnterminatedString(t *testing.T) {
	_, err := ScanTokens(`"unterminated`)
	if err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if lexErr.Kind != UnterminatedString {
		t.Errorf("kind = %v, want UnterminatedString", lexErr.Kind)
	}
}

func TestScanTokensNumber(t *testing.T) {
	tokens, err := ScanTokens("42 3.14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Literal.Num != 42 {
		t.Errorf("got %v, want 42", tokens[0].Literal.Num)
	}
	if tokens[1].Literal.Num != 3.14 {
		t.Errorf("got %v, want 3.14", tokens[1].Literal.Num)
	}
}

func TestScanTokensInvalidNumber(t *testing.T) {
	_, err := ScanTokens("1.")
	if err == nil {
		t.Fatal("expected an error for a trailing-dot number")
	}
	lexErr, ok := err.(*Error)
	if !ok || lexErr.Kind != InvalidNumber {
		t.Fatalf("expected InvalidNumber error, got %#v", err)
	}
}

func TestScanTokensKeywordsAndIdentifiers(t *testing.T) {
	tokens, err := ScanTokens("var x = true and false or nil fun while for if else return break print")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Type{
		token.Var, token.Identifier, token.Equal, token.True, token.And, token.False,
		token.Or, token.Nil, token.Fun, token.While, token.For, token.If, token.Else,
		token.Return, token.Break, token.Print, token.Eof,
	}
	got := typesOf(t, tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanTokensLineComment(t *testing.T) {
	tokens, err := ScanTokens("1 // a comment\n2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 3 {
		t.Fatalf("expected 2 numbers + eof, got %d", len(tokens))
	}
	if tokens[1].Coord.Line != 2 {
		t.Errorf("second number should be on line 2, got line %d", tokens[1].Coord.Line)
	}
}

func TestScanTokensInvalidCharacter(t *testing.T) {
	_, err := ScanTokens("@")
	if err == nil {
		t.Fatal("expected an error for an invalid character")
	}
	lexErr, ok := err.(*Error)
	if !ok || lexErr.Kind != InvalidCharacter {
		t.Fatalf("expected InvalidCharacter error, got %#v", err)
	}
}

func TestScanTokensCoordinates(t *testing.T) {
	tokens, err := ScanTokens("var x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[1].Coord.Line != 1 || tokens[1].Coord.Column != 5 {
		t.Errorf("coord = %v, want line 1 column 5", tokens[1].Coord)
	}
}
