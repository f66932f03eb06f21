package lexer

import (
	"errors"
	"testing"
)

func TestTokenizeOperatorsAndDelimiters(t *testing.T) {
	input := `+ += - -= * *= / /= % %= ! != = == < <= > >= & && | || ( ) [ ] { } ; , :`
	want := []TokenType{
		Plus, AddAssign, Minus, SubAssign, Star, MulAssign, Slash, DivAssign, Percent, ModAssign,
		Bang, NotEqual, Assign, EqualEqual, Less, LessEqual, Greater, GreaterEqual,
		Ampersand, And, Pipe, Or,
		LeftParen, RightParen, LeftSquare, RightSquare, LeftBrace, RightBrace, Semicolon, Comma, Colon,
		EOF,
	}
	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for idx, typ := range want {
		if tokens[idx].Type != typ {
			t.Fatalf("token %d: expected %s, got %s", idx, typ, tokens[idx].Type)
		}
	}
}

func TestTokenizeProgramWithLocations(t *testing.T) {
	input := "let x = 10;\nwhile (x > 0) {\n\tprint(\"hi\"); // loop\n}"
	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	cases := []struct {
		idx     int
		typ     TokenType
		literal string
		loc     Loc
	}{
		{0, Let, "let", Loc{1, 1}},
		{1, Identifier, "x", Loc{1, 5}},
		{3, Number, "10", Loc{1, 9}},
		{5, While, "while", Loc{2, 1}},
		{12, Print, "print", Loc{3, 2}},
		{14, String, "hi", Loc{3, 8}},
		{17, RightBrace, "}", Loc{4, 1}},
		{18, EOF, "", Loc{4, 2}},
	}
	for _, tc := range cases {
		tok := tokens[tc.idx]
		if tok.Type != tc.typ || tok.Literal != tc.literal || tok.Loc != tc.loc {
			t.Fatalf("token %d: expected %s %q at %s, got %s", tc.idx, tc.typ, tc.literal, tc.loc, tok)
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	tokens, err := Tokenize("fn if elif else for return exit true false null print_me x1")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	want := []TokenType{Fn, If, Elif, Else, For, Return, Exit, True, False, Null, Identifier, Identifier, EOF}
	for idx, typ := range want {
		if tokens[idx].Type != typ {
			t.Fatalf("token %d: expected %s, got %s", idx, typ, tokens[idx])
		}
	}
}

func TestLexerErrors(t *testing.T) {
	_, err := Tokenize(`print("open`)
	var lexErr *Error
	if !errors.As(err, &lexErr) || !lexErr.AtEOF {
		t.Fatalf("expected unterminated string error at EOF, got %v", err)
	}
	_, err = Tokenize("let x = 1 @ 2")
	if !errors.As(err, &lexErr) || lexErr.AtEOF || lexErr.Loc != (Loc{1, 11}) {
		t.Fatalf("expected unexpected character error at 1:11, got %v", err)
	}
	_, err = Tokenize("12ab")
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected malformed number error, got %v", err)
	}
}
