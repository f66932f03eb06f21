// Package lexer splits ir source text into tokens. Line comments start with
// "//". String literals have no escape sequences and may span lines.
package lexer

import "fmt"

// Error reports a malformed token. AtEOF is set when more input could have
// completed the token.
type Error struct {
	Loc   Loc
	Msg   string
	AtEOF bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           byte
	line         int
	col          int
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

// Tokenize returns every token of input, ending with EOF.
func Tokenize(input string) ([]Token, error) {
	l := New(input)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.col++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) loc() Loc {
	return Loc{Line: l.line, Col: l.col}
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// Next scans one token.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespaceAndComments()
	loc := l.loc()
	if l.atEnd() {
		return Token{Type: EOF, Loc: loc}, nil
	}

	switch l.ch {
	case '(':
		return l.single(LeftParen, loc), nil
	case ')':
		return l.single(RightParen, loc), nil
	case '[':
		return l.single(LeftSquare, loc), nil
	case ']':
		return l.single(RightSquare, loc), nil
	case '{':
		return l.single(LeftBrace, loc), nil
	case '}':
		return l.single(RightBrace, loc), nil
	case ';':
		return l.single(Semicolon, loc), nil
	case ',':
		return l.single(Comma, loc), nil
	case ':':
		return l.single(Colon, loc), nil
	case '+':
		return l.pair('=', Plus, AddAssign, loc), nil
	case '-':
		return l.pair('=', Minus, SubAssign, loc), nil
	case '*':
		return l.pair('=', Star, MulAssign, loc), nil
	case '/':
		return l.pair('=', Slash, DivAssign, loc), nil
	case '%':
		return l.pair('=', Percent, ModAssign, loc), nil
	case '!':
		return l.pair('=', Bang, NotEqual, loc), nil
	case '=':
		return l.pair('=', Assign, EqualEqual, loc), nil
	case '<':
		return l.pair('=', Less, LessEqual, loc), nil
	case '>':
		return l.pair('=', Greater, GreaterEqual, loc), nil
	case '&':
		return l.pair('&', Ampersand, And, loc), nil
	case '|':
		return l.pair('|', Pipe, Or, loc), nil
	case '"':
		return l.readString(loc)
	}

	switch {
	case isLetter(l.ch):
		word := l.readWhile(isIdentChar)
		return Token{Type: LookupIdent(word), Literal: word, Loc: loc}, nil
	case isDigit(l.ch):
		digits := l.readWhile(isDigit)
		if isLetter(l.ch) {
			return Token{}, &Error{Loc: l.loc(), Msg: fmt.Sprintf("unexpected character %q after number", l.ch)}
		}
		return Token{Type: Number, Literal: digits, Loc: loc}, nil
	default:
		return Token{}, &Error{Loc: loc, Msg: fmt.Sprintf("unexpected character %q", l.ch)}
	}
}

func (l *Lexer) single(typ TokenType, loc Loc) Token {
	tok := Token{Type: typ, Literal: string(l.ch), Loc: loc}
	l.readChar()
	return tok
}

// pair scans a one-character token, or its two-character form when the next
// character is second.
func (l *Lexer) pair(second byte, short, long TokenType, loc Loc) Token {
	if l.peekChar() == second {
		l.readChar()
		l.readChar()
		return Token{Type: long, Literal: string(long), Loc: loc}
	}
	return l.single(short, loc)
}

func (l *Lexer) readString(loc Loc) (Token, error) {
	l.readChar()
	start := l.position
	for !l.atEnd() && l.ch != '"' {
		l.readChar()
	}
	if l.atEnd() {
		return Token{}, &Error{Loc: loc, Msg: "unterminated string", AtEOF: true}
	}
	text := l.input[start:l.position]
	l.readChar()
	return Token{Type: String, Literal: text, Loc: loc}, nil
}

func (l *Lexer) readWhile(pred func(byte) bool) string {
	start := l.position
	for !l.atEnd() && pred(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for !l.atEnd() && l.ch != '\n' {
				l.readChar()
			}
		default:
			return
		}
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}
