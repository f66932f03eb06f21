package lexer

import "fmt"

type TokenType string

const (
	EOF TokenType = "EOF"

	Number     TokenType = "NUMBER"
	String     TokenType = "STRING"
	Identifier TokenType = "IDENT"

	Plus      TokenType = "+"
	Minus     TokenType = "-"
	Star      TokenType = "*"
	Slash     TokenType = "/"
	Percent   TokenType = "%"
	AddAssign TokenType = "+="
	SubAssign TokenType = "-="
	MulAssign TokenType = "*="
	DivAssign TokenType = "/="
	ModAssign TokenType = "%="

	Bang         TokenType = "!"
	NotEqual     TokenType = "!="
	Assign       TokenType = "="
	EqualEqual   TokenType = "=="
	Less         TokenType = "<"
	LessEqual    TokenType = "<="
	Greater      TokenType = ">"
	GreaterEqual TokenType = ">="
	Ampersand    TokenType = "&"
	And          TokenType = "&&"
	Pipe         TokenType = "|"
	Or           TokenType = "||"

	LeftParen   TokenType = "("
	RightParen  TokenType = ")"
	LeftSquare  TokenType = "["
	RightSquare TokenType = "]"
	LeftBrace   TokenType = "{"
	RightBrace  TokenType = "}"
	Semicolon   TokenType = ";"
	Comma       TokenType = ","
	Colon       TokenType = ":"

	Let    TokenType = "let"
	Fn     TokenType = "fn"
	If     TokenType = "if"
	Elif   TokenType = "elif"
	Else   TokenType = "else"
	While  TokenType = "while"
	For    TokenType = "for"
	Print  TokenType = "print"
	Return TokenType = "return"
	Exit   TokenType = "exit"
	True   TokenType = "true"
	False  TokenType = "false"
	Null   TokenType = "null"
)

var keywords = map[string]TokenType{
	"let":    Let,
	"fn":     Fn,
	"if":     If,
	"elif":   Elif,
	"else":   Else,
	"while":  While,
	"for":    For,
	"print":  Print,
	"return": Return,
	"exit":   Exit,
	"true":   True,
	"false":  False,
	"null":   Null,
}

// LookupIdent maps a word to its keyword type, or Identifier.
func LookupIdent(word string) TokenType {
	if tok, ok := keywords[word]; ok {
		return tok
	}
	return Identifier
}

// Loc is a 1-based source position.
type Loc struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

func (l Loc) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

type Token struct {
	Type    TokenType `json:"type"`
	Literal string    `json:"literal"`
	Loc     Loc       `json:"loc"`
}

func (t Token) String() string {
	switch t.Type {
	case Number, Identifier:
		return fmt.Sprintf("%s %s(%s)", t.Loc, t.Type, t.Literal)
	case String:
		return fmt.Sprintf("%s %s(%q)", t.Loc, t.Type, t.Literal)
	default:
		return fmt.Sprintf("%s %s", t.Loc, t.Type)
	}
}
