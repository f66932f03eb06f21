// Package parser builds ir syntax trees from source text by recursive
// descent over the lexer's token stream.
package parser

import (
	"errors"
	"fmt"

	"ir/interpreter-go/pkg/ast"
	"ir/interpreter-go/pkg/lexer"
)

// Error is a syntax error. Incomplete is set when the input ended before the
// construct did, so more input could still make it valid.
type Error struct {
	Loc        lexer.Loc
	Msg        string
	Incomplete bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("parser: %s: %s", e.Loc, e.Msg)
}

// IsIncomplete reports whether err means the source ended too early.
func IsIncomplete(err error) bool {
	var parseErr *Error
	if errors.As(err, &parseErr) {
		return parseErr.Incomplete
	}
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return lexErr.AtEOF
	}
	return false
}

// Parser holds the token cursor for one source text.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// Parse parses a whole program.
func Parse(source []byte) ([]ast.Statement, error) {
	p, err := newParser(source)
	if err != nil {
		return nil, err
	}
	program := make([]ast.Statement, 0)
	for !p.at(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program = append(program, stmt)
	}
	return program, nil
}

// ParseExpression parses source consisting of exactly one expression.
func ParseExpression(source []byte) (ast.Expression, error) {
	p, err := newParser(source)
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.EOF) {
		return nil, p.unexpected("end of input")
	}
	return expr, nil
}

func newParser(source []byte) (*Parser, error) {
	tokens, err := lexer.Tokenize(string(source))
	if err != nil {
		return nil, err
	}
	return &Parser{tokens: tokens}, nil
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) at(typ lexer.TokenType) bool {
	return p.peek().Type == typ
}

func (p *Parser) next() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Type != lexer.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) accept(typ lexer.TokenType) bool {
	if p.at(typ) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(typ lexer.TokenType) (lexer.Token, error) {
	if !p.at(typ) {
		return lexer.Token{}, p.unexpected(fmt.Sprintf("'%s'", typ))
	}
	return p.next(), nil
}

func (p *Parser) unexpected(want string) *Error {
	tok := p.peek()
	if tok.Type == lexer.EOF {
		return &Error{Loc: tok.Loc, Msg: fmt.Sprintf("expected %s, found end of input", want), Incomplete: true}
	}
	found := string(tok.Type)
	if tok.Literal != "" && (tok.Type == lexer.Identifier || tok.Type == lexer.Number || tok.Type == lexer.String) {
		found = fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	} else {
		found = fmt.Sprintf("'%s'", found)
	}
	return &Error{Loc: tok.Loc, Msg: fmt.Sprintf("expected %s, found %s", want, found)}
}

func (p *Parser) errorAt(tok lexer.Token, format string, args ...any) *Error {
	return &Error{Loc: tok.Loc, Msg: fmt.Sprintf(format, args...)}
}
