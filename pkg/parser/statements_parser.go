package parser

import (
	"ir/interpreter-go/pkg/ast"
	"ir/interpreter-go/pkg/lexer"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.peek()
	var (
		stmt ast.Statement
		err  error
	)
	switch tok.Type {
	case lexer.Print:
		p.next()
		var arg ast.Expression
		if arg, err = p.parseExpression(lowest); err == nil {
			stmt = ast.NewPrintStatement(arg)
		}
	case lexer.Exit:
		p.next()
		var code ast.Expression
		if code, err = p.parseExpression(lowest); err == nil {
			stmt = ast.NewExitStatement(code)
		}
	case lexer.Return:
		p.next()
		var arg ast.Expression
		if arg, err = p.parseExpression(lowest); err == nil {
			stmt = ast.NewReturnStatement(arg)
		}
	case lexer.Let:
		stmt, err = p.parseLetStatement()
	case lexer.Fn:
		// Blocks end without a semicolon.
		return p.parseFunctionDefinition()
	case lexer.If:
		return p.parseIfStatement()
	case lexer.While:
		return p.parseWhileLoop()
	case lexer.LeftBrace:
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		return ast.NewBlockStatement(body), nil
	case lexer.Elif, lexer.Else:
		return nil, p.errorAt(tok, "'%s' without if; else chains are not part of the language", tok.Type)
	case lexer.For:
		return nil, p.errorAt(tok, "for loops are not supported; use while")
	default:
		var expr ast.Expression
		if expr, err = p.parseExpression(lowest); err == nil {
			stmt = ast.NewExpressionStatement(expr)
		}
	}
	if err != nil {
		return nil, err
	}
	p.accept(lexer.Semicolon)
	return stmt, nil
}

func (p *Parser) parseLetStatement() (ast.Statement, error) {
	p.next()
	name, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Assign); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	return ast.NewLetStatement(name.Literal, value), nil
}

func (p *Parser) parseFunctionDefinition() (ast.Statement, error) {
	p.next()
	name, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LeftParen); err != nil {
		return nil, err
	}
	params := make([]string, 0)
	for !p.at(lexer.RightParen) {
		param, err := p.expect(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		params = append(params, param.Literal)
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if _, err := p.expect(lexer.RightParen); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDefinition(name.Literal, params, body), nil
}

func (p *Parser) parseIfStatement() (ast.Statement, error) {
	p.next()
	cond, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type == lexer.Elif || tok.Type == lexer.Else {
		return nil, p.errorAt(tok, "'%s' is not supported; if has no else branch", tok.Type)
	}
	return ast.NewIfStatement(cond, body), nil
}

func (p *Parser) parseWhileLoop() (ast.Statement, error) {
	p.next()
	cond, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileLoop(cond, body), nil
}

// parseBody parses `{ stmt* }`.
func (p *Parser) parseBody() ([]ast.Statement, error) {
	if _, err := p.expect(lexer.LeftBrace); err != nil {
		return nil, err
	}
	body := make([]ast.Statement, 0)
	for !p.at(lexer.RightBrace) {
		if p.at(lexer.EOF) {
			return nil, p.unexpected("'}'")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	p.next()
	return body, nil
}
