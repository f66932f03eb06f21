package parser

import (
	"strconv"

	"ir/interpreter-go/pkg/ast"
	"ir/interpreter-go/pkg/lexer"
)

const lowest = 0

// Assignment binds loosest, so its precedence sits just above lowest.
const assignPrecedence = 1

var binaryOperators = map[lexer.TokenType]ast.BinaryOperator{
	lexer.Plus:         ast.OperatorAdd,
	lexer.Minus:        ast.OperatorSubtract,
	lexer.Star:         ast.OperatorMultiply,
	lexer.Slash:        ast.OperatorDivide,
	lexer.EqualEqual:   ast.OperatorEqual,
	lexer.NotEqual:     ast.OperatorNotEqual,
	lexer.Less:         ast.OperatorLess,
	lexer.LessEqual:    ast.OperatorLessEqual,
	lexer.Greater:      ast.OperatorGreater,
	lexer.GreaterEqual: ast.OperatorGreaterEqual,
	lexer.And:          ast.OperatorAnd,
	lexer.Or:           ast.OperatorOr,
}

var unaryOperators = map[lexer.TokenType]ast.UnaryOperator{
	lexer.Plus:  ast.UnaryOperatorPlus,
	lexer.Minus: ast.UnaryOperatorNegate,
	lexer.Bang:  ast.UnaryOperatorNot,
}

// Operators the lexer knows but the language has no semantics for.
var unsupportedOperators = map[lexer.TokenType]bool{
	lexer.Percent:   true,
	lexer.SubAssign: true,
	lexer.MulAssign: true,
	lexer.DivAssign: true,
	lexer.ModAssign: true,
	lexer.Ampersand: true,
	lexer.Pipe:      true,
}

// parseExpression is a precedence climber: it consumes infix operators that
// bind tighter than minPrec. Binary operators are left-associative and +=
// is right-associative.
func (p *Parser) parseExpression(minPrec int) (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.Type == lexer.AddAssign {
			if assignPrecedence <= minPrec {
				return left, nil
			}
			p.next()
			value, err := p.parseExpression(assignPrecedence - 1)
			if err != nil {
				return nil, err
			}
			left = ast.NewAssignmentExpression(ast.AssignmentAdd, left, value)
			continue
		}
		if unsupportedOperators[tok.Type] {
			return nil, p.errorAt(tok, "operator '%s' is not supported", tok.Type)
		}
		op, ok := binaryOperators[tok.Type]
		if !ok || op.Precedence() <= minPrec {
			return left, nil
		}
		p.next()
		right, err := p.parseExpression(op.Precedence())
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpression(op, left, right)
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	tok := p.peek()
	op, ok := unaryOperators[tok.Type]
	if !ok {
		return p.parsePrimary()
	}
	p.next()
	// A minus directly applied to a number literal is part of the literal.
	if op == ast.UnaryOperatorNegate && p.at(lexer.Number) {
		num := p.next()
		return p.numberLiteral(num, "-"+num.Literal)
	}
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return ast.NewUnaryExpression(op, operand), nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.Number:
		p.next()
		return p.numberLiteral(tok, tok.Literal)
	case lexer.String:
		p.next()
		return ast.Str(tok.Literal), nil
	case lexer.True:
		p.next()
		return ast.Bool(true), nil
	case lexer.False:
		p.next()
		return ast.Bool(false), nil
	case lexer.Null:
		p.next()
		return ast.Null(), nil
	case lexer.LeftSquare:
		p.next()
		elements, err := p.parseExpressionList(lexer.RightSquare)
		if err != nil {
			return nil, err
		}
		return ast.Arr(elements...), nil
	case lexer.Identifier:
		p.next()
		if p.accept(lexer.LeftParen) {
			args, err := p.parseExpressionList(lexer.RightParen)
			if err != nil {
				return nil, err
			}
			return ast.NewFunctionCall(tok.Literal, args), nil
		}
		return ast.ID(tok.Literal), nil
	case lexer.LeftParen:
		p.next()
		expr, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RightParen); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.unexpected("expression")
	}
}

// parseExpressionList parses comma-separated expressions up to and including
// the closing token. A trailing comma is allowed.
func (p *Parser) parseExpressionList(closing lexer.TokenType) ([]ast.Expression, error) {
	list := make([]ast.Expression, 0)
	for !p.at(closing) {
		expr, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		list = append(list, expr)
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if _, err := p.expect(closing); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *Parser) numberLiteral(tok lexer.Token, text string) (ast.Expression, error) {
	val, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, p.errorAt(tok, "number %s out of range", text)
	}
	return ast.Num(val), nil
}
