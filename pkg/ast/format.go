package ast

import (
	"fmt"
	"strings"
)

const (
	precedenceAssign = iota + 1
	precedenceOr
	precedenceAnd
	precedenceEquality
	precedenceComparison
	precedenceAdditive
	precedenceMultiplicative
	precedenceUnary
	precedencePrimary
)

// Precedence returns the binding strength of a binary operator; higher binds
// tighter. The parser and FormatExpression share this table.
func (op BinaryOperator) Precedence() int {
	switch op {
	case OperatorOr:
		return precedenceOr
	case OperatorAnd:
		return precedenceAnd
	case OperatorEqual, OperatorNotEqual:
		return precedenceEquality
	case OperatorLess, OperatorLessEqual, OperatorGreater, OperatorGreaterEqual:
		return precedenceComparison
	case OperatorAdd, OperatorSubtract:
		return precedenceAdditive
	case OperatorMultiply, OperatorDivide:
		return precedenceMultiplicative
	default:
		return 0
	}
}

func expressionPrecedence(expr Expression) int {
	switch e := expr.(type) {
	case *AssignmentExpression:
		return precedenceAssign
	case *BinaryExpression:
		return e.Operator.Precedence()
	case *UnaryExpression:
		return precedenceUnary
	default:
		return precedencePrimary
	}
}

// FormatExpression renders expr as source text. Sub-expressions are
// parenthesised only where precedence requires it, so the output parses back
// to the same tree.
func FormatExpression(expr Expression) string {
	var b strings.Builder
	writeExpression(&b, expr)
	return b.String()
}

func writeExpression(b *strings.Builder, expr Expression) {
	switch e := expr.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Literal:
		if e.Value == nil {
			b.WriteString("null")
			return
		}
		b.WriteString(e.Value.String())
	case *Identifier:
		b.WriteString(e.Name)
	case *UnaryExpression:
		b.WriteString(string(e.Operator))
		// "-5" reads back as a negative literal, so keep the node visible.
		if lit, ok := e.Operand.(*Literal); ok && e.Operator == UnaryOperatorNegate {
			if num, ok := lit.Value.(NumberValue); ok && num.Val >= 0 {
				b.WriteString("(")
				writeExpression(b, lit)
				b.WriteString(")")
				return
			}
		}
		writeOperand(b, e.Operand, precedenceUnary)
	case *BinaryExpression:
		prec := e.Operator.Precedence()
		writeOperand(b, e.Left, prec)
		b.WriteString(" ")
		b.WriteString(string(e.Operator))
		b.WriteString(" ")
		// Left-associative: an equal-precedence right operand needs parens.
		writeOperand(b, e.Right, prec+1)
	case *AssignmentExpression:
		writeOperand(b, e.Target, precedencePrimary)
		b.WriteString(" ")
		b.WriteString(string(e.Operator))
		b.WriteString(" ")
		writeExpression(b, e.Value)
	case *FunctionCall:
		b.WriteString(e.Callee)
		b.WriteString("(")
		for idx, arg := range e.Arguments {
			if idx > 0 {
				b.WriteString(", ")
			}
			writeExpression(b, arg)
		}
		b.WriteString(")")
	case *FunctionBody:
		fmt.Fprintf(b, "<function body: %d statements>", len(e.Body))
	default:
		fmt.Fprintf(b, "<%s>", expr.NodeType())
	}
}

func writeOperand(b *strings.Builder, expr Expression, min int) {
	if expressionPrecedence(expr) < min {
		b.WriteString("(")
		writeExpression(b, expr)
		b.WriteString(")")
		return
	}
	writeExpression(b, expr)
}
