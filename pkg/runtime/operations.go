package runtime

import (
	"math"

	"ir/interpreter-go/pkg/ast"
)

// Operator semantics shared by the evaluator, the optimizer and the bytecode
// VM. Every operand is an already-reduced value.

// Binary applies any binary operator.
func Binary(op ast.BinaryOperator, left, right ast.Value) (ast.Value, error) {
	switch {
	case op.IsArithmetic():
		return Arithmetic(op, left, right)
	case op.IsComparison():
		return Compare(op, left, right)
	case op.IsLogical():
		return Logical(op, left, right)
	default:
		return nil, NewError("unsupported binary operator %s", op)
	}
}

// Arithmetic handles + - * / over numbers and + over two texts.
func Arithmetic(op ast.BinaryOperator, left, right ast.Value) (ast.Value, error) {
	switch lv := left.(type) {
	case ast.NumberValue:
		rv, ok := right.(ast.NumberValue)
		if !ok {
			break
		}
		return numberArithmetic(op, lv.Val, rv.Val, left, right)
	case ast.TextValue:
		rv, ok := right.(ast.TextValue)
		if !ok || op != ast.OperatorAdd {
			break
		}
		return ast.TextValue{Val: lv.Val + rv.Val}, nil
	}
	return nil, NewInvalidBinaryOperation(ast.Lit(left), string(op), ast.Lit(right))
}

func numberArithmetic(op ast.BinaryOperator, l, r int64, left, right ast.Value) (ast.Value, error) {
	var result int64
	switch op {
	case ast.OperatorAdd:
		result = l + r
		if (r > 0 && result < l) || (r < 0 && result > l) {
			return nil, newOverflowError(op)
		}
	case ast.OperatorSubtract:
		result = l - r
		if (r > 0 && result > l) || (r < 0 && result < l) {
			return nil, newOverflowError(op)
		}
	case ast.OperatorMultiply:
		if l == 0 || r == 0 {
			return ast.NumberValue{Val: 0}, nil
		}
		result = l * r
		if result/r != l || (l == -1 && r == math.MinInt64) || (r == -1 && l == math.MinInt64) {
			return nil, newOverflowError(op)
		}
	case ast.OperatorDivide:
		if r == 0 {
			return nil, NewDivisionByZero()
		}
		if l == math.MinInt64 && r == -1 {
			return nil, newOverflowError(op)
		}
		result = l / r
	default:
		return nil, NewInvalidBinaryOperation(ast.Lit(left), string(op), ast.Lit(right))
	}
	return ast.NumberValue{Val: result}, nil
}

func newOverflowError(op ast.BinaryOperator) *Error {
	return NewError("integer overflow in '%s'", op)
}

// Unary handles +, - and !. Unary + yields the absolute value.
func Unary(op ast.UnaryOperator, operand ast.Value) (ast.Value, error) {
	switch op {
	case ast.UnaryOperatorPlus, ast.UnaryOperatorNegate:
		num, ok := operand.(ast.NumberValue)
		if !ok {
			break
		}
		if num.Val == math.MinInt64 {
			return nil, NewError("integer overflow in unary '%s'", op)
		}
		if op == ast.UnaryOperatorNegate || num.Val < 0 {
			return ast.NumberValue{Val: -num.Val}, nil
		}
		return num, nil
	case ast.UnaryOperatorNot:
		if b, ok := operand.(ast.BoolValue); ok {
			return ast.BoolValue{Val: !b.Val}, nil
		}
	}
	return nil, NewInvalidUnaryOperation(string(op), ast.Lit(operand))
}

// Compare evaluates == != < <= > >=. Equality never fails; ordering across
// kinds follows the structural order and is not meaningful to programs.
func Compare(op ast.BinaryOperator, left, right ast.Value) (ast.Value, error) {
	switch op {
	case ast.OperatorEqual:
		return ast.BoolValue{Val: ast.ValuesEqual(left, right)}, nil
	case ast.OperatorNotEqual:
		return ast.BoolValue{Val: !ast.ValuesEqual(left, right)}, nil
	case ast.OperatorLess, ast.OperatorLessEqual, ast.OperatorGreater, ast.OperatorGreaterEqual:
		return ast.BoolValue{Val: comparisonOp(op, ast.CompareValues(left, right))}, nil
	default:
		return nil, NewError("unsupported comparison operator %s", op)
	}
}

func comparisonOp(op ast.BinaryOperator, cmp int) bool {
	switch op {
	case ast.OperatorLess:
		return cmp < 0
	case ast.OperatorLessEqual:
		return cmp <= 0
	case ast.OperatorGreater:
		return cmp > 0
	case ast.OperatorGreaterEqual:
		return cmp >= 0
	default:
		return false
	}
}

// Logical combines two evaluated operands by truthiness. Callers evaluate
// both sides first; there is no short-circuit.
func Logical(op ast.BinaryOperator, left, right ast.Value) (ast.Value, error) {
	switch op {
	case ast.OperatorAnd:
		return ast.BoolValue{Val: ast.Truthy(left) && ast.Truthy(right)}, nil
	case ast.OperatorOr:
		return ast.BoolValue{Val: ast.Truthy(left) || ast.Truthy(right)}, nil
	default:
		return nil, NewError("unsupported logical operator %s", op)
	}
}
