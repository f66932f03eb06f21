package runtime

import (
	"errors"
	"math"
	"testing"

	"ir/interpreter-go/pkg/ast"
)

func TestArithmeticNumbers(t *testing.T) {
	cases := []struct {
		op   ast.BinaryOperator
		l, r int64
		want int64
	}{
		{ast.OperatorAdd, 3, 2, 5},
		{ast.OperatorSubtract, 3, 5, -2},
		{ast.OperatorMultiply, -4, 6, -24},
		{ast.OperatorDivide, 7, 2, 3},
		{ast.OperatorDivide, -7, 2, -3},
		{ast.OperatorMultiply, 0, math.MinInt64, 0},
	}
	for _, tc := range cases {
		got, err := Arithmetic(tc.op, num(tc.l), num(tc.r))
		if err != nil {
			t.Fatalf("%d %s %d failed: %v", tc.l, tc.op, tc.r, err)
		}
		if !ast.ValuesEqual(got, num(tc.want)) {
			t.Fatalf("%d %s %d = %s, want %d", tc.l, tc.op, tc.r, got, tc.want)
		}
	}
}

func TestArithmeticTextConcatenation(t *testing.T) {
	got, err := Arithmetic(ast.OperatorAdd, ast.TextValue{Val: "foo"}, ast.TextValue{Val: "bar"})
	if err != nil {
		t.Fatalf("concat failed: %v", err)
	}
	if !ast.ValuesEqual(got, ast.TextValue{Val: "foobar"}) {
		t.Fatalf("expected foobar, got %s", got)
	}
	if _, err := Arithmetic(ast.OperatorSubtract, ast.TextValue{Val: "a"}, ast.TextValue{Val: "b"}); !errors.Is(err, ErrInvalidBinaryOperation) {
		t.Fatalf("expected InvalidBinaryOperation for text subtraction, got %v", err)
	}
}

func TestArithmeticErrors(t *testing.T) {
	if _, err := Arithmetic(ast.OperatorDivide, num(1), num(0)); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected DivisionByZero, got %v", err)
	}
	_, err := Arithmetic(ast.OperatorAdd, num(1), ast.TextValue{Val: "1"})
	var rtErr *Error
	if !errors.As(err, &rtErr) || rtErr.Kind != InvalidBinaryOperation || rtErr.Operator != "+" {
		t.Fatalf("expected InvalidBinaryOperation for mixed kinds, got %v", err)
	}
	if rtErr.Error() != `invalid binary operation: 1 + "1"` {
		t.Fatalf("unexpected message %q", rtErr.Error())
	}
	overflows := []struct {
		op   ast.BinaryOperator
		l, r int64
	}{
		{ast.OperatorAdd, math.MaxInt64, 1},
		{ast.OperatorSubtract, math.MinInt64, 1},
		{ast.OperatorMultiply, math.MaxInt64, 2},
		{ast.OperatorMultiply, math.MinInt64, -1},
		{ast.OperatorDivide, math.MinInt64, -1},
	}
	for _, tc := range overflows {
		if _, err := Arithmetic(tc.op, num(tc.l), num(tc.r)); !IsKind(err, GenericError) {
			t.Fatalf("expected overflow error for %d %s %d, got %v", tc.l, tc.op, tc.r, err)
		}
	}
}

func TestUnary(t *testing.T) {
	got, err := Unary(ast.UnaryOperatorPlus, num(-5))
	if err != nil || !ast.ValuesEqual(got, num(5)) {
		t.Fatalf("unary + should be absolute value, got %v %v", got, err)
	}
	got, err = Unary(ast.UnaryOperatorNegate, num(5))
	if err != nil || !ast.ValuesEqual(got, num(-5)) {
		t.Fatalf("unary - should negate, got %v %v", got, err)
	}
	got, err = Unary(ast.UnaryOperatorNot, ast.BoolValue{Val: false})
	if err != nil || !ast.ValuesEqual(got, ast.BoolValue{Val: true}) {
		t.Fatalf("! should invert booleans, got %v %v", got, err)
	}
	if _, err := Unary(ast.UnaryOperatorNot, num(0)); !errors.Is(err, ErrInvalidUnaryOperation) {
		t.Fatalf("expected InvalidUnaryOperation for !0, got %v", err)
	}
	if _, err := Unary(ast.UnaryOperatorNegate, ast.TextValue{Val: "x"}); !errors.Is(err, ErrInvalidUnaryOperation) {
		t.Fatalf("expected InvalidUnaryOperation for -\"x\", got %v", err)
	}
}

func TestCompareAndLogical(t *testing.T) {
	eq, _ := Compare(ast.OperatorEqual, num(1), ast.TextValue{Val: "1"})
	if !ast.ValuesEqual(eq, ast.BoolValue{Val: false}) {
		t.Fatalf("cross-kind == must be false, got %s", eq)
	}
	ne, _ := Compare(ast.OperatorNotEqual, num(1), ast.TextValue{Val: "1"})
	if !ast.ValuesEqual(ne, ast.BoolValue{Val: true}) {
		t.Fatalf("cross-kind != must be true, got %s", ne)
	}
	lt, _ := Compare(ast.OperatorLess, ast.TextValue{Val: "abc"}, ast.TextValue{Val: "abd"})
	if !ast.ValuesEqual(lt, ast.BoolValue{Val: true}) {
		t.Fatalf("expected lexicographic <, got %s", lt)
	}
	ge, _ := Compare(ast.OperatorGreaterEqual, num(2), num(2))
	if !ast.ValuesEqual(ge, ast.BoolValue{Val: true}) {
		t.Fatalf("expected 2 >= 2, got %s", ge)
	}
	and, _ := Logical(ast.OperatorAnd, num(1), ast.TextValue{Val: ""})
	if !ast.ValuesEqual(and, ast.BoolValue{Val: false}) {
		t.Fatalf("expected 1 && \"\" to be false, got %s", and)
	}
	or, _ := Logical(ast.OperatorOr, ast.NullValue{}, ast.ArrayValue{Elements: []ast.Expression{ast.Num(0)}})
	if !ast.ValuesEqual(or, ast.BoolValue{Val: true}) {
		t.Fatalf("expected null || [0] to be true, got %s", or)
	}
}
