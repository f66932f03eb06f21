package ast

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValueTextForm(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{NumberValue{Val: 42}, "42"},
		{NumberValue{Val: -7}, "-7"},
		{TextValue{Val: "hi"}, `"hi"`},
		{BoolValue{Val: true}, "true"},
		{BoolValue{Val: false}, "false"},
		{NullValue{}, "null"},
		{ArrayValue{Elements: []Expression{Num(1), Str("a"), Arr()}}, `[1, "a", []]`},
		{ArrayValue{}, "[]"},
	}
	for _, tc := range cases {
		if got := tc.value.String(); got != tc.want {
			t.Fatalf("String(%#v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestTruthy(t *testing.T) {
	falsy := []Value{NumberValue{}, TextValue{}, ArrayValue{}, BoolValue{}, NullValue{}}
	for _, v := range falsy {
		if Truthy(v) {
			t.Fatalf("expected %s to be falsy", v)
		}
	}
	truthy := []Value{NumberValue{Val: -1}, TextValue{Val: "x"}, ArrayValue{Elements: []Expression{Null()}}, BoolValue{Val: true}}
	for _, v := range truthy {
		if !Truthy(v) {
			t.Fatalf("expected %s to be truthy", v)
		}
	}
}

func TestIsNormal(t *testing.T) {
	if !IsNormal(Arr(Num(1), Arr(Str("x")))) {
		t.Fatalf("nested literal array should be normal")
	}
	if IsNormal(Arr(Num(1), ID("x"))) {
		t.Fatalf("array holding an identifier is not normal")
	}
	if IsNormal(Bin(OperatorAdd, Num(1), Num(2))) {
		t.Fatalf("binary expression is not normal")
	}
}

func TestEqualStructural(t *testing.T) {
	a := Prog(
		Fn("f", []string{"n"}, If(Bin(OperatorLess, ID("n"), Num(1)), Ret(Num(0)))),
		Print(Call("f", Num(3))),
	)
	b := Prog(
		Fn("f", []string{"n"}, If(Bin(OperatorLess, ID("n"), Num(1)), Ret(Num(0)))),
		Print(Call("f", Num(3))),
	)
	if !StatementsEqual(a, b) {
		t.Fatalf("expected identical trees to be equal")
	}
	c := Prog(
		Fn("f", []string{"n"}, If(Bin(OperatorLess, ID("n"), Num(2)), Ret(Num(0)))),
		Print(Call("f", Num(3))),
	)
	if StatementsEqual(a, c) {
		t.Fatalf("expected trees differing in a literal to be unequal")
	}
	if !Equal(Block(), NewBlockStatement(nil)) {
		t.Fatalf("nil and empty bodies should compare equal")
	}
}

func TestValuesEqualCrossKind(t *testing.T) {
	if ValuesEqual(NumberValue{Val: 1}, TextValue{Val: "1"}) {
		t.Fatalf("cross-kind values must not be equal")
	}
	if !ValuesEqual(ArrayValue{Elements: []Expression{Num(1)}}, ArrayValue{Elements: []Expression{Num(1)}}) {
		t.Fatalf("arrays with equal elements should be equal")
	}
}

func TestCompareValues(t *testing.T) {
	cases := []struct {
		a, b Value
		want int
	}{
		{NumberValue{Val: 1}, NumberValue{Val: 2}, -1},
		{TextValue{Val: "b"}, TextValue{Val: "a"}, 1},
		{BoolValue{Val: false}, BoolValue{Val: true}, -1},
		{ArrayValue{Elements: []Expression{Num(1), Num(2)}}, ArrayValue{Elements: []Expression{Num(1), Num(3)}}, -1},
		{ArrayValue{Elements: []Expression{Num(1)}}, ArrayValue{Elements: []Expression{Num(1), Num(0)}}, -1},
		{NullValue{}, NullValue{}, 0},
		{BoolValue{Val: true}, NumberValue{Val: 0}, -1},
		{NullValue{}, TextValue{Val: "z"}, 1},
	}
	for _, tc := range cases {
		if got := CompareValues(tc.a, tc.b); got != tc.want {
			t.Fatalf("CompareValues(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestFormatExpressionParenthesises(t *testing.T) {
	cases := []struct {
		expr Expression
		want string
	}{
		{Bin(OperatorMultiply, Bin(OperatorAdd, Num(1), Num(2)), Num(3)), "(1 + 2) * 3"},
		{Bin(OperatorSubtract, Num(1), Bin(OperatorSubtract, Num(2), Num(3))), "1 - (2 - 3)"},
		{Bin(OperatorSubtract, Bin(OperatorSubtract, Num(1), Num(2)), Num(3)), "1 - 2 - 3"},
		{Un(UnaryOperatorNot, Bin(OperatorEqual, ID("a"), ID("b"))), "!(a == b)"},
		{Un(UnaryOperatorNegate, Num(5)), "-(5)"},
		{Num(-5), "-5"},
		{AddAssign("x", Bin(OperatorAdd, Num(1), Num(2))), "x += 1 + 2"},
		{Call("f"), "f()"},
		{Call("f", Num(1), Str("a")), `f(1, "a")`},
	}
	for _, tc := range cases {
		if got := FormatExpression(tc.expr); got != tc.want {
			t.Fatalf("FormatExpression = %q, want %q", got, tc.want)
		}
	}
}

func TestLiteralJSONKeepsFullNumberRange(t *testing.T) {
	data, err := json.Marshal(Num(-9223372036854775808))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"-9223372036854775808"`) {
		t.Fatalf("expected number encoded as string, got %s", data)
	}
}
