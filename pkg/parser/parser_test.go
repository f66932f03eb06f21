package parser

import (
	"math"
	"testing"

	"ir/interpreter-go/pkg/ast"
)

func mustParse(t *testing.T, source string) []ast.Statement {
	t.Helper()
	program, err := Parse([]byte(source))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return program
}

func assertProgram(t *testing.T, source string, want []ast.Statement) {
	t.Helper()
	got := mustParse(t, source)
	if !ast.StatementsEqual(got, want) {
		t.Fatalf("parse mismatch for %q:\n got %d statements\nwant %d statements", source, len(got), len(want))
	}
}

func TestParseLetAndPrint(t *testing.T) {
	assertProgram(t, "let x = 3 + 2; print(x);", ast.Prog(
		ast.Let("x", ast.Bin(ast.OperatorAdd, ast.Num(3), ast.Num(2))),
		ast.Print(ast.ID("x")),
	))
}

func TestParseStatements(t *testing.T) {
	source := `
fn sum(n, acc) {
	if (n == 0) {
		return acc;
	}
	return sum(n - 1, acc + n)
}
{
	let i = 0
	while i < 3 { i += 1 }
}
exit(sum(3, 0));
`
	assertProgram(t, source, ast.Prog(
		ast.Fn("sum", []string{"n", "acc"},
			ast.If(ast.Bin(ast.OperatorEqual, ast.ID("n"), ast.Num(0)),
				ast.Ret(ast.ID("acc")),
			),
			ast.Ret(ast.Call("sum",
				ast.Bin(ast.OperatorSubtract, ast.ID("n"), ast.Num(1)),
				ast.Bin(ast.OperatorAdd, ast.ID("acc"), ast.ID("n")),
			)),
		),
		ast.Block(
			ast.Let("i", ast.Num(0)),
			ast.While(ast.Bin(ast.OperatorLess, ast.ID("i"), ast.Num(3)),
				ast.Expr(ast.AddAssign("i", ast.Num(1))),
			),
		),
		ast.Exit(ast.Call("sum", ast.Num(3), ast.Num(0))),
	))
}

func TestParsePrecedenceAndAssociativity(t *testing.T) {
	cases := []struct {
		source string
		want   ast.Expression
	}{
		{"1 + 2 * 3", ast.Bin(ast.OperatorAdd, ast.Num(1), ast.Bin(ast.OperatorMultiply, ast.Num(2), ast.Num(3)))},
		{"10 - 4 - 3", ast.Bin(ast.OperatorSubtract, ast.Bin(ast.OperatorSubtract, ast.Num(10), ast.Num(4)), ast.Num(3))},
		{"(1 + 2) * 3", ast.Bin(ast.OperatorMultiply, ast.Bin(ast.OperatorAdd, ast.Num(1), ast.Num(2)), ast.Num(3))},
		{"a || b && c", ast.Bin(ast.OperatorOr, ast.ID("a"), ast.Bin(ast.OperatorAnd, ast.ID("b"), ast.ID("c")))},
		{"1 < 2 == true", ast.Bin(ast.OperatorEqual, ast.Bin(ast.OperatorLess, ast.Num(1), ast.Num(2)), ast.Bool(true))},
		{"!a == b", ast.Bin(ast.OperatorEqual, ast.Un(ast.UnaryOperatorNot, ast.ID("a")), ast.ID("b"))},
		{"-x * +y", ast.Bin(ast.OperatorMultiply, ast.Un(ast.UnaryOperatorNegate, ast.ID("x")), ast.Un(ast.UnaryOperatorPlus, ast.ID("y")))},
		{"x += y += 1", ast.AddAssign("x", ast.AddAssign("y", ast.Num(1)))},
		{"[1, \"a\", [], null, false,]", ast.Arr(ast.Num(1), ast.Str("a"), ast.Arr(), ast.Null(), ast.Bool(false))},
		{"f()", ast.Call("f")},
	}
	for _, tc := range cases {
		got, err := ParseExpression([]byte(tc.source))
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.source, err)
		}
		if !ast.Equal(got, tc.want) {
			t.Fatalf("parse %q: got %s, want %s", tc.source, ast.FormatExpression(got), ast.FormatExpression(tc.want))
		}
	}
}

func TestParseNegativeLiterals(t *testing.T) {
	got, err := ParseExpression([]byte("3 - -5"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !ast.Equal(got, ast.Bin(ast.OperatorSubtract, ast.Num(3), ast.Num(-5))) {
		t.Fatalf("unexpected tree %s", ast.FormatExpression(got))
	}
	got, err = ParseExpression([]byte("-9223372036854775808"))
	if err != nil || !ast.Equal(got, ast.Num(math.MinInt64)) {
		t.Fatalf("expected MinInt64 literal, got %v %v", got, err)
	}
	got, err = ParseExpression([]byte("-(5)"))
	if err != nil || !ast.Equal(got, ast.Un(ast.UnaryOperatorNegate, ast.Num(5))) {
		t.Fatalf("expected unary negate node, got %v %v", got, err)
	}
	if _, err := ParseExpression([]byte("9223372036854775808")); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		source     string
		incomplete bool
	}{
		{"let = 1", false},
		{"print(1", true},
		{"fn f(a, b) {", true},
		{"if x { print(1) } else { print(2) }", false},
		{"for (let i = 0; i < 1; i += 1) {}", false},
		{"1 % 2", false},
		{"print(\"unterminated", true},
		{"let x = ", true},
		{"print 1 )", false},
	}
	for _, tc := range cases {
		_, err := Parse([]byte(tc.source))
		if err == nil {
			t.Fatalf("expected error for %q", tc.source)
		}
		if IsIncomplete(err) != tc.incomplete {
			t.Fatalf("%q: IsIncomplete=%v, want %v (%v)", tc.source, IsIncomplete(err), tc.incomplete, err)
		}
	}
}

func TestParseErrorLocation(t *testing.T) {
	_, err := Parse([]byte("let x = 1;\nlet = 2;"))
	parseErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if parseErr.Loc.Line != 2 || parseErr.Loc.Col != 5 {
		t.Fatalf("expected error at 2:5, got %s", parseErr.Loc)
	}
	if parseErr.Error() != "parser: 2:5: expected 'IDENT', found '='" {
		t.Fatalf("unexpected message %q", parseErr.Error())
	}
}
