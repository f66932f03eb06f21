package printer

import (
	"testing"

	"ir/interpreter-go/pkg/ast"
	"ir/interpreter-go/pkg/parser"
)

func sampleProgram() []ast.Statement {
	return ast.Prog(
		ast.Fn("sum", []string{"n"},
			ast.If(ast.Bin(ast.OperatorEqual, ast.ID("n"), ast.Num(0)),
				ast.Ret(ast.Num(0)),
			),
			ast.Ret(ast.Bin(ast.OperatorAdd, ast.ID("n"), ast.Call("sum", ast.Bin(ast.OperatorSubtract, ast.ID("n"), ast.Num(1))))),
		),
		ast.Let("x", ast.Bin(ast.OperatorMultiply, ast.Bin(ast.OperatorAdd, ast.Num(1), ast.Num(2)), ast.Num(-3))),
		ast.Block(
			ast.Let("i", ast.Num(0)),
			ast.While(ast.Bin(ast.OperatorLess, ast.ID("i"), ast.Num(2)),
				ast.Expr(ast.AddAssign("i", ast.Num(1))),
			),
			ast.Block(),
		),
		ast.Print(ast.Arr(ast.Str("a"), ast.Un(ast.UnaryOperatorNegate, ast.Num(5)), ast.Null(), ast.Bool(true))),
		ast.Expr(ast.Bin(ast.OperatorAdd, ast.AddAssign("x", ast.Num(1)), ast.Num(1))),
		ast.Exit(ast.Call("sum", ast.ID("x"))),
	)
}

func TestStringLayout(t *testing.T) {
	want := "fn sum(n) {\n" +
		"\tif (n == 0) {\n" +
		"\t\treturn 0;\n" +
		"\t}\n" +
		"\treturn n + sum(n - 1);\n" +
		"}\n" +
		"let x = (1 + 2) * -3;\n" +
		"{\n" +
		"\tlet i = 0;\n" +
		"\twhile (i < 2) {\n" +
		"\t\ti += 1;\n" +
		"\t}\n" +
		"\t{}\n" +
		"}\n" +
		"print([\"a\", -(5), null, true]);\n" +
		"(x += 1) + 1;\n" +
		"exit(sum(x));\n"
	if got := String(sampleProgram()); got != want {
		t.Fatalf("unexpected layout:\n%s\nwant:\n%s", got, want)
	}
}

func TestOutputParsesBackToSameTree(t *testing.T) {
	program := sampleProgram()
	reparsed, err := parser.Parse([]byte(String(program)))
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if !ast.StatementsEqual(program, reparsed) {
		t.Fatalf("round trip changed the tree:\n%s\nvs\n%s", String(program), String(reparsed))
	}
}

func TestParsedSourceIsStable(t *testing.T) {
	source := "let a = [1, [2, 3]]; if a { print(a) } while false {} fn f() {}"
	program, err := parser.Parse([]byte(source))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	first := String(program)
	again, err := parser.Parse([]byte(first))
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if second := String(again); first != second {
		t.Fatalf("printing is not stable:\n%s\nvs\n%s", first, second)
	}
}
