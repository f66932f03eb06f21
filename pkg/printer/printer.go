// Package printer renders programs as source text that parses back to the
// same tree.
package printer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"ir/interpreter-go/pkg/ast"
)

// Fprint writes program to w, one statement per line, indenting nested
// bodies by one tab per level.
func Fprint(w io.Writer, program []ast.Statement) error {
	bw := bufio.NewWriter(w)
	p := &printer{w: bw}
	for _, stmt := range program {
		p.statement(stmt, 0)
	}
	if p.err != nil {
		return p.err
	}
	return bw.Flush()
}

// String renders program as text.
func String(program []ast.Statement) string {
	var b strings.Builder
	_ = Fprint(&b, program)
	return b.String()
}

type printer struct {
	w   *bufio.Writer
	err error
}

func (p *printer) printf(indent int, format string, args ...any) {
	if p.err != nil {
		return
	}
	if _, err := p.w.WriteString(strings.Repeat("\t", indent)); err != nil {
		p.err = err
		return
	}
	if _, err := fmt.Fprintf(p.w, format, args...); err != nil {
		p.err = err
	}
}

func (p *printer) statement(stmt ast.Statement, indent int) {
	switch s := stmt.(type) {
	case *ast.PrintStatement:
		p.printf(indent, "print(%s);\n", ast.FormatExpression(s.Argument))
	case *ast.ExitStatement:
		p.printf(indent, "exit(%s);\n", ast.FormatExpression(s.Code))
	case *ast.ExpressionStatement:
		p.printf(indent, "%s;\n", ast.FormatExpression(s.Expression))
	case *ast.LetStatement:
		p.printf(indent, "let %s = %s;\n", s.Name, ast.FormatExpression(s.Value))
	case *ast.ReturnStatement:
		p.printf(indent, "return %s;\n", ast.FormatExpression(s.Argument))
	case *ast.IfStatement:
		p.printf(indent, "if (%s) ", ast.FormatExpression(s.Condition))
		p.body(s.Body, indent)
	case *ast.WhileLoop:
		p.printf(indent, "while (%s) ", ast.FormatExpression(s.Condition))
		p.body(s.Body, indent)
	case *ast.BlockStatement:
		p.printf(indent, "")
		p.body(s.Body, indent)
	case *ast.FunctionDefinition:
		p.printf(indent, "fn %s(%s) ", s.Name, strings.Join(s.Params, ", "))
		p.body(s.Body, indent)
	default:
		p.printf(indent, "// unsupported statement %s\n", stmt.NodeType())
	}
}

// body writes `{ ... }` starting on the current line.
func (p *printer) body(stmts []ast.Statement, indent int) {
	if len(stmts) == 0 {
		p.printf(0, "{}\n")
		return
	}
	p.printf(0, "{\n")
	for _, stmt := range stmts {
		p.statement(stmt, indent+1)
	}
	p.printf(indent, "}\n")
}
