// Package bytecode is the alternate backend: it compiles the print and
// arithmetic subset of a program to a flat instruction list and runs it on a
// value stack.
package bytecode

import (
	"fmt"
	"strings"

	"ir/interpreter-go/pkg/ast"
)

type Op int

const (
	OpConst Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPrint
)

var opNames = map[Op]string{
	OpConst: "CONST",
	OpAdd:   "ADD",
	OpSub:   "SUB",
	OpMul:   "MUL",
	OpDiv:   "DIV",
	OpPrint: "PRINT",
}

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OP(%d)", int(op))
}

var arithmeticOps = map[ast.BinaryOperator]Op{
	ast.OperatorAdd:      OpAdd,
	ast.OperatorSubtract: OpSub,
	ast.OperatorMultiply: OpMul,
	ast.OperatorDivide:   OpDiv,
}

var opOperators = map[Op]ast.BinaryOperator{
	OpAdd: ast.OperatorAdd,
	OpSub: ast.OperatorSubtract,
	OpMul: ast.OperatorMultiply,
	OpDiv: ast.OperatorDivide,
}

// Instruction is one VM step. Value is set for OpConst only.
type Instruction struct {
	Op    Op
	Value ast.Value
}

func (in Instruction) String() string {
	if in.Op == OpConst {
		return fmt.Sprintf("%s %s", in.Op, in.Value)
	}
	return in.Op.String()
}

// Disassemble renders code one numbered instruction per line.
func Disassemble(code []Instruction) string {
	var b strings.Builder
	for idx, in := range code {
		fmt.Fprintf(&b, "%04d %s\n", idx, in)
	}
	return b.String()
}
