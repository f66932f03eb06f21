package bytecode

import (
	"errors"
	"fmt"

	"ir/interpreter-go/pkg/ast"
)

// ErrUnsupported marks statements and expressions outside the subset the VM
// can run.
var ErrUnsupported = errors.New("bytecode: unsupported construct")

type Compiler struct {
	code []Instruction
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile lowers program. Only print statements over literals and + - * /
// are accepted.
func (c *Compiler) Compile(program []ast.Statement) ([]Instruction, error) {
	c.code = make([]Instruction, 0, len(program)*4)
	for _, stmt := range program {
		ps, ok := stmt.(*ast.PrintStatement)
		if !ok {
			return nil, unsupported(stmt)
		}
		if err := c.compileExpression(ps.Argument); err != nil {
			return nil, err
		}
		c.emit(Instruction{Op: OpPrint})
	}
	return c.code, nil
}

func (c *Compiler) compileExpression(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.Literal:
		if !ast.IsNormal(e) {
			return unsupported(e)
		}
		c.emit(Instruction{Op: OpConst, Value: e.Value})
		return nil
	case *ast.BinaryExpression:
		op, ok := arithmeticOps[e.Operator]
		if !ok {
			return unsupported(e)
		}
		if err := c.compileExpression(e.Left); err != nil {
			return err
		}
		if err := c.compileExpression(e.Right); err != nil {
			return err
		}
		c.emit(Instruction{Op: op})
		return nil
	default:
		return unsupported(expr)
	}
}

func (c *Compiler) emit(in Instruction) {
	c.code = append(c.code, in)
}

func unsupported(node ast.Node) error {
	if node == nil {
		return fmt.Errorf("%w: nil node", ErrUnsupported)
	}
	if expr, ok := node.(ast.Expression); ok {
		return fmt.Errorf("%w: %s %s", ErrUnsupported, node.NodeType(), ast.FormatExpression(expr))
	}
	return fmt.Errorf("%w: %s", ErrUnsupported, node.NodeType())
}
