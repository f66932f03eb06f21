package interpreter

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"ir/interpreter-go/pkg/ast"
	"ir/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement) error {
	if node == nil {
		return runtime.NewError("nil statement")
	}
	i.logger.WithFields(logrus.Fields{
		"stmt":  node.NodeType(),
		"depth": i.vars.Depth(),
	}).Trace("exec")
	switch n := node.(type) {
	case *ast.PrintStatement:
		return i.evaluatePrintStatement(n)
	case *ast.ExitStatement:
		return i.evaluateExitStatement(n)
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(n.Expression)
		return err
	case *ast.IfStatement:
		return i.evaluateIfStatement(n)
	case *ast.BlockStatement:
		return i.evaluateBlock(n)
	case *ast.LetStatement:
		return i.evaluateLetStatement(n)
	case *ast.FunctionDefinition:
		i.fns.Define(n.Name, runtime.NewFunction(n))
		return nil
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(n)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(n)
	default:
		return runtime.NewError("unsupported statement type: %s", n.NodeType())
	}
}

// evaluateStatements runs body in the current frame.
func (i *Interpreter) evaluateStatements(body []ast.Statement) error {
	for _, stmt := range body {
		if err := i.evaluateStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluatePrintStatement(stmt *ast.PrintStatement) error {
	lit, err := i.evaluateExpression(stmt.Argument)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(i.out, lit.Value.String()); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	return nil
}

func (i *Interpreter) evaluateExitStatement(stmt *ast.ExitStatement) error {
	lit, err := i.evaluateExpression(stmt.Code)
	if err != nil {
		return err
	}
	code, ok := lit.Value.(ast.NumberValue)
	if !ok {
		return runtime.NewTypeError("exit code must be a number, got %s", lit.Value.Kind())
	}
	return &ExitSignal{Code: int32(code.Val)}
}

// if runs its body in the current frame; only block opens a scope.
func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStatement) error {
	cond, err := i.evaluateExpression(stmt.Condition)
	if err != nil {
		return err
	}
	if !ast.Truthy(cond.Value) {
		return nil
	}
	return i.evaluateStatements(stmt.Body)
}

func (i *Interpreter) evaluateBlock(block *ast.BlockStatement) error {
	saved := i.vars.Push()
	defer i.vars.Restore(saved)
	return i.evaluateStatements(block.Body)
}

func (i *Interpreter) evaluateLetStatement(stmt *ast.LetStatement) error {
	lit, err := i.evaluateExpression(stmt.Value)
	if err != nil {
		return err
	}
	i.vars.Define(stmt.Name, lit.Value)
	return nil
}

// A top-level return evaluates its argument and is otherwise a no-op.
func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement) error {
	lit, err := i.evaluateExpression(stmt.Argument)
	if err != nil {
		return err
	}
	if i.callDepth == 0 {
		return nil
	}
	return returnSignal{value: lit}
}

// while stops only on the literal false; other falsy values keep it looping.
func (i *Interpreter) evaluateWhileLoop(loop *ast.WhileLoop) error {
	for {
		cond, err := i.evaluateExpression(loop.Condition)
		if err != nil {
			return err
		}
		if b, ok := cond.Value.(ast.BoolValue); ok && !b.Val {
			return nil
		}
		if err := i.evaluateStatements(loop.Body); err != nil {
			return err
		}
	}
}
