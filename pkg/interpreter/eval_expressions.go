package interpreter

import (
	"github.com/sirupsen/logrus"

	"ir/interpreter-go/pkg/ast"
	"ir/interpreter-go/pkg/runtime"
)

// evaluateExpression reduces node to a literal in normal form.
func (i *Interpreter) evaluateExpression(node ast.Expression) (*ast.Literal, error) {
	if node == nil {
		return nil, runtime.NewError("nil expression")
	}
	switch n := node.(type) {
	case *ast.Literal:
		return i.evaluateLiteral(n)
	case *ast.Identifier:
		val, err := i.vars.Get(n.Name)
		if err != nil {
			return nil, err
		}
		return ast.Lit(val), nil
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n)
	case *ast.AssignmentExpression:
		return i.evaluateAssignment(n)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n)
	case *ast.FunctionBody:
		return i.evaluateFunctionBody(n)
	default:
		return nil, runtime.NewError("unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateLiteral(lit *ast.Literal) (*ast.Literal, error) {
	if lit.Value == nil {
		return ast.Null(), nil
	}
	arr, ok := lit.Value.(ast.ArrayValue)
	if !ok {
		return lit, nil
	}
	if ast.IsNormal(lit) {
		return lit, nil
	}
	elements := make([]ast.Expression, len(arr.Elements))
	for idx, el := range arr.Elements {
		reduced, err := i.evaluateExpression(el)
		if err != nil {
			return nil, err
		}
		elements[idx] = reduced
	}
	return ast.Arr(elements...), nil
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression) (*ast.Literal, error) {
	operand, err := i.evaluateExpression(expr.Operand)
	if err != nil {
		return nil, err
	}
	val, err := runtime.Unary(expr.Operator, operand.Value)
	if err != nil {
		return nil, err
	}
	return ast.Lit(val), nil
}

// Both operands are always evaluated, left first; && and || do not
// short-circuit.
func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression) (*ast.Literal, error) {
	left, err := i.evaluateExpression(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right)
	if err != nil {
		return nil, err
	}
	val, err := runtime.Binary(expr.Operator, left.Value, right.Value)
	if err != nil {
		return nil, err
	}
	return ast.Lit(val), nil
}

// evaluateAssignment handles `name += expr`. The new value is defined in the
// current frame, shadowing any outer binding.
func (i *Interpreter) evaluateAssignment(assign *ast.AssignmentExpression) (*ast.Literal, error) {
	target, ok := assign.Target.(*ast.Identifier)
	if !ok {
		return nil, runtime.NewInvalidBinaryOperation(assign.Target, string(assign.Operator), assign.Value)
	}
	increment, err := i.evaluateExpression(assign.Value)
	if err != nil {
		return nil, err
	}
	current, err := i.vars.Get(target.Name)
	if err != nil {
		return nil, err
	}
	_, currentIsNum := current.(ast.NumberValue)
	_, incrementIsNum := increment.Value.(ast.NumberValue)
	if !currentIsNum || !incrementIsNum {
		return nil, runtime.NewInvalidBinaryOperation(ast.Lit(current), string(assign.Operator), increment)
	}
	sum, err := runtime.Arithmetic(ast.OperatorAdd, current, increment.Value)
	if err != nil {
		return nil, err
	}
	i.vars.Define(target.Name, sum)
	return ast.Lit(sum), nil
}

// evaluateFunctionCall evaluates arguments in the caller's frame, then runs
// the body in a new frame stacked on the caller's current frame.
func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall) (*ast.Literal, error) {
	fn, err := i.fns.Get(call.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]*ast.Literal, len(call.Arguments))
	for idx, argExpr := range call.Arguments {
		arg, err := i.evaluateExpression(argExpr)
		if err != nil {
			return nil, err
		}
		if !ast.IsNormal(arg) {
			return nil, runtime.NewInvalidArgument(call.Callee, idx)
		}
		args[idx] = arg
	}
	return i.invokeFunction(fn, args)
}

func (i *Interpreter) invokeFunction(fn *runtime.Function, args []*ast.Literal) (*ast.Literal, error) {
	if i.maxCallDepth > 0 && i.callDepth >= i.maxCallDepth {
		return nil, runtime.NewError("maximum call depth %d exceeded in '%s'", i.maxCallDepth, fn.Name)
	}
	i.logger.WithFields(logrus.Fields{
		"fn":    fn.Name,
		"args":  len(args),
		"depth": i.callDepth + 1,
	}).Debug("call")

	saved := i.vars.Push()
	i.callDepth++
	defer func() {
		i.callDepth--
		i.vars.Restore(saved)
	}()
	for idx, param := range fn.Params {
		if idx >= len(args) {
			break
		}
		i.vars.Define(param, args[idx].Value)
	}
	return i.evaluateExpression(ast.NewFunctionBody(fn.Body))
}

// evaluateFunctionBody yields the pending return value, or null when the
// body completes without one.
func (i *Interpreter) evaluateFunctionBody(body *ast.FunctionBody) (*ast.Literal, error) {
	if err := i.evaluateStatements(body.Body); err != nil {
		if sig, ok := err.(returnSignal); ok {
			return sig.value, nil
		}
		return nil, err
	}
	return ast.Null(), nil
}
