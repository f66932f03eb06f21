// Package optimizer pre-evaluates constant sub-trees of a program. It never
// consults an environment: variables, calls and function bodies stay as they
// are, and the folded tree behaves exactly like the original under the
// interpreter.
package optimizer

import (
	"io"

	"github.com/sirupsen/logrus"

	"ir/interpreter-go/pkg/ast"
	"ir/interpreter-go/pkg/runtime"
)

type config struct {
	shallow bool
	logger  logrus.FieldLogger
}

// Option configures a single Optimize call.
type Option func(*config)

// Shallow leaves exit, block, func, return and while statements untouched
// instead of folding inside them.
func Shallow() Option {
	return func(c *config) {
		c.shallow = true
	}
}

// WithLogger traces every fold at Trace level.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

type optimizer struct {
	config
}

// Optimize returns a folded copy of program. The input is not modified.
func Optimize(program []ast.Statement, opts ...Option) []ast.Statement {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	o := &optimizer{config: config{logger: discard}}
	for _, opt := range opts {
		opt(&o.config)
	}
	return o.statements(program)
}

func (o *optimizer) statements(body []ast.Statement) []ast.Statement {
	if body == nil {
		return nil
	}
	out := make([]ast.Statement, 0, len(body))
	for _, stmt := range body {
		out = append(out, o.statement(stmt)...)
	}
	return out
}

// statement returns the replacement for stmt. A constant-true if expands to
// its body, which is why the result is a slice.
func (o *optimizer) statement(stmt ast.Statement) []ast.Statement {
	switch s := stmt.(type) {
	case *ast.PrintStatement:
		return one(ast.NewPrintStatement(o.expression(s.Argument)))
	case *ast.ExpressionStatement:
		return one(ast.NewExpressionStatement(o.expression(s.Expression)))
	case *ast.LetStatement:
		return one(ast.NewLetStatement(s.Name, o.expression(s.Value)))
	case *ast.IfStatement:
		return o.ifStatement(s)
	}
	if o.shallow {
		return one(stmt)
	}
	switch s := stmt.(type) {
	case *ast.ExitStatement:
		return one(ast.NewExitStatement(o.expression(s.Code)))
	case *ast.ReturnStatement:
		return one(ast.NewReturnStatement(o.expression(s.Argument)))
	case *ast.BlockStatement:
		return one(ast.NewBlockStatement(o.statements(s.Body)))
	case *ast.WhileLoop:
		return one(ast.NewWhileLoop(o.expression(s.Condition), o.statements(s.Body)))
	case *ast.FunctionDefinition:
		return one(ast.NewFunctionDefinition(s.Name, s.Params, o.statements(s.Body)))
	default:
		return one(stmt)
	}
}

// An if body already runs in the enclosing frame, so a constant-true if is
// replaced by its statements rather than by a scoped block.
func (o *optimizer) ifStatement(s *ast.IfStatement) []ast.Statement {
	cond := o.expression(s.Condition)
	body := s.Body
	if !o.shallow {
		body = o.statements(s.Body)
	}
	if !ast.IsNormal(cond) {
		return one(ast.NewIfStatement(cond, body))
	}
	lit := cond.(*ast.Literal)
	o.logger.WithField("condition", lit.Value.String()).Trace("fold if")
	if ast.Truthy(lit.Value) {
		out := make([]ast.Statement, len(body))
		copy(out, body)
		return out
	}
	return one(ast.NewExpressionStatement(ast.Null()))
}

func (o *optimizer) expression(expr ast.Expression) ast.Expression {
	switch e := expr.(type) {
	case *ast.Literal:
		arr, ok := e.Value.(ast.ArrayValue)
		if !ok {
			return e
		}
		elements := make([]ast.Expression, len(arr.Elements))
		for idx, el := range arr.Elements {
			elements[idx] = o.expression(el)
		}
		return ast.Arr(elements...)
	case *ast.UnaryExpression:
		operand := o.expression(e.Operand)
		if ast.IsNormal(operand) {
			if val, err := runtime.Unary(e.Operator, operand.(*ast.Literal).Value); err == nil {
				return o.folded(e, val)
			}
		}
		return ast.NewUnaryExpression(e.Operator, operand)
	case *ast.BinaryExpression:
		left := o.expression(e.Left)
		right := o.expression(e.Right)
		if ast.IsNormal(left) && ast.IsNormal(right) {
			if val, err := runtime.Binary(e.Operator, left.(*ast.Literal).Value, right.(*ast.Literal).Value); err == nil {
				return o.folded(e, val)
			}
		}
		return ast.NewBinaryExpression(e.Operator, left, right)
	case *ast.AssignmentExpression:
		return ast.NewAssignmentExpression(e.Operator, e.Target, o.expression(e.Value))
	case *ast.FunctionCall:
		args := make([]ast.Expression, len(e.Arguments))
		for idx, arg := range e.Arguments {
			args[idx] = o.expression(arg)
		}
		return ast.NewFunctionCall(e.Callee, args)
	default:
		// identifiers and function bodies need runtime state
		return expr
	}
}

func (o *optimizer) folded(from ast.Expression, val ast.Value) *ast.Literal {
	o.logger.WithFields(logrus.Fields{
		"expr":   ast.FormatExpression(from),
		"result": val.String(),
	}).Trace("fold")
	return ast.Lit(val)
}

func one(stmt ast.Statement) []ast.Statement {
	return []ast.Statement{stmt}
}
