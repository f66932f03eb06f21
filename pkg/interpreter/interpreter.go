package interpreter

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"ir/interpreter-go/pkg/ast"
	"ir/interpreter-go/pkg/runtime"
)

// DefaultMaxCallDepth bounds recursion so a runaway program reports an error
// instead of exhausting the goroutine stack.
const DefaultMaxCallDepth = 10000

// Interpreter drives evaluation of ir programs. Variables and functions live
// in two independent namespaces. An Interpreter is not safe for concurrent use.
type Interpreter struct {
	vars *runtime.Environment[ast.Value]
	fns  *runtime.Environment[*runtime.Function]

	out          io.Writer
	logger       logrus.FieldLogger
	callDepth    int
	maxCallDepth int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput redirects print output. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.out = w
	}
}

// WithLogger enables execution tracing through logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithMaxCallDepth overrides DefaultMaxCallDepth. Zero or less disables the check.
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		i.maxCallDepth = depth
	}
}

// New returns an interpreter with empty variable and function namespaces.
func New(opts ...Option) *Interpreter {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	interp := &Interpreter{
		vars:         runtime.NewEnvironment[ast.Value]("variable"),
		fns:          runtime.NewEnvironment[*runtime.Function]("function"),
		out:          os.Stdout,
		logger:       discard,
		maxCallDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(interp)
	}
	return interp
}

// Run executes program statements in order against the interpreter's
// current state. State persists between calls, which is what the REPL relies
// on. A program that executes exit returns an *ExitSignal.
func (i *Interpreter) Run(program []ast.Statement) error {
	for _, stmt := range program {
		if err := i.evaluateStatement(stmt); err != nil {
			if exit, ok := AsExit(err); ok {
				i.logger.WithField("code", exit.Code).Debug("program exited")
			}
			return err
		}
	}
	return nil
}

// Evaluate reduces a single expression in the current scope.
func (i *Interpreter) Evaluate(expr ast.Expression) (*ast.Literal, error) {
	return i.evaluateExpression(expr)
}

// Variables returns the bindings visible from the current frame.
func (i *Interpreter) Variables() map[string]ast.Value {
	return i.vars.Visible()
}

// Functions returns the sorted names of every defined function.
func (i *Interpreter) Functions() []string {
	return i.fns.Keys()
}

// ScopeDepth reports how many variable frames are live.
func (i *Interpreter) ScopeDepth() int {
	return i.vars.Depth()
}
