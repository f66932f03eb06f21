package bytecode

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"ir/interpreter-go/pkg/ast"
	"ir/interpreter-go/pkg/runtime"
)

// VM executes compiled instructions. Printing matches the interpreter's
// external text form, one line per value.
type VM struct {
	stack  []ast.Value
	out    io.Writer
	logger logrus.FieldLogger
}

// NewVM returns a VM writing to out. logger may be nil.
func NewVM(out io.Writer, logger logrus.FieldLogger) *VM {
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	return &VM{out: out, logger: logger}
}

func (vm *VM) Run(code []Instruction) error {
	for pc, in := range code {
		vm.logger.WithFields(logrus.Fields{"pc": pc, "op": in.Op, "stack": len(vm.stack)}).Trace("step")
		switch in.Op {
		case OpConst:
			vm.push(in.Value)
		case OpAdd, OpSub, OpMul, OpDiv:
			right, err := vm.pop(pc)
			if err != nil {
				return err
			}
			left, err := vm.pop(pc)
			if err != nil {
				return err
			}
			val, err := runtime.Arithmetic(opOperators[in.Op], left, right)
			if err != nil {
				return err
			}
			vm.push(val)
		case OpPrint:
			val, err := vm.pop(pc)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(vm.out, val.String()); err != nil {
				return fmt.Errorf("print: %w", err)
			}
		default:
			return fmt.Errorf("bytecode: unknown instruction %s at %d", in.Op, pc)
		}
	}
	return nil
}

func (vm *VM) push(val ast.Value) {
	vm.stack = append(vm.stack, val)
}

func (vm *VM) pop(pc int) (ast.Value, error) {
	if len(vm.stack) == 0 {
		return nil, fmt.Errorf("bytecode: stack underflow at %d", pc)
	}
	last := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return last, nil
}
