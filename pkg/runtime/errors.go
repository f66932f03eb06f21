package runtime

import (
	"errors"
	"fmt"

	"ir/interpreter-go/pkg/ast"
)

// ErrorKind classifies evaluation failures.
type ErrorKind string

const (
	UndefinedName          ErrorKind = "UndefinedName"
	InvalidBinaryOperation ErrorKind = "InvalidBinaryOperation"
	InvalidUnaryOperation  ErrorKind = "InvalidUnaryOperation"
	InvalidArgument        ErrorKind = "InvalidArgument"
	DivisionByZero         ErrorKind = "DivisionByZero"
	TypeError              ErrorKind = "TypeError"
	GenericError           ErrorKind = "Error"
)

// Error is the single error value a failed evaluation reports. Operand
// fields are set for operator errors only.
type Error struct {
	Kind     ErrorKind
	Message  string
	Name     string
	Operator string
	Left     ast.Expression
	Right    ast.Expression
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is matches kind sentinels such as ErrDivisionByZero.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == ""
}

// Kind sentinels for errors.Is.
var (
	ErrUndefinedName          = &Error{Kind: UndefinedName}
	ErrInvalidBinaryOperation = &Error{Kind: InvalidBinaryOperation}
	ErrInvalidUnaryOperation  = &Error{Kind: InvalidUnaryOperation}
	ErrInvalidArgument        = &Error{Kind: InvalidArgument}
	ErrDivisionByZero         = &Error{Kind: DivisionByZero}
	ErrTypeError              = &Error{Kind: TypeError}
	ErrGeneric                = &Error{Kind: GenericError}
)

// IsKind reports whether err (or anything it wraps) is a runtime error of kind.
func IsKind(err error, kind ErrorKind) bool {
	var rtErr *Error
	if errors.As(err, &rtErr) {
		return rtErr.Kind == kind
	}
	return false
}

func NewUndefinedName(label, name string) *Error {
	if label == "" {
		label = "name"
	}
	return &Error{Kind: UndefinedName, Name: name, Message: fmt.Sprintf("Undefined %s '%s'", label, name)}
}

func NewInvalidBinaryOperation(left ast.Expression, op string, right ast.Expression) *Error {
	return &Error{
		Kind:     InvalidBinaryOperation,
		Operator: op,
		Left:     left,
		Right:    right,
		Message:  fmt.Sprintf("invalid binary operation: %s %s %s", ast.FormatExpression(left), op, ast.FormatExpression(right)),
	}
}

func NewInvalidUnaryOperation(op string, operand ast.Expression) *Error {
	return &Error{
		Kind:     InvalidUnaryOperation,
		Operator: op,
		Right:    operand,
		Message:  fmt.Sprintf("invalid unary operation: %s%s", op, ast.FormatExpression(operand)),
	}
}

func NewInvalidArgument(callee string, index int) *Error {
	return &Error{
		Kind:    InvalidArgument,
		Name:    callee,
		Message: fmt.Sprintf("argument %d of call to '%s' did not reduce to a literal", index, callee),
	}
}

func NewDivisionByZero() *Error {
	return &Error{Kind: DivisionByZero, Message: "division by zero"}
}

func NewTypeError(format string, args ...any) *Error {
	return &Error{Kind: TypeError, Message: fmt.Sprintf(format, args...)}
}

func NewError(format string, args ...any) *Error {
	return &Error{Kind: GenericError, Message: fmt.Sprintf(format, args...)}
}
