package interpreter

import (
	"errors"
	"fmt"

	"ir/interpreter-go/pkg/ast"
)

// returnSignal unwinds nested if, block and while bodies up to the nearest
// call.
type returnSignal struct {
	value *ast.Literal
}

func (r returnSignal) Error() string {
	return "return"
}

// ExitSignal reports that the program executed exit. It travels the error
// channel so embedders can intercept termination; scope frames are restored
// while it unwinds but no further statements run.
type ExitSignal struct {
	Code int32
}

func (e *ExitSignal) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// AsExit extracts an *ExitSignal from err.
func AsExit(err error) (*ExitSignal, bool) {
	var sig *ExitSignal
	if errors.As(err, &sig) {
		return sig, true
	}
	return nil, false
}
