package runtime

import "ir/interpreter-go/pkg/ast"

// Function is a named parameter list plus body. It captures no scope: each
// call's frame sits on top of whatever frame is current at the call site.
type Function struct {
	Name   string
	Params []string
	Body   []ast.Statement
}

func NewFunction(def *ast.FunctionDefinition) *Function {
	params := make([]string, len(def.Params))
	copy(params, def.Params)
	return &Function{Name: def.Name, Params: params, Body: def.Body}
}
