package ast

// Literal helpers.

func Lit(value Value) *Literal {
	return NewLiteral(value)
}

func Num(value int64) *Literal {
	return NewLiteral(NumberValue{Val: value})
}

func Str(value string) *Literal {
	return NewLiteral(TextValue{Val: value})
}

func Bool(value bool) *Literal {
	return NewLiteral(BoolValue{Val: value})
}

func Null() *Literal {
	return NewLiteral(NullValue{})
}

func Arr(elements ...Expression) *Literal {
	if elements == nil {
		elements = []Expression{}
	}
	return NewLiteral(ArrayValue{Elements: elements})
}

// Expression helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Un(op UnaryOperator, operand Expression) *UnaryExpression {
	return NewUnaryExpression(op, operand)
}

func Bin(op BinaryOperator, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func AddAssign(name string, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(AssignmentAdd, ID(name), value)
}

func Call(callee string, args ...Expression) *FunctionCall {
	return NewFunctionCall(callee, args)
}

// Statement helpers.

func Print(arg Expression) *PrintStatement {
	return NewPrintStatement(arg)
}

func Exit(code Expression) *ExitStatement {
	return NewExitStatement(code)
}

func Expr(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func If(cond Expression, body ...Statement) *IfStatement {
	return NewIfStatement(cond, body)
}

func Block(body ...Statement) *BlockStatement {
	return NewBlockStatement(body)
}

func Let(name string, value Expression) *LetStatement {
	return NewLetStatement(name, value)
}

func Fn(name string, params []string, body ...Statement) *FunctionDefinition {
	return NewFunctionDefinition(name, params, body)
}

func Ret(arg Expression) *ReturnStatement {
	return NewReturnStatement(arg)
}

func While(cond Expression, body ...Statement) *WhileLoop {
	return NewWhileLoop(cond, body)
}

func Prog(stmts ...Statement) []Statement {
	return stmts
}
