package ast

type NodeType string

const (
	NodeLiteral              NodeType = "Literal"
	NodeIdentifier           NodeType = "Identifier"
	NodeUnaryExpression      NodeType = "UnaryExpression"
	NodeBinaryExpression     NodeType = "BinaryExpression"
	NodeAssignmentExpression NodeType = "AssignmentExpression"
	NodeFunctionCall         NodeType = "FunctionCall"
	NodeFunctionBody         NodeType = "FunctionBody"
	NodePrintStatement       NodeType = "PrintStatement"
	NodeExitStatement        NodeType = "ExitStatement"
	NodeExpressionStatement  NodeType = "ExpressionStatement"
	NodeIfStatement          NodeType = "IfStatement"
	NodeBlockStatement       NodeType = "BlockStatement"
	NodeLetStatement         NodeType = "LetStatement"
	NodeFunctionDefinition   NodeType = "FunctionDefinition"
	NodeReturnStatement      NodeType = "ReturnStatement"
	NodeWhileLoop            NodeType = "WhileLoop"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Operators

type UnaryOperator string

const (
	UnaryOperatorPlus   UnaryOperator = "+"
	UnaryOperatorNegate UnaryOperator = "-"
	UnaryOperatorNot    UnaryOperator = "!"
)

type BinaryOperator string

const (
	OperatorAdd          BinaryOperator = "+"
	OperatorSubtract     BinaryOperator = "-"
	OperatorMultiply     BinaryOperator = "*"
	OperatorDivide       BinaryOperator = "/"
	OperatorEqual        BinaryOperator = "=="
	OperatorNotEqual     BinaryOperator = "!="
	OperatorLess         BinaryOperator = "<"
	OperatorLessEqual    BinaryOperator = "<="
	OperatorGreater      BinaryOperator = ">"
	OperatorGreaterEqual BinaryOperator = ">="
	OperatorAnd          BinaryOperator = "&&"
	OperatorOr           BinaryOperator = "||"
)

func (op BinaryOperator) IsArithmetic() bool {
	switch op {
	case OperatorAdd, OperatorSubtract, OperatorMultiply, OperatorDivide:
		return true
	}
	return false
}

func (op BinaryOperator) IsComparison() bool {
	switch op {
	case OperatorEqual, OperatorNotEqual, OperatorLess, OperatorLessEqual, OperatorGreater, OperatorGreaterEqual:
		return true
	}
	return false
}

func (op BinaryOperator) IsLogical() bool {
	return op == OperatorAnd || op == OperatorOr
}

type AssignmentOperator string

const AssignmentAdd AssignmentOperator = "+="

// Expressions

// Literal is an expression already reduced to a value.
type Literal struct {
	nodeImpl
	expressionMarker

	Value Value `json:"value"`
}

func NewLiteral(value Value) *Literal {
	if value == nil {
		value = NullValue{}
	}
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Value: value}
}

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryExpression(operator UnaryOperator, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator BinaryOperator `json:"operator"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func NewBinaryExpression(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// AssignmentExpression is the compound `target += value` form. Target must
// be an Identifier for evaluation to succeed.
type AssignmentExpression struct {
	nodeImpl
	expressionMarker

	Operator AssignmentOperator `json:"operator"`
	Target   Expression         `json:"target"`
	Value    Expression         `json:"value"`
}

func NewAssignmentExpression(operator AssignmentOperator, target, value Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Operator: operator, Target: target, Value: value}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker

	Callee    string       `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee string, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: args}
}

// FunctionBody is the unit a call evaluates. The parser never produces it.
type FunctionBody struct {
	nodeImpl
	expressionMarker

	Body []Statement `json:"body"`
}

func NewFunctionBody(body []Statement) *FunctionBody {
	return &FunctionBody{nodeImpl: newNodeImpl(NodeFunctionBody), Body: body}
}

// Statements

type PrintStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument"`
}

func NewPrintStatement(argument Expression) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Argument: argument}
}

type ExitStatement struct {
	nodeImpl
	statementMarker

	Code Expression `json:"code"`
}

func NewExitStatement(code Expression) *ExitStatement {
	return &ExitStatement{nodeImpl: newNodeImpl(NodeExitStatement), Code: code}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

// IfStatement runs Body in the enclosing scope when Condition is truthy.
type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression  `json:"condition"`
	Body      []Statement `json:"body"`
}

func NewIfStatement(condition Expression, body []Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Body: body}
}

type BlockStatement struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlockStatement(body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Body: body}
}

type LetStatement struct {
	nodeImpl
	statementMarker

	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func NewLetStatement(name string, value Expression) *LetStatement {
	return &LetStatement{nodeImpl: newNodeImpl(NodeLetStatement), Name: name, Value: value}
}

type FunctionDefinition struct {
	nodeImpl
	statementMarker

	Name   string      `json:"name"`
	Params []string    `json:"params"`
	Body   []Statement `json:"body"`
}

func NewFunctionDefinition(name string, params []string, body []Statement) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), Name: name, Params: params, Body: body}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

// WhileLoop repeats Body in the enclosing scope until Condition evaluates to
// the literal false.
type WhileLoop struct {
	nodeImpl
	statementMarker

	Condition Expression  `json:"condition"`
	Body      []Statement `json:"body"`
}

func NewWhileLoop(condition Expression, body []Statement) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body}
}
