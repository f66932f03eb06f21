package ast

import "strings"

// Equal reports deep structural equality of two trees. Nil and empty
// slices compare equal.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.NodeType() != b.NodeType() {
		return false
	}
	switch x := a.(type) {
	case *Literal:
		y, ok := b.(*Literal)
		return ok && ValuesEqual(x.Value, y.Value)
	case *Identifier:
		y, ok := b.(*Identifier)
		return ok && x.Name == y.Name
	case *UnaryExpression:
		y, ok := b.(*UnaryExpression)
		return ok && x.Operator == y.Operator && exprEqual(x.Operand, y.Operand)
	case *BinaryExpression:
		y, ok := b.(*BinaryExpression)
		return ok && x.Operator == y.Operator && exprEqual(x.Left, y.Left) && exprEqual(x.Right, y.Right)
	case *AssignmentExpression:
		y, ok := b.(*AssignmentExpression)
		return ok && x.Operator == y.Operator && exprEqual(x.Target, y.Target) && exprEqual(x.Value, y.Value)
	case *FunctionCall:
		y, ok := b.(*FunctionCall)
		return ok && x.Callee == y.Callee && expressionsEqual(x.Arguments, y.Arguments)
	case *FunctionBody:
		y, ok := b.(*FunctionBody)
		return ok && StatementsEqual(x.Body, y.Body)
	case *PrintStatement:
		y, ok := b.(*PrintStatement)
		return ok && exprEqual(x.Argument, y.Argument)
	case *ExitStatement:
		y, ok := b.(*ExitStatement)
		return ok && exprEqual(x.Code, y.Code)
	case *ExpressionStatement:
		y, ok := b.(*ExpressionStatement)
		return ok && exprEqual(x.Expression, y.Expression)
	case *IfStatement:
		y, ok := b.(*IfStatement)
		return ok && exprEqual(x.Condition, y.Condition) && StatementsEqual(x.Body, y.Body)
	case *BlockStatement:
		y, ok := b.(*BlockStatement)
		return ok && StatementsEqual(x.Body, y.Body)
	case *LetStatement:
		y, ok := b.(*LetStatement)
		return ok && x.Name == y.Name && exprEqual(x.Value, y.Value)
	case *FunctionDefinition:
		y, ok := b.(*FunctionDefinition)
		if !ok || x.Name != y.Name || len(x.Params) != len(y.Params) {
			return false
		}
		for idx := range x.Params {
			if x.Params[idx] != y.Params[idx] {
				return false
			}
		}
		return StatementsEqual(x.Body, y.Body)
	case *ReturnStatement:
		y, ok := b.(*ReturnStatement)
		return ok && exprEqual(x.Argument, y.Argument)
	case *WhileLoop:
		y, ok := b.(*WhileLoop)
		return ok && exprEqual(x.Condition, y.Condition) && StatementsEqual(x.Body, y.Body)
	default:
		return false
	}
}

// StatementsEqual compares two statement sequences element-wise.
func StatementsEqual(a, b []Statement) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if !Equal(a[idx], b[idx]) {
			return false
		}
	}
	return true
}

func expressionsEqual(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if !exprEqual(a[idx], b[idx]) {
			return false
		}
	}
	return true
}

func exprEqual(a, b Expression) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Equal(a, b)
}

// ValuesEqual is structural equality over values. It is total: values of
// different kinds are simply unequal.
func ValuesEqual(a, b Value) bool {
	if a == nil {
		a = NullValue{}
	}
	if b == nil {
		b = NullValue{}
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case BoolValue:
		return x.Val == b.(BoolValue).Val
	case NumberValue:
		return x.Val == b.(NumberValue).Val
	case TextValue:
		return x.Val == b.(TextValue).Val
	case ArrayValue:
		return expressionsEqual(x.Elements, b.(ArrayValue).Elements)
	default:
		return true
	}
}

// CompareValues is the structural total order over values: within a kind,
// numbers numerically, text lexicographically, arrays element-wise and
// false < true; across kinds, by Kind declaration order.
func CompareValues(a, b Value) int {
	if a == nil {
		a = NullValue{}
	}
	if b == nil {
		b = NullValue{}
	}
	if a.Kind() != b.Kind() {
		return compareInts(int64(a.Kind()), int64(b.Kind()))
	}
	switch x := a.(type) {
	case BoolValue:
		y := b.(BoolValue)
		switch {
		case x.Val == y.Val:
			return 0
		case !x.Val:
			return -1
		default:
			return 1
		}
	case NumberValue:
		return compareInts(x.Val, b.(NumberValue).Val)
	case TextValue:
		return strings.Compare(x.Val, b.(TextValue).Val)
	case ArrayValue:
		y := b.(ArrayValue)
		for idx := 0; idx < len(x.Elements) && idx < len(y.Elements); idx++ {
			if c := compareExpressions(x.Elements[idx], y.Elements[idx]); c != 0 {
				return c
			}
		}
		return compareInts(int64(len(x.Elements)), int64(len(y.Elements)))
	default:
		return 0
	}
}

// compareExpressions orders array elements. Evaluated arrays only hold
// literals; anything else sorts after literals by node type and then by
// its source text.
func compareExpressions(a, b Expression) int {
	la, aLit := a.(*Literal)
	lb, bLit := b.(*Literal)
	switch {
	case aLit && bLit:
		return CompareValues(la.Value, lb.Value)
	case aLit:
		return -1
	case bLit:
		return 1
	}
	if c := strings.Compare(string(a.NodeType()), string(b.NodeType())); c != 0 {
		return c
	}
	return strings.Compare(FormatExpression(a), FormatExpression(b))
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
