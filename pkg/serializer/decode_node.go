package serializer

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"ir/interpreter-go/pkg/ast"
)

func decodeNode(node map[string]any) (ast.Node, error) {
	typ, _ := node["type"].(string)
	switch ast.NodeType(typ) {
	case ast.NodeLiteral:
		return decodeLiteral(node)
	case ast.NodeIdentifier:
		name, _ := node["name"].(string)
		return ast.NewIdentifier(name), nil
	case ast.NodeUnaryExpression:
		operand, err := decodeExpressionField(node, "operand")
		if err != nil {
			return nil, err
		}
		op, _ := node["operator"].(string)
		return ast.NewUnaryExpression(ast.UnaryOperator(op), operand), nil
	case ast.NodeBinaryExpression:
		left, err := decodeExpressionField(node, "left")
		if err != nil {
			return nil, err
		}
		right, err := decodeExpressionField(node, "right")
		if err != nil {
			return nil, err
		}
		op, _ := node["operator"].(string)
		return ast.NewBinaryExpression(ast.BinaryOperator(op), left, right), nil
	case ast.NodeAssignmentExpression:
		target, err := decodeExpressionField(node, "target")
		if err != nil {
			return nil, err
		}
		value, err := decodeExpressionField(node, "value")
		if err != nil {
			return nil, err
		}
		op, _ := node["operator"].(string)
		return ast.NewAssignmentExpression(ast.AssignmentOperator(op), target, value), nil
	case ast.NodeFunctionCall:
		callee, _ := node["callee"].(string)
		argsVal, _ := node["arguments"].([]any)
		args, err := decodeExpressions(argsVal)
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionCall(callee, args), nil
	case ast.NodeFunctionBody:
		body, err := decodeBody(node)
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionBody(body), nil
	case ast.NodePrintStatement:
		arg, err := decodeExpressionField(node, "argument")
		if err != nil {
			return nil, err
		}
		return ast.NewPrintStatement(arg), nil
	case ast.NodeExitStatement:
		code, err := decodeExpressionField(node, "code")
		if err != nil {
			return nil, err
		}
		return ast.NewExitStatement(code), nil
	case ast.NodeExpressionStatement:
		expr, err := decodeExpressionField(node, "expression")
		if err != nil {
			return nil, err
		}
		return ast.NewExpressionStatement(expr), nil
	case ast.NodeIfStatement:
		cond, err := decodeExpressionField(node, "condition")
		if err != nil {
			return nil, err
		}
		body, err := decodeBody(node)
		if err != nil {
			return nil, err
		}
		return ast.NewIfStatement(cond, body), nil
	case ast.NodeBlockStatement:
		body, err := decodeBody(node)
		if err != nil {
			return nil, err
		}
		return ast.NewBlockStatement(body), nil
	case ast.NodeLetStatement:
		value, err := decodeExpressionField(node, "value")
		if err != nil {
			return nil, err
		}
		name, _ := node["name"].(string)
		return ast.NewLetStatement(name, value), nil
	case ast.NodeFunctionDefinition:
		name, _ := node["name"].(string)
		paramsVal, _ := node["params"].([]any)
		params := make([]string, 0, len(paramsVal))
		for _, raw := range paramsVal {
			param, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("invalid parameter %T in function %s", raw, name)
			}
			params = append(params, param)
		}
		body, err := decodeBody(node)
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionDefinition(name, params, body), nil
	case ast.NodeReturnStatement:
		arg, err := decodeExpressionField(node, "argument")
		if err != nil {
			return nil, err
		}
		return ast.NewReturnStatement(arg), nil
	case ast.NodeWhileLoop:
		cond, err := decodeExpressionField(node, "condition")
		if err != nil {
			return nil, err
		}
		body, err := decodeBody(node)
		if err != nil {
			return nil, err
		}
		return ast.NewWhileLoop(cond, body), nil
	default:
		return nil, fmt.Errorf("unsupported node type %q", typ)
	}
}

func decodeLiteral(node map[string]any) (*ast.Literal, error) {
	kind, _ := node["kind"].(string)
	switch kind {
	case ast.KindBool.String():
		val, ok := node["value"].(bool)
		if !ok {
			return nil, fmt.Errorf("bool literal has value %T", node["value"])
		}
		return ast.Bool(val), nil
	case ast.KindNumber.String():
		text, _ := node["value"].(string)
		val, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("number literal %q: %w", text, err)
		}
		return ast.Num(val), nil
	case ast.KindText.String():
		if encoded, ok := node["bytes"].(string); ok {
			raw, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil {
				return nil, fmt.Errorf("text literal bytes: %w", err)
			}
			return ast.Str(string(raw)), nil
		}
		val, ok := node["value"].(string)
		if !ok {
			return nil, fmt.Errorf("text literal has value %T", node["value"])
		}
		return ast.Str(val), nil
	case ast.KindArray.String():
		elementsVal, _ := node["elements"].([]any)
		elements, err := decodeExpressions(elementsVal)
		if err != nil {
			return nil, err
		}
		return ast.Arr(elements...), nil
	case ast.KindNull.String():
		return ast.Null(), nil
	default:
		return nil, fmt.Errorf("unsupported literal kind %q", kind)
	}
}

func decodeExpressionField(node map[string]any, field string) (ast.Expression, error) {
	raw, ok := node[field].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s missing %s", node["type"], field)
	}
	return decodeExpression(raw)
}

func decodeExpression(raw map[string]any) (ast.Expression, error) {
	decoded, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	expr, ok := decoded.(ast.Expression)
	if !ok {
		return nil, fmt.Errorf("expected expression, got %s", decoded.NodeType())
	}
	return expr, nil
}

func decodeExpressions(values []any) ([]ast.Expression, error) {
	out := make([]ast.Expression, 0, len(values))
	for _, raw := range values {
		child, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid expression entry %T", raw)
		}
		expr, err := decodeExpression(child)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

func decodeBody(node map[string]any) ([]ast.Statement, error) {
	bodyVal, _ := node["body"].([]any)
	return decodeStatements(bodyVal)
}

func decodeStatements(values []any) ([]ast.Statement, error) {
	out := make([]ast.Statement, 0, len(values))
	for _, raw := range values {
		child, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid statement entry %T", raw)
		}
		decoded, err := decodeNode(child)
		if err != nil {
			return nil, err
		}
		stmt, ok := decoded.(ast.Statement)
		if !ok {
			return nil, fmt.Errorf("expected statement, got %s", decoded.NodeType())
		}
		out = append(out, stmt)
	}
	return out, nil
}
