package ast

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind identifies the value category. The declaration order is also the
// cross-kind order used by CompareValues.
type Kind int

const (
	KindBool Kind = iota
	KindNumber
	KindText
	KindArray
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindArray:
		return "array"
	case KindNull:
		return "null"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the runtime domain a Literal carries.
type Value interface {
	Kind() Kind
	// String renders the external text form used by print.
	String() string
}

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

func (v BoolValue) String() string { return strconv.FormatBool(v.Val) }

type NumberValue struct {
	Val int64
}

func (v NumberValue) Kind() Kind { return KindNumber }

func (v NumberValue) String() string { return strconv.FormatInt(v.Val, 10) }

type TextValue struct {
	Val string
}

func (v TextValue) Kind() Kind { return KindText }

func (v TextValue) String() string { return `"` + v.Val + `"` }

// ArrayValue holds element expressions, not values. It is in normal form
// only when every element is itself a normal-form Literal.
type ArrayValue struct {
	Elements []Expression
}

func (v ArrayValue) Kind() Kind { return KindArray }

func (v ArrayValue) String() string {
	parts := make([]string, 0, len(v.Elements))
	for _, el := range v.Elements {
		parts = append(parts, FormatExpression(el))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

func (NullValue) String() string { return "null" }

// Truthy reports the boolean interpretation used by if, && and ||.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case BoolValue:
		return val.Val
	case NumberValue:
		return val.Val != 0
	case TextValue:
		return val.Val != ""
	case ArrayValue:
		return len(val.Elements) > 0
	default:
		return false
	}
}

// IsNormal reports whether expr is a literal whose array elements (if any)
// are recursively literals.
func IsNormal(expr Expression) bool {
	lit, ok := expr.(*Literal)
	if !ok {
		return false
	}
	arr, ok := lit.Value.(ArrayValue)
	if !ok {
		return true
	}
	for _, el := range arr.Elements {
		if !IsNormal(el) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes a literal with an explicit kind tag. Numbers are
// written as decimal strings so that every int64 survives a round trip, and
// text that is not valid UTF-8 is written as base64 "bytes".
func (l *Literal) MarshalJSON() ([]byte, error) {
	out := map[string]any{"type": NodeLiteral}
	value := l.Value
	if value == nil {
		value = NullValue{}
	}
	out["kind"] = value.Kind().String()
	switch v := value.(type) {
	case BoolValue:
		out["value"] = v.Val
	case NumberValue:
		out["value"] = strconv.FormatInt(v.Val, 10)
	case TextValue:
		// JSON strings are UTF-8; other byte sequences go out as base64.
		if utf8.ValidString(v.Val) {
			out["value"] = v.Val
		} else {
			out["bytes"] = []byte(v.Val)
		}
	case ArrayValue:
		elements := v.Elements
		if elements == nil {
			elements = []Expression{}
		}
		out["elements"] = elements
	case NullValue:
	default:
		return nil, fmt.Errorf("literal has unsupported value %T", value)
	}
	return json.Marshal(out)
}
