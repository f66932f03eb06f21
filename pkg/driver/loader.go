package driver

import (
	"fmt"
	"os"

	"ir/interpreter-go/pkg/ast"
	"ir/interpreter-go/pkg/parser"
	"ir/interpreter-go/pkg/serializer"
)

// LoadProgram reads a program from disk. Files starting with the serializer
// magic are decoded as binary; anything else is parsed as source.
func LoadProgram(path string) ([]ast.Statement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return DecodeProgram(data)
}

// DecodeProgram is LoadProgram for in-memory content.
func DecodeProgram(data []byte) ([]ast.Statement, error) {
	if serializer.IsSerialized(data) {
		return serializer.Deserialize(data)
	}
	return parser.Parse(data)
}

// WriteProgram serializes program to path.
func WriteProgram(path string, program []ast.Statement) error {
	data, err := serializer.Serialize(program)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
