// Package serializer persists programs. The format is the 4-byte magic
// "IRB\x01" followed by a zstd frame holding the JSON node tree.
package serializer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"ir/interpreter-go/pkg/ast"
)

// Magic prefixes every serialized program.
var Magic = []byte{'I', 'R', 'B', 0x01}

var ErrBadMagic = errors.New("serializer: not a serialized ir program")

// maxPayload caps the decompressed JSON size Deserialize accepts.
var maxPayload uint64 = 64 << 20

// Serialize encodes program.
func Serialize(program []ast.Statement) ([]byte, error) {
	if program == nil {
		program = []ast.Statement{}
	}
	payload, err := json.Marshal(program)
	if err != nil {
		return nil, fmt.Errorf("serializer: encode: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("serializer: %w", err)
	}
	defer enc.Close()
	out := make([]byte, 0, len(payload)/2+len(Magic))
	out = append(out, Magic...)
	return enc.EncodeAll(payload, out), nil
}

// Deserialize decodes data produced by Serialize.
func Deserialize(data []byte) ([]ast.Statement, error) {
	if !IsSerialized(data) {
		return nil, ErrBadMagic
	}
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxPayload),
	)
	if err != nil {
		return nil, fmt.Errorf("serializer: %w", err)
	}
	defer dec.Close()
	payload, err := dec.DecodeAll(data[len(Magic):], nil)
	if err != nil {
		return nil, fmt.Errorf("serializer: decompress: %w", err)
	}
	var raw []any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("serializer: decode: %w", err)
	}
	program, err := decodeStatements(raw)
	if err != nil {
		return nil, fmt.Errorf("serializer: %w", err)
	}
	return program, nil
}

// IsSerialized reports whether data starts with Magic.
func IsSerialized(data []byte) bool {
	return bytes.HasPrefix(data, Magic)
}
