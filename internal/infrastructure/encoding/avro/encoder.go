package avro

import (
	"fmt"

	"github.com/linkedin/goavro/v2"
)

// Codec wraps a goavro codec for encoding and decoding event payloads.
type Codec struct {
	codec *goavro.Codec
}

// NewCodec builds a codec from an Avro schema string.
func NewCodec(schema string) (*Codec, error) {
	codec, err := goavro.NewCodec(schema)
	if err != nil {
		return nil, fmt.Errorf("create avro codec: %w", err)
	}
	return &Codec{codec: codec}, nil
}

// EncodeNative converts a goavro native value to Avro binary.
func (c *Codec) EncodeNative(native interface{}) ([]byte, error) {
	binary, err := c.codec.BinaryFromNative(nil, native)
	if err != nil {
		return nil, fmt.Errorf("encode to avro binary: %w", err)
	}
	return binary, nil
}

// DecodeNative converts Avro binary back to a goavro native value.
func (c *Codec) DecodeNative(data []byte) (map[string]interface{}, error) {
	native, _, err := c.codec.NativeFromBinary(data)
	if err != nil {
		return nil, fmt.Errorf("decode avro binary: %w", err)
	}
	m, ok := native.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("avro payload is not a record")
	}
	return m, nil
}
