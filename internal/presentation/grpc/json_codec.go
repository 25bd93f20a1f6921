package grpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the content-subtype clients pass via
// grpc.CallContentSubtype to exchange the JSON analysis DTOs.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(analysisCodec{})
}

// analysisCodec serializes the request and response DTOs as JSON, which
// keeps the decimal money fields exact on the wire without generated
// protobuf types.
type analysisCodec struct{}

func (analysisCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("grpc json codec: marshal %T: %w", v, err)
	}
	return data, nil
}

func (analysisCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("grpc json codec: unmarshal into %T: %w", v, err)
	}
	return nil
}

func (analysisCodec) Name() string {
	return CodecName
}
