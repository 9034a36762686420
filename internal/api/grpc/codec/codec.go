// Package codec provides the JSON wire codec of the Auth service.
//
// Service messages are plain Go structs with json tags. Protobuf messages, such as the
// health check, are encoded with protojson so the same content subtype serves both.
package codec

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Name is the content subtype, sent as application/grpc+json.
const Name = "json"

func init() {
	encoding.RegisterCodec(JSON{})
}

// JSON implements encoding.Codec.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec: marshal %T: %w", v, err)
	}
	return data, nil
}

func (JSON) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return protojson.Unmarshal(data, m)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec: unmarshal %T: %w", v, err)
	}
	return nil
}

func (JSON) Name() string {
	return Name
}
