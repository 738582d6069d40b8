package fieldz

import (
	"encoding"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Codec decodes payloads emitted by a Source into field values.
type Codec interface {
	// Unmarshal deserializes bytes into a value.
	Unmarshal(data []byte, v any) error

	// ContentType returns the MIME type for logs and events.
	ContentType() string
}

// JSONCodec implements Codec using encoding/json.
type JSONCodec struct{}

// Unmarshal deserializes JSON bytes into v.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// ContentType returns the JSON MIME type.
func (JSONCodec) ContentType() string {
	return "application/json"
}

// YAMLCodec implements Codec using gopkg.in/yaml.v3. Plain scalars decode
// without quoting, which suits hand-edited single-value files.
type YAMLCodec struct{}

// Unmarshal deserializes YAML bytes into v.
func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// ContentType returns the YAML MIME type.
func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// TextCodec passes payloads through as plain text. It decodes into *string,
// *[]byte and encoding.TextUnmarshaler targets, which makes it the natural
// codec for a FileSource holding a single free-text value such as a username.
type TextCodec struct{}

// Unmarshal stores data in v without interpretation.
func (TextCodec) Unmarshal(data []byte, v any) error {
	switch t := v.(type) {
	case *string:
		*t = string(data)
	case *[]byte:
		*t = append((*t)[:0], data...)
	case encoding.TextUnmarshaler:
		return t.UnmarshalText(data)
	default:
		return fmt.Errorf("text codec cannot decode into %T", v)
	}
	return nil
}

// ContentType returns the plain text MIME type.
func (TextCodec) ContentType() string {
	return "text/plain"
}

var (
	_ Codec = JSONCodec{}
	_ Codec = YAMLCodec{}
	_ Codec = TextCodec{}
)
